package snapshot

import (
	"bytes"
	"encoding/binary"
	"math"

	"go.jsondoc.dev/jsondoc/node"
)

// Encode writes root as a [FormatCurrent] record: a format byte, a
// little-endian uint32 record length covering the whole record, and the
// node encoding itself.
func Encode(root *node.Node) []byte {
	var body bytes.Buffer

	encodeNode(&body, root)

	buf := make([]byte, 0, 5+body.Len())
	buf = append(buf, byte(FormatCurrent))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(5+body.Len())) //nolint:gosec // record length, not attacker controlled width
	buf = append(buf, body.Bytes()...)

	return buf
}

func encodeNode(buf *bytes.Buffer, n *node.Node) {
	switch n.Kind() {
	case node.KindNull:
		buf.WriteByte(byte(tagNull))
	case node.KindBoolean:
		if n.Bool() {
			buf.WriteByte(byte(tagTrue))
		} else {
			buf.WriteByte(byte(tagFalse))
		}
	case node.KindInteger:
		buf.WriteByte(byte(tagInteger))
		writeUint64(buf, uint64(n.Int())) //nolint:gosec // bit-pattern round trip, not a magnitude
	case node.KindNumber:
		buf.WriteByte(byte(tagNumber))
		writeUint64(buf, math.Float64bits(n.Float()))
		writeString(buf, n.Lexical())
	case node.KindString:
		buf.WriteByte(byte(tagString))
		writeString(buf, n.String())
	case node.KindArray:
		buf.WriteByte(byte(tagArray))

		items := n.Items()
		writeUint32(buf, uint32(len(items))) //nolint:gosec // element count, not attacker controlled width

		for _, it := range items {
			encodeNode(buf, it)
		}
	case node.KindObject:
		buf.WriteByte(byte(tagObject))

		members := n.Members()
		writeUint32(buf, uint32(len(members))) //nolint:gosec // element count, not attacker controlled width

		for _, m := range members {
			writeString(buf, m.Handle.Name())
			encodeNode(buf, m.Value)
		}
	}
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s))) //nolint:gosec // string byte length, not attacker controlled width
	buf.WriteString(s)
}
