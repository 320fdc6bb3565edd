package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/node"
)

// ErrTruncated indicates a record ended before its encoding said it would.
var ErrTruncated = errors.New("snapshot: truncated record")

// ErrUnknownFormat indicates the leading format byte names neither
// [FormatCurrent] nor [FormatLegacy].
var ErrUnknownFormat = errors.New("snapshot: unknown record format")

// ErrUnknownTag indicates a node tag byte outside the known kind set,
// meaning the record is corrupt or from an encoding this package does not
// understand.
var ErrUnknownTag = errors.New("snapshot: unknown node tag")

// Decode reads a single record from data, interning object member names
// through tbl, and returns the reconstructed document tree along with the
// number of bytes the record occupied. It accepts both [FormatCurrent]
// and [FormatLegacy] records.
func Decode(tbl *keytable.Table, data []byte) (*node.Node, int, error) {
	if len(data) < 1 {
		return nil, 0, ErrTruncated
	}

	switch Format(data[0]) {
	case FormatCurrent:
		if len(data) < 5 {
			return nil, 0, ErrTruncated
		}

		recLen := int(binary.LittleEndian.Uint32(data[1:5]))
		if recLen < 5 || recLen > len(data) {
			return nil, 0, ErrTruncated
		}

		d := &decoder{tbl: tbl, buf: data[5:recLen]}

		n, err := d.readNode()
		if err != nil {
			return nil, 0, err
		}

		return n, recLen, nil

	case FormatLegacy:
		d := &decoder{tbl: tbl, buf: data[1:]}

		n, err := d.readNode()
		if err != nil {
			return nil, 0, err
		}

		return n, 1 + d.pos, nil
	}

	return nil, 0, fmt.Errorf("%w: %d", ErrUnknownFormat, data[0])
}

type decoder struct {
	tbl *keytable.Table
	buf []byte
	pos int
}

func (d *decoder) readByte() (byte, error) {
	if d.pos >= len(d.buf) {
		return 0, ErrTruncated
	}

	b := d.buf[d.pos]
	d.pos++

	return b, nil
}

func (d *decoder) readUint32() (uint32, error) {
	if d.pos+4 > len(d.buf) {
		return 0, ErrTruncated
	}

	v := binary.LittleEndian.Uint32(d.buf[d.pos : d.pos+4])
	d.pos += 4

	return v, nil
}

func (d *decoder) readUint64() (uint64, error) {
	if d.pos+8 > len(d.buf) {
		return 0, ErrTruncated
	}

	v := binary.LittleEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8

	return v, nil
}

func (d *decoder) readString() (string, error) {
	l, err := d.readUint32()
	if err != nil {
		return "", err
	}

	if d.pos+int(l) > len(d.buf) {
		return "", ErrTruncated
	}

	s := string(d.buf[d.pos : d.pos+int(l)])
	d.pos += int(l)

	return s, nil
}

func (d *decoder) readNode() (*node.Node, error) {
	t, err := d.readByte()
	if err != nil {
		return nil, err
	}

	switch tag(t) {
	case tagNull:
		return node.NewNull(), nil
	case tagFalse:
		return node.NewBool(false), nil
	case tagTrue:
		return node.NewBool(true), nil
	case tagInteger:
		v, err := d.readUint64()
		if err != nil {
			return nil, err
		}

		return node.NewInt(int64(v)), nil //nolint:gosec // bit-pattern round trip, not a magnitude
	case tagNumber:
		bits, err := d.readUint64()
		if err != nil {
			return nil, err
		}

		lexical, err := d.readString()
		if err != nil {
			return nil, err
		}

		return node.NewNumber(math.Float64frombits(bits), lexical), nil
	case tagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}

		return node.NewString(s), nil
	case tagArray:
		count, err := d.readUint32()
		if err != nil {
			return nil, err
		}

		items := make([]*node.Node, count)

		for i := range items {
			items[i], err = d.readNode()
			if err != nil {
				return nil, err
			}
		}

		return node.NewArray(items...), nil
	case tagObject:
		count, err := d.readUint32()
		if err != nil {
			return nil, err
		}

		obj := node.NewObject()

		for range count {
			name, err := d.readString()
			if err != nil {
				return nil, err
			}

			val, err := d.readNode()
			if err != nil {
				return nil, err
			}

			obj.Set(d.tbl, name, val)
		}

		return obj, nil
	}

	return nil, fmt.Errorf("%w: %d", ErrUnknownTag, t)
}
