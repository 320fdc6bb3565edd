package command

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"go.jsondoc.dev/jsondoc/jsonio"
	"go.jsondoc.dev/jsondoc/metrics"
	"go.jsondoc.dev/jsondoc/node"
	"go.jsondoc.dev/jsondoc/snapshot"
)

// Save serializes every document under the engine into w: a
// little-endian uint32 document count, then for each document (keys
// sorted for a deterministic byte stream) a length-prefixed key string
// followed by a [snapshot.Encode] record. This backs the host's SAVE
// command.
func (e *Engine) Save(w io.Writer) error {
	keys := make([]string, 0, len(e.docs))
	for k := range e.docs {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var buf bytes.Buffer

	writeUint32(&buf, uint32(len(keys))) //nolint:gosec // document count, not attacker controlled width

	for _, k := range keys {
		writeLenPrefixed(&buf, []byte(k))
		buf.Write(snapshot.Encode(e.docs[k]))
	}

	_, err := w.Write(buf.Bytes())

	return err
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeLenPrefixed(buf *bytes.Buffer, b []byte) {
	writeUint32(buf, uint32(len(b))) //nolint:gosec // key byte length, not attacker controlled width
	buf.Write(b)
}

// Load replaces every document the engine holds with the contents of
// data, as produced by [Engine.Save]. This backs the host's DEBUG
// RELOAD command; on success the previous generation's documents have
// their key-table handles released and metrics restart from the
// restored set.
func (e *Engine) Load(data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("snapshot: %w", snapshot.ErrTruncated)
	}

	count := binary.LittleEndian.Uint32(data[:4])
	pos := 4

	newDocs := make(map[string]*node.Node, count)

	for range count {
		if pos+4 > len(data) {
			return fmt.Errorf("snapshot: %w", snapshot.ErrTruncated)
		}

		keyLen := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		pos += 4

		if keyLen < 0 || pos+keyLen > len(data) {
			return fmt.Errorf("snapshot: %w", snapshot.ErrTruncated)
		}

		key := string(data[pos : pos+keyLen])
		pos += keyLen

		root, n, err := snapshot.Decode(e.tbl, data[pos:])
		if err != nil {
			return fmt.Errorf("snapshot: document %q: %w", key, err)
		}

		pos += n
		newDocs[key] = root
	}

	for _, old := range e.docs {
		node.Release(e.tbl, old)
	}

	e.docs = newDocs
	e.metrics = metrics.New()

	for _, root := range newDocs {
		e.metrics.DocumentCreated(jsonio.EncodedLen(root))
		e.metrics.RecordDepth(node.Depth(root))
	}

	return nil
}
