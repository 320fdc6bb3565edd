package snapshot

// Format tags which generation of the wire encoding a record uses.
type Format byte

const (
	// FormatLegacy is the predecessor encoding: a node tree with no
	// top-level record-length prefix, so a reader must fully decode it
	// to know where it ends.
	FormatLegacy Format = 1
	// FormatCurrent is the active encoding: a uint32 little-endian
	// record length follows the format byte, covering the whole record,
	// so a reader can skip an uninteresting record without decoding it.
	FormatCurrent Format = 2
)

// tag identifies a node's kind in the encoded stream. Shared by both
// format generations.
type tag byte

const (
	tagNull tag = iota
	tagFalse
	tagTrue
	tagInteger
	tagNumber
	tagString
	tagArray
	tagObject
)
