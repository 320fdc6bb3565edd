package jsonio

import (
	"strconv"
	"strings"

	"go.jsondoc.dev/jsondoc/node"
	"go.jsondoc.dev/jsondoc/numfmt"
)

// Options parameterizes serialization. The zero value is compact: no
// indentation, no space after ':', no newlines. NOESCAPE is accepted by
// JSON.GET for compatibility but has no effect here -- escaping of control
// characters and quotes is mandatory for valid output.
type Options struct {
	Indent  string
	Space   string
	Newline string
}

// Compact is the zero-value Options, producing output with no whitespace.
var Compact = Options{}

func (o Options) pretty() bool {
	return o.Indent != "" || o.Space != "" || o.Newline != ""
}

// Format serializes n per opts.
func Format(n *node.Node, opts Options) []byte {
	var sb strings.Builder

	writeNode(&sb, n, opts, 0)

	return []byte(sb.String())
}

// EncodedLen returns the byte length of n's compact serialization, used to
// enforce max-document-size. It serializes n into a scratch builder and
// returns only its length, without converting the result to a []byte.
func EncodedLen(n *node.Node) int {
	var sb strings.Builder

	writeNode(&sb, n, Compact, 0)

	return sb.Len()
}

func writeIndent(sb *strings.Builder, opts Options, level int) {
	for range level {
		sb.WriteString(opts.Indent)
	}
}

func writeNode(sb *strings.Builder, n *node.Node, opts Options, level int) {
	switch n.Kind() {
	case node.KindNull:
		sb.WriteString("null")
	case node.KindBoolean:
		if n.Bool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case node.KindInteger:
		sb.WriteString(numfmt.FormatInt(n.Int()))
	case node.KindNumber:
		if lex := n.Lexical(); lex != "" {
			sb.WriteString(lex)
		} else {
			sb.WriteString(numfmt.FormatFloat(n.Float()))
		}
	case node.KindString:
		writeString(sb, n.String())
	case node.KindArray:
		writeArray(sb, n, opts, level)
	case node.KindObject:
		writeObject(sb, n, opts, level)
	}
}

func writeArray(sb *strings.Builder, n *node.Node, opts Options, level int) {
	items := n.Items()

	sb.WriteByte('[')

	if len(items) == 0 {
		sb.WriteByte(']')

		return
	}

	pretty := opts.pretty()

	for i, it := range items {
		if i > 0 {
			sb.WriteByte(',')
		}

		if pretty {
			sb.WriteString(opts.Newline)
			writeIndent(sb, opts, level+1)
		}

		writeNode(sb, it, opts, level+1)
	}

	if pretty {
		sb.WriteString(opts.Newline)
		writeIndent(sb, opts, level)
	}

	sb.WriteByte(']')
}

func writeObject(sb *strings.Builder, n *node.Node, opts Options, level int) {
	members := n.Members()

	sb.WriteByte('{')

	if len(members) == 0 {
		sb.WriteByte('}')

		return
	}

	pretty := opts.pretty()

	for i, m := range members {
		if i > 0 {
			sb.WriteByte(',')
		}

		if pretty {
			sb.WriteString(opts.Newline)
			writeIndent(sb, opts, level+1)
		}

		writeString(sb, m.Handle.Name())
		sb.WriteByte(':')
		sb.WriteString(opts.Space)
		writeNode(sb, m.Value, opts, level+1)
	}

	if pretty {
		sb.WriteString(opts.Newline)
		writeIndent(sb, opts, level)
	}

	sb.WriteByte('}')
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(`\u`)

				hex := strconv.FormatInt(int64(r), 16)
				for range 4 - len(hex) {
					sb.WriteByte('0')
				}

				sb.WriteString(hex)
			} else {
				sb.WriteRune(r)
			}
		}
	}

	sb.WriteByte('"')
}
