package jsonio

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"go.jsondoc.dev/jsondoc/keytable"
	"go.jsondoc.dev/jsondoc/node"
	"go.jsondoc.dev/jsondoc/numfmt"
)

// ErrSyntax is the sentinel wrapped by every parse failure: bare tokens,
// unquoted member names, unterminated containers, and invalid number or
// string lexemes.
var ErrSyntax = errors.New("syntax error")

// Parse parses data as a single JSON value, interning object member names
// through tbl. Trailing non-whitespace after the value is a syntax error.
func Parse(tbl *keytable.Table, data []byte) (*node.Node, error) {
	p := &parser{data: data, tbl: tbl}

	p.skipWS()

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipWS()

	if p.pos != len(p.data) {
		return nil, p.errorf("trailing data after value")
	}

	return v, nil
}

type parser struct {
	data []byte
	pos  int
	tbl  *keytable.Table
}

func (p *parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	return fmt.Errorf("%w: at offset %d: %s", ErrSyntax, p.pos, msg)
}

func (p *parser) skipWS() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.data) {
		return 0, false
	}

	return p.data[p.pos], true
}

func (p *parser) parseValue() (*node.Node, error) {
	b, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of input")
	}

	switch {
	case b == '{':
		return p.parseObject()
	case b == '[':
		return p.parseArray()
	case b == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}

		return node.NewString(s), nil
	case b == 't':
		return p.parseLiteral("true", node.NewBool(true))
	case b == 'f':
		return p.parseLiteral("false", node.NewBool(false))
	case b == 'n':
		return p.parseLiteral("null", node.NewNull())
	case b == '-' || (b >= '0' && b <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errorf("unexpected character %q", b)
	}
}

func (p *parser) parseLiteral(lit string, v *node.Node) (*node.Node, error) {
	if p.pos+len(lit) > len(p.data) || string(p.data[p.pos:p.pos+len(lit)]) != lit {
		return nil, p.errorf("invalid literal, expected %q", lit)
	}

	p.pos += len(lit)

	return v, nil
}

func (p *parser) parseNumber() (*node.Node, error) {
	sc, n, err := numfmt.ScanPrefix(string(p.data[p.pos:]))
	if err != nil {
		return nil, p.errorf("invalid number: %v", err)
	}

	p.pos += n

	if sc.IsInt {
		return node.NewInt(sc.Int), nil
	}

	return node.NewNumber(sc.Float, sc.Lexical), nil
}

func (p *parser) parseObject() (*node.Node, error) {
	p.pos++ // consume '{'

	obj := node.NewObject()

	p.skipWS()

	if b, ok := p.peek(); ok && b == '}' {
		p.pos++

		return obj, nil
	}

	for {
		p.skipWS()

		b, ok := p.peek()
		if !ok || b != '"' {
			return nil, p.errorf("expected quoted member name")
		}

		name, err := p.parseString()
		if err != nil {
			return nil, err
		}

		p.skipWS()

		if b, ok := p.peek(); !ok || b != ':' {
			return nil, p.errorf("expected ':' after member name")
		}

		p.pos++
		p.skipWS()

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		// Duplicate names: last binding wins, per JSON.OBJLEN semantics.
		obj.Set(p.tbl, name, v)

		p.skipWS()

		b, ok = p.peek()
		if !ok {
			return nil, p.errorf("unterminated object")
		}

		switch b {
		case ',':
			p.pos++
		case '}':
			p.pos++

			return obj, nil
		default:
			return nil, p.errorf("expected ',' or '}'")
		}
	}
}

func (p *parser) parseArray() (*node.Node, error) {
	p.pos++ // consume '['

	arr := node.NewArray()

	p.skipWS()

	if b, ok := p.peek(); ok && b == ']' {
		p.pos++

		return arr, nil
	}

	for {
		p.skipWS()

		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		arr.Append(v)

		p.skipWS()

		b, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated array")
		}

		switch b {
		case ',':
			p.pos++
		case ']':
			p.pos++

			return arr, nil
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}

func (p *parser) parseString() (string, error) {
	p.pos++ // consume opening quote

	var sb []byte

	for {
		if p.pos >= len(p.data) {
			return "", p.errorf("unterminated string")
		}

		b := p.data[p.pos]

		switch {
		case b == '"':
			p.pos++

			return string(sb), nil

		case b == '\\':
			p.pos++

			r, err := p.parseEscape()
			if err != nil {
				return "", err
			}

			sb = utf8.AppendRune(sb, r)

		case b < 0x20:
			return "", p.errorf("control character in string literal")

		default:
			_, size := utf8.DecodeRune(p.data[p.pos:])
			sb = append(sb, p.data[p.pos:p.pos+size]...)
			p.pos += size
		}
	}
}

func (p *parser) parseEscape() (rune, error) {
	if p.pos >= len(p.data) {
		return 0, p.errorf("unterminated escape")
	}

	b := p.data[p.pos]
	p.pos++

	switch b {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case '/':
		return '/', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		return p.parseUnicodeEscape()
	default:
		return 0, p.errorf("invalid escape character %q", b)
	}
}

func (p *parser) parseUnicodeEscape() (rune, error) {
	r1, err := p.parseHex4()
	if err != nil {
		return 0, err
	}

	if utf16.IsSurrogate(rune(r1)) {
		if p.pos+1 < len(p.data) && p.data[p.pos] == '\\' && p.data[p.pos+1] == 'u' {
			save := p.pos
			p.pos += 2

			r2, err := p.parseHex4()
			if err == nil {
				combined := utf16.DecodeRune(rune(r1), rune(r2))
				if combined != utf8.RuneError {
					return combined, nil
				}
			}

			p.pos = save
		}

		return utf8.RuneError, nil
	}

	return rune(r1), nil
}

func (p *parser) parseHex4() (uint16, error) {
	if p.pos+4 > len(p.data) {
		return 0, p.errorf("invalid \\u escape")
	}

	v, err := strconv.ParseUint(string(p.data[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, p.errorf("invalid \\u escape: %v", err)
	}

	p.pos += 4

	return uint16(v), nil
}
