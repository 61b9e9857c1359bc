package jsonvalue

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// SyntaxError describes malformed input and the byte offset where parsing
// stopped.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("json: %s at offset %d", e.Msg, e.Offset)
}

// Parse decodes a single value from data.
//
// Bytes following a complete value are ignored. String escapes cover
// \" \\ \n \t and \r; any other escaped character is kept literally.
// A number containing '.', 'e' or 'E' becomes a float, otherwise an int.
func Parse(data []byte) (Value, error) {
	p := &parser{data: data}
	return p.value()
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) fail(format string, args ...interface{}) error {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.data) {
		switch p.data[p.pos] {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) eof() bool { return p.pos >= len(p.data) }

func (p *parser) value() (Value, error) {
	p.skipWhitespace()
	if p.eof() {
		return Value{}, p.fail("unexpected end of input")
	}

	switch c := p.data[p.pos]; {
	case c == 'n':
		return p.literal("null", Null())
	case c == 't':
		return p.literal("true", Bool(true))
	case c == 'f':
		return p.literal("false", Bool(false))
	case c == '"':
		s, err := p.str()
		if err != nil {
			return Value{}, err
		}
		return String(s), nil
	case c == '[':
		return p.array()
	case c == '{':
		return p.object()
	case c == '-' || isDigit(c):
		return p.number()
	default:
		return Value{}, p.fail("unexpected character %q", c)
	}
}

func (p *parser) literal(word string, v Value) (Value, error) {
	if !bytes.HasPrefix(p.data[p.pos:], []byte(word)) {
		return Value{}, p.fail("invalid literal %q", word)
	}
	p.pos += len(word)
	return v, nil
}

func (p *parser) str() (string, error) {
	p.pos++ // opening quote
	var sb strings.Builder
	for p.pos < len(p.data) && p.data[p.pos] != '"' {
		c := p.data[p.pos]
		if c == '\\' {
			p.pos++
			if p.eof() {
				break
			}
			switch e := p.data[p.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(e)
			}
		} else {
			sb.WriteByte(c)
		}
		p.pos++
	}
	if p.eof() {
		return "", p.fail("unterminated string")
	}
	p.pos++ // closing quote
	return sb.String(), nil
}

func (p *parser) array() (Value, error) {
	p.pos++ // [
	arr := Value{kind: KindArray, items: []Value{}}

	p.skipWhitespace()
	if !p.eof() && p.data[p.pos] == ']' {
		p.pos++
		return arr, nil
	}

	for {
		item, err := p.value()
		if err != nil {
			return Value{}, err
		}
		arr.items = append(arr.items, item)

		p.skipWhitespace()
		if p.eof() {
			return Value{}, p.fail("unexpected end of input")
		}
		switch p.data[p.pos] {
		case ']':
			p.pos++
			return arr, nil
		case ',':
			p.pos++
		default:
			return Value{}, p.fail("expected ',' or ']' in array")
		}
	}
}

func (p *parser) object() (Value, error) {
	p.pos++ // {
	obj := Object()

	p.skipWhitespace()
	if !p.eof() && p.data[p.pos] == '}' {
		p.pos++
		return obj, nil
	}

	for {
		key, err := p.value()
		if err != nil {
			return Value{}, err
		}
		name, ok := key.AsString()
		if !ok {
			return Value{}, p.fail("object key must be a string")
		}

		p.skipWhitespace()
		if p.eof() || p.data[p.pos] != ':' {
			return Value{}, p.fail("expected ':' after object key")
		}
		p.pos++

		val, err := p.value()
		if err != nil {
			return Value{}, err
		}
		obj.Set(name, val)

		p.skipWhitespace()
		if p.eof() {
			return Value{}, p.fail("unexpected end of input")
		}
		switch p.data[p.pos] {
		case '}':
			p.pos++
			return obj, nil
		case ',':
			p.pos++
		default:
			return Value{}, p.fail("expected ',' or '}' in object")
		}
	}
}

func (p *parser) number() (Value, error) {
	start := p.pos
	isFloat := false
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c == '.' || c == 'e' || c == 'E' {
			isFloat = true
		} else if !isDigit(c) && c != '-' && c != '+' {
			break
		}
		p.pos++
	}

	text := string(p.data[start:p.pos])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.pos = start
			return Value{}, p.fail("invalid number %q", text)
		}
		return Float(f), nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		p.pos = start
		return Value{}, p.fail("invalid number %q", text)
	}
	return Int(i), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
