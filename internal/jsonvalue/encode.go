package jsonvalue

import (
	"math"
	"strconv"
	"strings"
)

// Marshal renders v in canonical compact form.
//
// Floats always carry six decimals, so Float(1) renders as 1.000000 and
// parses back as a float. NaN and infinities render as null. Object members
// are written in insertion order.
func Marshal(v Value) []byte {
	var sb strings.Builder
	write(&sb, v, "", 0)
	return []byte(sb.String())
}

// MarshalIndent is Marshal with one member or element per line, each
// nesting level prefixed by indent.
func MarshalIndent(v Value, indent string) []byte {
	var sb strings.Builder
	write(&sb, v, indent, 0)
	return []byte(sb.String())
}

// String returns the compact serialization of v.
func (v Value) String() string {
	return string(Marshal(v))
}

func write(sb *strings.Builder, v Value, indent string, depth int) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			sb.WriteString("null")
			return
		}
		sb.WriteString(strconv.FormatFloat(v.f, 'f', 6, 64))
	case KindString:
		writeString(sb, v.s)
	case KindArray:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(sb, indent, depth+1)
			write(sb, item, indent, depth+1)
		}
		if len(v.items) > 0 {
			newline(sb, indent, depth)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				sb.WriteByte(',')
			}
			newline(sb, indent, depth+1)
			writeString(sb, m.key)
			sb.WriteByte(':')
			if indent != "" {
				sb.WriteByte(' ')
			}
			write(sb, m.value, indent, depth+1)
		}
		if len(v.members) > 0 {
			newline(sb, indent, depth)
		}
		sb.WriteByte('}')
	}
}

func newline(sb *strings.Builder, indent string, depth int) {
	if indent == "" {
		return
	}
	sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		sb.WriteString(indent)
	}
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}
