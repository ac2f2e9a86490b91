package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the shape of a decoded attribute value.
type Kind int

const (
	// KindAbsent is an attribute given as the empty string.
	KindAbsent Kind = iota
	KindString
	KindBool
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	}
	return "unknown"
}

// Value is a decoded attribute value. Exactly one of Str, Bool or List is
// meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
	List []string
}

// StringValue returns a string Value, or an absent one for "".
func StringValue(s string) Value {
	if s == "" {
		return Value{Kind: KindAbsent}
	}
	return Value{Kind: KindString, Str: s}
}

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// ListValue returns a list Value.
func ListValue(l []string) Value {
	return Value{Kind: KindList, List: l}
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindList:
		return "[" + strings.Join(v.List, ", ") + "]"
	}
	return ""
}

var boolAttributes = map[string]bool{
	"read_only": true,
	"alternate": true,
}

// IsBoolAttribute reports whether key holds a boolean. Boolean attributes
// also accept the quoted forms "true" and "false".
func IsBoolAttribute(key string) bool {
	return boolAttributes[key]
}

// Decode converts the right-hand side of "key = value" into a Value. The
// first character selects the shape: '"' for strings, '[' for lists, and the
// bare words true and false for booleans.
func Decode(key, raw string) (Value, error) {
	if raw == "" {
		return Value{}, fmt.Errorf("missing value for attribute '%s'", key)
	}
	switch {
	case raw[0] == '"':
		if len(raw) < 2 || raw[len(raw)-1] != '"' {
			return Value{}, errors.New(`missing closing " for string`)
		}
		s := strings.ReplaceAll(raw[1:len(raw)-1], `\"`, `"`)
		if IsBoolAttribute(key) {
			switch s {
			case "true":
				return BoolValue(true), nil
			case "false":
				return BoolValue(false), nil
			}
		}
		return StringValue(s), nil
	case raw[0] == '[':
		l, err := decodeList(raw)
		if err != nil {
			return Value{}, fmt.Errorf("parsing list: %w", err)
		}
		return ListValue(l), nil
	case raw == "true":
		return BoolValue(true), nil
	case raw == "false":
		return BoolValue(false), nil
	}
	return Value{}, fmt.Errorf("invalid value '%s'", raw)
}

// decodeList parses a bracketed list of quoted strings, e.g.
// ["a", 'b',]. A trailing comma is allowed.
func decodeList(s string) ([]string, error) {
	items := []string{}
	i := 1 // skip '['
	for {
		i = skipSpace(s, i)
		if i >= len(s) {
			return nil, errors.New("unexpected end of list")
		}
		if s[i] == ']' {
			break
		}
		if s[i] != '"' && s[i] != '\'' {
			return nil, fmt.Errorf("expected string literal at column %d", i+1)
		}
		item, next, err := decodeQuoted(s, i)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		i = skipSpace(s, next)
		if i >= len(s) {
			return nil, errors.New("unexpected end of list")
		}
		if s[i] == ',' {
			i++
			continue
		}
		if s[i] != ']' {
			return nil, fmt.Errorf("expected ',' or ']' at column %d", i+1)
		}
		break
	}
	if rest := strings.TrimSpace(s[i+1:]); rest != "" {
		return nil, fmt.Errorf("unexpected '%s' after list", rest)
	}
	return items, nil
}

// decodeQuoted reads the string literal starting at s[start] and returns it
// with the index just past the closing quote.
func decodeQuoted(s string, start int) (string, int, error) {
	quote := s[start]
	var b strings.Builder
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, fmt.Errorf("unterminated string literal at column %d", start+1)
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
