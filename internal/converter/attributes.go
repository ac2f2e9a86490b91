package converter

import "github.com/fjglira/mkoptions/internal/parser"

// attributes gives typed access to the attributes of a validated block.
type attributes struct {
	block *parser.Block
}

func (a attributes) value(key string) (parser.Value, bool) {
	attr, ok := a.block.Get(key)
	if !ok {
		return parser.Value{}, false
	}
	return attr.Value, true
}

// str returns a string attribute. Booleans are rendered as "true"/"false"
// so that defaults such as `default = false` keep their spelling.
func (a attributes) str(key string) string {
	v, ok := a.value(key)
	if !ok {
		return ""
	}
	switch v.Kind {
	case parser.KindString, parser.KindBool:
		return v.String()
	}
	return ""
}

func (a attributes) list(key string) []string {
	v, ok := a.value(key)
	if !ok || v.Kind != parser.KindList {
		return nil
	}
	return append([]string(nil), v.List...)
}

func (a attributes) boolean(key string, def bool) bool {
	v, ok := a.value(key)
	if !ok || v.Kind != parser.KindBool {
		return def
	}
	return v.Bool
}
