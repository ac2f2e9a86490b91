package parser

import (
	"fmt"
	"strings"

	"github.com/fjglira/mkoptions/internal/domain"
)

const (
	optionMarker = "[[option]]"
	aliasMarker  = "[[alias]]"
)

// TOMLParser parses the restricted TOML subset used by option specification
// files: comments, blank lines, [[option]] and [[alias]] markers, and
// "key = value" lines. A generic TOML decoder would accept far more than the
// format allows and report errors in its own terms.
type TOMLParser struct{}

// NewTOMLParser creates a new TOMLParser.
func NewTOMLParser() *TOMLParser {
	return &TOMLParser{}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *TOMLParser) SupportedExtensions() []string {
	return []string{".toml"}
}

// Parse splits content into module, option and alias blocks. Attributes
// before the first block marker belong to the module; a marker or the end
// of the file closes the current block.
func (p *TOMLParser) Parse(filePath string, content []byte, checker Checker) (*ParsedDocument, error) {
	doc := newDocument(filePath, "toml")
	var current *Block

	closeBlock := func() {
		if current == nil {
			return
		}
		if current.Kind == BlockOption {
			doc.Options = append(doc.Options, current)
		} else {
			doc.Aliases = append(doc.Aliases, current)
		}
		current = nil
	}

	lines := strings.Split(string(content), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		key, value, hasValue := strings.Cut(strings.TrimRight(raw, "\r"), "=")
		key = strings.TrimSpace(key)

		if strings.HasPrefix(key, "#") {
			continue
		}

		if !hasValue {
			switch key {
			case optionMarker:
				closeBlock()
				current = &Block{Kind: BlockOption, Line: lineNo}
			case aliasMarker:
				closeBlock()
				current = &Block{Kind: BlockAlias, Line: lineNo}
			case "":
			default:
				return nil, domain.NewError("parse", filePath, lineNo,
					fmt.Sprintf("invalid attribute '%s'", key), nil)
			}
			continue
		}

		v, err := Decode(key, strings.TrimSpace(value))
		if err != nil {
			return nil, domain.NewError("parse", filePath, lineNo, err.Error(), nil)
		}

		block := doc.Module
		if current != nil {
			block = current
		}
		if err := add(doc, block, Attribute{Key: key, Value: v, Line: lineNo}, checker); err != nil {
			return nil, err
		}
	}
	closeBlock()

	return doc, nil
}
