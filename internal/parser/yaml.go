package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/mkoptions/internal/domain"
)

// YAMLParser reads specification files written as YAML. The top-level
// mapping holds the module attributes plus "option" and "alias" sequences,
// each entry of which is one block:
//
//	id: BASE
//	name: Base
//	header: options/base_options.h
//	option:
//	  - category: common
//	    type: bool
//	    long: verbose
//
// Values map onto the same shapes as the TOML format, so every schema check
// applies unchanged.
type YAMLParser struct{}

// NewYAMLParser creates a new YAMLParser.
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

// SupportedExtensions returns the file extensions this parser handles.
func (p *YAMLParser) SupportedExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Parse parses a YAML specification file.
func (p *YAMLParser) Parse(filePath string, content []byte, checker Checker) (*ParsedDocument, error) {
	doc := newDocument(filePath, "yaml")

	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, domain.NewError("parse", filePath, 0, "invalid YAML", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, domain.NewError("parse", filePath, top.Line, "expected a mapping of module attributes", nil)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(top.Content); i += 2 {
		k, v := top.Content[i], top.Content[i+1]
		if seen[k.Value] {
			return nil, domain.NewError("parse", filePath, k.Line,
				fmt.Sprintf("duplicate module attribute '%s'", k.Value), nil)
		}
		seen[k.Value] = true

		switch k.Value {
		case "option", "alias":
			kind := BlockOption
			if k.Value == "alias" {
				kind = BlockAlias
			}
			blocks, err := p.parseBlocks(doc, kind, v, checker)
			if err != nil {
				return nil, err
			}
			if kind == BlockOption {
				doc.Options = blocks
			} else {
				doc.Aliases = blocks
			}
		default:
			if err := p.addPair(doc, doc.Module, k, v, checker); err != nil {
				return nil, err
			}
		}
	}

	return doc, nil
}

func (p *YAMLParser) parseBlocks(doc *ParsedDocument, kind BlockKind, seq *yaml.Node, checker Checker) ([]*Block, error) {
	if seq.Kind != yaml.SequenceNode {
		return nil, domain.NewError("parse", doc.FilePath, seq.Line,
			fmt.Sprintf("expected a list of %s definitions", kind), nil)
	}
	var blocks []*Block
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return nil, domain.NewError("parse", doc.FilePath, item.Line,
				fmt.Sprintf("expected a mapping for %s definition", kind), nil)
		}
		b := &Block{Kind: kind, Line: item.Line}
		for i := 0; i+1 < len(item.Content); i += 2 {
			if err := p.addPair(doc, b, item.Content[i], item.Content[i+1], checker); err != nil {
				return nil, err
			}
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func (p *YAMLParser) addPair(doc *ParsedDocument, b *Block, k, v *yaml.Node, checker Checker) error {
	val, err := decodeNode(k.Value, v)
	if err != nil {
		return domain.NewError("parse", doc.FilePath, v.Line, err.Error(), nil)
	}
	return add(doc, b, Attribute{Key: k.Value, Value: val, Line: k.Line}, checker)
}

// decodeNode converts a YAML node into a Value following the rules of Decode.
func decodeNode(key string, n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return Value{Kind: KindAbsent}, nil
		case "!!bool":
			return BoolValue(strings.EqualFold(n.Value, "true")), nil
		}
		if IsBoolAttribute(key) {
			switch n.Value {
			case "true":
				return BoolValue(true), nil
			case "false":
				return BoolValue(false), nil
			}
		}
		return StringValue(n.Value), nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("parsing list: expected string at line %d", c.Line)
			}
			items = append(items, c.Value)
		}
		return ListValue(items), nil
	}
	return Value{}, fmt.Errorf("invalid value for attribute '%s'", key)
}
