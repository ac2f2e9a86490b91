package converter

import (
	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/parser"
)

// Converter transforms validated documents into domain modules.
type Converter interface {
	Convert(doc *parser.ParsedDocument) (*domain.Module, error)
}

// DefaultConverter implements Converter.
type DefaultConverter struct{}

// NewConverter creates a new DefaultConverter.
func NewConverter() *DefaultConverter {
	return &DefaultConverter{}
}

// Convert builds the Module of a document that passed schema validation.
// Unset attributes take their defaults: read_only false, alternate true and
// empty lists. Every option and alias keeps the file and line of its block
// marker for later diagnostics.
func (c *DefaultConverter) Convert(doc *parser.ParsedDocument) (*domain.Module, error) {
	attrs := attributes{doc.Module}
	module := &domain.Module{
		ID:       attrs.str("id"),
		Name:     attrs.str("name"),
		Header:   attrs.str("header"),
		Filename: doc.FilePath,
	}

	for _, b := range doc.Options {
		opt, err := c.convertOption(doc.FilePath, b)
		if err != nil {
			return nil, err
		}
		module.Options = append(module.Options, opt)
	}

	for _, b := range doc.Aliases {
		alias, err := c.convertAlias(doc.FilePath, b)
		if err != nil {
			return nil, err
		}
		module.Aliases = append(module.Aliases, alias)
	}

	return module, nil
}

func (c *DefaultConverter) convertOption(file string, b *parser.Block) (*domain.Option, error) {
	pos := domain.Position{File: file, Line: b.Line}
	attrs := attributes{b}

	category, err := parseCategory(pos, attrs.str("category"))
	if err != nil {
		return nil, err
	}

	return &domain.Option{
		Pos:        pos,
		Category:   category,
		Type:       attrs.str("type"),
		Name:       attrs.str("name"),
		SMTName:    attrs.str("smt_name"),
		Short:      attrs.str("short"),
		Long:       attrs.str("long"),
		Default:    attrs.str("default"),
		Help:       attrs.str("help"),
		Includes:   attrs.list("includes"),
		Handler:    attrs.str("handler"),
		Predicates: attrs.list("predicates"),
		Notifies:   attrs.list("notifies"),
		Links:      attrs.list("links"),
		ReadOnly:   attrs.boolean("read_only", false),
		Alternate:  attrs.boolean("alternate", true),
	}, nil
}

func (c *DefaultConverter) convertAlias(file string, b *parser.Block) (*domain.Alias, error) {
	pos := domain.Position{File: file, Line: b.Line}
	attrs := attributes{b}

	category, err := parseCategory(pos, attrs.str("category"))
	if err != nil {
		return nil, err
	}

	return &domain.Alias{
		Pos:      pos,
		Category: category,
		Long:     attrs.str("long"),
		Links:    attrs.list("links"),
		Help:     attrs.str("help"),
	}, nil
}

func parseCategory(pos domain.Position, s string) (domain.Category, error) {
	c, ok := domain.ParseCategory(s)
	if !ok {
		return "", domain.Errorf("schema", pos, "invalid category value '%s'", s)
	}
	return c, nil
}
