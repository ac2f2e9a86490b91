// Package compiler runs the front end stages over a set of specification
// files: parse, validate, build, resolve and number.
package compiler

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/mkoptions/internal/converter"
	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/enum"
	"github.com/fjglira/mkoptions/internal/parser"
	"github.com/fjglira/mkoptions/internal/resolver"
	"github.com/fjglira/mkoptions/internal/schema"
	"github.com/fjglira/mkoptions/internal/symbols"
)

// Compilation is the validated, resolved and numbered model of one run.
type Compilation struct {
	Modules   []*domain.Module
	Resolved  *resolver.Result
	Numbering *enum.Numbering
}

// Settings tune the front end.
type Settings struct {
	HeaderDir  string // directory module headers must live in
	GetoptBase int    // first long option code
}

// Compiler wires the front end stages together.
type Compiler struct {
	registry  parser.ParserRegistry
	converter converter.Converter
	settings  Settings
	log       *logrus.Logger
}

// New creates a Compiler.
func New(r parser.ParserRegistry, c converter.Converter, settings Settings, log *logrus.Logger) *Compiler {
	return &Compiler{
		registry:  r,
		converter: c,
		settings:  settings,
		log:       log,
	}
}

// Compile processes files in the given order. A fresh symbol table is used
// for every call, and shared by all files of that call, so uniqueness is
// enforced across the whole input set. The first error aborts compilation.
func (c *Compiler) Compile(files []string) (*Compilation, error) {
	table := symbols.NewTable()
	validator := schema.NewValidator(table, c.settings.HeaderDir)

	modules := make([]*domain.Module, 0, len(files))
	for _, file := range files {
		m, err := c.compileFile(file, validator)
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}

	resolved, err := resolver.Resolve(modules, table)
	if err != nil {
		return nil, err
	}

	numbering := enum.Assign(modules, c.settings.GetoptBase)
	c.log.WithFields(logrus.Fields{
		"modules": len(modules),
		"begin":   numbering.Base,
		"end":     numbering.End,
	}).Debug("Resolved long options")

	return &Compilation{
		Modules:   modules,
		Resolved:  resolved,
		Numbering: numbering,
	}, nil
}

func (c *Compiler) compileFile(file string, validator *schema.Validator) (*domain.Module, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, domain.NewError("parse", file, 0, "failed to read file", err)
	}

	p, err := c.registry.ParserFor(filepath.Ext(file))
	if err != nil {
		return nil, domain.NewError("parse", file, 0, "unsupported specification format", err)
	}

	doc, err := p.Parse(file, content, validator)
	if err != nil {
		return nil, err
	}
	if err := validator.CheckDocument(doc); err != nil {
		return nil, err
	}

	m, err := c.converter.Convert(doc)
	if err != nil {
		return nil, err
	}

	c.log.WithField("file", file).Debugf("Parsed %d option(s), %d alias(es)", len(m.Options), len(m.Aliases))
	return m, nil
}
