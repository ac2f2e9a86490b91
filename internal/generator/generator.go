package generator

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/mkoptions/internal/codegen"
	"github.com/fjglira/mkoptions/internal/compiler"
	"github.com/fjglira/mkoptions/internal/config"
	"github.com/fjglira/mkoptions/internal/docgen"
	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/output"
	"github.com/fjglira/mkoptions/internal/scanner"
	tmpl "github.com/fjglira/mkoptions/internal/template"
)

// Request is one invocation of the generator.
type Request struct {
	TemplatesDir string
	DestDir      string
	DocsDir      string
	SpecFiles    []string
}

// Generator is the top-level orchestrator.
type Generator interface {
	Generate(req Request) (map[string]output.Status, error)
	Check(specFiles []string) (*compiler.Compilation, error)
}

// DefaultGenerator implements Generator by wiring all components together.
type DefaultGenerator struct {
	cfg      *config.Config
	scanner  scanner.Scanner
	compiler *compiler.Compiler
	writer   *output.Writer
	log      *logrus.Logger
}

// NewGenerator creates a new DefaultGenerator with all dependencies.
func NewGenerator(
	cfg *config.Config,
	s scanner.Scanner,
	c *compiler.Compiler,
	w *output.Writer,
	log *logrus.Logger,
) *DefaultGenerator {
	return &DefaultGenerator{
		cfg:      cfg,
		scanner:  s,
		compiler: c,
		writer:   w,
		log:      log,
	}
}

// Generate runs the full pipeline: check arguments, load templates, compile,
// render every artifact and finally write them. Nothing is written unless
// every earlier step succeeded.
func (g *DefaultGenerator) Generate(req Request) (map[string]output.Status, error) {
	// Step 1: Check invocation
	for _, dir := range []string{req.TemplatesDir, req.DestDir, req.DocsDir} {
		if !isDir(dir) {
			return nil, domain.NewUsageError("directory '%s' does not exist", dir)
		}
	}
	files, err := g.inputFiles(req.SpecFiles)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewUsageError("no specification files given")
	}

	// Step 2: Load templates
	engine, err := tmpl.NewEngine(g.templateSources(req.TemplatesDir, req.DocsDir)...)
	if err != nil {
		return nil, err
	}

	// Step 3: Compile
	c, err := g.compiler.Compile(files)
	if err != nil {
		return nil, err
	}
	g.log.Infof("Compiled %d module(s) with %d long option(s)", len(c.Modules), len(c.Numbering.Entries))

	// Step 4: Render
	artifacts, err := g.render(engine, c, req)
	if err != nil {
		return nil, err
	}

	// Step 5: Write
	return g.writer.WriteAll(artifacts)
}

// Check runs the front end only.
func (g *DefaultGenerator) Check(specFiles []string) (*compiler.Compilation, error) {
	files, err := g.inputFiles(specFiles)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewUsageError("no specification files given")
	}
	return g.compiler.Compile(files)
}

// inputFiles returns the files named on the command line followed by the
// files discovered in the configured input directories. Named files are kept
// as given, so naming a file twice fails on its module id. Discovered files
// that repeat an earlier file are skipped.
func (g *DefaultGenerator) inputFiles(named []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, f := range named {
		if !isFile(f) {
			return nil, domain.NewUsageError("file '%s' does not exist", f)
		}
		seen[filepath.Clean(f)] = true
		files = append(files, f)
	}

	var discovered []string
	for _, dir := range g.cfg.Input.Directories {
		g.log.Debugf("Scanning directory: %s", dir)
		found, err := g.scanner.Scan(dir, g.cfg.Input.Include, g.cfg.Input.Exclude)
		if err != nil {
			return nil, err
		}
		discovered = append(discovered, found...)
	}
	sort.Strings(discovered)
	for _, f := range discovered {
		if key := filepath.Clean(f); !seen[key] {
			seen[key] = true
			files = append(files, f)
		}
	}
	return files, nil
}

// templateSources lists the source templates in srcDir and the manual
// templates in docsDir.
func (g *DefaultGenerator) templateSources(srcDir, docsDir string) []tmpl.Source {
	t := g.cfg.Templates
	return []tmpl.Source{
		{Dir: srcDir, Name: t.ModuleHeader},
		{Dir: srcDir, Name: t.ModuleSource},
		{Dir: srcDir, Name: t.Options},
		{Dir: srcDir, Name: t.OptionsHolder},
		{Dir: docsDir, Name: t.ManCommand},
		{Dir: docsDir, Name: t.ManSMT},
		{Dir: docsDir, Name: t.ManInternals},
	}
}

func (g *DefaultGenerator) render(engine tmpl.TemplateEngine, c *compiler.Compilation, req Request) ([]output.Artifact, error) {
	t, out, gen := g.cfg.Templates, g.cfg.Output, g.cfg.Generation
	settings := codegen.Settings{
		ExportMacro:       gen.ExportMacro,
		HolderMacroPrefix: gen.HolderMacroPrefix,
	}

	var artifacts []output.Artifact
	add := func(dir, name, template string, slots tmpl.Slots) error {
		content, err := engine.Render(template, slots)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, output.Artifact{Dir: dir, Name: name, Content: content})
		return nil
	}

	for _, m := range c.Modules {
		header, source := codegen.ModuleSlots(m, settings)
		if err := add(req.DestDir, m.BaseName()+".h", t.ModuleHeader, header); err != nil {
			return nil, err
		}
		if err := add(req.DestDir, m.BaseName()+".cpp", t.ModuleSource, source); err != nil {
			return nil, err
		}
	}

	docs := docgen.Build(c.Modules, docgen.Settings{
		HelpWidth:   gen.HelpWidth,
		OptionWidth: gen.HelpOptionWidth,
		Markup:      gen.HelpMarkup,
	})
	options, holder := codegen.RegistrySlots(c, settings)
	for k, v := range docs.HelpSlots() {
		options[k] = v
	}

	steps := []struct {
		dir, name, template string
		slots               tmpl.Slots
	}{
		{req.DestDir, out.OptionsHolder, t.OptionsHolder, holder},
		{req.DestDir, out.Options, t.Options, options},
		{req.DocsDir, out.ManCommand, t.ManCommand, docs.ManSlots()},
		{req.DocsDir, out.ManSMT, t.ManSMT, docs.SMTSlots()},
		{req.DocsDir, out.ManInternals, t.ManInternals, docs.InternalsSlots()},
	}
	for _, s := range steps {
		if err := add(s.dir, s.name, s.template, s.slots); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
