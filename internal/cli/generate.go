package cli

import (
	"github.com/sirupsen/logrus"

	"github.com/fjglira/mkoptions/internal/compiler"
	"github.com/fjglira/mkoptions/internal/converter"
	"github.com/fjglira/mkoptions/internal/generator"
	"github.com/fjglira/mkoptions/internal/output"
	"github.com/fjglira/mkoptions/internal/parser"
	"github.com/fjglira/mkoptions/internal/scanner"
)

// newGenerator wires all components from the loaded configuration.
func newGenerator() *generator.DefaultGenerator {
	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}
	s := scanner.NewScanner(recursive)

	c := compiler.New(parser.NewDefaultRegistry(), converter.NewConverter(), compiler.Settings{
		HeaderDir:  cfg.Generation.HeaderDir,
		GetoptBase: cfg.Generation.GetoptBase,
	}, log)

	w := output.NewWriter(cfg.DryRun, log)
	return generator.NewGenerator(cfg, s, c, w, log)
}

// runGenerate wires all components and runs the generator.
func runGenerate(templatesDir, destDir, docsDir string, specFiles []string) error {
	gen := newGenerator()
	statuses, err := gen.Generate(generator.Request{
		TemplatesDir: templatesDir,
		DestDir:      destDir,
		DocsDir:      docsDir,
		SpecFiles:    specFiles,
	})
	if err != nil {
		return err
	}

	counts := make(map[output.Status]int)
	for _, st := range statuses {
		counts[st]++
	}
	log.WithFields(logrus.Fields{
		"generated":  counts[output.Generated],
		"up-to-date": counts[output.UpToDate],
		"pending":    counts[output.Pending],
	}).Debug("Generation complete")
	return nil
}
