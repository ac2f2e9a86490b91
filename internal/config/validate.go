package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fjglira/mkoptions/internal/domain"
)

var macroRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Directories) > 0 && len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty when input.directories is set")
	}

	// Every template and artifact needs a file name
	for key, name := range map[string]string{
		"templates.module_header":  cfg.Templates.ModuleHeader,
		"templates.module_source":  cfg.Templates.ModuleSource,
		"templates.options":        cfg.Templates.Options,
		"templates.options_holder": cfg.Templates.OptionsHolder,
		"templates.man_command":    cfg.Templates.ManCommand,
		"templates.man_smt":        cfg.Templates.ManSMT,
		"templates.man_internals":  cfg.Templates.ManInternals,
		"output.options":           cfg.Output.Options,
		"output.options_holder":    cfg.Output.OptionsHolder,
		"output.man_command":       cfg.Output.ManCommand,
		"output.man_smt":           cfg.Output.ManSMT,
		"output.man_internals":     cfg.Output.ManInternals,
	} {
		if name == "" {
			errs = append(errs, key+" must not be empty")
		} else if strings.ContainsAny(name, `/\`) {
			errs = append(errs, fmt.Sprintf("%s must be a file name, not a path (got %q)", key, name))
		}
	}

	// Generation validation
	gen := cfg.Generation
	if gen.GetoptBase < 256 {
		errs = append(errs, fmt.Sprintf("generation.getopt_base must be at least 256 (got %d)", gen.GetoptBase))
	}
	if gen.HelpOptionWidth < 4 {
		errs = append(errs, fmt.Sprintf("generation.help_option_width must be at least 4 (got %d)", gen.HelpOptionWidth))
	}
	if gen.HelpWidth <= gen.HelpOptionWidth {
		errs = append(errs, fmt.Sprintf("generation.help_width must be larger than generation.help_option_width (got %d)", gen.HelpWidth))
	}
	if gen.HeaderDir == "" {
		errs = append(errs, "generation.header_dir must not be empty")
	}
	if !macroRe.MatchString(gen.ExportMacro) {
		errs = append(errs, fmt.Sprintf("generation.export_macro must be a C identifier (got %q)", gen.ExportMacro))
	}
	if !macroRe.MatchString(gen.HolderMacroPrefix) {
		errs = append(errs, fmt.Sprintf("generation.holder_macro_prefix must be a C identifier (got %q)", gen.HolderMacroPrefix))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		sort.Strings(errs)
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}
