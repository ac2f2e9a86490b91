package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fjglira/mkoptions/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Templates  TemplateConfig   `yaml:"templates"`
	Output     OutputConfig     `yaml:"output"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
	DryRun     bool             `yaml:"dry_run"`
}

// InputConfig lists directories searched for additional specification
// files. Files named on the command line are always used.
type InputConfig struct {
	Directories []string `yaml:"directories"`
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	Recursive   *bool    `yaml:"recursive"` // pointer to distinguish unset from false
}

// TemplateConfig names the template files. Source templates are read from
// the templates directory, manual templates from the docs directory.
type TemplateConfig struct {
	ModuleHeader  string `yaml:"module_header"`
	ModuleSource  string `yaml:"module_source"`
	Options       string `yaml:"options"`
	OptionsHolder string `yaml:"options_holder"`
	ManCommand    string `yaml:"man_command"`
	ManSMT        string `yaml:"man_smt"`
	ManInternals  string `yaml:"man_internals"`
}

// OutputConfig names the aggregate artifacts.
type OutputConfig struct {
	Options       string `yaml:"options"`
	OptionsHolder string `yaml:"options_holder"`
	ManCommand    string `yaml:"man_command"`
	ManSMT        string `yaml:"man_smt"`
	ManInternals  string `yaml:"man_internals"`
}

type GenerationConfig struct {
	GetoptBase        int    `yaml:"getopt_base"`
	HelpWidth         int    `yaml:"help_width"`
	HelpOptionWidth   int    `yaml:"help_option_width"`
	HeaderDir         string `yaml:"header_dir"`
	ExportMacro       string `yaml:"export_macro"`
	HolderMacroPrefix string `yaml:"holder_macro_prefix"`
	HelpMarkup        bool   `yaml:"help_markup"` // render *emph*, **strong** and `code` in help
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML configuration file and returns a Config. Values missing
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError("config", path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewError("config", path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path when it is set and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}
