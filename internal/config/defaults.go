package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Input: InputConfig{
			Include:   []string{"*_options.toml", "*_options.yaml", "*_options.yml"},
			Exclude:   []string{"vendor/**", "**/testdata/**"},
			Recursive: &recursive,
		},
		Templates: TemplateConfig{
			ModuleHeader:  "module_template.h",
			ModuleSource:  "module_template.cpp",
			Options:       "options_template.cpp",
			OptionsHolder: "options_holder_template.h",
			ManCommand:    "cvc4.1_template",
			ManSMT:        "SmtEngine.3cvc_template",
			ManInternals:  "options.3cvc_template",
		},
		Output: OutputConfig{
			Options:       "options.cpp",
			OptionsHolder: "options_holder.h",
			ManCommand:    "cvc4.1",
			ManSMT:        "SmtEngine.3cvc",
			ManInternals:  "options.3cvc",
		},
		Generation: GenerationConfig{
			GetoptBase:        256,
			HelpWidth:         80,
			HelpOptionWidth:   25,
			HeaderDir:         "options",
			ExportMacro:       "CVC4_PUBLIC",
			HolderMacroPrefix: "CVC4_OPTIONS",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
