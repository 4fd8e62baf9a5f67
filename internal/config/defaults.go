package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := false
	return &Config{
		Input: InputConfig{
			Directories:  []string{"specs"},
			Include:      []string{"*.toml", "*.yaml", "*.yml", "*.md"},
			Exclude:      []string{"vendor/**"},
			Recursive:    &recursive,
			MarkdownTags: []string{"fragment-spec"},
		},
		Output: OutputConfig{
			File:        "generated_fragments_test.go",
			PackageName: "fragments",
			Template:    "gotest",
		},
		Engine: EngineConfig{
			FilterFunc: "FilterTemplate",
			SplitFunc:  "SplitTemplates",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
