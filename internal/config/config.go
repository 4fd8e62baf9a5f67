package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// DefaultConfigFile is the config path used when none is given on the command line.
const DefaultConfigFile = "fragmentgen.yaml"

// Config is the top-level configuration struct.
type Config struct {
	Input     InputConfig    `yaml:"input"`
	Output    OutputConfig   `yaml:"output"`
	Engine    EngineConfig   `yaml:"engine"`
	Templates TemplateConfig `yaml:"templates"`
	Logging   LoggingConfig  `yaml:"logging"`
	DryRun    bool           `yaml:"dry_run"`
	Check     bool           `yaml:"check"`
}

type InputConfig struct {
	Directories  []string `yaml:"directories"`
	Include      []string `yaml:"include"`
	Exclude      []string `yaml:"exclude"`
	Recursive    *bool    `yaml:"recursive"` // pointer to distinguish unset from false
	MarkdownTags []string `yaml:"markdown_tags"`
}

type OutputConfig struct {
	File        string `yaml:"file"`
	PackageName string `yaml:"package_name"`
	BuildTag    string `yaml:"build_tag"`
	Template    string `yaml:"template"`
}

// EngineConfig describes the template engine under test. An empty ImportPath
// means the generated file lives in the engine's own package.
type EngineConfig struct {
	ImportPath   string `yaml:"import_path"`
	PackageAlias string `yaml:"package_alias"`
	FilterFunc   string `yaml:"filter_func"`
	SplitFunc    string `yaml:"split_func"`
}

type TemplateConfig struct {
	Directory string `yaml:"directory"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads a YAML configuration file and returns a Config.
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

// LoadOrDefault behaves like Load, but returns DefaultConfig when path does
// not exist and required is false.
func LoadOrDefault(path string, required bool) (*Config, error) {
	if !required {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
	}
	return Load(path)
}
