package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frherrer/fragmentgen/internal/config"
	"github.com/frherrer/fragmentgen/internal/converter"
	"github.com/frherrer/fragmentgen/internal/generator"
	"github.com/frherrer/fragmentgen/internal/parser"
	"github.com/frherrer/fragmentgen/internal/scanner"
	tmpl "github.com/frherrer/fragmentgen/internal/template"
)

var checkOnly bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the fragment test file from specs",
	Long: `Scans the spec directories, validates every test case, and writes the
generated Go test file. Nothing is written if any spec fails to parse or validate.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if checkOnly {
			cfg.Check = true
		}

		log.Infof("Scanning directories: %v", cfg.Input.Directories)
		log.Infof("Output file: %s", cfg.Output.File)

		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		return gen.Generate(cfg)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&checkOnly, "check", false, "fail if the output file is not up to date instead of writing it")
	rootCmd.AddCommand(generateCmd)
}

// newGenerator wires all components.
func newGenerator(cfg *config.Config) (*generator.DefaultGenerator, error) {
	recursive := false
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}
	s := scanner.NewScanner(recursive)

	registry := parser.NewDefaultRegistry(cfg.Input.MarkdownTags)

	engine, err := tmpl.NewEngine(cfg.Templates.Directory, cfg.Output.Template, cfg.Output.BuildTag)
	if err != nil {
		return nil, fmt.Errorf("failed to create template engine: %w", err)
	}

	return generator.NewGenerator(s, registry, converter.NewConverter(), engine, log), nil
}
