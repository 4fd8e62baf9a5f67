package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frherrer/fragmentgen/internal/config"
)

var (
	cfgFile string
	verbose bool
	dryRun  bool
	log     = logrus.New()
	logFile *os.File // open logging.file, if any
)

// rootCmd is the base command for fragmentgen.
var rootCmd = &cobra.Command{
	Use:   "fragmentgen",
	Short: "Generate Go tests for template fragment splitting from declarative specs",
	Long: `fragmentgen reads test specs (TOML, YAML, or Markdown with fenced spec blocks)
describing template sources and the fragments expected from them, and writes
a single Go test file that checks both the single-fragment and the full-split
entry points of the template engine.

Settings are read from fragmentgen.yaml when present.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "load and render specs but don't write files")

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Execute runs the root command.
func Execute() error {
	defer closeLogFile()
	return rootCmd.Execute()
}

// ExecuteArgs runs the root command with explicit arguments, writing command
// output to out.
func ExecuteArgs(out io.Writer, args ...string) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		closeLogFile()
	}()
	return rootCmd.Execute()
}

// loadConfig reads and validates the configuration and applies its logging
// settings. The default config file is optional; an explicit --config is not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if dryRun {
		cfg.DryRun = true
	}

	if err := configureLogging(cfg.Logging); err != nil {
		return nil, err
	}

	log.Debugf("Loaded config: %+v", cfg)
	return cfg, nil
}

func configureLogging(lc config.LoggingConfig) error {
	level := logrus.InfoLevel
	if lc.Level != "" {
		parsed, err := logrus.ParseLevel(lc.Level)
		if err != nil {
			return fmt.Errorf("invalid logging.level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	closeLogFile()
	if lc.File == "" {
		return nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	log.SetOutput(f)
	return nil
}

// closeLogFile points the logger back at stderr and closes logging.file.
func closeLogFile() {
	log.SetOutput(os.Stderr)
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
