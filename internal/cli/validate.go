package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and all spec documents",
	Long:  `Loads the configuration and every spec document, reporting parse errors and malformed test cases without writing anything.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		docs, err := gen.Load(cfg)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		cases := 0
		for _, d := range docs {
			cases += len(d.Cases)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d spec document(s) with %d test case(s) are valid.\n", len(docs), cases)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
