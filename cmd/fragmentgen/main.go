// Command fragmentgen generates Go tests for template fragment splitting
// from declarative spec documents.
package main

import (
	"os"

	"github.com/frherrer/fragmentgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
