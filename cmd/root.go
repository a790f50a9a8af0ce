package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "tokmd",
	Short:   "tokmd - deterministic code inventory and analytics engine",
	Long:    "tokmd scans a source tree, classifies every file by language, and produces\ndeterministic line/token/byte counts, cross-cutting analytics, and a\nreceipt-oriented JSON contract suitable for CI gates and LLM context budgets.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error.
// ExitError is handled specially: its Code is used as the exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
