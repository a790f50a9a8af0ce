package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/ignoreengine"
	"github.com/ingo-eichhorst/tokmd/internal/pathmodel"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

var checkIgnoreFlags scanFlags

var checkIgnoreCmd = &cobra.Command{
	Use:          "check-ignore PATH...",
	Short:        "report whether the given paths would be ignored by a scan",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := ignoreengine.New(".", checkIgnoreFlags.ignoreOptions())
		if err != nil {
			return err
		}

		anyIgnored := false
		for _, p := range args {
			normalized := pathmodel.NormalizePath(p, "")
			name := filepath.Base(normalized)
			decision := engine.Check(normalized, name, false)
			if decision.Ignored {
				anyIgnored = true
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tignored\t%s\n", normalized, decision.Layer)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tnot-ignored\n", normalized)
			}
		}

		if !anyIgnored {
			return &types.ExitError{Code: 2, Message: "no listed path is ignored"}
		}
		return nil
	},
}

func init() {
	addScanFlags(checkIgnoreCmd, &checkIgnoreFlags)
	rootCmd.AddCommand(checkIgnoreCmd)
}
