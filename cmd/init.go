package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
)

var (
	initTemplate      string
	initForce         bool
	initNonInteractive bool
	initPrint         bool
)

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "scaffold a tokmd.yml project config",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl := projectconfig.Template(initTemplate)

		if initPrint {
			out, err := projectconfig.Render(tmpl)
			if err != nil {
				return err
			}
			return writeOutputString(cmd, "", string(out))
		}

		path, err := projectconfig.Write(".", tmpl, initForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initTemplate, "template", "", "starter template: rust, node, mono")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing tokmd.yml")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "no-op: init never prompts")
	initCmd.Flags().BoolVar(&initPrint, "print", false, "print the rendered config instead of writing it")
	rootCmd.AddCommand(initCmd)
}
