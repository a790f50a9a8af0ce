package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

var badgeFlags scanFlags
var (
	badgeMetric string
	badgeOut    string
)

var badgeCmd = &cobra.Command{
	Use:          "badge [PATHS...]",
	Short:        "render an SVG badge for one summary metric",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		result, err := runScan(scanPaths(args), badgeFlags)
		if err != nil {
			return err
		}

		report := reportmodel.BuildLangReport(result.Languages, reportmodel.LangOptions{
			ModuleRoots: cfg.ModuleRoots, ModuleDepth: cfg.ModuleDepth,
		})

		value, err := badgeValue(badgeMetric, report.Totals)
		if err != nil {
			return err
		}

		out := serialize.RenderSVGBadge(badgeMetric, value)
		return writeOutputString(cmd, badgeOut, out)
	},
}

// badgeValue selects the one totals field a badge metric names.
func badgeValue(metric string, totals types.Totals) (string, error) {
	switch metric {
	case "lines":
		return fmt.Sprint(totals.Lines), nil
	case "tokens":
		return fmt.Sprint(totals.Tokens), nil
	case "code":
		return fmt.Sprint(totals.Code), nil
	case "blank":
		return fmt.Sprint(totals.Blanks), nil
	case "doc":
		return fmt.Sprint(totals.Comments), nil
	default:
		return "", fmt.Errorf("unknown badge metric %q", metric)
	}
}

func init() {
	addScanFlags(badgeCmd, &badgeFlags)
	badgeCmd.Flags().StringVar(&badgeMetric, "metric", "lines", "summary metric: lines, tokens, doc, blank, code")
	badgeCmd.Flags().StringVar(&badgeOut, "out", "", "write to this path instead of stdout")
	rootCmd.AddCommand(badgeCmd)
}
