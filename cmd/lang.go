package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/schema"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/internal/termui"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var langFlags scanFlags
var (
	langFormat   string
	langTop      int
	langFiles    bool
	langChildren string
	langRedact   string
	langOut      string
)

var langCmd = &cobra.Command{
	Use:          "lang [PATHS...]",
	Short:        "aggregate scanned files into a per-language report",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		children := types.Collapse
		if langChildren == "separate" {
			children = types.Separate
		}
		redactMode, err := parseRedactMode(langRedact)
		if err != nil {
			return err
		}

		result, err := runScan(scanPaths(args), langFlags)
		if err != nil {
			return err
		}

		report := reportmodel.BuildLangReport(result.Languages, reportmodel.LangOptions{
			Top:         langTop,
			WithFiles:   langFiles,
			Children:    children,
			ModuleRoots: cfg.ModuleRoots,
			ModuleDepth: cfg.ModuleDepth,
		})

		status := types.Complete
		if len(result.Warnings) > 0 {
			status = types.Partial
		}

		var out string
		switch langFormat {
		case "md":
			out = serialize.RenderMarkdownTable("Language", report.Rows, report.Totals, langFiles)
		case "tsv":
			out = serialize.RenderTSVTable("Language", report.Rows, report.Totals, langFiles)
		default:
			env := serialize.BuildEnvelope(serialize.EnvelopeParams{
				SchemaVersion: schema.CoreReceipt,
				ToolName:      version.Name,
				ToolVersion:   version.Version,
				Mode:          "lang",
				Status:        status,
				Warnings:      result.Warnings,
				Redacted:      serialize.RedactedFields(redactMode),
			})
			data, err := serialize.RenderLangReportJSON(env, report)
			if err != nil {
				return err
			}
			return writeOutput(cmd, langOut, data)
		}
		if langOut == "" {
			out = termui.HighlightTable(out, termui.ColorEnabled(os.Stdout))
		}
		return writeOutputString(cmd, langOut, out)
	},
}

func init() {
	addScanFlags(langCmd, &langFlags)
	langCmd.Flags().StringVar(&langFormat, "format", "md", "output format: md, tsv, json")
	langCmd.Flags().IntVar(&langTop, "top", 0, "fold all but the top N rows into an Other row (0 disables folding)")
	langCmd.Flags().BoolVar(&langFiles, "files", false, "include files/avg_lines columns")
	langCmd.Flags().StringVar(&langChildren, "children", "collapse", "embedded-language handling: collapse, separate")
	langCmd.Flags().StringVar(&langRedact, "redact", "none", "redaction mode: none, paths, all")
	langCmd.Flags().StringVar(&langOut, "out", "", "write to this path instead of stdout")
	rootCmd.AddCommand(langCmd)
}
