package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/schema"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/internal/termui"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var moduleFlags scanFlags
var (
	moduleFormat      string
	moduleTop         int
	moduleRootsCSV    string
	moduleDepthFlag   int
	moduleChildren    string
	moduleOut         string
)

var moduleCmd = &cobra.Command{
	Use:          "module [PATHS...]",
	Short:        "aggregate scanned files into a per-module report",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		roots := cfg.ModuleRoots
		if moduleRootsCSV != "" {
			roots = splitCSV(moduleRootsCSV)
		}
		depth := cfg.ModuleDepth
		if cmd.Flags().Changed("module-depth") {
			depth = moduleDepthFlag
		}

		children := types.Separate
		if moduleChildren == "parents-only" {
			children = types.Collapse
		}

		result, err := runScan(scanPaths(args), moduleFlags)
		if err != nil {
			return err
		}

		report := reportmodel.BuildModuleReport(result.Languages, reportmodel.LangOptions{
			Top:         moduleTop,
			Children:    children,
			ModuleRoots: roots,
			ModuleDepth: depth,
		})

		status := types.Complete
		if len(result.Warnings) > 0 {
			status = types.Partial
		}

		var out string
		switch moduleFormat {
		case "md":
			out = serialize.RenderMarkdownTable("Module", report.Rows, report.Totals, true)
		case "tsv":
			out = serialize.RenderTSVTable("Module", report.Rows, report.Totals, true)
		default:
			env := serialize.BuildEnvelope(serialize.EnvelopeParams{
				SchemaVersion: schema.CoreReceipt,
				ToolName:      version.Name,
				ToolVersion:   version.Version,
				Mode:          "module",
				Status:        status,
				Warnings:      result.Warnings,
			})
			data, err := serialize.RenderModuleReportJSON(env, report)
			if err != nil {
				return err
			}
			return writeOutput(cmd, moduleOut, data)
		}
		if moduleOut == "" {
			out = termui.HighlightTable(out, termui.ColorEnabled(os.Stdout))
		}
		return writeOutputString(cmd, moduleOut, out)
	},
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	addScanFlags(moduleCmd, &moduleFlags)
	moduleCmd.Flags().StringVar(&moduleFormat, "format", "md", "output format: md, tsv, json")
	moduleCmd.Flags().IntVar(&moduleTop, "top", 0, "fold all but the top N rows into an Other row (0 disables folding)")
	moduleCmd.Flags().StringVar(&moduleRootsCSV, "module-roots", "", "comma-separated directory names treated as module roots")
	moduleCmd.Flags().IntVar(&moduleDepthFlag, "module-depth", 2, "directory segments kept under a matched module root")
	moduleCmd.Flags().StringVar(&moduleChildren, "children", "separate", "embedded-language handling: separate, parents-only")
	moduleCmd.Flags().StringVar(&moduleOut, "out", "", "write to this path instead of stdout")
	rootCmd.AddCommand(moduleCmd)
}
