package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/schema"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var exportFlags scanFlags
var (
	exportFormat  string
	exportMinCode int
	exportMaxRows int
	exportRedact  string
	exportMeta    bool
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:          "export [PATHS...]",
	Short:        "emit a per-file row export",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		redactMode, err := parseRedactMode(exportRedact)
		if err != nil {
			return err
		}

		result, err := runScan(scanPaths(args), exportFlags)
		if err != nil {
			return err
		}

		data := reportmodel.BuildExportData(result.Languages, reportmodel.ExportOptions{
			MinCode:  exportMinCode,
			MaxRows:  exportMaxRows,
			Children: types.Separate,
			Module:   moduleKeyFunc(cfg.ModuleRoots, cfg.ModuleDepth),
		})

		for i := range data.Rows {
			data.Rows[i].Path = serialize.RedactPath(data.Rows[i].Path, redactMode)
			data.Rows[i].Module = serialize.RedactModuleKey(data.Rows[i].Module, redactMode)
		}

		status := types.Complete
		if len(result.Warnings) > 0 {
			status = types.Partial
		}

		switch exportFormat {
		case "csv":
			out, err := serialize.RenderCSV(data, types.RedactNone)
			if err != nil {
				return err
			}
			return writeOutputString(cmd, exportOut, out)
		case "cyclonedx":
			report := reportmodel.BuildLangReport(result.Languages, reportmodel.LangOptions{
				ModuleRoots: cfg.ModuleRoots, ModuleDepth: cfg.ModuleDepth,
			})
			out, err := serialize.RenderCycloneDX(report, version.Name, version.Version)
			if err != nil {
				return err
			}
			return writeOutputString(cmd, exportOut, out)
		case "json":
			env := serialize.BuildEnvelope(serialize.EnvelopeParams{
				SchemaVersion: schema.CoreReceipt,
				ToolName:      version.Name,
				ToolVersion:   version.Version,
				Mode:          "export",
				Status:        status,
				Warnings:      result.Warnings,
				Redacted:      serialize.RedactedFields(redactMode),
			})
			out, err := serialize.RenderExportJSON(env, data)
			if err != nil {
				return err
			}
			return writeOutput(cmd, exportOut, out)
		default:
			out, err := serialize.RenderJSONL(data, types.RedactNone, exportMeta)
			if err != nil {
				return err
			}
			return writeOutputString(cmd, exportOut, out)
		}
	},
}

func init() {
	addScanFlags(exportCmd, &exportFlags)
	exportCmd.Flags().StringVar(&exportFormat, "format", "jsonl", "output format: csv, jsonl, json, cyclonedx")
	exportCmd.Flags().IntVar(&exportMinCode, "min-code", 0, "drop rows with fewer than this many code lines")
	exportCmd.Flags().IntVar(&exportMaxRows, "max-rows", 0, "cap the number of emitted rows (0 disables the cap)")
	exportCmd.Flags().StringVar(&exportRedact, "redact", "none", "redaction mode: none, paths, all")
	exportCmd.Flags().BoolVar(&exportMeta, "meta", false, "emit a leading meta record in jsonl output")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "write to this path instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
