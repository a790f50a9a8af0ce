package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/orchestrator"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator/analyzers"
	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/schema"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var runFlags scanFlags
var (
	runOutputDir string
	runName      string
	runAnalysis  string
	runRedact    string
)

var runCmd = &cobra.Command{
	Use:          "run [PATHS...]",
	Short:        "write the standard receipt bundle into an output directory",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		redactMode, err := parseRedactMode(runRedact)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(runOutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		paths := scanPaths(args)
		result, err := runScan(paths, runFlags)
		if err != nil {
			return err
		}

		langReport := reportmodel.BuildLangReport(result.Languages, reportmodel.LangOptions{
			ModuleRoots: cfg.ModuleRoots, ModuleDepth: cfg.ModuleDepth,
		})
		moduleReport := reportmodel.BuildModuleReport(result.Languages, reportmodel.LangOptions{
			Children: types.Separate, ModuleRoots: cfg.ModuleRoots, ModuleDepth: cfg.ModuleDepth,
		})
		export := reportmodel.BuildExportData(result.Languages, reportmodel.ExportOptions{
			Children: types.Separate, Module: moduleKeyFunc(cfg.ModuleRoots, cfg.ModuleDepth),
		})
		for i := range export.Rows {
			export.Rows[i].Path = serialize.RedactPath(export.Rows[i].Path, redactMode)
			export.Rows[i].Module = serialize.RedactModuleKey(export.Rows[i].Module, redactMode)
		}

		preset := orchestrator.Preset(runAnalysis)
		root := paths[0]
		receipt := orchestrator.Run(root, paths, export, preset, analyzers.DefaultLimits, 0)

		status := types.Complete
		if len(result.Warnings) > 0 || len(receipt.Warnings) > 0 {
			status = types.Partial
		}

		envFor := func(mode string, schemaVersion int, warnings []string) types.Envelope {
			return serialize.BuildEnvelope(serialize.EnvelopeParams{
				SchemaVersion: schemaVersion,
				ToolName:      version.Name,
				ToolVersion:   version.Version,
				Mode:          mode,
				Status:        status,
				Warnings:      warnings,
				Redacted:      serialize.RedactedFields(redactMode),
			})
		}

		langJSON, err := serialize.RenderLangReportJSON(envFor("lang", schema.CoreReceipt, result.Warnings), langReport)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(runOutputDir, "lang.json"), langJSON, 0o644); err != nil {
			return err
		}

		moduleJSON, err := serialize.RenderModuleReportJSON(envFor("module", schema.CoreReceipt, result.Warnings), moduleReport)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(runOutputDir, "module.json"), moduleJSON, 0o644); err != nil {
			return err
		}

		exportJSONL, err := serialize.RenderJSONL(export, types.RedactNone, true)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(runOutputDir, "export.jsonl"), []byte(exportJSONL), 0o644); err != nil {
			return err
		}

		allWarnings := append([]string(nil), result.Warnings...)
		allWarnings = append(allWarnings, receipt.Warnings...)
		receiptJSON, err := serialize.RenderAnalysisJSON(envFor("analyze", schema.AnalysisReceipt, allWarnings), receipt)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(runOutputDir, "receipt.json"), receiptJSON, 0o644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, lang.json, module.json, export.jsonl to %s\n", "receipt.json", runOutputDir)
		return nil
	},
}

func init() {
	addScanFlags(runCmd, &runFlags)
	runCmd.Flags().StringVar(&runOutputDir, "output-dir", ".", "directory the receipt bundle is written into")
	runCmd.Flags().StringVar(&runName, "name", "", "project name recorded alongside the bundle (currently unused by any receipt field)")
	runCmd.Flags().StringVar(&runAnalysis, "analysis", "receipt", "analyzer preset for receipt.json")
	runCmd.Flags().StringVar(&runRedact, "redact", "none", "redaction mode: none, paths, all")
	rootCmd.AddCommand(runCmd)
}
