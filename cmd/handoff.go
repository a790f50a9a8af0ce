package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/handoff"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator/analyzers"
	"github.com/ingo-eichhorst/tokmd/internal/projectconfig"
	"github.com/ingo-eichhorst/tokmd/internal/reportmodel"
	"github.com/ingo-eichhorst/tokmd/internal/schema"
	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/internal/serialize"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
	"github.com/ingo-eichhorst/tokmd/pkg/version"
)

var handoffFlags scanFlags
var (
	handoffOutDir   string
	handoffBudget   string
	handoffStrategy string
	handoffRankBy   string
	handoffPreset   string
	handoffCompress bool
	handoffNoGit    bool
	handoffForce    bool
)

var handoffCmd = &cobra.Command{
	Use:          "handoff [PATHS...]",
	Short:        "write an LLM-oriented context handoff bundle",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		budget, err := handoff.ParseBudget(handoffBudget)
		if err != nil {
			return fmt.Errorf("invalid --budget %q: %w", handoffBudget, err)
		}

		if !handoffForce {
			if _, err := os.Stat(handoffOutDir); err == nil {
				if _, err := os.Stat(filepath.Join(handoffOutDir, "manifest.json")); err == nil {
					return fmt.Errorf("%s already contains a handoff bundle (use --force to overwrite)", handoffOutDir)
				}
			}
		}
		if err := os.MkdirAll(handoffOutDir, 0o755); err != nil {
			return fmt.Errorf("create out-dir: %w", err)
		}

		paths := scanPaths(args)
		result, err := runScan(paths, handoffFlags)
		if err != nil {
			return err
		}

		export := reportmodel.BuildExportData(result.Languages, reportmodel.ExportOptions{
			Children: types.Separate, Module: moduleKeyFunc(cfg.ModuleRoots, cfg.ModuleDepth),
		})

		root := paths[0]
		var gitData *analyzers.GitData
		if !handoffNoGit {
			gitResult := analyzers.Git(analyzers.Input{Root: root, Paths: paths, Export: export, Limits: analyzers.DefaultLimits})
			if gitResult.Capability.State == sensor.Available {
				if data, ok := gitResult.Data.(analyzers.GitData); ok {
					gitData = &data
				}
			}
		}

		opts := handoff.Options{
			Paths:    paths,
			Budget:   budget,
			Strategy: handoff.Strategy(handoffStrategy),
			RankBy:   handoff.RankBy(handoffRankBy),
			Preset:   orchestrator.Preset(handoffPreset),
			NoGit:    handoffNoGit,
		}
		bundle := handoff.Build(export, gitData, opts)

		status := types.Complete
		if len(result.Warnings) > 0 || len(bundle.Intelligence.Warnings) > 0 {
			status = types.Partial
		}
		envFor := func(mode string, warnings []string) types.Envelope {
			return serialize.BuildEnvelope(serialize.EnvelopeParams{
				SchemaVersion: schema.HandoffBundle,
				ToolName:      version.Name,
				ToolVersion:   version.Version,
				Mode:          mode,
				Status:        status,
				Warnings:      warnings,
			})
		}

		manifestJSON, err := serialize.RenderHandoffManifestJSON(envFor("handoff-manifest", result.Warnings), bundle.Manifest)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(handoffOutDir, "manifest.json"), manifestJSON, 0o644); err != nil {
			return err
		}

		mapJSONL, err := serialize.RenderJSONL(types.ExportData{Rows: bundle.MapRows}, types.RedactNone, false)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(handoffOutDir, "map.jsonl"), []byte(mapJSONL), 0o644); err != nil {
			return err
		}

		intelligenceJSON, err := serialize.RenderHandoffIntelligenceJSON(envFor("handoff-intelligence", bundle.Intelligence.Warnings), bundle.Intelligence)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(handoffOutDir, "intelligence.json"), intelligenceJSON, 0o644); err != nil {
			return err
		}

		codeBundle, err := handoff.BuildCodeBundle(root, bundle.CodeFiles, handoffCompress)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(handoffOutDir, "code.txt"), []byte(codeBundle), 0o644); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote manifest.json, map.jsonl, intelligence.json, code.txt to %s (%d/%d files, %d tokens used)\n",
			handoffOutDir, bundle.Manifest.BundledFiles, bundle.Manifest.TotalFiles, bundle.Manifest.UsedTokens)
		return nil
	},
}

func init() {
	addScanFlags(handoffCmd, &handoffFlags)
	handoffCmd.Flags().StringVar(&handoffOutDir, "out-dir", ".", "directory the handoff bundle is written into")
	handoffCmd.Flags().StringVar(&handoffBudget, "budget", "128k", "token budget for code.txt, e.g. 128k or 2000000")
	handoffCmd.Flags().StringVar(&handoffStrategy, "strategy", "greedy", "file-selection strategy: greedy, balanced")
	handoffCmd.Flags().StringVar(&handoffRankBy, "rank-by", "tokens", "file ranking key: tokens, churn, path")
	handoffCmd.Flags().StringVar(&handoffPreset, "preset", "receipt", "analyzer preset recorded in the manifest")
	handoffCmd.Flags().BoolVar(&handoffCompress, "compress", false, "strip blank lines from each file in code.txt")
	handoffCmd.Flags().BoolVar(&handoffNoGit, "no-git", false, "skip git-derived hotspots even in a git repository")
	handoffCmd.Flags().BoolVar(&handoffForce, "force", false, "overwrite an existing bundle in out-dir")
	rootCmd.AddCommand(handoffCmd)
}
