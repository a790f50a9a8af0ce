package cmd

import (
	"fmt"
	"html"
	"sort"
	"strings"

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

var analyzeFlags scanFlags
var (
	analyzePreset string
	analyzeFormat string
	analyzeWindow int
	analyzeOut    string
)

var analyzeCmd = &cobra.Command{
	Use:          "analyze [PATHS...]",
	Short:        "run the preset-gated sub-analyzers and emit an analysis receipt",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := projectconfig.Load(".", "")
		if err != nil {
			return err
		}

		paths := scanPaths(args)
		root := paths[0]

		result, err := runScan(paths, analyzeFlags)
		if err != nil {
			return err
		}

		export := reportmodel.BuildExportData(result.Languages, reportmodel.ExportOptions{
			Children: types.Separate,
			Module:   moduleKeyFunc(cfg.ModuleRoots, cfg.ModuleDepth),
		})

		preset := orchestrator.Preset(analyzePreset)
		receipt := orchestrator.Run(root, paths, export, preset, analyzers.DefaultLimits, analyzeWindow)

		warnings := append([]string(nil), result.Warnings...)
		warnings = append(warnings, receipt.Warnings...)
		status := types.Complete
		if len(warnings) > 0 {
			status = types.Partial
		}

		env := serialize.BuildEnvelope(serialize.EnvelopeParams{
			SchemaVersion: schema.AnalysisReceipt,
			ToolName:      version.Name,
			ToolVersion:   version.Version,
			Mode:          "analyze",
			Status:        status,
			Warnings:      warnings,
		})

		switch analyzeFormat {
		case "xml":
			payload, err := serialize.RenderAnalysisJSON(env, receipt)
			if err != nil {
				return err
			}
			out := serialize.RenderXML(env.SchemaVersion, env.Status, html.EscapeString(string(payload)))
			return writeOutputString(cmd, analyzeOut, out)
		case "svg":
			out := serialize.RenderSVGBadge("findings", fmt.Sprint(len(receipt.Findings)))
			return writeOutputString(cmd, analyzeOut, out)
		case "jsonld":
			out, err := renderAnalysisJSONLD(receipt)
			if err != nil {
				return err
			}
			return writeOutputString(cmd, analyzeOut, out)
		case "mermaid":
			return writeOutputString(cmd, analyzeOut, renderAnalysisMermaid(receipt))
		case "md":
			return writeOutputString(cmd, analyzeOut, renderAnalysisMarkdown(receipt))
		case "html":
			payload, err := serialize.RenderAnalysisJSON(env, receipt)
			if err != nil {
				return err
			}
			return writeOutputString(cmd, analyzeOut, renderAnalysisHTML(string(payload)))
		default:
			data, err := serialize.RenderAnalysisJSON(env, receipt)
			if err != nil {
				return err
			}
			return writeOutput(cmd, analyzeOut, data)
		}
	},
}

// renderAnalysisJSONLD adapts the receipt's derived totals into the
// minimal schema.org shape RenderJSONLD gives a LangReport, without its
// programmingLanguage list, since an AnalysisReceipt has no LangReport
// of its own to reuse directly.
func renderAnalysisJSONLD(receipt orchestrator.Receipt) (string, error) {
	doc := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "SoftwareSourceCode",
		"codeRepository": map[string]interface{}{
			"totalLines":  receipt.Derived.Totals.Lines,
			"totalFiles":  receipt.Derived.Totals.Files,
			"totalTokens": receipt.Derived.Totals.Tokens,
		},
	}
	out, err := serialize.CanonicalJSON(doc)
	return string(out), err
}

// renderAnalysisMermaid graphs the preset's sections under a synthetic
// root node, one leaf per populated section.
func renderAnalysisMermaid(receipt orchestrator.Receipt) string {
	names := make([]string, 0, len(receipt.Sections))
	for _, s := range receipt.Sections {
		names = append(names, s.Name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("graph TD\n")
	fmt.Fprintf(&b, "  Analysis[%s]\n", receipt.Preset)
	for i, name := range names {
		fmt.Fprintf(&b, "  Analysis --> S%d[%s]\n", i, name)
	}
	return b.String()
}

func renderAnalysisMarkdown(receipt orchestrator.Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis (%s)\n\n", receipt.Preset)
	fmt.Fprintf(&b, "- files: %d\n- lines: %d\n- tokens: %d\n\n", receipt.Derived.Totals.Files, receipt.Derived.Totals.Lines, receipt.Derived.Totals.Tokens)

	b.WriteString("## Findings\n\n")
	if len(receipt.Findings) == 0 {
		b.WriteString("none\n\n")
	} else {
		for _, f := range receipt.Findings {
			fmt.Fprintf(&b, "- **%s** [%s] %s\n", f.Severity, f.CheckID, f.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Capabilities\n\n")
	names := make([]string, 0, len(receipt.Capabilities))
	for name := range receipt.Capabilities {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := receipt.Capabilities[name]
		fmt.Fprintf(&b, "- %s: %s\n", name, c.State)
	}
	return b.String()
}

// renderAnalysisHTML wraps the JSON payload in a minimal, unstyled
// document -- dashboard styling is out of scope, this exists only so
// --format html is a valid, parseable choice.
func renderAnalysisHTML(jsonPayload string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>tokmd analysis</title></head><body>")
	b.WriteString("<pre>")
	b.WriteString(html.EscapeString(jsonPayload))
	b.WriteString("</pre></body></html>")
	return b.String()
}

func init() {
	addScanFlags(analyzeCmd, &analyzeFlags)
	analyzeCmd.Flags().StringVar(&analyzePreset, "preset", "receipt", "analyzer preset: receipt, health, risk, supply, architecture, topics, security, identity, git, deep, fun")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "output format: md, json, xml, svg, jsonld, mermaid, html")
	analyzeCmd.Flags().IntVar(&analyzeWindow, "window", 0, "LLM context window in tokens, for the context_window section")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "write to this path instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}
