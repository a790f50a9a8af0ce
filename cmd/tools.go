package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/tokmd/internal/serialize"
)

var (
	toolsFormat string
	toolsPretty bool
)

var commandSpecs = []serialize.CommandSpec{
	{Name: "lang", Description: "aggregate scanned files into a per-language report"},
	{Name: "module", Description: "aggregate scanned files into a per-module report"},
	{Name: "export", Description: "emit a per-file row export"},
	{Name: "analyze", Description: "run the preset-gated sub-analyzers and emit an analysis receipt"},
	{Name: "diff", Description: "diff two lang reports, given as receipt file paths or git refs"},
	{Name: "badge", Description: "render an SVG badge for one summary metric"},
	{Name: "check-ignore", Description: "report whether the given paths would be ignored by a scan"},
	{Name: "run", Description: "write the standard receipt bundle into an output directory"},
	{Name: "handoff", Description: "write an LLM-oriented context handoff bundle"},
}

var toolsCmd = &cobra.Command{
	Use:          "tools",
	Short:        "render an LLM function-calling tool manifest or raw JSON Schema",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := serialize.ToolSchemaFormat(toolsFormat)
		out, err := serialize.RenderToolSchema(format, commandSpecs)
		if err != nil {
			return err
		}
		return writeOutputString(cmd, "", out)
	},
}

func init() {
	toolsCmd.Flags().StringVar(&toolsFormat, "format", "jsonschema", "output format: openai, anthropic, jsonschema, clap")
	toolsCmd.Flags().BoolVar(&toolsPretty, "pretty", false, "no-op: tool manifests are always rendered indented")
	rootCmd.AddCommand(toolsCmd)
}
