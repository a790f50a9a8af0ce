package serialize

import (
	"github.com/invopop/jsonschema"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// ToolSchemaFormat selects the flavor of `tools` output: a raw JSON
// Schema, or one of the two LLM function-calling tool manifests built
// on top of it.
type ToolSchemaFormat string

const (
	FormatJSONSchema ToolSchemaFormat = "jsonschema"
	FormatOpenAI     ToolSchemaFormat = "openai"
	FormatAnthropic  ToolSchemaFormat = "anthropic"
	FormatClap       ToolSchemaFormat = "clap"
)

// envelopeSchema reflects types.Envelope into a JSON Schema document,
// the shape every receipt format shares.
func envelopeSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&types.Envelope{})
}

// RenderToolSchema renders the tool/function-calling manifest for
// format. openai/anthropic wrap the same reflected JSON Schema in
// each provider's function-declaration envelope; clap renders a flat
// text command tree in the style of a generated CLI usage page.
func RenderToolSchema(format ToolSchemaFormat, commands []CommandSpec) (string, error) {
	switch format {
	case FormatOpenAI:
		return renderOpenAITools(commands)
	case FormatAnthropic:
		return renderAnthropicTools(commands)
	case FormatClap:
		return renderClapTree(commands), nil
	default:
		schema := envelopeSchema()
		return jsonMarshalSchema(schema)
	}
}

func jsonMarshalSchema(schema *jsonschema.Schema) (string, error) {
	out, err := CanonicalJSONIndent(schema)
	return string(out), err
}

// CommandSpec is the minimal description of one CLI command needed to
// render a tool manifest: cobra's *cobra.Command already carries all
// of this, so callers pass it through without an extra dependency.
type CommandSpec struct {
	Name        string
	Description string
}

type openAIFunction struct {
	Type     string                 `json:"type"`
	Function openAIFunctionPayload  `json:"function"`
}

type openAIFunctionPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

func renderOpenAITools(commands []CommandSpec) (string, error) {
	functions := make([]openAIFunction, 0, len(commands))
	for _, c := range commands {
		functions = append(functions, openAIFunction{
			Type: "function",
			Function: openAIFunctionPayload{
				Name:        c.Name,
				Description: c.Description,
				Parameters:  envelopeSchema(),
			},
		})
	}
	out, err := CanonicalJSONIndent(functions)
	return string(out), err
}

type anthropicTool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
}

func renderAnthropicTools(commands []CommandSpec) (string, error) {
	tools := make([]anthropicTool, 0, len(commands))
	for _, c := range commands {
		tools = append(tools, anthropicTool{
			Name:        c.Name,
			Description: c.Description,
			InputSchema: envelopeSchema(),
		})
	}
	out, err := CanonicalJSONIndent(tools)
	return string(out), err
}

func renderClapTree(commands []CommandSpec) string {
	out := ""
	for _, c := range commands {
		out += c.Name + "\t" + c.Description + "\n"
	}
	return out
}
