// Package serialize renders the in-memory report model into the
// byte-stable JSON/JSONL/CSV/TSV/Markdown/SVG/XML/JSON-LD/Mermaid/
// CycloneDX formats described by spec.md §4.6, plus the shared
// envelope and redaction machinery every format wraps around.
package serialize

import (
	"time"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// EnvelopeParams is the set of fields every receipt envelope needs
// beyond the mode-specific payload.
type EnvelopeParams struct {
	SchemaVersion int
	ToolName      string
	ToolVersion   string
	Mode          string
	Status        types.Status
	Warnings      []string
	Redacted      []string
}

// BuildEnvelope constructs an Envelope, sampling the wall clock
// exactly once. generated_at_ms is the only non-deterministic field
// in any output and is normalized to 0 by determinism tests.
func BuildEnvelope(p EnvelopeParams) types.Envelope {
	return types.Envelope{
		SchemaVersion: p.SchemaVersion,
		GeneratedAtMs: time.Now().UnixMilli(),
		Tool:          types.ToolInfo{Name: p.ToolName, Version: p.ToolVersion, Mode: p.Mode},
		Mode:          p.Mode,
		Status:        p.Status,
		Warnings:      append([]string(nil), p.Warnings...),
		Redacted:      append([]string(nil), p.Redacted...),
	}
}
