// Package schema declares the monotonic schema_version constants
// carried by every top-level receipt (spec.md §9). Bumping any of
// these is a deliberate, lockstep change: every renderer and fixture
// that embeds the old constant must move together.
package schema

// Version numbers are independent per receipt family; they do not
// share a single global counter.
const (
	CoreReceipt     = 1 // lang/module/export envelopes
	AnalysisReceipt = 1 // analyze command output
	HandoffBundle   = 1 // handoff manifest.json
	ContextBundle   = 1 // reserved for a future windowed-context bundle
	ContextReceipt  = 1 // reserved for a future windowed-context receipt
	Cockpit         = 1 // reserved for a future aggregated dashboard feed
	ToolSchema      = 1 // tools --format jsonschema/openai/anthropic
	SensorEnvelope  = 1 // sensor.report.v1
)

// SensorSchemaID is the string schema identifier carried by every
// SensorReport, distinct from the integer schema_version used
// elsewhere.
const SensorSchemaID = "sensor.report.v1"
