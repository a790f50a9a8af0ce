package serialize

import (
	"testing"

	"github.com/ingo-eichhorst/tokmd/internal/derived"
	"github.com/ingo-eichhorst/tokmd/internal/diffengine"
	"github.com/ingo-eichhorst/tokmd/internal/handoff"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator"
	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// zeroedEnvelopePair runs BuildEnvelope the way a real command does -- two
// separate calls, each sampling the wall clock -- then zeroes
// generated_at_ms on both, the only field spec.md §8 property 1 allows
// to vary between otherwise-identical runs.
func zeroedEnvelopePair(mode string) (types.Envelope, types.Envelope) {
	params := EnvelopeParams{SchemaVersion: 1, ToolName: "tokmd", ToolVersion: "0.0.0", Mode: mode, Status: types.Complete}
	a := BuildEnvelope(params)
	b := BuildEnvelope(params)
	a.GeneratedAtMs = 0
	b.GeneratedAtMs = 0
	return a, b
}

func TestDeterminismMarkdownTable(t *testing.T) {
	r := sampleLangReport()
	a := RenderMarkdownTable("Language", r.Rows, r.Totals, true)
	b := RenderMarkdownTable("Language", r.Rows, r.Totals, true)
	if a != b {
		t.Fatalf("markdown table not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismTSVTable(t *testing.T) {
	r := sampleLangReport()
	a := RenderTSVTable("Language", r.Rows, r.Totals, true)
	b := RenderTSVTable("Language", r.Rows, r.Totals, true)
	if a != b {
		t.Fatalf("tsv table not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismCSV(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		{Path: "src/main.go", Module: "src", Lang: "Go", Kind: types.Parent, Code: 10, Lines: 10},
		{Path: "src/util.go", Module: "src", Lang: "Go", Kind: types.Parent, Code: 5, Lines: 6},
	}}
	a, err := RenderCSV(data, types.RedactNone)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderCSV(data, types.RedactNone)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("csv not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismSVGBadge(t *testing.T) {
	a := RenderSVGBadge("lines", "12345")
	b := RenderSVGBadge("lines", "12345")
	if a != b {
		t.Fatalf("svg badge not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismXML(t *testing.T) {
	a := RenderXML(1, types.Complete, "<payload/>")
	b := RenderXML(1, types.Complete, "<payload/>")
	if a != b {
		t.Fatalf("xml not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismJSONLD(t *testing.T) {
	r := sampleLangReport()
	a, err := RenderJSONLD(r)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderJSONLD(r)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("jsonld not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismMermaid(t *testing.T) {
	r := sampleLangReport()
	a := RenderMermaid(r)
	b := RenderMermaid(r)
	if a != b {
		t.Fatalf("mermaid not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismCycloneDX(t *testing.T) {
	r := sampleLangReport()
	a, err := RenderCycloneDX(r, "tokmd", "0.0.0")
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderCycloneDX(r, "tokmd", "0.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("cyclonedx not deterministic:\n%q\n%q", a, b)
	}
}

func TestDeterminismToolSchema(t *testing.T) {
	commands := []CommandSpec{
		{Name: "lang", Description: "summarize languages"},
		{Name: "module", Description: "summarize modules"},
	}
	for _, format := range []ToolSchemaFormat{FormatJSONSchema, FormatOpenAI, FormatAnthropic, FormatClap} {
		a, err := RenderToolSchema(format, commands)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		b, err := RenderToolSchema(format, commands)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if a != b {
			t.Fatalf("%s tool schema not deterministic:\n%q\n%q", format, a, b)
		}
	}
}

func TestDeterminismLangReportJSON(t *testing.T) {
	envA, envB := zeroedEnvelopePair("lang")
	r := sampleLangReport()
	a, err := RenderLangReportJSON(envA, r)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderLangReportJSON(envB, r)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("lang report json not deterministic after zeroing generated_at_ms:\n%s\n%s", a, b)
	}
}

func TestDeterminismExportJSON(t *testing.T) {
	envA, envB := zeroedEnvelopePair("export")
	data := types.ExportData{Rows: []types.FileRow{
		{Path: "a.go", Lang: "Go", Kind: types.Parent, Code: 10, Lines: 10},
	}}
	a, err := RenderExportJSON(envA, data)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderExportJSON(envB, data)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("export json not deterministic after zeroing generated_at_ms:\n%s\n%s", a, b)
	}
}

func TestDeterminismDiffJSON(t *testing.T) {
	envA, envB := zeroedEnvelopePair("diff")
	result := diffengine.Result{
		Rows: []diffengine.Row{{Key: "Go", DeltaCode: 10, DeltaLines: 12, DeltaFiles: 1}},
		Totals: diffengine.Totals{DeltaCode: 10, DeltaLines: 12, DeltaFiles: 1},
	}
	a, err := RenderDiffJSON(envA, result)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderDiffJSON(envB, result)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("diff json not deterministic after zeroing generated_at_ms:\n%s\n%s", a, b)
	}
}

func TestDeterminismAnalysisJSON(t *testing.T) {
	envA, envB := zeroedEnvelopePair("analyze")
	receipt := orchestrator.Receipt{
		Preset:  orchestrator.PresetHealth,
		Derived: derived.Report{},
		Sections: []orchestrator.Section{
			{Name: "complexity", Data: map[string]int{"max": 4}, Capability: sensor.CapabilityStatus{State: sensor.Available}},
		},
		Capabilities: map[string]sensor.CapabilityStatus{
			"complexity": {State: sensor.Available},
			"halstead":   {State: sensor.Available},
		},
	}
	a, err := RenderAnalysisJSON(envA, receipt)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderAnalysisJSON(envB, receipt)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("analysis json not deterministic after zeroing generated_at_ms:\n%s\n%s", a, b)
	}
}

func TestDeterminismSensorReportJSON(t *testing.T) {
	report := sensor.NewReport(sensor.Pass, "ok", nil)
	a, err := RenderSensorReportJSON(report)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderSensorReportJSON(report)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("sensor report json not deterministic:\n%s\n%s", a, b)
	}
}

func TestDeterminismHandoffManifestJSON(t *testing.T) {
	envA, envB := zeroedEnvelopePair("handoff")
	manifest := handoff.Manifest{
		Mode:         "greedy",
		Inputs:       []string{"."},
		BudgetTokens: 1000,
		UsedTokens:   500,
		Preset:       "deep",
		Capabilities: []handoff.Capability{{Name: "git", Status: sensor.CapabilityStatus{State: sensor.Available}}},
	}
	a, err := RenderHandoffManifestJSON(envA, manifest)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderHandoffManifestJSON(envB, manifest)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("handoff manifest json not deterministic after zeroing generated_at_ms:\n%s\n%s", a, b)
	}
}

func TestDeterminismHandoffIntelligenceJSON(t *testing.T) {
	envA, envB := zeroedEnvelopePair("handoff")
	intel := handoff.Intelligence{
		Tree:       "root/\n  a.go\n",
		Hotspots:   []handoff.Hotspot{{Path: "a.go", Churn: 3, Lines: 100, Score: 300}},
		Complexity: handoff.Complexity{TotalFunctionsEstimate: 4},
		Derived:    derived.Report{},
	}
	a, err := RenderHandoffIntelligenceJSON(envA, intel)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderHandoffIntelligenceJSON(envB, intel)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatalf("handoff intelligence json not deterministic after zeroing generated_at_ms:\n%s\n%s", a, b)
	}
}
