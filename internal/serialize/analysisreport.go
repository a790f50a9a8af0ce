package serialize

import (
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator"
	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// analyzerSectionKey maps an analyzers.Registry name to the
// AnalysisReceipt sub-section key spec.md §3 names. Analyzers with no
// data section of their own (e.g. todo-scan, which only contributes
// Findings) have no entry here.
var analyzerSectionKey = map[string]string{
	"complexity":       "complexity",
	"git":              "git",
	"assets":           "assets",
	"dependencies":     "deps",
	"imports":          "imports",
	"api-surface":      "api_surface",
	"topic-extraction": "topics",
	"entropy":          "entropy",
	"license":          "license",
	"archetype":        "archetype",
	"dup":              "dup",
	"fun":              "fun",
}

// findingJSON is the wire shape of a sensor.Finding.
type findingJSON struct {
	CheckID     string          `json:"check_id"`
	Code        string          `json:"code"`
	Severity    string          `json:"severity"`
	Title       string          `json:"title"`
	Message     string          `json:"message"`
	Location    *locationJSON   `json:"location,omitempty"`
	Evidence    string          `json:"evidence,omitempty"`
	DocsURL     string          `json:"docs_url,omitempty"`
	Fingerprint string          `json:"fingerprint"`
}

type locationJSON struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

type capabilityJSON struct {
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// AnalysisPayload is the JSON shape of an `analyze` receipt
// (spec.md §3 AnalysisReceipt): the shared envelope, derived
// analytics, every section the active preset populated, findings, and
// a capability entry per requested analyzer so "no green by
// omission" (§4.10) survives into the wire format.
type AnalysisPayload struct {
	Envelope     types.Envelope            `json:"envelope"`
	Preset       string                    `json:"preset"`
	Derived      interface{}               `json:"derived"`
	Sections     map[string]interface{}    `json:"sections"`
	Findings     []findingJSON             `json:"findings"`
	Capabilities map[string]capabilityJSON `json:"capabilities"`
}

// RenderAnalysisJSON renders an orchestrator.Receipt as an
// envelope-wrapped canonical JSON document.
func RenderAnalysisJSON(env types.Envelope, receipt orchestrator.Receipt) ([]byte, error) {
	sections := map[string]interface{}{}
	for _, s := range receipt.Sections {
		key, ok := analyzerSectionKey[s.Name]
		if !ok {
			key = s.Name
		}
		sections[key] = s.Data
	}

	findings := make([]findingJSON, 0, len(receipt.Findings))
	for _, f := range receipt.Findings {
		findings = append(findings, toFindingJSON(f))
	}

	caps := map[string]capabilityJSON{}
	for name, c := range receipt.Capabilities {
		key, ok := analyzerSectionKey[name]
		if !ok {
			key = name
		}
		caps[key] = capabilityJSON{State: c.State.String(), Reason: c.Reason}
	}

	payload := AnalysisPayload{
		Envelope:     env,
		Preset:       string(receipt.Preset),
		Derived:      receipt.Derived,
		Sections:     sections,
		Findings:     findings,
		Capabilities: caps,
	}
	return CanonicalJSON(payload)
}

func toFindingJSON(f sensor.Finding) findingJSON {
	var loc *locationJSON
	if f.Location != nil {
		loc = &locationJSON{Path: f.Location.Path, Line: f.Location.Line}
	}
	return findingJSON{
		CheckID:     f.CheckID,
		Code:        f.Code,
		Severity:    f.Severity.String(),
		Title:       f.Title,
		Message:     f.Message,
		Location:    loc,
		Evidence:    f.Evidence,
		DocsURL:     f.DocsURL,
		Fingerprint: f.Fingerprint,
	}
}

// sensorReportJSON is the wire shape of a sensor.Report ("sensor.report.v1").
type sensorReportJSON struct {
	SchemaID     string                    `json:"schema_id"`
	Verdict      string                    `json:"verdict"`
	Summary      string                    `json:"summary"`
	Findings     []findingJSON             `json:"findings"`
	Artifacts    []string                  `json:"artifacts,omitempty"`
	Capabilities map[string]capabilityJSON `json:"capabilities,omitempty"`
	Data         interface{}               `json:"data,omitempty"`
}

// RenderSensorReportJSON renders a sensor.Report as canonical JSON.
func RenderSensorReportJSON(r sensor.Report) ([]byte, error) {
	findings := make([]findingJSON, 0, len(r.Findings))
	for _, f := range r.Findings {
		findings = append(findings, toFindingJSON(f))
	}
	var caps map[string]capabilityJSON
	if r.Capabilities != nil {
		caps = map[string]capabilityJSON{}
		for k, c := range r.Capabilities {
			caps[k] = capabilityJSON{State: c.State.String(), Reason: c.Reason}
		}
	}
	return CanonicalJSON(sensorReportJSON{
		SchemaID:     r.SchemaID,
		Verdict:      r.Verdict.String(),
		Summary:      r.Summary,
		Findings:     findings,
		Artifacts:    r.Artifacts,
		Capabilities: caps,
		Data:         r.Data,
	})
}
