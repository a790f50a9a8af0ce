package serialize

import (
	"github.com/ingo-eichhorst/tokmd/internal/handoff"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func capabilitiesToJSON(caps []handoff.Capability) map[string]capabilityJSON {
	out := map[string]capabilityJSON{}
	for _, c := range caps {
		out[c.Name] = capabilityJSON{State: c.Status.State.String(), Reason: c.Status.Reason}
	}
	return out
}

// HandoffManifestPayload is the envelope-wrapped JSON shape of the
// `manifest.json` artifact handoff.Build produces.
type HandoffManifestPayload struct {
	Envelope       types.Envelope            `json:"envelope"`
	Mode           string                    `json:"mode"`
	Inputs         []string                  `json:"inputs"`
	BudgetTokens   int                       `json:"budget_tokens"`
	UsedTokens     int                       `json:"used_tokens"`
	UtilizationPct float64                   `json:"utilization_pct"`
	Strategy       string                    `json:"strategy"`
	RankBy         string                    `json:"rank_by"`
	Preset         string                    `json:"preset"`
	Capabilities   map[string]capabilityJSON `json:"capabilities"`
	TotalFiles     int                       `json:"total_files"`
	BundledFiles   int                       `json:"bundled_files"`
}

// RenderHandoffManifestJSON renders a handoff.Manifest as canonical JSON.
func RenderHandoffManifestJSON(env types.Envelope, m handoff.Manifest) ([]byte, error) {
	payload := HandoffManifestPayload{
		Envelope:       env,
		Mode:           m.Mode,
		Inputs:         m.Inputs,
		BudgetTokens:   m.BudgetTokens,
		UsedTokens:     m.UsedTokens,
		UtilizationPct: m.UtilizationPct,
		Strategy:       m.Strategy,
		RankBy:         m.RankBy,
		Preset:         m.Preset,
		Capabilities:   capabilitiesToJSON(m.Capabilities),
		TotalFiles:     m.TotalFiles,
		BundledFiles:   m.BundledFiles,
	}
	return CanonicalJSON(payload)
}

// HandoffIntelligencePayload is the envelope-wrapped JSON shape of the
// `intelligence.json` artifact.
type HandoffIntelligencePayload struct {
	Envelope     types.Envelope            `json:"envelope"`
	Tree         string                    `json:"tree"`
	Hotspots     []handoff.Hotspot         `json:"hotspots"`
	Complexity   handoff.Complexity        `json:"complexity"`
	Derived      interface{}               `json:"derived"`
	Warnings     []string                  `json:"warnings"`
	Capabilities map[string]capabilityJSON `json:"capabilities"`
}

// RenderHandoffIntelligenceJSON renders a handoff.Intelligence as
// canonical JSON.
func RenderHandoffIntelligenceJSON(env types.Envelope, in handoff.Intelligence) ([]byte, error) {
	payload := HandoffIntelligencePayload{
		Envelope:     env,
		Tree:         in.Tree,
		Hotspots:     in.Hotspots,
		Complexity:   in.Complexity,
		Derived:      in.Derived,
		Warnings:     in.Warnings,
		Capabilities: capabilitiesToJSON(in.Capabilities),
	}
	return CanonicalJSON(payload)
}
