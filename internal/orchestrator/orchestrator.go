// Package orchestrator drives the preset-gated sub-analyzers
// (spec.md §4.10) and assembles their results, together with the
// derived-analytics core, into a single AnalysisReceipt.
package orchestrator

import (
	"sort"

	"github.com/ingo-eichhorst/tokmd/internal/derived"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator/analyzers"
	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// Preset names one of the analyzer bundles the `analyze` command
// activates together (spec.md §4.10's table, GLOSSARY "Preset").
type Preset string

const (
	PresetReceipt      Preset = "receipt"
	PresetHealth       Preset = "health"
	PresetRisk         Preset = "risk"
	PresetSupply       Preset = "supply"
	PresetArchitecture Preset = "architecture"
	PresetTopics       Preset = "topics"
	PresetSecurity     Preset = "security"
	PresetIdentity     Preset = "identity"
	PresetGit          Preset = "git"
	PresetDeep         Preset = "deep"
	PresetFun          Preset = "fun"
)

// presetAnalyzers maps each preset to the analyzer names it runs,
// keyed to the names each analyzer file registers in analyzers.Registry.
var presetAnalyzers = map[Preset][]string{
	PresetReceipt:      {},
	PresetHealth:       {"todo-scan", "complexity", "halstead", "dup", "coverage"},
	PresetRisk:         {"git", "complexity", "halstead"},
	PresetSupply:       {"assets", "dependencies"},
	PresetArchitecture: {"imports", "api-surface"},
	PresetTopics:       {"topic-extraction"},
	PresetSecurity:     {"entropy", "license"},
	PresetIdentity:     {"git", "archetype"},
	PresetGit:          {"git"},
	PresetFun:          {"fun"},
}

// deepAnalyzers is the union of every non-Fun preset's analyzers,
// de-duplicated and sorted: "Deep" in spec.md §4.10's table means
// "all of the above" rows, which stop at Git -- Fun is its own row
// listed after Deep, so it is not folded in here.
func deepAnalyzers() []string {
	seen := map[string]bool{}
	var names []string
	for preset, list := range presetAnalyzers {
		if preset == PresetFun {
			continue
		}
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// AnalyzerNames returns the sorted analyzer names a preset activates.
func AnalyzerNames(p Preset) []string {
	if p == PresetDeep {
		return deepAnalyzers()
	}
	names := append([]string(nil), presetAnalyzers[p]...)
	sort.Strings(names)
	return names
}

// Section holds one named analyzer's contribution plus its capability
// status, so "no green by omission" (spec.md §4.10) survives into the
// assembled receipt even when the analyzer could not run.
type Section struct {
	Name       string
	Data       interface{}
	Capability sensor.CapabilityStatus
}

// Receipt is the AnalysisReceipt payload (spec.md §3): derived
// analytics plus every section the active preset requested, and the
// findings every analyzer contributed.
type Receipt struct {
	Preset       Preset
	Derived      derived.Report
	Sections     []Section
	Findings     []sensor.Finding
	Capabilities map[string]sensor.CapabilityStatus
	Warnings     []string
}

// Run executes every analyzer the preset names over (root, paths,
// export), then assembles derived analytics plus the merged sections
// into a Receipt. Analyzer order follows spec.md §4.10's registry
// names, sorted, for deterministic section ordering independent of
// map iteration.
func Run(root string, paths []string, export types.ExportData, preset Preset, limits analyzers.Limits, windowTokens int) Receipt {
	names := AnalyzerNames(preset)

	receipt := Receipt{
		Preset:       preset,
		Derived:      derived.Build(export, windowTokens),
		Capabilities: map[string]sensor.CapabilityStatus{},
	}

	input := analyzers.Input{Root: root, Paths: paths, Export: export, Limits: limits}

	for _, name := range names {
		fn, ok := analyzers.Registry[name]
		if !ok {
			receipt.Capabilities[name] = sensor.CapabilityStatus{
				State:  sensor.Unavailable,
				Reason: "analyzer not registered in this build",
			}
			receipt.Warnings = append(receipt.Warnings, "analyzer unavailable: "+name)
			continue
		}

		result := fn(input)
		receipt.Capabilities[name] = result.Capability
		if result.Capability.State != sensor.Available {
			receipt.Warnings = append(receipt.Warnings, "capability "+name+" "+result.Capability.State.String()+": "+result.Capability.Reason)
		}
		if result.Data != nil {
			receipt.Sections = append(receipt.Sections, Section{Name: name, Data: result.Data, Capability: result.Capability})
		}
		receipt.Findings = append(receipt.Findings, result.Findings...)
	}

	sort.Slice(receipt.Findings, func(i, j int) bool {
		return receipt.Findings[i].Fingerprint < receipt.Findings[j].Fingerprint
	})

	return receipt
}
