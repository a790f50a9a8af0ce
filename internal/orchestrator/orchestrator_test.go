package orchestrator

import (
	"testing"

	"github.com/ingo-eichhorst/tokmd/internal/orchestrator/analyzers"
	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func TestAnalyzerNamesDeepIsUnionExcludingFun(t *testing.T) {
	names := AnalyzerNames(PresetDeep)
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if seen["fun"] {
		t.Fatal("Deep must not include the Fun preset's analyzer")
	}
	if !seen["git"] || !seen["complexity"] || !seen["license"] {
		t.Fatalf("Deep missing expected analyzers: %v", names)
	}
}

func TestAnalyzerNamesSortedAndDeduped(t *testing.T) {
	names := AnalyzerNames(PresetDeep)
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not strictly sorted/deduped at %d: %v", i, names)
		}
	}
}

func TestRunUnknownPresetRunsNoAnalyzers(t *testing.T) {
	export := types.ExportData{}
	receipt := Run(t.TempDir(), nil, export, "bogus-preset", analyzers.DefaultLimits, 0)
	if len(receipt.Capabilities) != 0 {
		t.Fatalf("expected no analyzers for an unknown preset, got %v", receipt.Capabilities)
	}
}

func TestRunGitPresetReportsCapabilityOnNonRepo(t *testing.T) {
	dir := t.TempDir()
	receipt := Run(dir, nil, types.ExportData{}, PresetGit, analyzers.DefaultLimits, 0)
	cap, ok := receipt.Capabilities["git"]
	if !ok {
		t.Fatal("expected a git capability entry even when unavailable")
	}
	if cap.State != sensor.Unavailable {
		t.Fatalf("expected Unavailable on a non-repo temp dir, got %v", cap.State)
	}
	if len(receipt.Warnings) == 0 {
		t.Fatal("expected a warning recorded for the unavailable capability")
	}
}
