package handoff

import (
	"strings"
	"testing"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func sampleExport() types.ExportData {
	return types.ExportData{
		Rows: []types.FileRow{
			{Path: "a.go", Lang: "Go", Kind: types.Parent, Code: 100, Lines: 120, Tokens: 400},
			{Path: "b.go", Lang: "Go", Kind: types.Parent, Code: 50, Lines: 60, Tokens: 200},
			{Path: "c.go", Lang: "Go", Kind: types.Parent, Code: 900, Lines: 950, Tokens: 5000},
		},
	}
}

func TestParseBudget(t *testing.T) {
	cases := map[string]int{
		"":      0,
		"1000":  1000,
		"128k":  128000,
		"2M":    2_000_000,
		"10K":   10000,
	}
	for in, want := range cases {
		got, err := ParseBudget(in)
		if err != nil {
			t.Fatalf("ParseBudget(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseBudget(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseBudgetInvalid(t *testing.T) {
	if _, err := ParseBudget("not-a-number"); err == nil {
		t.Fatal("expected error for non-numeric budget")
	}
}

func TestBuildNoGitSkippedCapability(t *testing.T) {
	bundle := Build(sampleExport(), nil, Options{
		Paths:    []string{"."},
		Budget:   1000,
		Strategy: StrategyGreedy,
		RankBy:   RankByTokens,
		NoGit:    true,
	})

	if len(bundle.Manifest.Capabilities) != 1 {
		t.Fatalf("expected exactly one capability entry, got %d", len(bundle.Manifest.Capabilities))
	}
	cap := bundle.Manifest.Capabilities[0]
	if cap.Name != "git_history" {
		t.Fatalf("expected git_history capability, got %q", cap.Name)
	}
	if cap.Status.State != sensor.Skipped {
		t.Fatalf("expected Skipped state when --no-git is set, got %v", cap.Status.State)
	}
	if cap.Status.Reason == "" {
		t.Fatalf("expected a reason recorded for the skipped capability")
	}
	if len(bundle.Intelligence.Warnings) != 0 {
		t.Fatalf("NoGit should not produce a warning (it's an explicit skip, not an unavailability): %v", bundle.Intelligence.Warnings)
	}
}

func TestBuildGreedyBudgetNeverExceedsLimit(t *testing.T) {
	bundle := Build(sampleExport(), nil, Options{
		Budget:   500,
		Strategy: StrategyGreedy,
		RankBy:   RankByTokens,
		NoGit:    true,
	})

	used := 0
	for _, f := range bundle.CodeFiles {
		used += f.Tokens
	}
	if used > 500 {
		t.Fatalf("selected files use %d tokens, exceeds budget of 500", used)
	}
	if bundle.Manifest.UsedTokens != used {
		t.Fatalf("manifest UsedTokens %d does not match sum of selected files %d", bundle.Manifest.UsedTokens, used)
	}
}

func TestBuildBalancedCapsSingleFileShare(t *testing.T) {
	bundle := Build(sampleExport(), nil, Options{
		Budget:   1000,
		Strategy: StrategyBalanced,
		RankBy:   RankByTokens,
		NoGit:    true,
	})

	for _, f := range bundle.CodeFiles {
		if f.Tokens > 100 {
			t.Fatalf("balanced strategy should exclude files over 10%% of budget (100 tokens), got %d", f.Tokens)
		}
	}
}

func TestBuildRankByPathIsLexicographic(t *testing.T) {
	bundle := Build(sampleExport(), nil, Options{
		Budget:   100000,
		Strategy: StrategyGreedy,
		RankBy:   RankByPath,
		NoGit:    true,
	})

	for i := 1; i < len(bundle.CodeFiles); i++ {
		if bundle.CodeFiles[i-1].Path > bundle.CodeFiles[i].Path {
			t.Fatalf("expected path-ascending order, got %q before %q", bundle.CodeFiles[i-1].Path, bundle.CodeFiles[i].Path)
		}
	}
}

func TestBuildTreeIncludesAllFiles(t *testing.T) {
	bundle := Build(sampleExport(), nil, Options{Budget: 0, Strategy: StrategyGreedy, RankBy: RankByTokens, NoGit: true})
	tree := bundle.Intelligence.Tree
	for _, want := range []string{"a.go", "b.go", "c.go"} {
		if !strings.Contains(tree, want) {
			t.Errorf("expected tree to mention %q:\n%s", want, tree)
		}
	}
}
