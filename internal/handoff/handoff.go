// Package handoff builds the four-file LLM context bundle (manifest,
// file map, intelligence summary, token-budgeted code dump) the
// `handoff` command writes, grounded on original_source's
// crates/tokmd/src/commands/handoff.rs: same four artifacts and
// budget/strategy/rank-by shape, rebuilt over this engine's
// ExportData/derived/orchestrator types instead of that crate's own.
package handoff

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ingo-eichhorst/tokmd/internal/derived"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator"
	"github.com/ingo-eichhorst/tokmd/internal/orchestrator/analyzers"
	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// Strategy selects which files make it into code.txt under budget
// pressure.
type Strategy string

const (
	StrategyGreedy   Strategy = "greedy"
	StrategyBalanced Strategy = "balanced"
)

// RankBy selects the per-file score selectFiles uses to prioritize
// files for the code bundle.
type RankBy string

const (
	RankByTokens RankBy = "tokens"
	RankByChurn  RankBy = "churn"
	RankByPath   RankBy = "path"
)

// ParseBudget accepts a plain integer token count, or the same count
// with a "k"/"m" suffix (e.g. "128k" == 128000), case-insensitive.
func ParseBudget(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, nil
	}
	mult := 1
	switch {
	case strings.HasSuffix(s, "k"):
		mult = 1000
		s = strings.TrimSuffix(s, "k")
	case strings.HasSuffix(s, "m"):
		mult = 1_000_000
		s = strings.TrimSuffix(s, "m")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n * mult, nil
}

// Capability is one named availability check the bundle records
// (spec.md §4.10's "no green by omission", applied to the handoff
// command's own git-dependent steps).
type Capability struct {
	Name   string
	Status sensor.CapabilityStatus
}

// Manifest is the `manifest.json` artifact: bundle metadata, budget
// accounting, and declared capabilities.
type Manifest struct {
	Mode           string
	Inputs         []string
	BudgetTokens   int
	UsedTokens     int
	UtilizationPct float64
	Strategy       string
	RankBy         string
	Preset         string
	Capabilities   []Capability
	TotalFiles     int
	BundledFiles   int
}

// Hotspot mirrors analyzers.Hotspot for the intelligence section,
// decoupled from the orchestrator's internal type.
type Hotspot struct {
	Path  string
	Churn int
	Lines int
	Score int
}

// Complexity is a cheap, parser-free complexity estimate derived
// purely from line/code counts -- the same heuristic
// original_source's handoff.rs uses (no full AST pass for a handoff
// bundle; `analyze --preset health` is the source of truth for real
// cyclomatic complexity).
type Complexity struct {
	TotalFunctionsEstimate int
	AvgFunctionLength      float64
	MaxFunctionLength      int
	AvgCyclomaticEstimate  float64
	MaxCyclomaticEstimate  int
	HighRiskFiles          int
}

// Intelligence is the `intelligence.json` artifact.
type Intelligence struct {
	Tree          string
	Hotspots      []Hotspot
	Complexity    Complexity
	Derived       derived.Report
	Warnings      []string
	Capabilities  []Capability
}

// Options configures Build.
type Options struct {
	Paths        []string
	Budget       int
	Strategy     Strategy
	RankBy       RankBy
	Preset       orchestrator.Preset
	NoGit        bool
}

// Bundle is the full in-memory handoff output, ready for its four
// files to be written by the caller.
type Bundle struct {
	Manifest     Manifest
	MapRows      []types.FileRow
	Intelligence Intelligence
	CodeFiles    []SelectedFile
}

// SelectedFile is one file chosen for code.txt, alongside its
// contribution to the token budget.
type SelectedFile struct {
	Path   string
	Tokens int
}

const highRiskCodeLines = 500
const hotspotLimit = 20

// Build assembles a Bundle from export and, when available, the
// git-derived churn/hotspot data an analyzers.Git pass already
// computed. git is nil when --no-git was passed or the
// root isn't a git repository; capabilities then record why.
func Build(export types.ExportData, git *analyzers.GitData, opts Options) Bundle {
	parents := parentRows(export.Rows)

	caps := buildCapabilities(git, opts.NoGit)

	selected := selectFiles(parents, git, opts)
	usedTokens := 0
	for _, f := range selected {
		usedTokens += f.Tokens
	}
	utilization := 0.0
	if opts.Budget > 0 {
		utilization = round2(float64(usedTokens) / float64(opts.Budget) * 100)
	}

	derivedReport := derived.Build(export, 0)

	var warnings []string
	var hotspots []Hotspot
	if git != nil {
		hotspots = toHotspots(git, parents)
	} else if !opts.NoGit {
		warnings = append(warnings, "hotspots unavailable: no git history found")
	}

	manifest := Manifest{
		Mode:           "handoff",
		Inputs:         opts.Paths,
		BudgetTokens:   opts.Budget,
		UsedTokens:     usedTokens,
		UtilizationPct: utilization,
		Strategy:       string(opts.Strategy),
		RankBy:         string(opts.RankBy),
		Preset:         string(opts.Preset),
		Capabilities:   caps,
		TotalFiles:     len(parents),
		BundledFiles:   len(selected),
	}

	intelligence := Intelligence{
		Tree:         buildTree(parents),
		Hotspots:     hotspots,
		Complexity:   buildComplexity(parents),
		Derived:      derivedReport,
		Warnings:     warnings,
		Capabilities: caps,
	}

	return Bundle{Manifest: manifest, MapRows: parents, Intelligence: intelligence, CodeFiles: selected}
}

func buildCapabilities(git *analyzers.GitData, noGit bool) []Capability {
	state := func(ok bool, reason string) sensor.CapabilityStatus {
		if noGit {
			return sensor.CapabilityStatus{State: sensor.Skipped, Reason: "disabled via --no-git"}
		}
		if ok {
			return sensor.CapabilityStatus{State: sensor.Available}
		}
		return sensor.CapabilityStatus{State: sensor.Unavailable, Reason: reason}
	}
	return []Capability{
		{Name: "git_history", Status: state(git != nil, "not a git repository or no commit history")},
	}
}

func parentRows(rows []types.FileRow) []types.FileRow {
	out := make([]types.FileRow, 0, len(rows))
	for _, r := range rows {
		if r.Kind == types.Parent {
			out = append(out, r)
		}
	}
	return out
}

// selectFiles ranks parents by RankBy and greedily fills the token
// budget. Balanced strategy caps any single file at 10% of the
// budget, so a handful of huge files can't starve the rest of the
// selection; greedy has no such cap.
func selectFiles(parents []types.FileRow, git *analyzers.GitData, opts Options) []SelectedFile {
	ranked := make([]types.FileRow, len(parents))
	copy(ranked, parents)

	churnOf := func(path string) int {
		if git == nil {
			return 0
		}
		return git.ChurnByPath[path]
	}

	sort.Slice(ranked, func(i, j int) bool {
		switch opts.RankBy {
		case RankByChurn:
			ci, cj := churnOf(ranked[i].Path), churnOf(ranked[j].Path)
			if ci != cj {
				return ci > cj
			}
		case RankByPath:
			return ranked[i].Path < ranked[j].Path
		default:
			if ranked[i].Tokens != ranked[j].Tokens {
				return ranked[i].Tokens > ranked[j].Tokens
			}
		}
		return ranked[i].Path < ranked[j].Path
	})

	if opts.Budget <= 0 {
		out := make([]SelectedFile, len(ranked))
		for i, r := range ranked {
			out[i] = SelectedFile{Path: r.Path, Tokens: r.Tokens}
		}
		return out
	}

	maxPerFile := opts.Budget
	if opts.Strategy == StrategyBalanced {
		maxPerFile = opts.Budget / 10
	}

	var out []SelectedFile
	remaining := opts.Budget
	for _, r := range ranked {
		if remaining <= 0 {
			break
		}
		if maxPerFile > 0 && r.Tokens > maxPerFile {
			continue
		}
		if r.Tokens > remaining {
			continue
		}
		out = append(out, SelectedFile{Path: r.Path, Tokens: r.Tokens})
		remaining -= r.Tokens
	}
	return out
}

func toHotspots(git *analyzers.GitData, parents []types.FileRow) []Hotspot {
	linesByPath := make(map[string]int, len(parents))
	for _, r := range parents {
		linesByPath[r.Path] = r.Lines
	}

	hotspots := make([]Hotspot, 0, len(git.Hotspots))
	for _, h := range git.Hotspots {
		hotspots = append(hotspots, Hotspot{Path: h.Path, Churn: h.Churn, Lines: linesByPath[h.Path], Score: h.Score})
	}
	if len(hotspots) > hotspotLimit {
		hotspots = hotspots[:hotspotLimit]
	}
	return hotspots
}

func buildComplexity(parents []types.FileRow) Complexity {
	if len(parents) == 0 {
		return Complexity{}
	}

	var totalCode, maxFileCode, highRisk int
	for _, r := range parents {
		totalCode += r.Code
		if r.Code > maxFileCode {
			maxFileCode = r.Code
		}
		if r.Code > highRiskCodeLines {
			highRisk++
		}
	}

	estimatedFunctions := totalCode / 30
	if estimatedFunctions < 1 {
		estimatedFunctions = 1
	}
	avgFunctionLength := round2(float64(totalCode) / float64(estimatedFunctions))
	avgCyclomatic := round2(float64(totalCode) / float64(len(parents)) / 50)
	if avgCyclomatic < 1 {
		avgCyclomatic = 1
	}
	maxCyclomatic := maxFileCode / 50
	if maxCyclomatic < 1 {
		maxCyclomatic = 1
	}

	return Complexity{
		TotalFunctionsEstimate: estimatedFunctions,
		AvgFunctionLength:      avgFunctionLength,
		MaxFunctionLength:      maxFileCode,
		AvgCyclomaticEstimate:  avgCyclomatic,
		MaxCyclomaticEstimate:  maxCyclomatic,
		HighRiskFiles:          highRisk,
	}
}

// buildTree renders an indented directory tree annotated with
// per-node line/token totals, the same shape original_source's
// handoff.rs emits for quick orientation.
func buildTree(parents []types.FileRow) string {
	type node struct {
		children map[string]*node
		order    []string
		lines    int
		tokens   int
	}
	newNode := func() *node { return &node{children: map[string]*node{}} }
	root := newNode()

	var insert func(n *node, parts []string, lines, tokens int)
	insert = func(n *node, parts []string, lines, tokens int) {
		n.lines += lines
		n.tokens += tokens
		if len(parts) == 0 {
			return
		}
		head, tail := parts[0], parts[1:]
		child, ok := n.children[head]
		if !ok {
			child = newNode()
			n.children[head] = child
			n.order = append(n.order, head)
		}
		insert(child, tail, lines, tokens)
	}

	for _, r := range parents {
		parts := strings.Split(r.Path, "/")
		insert(root, parts, r.Lines, r.Tokens)
	}
	sort.Strings(root.order)

	var b strings.Builder
	var render func(n *node, name, indent string)
	render = func(n *node, name, indent string) {
		if name != "" {
			b.WriteString(indent)
			b.WriteString(name)
			b.WriteString(" (lines: ")
			b.WriteString(strconv.Itoa(n.lines))
			b.WriteString(", tokens: ")
			b.WriteString(strconv.Itoa(n.tokens))
			b.WriteString(")\n")
		}
		nextIndent := indent
		if name != "" {
			nextIndent += "  "
		}
		names := append([]string(nil), n.order...)
		sort.Strings(names)
		for _, childName := range names {
			render(n.children[childName], childName, nextIndent)
		}
	}
	render(root, "", "")
	return b.String()
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// BuildCodeBundle concatenates each selected file's contents under a
// "// === path ===" header into code.txt's body, grounded on
// handoff.rs's write_code_bundle. With compress set, blank lines are
// stripped from each file's contents (the crate's own meaning of
// --compress, not gzip). Missing files are skipped rather than
// failing the whole bundle, matching the original's behavior.
func BuildCodeBundle(root string, files []SelectedFile, compress bool) (string, error) {
	var b strings.Builder
	for _, f := range files {
		full := filepath.Join(root, f.Path)
		if _, err := os.Stat(full); err != nil {
			continue
		}

		fmt.Fprintf(&b, "// === %s ===\n", f.Path)

		if compress {
			file, err := os.Open(full)
			if err != nil {
				return "", fmt.Errorf("read %s: %w", f.Path, err)
			}
			scanner := bufio.NewScanner(file)
			scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
			for scanner.Scan() {
				if line := scanner.Text(); strings.TrimSpace(line) != "" {
					b.WriteString(line)
					b.WriteByte('\n')
				}
			}
			err = scanner.Err()
			file.Close()
			if err != nil {
				return "", fmt.Errorf("read %s: %w", f.Path, err)
			}
			b.WriteByte('\n')
			continue
		}

		content, err := os.ReadFile(full)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", f.Path, err)
		}
		b.Write(content)
		if len(content) > 0 && content[len(content)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
