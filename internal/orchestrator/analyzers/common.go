// Package analyzers holds the leaf analyzers the AnalysisOrchestrator
// dispatches by preset (spec.md §4.10). Each analyzer is a pure
// function over (root, paths, export_data, limits) returning its
// section data and findings -- no analyzer mutates shared state or
// talks to the network.
package analyzers

import (
	"io"
	"os"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// Limits bounds every analyzer's filesystem and git work, per
// spec.md §4.10.
type Limits struct {
	MaxFiles       int
	MaxBytes       int64
	MaxFileBytes   int64
	MaxCommits     int
	MaxCommitFiles int
}

// DefaultLimits matches the teacher's conservative defaults, scaled
// for a whole-repo static-analysis pass rather than a single PR diff.
var DefaultLimits = Limits{
	MaxFiles:       20000,
	MaxBytes:       256 << 20,
	MaxFileBytes:   4 << 20,
	MaxCommits:     5000,
	MaxCommitFiles: 64,
}

// Input is the argument bundle every analyzer receives.
type Input struct {
	Root   string
	Paths  []string
	Export types.ExportData
	Limits Limits
}

// Result is one analyzer's contribution to the receipt. Data is nil
// when the analyzer only produces findings (e.g. todo-scan).
type Result struct {
	Data       interface{}
	Findings   []sensor.Finding
	Capability sensor.CapabilityStatus
}

// Func is the shape every registered analyzer implements.
type Func func(Input) Result

// Registry maps a preset's analyzer name (spec.md §4.10's table) to
// its implementation. Analyzer files register themselves in init().
var Registry = map[string]Func{}

// available is the common Capability value for an analyzer that ran
// to completion without a structural reason to abstain.
func available() sensor.CapabilityStatus {
	return sensor.CapabilityStatus{State: sensor.Available}
}

func unavailable(reason string) sensor.CapabilityStatus {
	return sensor.CapabilityStatus{State: sensor.Unavailable, Reason: reason}
}

// budget tracks a cumulative MaxBytes read budget shared across the
// files one analyzer invocation reads.
type budget struct {
	remaining int64
}

func newBudget(limits Limits) *budget {
	return &budget{remaining: limits.MaxBytes}
}

// readLimited reads path, truncating at limits.MaxFileBytes and at
// whatever remains of the cumulative budget, whichever is smaller.
// truncated reports whether either bound cut the read short.
func readLimited(path string, limits Limits, b *budget) (data []byte, truncated bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	cap := limits.MaxFileBytes
	if b.remaining < cap {
		cap = b.remaining
	}
	if cap <= 0 {
		return nil, true, nil
	}

	data, err = io.ReadAll(io.LimitReader(f, cap))
	if err != nil {
		return nil, false, err
	}

	b.remaining -= int64(len(data))

	if int64(len(data)) == cap {
		if more := make([]byte, 1); true {
			n, _ := f.Read(more)
			if n > 0 {
				truncated = true
			}
		}
	}
	return data, truncated, nil
}

// round2 rounds to 2 decimal places, the precision spec.md §6 asks
// for in human-facing percentage/ratio fields.
func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// parentPaths returns the unique parent-file paths in export, capped
// at limits.MaxFiles.
func parentPaths(export types.ExportData, limits Limits) []string {
	var paths []string
	for _, r := range export.Rows {
		if r.Kind != types.Parent {
			continue
		}
		paths = append(paths, r.Path)
		if limits.MaxFiles > 0 && len(paths) >= limits.MaxFiles {
			break
		}
	}
	return paths
}
