package analyzers

import (
	"math"
	"path/filepath"
	"sort"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
)

func init() {
	Registry["entropy"] = Entropy
}

// EntropyFile is one file's Shannon byte entropy.
type EntropyFile struct {
	Path    string
	Entropy float64
}

// EntropyData is the `entropy` receipt section (Security preset).
type EntropyData struct {
	Files        []EntropyFile
	MeanEntropy  float64
	HighEntropyN int
}

// highEntropyThreshold (bits/byte) flags content close to random:
// embedded secrets, keys, or compiled/binary blobs checked in by
// mistake. English source text rarely exceeds ~6.5.
const highEntropyThreshold = 7.5

// Entropy computes per-file Shannon entropy over raw bytes, flagging
// files above highEntropyThreshold (spec.md §4.10 Security preset).
func Entropy(in Input) Result {
	b := newBudget(in.Limits)
	var files []EntropyFile
	var findings []sensor.Finding
	sum := 0.0

	for _, path := range parentPaths(in.Export, in.Limits) {
		full := filepath.Join(in.Root, path)
		data, _, err := readLimited(full, in.Limits, b)
		if err != nil || len(data) == 0 {
			continue
		}
		e := shannonEntropy(data)
		files = append(files, EntropyFile{Path: path, Entropy: round2(e)})
		sum += e
		if e >= highEntropyThreshold {
			findings = append(findings, sensor.NewFinding("tokmd", sensor.Finding{
				CheckID:  "entropy",
				Code:     "high-entropy",
				Severity: sensor.SeverityWarn,
				Title:    "High-entropy file content",
				Message:  "byte entropy suggests embedded secrets or binary data",
				Location: &sensor.Location{Path: path},
			}))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].Entropy != files[j].Entropy {
			return files[i].Entropy > files[j].Entropy
		}
		return files[i].Path < files[j].Path
	})
	sort.Slice(findings, func(i, j int) bool {
		return findings[i].Location.Path < findings[j].Location.Path
	})

	data := EntropyData{Files: files, HighEntropyN: len(findings)}
	if len(files) > 0 {
		data.MeanEntropy = round2(sum / float64(len(files)))
	}

	return Result{Data: data, Findings: findings, Capability: available()}
}

func shannonEntropy(data []byte) float64 {
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	n := float64(len(data))
	var h float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
