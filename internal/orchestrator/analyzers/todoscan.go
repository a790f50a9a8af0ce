package analyzers

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
)

func init() {
	Registry["todo-scan"] = TodoScan
}

var todoMarkers = []string{"TODO", "FIXME", "HACK", "XXX"}

// TodoScan flags TODO/FIXME/HACK/XXX markers left in source comments.
// It produces no data section of its own; every hit is reported as a
// Finding, per the Health preset (spec.md §4.10).
func TodoScan(in Input) Result {
	b := newBudget(in.Limits)
	var findings []sensor.Finding

	for _, path := range parentPaths(in.Export, in.Limits) {
		full := filepath.Join(in.Root, path)
		data, _, err := readLimited(full, in.Limits, b)
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(bytes.NewReader(data))
		scanner.Buffer(make([]byte, 64*1024), 1<<20)
		line := 0
		for scanner.Scan() {
			line++
			text := scanner.Text()
			for _, marker := range todoMarkers {
				if idx := indexMarker(text, marker); idx >= 0 {
					f := sensor.NewFinding("tokmd", sensor.Finding{
						CheckID:  "todo-scan",
						Code:     marker,
						Severity: sensor.SeverityInfo,
						Title:    fmt.Sprintf("%s marker", marker),
						Message:  text,
						Location: &sensor.Location{Path: path, Line: line},
					})
					findings = append(findings, f)
					break
				}
			}
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Location.Path != findings[j].Location.Path {
			return findings[i].Location.Path < findings[j].Location.Path
		}
		return findings[i].Location.Line < findings[j].Location.Line
	})

	return Result{Findings: findings, Capability: available()}
}

// indexMarker finds marker as a whole word inside text, returning -1
// when absent. A cheap word-boundary check avoids matching identifiers
// like "AUTODOC".
func indexMarker(text, marker string) int {
	start := 0
	for {
		idx := indexFrom(text, marker, start)
		if idx < 0 {
			return -1
		}
		before := idx == 0 || !isWordByte(text[idx-1])
		afterPos := idx + len(marker)
		after := afterPos >= len(text) || !isWordByte(text[afterPos])
		if before && after {
			return idx
		}
		start = idx + 1
	}
}

func indexFrom(text, marker string, start int) int {
	if start >= len(text) {
		return -1
	}
	rel := indexOf(text[start:], marker)
	if rel < 0 {
		return -1
	}
	return start + rel
}

func indexOf(s, substr string) int {
	n, m := len(s), len(substr)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == substr {
			return i
		}
	}
	return -1
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
