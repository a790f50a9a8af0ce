package analyzers

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"path/filepath"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["dup"] = NearDup
}

// DupGroup is a set of files whose line-shingle sets overlap above
// nearDupThreshold.
type DupGroup struct {
	Paths      []string
	Similarity float64
}

// DupData is the `dup` receipt section (part of the Deep preset).
type DupData struct {
	ExactGroups [][]string
	NearGroups  []DupGroup
}

const nearDupThreshold = 0.85

// dupMaxFilesPerLang bounds the O(n^2) pairwise comparison to a
// single language bucket at a time, capped to stay well inside the
// MaxBytes/MaxFiles budget on a large polyglot tree.
const dupMaxFilesPerLang = 400

// NearDup groups files with byte-identical normalized content
// (ExactGroups) and files whose line-shingle Jaccard similarity meets
// nearDupThreshold (NearGroups), compared within each language bucket
// only -- cross-language near-duplication is not meaningful here.
func NearDup(in Input) Result {
	b := newBudget(in.Limits)

	byLang := map[string][]types.FileRow{}
	for _, r := range in.Export.Rows {
		if r.Kind == types.Parent {
			byLang[r.Lang] = append(byLang[r.Lang], r)
		}
	}

	type shingled struct {
		path string
		set  map[string]bool
	}

	exactByHash := map[string][]string{}
	var nearGroups []DupGroup

	langs := make([]string, 0, len(byLang))
	for l := range byLang {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	for _, lang := range langs {
		rows := byLang[lang]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Path < rows[j].Path })

		sets := make([]shingled, 0, len(rows))
		for i, r := range rows {
			if i >= dupMaxFilesPerLang {
				break
			}
			full := filepath.Join(in.Root, r.Path)
			data, _, err := readLimited(full, in.Limits, b)
			if err != nil || len(data) == 0 {
				continue
			}
			hash := hashNormalized(data)
			exactByHash[hash] = append(exactByHash[hash], r.Path)
			sets = append(sets, shingled{path: r.Path, set: lineShingles(data)})
		}

		for i := 0; i < len(sets); i++ {
			for j := i + 1; j < len(sets); j++ {
				sim := jaccard(sets[i].set, sets[j].set)
				if sim >= nearDupThreshold {
					nearGroups = append(nearGroups, DupGroup{
						Paths:      []string{sets[i].path, sets[j].path},
						Similarity: round2(sim),
					})
				}
			}
		}
	}

	var exactGroups [][]string
	for _, paths := range exactByHash {
		if len(paths) > 1 {
			sorted := append([]string(nil), paths...)
			sort.Strings(sorted)
			exactGroups = append(exactGroups, sorted)
		}
	}
	sort.Slice(exactGroups, func(i, j int) bool { return exactGroups[i][0] < exactGroups[j][0] })
	sort.Slice(nearGroups, func(i, j int) bool {
		if nearGroups[i].Paths[0] != nearGroups[j].Paths[0] {
			return nearGroups[i].Paths[0] < nearGroups[j].Paths[0]
		}
		return nearGroups[i].Paths[1] < nearGroups[j].Paths[1]
	})

	var findings []sensor.Finding
	for _, g := range exactGroups {
		findings = append(findings, sensor.NewFinding("tokmd", sensor.Finding{
			CheckID:  "dup",
			Code:     "exact-duplicate",
			Severity: sensor.SeverityInfo,
			Title:    "Exact duplicate files",
			Message:  strings.Join(g, ", "),
			Location: &sensor.Location{Path: g[0]},
		}))
	}

	return Result{
		Data:       DupData{ExactGroups: exactGroups, NearGroups: nearGroups},
		Findings:   findings,
		Capability: available(),
	}
}

func hashNormalized(data []byte) string {
	h := blake3.New()
	for _, line := range bytes.Split(data, []byte("\n")) {
		h.Write(bytes.TrimSpace(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func lineShingles(data []byte) map[string]bool {
	set := map[string]bool{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			set[line] = true
		}
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
