// Package diffengine joins two LangReports by language key and emits
// signed per-language and total deltas (spec.md §4.7).
package diffengine

import (
	"sort"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// Row is one language's signed delta between two reports.
type Row struct {
	Key        string
	DeltaCode  int
	DeltaLines int
	DeltaFiles int
}

// Totals is the elementwise sum of every Row's deltas.
type Totals struct {
	DeltaCode  int
	DeltaLines int
	DeltaFiles int
}

// Result is the full diff between two LangReports.
type Result struct {
	Rows   []Row
	Totals Totals
}

// Diff computes the set union of from/to language keys and, for each,
// a signed delta; an absent side contributes zeros.
func Diff(from, to types.LangReport) Result {
	type pair struct{ from, to *types.Row }
	byKey := make(map[string]*pair)

	for i := range from.Rows {
		r := from.Rows[i]
		byKey[r.Key] = &pair{from: &r}
	}
	for i := range to.Rows {
		r := to.Rows[i]
		p, ok := byKey[r.Key]
		if !ok {
			p = &pair{}
			byKey[r.Key] = p
		}
		p.to = &r
	}

	rows := make([]Row, 0, len(byKey))
	var totals Totals

	for key, p := range byKey {
		var fromCode, fromLines, fromFiles int
		var toCode, toLines, toFiles int
		if p.from != nil {
			fromCode, fromLines, fromFiles = p.from.Code, p.from.Lines, p.from.Files
		}
		if p.to != nil {
			toCode, toLines, toFiles = p.to.Code, p.to.Lines, p.to.Files
		}

		row := Row{
			Key:        key,
			DeltaCode:  toCode - fromCode,
			DeltaLines: toLines - fromLines,
			DeltaFiles: toFiles - fromFiles,
		}
		rows = append(rows, row)

		totals.DeltaCode += row.DeltaCode
		totals.DeltaLines += row.DeltaLines
		totals.DeltaFiles += row.DeltaFiles
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	return Result{Rows: rows, Totals: totals}
}
