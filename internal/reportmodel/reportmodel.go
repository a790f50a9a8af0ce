// Package reportmodel builds LangReport, ModuleReport, and ExportData
// from a scanner.Languages structure, applying the sort, tie-break,
// and top-N folding rules shared by every aggregation view.
package reportmodel

import (
	"sort"

	"github.com/ingo-eichhorst/tokmd/internal/pathmodel"
	"github.com/ingo-eichhorst/tokmd/internal/scanner"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// LangOptions configures BuildLangReport.
type LangOptions struct {
	Top         int
	WithFiles   bool
	Children    types.ChildrenMode
	ModuleRoots []string
	ModuleDepth int
}

func (o LangOptions) params() types.ReportParams {
	return types.ReportParams{
		Top:         o.Top,
		WithFiles:   o.WithFiles,
		Children:    o.Children,
		ModuleRoots: o.ModuleRoots,
		ModuleDepth: o.ModuleDepth,
	}
}

// BuildLangReport aggregates langs into per-language rows, honoring
// the Collapse/Separate children mode, then sorts and top-N folds.
func BuildLangReport(langs scanner.Languages, opts LangOptions) types.LangReport {
	var rows []types.Row

	switch opts.Children {
	case types.Separate:
		rows = separateRows(langs)
	default:
		rows = collapseRows(langs)
	}

	return finishReport(rows, opts.params())
}

// collapseRows folds each language's own embedded children into its
// own row: the row keyed "HTML" includes lines from JavaScript
// embedded inside .html files, exactly the language's own summarise().
func collapseRows(langs scanner.Languages) []types.Row {
	rows := make([]types.Row, 0, len(langs))
	for lang, agg := range langs {
		reports := make([]scanner.FileReport, 0, len(agg.Reports))
		reports = append(reports, agg.Reports...)
		for _, children := range agg.Children {
			reports = append(reports, children...)
		}
		rows = append(rows, rowFromReports(lang, agg.Reports, reports))
	}
	return rows
}

// separateRows emits one row per parent language using only its own
// stats, plus one "<Lang> (embedded)" row per distinct child language
// aggregated across every parent that contains it. Rows with
// code == 0 are dropped.
func separateRows(langs scanner.Languages) []types.Row {
	var rows []types.Row

	for lang, agg := range langs {
		row := rowFromReports(lang, agg.Reports, agg.Reports)
		if row.Code != 0 {
			rows = append(rows, row)
		}
	}

	childTotals := make(map[string][]scanner.FileReport)
	for _, agg := range langs {
		for childLang, reports := range agg.Children {
			childTotals[childLang] = append(childTotals[childLang], reports...)
		}
	}

	for childLang, reports := range childTotals {
		row := rowFromReports(childLang+" (embedded)", reports, reports)
		if row.Code != 0 {
			rows = append(rows, row)
		}
	}

	return rows
}

// rowFromReports sums code/comments/blanks/bytes/tokens over
// statReports, and counts unique file names across filesReports to
// derive Files/AvgLines. The two slices differ only for Collapse
// mode, where stats include embedded children but the file count must
// not (an embedded fragment never adds a new file).
func rowFromReports(key string, filesReports, statReports []scanner.FileReport) types.Row {
	row := types.Row{Key: key}

	for _, r := range statReports {
		row.Code += r.Code
		row.Comments += r.Comments
		row.Blanks += r.Blanks
		row.Bytes += r.Bytes
		row.Tokens += r.Tokens
	}
	row.Lines = row.Code + row.Comments + row.Blanks

	seen := make(map[string]struct{}, len(filesReports))
	for _, r := range filesReports {
		seen[r.Name] = struct{}{}
	}
	row.Files = len(seen)
	row.AvgLines = roundHalfUp(row.Lines, row.Files)

	return row
}

// roundHalfUp computes round_half_up(lines / files) using exact
// integer arithmetic: (2*lines + files) / (2*files), floored.
func roundHalfUp(lines, files int) int {
	if files == 0 {
		return 0
	}
	return (2*lines + files) / (2 * files)
}

// sortRows applies the universal sort: code descending, then key
// ascending.
func sortRows(rows []types.Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code > rows[j].Code
		}
		return rows[i].Key < rows[j].Key
	})
}

func totalsOf(rows []types.Row) types.Totals {
	var t types.Totals
	var totalFiles int
	for _, r := range rows {
		t.Code += r.Code
		t.Comments += r.Comments
		t.Blanks += r.Blanks
		t.Lines += r.Lines
		t.Files += r.Files
		t.Bytes += r.Bytes
		t.Tokens += r.Tokens
		totalFiles += r.Files
	}
	t.AvgLines = roundHalfUp(t.Lines, totalFiles)
	return t
}

// foldTopN keeps the first top rows (already sorted) and collapses
// the remainder into a single row keyed "Other" appended last.
func foldTopN(rows []types.Row, top int) []types.Row {
	if top <= 0 || len(rows) <= top {
		return rows
	}

	kept := make([]types.Row, top)
	copy(kept, rows[:top])

	other := types.Row{Key: "Other"}
	for _, r := range rows[top:] {
		other.Code += r.Code
		other.Comments += r.Comments
		other.Blanks += r.Blanks
		other.Lines += r.Lines
		other.Files += r.Files
		other.Bytes += r.Bytes
		other.Tokens += r.Tokens
	}
	other.AvgLines = roundHalfUp(other.Lines, other.Files)

	return append(kept, other)
}

func finishReport(rows []types.Row, params types.ReportParams) types.LangReport {
	sortRows(rows)
	totals := totalsOf(rows)
	folded := foldTopN(rows, params.Top)
	return types.LangReport{Rows: folded, Totals: totals, Params: params}
}

// BuildModuleReport aggregates langs by module key (derived from each
// file's normalized path) instead of by language.
func BuildModuleReport(langs scanner.Languages, opts LangOptions) types.ModuleReport {
	type moduleAccum struct {
		statReports  []scanner.FileReport
		filesReports []scanner.FileReport
	}
	modules := make(map[string]*moduleAccum)

	accumFor := func(key string) *moduleAccum {
		m, ok := modules[key]
		if !ok {
			m = &moduleAccum{}
			modules[key] = m
		}
		return m
	}

	for _, agg := range langs {
		for _, r := range agg.Reports {
			key := pathmodel.ModuleKey(r.Name, opts.ModuleRoots, opts.ModuleDepth)
			m := accumFor(key)
			m.statReports = append(m.statReports, r)
			m.filesReports = append(m.filesReports, r)
		}
		// Embedded fragments belong to the same file and therefore the
		// same module as their parent; module aggregation has no
		// "(embedded)" row concept. opts.Children reuses the lang
		// Collapse/Separate enum with module-specific meaning: Collapse
		// here means "parents-only" -- embedded stats are excluded from
		// module totals entirely, the CLI's stricter module view.
		if opts.Children == types.Collapse {
			continue
		}
		for _, children := range agg.Children {
			for _, r := range children {
				key := pathmodel.ModuleKey(r.Name, opts.ModuleRoots, opts.ModuleDepth)
				m := accumFor(key)
				m.statReports = append(m.statReports, r)
			}
		}
	}

	rows := make([]types.Row, 0, len(modules))
	for key, m := range modules {
		rows = append(rows, rowFromReports(key, m.filesReports, m.statReports))
	}

	report := finishReport(rows, opts.params())
	return types.ModuleReport{Rows: report.Rows, Totals: report.Totals, Params: report.Params}
}

// ExportOptions configures BuildExportData.
type ExportOptions struct {
	MinCode  int
	MaxRows  int
	Children types.ChildrenMode
	Module   func(path string) string // module_key bound to module_roots/module_depth
}

// BuildExportData emits one FileRow per (path, lang, kind) tuple.
// Child rows are included only when children == Separate. Rows are
// filtered by min_code, sorted by code descending then path
// ascending, and capped to max_rows.
func BuildExportData(langs scanner.Languages, opts ExportOptions) types.ExportData {
	var rows []types.FileRow

	for lang, agg := range langs {
		for _, r := range agg.Reports {
			rows = append(rows, fileRow(r, lang, types.Parent, opts.Module))
		}
		if opts.Children == types.Separate {
			for childLang, children := range agg.Children {
				for _, r := range children {
					rows = append(rows, fileRow(r, childLang, types.Child, opts.Module))
				}
			}
		}
	}

	if opts.MinCode > 0 {
		filtered := rows[:0]
		for _, r := range rows {
			if r.Code >= opts.MinCode {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code > rows[j].Code
		}
		if rows[i].Path != rows[j].Path {
			return rows[i].Path < rows[j].Path
		}
		return rows[i].Kind == types.Parent && rows[j].Kind == types.Child
	})

	if opts.MaxRows > 0 && len(rows) > opts.MaxRows {
		rows = rows[:opts.MaxRows]
	}

	return types.ExportData{Rows: rows, MinCode: opts.MinCode, MaxRows: opts.MaxRows, Children: opts.Children}
}

func fileRow(r scanner.FileReport, lang string, kind types.Kind, moduleOf func(string) string) types.FileRow {
	module := ""
	if moduleOf != nil {
		module = moduleOf(r.Name)
	}
	return types.FileRow{
		Path:     r.Name,
		Module:   module,
		Lang:     lang,
		Kind:     kind,
		Code:     r.Code,
		Comments: r.Comments,
		Blanks:   r.Blanks,
		Lines:    r.Lines(),
		Bytes:    r.Bytes,
		Tokens:   r.Tokens,
	}
}
