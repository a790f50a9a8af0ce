package serialize

import (
	"github.com/ingo-eichhorst/tokmd/internal/diffengine"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// ReportPayload is the JSON shape every `lang`/`module` JSON receipt
// is wrapped in: the shared envelope plus the mode-specific report
// (spec.md §3 Envelope, §6 CLI surface).
type ReportPayload struct {
	Envelope types.Envelope    `json:"envelope"`
	Report   reportFields      `json:"report"`
}

type reportFields struct {
	Rows   []types.Row         `json:"rows"`
	Totals types.Totals        `json:"totals"`
	Params types.ReportParams  `json:"params"`
}

// RenderLangReportJSON renders a LangReport as an envelope-wrapped
// canonical JSON document.
func RenderLangReportJSON(env types.Envelope, report types.LangReport) ([]byte, error) {
	return CanonicalJSON(ReportPayload{
		Envelope: env,
		Report:   reportFields{Rows: report.Rows, Totals: report.Totals, Params: report.Params},
	})
}

// RenderModuleReportJSON renders a ModuleReport as an envelope-wrapped
// canonical JSON document.
func RenderModuleReportJSON(env types.Envelope, report types.ModuleReport) ([]byte, error) {
	return CanonicalJSON(ReportPayload{
		Envelope: env,
		Report:   reportFields{Rows: report.Rows, Totals: report.Totals, Params: report.Params},
	})
}

// ExportPayload is the JSON shape of an `export --format json` receipt.
type ExportPayload struct {
	Envelope types.Envelope `json:"envelope"`
	Rows     []types.FileRow `json:"rows"`
	MinCode  int            `json:"min_code"`
	MaxRows  int            `json:"max_rows"`
}

// RenderExportJSON renders ExportData (with redaction already applied
// to its rows by the caller) as an envelope-wrapped canonical JSON
// document.
func RenderExportJSON(env types.Envelope, data types.ExportData) ([]byte, error) {
	return CanonicalJSON(ExportPayload{
		Envelope: env,
		Rows:     data.Rows,
		MinCode:  data.MinCode,
		MaxRows:  data.MaxRows,
	})
}

// DiffPayload is the JSON shape of a `diff` receipt.
type DiffPayload struct {
	Envelope types.Envelope `json:"envelope"`
	Rows     []diffRowJSON  `json:"rows"`
	Totals   diffTotalsJSON `json:"totals"`
}

type diffRowJSON struct {
	Key        string `json:"key"`
	DeltaCode  int    `json:"delta_code"`
	DeltaLines int    `json:"delta_lines"`
	DeltaFiles int    `json:"delta_files"`
}

type diffTotalsJSON struct {
	DeltaCode  int `json:"delta_code"`
	DeltaLines int `json:"delta_lines"`
	DeltaFiles int `json:"delta_files"`
}

// RenderDiffJSON renders a diffengine.Result as an envelope-wrapped
// canonical JSON document.
func RenderDiffJSON(env types.Envelope, result diffengine.Result) ([]byte, error) {
	rows := make([]diffRowJSON, len(result.Rows))
	for i, r := range result.Rows {
		rows[i] = diffRowJSON{Key: r.Key, DeltaCode: r.DeltaCode, DeltaLines: r.DeltaLines, DeltaFiles: r.DeltaFiles}
	}
	return CanonicalJSON(DiffPayload{
		Envelope: env,
		Rows:     rows,
		Totals: diffTotalsJSON{
			DeltaCode:  result.Totals.DeltaCode,
			DeltaLines: result.Totals.DeltaLines,
			DeltaFiles: result.Totals.DeltaFiles,
		},
	})
}
