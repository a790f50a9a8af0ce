package serialize

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// RenderCSV renders ExportData as CSV: a header row and one data row
// per file, with path (and, under RedactAll, module) redacted if
// mode requires it.
func RenderCSV(data types.ExportData, mode types.RedactMode) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"path", "module", "lang", "kind", "code", "comments", "blanks", "lines", "bytes", "tokens"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, r := range data.Rows {
		record := []string{
			RedactPath(r.Path, mode),
			RedactModuleKey(r.Module, mode),
			r.Lang,
			r.Kind.String(),
			fmt.Sprint(r.Code),
			fmt.Sprint(r.Comments),
			fmt.Sprint(r.Blanks),
			fmt.Sprint(r.Lines),
			fmt.Sprint(r.Bytes),
			fmt.Sprint(r.Tokens),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

// jsonlRow is the shape of one "row"-typed JSONL record.
type jsonlRow struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	Module   string `json:"module"`
	Lang     string `json:"lang"`
	Kind     string `json:"kind"`
	Code     int    `json:"code"`
	Comments int    `json:"comments"`
	Blanks   int    `json:"blanks"`
	Lines    int    `json:"lines"`
	Bytes    int    `json:"bytes"`
	Tokens   int    `json:"tokens"`
}

type jsonlMeta struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	MinCode int    `json:"min_code"`
	MaxRows int    `json:"max_rows"`
}

// RenderJSONL renders ExportData as JSONL: an optional meta record
// first, then one {"type":"row", ...} object per line.
func RenderJSONL(data types.ExportData, mode types.RedactMode, withMeta bool) (string, error) {
	var b strings.Builder

	if withMeta {
		meta := jsonlMeta{Type: "meta", Count: len(data.Rows), MinCode: data.MinCode, MaxRows: data.MaxRows}
		line, err := CanonicalJSON(meta)
		if err != nil {
			return "", err
		}
		b.Write(line)
		b.WriteByte('\n')
	}

	for _, r := range data.Rows {
		row := jsonlRow{
			Type:     "row",
			Path:     RedactPath(r.Path, mode),
			Module:   RedactModuleKey(r.Module, mode),
			Lang:     r.Lang,
			Kind:     r.Kind.String(),
			Code:     r.Code,
			Comments: r.Comments,
			Blanks:   r.Blanks,
			Lines:    r.Lines,
			Bytes:    r.Bytes,
			Tokens:   r.Tokens,
		}
		line, err := CanonicalJSON(row)
		if err != nil {
			return "", err
		}
		b.Write(line)
		b.WriteByte('\n')
	}

	return b.String(), nil
}
