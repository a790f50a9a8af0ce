package serialize

import (
	"fmt"
	"strings"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// rowLike is satisfied by both types.Row and types.Totals via the
// small adapters below, so rowLine can render either without
// duplicating the column logic.
type rowLike interface {
	getCode() int
	getComments() int
	getBlanks() int
	getLines() int
	getFiles() int
	getBytes() int
	getTokens() int
	getAvgLines() int
}

// rowLine renders one data/total row's shared columns.
func rowLine(key string, r rowLike, withFiles bool, sep string) string {
	cols := []string{key, fmt.Sprint(r.getCode()), fmt.Sprint(r.getComments()), fmt.Sprint(r.getBlanks()), fmt.Sprint(r.getLines())}
	if withFiles {
		cols = append(cols, fmt.Sprint(r.getFiles()), fmt.Sprint(r.getAvgLines()))
	}
	cols = append(cols, fmt.Sprint(r.getBytes()), fmt.Sprint(r.getTokens()))
	return strings.Join(cols, sep)
}

type rowAdapter types.Row

func (r rowAdapter) getCode() int     { return r.Code }
func (r rowAdapter) getComments() int { return r.Comments }
func (r rowAdapter) getBlanks() int   { return r.Blanks }
func (r rowAdapter) getLines() int    { return r.Lines }
func (r rowAdapter) getFiles() int    { return r.Files }
func (r rowAdapter) getBytes() int    { return r.Bytes }
func (r rowAdapter) getTokens() int   { return r.Tokens }
func (r rowAdapter) getAvgLines() int { return r.AvgLines }

type totalsAdapter types.Totals

func (t totalsAdapter) getCode() int     { return t.Code }
func (t totalsAdapter) getComments() int { return t.Comments }
func (t totalsAdapter) getBlanks() int   { return t.Blanks }
func (t totalsAdapter) getLines() int    { return t.Lines }
func (t totalsAdapter) getFiles() int    { return t.Files }
func (t totalsAdapter) getBytes() int    { return t.Bytes }
func (t totalsAdapter) getTokens() int   { return t.Tokens }
func (t totalsAdapter) getAvgLines() int { return t.AvgLines }

func headerColumns(keyLabel string, withFiles bool) []string {
	cols := []string{keyLabel, "Code", "Comments", "Blanks", "Lines"}
	if withFiles {
		cols = append(cols, "Files", "AvgLines")
	}
	cols = append(cols, "Bytes", "Tokens")
	return cols
}

// RenderMarkdownTable renders a LangReport/ModuleReport as a Markdown
// table: header row, separator row, one row per entry, then a Total
// row.
func RenderMarkdownTable(keyLabel string, rows []types.Row, totals types.Totals, withFiles bool) string {
	headers := headerColumns(keyLabel, withFiles)
	var b strings.Builder

	b.WriteString("| ")
	b.WriteString(strings.Join(headers, " | "))
	b.WriteString(" |\n")

	b.WriteString("|")
	for range headers {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	for _, r := range rows {
		b.WriteString("| ")
		b.WriteString(rowLine(r.Key, rowAdapter(r), withFiles, " | "))
		b.WriteString(" |\n")
	}

	b.WriteString("| ")
	b.WriteString(rowLine("Total", totalsAdapter(totals), withFiles, " | "))
	b.WriteString(" |\n")

	return b.String()
}

// RenderTSVTable is RenderMarkdownTable without the separator row, tab
// delimited instead of pipe delimited.
func RenderTSVTable(keyLabel string, rows []types.Row, totals types.Totals, withFiles bool) string {
	headers := headerColumns(keyLabel, withFiles)
	var b strings.Builder

	b.WriteString(strings.Join(headers, "\t"))
	b.WriteString("\n")

	for _, r := range rows {
		b.WriteString(rowLine(r.Key, rowAdapter(r), withFiles, "\t"))
		b.WriteString("\n")
	}

	b.WriteString(rowLine("Total", totalsAdapter(totals), withFiles, "\t"))
	b.WriteString("\n")

	return b.String()
}
