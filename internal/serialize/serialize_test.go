package serialize

import (
	"strings"
	"testing"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func sampleLangReport() types.LangReport {
	return types.LangReport{
		Rows: []types.Row{
			{Key: "Go", Code: 100, Comments: 10, Blanks: 5, Lines: 115, Files: 2, Bytes: 2000, Tokens: 400, AvgLines: 58},
			{Key: "Rust", Code: 50, Comments: 5, Blanks: 2, Lines: 57, Files: 1, Bytes: 900, Tokens: 150, AvgLines: 57},
		},
		Totals: types.Totals{Code: 150, Comments: 15, Blanks: 7, Lines: 172, Files: 3, Bytes: 2900, Tokens: 550, AvgLines: 57},
	}
}

func TestRenderMarkdownTableShape(t *testing.T) {
	md := RenderMarkdownTable("Language", sampleLangReport().Rows, sampleLangReport().Totals, true)
	lines := strings.Split(strings.TrimRight(md, "\n"), "\n")
	if len(lines) != 5 { // header + sep + 2 rows + total
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), md)
	}
	if !strings.HasPrefix(lines[1], "|") || !strings.Contains(lines[1], "---") {
		t.Fatalf("expected separator row, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "| Total") {
		t.Fatalf("expected total row last, got %q", lines[4])
	}
}

func TestRenderTSVTableOmitsSeparator(t *testing.T) {
	tsv := RenderTSVTable("Language", sampleLangReport().Rows, sampleLangReport().Totals, true)
	lines := strings.Split(strings.TrimRight(tsv, "\n"), "\n")
	if len(lines) != 4 { // header + 2 rows + total, no separator
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), tsv)
	}
	for _, l := range lines {
		if strings.Contains(l, "---") {
			t.Fatal("TSV must not contain a separator row")
		}
	}
}

func TestRenderCSVHeaderAndRedaction(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		{Path: "src/main.go", Module: "src", Lang: "Go", Kind: types.Parent, Code: 10, Lines: 10},
	}}

	plain, err := RenderCSV(data, types.RedactNone)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(plain, "path,module,lang,kind,code,comments,blanks,lines,bytes,tokens\n") {
		t.Fatalf("unexpected CSV header: %q", plain)
	}

	redacted, err := RenderCSV(data, types.RedactPaths)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(redacted, "\n")
	if strings.Contains(lines[1], "/") {
		t.Fatalf("redacted CSV row must not contain a path separator: %q", lines[1])
	}
}

func TestRenderJSONLMeta(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		{Path: "a.go", Lang: "Go", Kind: types.Parent, Code: 10, Lines: 10},
	}}

	out, err := RenderJSONL(data, types.RedactNone, true)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected meta + 1 row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], `"type":"meta"`) {
		t.Fatalf("expected meta record first, got %q", lines[0])
	}
	if !strings.Contains(lines[1], `"type":"row"`) {
		t.Fatalf("expected row record second, got %q", lines[1])
	}
}

func TestRenderSVGBadgeShape(t *testing.T) {
	svg := RenderSVGBadge("lines", "12345")
	if !strings.HasPrefix(svg, "<svg ") {
		t.Fatalf("expected svg to start with '<svg ', got %q", svg[:10])
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("expected svg to end with '</svg>', got %q", svg[len(svg)-10:])
	}
}

func TestRenderXMLShape(t *testing.T) {
	xml := RenderXML(1, types.Complete, "<payload/>")
	if !strings.HasPrefix(xml, "<analysis>") {
		t.Fatal("expected XML to start with <analysis>")
	}
	if !strings.HasSuffix(xml, "</analysis>") {
		t.Fatal("expected XML to end with </analysis>")
	}
}

func TestRenderJSONLDHasSchemaOrgContext(t *testing.T) {
	out, err := RenderJSONLD(sampleLangReport())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"@context":"https://schema.org"`) {
		t.Fatalf("expected schema.org context, got %q", out)
	}
	if !strings.Contains(out, `"SoftwareSourceCode"`) {
		t.Fatalf("expected SoftwareSourceCode type, got %q", out)
	}
}

func TestRenderMermaidStartsWithGraphTD(t *testing.T) {
	mermaid := RenderMermaid(sampleLangReport())
	if !strings.HasPrefix(mermaid, "graph TD\n") {
		t.Fatalf("expected mermaid to start with 'graph TD\\n', got %q", mermaid[:12])
	}
}

func TestCanonicalJSONSortsKeys(t *testing.T) {
	type unsorted struct {
		Zeta  int `json:"zeta"`
		Alpha int `json:"alpha"`
	}
	out, err := CanonicalJSON(unsorted{Zeta: 1, Alpha: 2})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Index(string(out), "alpha") > strings.Index(string(out), "zeta") {
		t.Fatalf("expected alphabetically sorted keys, got %q", out)
	}
}

func TestCanonicalJSONDeterministic(t *testing.T) {
	report := sampleLangReport()
	a, err := CanonicalJSON(report)
	if err != nil {
		t.Fatal(err)
	}
	b, err := CanonicalJSON(report)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Fatal("expected byte-identical output across runs")
	}
}

func TestShortHashIsStableAndSixteenHex(t *testing.T) {
	h1 := ShortHash("src/main.go")
	h2 := ShortHash("src/main.go")
	if h1 != h2 {
		t.Fatal("expected stable hash for the same input")
	}
	if len(h1) != 16 {
		t.Fatalf("expected 16 hex chars, got %d", len(h1))
	}
}
