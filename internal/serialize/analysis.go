package serialize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// RenderXML wraps a rendered analysis payload in the fixed
// <analysis>...</analysis> envelope. payload is inserted verbatim, so
// callers are responsible for escaping it (the spec only mandates the
// start/end tags, not a schema for the interior).
func RenderXML(schemaVersion int, status types.Status, payload string) string {
	var b strings.Builder
	b.WriteString("<analysis>")
	fmt.Fprintf(&b, "<schema_version>%d</schema_version>", schemaVersion)
	fmt.Fprintf(&b, "<status>%s</status>", status.String())
	b.WriteString(payload)
	b.WriteString("</analysis>")
	return b.String()
}

// RenderJSONLD wraps a LangReport in a minimal schema.org
// SoftwareSourceCode document.
func RenderJSONLD(report types.LangReport) (string, error) {
	langs := make([]string, 0, len(report.Rows))
	for _, r := range report.Rows {
		langs = append(langs, r.Key)
	}

	doc := map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "SoftwareSourceCode",
		"programmingLanguage": langs,
		"codeRepository": map[string]interface{}{
			"totalLines":   report.Totals.Lines,
			"totalFiles":   report.Totals.Files,
			"totalTokens":  report.Totals.Tokens,
		},
	}

	out, err := CanonicalJSON(doc)
	return string(out), err
}

// RenderMermaid renders a LangReport as a top-down Mermaid graph: one
// node per language labelled with its line count, rooted at a synthetic
// "Repository" node.
func RenderMermaid(report types.LangReport) string {
	rows := make([]types.Row, len(report.Rows))
	copy(rows, report.Rows)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })

	var b strings.Builder
	b.WriteString("graph TD\n")
	b.WriteString("  Repository[Repository]\n")
	for i, r := range rows {
		node := fmt.Sprintf("L%d", i)
		fmt.Fprintf(&b, "  Repository --> %s[%s: %d lines]\n", node, mermaidEscape(r.Key), r.Lines)
	}
	return b.String()
}

func mermaidEscape(s string) string {
	s = strings.ReplaceAll(s, "[", "(")
	s = strings.ReplaceAll(s, "]", ")")
	return s
}
