package termui

import (
	"strings"
	"testing"
)

func TestHighlightTableDisabledIsIdentity(t *testing.T) {
	in := "| Language | Code |\n| --- | --- |\n| Go | 10 |\n| Total | 10 |\n"
	out := HighlightTable(in, false)
	if out != in {
		t.Fatalf("expected disabled HighlightTable to pass input through unchanged, got %q", out)
	}
}

func TestHighlightTableEnabledWrapsHeaderAndTotal(t *testing.T) {
	in := "| Language | Code |\n| --- | --- |\n| Go | 10 |\n| Total | 10 |\n"
	out := HighlightTable(in, true)

	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("expected header line to carry an ANSI escape sequence, got %q", lines[0])
	}
	if !strings.Contains(lines[3], "\x1b[") {
		t.Errorf("expected the Total row to carry an ANSI escape sequence, got %q", lines[3])
	}
	if strings.Contains(lines[2], "\x1b[") {
		t.Errorf("expected a plain data row to pass through unchanged, got %q", lines[2])
	}
}

func TestIsTotalRow(t *testing.T) {
	cases := map[string]bool{
		"| Total | 10 |": true,
		"| Go | 10 |":     false,
		"Total\t10":       true,
	}
	for in, want := range cases {
		if got := isTotalRow(in); got != want {
			t.Errorf("isTotalRow(%q) = %v, want %v", in, got, want)
		}
	}
}
