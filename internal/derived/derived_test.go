package derived

import (
	"math"
	"testing"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func fileRow(path, lang string, code, comments, blanks, bytes, tokens int) types.FileRow {
	return types.FileRow{
		Path: path, Lang: lang, Kind: types.Parent,
		Code: code, Comments: comments, Blanks: blanks,
		Lines: code + comments + blanks, Bytes: bytes, Tokens: tokens,
	}
}

func TestGiniUniformIsLow(t *testing.T) {
	values := stats_Float64Data([]float64{100, 100, 100, 100, 100})
	g := giniCoefficient(values)
	if g >= 0.01 {
		t.Fatalf("expected uniform gini < 0.01, got %f", g)
	}
}

func TestGiniSkewedIsHigh(t *testing.T) {
	values := stats_Float64Data([]float64{1, 5, 1000})
	g := giniCoefficient(values)
	if g <= 0.3 {
		t.Fatalf("expected skewed gini > 0.3, got %f", g)
	}
}

func TestHistogramPctsSumToOne(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		fileRow("a.go", "Go", 10, 0, 0, 0, 0),
		fileRow("b.go", "Go", 100, 0, 0, 0, 0),
		fileRow("c.go", "Go", 300, 0, 0, 0, 0),
		fileRow("d.go", "Go", 800, 0, 0, 0, 0),
		fileRow("e.go", "Go", 5000, 0, 0, 0, 0),
	}}
	report := Build(data, 0)

	var sum float64
	for _, b := range report.Histogram {
		sum += b.Pct
	}
	if math.Abs(sum-1.0) > 0.01 {
		t.Fatalf("expected bucket pcts to sum to ~1.0, got %f", sum)
	}
}

func TestCocomoNoneWhenNoCode(t *testing.T) {
	report := Build(types.ExportData{}, 0)
	if report.Cocomo != nil {
		t.Fatal("expected nil Cocomo for zero total code")
	}
}

func TestCocomoPresentWithCode(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		fileRow("a.go", "Go", 5000, 500, 100, 0, 0),
	}}
	report := Build(data, 0)
	if report.Cocomo == nil {
		t.Fatal("expected non-nil Cocomo")
	}
	if report.Cocomo.KLOC != 5.0 {
		t.Fatalf("expected KLOC == 5.0, got %f", report.Cocomo.KLOC)
	}
}

func TestContextWindowOnlyWhenRequested(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		fileRow("a.go", "Go", 100, 0, 0, 0, 1000),
	}}

	without := Build(data, 0)
	if without.ContextWindow != nil {
		t.Fatal("expected nil ContextWindow when window_tokens not provided")
	}

	with := Build(data, 2000)
	if with.ContextWindow == nil {
		t.Fatal("expected ContextWindow when window_tokens provided")
	}
	if !with.ContextWindow.Fits {
		t.Fatal("expected 1000 tokens to fit in a 2000 window")
	}
	if with.ContextWindow.Pct != 0.5 {
		t.Fatalf("expected pct == 0.5, got %f", with.ContextWindow.Pct)
	}
}

func TestTestDensityRecognizesTestPaths(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		fileRow("src/lib.go", "Go", 100, 0, 0, 0, 0),
		fileRow("tests/lib_test.go", "Go", 50, 0, 0, 0, 0),
	}}
	report := Build(data, 0)
	if report.TestDensity.ProdLines != 100 || report.TestDensity.TestLines != 50 {
		t.Fatalf("unexpected test density split: %+v", report.TestDensity)
	}
	if report.TestDensity.Ratio != 0.5 {
		t.Fatalf("expected ratio 0.5, got %f", report.TestDensity.Ratio)
	}
}

func TestPolyglotTwoEqualLanguagesGivesEntropyOne(t *testing.T) {
	data := types.ExportData{Rows: []types.FileRow{
		fileRow("a.go", "Go", 100, 0, 0, 0, 0),
		fileRow("b.rs", "Rust", 100, 0, 0, 0, 0),
	}}
	report := Build(data, 0)
	if math.Abs(report.Polyglot.Entropy-1.0) > 1e-9 {
		t.Fatalf("expected normalized entropy 1.0 for two equal languages, got %f", report.Polyglot.Entropy)
	}
}

func TestDerivedIgnoresChildRows(t *testing.T) {
	childRow := fileRow("a.html", "JavaScript", 999, 0, 0, 0, 0)
	childRow.Kind = types.Child
	data := types.ExportData{Rows: []types.FileRow{
		fileRow("a.html", "HTML", 10, 0, 0, 0, 0),
		childRow,
	}}
	report := Build(data, 0)
	if report.Totals.Code != 10 {
		t.Fatalf("expected child rows excluded from totals, got code=%d", report.Totals.Code)
	}
}

// stats_Float64Data is a tiny local alias so this test file doesn't
// need to import montanaflynn/stats just for its slice type.
type stats_Float64Data = []float64
