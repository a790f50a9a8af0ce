// Package derived computes the ratio, distribution, histogram,
// polyglot, COCOMO, reading-time, and integrity-hash analytics that
// sit on top of an ExportData snapshot (spec.md §4.5).
package derived

import (
	"encoding/hex"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/zeebo/blake3"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

// Totals mirrors types.Totals but is computed here over parent rows
// only, independent of any ReportModel totals.
type Totals struct {
	Files    int
	Code     int
	Comments int
	Blanks   int
	Lines    int
	Bytes    int
	Tokens   int
}

// Ratio is a single ratio value, 0 when its denominator is 0.
type Ratio struct {
	Ratio float64
}

// RatioRow is one breakdown row for a keyed ratio (per-language or
// per-module), sorted ratio descending then key ascending.
type RatioRow struct {
	Key   string
	Ratio float64
}

// Distribution summarizes per-file line counts.
type Distribution struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	P90    float64
	P99    float64
	Gini   float64
}

// HistogramBucket is one of the 5 fixed file-size buckets.
type HistogramBucket struct {
	Label string
	Files int
	Pct   float64
}

// Polyglot summarizes language diversity by code share.
type Polyglot struct {
	LangCount    int
	Entropy      float64
	DominantLang string
	DominantPct  float64
}

// TestDensity compares production vs. test-recognized files.
type TestDensity struct {
	ProdLines int
	TestLines int
	ProdFiles int
	TestFiles int
	Ratio     float64
}

// Cocomo is a basic COCOMO Organic-mode effort estimate.
type Cocomo struct {
	KLOC            float64
	EffortPM        float64
	DurationMonths  float64
	Staff           float64
	A, B, C, D      float64
}

// ReadingTime estimates human reading time over the total line count.
type ReadingTime struct {
	Minutes        float64
	LinesPerMinute int
	BasisLines     int
}

// ContextWindow reports how total tokens compare against a supplied
// LLM context budget. Present only when window_tokens was provided.
type ContextWindow struct {
	WindowTokens int
	TotalTokens  int
	Pct          float64
	Fits         bool
}

// Integrity is a deterministic content hash over the canonical,
// sorted row digest.
type Integrity struct {
	Algo    string
	Hash    string
	Entries int
}

// Nesting reports path-depth statistics.
type Nesting struct {
	Max int
	Avg float64
}

// Report is the full derived-analytics payload for one ExportData.
type Report struct {
	Totals             Totals
	DocDensity         Ratio
	DocDensityByLang   []RatioRow
	DocDensityByModule []RatioRow
	Whitespace         Ratio
	WhitespaceByLang   []RatioRow
	WhitespaceByModule []RatioRow
	Verbosity          Ratio
	Distribution       Distribution
	Histogram          [5]HistogramBucket
	Polyglot           Polyglot
	TestDensity        TestDensity
	Cocomo             *Cocomo
	ReadingTime        ReadingTime
	ContextWindow      *ContextWindow
	Integrity          Integrity
	Nesting            Nesting
}

// testPathPrefixes and testFileMarkers implement the path-prefix
// heuristic for recognizing test files.
var testPathPrefixes = []string{"tests/", "test/", "__tests__/"}

func isTestPath(path string) bool {
	for _, p := range testPathPrefixes {
		if strings.Contains(path, "/"+p) || strings.HasPrefix(path, p) {
			return true
		}
	}
	base := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		base = path[idx+1:]
	}
	if strings.HasPrefix(base, "test_") {
		return true
	}
	dot := strings.LastIndexByte(base, '.')
	if dot > 0 && strings.HasSuffix(base[:dot], "_test") {
		return true
	}
	return false
}

// Build computes the full derived report from data. windowTokens <= 0
// means no ContextWindow section is produced.
func Build(data types.ExportData, windowTokens int) Report {
	parents := parentRows(data.Rows)

	totals := sumTotals(parents)

	report := Report{
		Totals:       totals,
		DocDensity:   Ratio{Ratio: docDensityRatio(totals)},
		Whitespace:   Ratio{Ratio: whitespaceRatio(totals)},
		Verbosity:    Ratio{Ratio: verbosityRatio(totals)},
		Distribution: buildDistribution(parents),
		Histogram:    buildHistogram(parents),
		Polyglot:     buildPolyglot(parents),
		TestDensity:  buildTestDensity(parents),
		Cocomo:       buildCocomo(totals),
		ReadingTime:  buildReadingTime(totals),
		Integrity:    buildIntegrity(data.Rows),
		Nesting:      buildNesting(data.Rows),
	}

	report.DocDensityByLang = ratioBreakdownByLang(parents, docDensityRatio)
	report.DocDensityByModule = ratioBreakdownByModule(parents, docDensityRatio)
	report.WhitespaceByLang = ratioBreakdownByLang(parents, whitespaceRatio)
	report.WhitespaceByModule = ratioBreakdownByModule(parents, whitespaceRatio)

	if windowTokens > 0 {
		pct := 0.0
		if windowTokens != 0 {
			pct = float64(totals.Tokens) / float64(windowTokens)
		}
		report.ContextWindow = &ContextWindow{
			WindowTokens: windowTokens,
			TotalTokens:  totals.Tokens,
			Pct:          pct,
			Fits:         totals.Tokens <= windowTokens,
		}
	}

	return report
}

func parentRows(rows []types.FileRow) []types.FileRow {
	out := make([]types.FileRow, 0, len(rows))
	for _, r := range rows {
		if r.Kind == types.Parent {
			out = append(out, r)
		}
	}
	return out
}

func sumTotals(rows []types.FileRow) Totals {
	var t Totals
	t.Files = len(rows)
	for _, r := range rows {
		t.Code += r.Code
		t.Comments += r.Comments
		t.Blanks += r.Blanks
		t.Lines += r.Lines
		t.Bytes += r.Bytes
		t.Tokens += r.Tokens
	}
	return t
}

func docDensityRatio(t Totals) float64 {
	denom := t.Code + t.Comments
	if denom == 0 {
		return 0
	}
	return float64(t.Comments) / float64(denom)
}

func whitespaceRatio(t Totals) float64 {
	denom := t.Code + t.Comments
	if denom == 0 {
		return 0
	}
	return float64(t.Blanks) / float64(denom)
}

func verbosityRatio(t Totals) float64 {
	if t.Lines == 0 {
		return 0
	}
	return float64(t.Bytes) / float64(t.Lines)
}

func buildDistribution(rows []types.FileRow) Distribution {
	if len(rows) == 0 {
		return Distribution{}
	}

	data := make(stats.Float64Data, len(rows))
	for i, r := range rows {
		data[i] = float64(r.Lines)
	}

	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	p90, _ := stats.Percentile(data, 90)
	p99, _ := stats.Percentile(data, 99)

	return Distribution{
		Count:  len(rows),
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		P90:    p90,
		P99:    p99,
		Gini:   giniCoefficient(data),
	}
}

// giniCoefficient applies the standard formula over sorted
// non-negative values: G = (2*sum(i*x_i) - (n+1)*sum(x_i)) / (n*sum(x_i)),
// 1-indexed ascending.
func giniCoefficient(values stats.Float64Data) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum, weighted float64
	for i, v := range sorted {
		sum += v
		weighted += float64(i+1) * v
	}
	if sum == 0 {
		return 0
	}

	return (2*weighted - float64(n+1)*sum) / (float64(n) * sum)
}

// histogramCutPoints are the upper bounds (inclusive) for
// Tiny/Small/Medium/Large; anything above the last cut is Huge.
var histogramCutPoints = [4]int{50, 200, 500, 1000}
var histogramLabels = [5]string{"Tiny", "Small", "Medium", "Large", "Huge"}

func buildHistogram(rows []types.FileRow) [5]HistogramBucket {
	var buckets [5]HistogramBucket
	for i, label := range histogramLabels {
		buckets[i].Label = label
	}

	for _, r := range rows {
		idx := 4
		for i, cut := range histogramCutPoints {
			if r.Lines <= cut {
				idx = i
				break
			}
		}
		buckets[idx].Files++
	}

	total := len(rows)
	if total > 0 {
		for i := range buckets {
			buckets[i].Pct = float64(buckets[i].Files) / float64(total)
		}
	}

	return buckets
}

func buildPolyglot(rows []types.FileRow) Polyglot {
	codeByLang := make(map[string]int)
	totalCode := 0
	for _, r := range rows {
		codeByLang[r.Lang] += r.Code
		totalCode += r.Code
	}

	langCount := len(codeByLang)
	p := Polyglot{LangCount: langCount}

	if totalCode == 0 || langCount == 0 {
		return p
	}

	var entropy float64
	dominant := ""
	dominantCode := -1
	for lang, code := range codeByLang {
		if code > dominantCode || (code == dominantCode && lang < dominant) {
			dominant = lang
			dominantCode = code
		}
		if code == 0 {
			continue
		}
		pct := float64(code) / float64(totalCode)
		entropy -= pct * math.Log2(pct)
	}

	normalized := entropy
	if langCount > 1 {
		normalized = entropy / math.Log2(float64(langCount))
	} else {
		normalized = 0
	}

	p.Entropy = normalized
	p.DominantLang = dominant
	p.DominantPct = float64(dominantCode) / float64(totalCode)
	return p
}

func buildTestDensity(rows []types.FileRow) TestDensity {
	var td TestDensity
	for _, r := range rows {
		if isTestPath(r.Path) {
			td.TestLines += r.Lines
			td.TestFiles++
		} else {
			td.ProdLines += r.Lines
			td.ProdFiles++
		}
	}
	if td.ProdLines > 0 {
		td.Ratio = float64(td.TestLines) / float64(td.ProdLines)
	}
	return td
}

func buildCocomo(t Totals) *Cocomo {
	if t.Code == 0 {
		return nil
	}
	const a, b, c, d = 2.4, 1.05, 2.5, 0.38
	kloc := float64(t.Code) / 1000
	effort := a * math.Pow(kloc, b)
	duration := c * math.Pow(effort, d)
	staff := 0.0
	if duration != 0 {
		staff = effort / duration
	}
	return &Cocomo{
		KLOC: kloc, EffortPM: effort, DurationMonths: duration, Staff: staff,
		A: a, B: b, C: c, D: d,
	}
}

func buildReadingTime(t Totals) ReadingTime {
	const linesPerMinute = 20
	return ReadingTime{
		Minutes:        float64(t.Lines) / linesPerMinute,
		LinesPerMinute: linesPerMinute,
		BasisLines:     t.Lines,
	}
}

// buildIntegrity hashes a canonical, sorted, normalized representation
// of every row so the digest is stable regardless of scan order.
func buildIntegrity(rows []types.FileRow) Integrity {
	sorted := make([]types.FileRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Lang < sorted[j].Lang
	})

	h := blake3.New()
	for _, r := range sorted {
		h.Write([]byte(r.Path))
		h.Write([]byte{0})
		h.Write([]byte(r.Lang))
		h.Write([]byte{0})
		writeInt(h, r.Code)
		writeInt(h, r.Comments)
		writeInt(h, r.Blanks)
		writeInt(h, r.Bytes)
		writeInt(h, r.Tokens)
	}

	sum := h.Sum(nil)
	return Integrity{Algo: "blake3", Hash: hex.EncodeToString(sum), Entries: len(rows)}
}

func writeInt(h *blake3.Hasher, v int) {
	var buf [8]byte
	x := uint64(v)
	for i := 0; i < 8; i++ {
		buf[i] = byte(x >> (8 * i))
	}
	h.Write(buf[:])
}

func buildNesting(rows []types.FileRow) Nesting {
	seen := make(map[string]struct{})
	var depths []int
	for _, r := range rows {
		if _, ok := seen[r.Path]; ok {
			continue
		}
		seen[r.Path] = struct{}{}
		depths = append(depths, strings.Count(r.Path, "/"))
	}

	if len(depths) == 0 {
		return Nesting{}
	}

	max := depths[0]
	sum := 0
	for _, d := range depths {
		if d > max {
			max = d
		}
		sum += d
	}

	return Nesting{Max: max, Avg: float64(sum) / float64(len(depths))}
}

func ratioBreakdownByLang(rows []types.FileRow, ratioFn func(Totals) float64) []RatioRow {
	groups := make(map[string]Totals)
	for _, r := range rows {
		t := groups[r.Lang]
		t.Code += r.Code
		t.Comments += r.Comments
		t.Blanks += r.Blanks
		t.Lines += r.Lines
		groups[r.Lang] = t
	}
	return sortedRatioRows(groups, ratioFn)
}

func ratioBreakdownByModule(rows []types.FileRow, ratioFn func(Totals) float64) []RatioRow {
	groups := make(map[string]Totals)
	for _, r := range rows {
		t := groups[r.Module]
		t.Code += r.Code
		t.Comments += r.Comments
		t.Blanks += r.Blanks
		t.Lines += r.Lines
		groups[r.Module] = t
	}
	return sortedRatioRows(groups, ratioFn)
}

func sortedRatioRows(groups map[string]Totals, ratioFn func(Totals) float64) []RatioRow {
	rows := make([]RatioRow, 0, len(groups))
	for key, t := range groups {
		rows = append(rows, RatioRow{Key: key, Ratio: ratioFn(t)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Ratio != rows[j].Ratio {
			return rows[i].Ratio > rows[j].Ratio
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}
