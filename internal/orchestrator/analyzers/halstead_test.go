package analyzers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func TestIsHalsteadLang(t *testing.T) {
	for _, lang := range []string{"Rust", "JavaScript", "TypeScript", "Python", "Go", "C", "C++", "Java", "C#", "PHP", "Ruby", "rust", "RUST", "rUsT"} {
		if !isHalsteadLang(lang) {
			t.Errorf("%q should be a supported Halstead language", lang)
		}
	}
	for _, lang := range []string{"Markdown", "JSON", "YAML", "TOML", "HTML", "CSS", ""} {
		if isHalsteadLang(lang) {
			t.Errorf("%q should not be a supported Halstead language", lang)
		}
	}
}

func TestOperatorsForLangNonEmpty(t *testing.T) {
	for _, lang := range []string{"rust", "javascript", "typescript", "python", "go", "c", "c++", "java", "c#", "php", "ruby"} {
		if len(operatorsForLang(lang)) == 0 {
			t.Errorf("%s should have a non-empty operator table", lang)
		}
	}
	if len(operatorsForLang("brainfuck")) != 0 {
		t.Error("unsupported language should have an empty operator table")
	}
}

func TestTokenizeRustFn(t *testing.T) {
	counts := tokenizeForHalstead("fn add(a: i32, b: i32) -> i32 {\n    a + b\n}", "rust")
	for _, op := range []string{"fn", "+", "->"} {
		if counts.operators[op] == 0 {
			t.Errorf("expected operator %q", op)
		}
	}
	for _, operand := range []string{"add", "a", "b", "i32"} {
		if !counts.operands[operand] {
			t.Errorf("expected operand %q", operand)
		}
	}
	if counts.totalOperators == 0 || counts.totalOperands == 0 {
		t.Error("expected positive totals")
	}
}

func TestTokenizeRustIfElse(t *testing.T) {
	counts := tokenizeForHalstead("if x > 0 { return x; } else { return 0; }", "rust")
	for _, op := range []string{"if", "else", "return", ">"} {
		if counts.operators[op] == 0 {
			t.Errorf("expected operator %q", op)
		}
	}
	if !counts.operands["x"] {
		t.Error("expected operand x")
	}
}

func TestTokenizePythonDef(t *testing.T) {
	counts := tokenizeForHalstead("def greet(name):\n    return name + \" hello\"", "python")
	for _, op := range []string{"def", "return", "+"} {
		if counts.operators[op] == 0 {
			t.Errorf("expected operator %q", op)
		}
	}
	for _, operand := range []string{"greet", "name", "<string>"} {
		if !counts.operands[operand] {
			t.Errorf("expected operand %q", operand)
		}
	}
}

func TestTokenizeGoFunc(t *testing.T) {
	counts := tokenizeForHalstead("func main() {\n    x := 42\n    if x > 0 {\n        return\n    }\n}", "go")
	for _, op := range []string{"func", ":=", "if", ">", "return"} {
		if counts.operators[op] == 0 {
			t.Errorf("expected operator %q", op)
		}
	}
	for _, operand := range []string{"main", "x"} {
		if !counts.operands[operand] {
			t.Errorf("expected operand %q", operand)
		}
	}
}

func TestTokenizeEmptyAndWhitespaceYieldZero(t *testing.T) {
	for _, code := range []string{"", "   \n\n   \t  \n"} {
		counts := tokenizeForHalstead(code, "rust")
		if counts.totalOperators != 0 || counts.totalOperands != 0 {
			t.Errorf("expected zero counts for %q", code)
		}
	}
}

func TestTokenizeCommentOnlyYieldsZero(t *testing.T) {
	counts := tokenizeForHalstead("// this is a comment\n// another comment\n", "rust")
	if counts.totalOperators != 0 || counts.totalOperands != 0 {
		t.Error("expected zero counts for comment-only input")
	}
}

func TestTokenizeHashCommentSkipped(t *testing.T) {
	counts := tokenizeForHalstead("# this is a python comment\n# another one\n", "python")
	if counts.totalOperators != 0 || counts.totalOperands != 0 {
		t.Error("expected zero counts for hash-comment input")
	}
}

func TestTokenizeBlockCommentStartSkipped(t *testing.T) {
	counts := tokenizeForHalstead("/* block comment */\n* continuation\n", "rust")
	if counts.totalOperators != 0 || counts.totalOperands != 0 {
		t.Error("expected zero counts: both lines look like block-comment text")
	}
}

func TestTokenizeSingleOperandOnly(t *testing.T) {
	counts := tokenizeForHalstead("x", "rust")
	if counts.totalOperators != 0 || counts.totalOperands != 1 || !counts.operands["x"] {
		t.Errorf("expected a single operand, got %+v", counts)
	}
}

func TestTokenizeSingleOperatorOnly(t *testing.T) {
	counts := tokenizeForHalstead("return", "rust")
	if counts.totalOperators != 1 || counts.totalOperands != 0 || counts.operators["return"] != 1 {
		t.Errorf("expected a single operator, got %+v", counts)
	}
}

func TestTokenizeStringLiteralsAsOperands(t *testing.T) {
	counts := tokenizeForHalstead(`let s = "hello world";`, "rust")
	if !counts.operands["<string>"] {
		t.Error("expected <string> operand")
	}
	if counts.totalOperands < 2 {
		t.Errorf("expected at least 2 operands, got %d", counts.totalOperands)
	}
}

func TestTokenizeEscapedStringLiteral(t *testing.T) {
	counts := tokenizeForHalstead(`let s = "hello \"world\"";`, "rust")
	if !counts.operands["<string>"] || !counts.operands["s"] {
		t.Errorf("expected <string> and s operands, got %+v", counts.operands)
	}
}

func TestTokenizeSingleCharLiteral(t *testing.T) {
	counts := tokenizeForHalstead("let c = 'x';", "rust")
	if !counts.operands["<string>"] {
		t.Error("expected single-quoted literal counted as <string> operand")
	}
}

func TestTokenizeUnknownLanguageProducesOnlyOperands(t *testing.T) {
	counts := tokenizeForHalstead("fn let if return x y z", "unknown_lang")
	if counts.totalOperators != 0 {
		t.Errorf("expected no recognized operators, got %d", counts.totalOperators)
	}
	if counts.totalOperands == 0 {
		t.Error("expected every token to become an operand")
	}
}

func TestTokenizeDuplicateOperandsIncreaseTotalNotDistinct(t *testing.T) {
	counts := tokenizeForHalstead("x + x + x", "rust")
	if len(counts.operands) != 1 || counts.totalOperands != 3 {
		t.Errorf("expected 1 distinct / 3 total operands, got %d/%d", len(counts.operands), counts.totalOperands)
	}
	if counts.operators["+"] != 2 || counts.totalOperators != 2 {
		t.Errorf("expected + counted twice, got %d/%d", counts.operators["+"], counts.totalOperators)
	}
}

func TestTokenizeMultiCharOperatorsMatchLongestFirst(t *testing.T) {
	counts := tokenizeForHalstead("x >>= 1", "rust")
	if counts.operators[">>="] == 0 {
		t.Error("expected >>= to be matched as a single operator")
	}
	if counts.operators[">"] != 0 {
		t.Error("individual > should not appear when >>= matches")
	}
}

func TestHalsteadVolumeFormula(t *testing.T) {
	// volume = length * log2(vocabulary); n1=10,n2=6,N1=13,N2=7 -> n=16,N=20
	rows := []types.FileRow{{Path: "a.rs", Lang: "Rust", Kind: types.Parent}}
	dir := t.TempDir()
	writeFile(t, dir, "a.rs", "fn main() {\n    let x = 1 + 2;\n    let y = x * 3;\n}\n")
	result := Halstead(Input{Root: dir, Export: types.ExportData{Rows: rows}, Limits: DefaultLimits})
	data := result.Data.(HalsteadData)
	if data.Vocabulary != data.DistinctOperators+data.DistinctOperands {
		t.Errorf("vocabulary mismatch: %+v", data)
	}
	if data.Length != data.TotalOperators+data.TotalOperands {
		t.Errorf("length mismatch: %+v", data)
	}
	if data.Volume <= 0 {
		t.Error("expected positive volume")
	}
}

func TestHalsteadSkipsUnsupportedLanguage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "# Hello")
	rows := []types.FileRow{{Path: "readme.md", Lang: "Markdown", Kind: types.Parent}}
	result := Halstead(Input{Root: dir, Export: types.ExportData{Rows: rows}, Limits: DefaultLimits})
	data := result.Data.(HalsteadData)
	if data.DistinctOperators != 0 || data.DistinctOperands != 0 || data.Volume != 0 {
		t.Errorf("expected zero metrics for unsupported language, got %+v", data)
	}
}

func TestHalsteadEmptyFileList(t *testing.T) {
	result := Halstead(Input{Root: t.TempDir(), Export: types.ExportData{}, Limits: DefaultLimits})
	data := result.Data.(HalsteadData)
	if data.Length != 0 || data.Vocabulary != 0 || data.Volume != 0 || data.Difficulty != 0 || data.Effort != 0 {
		t.Errorf("expected zero metrics for empty file list, got %+v", data)
	}
}

func TestHalsteadSkipsMissingFileGracefully(t *testing.T) {
	rows := []types.FileRow{{Path: "nonexistent.rs", Lang: "Rust", Kind: types.Parent}}
	result := Halstead(Input{Root: t.TempDir(), Export: types.ExportData{Rows: rows}, Limits: DefaultLimits})
	data := result.Data.(HalsteadData)
	if data.Length != 0 {
		t.Errorf("expected zero length for a missing file, got %d", data.Length)
	}
	if data.FilesSkipped != 1 {
		t.Errorf("expected 1 skipped file, got %d", data.FilesSkipped)
	}
}

func TestHalsteadAggregatesMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rs", "fn a() { let x = 1; }")
	writeFile(t, dir, "b.rs", "fn b() { let y = 2; }")

	multi := Halstead(Input{
		Root: dir,
		Export: types.ExportData{Rows: []types.FileRow{
			{Path: "a.rs", Lang: "Rust", Kind: types.Parent},
			{Path: "b.rs", Lang: "Rust", Kind: types.Parent},
		}},
		Limits: DefaultLimits,
	}).Data.(HalsteadData)

	single := Halstead(Input{
		Root:   dir,
		Export: types.ExportData{Rows: []types.FileRow{{Path: "a.rs", Lang: "Rust", Kind: types.Parent}}},
		Limits: DefaultLimits,
	}).Data.(HalsteadData)

	if multi.TotalOperators < single.TotalOperators || multi.TotalOperands < single.TotalOperands || multi.Length < single.Length {
		t.Errorf("expected aggregated metrics to be >= single-file metrics: multi=%+v single=%+v", multi, single)
	}
}

func TestHalsteadSkipsChildFileKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "child.rs", "fn x() {}")
	rows := []types.FileRow{{Path: "child.rs", Lang: "Rust", Kind: types.Child}}
	data := Halstead(Input{Root: dir, Export: types.ExportData{Rows: rows}, Limits: DefaultLimits}).Data.(HalsteadData)
	if data.Length != 0 {
		t.Errorf("expected child rows to be skipped, got length %d", data.Length)
	}
}

func TestHalsteadMixedLanguages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "def f(x):\n    return x + 1\n")
	writeFile(t, dir, "app.js", "const f = (x) => x + 1;\n")
	rows := []types.FileRow{
		{Path: "app.py", Lang: "Python", Kind: types.Parent},
		{Path: "app.js", Lang: "JavaScript", Kind: types.Parent},
	}
	data := Halstead(Input{Root: dir, Export: types.ExportData{Rows: rows}, Limits: DefaultLimits}).Data.(HalsteadData)
	if data.DistinctOperators == 0 || data.DistinctOperands == 0 {
		t.Errorf("expected non-zero metrics across mixed languages, got %+v", data)
	}
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
