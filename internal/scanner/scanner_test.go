package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanClassifiesByLanguage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n\n// entry point\nfunc main() {\n}\n")
	writeFile(t, dir, "lib.rs", "// hello\nfn main() {}\n")
	writeFile(t, dir, "README.md", "# Title\n\nSome text.\n")

	result, err := Scan([]string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := result.Languages["Go"]; !ok {
		t.Fatal("expected Go language bucket")
	}
	if _, ok := result.Languages["Rust"]; !ok {
		t.Fatal("expected Rust language bucket")
	}
	if _, ok := result.Languages["Markdown"]; !ok {
		t.Fatal("expected Markdown language bucket")
	}

	goAgg := result.Languages["Go"]
	if len(goAgg.Reports) != 1 {
		t.Fatalf("expected 1 Go report, got %d", len(goAgg.Reports))
	}
	if goAgg.Reports[0].Comments == 0 {
		t.Fatal("expected at least one comment line in main.go")
	}
}

func TestScanRespectsIgnore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.go", "package main\n")
	writeFile(t, dir, "vendor/skip.go", "package vendor\n")
	writeFile(t, dir, ".gitignore", "vendor/\n")

	result, err := Scan([]string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	agg, ok := result.Languages["Go"]
	if !ok {
		t.Fatal("expected Go language bucket")
	}
	if len(agg.Reports) != 1 {
		t.Fatalf("expected vendor/ to be ignored, got %d Go reports", len(agg.Reports))
	}
	if agg.Reports[0].Name != "keep.go" {
		t.Fatalf("expected keep.go, got %q", agg.Reports[0].Name)
	}
}

func TestScanSkipsVCSDirsUnconditionally(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")
	writeFile(t, dir, ".git/objects/dummy.go", "package ignored\n")

	result, err := Scan([]string{dir}, Options{NoIgnoreVCS: true})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Languages["Go"].Reports) != 1 {
		t.Fatalf("expected .git contents to be skipped regardless of NoIgnoreVCS")
	}
}

func TestScanDetectsEmbeddedMarkdownFence(t *testing.T) {
	dir := t.TempDir()
	content := "# Title\n\n```go\npackage main\n\nfunc main() {}\n```\n\nMore text.\n"
	writeFile(t, dir, "doc.md", content)

	result, err := Scan([]string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	mdAgg, ok := result.Languages["Markdown"]
	if !ok {
		t.Fatal("expected Markdown bucket")
	}
	goChildren, ok := mdAgg.Children["Go"]
	if !ok || len(goChildren) != 1 {
		t.Fatalf("expected one embedded Go fragment, got %v", mdAgg.Children)
	}
}

func TestScanDetectsEmbeddedHTMLScript(t *testing.T) {
	dir := t.TempDir()
	content := "<html>\n<script>\nfunction f() {\n  // hi\n  return 1;\n}\n</script>\n</html>\n"
	writeFile(t, dir, "page.html", content)

	result, err := Scan([]string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	htmlAgg, ok := result.Languages["HTML"]
	if !ok {
		t.Fatal("expected HTML bucket")
	}
	jsChildren, ok := htmlAgg.Children["JavaScript"]
	if !ok || len(jsChildren) != 1 {
		t.Fatalf("expected one embedded JavaScript fragment, got %v", htmlAgg.Children)
	}
}

func TestScanUnsupportedExtensionSkippedSilently(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.png", "\x89PNG\r\n")
	writeFile(t, dir, "main.go", "package main\n")

	result, err := Scan([]string{dir}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Languages) != 1 {
		t.Fatalf("expected only Go to be classified, got %v", result.Languages)
	}
}

func TestScanStripPrefix(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/main.go", "package main\n")

	result, err := Scan([]string{dir}, Options{StripPrefix: "src"})
	if err != nil {
		t.Fatal(err)
	}

	reports := result.Languages["Go"].Reports
	if len(reports) != 1 || reports[0].Name != "main.go" {
		t.Fatalf("expected stripped name main.go, got %+v", reports)
	}
}
