package pathmodel

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		name        string
		raw         string
		stripPrefix string
		want        string
	}{
		{"backslashes", `src\lib\main.go`, "", "src/lib/main.go"},
		{"leading dot-slash", "./src/main.go", "", "src/main.go"},
		{"leading slashes trimmed", "///abs/path.go", "", "abs/path.go"},
		{"exact prefix stripped", "project/src/main.go", "project", "src/main.go"},
		{"prefix must match segment", "projectx/src/main.go", "project", "projectx/src/main.go"},
		{"prefix with trailing slash already", "project/src/main.go", "project/", "src/main.go"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := NormalizePath(c.raw, c.stripPrefix); got != c.want {
				t.Errorf("NormalizePath(%q, %q) = %q, want %q", c.raw, c.stripPrefix, got, c.want)
			}
		})
	}
}

func TestModuleKey(t *testing.T) {
	cases := []struct {
		path  string
		roots []string
		depth int
		want  string
	}{
		{"Cargo.toml", []string{"crates"}, 2, "(root)"},
		{"crates/foo/src/lib.rs", []string{"crates"}, 2, "crates/foo"},
		{"crates/foo/src/lib.rs", []string{"crates"}, 1, "crates"},
		{"src/lib.rs", []string{"crates"}, 2, "src"},
		{"main.go", nil, 1, "(root)"},
		{"a/b/c/d.go", []string{"a"}, 10, "a/b/c"},
		{"a/b/c/d.go", []string{"a"}, 0, "a"},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			if got := ModuleKey(c.path, c.roots, c.depth); got != c.want {
				t.Errorf("ModuleKey(%q, %v, %d) = %q, want %q", c.path, c.roots, c.depth, got, c.want)
			}
		})
	}
}
