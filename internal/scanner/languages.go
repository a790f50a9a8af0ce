package scanner

import "strings"

// stringRule describes a quoted-string delimiter pair with its escape
// character, used so that comment markers inside string literals are
// not mistaken for the start of a comment.
type stringRule struct {
	start  string
	end    string
	escape byte
}

// blockComment describes a /* ... */-style multi-line comment pair.
type blockComment struct {
	start string
	end   string
}

// langRules is the lexical table entry for one language: enough to
// classify each physical line as code, comment, or blank without a
// real parser, per spec.md's Non-goal (a).
type langRules struct {
	name          string
	extensions    []string
	filenames     []string // exact basename matches (e.g. "Dockerfile")
	shebangHints  []string // substrings of a #! line that select this language
	lineComments  []string
	blockComments []blockComment
	strings       []stringRule
}

// registry is the ordered table of supported languages. Order only
// matters for shebang-hint disambiguation; extension lookup is a map.
var registry = []langRules{
	{
		name:          "Go",
		extensions:    []string{".go"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}, {"`", "`", 0}},
	},
	{
		name:          "Rust",
		extensions:    []string{".rs"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}},
	},
	{
		name:         "Python",
		extensions:   []string{".py", ".pyi"},
		shebangHints: []string{"python"},
		lineComments: []string{"#"},
		// Triple-quoted strings double as Python's doc/block comments;
		// treated as block comments per treat_doc_strings_as_comments.
		blockComments: []blockComment{{`"""`, `"""`}, {`'''`, `'''`}},
		strings:       []stringRule{{`"`, `"`, '\\'}, {"'", "'", '\\'}},
	},
	{
		name:          "JavaScript",
		extensions:    []string{".js", ".jsx", ".mjs", ".cjs"},
		shebangHints:  []string{"node"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}, {"'", "'", '\\'}, {"`", "`", '\\'}},
	},
	{
		name:          "TypeScript",
		extensions:    []string{".ts", ".tsx"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}, {"'", "'", '\\'}, {"`", "`", '\\'}},
	},
	{
		name:          "C",
		extensions:    []string{".c", ".h"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}},
	},
	{
		name:          "C++",
		extensions:    []string{".cc", ".cpp", ".cxx", ".hpp", ".hh"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}},
	},
	{
		name:         "Shell",
		extensions:   []string{".sh", ".bash", ".zsh"},
		shebangHints: []string{"sh", "bash", "zsh"},
		lineComments: []string{"#"},
		strings:      []stringRule{{`"`, `"`, '\\'}, {"'", "'", 0}},
	},
	{
		name:          "YAML",
		extensions:    []string{".yml", ".yaml"},
		lineComments:  []string{"#"},
		strings:       []stringRule{{`"`, `"`, '\\'}, {"'", "'", 0}},
	},
	{
		name:         "TOML",
		extensions:   []string{".toml"},
		lineComments: []string{"#"},
		strings:      []stringRule{{`"`, `"`, '\\'}, {"'", "'", 0}},
	},
	{
		name:       "JSON",
		extensions: []string{".json"},
		strings:    []stringRule{{`"`, `"`, '\\'}},
	},
	{
		name:          "Markdown",
		extensions:    []string{".md", ".markdown"},
		blockComments: []blockComment{{"<!--", "-->"}},
	},
	{
		name:          "HTML",
		extensions:    []string{".html", ".htm"},
		blockComments: []blockComment{{"<!--", "-->"}},
		strings:       []stringRule{{`"`, `"`, 0}, {"'", "'", 0}},
	},
	{
		name:          "CSS",
		extensions:    []string{".css", ".scss", ".sass", ".less"},
		lineComments:  []string{"//"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`"`, `"`, '\\'}, {"'", "'", '\\'}},
	},
	{
		name:          "SQL",
		extensions:    []string{".sql"},
		lineComments:  []string{"--"},
		blockComments: []blockComment{{"/*", "*/"}},
		strings:       []stringRule{{`'`, `'`, 0}},
	},
	{
		name:         "Dockerfile",
		filenames:    []string{"Dockerfile"},
		lineComments: []string{"#"},
		strings:      []stringRule{{`"`, `"`, '\\'}},
	},
	{
		name:       "Plain Text",
		extensions: []string{".txt"},
	},
}

var (
	byExtension map[string]langRules
	byFilename  map[string]langRules
)

func init() {
	byExtension = make(map[string]langRules)
	byFilename = make(map[string]langRules)
	for _, r := range registry {
		for _, ext := range r.extensions {
			byExtension[ext] = r
		}
		for _, fn := range r.filenames {
			byFilename[fn] = r
		}
	}
}

// classifyLanguage picks a langRules entry for the given file name and
// (if the extension is unknown or absent) its first line, treated as
// a possible shebang.
func classifyLanguage(name string, firstLine string) (langRules, bool) {
	if r, ok := byFilename[name]; ok {
		return r, true
	}

	ext := extOf(name)
	if r, ok := byExtension[ext]; ok {
		return r, true
	}

	if strings.HasPrefix(firstLine, "#!") {
		line := strings.ToLower(firstLine)
		for _, r := range registry {
			for _, hint := range r.shebangHints {
				if strings.Contains(line, hint) {
					return r, true
				}
			}
		}
	}

	return langRules{}, false
}

func extOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

func rulesForLanguage(lang string) (langRules, bool) {
	for _, r := range registry {
		if r.name == lang {
			return r, true
		}
	}
	return langRules{}, false
}
