package analyzers

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["halstead"] = Halstead
}

// HalsteadData is the `halstead` receipt section: Halstead software
// science metrics aggregated across every parent file in a supported
// language (spec.md §2's C10 row, GLOSSARY "Capability" example).
type HalsteadData struct {
	DistinctOperators int
	DistinctOperands  int
	TotalOperators    int
	TotalOperands     int
	Vocabulary        int
	Length            int
	Volume            float64
	Difficulty        float64
	Effort            float64
	TimeSeconds       float64
	EstimatedBugs     float64
	FilesAnalyzed     int
	FilesSkipped      int
}

var halsteadLangs = map[string]bool{
	"rust": true, "javascript": true, "typescript": true, "python": true,
	"go": true, "c": true, "c++": true, "java": true, "c#": true,
	"php": true, "ruby": true,
}

// isHalsteadLang reports whether lang has a known operator vocabulary,
// case-insensitively.
func isHalsteadLang(lang string) bool {
	return halsteadLangs[strings.ToLower(lang)]
}

// halsteadSymbols is the punctuation/operator table shared across every
// supported language, longest-first so a scan never splits a multi-char
// operator like ">>=" into ">" and ">=".
var halsteadSymbols = sortedByLengthDesc([]string{
	"**=", "<<=", ">>=", "===", "!==", "&&=", "||=", "??=",
	"->", "=>", "::", "==", "!=", "<=", ">=", "&&", "||", "??",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "<<", ">>",
	"++", "--", ":=",
	"+", "-", "*", "/", "%", "=", "<", ">", "!", "&", "|", "^", "~",
	"?", ":", ".", ",", ";", "(", ")", "{", "}", "[", "]",
})

func sortedByLengthDesc(symbols []string) []string {
	out := append([]string(nil), symbols...)
	sort.Slice(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// halsteadKeywords are the reserved words counted as operators, per
// supported language. Boolean/null literals are left as operands, the
// conventional Halstead treatment.
var halsteadKeywords = map[string]map[string]bool{
	"rust": wordSet("fn", "let", "mut", "if", "else", "for", "while", "loop",
		"match", "return", "break", "continue", "struct", "enum", "impl",
		"trait", "pub", "use", "mod", "as", "where", "dyn", "unsafe",
		"async", "await", "move", "ref", "in", "self", "Self", "static", "const"),
	"go": wordSet("func", "package", "import", "var", "const", "if", "else",
		"for", "range", "switch", "case", "break", "continue", "return",
		"defer", "go", "chan", "select", "struct", "interface", "map",
		"type", "goto", "fallthrough"),
	"python": wordSet("def", "return", "if", "elif", "else", "for", "while",
		"in", "not", "and", "or", "class", "import", "from", "as", "pass",
		"break", "continue", "lambda", "try", "except", "finally", "raise",
		"with", "yield", "global", "nonlocal", "is", "del", "assert"),
	"javascript": wordSet("function", "const", "let", "var", "if", "else",
		"for", "while", "do", "switch", "case", "break", "continue",
		"return", "class", "extends", "new", "typeof", "instanceof", "in",
		"of", "try", "catch", "finally", "throw", "yield", "async", "await",
		"import", "export", "from", "as", "default", "this", "super"),
	"c": wordSet("if", "else", "for", "while", "do", "switch", "case",
		"break", "continue", "return", "struct", "typedef", "sizeof",
		"static", "const", "void", "goto"),
	"java": wordSet("if", "else", "for", "while", "do", "switch", "case",
		"break", "continue", "return", "class", "interface", "extends",
		"implements", "new", "this", "super", "static", "public", "private",
		"protected", "final", "abstract", "synchronized", "try", "catch",
		"finally", "throw", "throws", "import", "package", "void"),
	"php": wordSet("function", "if", "else", "elseif", "for", "foreach",
		"while", "do", "switch", "case", "break", "continue", "return",
		"class", "interface", "extends", "implements", "new", "this",
		"static", "public", "private", "protected", "try", "catch",
		"finally", "throw", "echo", "print", "namespace", "use"),
	"ruby": wordSet("def", "end", "if", "elsif", "else", "unless", "for",
		"while", "until", "case", "when", "break", "next", "return",
		"class", "module", "do", "then", "begin", "rescue", "ensure",
		"yield", "require", "require_relative", "self"),
}

func init() {
	halsteadKeywords["typescript"] = wordSet(
		"function", "const", "let", "var", "if", "else", "for", "while",
		"do", "switch", "case", "break", "continue", "return", "class",
		"extends", "new", "typeof", "instanceof", "in", "of", "try",
		"catch", "finally", "throw", "yield", "async", "await", "import",
		"export", "from", "as", "default", "this", "super", "interface",
		"type", "enum", "implements", "public", "private", "protected",
		"readonly", "namespace", "declare", "abstract",
	)
	halsteadKeywords["c++"] = wordSet(
		"if", "else", "for", "while", "do", "switch", "case", "break",
		"continue", "return", "struct", "typedef", "sizeof", "static",
		"const", "void", "class", "public", "private", "protected",
		"virtual", "template", "namespace", "new", "delete", "this",
	)
	halsteadKeywords["c#"] = wordSet(
		"if", "else", "for", "foreach", "while", "do", "switch", "case",
		"break", "continue", "return", "class", "interface", "namespace",
		"using", "new", "this", "base", "static", "public", "private",
		"protected", "internal", "readonly", "const", "try", "catch",
		"finally", "throw", "void", "var",
	)
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// operatorsForLang returns the combined symbol and keyword operator
// vocabulary for lang, or nil for an unrecognized language.
func operatorsForLang(lang string) []string {
	kw, ok := halsteadKeywords[strings.ToLower(lang)]
	if !ok {
		return nil
	}
	out := append([]string(nil), halsteadSymbols...)
	for w := range kw {
		out = append(out, w)
	}
	return out
}

func lineCommentPrefix(lang string) string {
	switch strings.ToLower(lang) {
	case "python", "ruby":
		return "#"
	default:
		return "//"
	}
}

func hasBlockComments(lang string) bool {
	switch strings.ToLower(lang) {
	case "python", "ruby":
		return false
	default:
		return true
	}
}

// tokenCounts is the operator/operand tally one file or snippet
// contributes to a Halstead report.
type tokenCounts struct {
	operators      map[string]int
	operands       map[string]bool
	totalOperators int
	totalOperands  int
}

// tokenizeForHalstead scans code line by line: no AST, so a line
// starting a block comment -- or continuing one with a leading "*", the
// common multi-line comment style -- is skipped whole rather than
// tracked as nested comment state.
func tokenizeForHalstead(code, lang string) tokenCounts {
	counts := tokenCounts{operators: map[string]int{}, operands: map[string]bool{}}
	kw := halsteadKeywords[strings.ToLower(lang)]
	lineComment := lineCommentPrefix(lang)
	blockComments := hasBlockComments(lang)

	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, lineComment) {
			continue
		}
		if blockComments && (strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")) {
			continue
		}
		tokenizeLine(trimmed, kw, &counts)
	}

	return counts
}

func tokenizeLine(line string, kw map[string]bool, counts *tokenCounts) {
	i, n := 0, len(line)
	for i < n {
		c := line[i]

		if c == ' ' || c == '\t' {
			i++
			continue
		}

		if c == '"' || c == '\'' {
			quote := c
			i++
			for i < n && line[i] != quote {
				if line[i] == '\\' && i+1 < n {
					i += 2
					continue
				}
				i++
			}
			if i < n {
				i++
			}
			counts.operands["<string>"] = true
			counts.totalOperands++
			continue
		}

		if isIdentStart(c) {
			start := i
			for i < n && isIdentPart(line[i]) {
				i++
			}
			word := line[start:i]
			if kw[word] {
				counts.operators[word]++
				counts.totalOperators++
			} else {
				counts.operands[word] = true
				counts.totalOperands++
			}
			continue
		}

		if c >= '0' && c <= '9' {
			start := i
			for i < n && ((line[i] >= '0' && line[i] <= '9') || line[i] == '.') {
				i++
			}
			counts.operands[line[start:i]] = true
			counts.totalOperands++
			continue
		}

		if op := matchSymbolOperator(line[i:]); op != "" {
			counts.operators[op]++
			counts.totalOperators++
			i += len(op)
			continue
		}

		i++
	}
}

func matchSymbolOperator(s string) string {
	for _, op := range halsteadSymbols {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// roundHalstead rounds to 2 decimal places, round2's precision for every
// other human-facing ratio in the receipt.
func roundHalstead(v float64) float64 {
	return round2(v)
}

// Halstead computes Halstead software science metrics -- volume,
// difficulty, effort, estimated time and bugs -- across every parent
// file in a supported language (spec.md §2's C10 row). Unsupported
// languages contribute nothing; a file that cannot be read is counted
// as skipped rather than failing the whole analyzer.
func Halstead(in Input) Result {
	b := newBudget(in.Limits)
	operators := map[string]int{}
	operands := map[string]bool{}
	totalOperators, totalOperands := 0, 0
	filesAnalyzed, filesSkipped := 0, 0

	for _, r := range in.Export.Rows {
		if r.Kind != types.Parent || !isHalsteadLang(r.Lang) {
			continue
		}
		full := filepath.Join(in.Root, r.Path)
		data, _, err := readLimited(full, in.Limits, b)
		if err != nil {
			filesSkipped++
			continue
		}
		counts := tokenizeForHalstead(string(data), r.Lang)
		for op, c := range counts.operators {
			operators[op] += c
		}
		for operand := range counts.operands {
			operands[operand] = true
		}
		totalOperators += counts.totalOperators
		totalOperands += counts.totalOperands
		filesAnalyzed++
	}

	n1, n2 := len(operators), len(operands)
	vocabulary := n1 + n2
	length := totalOperators + totalOperands

	var volume, difficulty float64
	if vocabulary > 0 {
		volume = float64(length) * math.Log2(float64(vocabulary))
	}
	if n2 > 0 {
		difficulty = (float64(n1) / 2.0) * (float64(totalOperands) / float64(n2))
	}
	effort := difficulty * volume

	data := HalsteadData{
		DistinctOperators: n1,
		DistinctOperands:  n2,
		TotalOperators:    totalOperators,
		TotalOperands:     totalOperands,
		Vocabulary:        vocabulary,
		Length:            length,
		Volume:            roundHalstead(volume),
		Difficulty:        roundHalstead(difficulty),
		Effort:            roundHalstead(effort),
		TimeSeconds:       roundHalstead(effort / 18.0),
		EstimatedBugs:     roundHalstead(volume / 3000.0),
		FilesAnalyzed:     filesAnalyzed,
		FilesSkipped:      filesSkipped,
	}

	return Result{Data: data, Capability: available()}
}
