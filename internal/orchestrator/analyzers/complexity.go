package analyzers

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fzipp/gocyclo"

	"github.com/ingo-eichhorst/tokmd/internal/sensor"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["complexity"] = Complexity
}

// FunctionMetric is one function's complexity measurement.
type FunctionMetric struct {
	Name       string
	Path       string
	Line       int
	Complexity int
}

// ComplexityData is the `complexity` receipt section.
type ComplexityData struct {
	Functions      []FunctionMetric
	MaxComplexity  int
	MeanComplexity float64
	FilesAnalyzed  int
	FilesSkipped   int
}

// controlFlowKeywords drives the lexical fallback for languages gocyclo
// cannot parse: one point per occurrence, same spirit as cyclomatic
// complexity without building a real AST (spec Non-goal (a)).
var controlFlowKeywords = map[string][]string{
	"Python":     {"if ", "elif ", "for ", "while ", "except ", "and ", "or "},
	"JavaScript": {"if ", "else if", "for ", "while ", "case ", "catch ", "&&", "||"},
	"TypeScript": {"if ", "else if", "for ", "while ", "case ", "catch ", "&&", "||"},
	"Rust":       {"if ", "else if", "for ", "while ", "match ", "&&", "||"},
	"Java":       {"if ", "else if", "for ", "while ", "case ", "catch ", "&&", "||"},
	"C":          {"if ", "else if", "for ", "while ", "case ", "&&", "||"},
	"C++":        {"if ", "else if", "for ", "while ", "case ", "&&", "||"},
}

// Complexity computes per-function cyclomatic complexity for Go files
// via gocyclo, and a lexical keyword-density estimate for every other
// language with a known keyword set (spec.md §4.10, Health/Risk presets).
func Complexity(in Input) Result {
	b := newBudget(in.Limits)
	var functions []FunctionMetric
	skipped := 0

	byLang := map[string][]types.FileRow{}
	for _, r := range in.Export.Rows {
		if r.Kind != types.Parent {
			continue
		}
		byLang[r.Lang] = append(byLang[r.Lang], r)
	}

	if goRows, ok := byLang["Go"]; ok {
		functions = append(functions, analyzeGoComplexity(in.Root, goRows)...)
	}

	for lang, keywords := range controlFlowKeywords {
		rows, ok := byLang[lang]
		if !ok {
			continue
		}
		for _, r := range rows {
			full := filepath.Join(in.Root, r.Path)
			data, _, err := readLimited(full, in.Limits, b)
			if err != nil {
				skipped++
				continue
			}
			score := 1
			text := string(data)
			for _, kw := range keywords {
				score += strings.Count(text, kw)
			}
			functions = append(functions, FunctionMetric{
				Name:       r.Path,
				Path:       r.Path,
				Line:       1,
				Complexity: score,
			})
		}
	}

	sort.Slice(functions, func(i, j int) bool {
		if functions[i].Path != functions[j].Path {
			return functions[i].Path < functions[j].Path
		}
		return functions[i].Line < functions[j].Line
	})

	data := ComplexityData{Functions: functions, FilesSkipped: skipped}
	sum := 0
	for _, f := range functions {
		if f.Complexity > data.MaxComplexity {
			data.MaxComplexity = f.Complexity
		}
		sum += f.Complexity
	}
	if len(functions) > 0 {
		data.MeanComplexity = float64(sum) / float64(len(functions))
	}
	data.FilesAnalyzed = len(byLang["Go"])
	for lang := range controlFlowKeywords {
		data.FilesAnalyzed += len(byLang[lang])
	}

	var findings []sensor.Finding
	for _, f := range functions {
		if f.Complexity >= 15 {
			findings = append(findings, sensor.NewFinding("tokmd", sensor.Finding{
				CheckID:  "complexity",
				Code:     "high-complexity",
				Severity: sensor.SeverityWarn,
				Title:    "High cyclomatic complexity",
				Message:  f.Name,
				Location: &sensor.Location{Path: f.Path, Line: f.Line},
			}))
		}
	}

	return Result{Data: data, Findings: findings, Capability: available()}
}

func analyzeGoComplexity(root string, rows []types.FileRow) []FunctionMetric {
	fset := token.NewFileSet()
	var out []FunctionMetric

	for _, r := range rows {
		full := filepath.Join(root, r.Path)
		f, err := parser.ParseFile(fset, full, nil, 0)
		if err != nil {
			continue
		}

		var stats gocyclo.Stats
		stats = gocyclo.AnalyzeASTFile(f, fset, stats)

		byPos := make(map[int]int, len(stats))
		for _, s := range stats {
			byPos[s.Pos.Line] = s.Complexity
		}

		ast.Inspect(f, func(n ast.Node) bool {
			fn, ok := n.(*ast.FuncDecl)
			if !ok {
				return true
			}
			pos := fset.Position(fn.Pos())
			name := fn.Name.Name
			if fn.Recv != nil && len(fn.Recv.List) > 0 {
				name = receiverTypeName(fn.Recv.List[0].Type) + "." + name
			}
			out = append(out, FunctionMetric{
				Name:       name,
				Path:       r.Path,
				Line:       pos.Line,
				Complexity: byPos[pos.Line],
			})
			return true
		})
	}

	return out
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return ""
	}
}
