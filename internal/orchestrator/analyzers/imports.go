package analyzers

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/tokmd/internal/tsparser"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["imports"] = Imports
}

// ImportEdge is one file -> imported-module edge.
type ImportEdge struct {
	From string
	To   string
}

// ImportsData is the `imports` receipt section: the architecture edge
// list the Architecture preset renders (spec.md §4.10).
type ImportsData struct {
	Edges []ImportEdge
}

// Imports extracts per-file import edges: go/ast for Go, tree-sitter
// for Python and TypeScript. Files in other languages contribute no
// edges (no Non-goal violation, since §4.10's "imports" analyzer is
// explicitly source-language scoped by what treesitter/go-ast cover).
func Imports(in Input) Result {
	var edges []ImportEdge
	b := newBudget(in.Limits)

	byLang := map[string][]types.FileRow{}
	for _, r := range in.Export.Rows {
		if r.Kind == types.Parent {
			byLang[r.Lang] = append(byLang[r.Lang], r)
		}
	}

	fset := token.NewFileSet()
	for _, r := range byLang["Go"] {
		full := filepath.Join(in.Root, r.Path)
		f, err := parser.ParseFile(fset, full, nil, parser.ImportsOnly)
		if err != nil {
			continue
		}
		for _, imp := range f.Imports {
			path, unquoteErr := strconv.Unquote(imp.Path.Value)
			if unquoteErr != nil {
				continue
			}
			edges = append(edges, ImportEdge{From: r.Path, To: path})
		}
	}

	tsRows := append(append([]types.FileRow{}, byLang["Python"]...), byLang["TypeScript"]...)
	if len(tsRows) > 0 {
		tp, err := tsparser.New()
		if err == nil {
			defer tp.Close()
			for _, r := range tsRows {
				full := filepath.Join(in.Root, r.Path)
				data, _, readErr := readLimited(full, in.Limits, b)
				if readErr != nil {
					continue
				}
				lang := tsparser.LangTypeScript
				if r.Lang == "Python" {
					lang = tsparser.LangPython
				}
				tf, parseErr := tp.Parse(lang, filepath.Ext(r.Path), data)
				if parseErr != nil {
					continue
				}
				for _, to := range extractImports(tf.Tree.RootNode(), data, lang) {
					edges = append(edges, ImportEdge{From: r.Path, To: to})
				}
				tf.Close()
			}
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})

	return Result{Data: ImportsData{Edges: edges}, Capability: available()}
}

// extractImports walks a tree-sitter syntax tree collecting the
// module names referenced by Python `import`/`from ... import` and
// TypeScript `import ... from "..."` statements.
func extractImports(root *tree_sitter.Node, content []byte, lang tsparser.Lang) []string {
	var out []string
	var walk func(n *tree_sitter.Node)
	walk = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}
		switch n.Kind() {
		case "import_statement", "import_from_statement":
			if lang == tsparser.LangPython {
				out = append(out, pythonImportModules(n, content)...)
				return
			}
		}
		if lang == tsparser.LangTypeScript && n.Kind() == "import_statement" {
			if src := n.ChildByFieldName("source"); src != nil {
				out = append(out, strings.Trim(nodeText(src, content), `"'`))
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return out
}

func pythonImportModules(n *tree_sitter.Node, content []byte) []string {
	var modules []string
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "dotted_name", "identifier":
			modules = append(modules, nodeText(child, content))
		}
	}
	return modules
}

func nodeText(n *tree_sitter.Node, content []byte) string {
	return string(content[n.StartByte():n.EndByte()])
}
