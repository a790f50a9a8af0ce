package analyzers

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/tokmd/internal/tsparser"
	"github.com/ingo-eichhorst/tokmd/pkg/types"
)

func init() {
	Registry["api-surface"] = APISurface
}

// Symbol is one exported top-level identifier.
type Symbol struct {
	Name string
	Path string
	Kind string // func, type, class, const, var
}

// APISurfaceData is the `api_surface` receipt section.
type APISurfaceData struct {
	Symbols []Symbol
	Total   int
}

// APISurface censuses every exported top-level identifier: Go's
// exported-by-capitalization convention via go/ast, and Python/
// TypeScript's top-level (non "_"-prefixed) defs via tree-sitter
// (Architecture preset, spec.md §4.10).
func APISurface(in Input) Result {
	var symbols []Symbol
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
		f, err := parser.ParseFile(fset, full, nil, 0)
		if err != nil {
			continue
		}
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name.IsExported() {
					symbols = append(symbols, Symbol{Name: d.Name.Name, Path: r.Path, Kind: "func"})
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						if s.Name.IsExported() {
							symbols = append(symbols, Symbol{Name: s.Name.Name, Path: r.Path, Kind: "type"})
						}
					case *ast.ValueSpec:
						for _, name := range s.Names {
							if name.IsExported() {
								kind := "var"
								if d.Tok == token.CONST {
									kind = "const"
								}
								symbols = append(symbols, Symbol{Name: name.Name, Path: r.Path, Kind: kind})
							}
						}
					}
				}
			}
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
				symbols = append(symbols, topLevelSymbols(tf.Tree.RootNode(), data, r.Path)...)
				tf.Close()
			}
		}
	}

	sort.Slice(symbols, func(i, j int) bool {
		if symbols[i].Path != symbols[j].Path {
			return symbols[i].Path < symbols[j].Path
		}
		return symbols[i].Name < symbols[j].Name
	})

	return Result{Data: APISurfaceData{Symbols: symbols, Total: len(symbols)}, Capability: available()}
}

func topLevelSymbols(root *tree_sitter.Node, content []byte, path string) []Symbol {
	var symbols []Symbol
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		var kind string
		switch child.Kind() {
		case "function_definition", "function_declaration":
			kind = "func"
		case "class_definition", "class_declaration":
			kind = "class"
		default:
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nodeText(nameNode, content)
		if strings.HasPrefix(name, "_") {
			continue
		}
		symbols = append(symbols, Symbol{Name: name, Path: path, Kind: kind})
	}
	return symbols
}
