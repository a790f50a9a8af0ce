// Package tsparser provides pooled Tree-sitter parsing for Python and
// TypeScript/TSX source, used by the import-graph and API-surface
// analyzers. Go source is parsed separately with go/ast.
//
// Tree-sitter parsers require CGO_ENABLED=1. Every Tree must be closed
// to avoid leaking the underlying C allocation.
package tsparser

import (
	"fmt"
	"strings"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Lang identifies which grammar to parse a file with.
type Lang string

const (
	LangPython     Lang = "Python"
	LangTypeScript Lang = "TypeScript"
)

// File holds a parsed Tree-sitter syntax tree with its source content.
// Caller must call Close when done.
type File struct {
	Path    string
	Tree    *tree_sitter.Tree
	Content []byte
	Lang    Lang
}

// Close releases the underlying tree.
func (f *File) Close() {
	if f != nil && f.Tree != nil {
		f.Tree.Close()
	}
}

// Parser holds pooled Tree-sitter parsers for Python, TypeScript, and TSX.
// Tree-sitter parsers are NOT thread-safe, so all parse operations are
// serialized via a mutex; returned trees are safe to read concurrently.
type Parser struct {
	mu        sync.Mutex
	python    *tree_sitter.Parser
	ts        *tree_sitter.Parser
	tsx       *tree_sitter.Parser
}

// New creates parsers for Python, TypeScript, and TSX. Returns an error if
// any language fails to initialize (e.g. CGO disabled).
func New() (*Parser, error) {
	py := tree_sitter.NewParser()
	pyLang := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := py.SetLanguage(pyLang); err != nil {
		py.Close()
		return nil, fmt.Errorf("set python language: %w", err)
	}

	ts := tree_sitter.NewParser()
	tsLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	if err := ts.SetLanguage(tsLang); err != nil {
		py.Close()
		ts.Close()
		return nil, fmt.Errorf("set typescript language: %w", err)
	}

	tsx := tree_sitter.NewParser()
	tsxLang := tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	if err := tsx.SetLanguage(tsxLang); err != nil {
		py.Close()
		ts.Close()
		tsx.Close()
		return nil, fmt.Errorf("set tsx language: %w", err)
	}

	return &Parser{python: py, ts: ts, tsx: tsx}, nil
}

// Close releases all parser resources. Must be called when done.
func (p *Parser) Close() {
	if p.python != nil {
		p.python.Close()
	}
	if p.ts != nil {
		p.ts.Close()
	}
	if p.tsx != nil {
		p.tsx.Close()
	}
}

// Parse parses source content for the given language and file extension.
// ext distinguishes .ts from .tsx for TypeScript. The returned Tree must be
// closed by the caller. Safe for concurrent use; parsing is serialized
// internally.
func (p *Parser) Parse(lang Lang, ext string, content []byte) (*File, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var parser *tree_sitter.Parser
	switch lang {
	case LangPython:
		parser = p.python
	case LangTypeScript:
		if strings.EqualFold(ext, ".tsx") {
			parser = p.tsx
		} else {
			parser = p.ts
		}
	default:
		return nil, fmt.Errorf("unsupported language for tree-sitter: %s", lang)
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter parse returned nil tree")
	}

	return &File{Tree: tree, Content: content, Lang: lang}, nil
}
