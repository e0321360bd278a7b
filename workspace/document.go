package workspace

import (
	"path/filepath"
	"strings"

	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/linker"
	"github.com/thriftlabs/thriftls/reporter"
)

// Document is the tracked state of one file: its latest text, AST, symbol
// table and diagnostics. The AST and parse diagnostics are rebuilt wholesale
// on every change; resolution state is rebuilt lazily, on the next query
// after the document or one of its includes changed.
type Document struct {
	Path    string
	Version int
	Text    string
	AST     *ast.Document

	// Open documents were synced by the client; auxiliary documents were
	// loaded through the read capability to satisfy an include.
	Open bool

	// Symbols is the document's own top-level name table, rebuilt on parse.
	Symbols *linker.Symbols

	// ParseDiags holds lexer and parser diagnostics, plus duplicate-name
	// diagnostics from symbol collection.
	ParseDiags []reporter.Diagnostic

	// resolution state, valid only while resolved is true
	resolved     bool
	ResolveDiags []reporter.Diagnostic
	References   []linker.Reference
	Deps         []linker.Dep
}

// IncludeTargets returns the resolved target path for each include of the
// document, in declaration order, alongside its AST node.
func (d *Document) IncludeTargets() []IncludeTarget {
	if d.AST == nil {
		return nil
	}
	dir := filepath.Dir(d.Path)
	includes := d.AST.Includes()
	out := make([]IncludeTarget, 0, len(includes))
	for _, inc := range includes {
		out = append(out, IncludeTarget{
			Node:  inc,
			Alias: IncludeAlias(inc.Path),
			Path:  filepath.Clean(filepath.Join(dir, filepath.FromSlash(inc.Path))),
		})
	}
	return out
}

// IncludeTarget is one include edge of a document.
type IncludeTarget struct {
	Node  *ast.Include
	Alias string
	Path  string
}

// IncludeAlias derives the alias a document is referenced by from its
// include path literal: the last path segment without its extension, so
// "./shared/base.thrift" is referenced as "base".
func IncludeAlias(includePath string) string {
	base := filepath.Base(filepath.FromSlash(includePath))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
