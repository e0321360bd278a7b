// Package linker builds per-document symbol tables and resolves type
// references across the include graph.
package linker

import (
	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/reporter"
)

// Symbol is one top-level declaration visible for name resolution.
type Symbol struct {
	Name string
	// Kind is the declaration keyword: const, typedef, enum, struct, union,
	// exception or service.
	Kind string
	// Path of the declaring document.
	Path string
	// NameSpan is the span of the declaration's name token, the target for
	// go-to-definition.
	NameSpan ast.Range
	Decl     ast.Definition
}

// Symbols is the top-level name table of one document.
type Symbols struct {
	Path string
	// ByName maps declared name to its symbol. Duplicate declarations are
	// flagged with a diagnostic and the last one wins.
	ByName map[string]*Symbol
	// Order preserves declaration order for completion listings.
	Order []*Symbol
}

// Collect builds the symbol table for doc, reporting duplicate top-level
// names to handler. A duplicate is a diagnostic, never a fatal condition.
func Collect(path string, doc *ast.Document, handler *reporter.Handler) *Symbols {
	syms := &Symbols{Path: path, ByName: make(map[string]*Symbol)}
	for _, def := range doc.Definitions {
		name := def.Name()
		if name.Text == "" {
			continue
		}
		sym := &Symbol{
			Name:     name.Text,
			Kind:     def.Kind(),
			Path:     path,
			NameSpan: name.Span,
			Decl:     def,
		}
		if _, dup := syms.ByName[name.Text]; dup {
			handler.Errorf(name.Span, "duplicate declaration: %s", name.Text)
		}
		syms.ByName[name.Text] = sym
		syms.Order = append(syms.Order, sym)
	}
	return syms
}

// Names returns the declared names in declaration order. Duplicates appear
// once, at their first position.
func (s *Symbols) Names() []string {
	seen := make(map[string]bool, len(s.Order))
	out := make([]string, 0, len(s.Order))
	for _, sym := range s.Order {
		if !seen[sym.Name] {
			seen[sym.Name] = true
			out = append(out, sym.Name)
		}
	}
	return out
}
