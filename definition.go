package thriftls

import (
	"github.com/thriftlabs/thriftls/ast"
)

// Definition resolves the declaration site of the symbol at the given
// position (1-based line and column). It answers for type references,
// service extends clauses, identifier references inside constant values
// and include path literals; for an include literal the location is the
// start of the included file. ok is false when the path is untracked or
// nothing at the position has a definition.
func (a *Analyzer) Definition(path string, line, column int) (ast.Location, bool) {
	doc := a.document(path)
	if doc == nil || doc.AST == nil {
		return ast.Location{}, false
	}
	pos := position(line, column)

	// An include path literal points at the included file itself.
	for _, inc := range doc.IncludeTargets() {
		if inc.Node.PathSpan.Contains(pos) {
			start := ast.Position{Line: 1, Column: 1}
			return ast.Location{
				Path:  inc.Path,
				Range: ast.Range{Start: start, End: start},
			}, true
		}
	}

	id, ok := ast.IdentAt(doc.AST, pos)
	if !ok {
		return ast.Location{}, false
	}
	for _, ref := range doc.References {
		if ref.Ident.Span.Start != id.Span.Start {
			continue
		}
		if ref.Target == nil {
			return ast.Location{}, false
		}
		return ast.Location{Path: ref.Target.Path, Range: ref.Target.NameSpan}, true
	}
	return ast.Location{}, false
}
