package thriftls

import (
	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/reporter"
	"github.com/thriftlabs/thriftls/workspace"
)

// Analyzer is the engine's root object: it owns the workspace store and
// serves the query surface on top of it. Construct one per host session and
// drive all document mutation through it sequentially.
type Analyzer struct {
	ws       *workspace.Workspace
	resolver Resolver
}

// AnalyzerOption configures a new Analyzer.
type AnalyzerOption func(*Analyzer)

// WithResolver supplies the file-reading capability used for include targets
// that are not synced documents. The default reads the OS filesystem.
func WithResolver(r Resolver) AnalyzerOption {
	return func(a *Analyzer) { a.resolver = r }
}

// NewAnalyzer returns an empty analyzer. Its state lives for the process
// lifetime; nothing is persisted.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{resolver: &SourceResolver{}}
	for _, opt := range opts {
		opt(a)
	}
	a.ws = workspace.New(func(path string) (string, error) {
		if a.resolver == nil {
			return "", errNoResolver
		}
		return a.resolver.ReadFileByPath(path)
	})
	return a
}

// SyncDocument replaces (or creates) the document at path with the full new
// text. The document is re-lexed and re-parsed immediately; documents that
// depend on it re-resolve lazily on their next query.
func (a *Analyzer) SyncDocument(path, text string) {
	a.ws.Sync(path, text)
}

// RemoveDocument stops tracking path. Documents that include it keep their
// references, which resolve to nothing on their next query.
func (a *Analyzer) RemoveDocument(path string) {
	a.ws.Remove(path)
}

// Diagnostics returns, for every tracked document, the union of its lexer,
// parser and resolver diagnostics ordered by position. Documents without
// issues map to an empty slice.
func (a *Analyzer) Diagnostics() map[string][]reporter.Diagnostic {
	out := make(map[string][]reporter.Diagnostic)
	for _, path := range a.ws.Paths() {
		if diags, ok := a.ws.Diagnostics(path); ok {
			out[path] = diags
		}
	}
	return out
}

// DocumentDiagnostics returns the diagnostics for one document. The second
// result distinguishes "no such document" from "zero diagnostics".
func (a *Analyzer) DocumentDiagnostics(path string) ([]reporter.Diagnostic, bool) {
	return a.ws.Diagnostics(path)
}

// document fetches the resolved document behind path, or nil.
func (a *Analyzer) document(path string) *workspace.Document {
	doc, ok := a.ws.Resolved(path)
	if !ok {
		return nil
	}
	return doc
}

// position builds the 1-based position used throughout the engine. Hosts
// speaking 0-based protocols convert before calling.
func position(line, column int) ast.Position {
	return ast.Position{Line: line, Column: column}
}
