// Package workspace owns the process-wide table of tracked documents and the
// include graph derived from them.
//
// The store is logically single-writer: Sync and Remove are expected to be
// invoked sequentially by the driving host, in the order documents actually
// changed. Queries may run concurrently with one another: lazy re-resolution
// and auxiliary loading mutate the store under an internal lock, so two
// queries hitting the same stale document serialize on it.
package workspace

import (
	"sync"

	"github.com/tidwall/btree"

	"github.com/thriftlabs/thriftls/linker"
	"github.com/thriftlabs/thriftls/parser"
	"github.com/thriftlabs/thriftls/reporter"
)

// ReadFile is the injected capability used to load include targets that are
// not already tracked. It returns the file's content or an error; the engine
// has no other dependency on a filesystem.
type ReadFile func(path string) (string, error)

// Workspace maps canonical file paths to documents and maintains the include
// graph between them. Construct one per host session with New; there is no
// ambient global instance.
type Workspace struct {
	readFile ReadFile

	// mu guards the document table, the graph edges and per-document
	// resolution state. Queries take it too: answering one may lazily
	// re-resolve a stale document or load an auxiliary include.
	mu sync.Mutex

	// docs is ordered by path so whole-workspace queries iterate
	// deterministically.
	docs btree.Map[string, *Document]

	// includes: path -> paths it includes; dependents: the reverse.
	includes   map[string]map[string]bool
	dependents map[string]map[string]bool
}

// New returns an empty workspace reading auxiliary files through readFile.
// A nil readFile treats every untracked include as unreadable.
func New(readFile ReadFile) *Workspace {
	if readFile == nil {
		readFile = func(path string) (string, error) {
			return "", &UnreadableError{Path: path}
		}
	}
	return &Workspace{
		readFile:   readFile,
		includes:   make(map[string]map[string]bool),
		dependents: make(map[string]map[string]bool),
	}
}

// UnreadableError reports an include target that could not be loaded.
type UnreadableError struct {
	Path string
}

func (e *UnreadableError) Error() string { return "unreadable file: " + e.Path }

// Get returns the tracked document for path, open or auxiliary.
func (w *Workspace) Get(path string) (*Document, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.docs.Get(path)
}

// Paths returns every tracked path in lexical order.
func (w *Workspace) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, w.docs.Len())
	w.docs.Scan(func(path string, _ *Document) bool {
		out = append(out, path)
		return true
	})
	return out
}

// Sync replaces (or creates) the document at path with text: full re-lex and
// re-parse, symbol table rebuild, include edge refresh. Documents that
// transitively depend on path are marked for re-resolution, which happens
// lazily on their next query.
func (w *Workspace) Sync(path, text string) *Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	version := 1
	if old, ok := w.docs.Get(path); ok {
		version = old.Version + 1
	}
	doc := w.parse(path, text, true)
	doc.Version = version
	w.docs.Set(path, doc)
	w.setEdges(path, doc)
	w.invalidate(path)
	return doc
}

// Remove drops the document and its include edges. Dependents are not
// cascaded: their references into path simply stop resolving on their next
// query. Removal also forgets auxiliary state, so a later include of the
// same path goes back through the read capability.
func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs.Delete(path)
	for target := range w.includes[path] {
		delete(w.dependents[target], path)
	}
	delete(w.includes, path)
	w.invalidate(path)
}

// parse builds a fresh Document from text. Lexer, parser and duplicate-name
// diagnostics are collected; resolution is deferred.
func (w *Workspace) parse(path, text string, open bool) *Document {
	handler := reporter.NewHandler(nil)
	astDoc := parser.Parse(text, handler)
	syms := linker.Collect(path, astDoc, handler)
	return &Document{
		Path:       path,
		Version:    1,
		Text:       text,
		AST:        astDoc,
		Open:       open,
		Symbols:    syms,
		ParseDiags: handler.Diagnostics(),
	}
}

// setEdges replaces the include edges of path with those of doc.
func (w *Workspace) setEdges(path string, doc *Document) {
	for target := range w.includes[path] {
		delete(w.dependents[target], path)
	}
	edges := make(map[string]bool)
	for _, inc := range doc.IncludeTargets() {
		edges[inc.Path] = true
		if w.dependents[inc.Path] == nil {
			w.dependents[inc.Path] = make(map[string]bool)
		}
		w.dependents[inc.Path][path] = true
	}
	w.includes[path] = edges
}

// invalidate marks path and everything that transitively includes it as
// needing re-resolution.
func (w *Workspace) invalidate(path string) {
	seen := map[string]bool{}
	queue := []string{path}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if doc, ok := w.docs.Get(cur); ok {
			doc.resolved = false
		}
		for dep := range w.dependents[cur] {
			queue = append(queue, dep)
		}
	}
}

// Resolved returns the document at path with its resolution state up to
// date, loading auxiliary include targets through the read capability as
// needed.
func (w *Workspace) Resolved(path string) (*Document, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.resolvedLocked(path)
}

func (w *Workspace) resolvedLocked(path string) (*Document, bool) {
	doc, ok := w.docs.Get(path)
	if !ok {
		return nil, false
	}
	if !doc.resolved {
		w.resolve(doc)
	}
	return doc, true
}

// resolve recomputes the document's dependency tables, reference bindings
// and resolution diagnostics.
func (w *Workspace) resolve(doc *Document) {
	handler := reporter.NewHandler(nil)

	targets := doc.IncludeTargets()
	deps := make([]linker.Dep, 0, len(targets))
	for _, inc := range targets {
		dep := linker.Dep{Alias: inc.Alias, Path: inc.Path}
		if target, ok := w.loadTarget(inc.Path); ok {
			dep.Symbols = target.Symbols
		} else {
			handler.Errorf(inc.Node.Span, "cannot read included file: %s", inc.Node.Path)
		}
		deps = append(deps, dep)
	}

	doc.Deps = deps
	doc.References = linker.Resolve(doc.AST, doc.Symbols, deps, handler)
	doc.ResolveDiags = handler.Diagnostics()
	doc.resolved = true
}

// loadTarget returns the tracked document for an include target, reading and
// parsing it through the capability when it is not tracked yet. A failed
// read is not cached: the next resolution retries, so a file appearing on
// disk starts resolving without an explicit sync.
func (w *Workspace) loadTarget(path string) (*Document, bool) {
	if doc, ok := w.docs.Get(path); ok {
		return doc, true
	}
	text, err := w.readFile(path)
	if err != nil {
		return nil, false
	}
	doc := w.parse(path, text, false)
	w.docs.Set(path, doc)
	w.setEdges(path, doc)
	return doc, true
}

// Diagnostics returns the union of lexer, parser and resolver diagnostics
// for path, ordered by source position. The second result distinguishes an
// untracked path from a clean document.
func (w *Workspace) Diagnostics(path string) ([]reporter.Diagnostic, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	doc, ok := w.resolvedLocked(path)
	if !ok {
		return nil, false
	}
	out := make([]reporter.Diagnostic, 0, len(doc.ParseDiags)+len(doc.ResolveDiags))
	out = append(out, doc.ParseDiags...)
	out = append(out, doc.ResolveDiags...)
	reporter.Sort(out)
	return out, true
}
