package thriftls

import (
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/thriftlabs/thriftls/ast"
)

// KeywordsForCompletion returns the reserved word candidates, covering
// headers, definition keywords, modifiers and built-in type names.
func (a *Analyzer) KeywordsForCompletion() []string {
	return ast.Keywords()
}

// TypesForCompletion returns declared type name candidates for the given
// cursor position (1-based). When the word under the cursor is qualified,
// as in `base.`, only the aliased include's declarations are offered;
// otherwise everything visible from the document: its own declarations, its
// include aliases, and the included declarations both bare and qualified.
// Candidates are sorted; an untracked path yields none.
func (a *Analyzer) TypesForCompletion(path string, line, column int) []string {
	doc := a.document(path)
	if doc == nil {
		return nil
	}

	word := wordBefore(doc.Text, line, column)
	if dot := strings.IndexByte(word, '.'); dot >= 0 {
		alias := word[:dot]
		for _, dep := range doc.Deps {
			if dep.Alias == alias && dep.Symbols != nil {
				names := dep.Symbols.Names()
				sort.Strings(names)
				return names
			}
		}
		return nil
	}

	var names []string
	if doc.Symbols != nil {
		names = append(names, doc.Symbols.Names()...)
	}
	for _, dep := range doc.Deps {
		names = append(names, dep.Alias)
		if dep.Symbols != nil {
			// included declarations are reachable both bare and qualified
			for _, n := range dep.Symbols.Names() {
				names = append(names, n, dep.Alias+"."+n)
			}
		}
	}
	sort.Strings(names)
	return dedupe(names)
}

// IncludesForCompletion returns `.thrift` file candidates for an include
// path literal, discovered through the resolver's filesystem relative to
// the requesting file's directory. The requesting file itself is excluded.
// The cursor position is part of the query surface but does not narrow the
// candidates; filtering against the partially typed literal is the host's
// concern.
func (a *Analyzer) IncludesForCompletion(path string, line, column int) []string {
	lister, ok := a.resolver.(SourceLister)
	if !ok {
		return nil
	}
	paths, err := lister.ListSources(filepath.Dir(path))
	if err != nil {
		return nil
	}
	self := filepath.Base(path)
	out := paths[:0]
	for _, p := range paths {
		if p != self {
			out = append(out, p)
		}
	}
	return out
}

// wordBefore extracts the identifier fragment immediately preceding the
// cursor, including any qualifying dots, so completion can tell `base.`
// apart from a bare prefix.
func wordBefore(text string, line, column int) string {
	curLine, start := 1, 0
	for start < len(text) && curLine < line {
		if text[start] == '\n' {
			curLine++
		}
		start++
	}
	if curLine != line {
		return ""
	}

	// Walk to the cursor column, rune by rune.
	end := start
	col := 1
	for end < len(text) && col < column {
		r := text[end]
		if r == '\n' || r == '\r' {
			break
		}
		_, size := utf8.DecodeRuneInString(text[end:])
		end += size
		col++
	}

	begin := end
	for begin > start {
		c := text[begin-1]
		if !isWordByte(c) && c != '.' {
			break
		}
		begin--
	}
	return text[begin:end]
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
