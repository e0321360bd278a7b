package thriftls

import (
	"errors"
	"io/fs"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Resolver locates the content of files referenced by include directives
// that are not already synced into the analyzer. It is the engine's only
// window onto a filesystem.
type Resolver interface {
	ReadFileByPath(path string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (string, error)

var _ Resolver = ResolverFunc(nil)

func (f ResolverFunc) ReadFileByPath(path string) (string, error) {
	return f(path)
}

// SourceResolver reads include targets from an afero filesystem, which may
// be the real OS filesystem or an in-memory one for sandboxed hosts and
// tests.
type SourceResolver struct {
	FS afero.Fs
}

var _ Resolver = (*SourceResolver)(nil)

func (r *SourceResolver) ReadFileByPath(path string) (string, error) {
	data, err := afero.ReadFile(r.fs(), path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *SourceResolver) fs() afero.Fs {
	if r.FS == nil {
		return afero.NewOsFs()
	}
	return r.FS
}

// SourceLister enumerates candidate include files below a directory, as
// slash-separated paths relative to that directory. Resolvers that can list
// their filesystem implement it; include-path completion is empty when the
// configured resolver cannot.
type SourceLister interface {
	ListSources(dir string) ([]string, error)
}

var _ SourceLister = (*SourceResolver)(nil)

func (r *SourceResolver) ListSources(dir string) ([]string, error) {
	fsys := afero.NewIOFS(afero.NewBasePathFs(r.fs(), dir))
	return doublestar.Glob(fsys, "**/*.thrift")
}

// CompositeResolver tries each resolver in order, returning the first
// successful read.
type CompositeResolver []Resolver

var _ Resolver = CompositeResolver(nil)

func (c CompositeResolver) ReadFileByPath(path string) (string, error) {
	if len(c) == 0 {
		return "", fs.ErrNotExist
	}
	var firstErr error
	for _, r := range c {
		content, err := r.ReadFileByPath(path)
		if err == nil {
			return content, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return "", firstErr
}

// ListSources merges the listings of every member that can list, deduplicated
// and sorted.
func (c CompositeResolver) ListSources(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, r := range c {
		lister, ok := r.(SourceLister)
		if !ok {
			continue
		}
		paths, err := lister.ListSources(dir)
		if err != nil {
			continue
		}
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// errNoResolver is returned when the analyzer was built without any resolver
// and an include points outside the synced set.
var errNoResolver = errors.New("no resolver configured")
