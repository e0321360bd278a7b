package thriftls

import (
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftlabs/thriftls/reporter"
)

const sharedSource = `struct Item { 1: i32 id }`

const mainSource = "include \"shared.thrift\"\nstruct Cart { 1: shared.Item it }"

func memAnalyzer(files map[string]string) *Analyzer {
	mem := afero.NewMemMapFs()
	for path, text := range files {
		afero.WriteFile(mem, path, []byte(text), 0o644)
	}
	return NewAnalyzer(WithResolver(&SourceResolver{FS: mem}))
}

func diagMessages(diags []reporter.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestAnalyzerSyncAndDiagnostics(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/a.thrift", "const i32 MAX 42")

	diags, ok := a.DocumentDiagnostics("/p/a.thrift")
	require.True(t, ok)
	assert.Equal(t, []string{"expected `=`"}, diagMessages(diags))
}

func TestAnalyzerUntrackedDocument(t *testing.T) {
	a := memAnalyzer(nil)
	diags, ok := a.DocumentDiagnostics("/p/missing.thrift")
	assert.False(t, ok)
	assert.Nil(t, diags)
}

func TestAnalyzerResolvesThroughResolver(t *testing.T) {
	a := memAnalyzer(map[string]string{"/p/shared.thrift": sharedSource})
	a.SyncDocument("/p/main.thrift", mainSource)

	diags, ok := a.DocumentDiagnostics("/p/main.thrift")
	require.True(t, ok)
	assert.Empty(t, diags)
}

func TestAnalyzerDiagnosticsMap(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/good.thrift", `struct A {}`)
	a.SyncDocument("/p/bad.thrift", `struct B {`)

	all := a.Diagnostics()
	require.Contains(t, all, "/p/good.thrift")
	require.Contains(t, all, "/p/bad.thrift")
	assert.Empty(t, all["/p/good.thrift"])
	assert.Equal(t, []string{"expected `}`"}, diagMessages(all["/p/bad.thrift"]))
}

func TestAnalyzerRemoveDocument(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/shared.thrift", sharedSource)
	a.SyncDocument("/p/main.thrift", mainSource)

	diags, _ := a.DocumentDiagnostics("/p/main.thrift")
	require.Empty(t, diags)

	// the removed file is gone from the resolver's filesystem too, so the
	// include dangles on main's next query
	a.RemoveDocument("/p/shared.thrift")

	diags, ok := a.DocumentDiagnostics("/p/main.thrift")
	require.True(t, ok)
	assert.Equal(t, []string{
		"cannot read included file: shared.thrift",
		"undefined type: shared.Item",
	}, diagMessages(diags))

	_, ok = a.DocumentDiagnostics("/p/shared.thrift")
	assert.False(t, ok)
}

func TestAnalyzerReopenAfterRemove(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/shared.thrift", sharedSource)
	a.SyncDocument("/p/main.thrift", mainSource)
	a.RemoveDocument("/p/shared.thrift")

	diags, _ := a.DocumentDiagnostics("/p/main.thrift")
	require.NotEmpty(t, diags)

	a.SyncDocument("/p/shared.thrift", sharedSource)
	diags, _ = a.DocumentDiagnostics("/p/main.thrift")
	assert.Empty(t, diags)
}

func TestAnalyzerConcurrentQueries(t *testing.T) {
	a := memAnalyzer(map[string]string{"/p/shared.thrift": sharedSource})
	// freshly synced: the first queries trigger lazy resolution together
	a.SyncDocument("/p/main.thrift", mainSource)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				diags, ok := a.DocumentDiagnostics("/p/main.thrift")
				assert.True(t, ok)
				assert.Empty(t, diags)
				assert.NotEmpty(t, a.SemanticTokens("/p/main.thrift"))
				_, ok = a.Definition("/p/main.thrift", 2, 20)
				assert.True(t, ok)
			}
		}()
	}
	wg.Wait()
}

func TestAnalyzerResolverFunc(t *testing.T) {
	a := NewAnalyzer(WithResolver(ResolverFunc(func(path string) (string, error) {
		return sharedSource, nil
	})))
	a.SyncDocument("/p/main.thrift", mainSource)

	diags, _ := a.DocumentDiagnostics("/p/main.thrift")
	assert.Empty(t, diags)
}

func TestCompositeResolverOrder(t *testing.T) {
	miss := ResolverFunc(func(path string) (string, error) {
		return "", &notFoundError{path}
	})
	hit := ResolverFunc(func(path string) (string, error) {
		return sharedSource, nil
	})

	content, err := CompositeResolver{miss, hit}.ReadFileByPath("/p/shared.thrift")
	require.NoError(t, err)
	assert.Equal(t, sharedSource, content)

	_, err = CompositeResolver{miss, miss}.ReadFileByPath("/p/shared.thrift")
	assert.Error(t, err)

	_, err = CompositeResolver{}.ReadFileByPath("/p/shared.thrift")
	assert.Error(t, err)
}

type notFoundError struct{ path string }

func (e *notFoundError) Error() string { return "not found: " + e.path }
