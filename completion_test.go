package thriftls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsForCompletion(t *testing.T) {
	a := memAnalyzer(nil)
	kws := a.KeywordsForCompletion()
	assert.Contains(t, kws, "struct")
	assert.Contains(t, kws, "cpp_include")
	assert.Contains(t, kws, "i64")
}

func TestTypesForCompletionUnqualified(t *testing.T) {
	a := memAnalyzer(map[string]string{"/p/shared.thrift": sharedSource})
	a.SyncDocument("/p/main.thrift", "include \"shared.thrift\"\nstruct Cart { 1: sh")

	got := a.TypesForCompletion("/p/main.thrift", 2, 20)
	assert.Equal(t, []string{"Cart", "Item", "shared", "shared.Item"}, got)
}

func TestTypesForCompletionQualified(t *testing.T) {
	a := memAnalyzer(map[string]string{"/p/shared.thrift": sharedSource})
	a.SyncDocument("/p/main.thrift", "include \"shared.thrift\"\nstruct Cart { 1: shared.")

	got := a.TypesForCompletion("/p/main.thrift", 2, 25)
	assert.Equal(t, []string{"Item"}, got)
}

func TestTypesForCompletionQualifiedPartialName(t *testing.T) {
	a := memAnalyzer(map[string]string{"/p/shared.thrift": sharedSource})
	a.SyncDocument("/p/main.thrift", "include \"shared.thrift\"\nstruct Cart { 1: shared.It")

	got := a.TypesForCompletion("/p/main.thrift", 2, 27)
	assert.Equal(t, []string{"Item"}, got)
}

func TestTypesForCompletionUnknownAlias(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/main.thrift", "struct Cart { 1: nope.")
	assert.Empty(t, a.TypesForCompletion("/p/main.thrift", 1, 23))
}

func TestTypesForCompletionUntracked(t *testing.T) {
	a := memAnalyzer(nil)
	assert.Empty(t, a.TypesForCompletion("/p/missing.thrift", 1, 1))
}

func TestIncludesForCompletion(t *testing.T) {
	a := memAnalyzer(map[string]string{
		"/p/a.thrift":     ``,
		"/p/sub/b.thrift": ``,
		"/p/notes.txt":    ``,
	})
	a.SyncDocument("/p/main.thrift", `include "`)

	got := a.IncludesForCompletion("/p/main.thrift", 1, 10)
	assert.Equal(t, []string{"a.thrift", "sub/b.thrift"}, got)
}

func TestIncludesForCompletionExcludesSelf(t *testing.T) {
	a := memAnalyzer(map[string]string{
		"/p/main.thrift": ``,
		"/p/a.thrift":    ``,
	})
	a.SyncDocument("/p/main.thrift", `include "`)

	got := a.IncludesForCompletion("/p/main.thrift", 1, 10)
	assert.Equal(t, []string{"a.thrift"}, got)
}

func TestIncludesForCompletionNoLister(t *testing.T) {
	a := NewAnalyzer(WithResolver(ResolverFunc(func(path string) (string, error) {
		return "", &notFoundError{path}
	})))
	a.SyncDocument("/p/main.thrift", `include "`)
	assert.Empty(t, a.IncludesForCompletion("/p/main.thrift", 1, 10))
}

func TestWordBefore(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		line   int
		column int
		want   string
	}{
		{"empty", "", 1, 1, ""},
		{"start of line", "struct", 1, 1, ""},
		{"mid word", "struct Cart", 1, 10, "Ca"},
		{"after word", "struct Cart", 1, 12, "Cart"},
		{"qualified", "1: shared.It", 1, 13, "shared.It"},
		{"trailing dot", "1: shared.", 1, 11, "shared."},
		{"after space", "const i32 ", 1, 11, ""},
		{"second line", "struct A {\n  1: sh", 2, 8, "sh"},
		{"beyond end of line", "ab", 1, 9, "ab"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wordBefore(tc.text, tc.line, tc.column))
		})
	}
}

func TestTypesForCompletionDeduplicates(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/main.thrift", "struct Dup {}\nstruct Dup {}\n")

	got := a.TypesForCompletion("/p/main.thrift", 3, 1)
	require.Len(t, got, 1)
	assert.Equal(t, "Dup", got[0])
}
