package linker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/linker"
	"github.com/thriftlabs/thriftls/parser"
	"github.com/thriftlabs/thriftls/reporter"
)

func collect(t *testing.T, path, text string) (*ast.Document, *linker.Symbols, []reporter.Diagnostic) {
	t.Helper()
	handler := reporter.NewHandler(nil)
	doc := parser.Parse(text, handler)
	syms := linker.Collect(path, doc, handler)
	return doc, syms, handler.Diagnostics()
}

func TestCollectSymbols(t *testing.T) {
	_, syms, diags := collect(t, "main.thrift", `
const i32 MAX = 1
typedef string UUID
enum Status { OK }
struct Point { 1: i32 x }
union Shape {}
exception Oops {}
service Api {}
`)
	assert.Empty(t, diags)
	assert.Equal(t, []string{"MAX", "UUID", "Status", "Point", "Shape", "Oops", "Api"}, syms.Names())

	sym := syms.ByName["Point"]
	require.NotNil(t, sym)
	assert.Equal(t, "struct", sym.Kind)
	assert.Equal(t, "main.thrift", sym.Path)
	assert.Equal(t, ast.Position{Line: 5, Column: 8}, sym.NameSpan.Start)
}

func TestCollectDuplicateLastWins(t *testing.T) {
	_, syms, diags := collect(t, "main.thrift", `
struct Point { 1: i32 x }
struct Point { 1: i32 x, 2: i32 y }
`)
	require.Len(t, diags, 1)
	assert.Equal(t, "duplicate declaration: Point", diags[0].Message)
	assert.Equal(t, ast.Position{Line: 3, Column: 8}, diags[0].Range.Start)

	sym := syms.ByName["Point"]
	require.NotNil(t, sym)
	st := sym.Decl.(*ast.Struct)
	assert.Len(t, st.Fields, 2)

	// duplicates list once for completion
	assert.Equal(t, []string{"Point"}, syms.Names())
}

func TestResolveLocal(t *testing.T) {
	doc, syms, _ := collect(t, "main.thrift", `
struct Point { 1: i32 x }
struct Line { 1: Point a, 2: Point b }
`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, nil, handler)
	assert.Empty(t, handler.Diagnostics())

	require.Len(t, refs, 2)
	for _, ref := range refs {
		assert.Equal(t, "Point", ref.Target.Name)
		assert.False(t, ref.External)
	}
}

func TestResolveUndefined(t *testing.T) {
	doc, syms, _ := collect(t, "main.thrift", `struct Line { 1: Pont a }`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, nil, handler)

	assert.Empty(t, refs)
	diags := handler.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "undefined type: Pont", diags[0].Message)
}

func depsFor(t *testing.T, alias, path, text string) []linker.Dep {
	t.Helper()
	_, syms, diags := collect(t, path, text)
	require.Empty(t, diags)
	return []linker.Dep{{Alias: alias, Path: path, Symbols: syms}}
}

func TestResolveQualified(t *testing.T) {
	deps := depsFor(t, "shared", "shared.thrift", `struct Item { 1: i32 id }`)
	doc, syms, _ := collect(t, "main.thrift", `struct Cart { 1: list<shared.Item> items }`)

	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, deps, handler)
	assert.Empty(t, handler.Diagnostics())

	require.Len(t, refs, 1)
	assert.Equal(t, "shared.Item", refs[0].Ident.Text)
	assert.True(t, refs[0].External)
	assert.Equal(t, "shared.thrift", refs[0].Target.Path)
	assert.Equal(t, "Item", refs[0].Target.Name)
}

func TestResolveQualifiedMiss(t *testing.T) {
	deps := depsFor(t, "shared", "shared.thrift", `struct Item { 1: i32 id }`)
	doc, syms, _ := collect(t, "main.thrift", `struct Cart { 1: shared.Missing it }`)

	handler := reporter.NewHandler(nil)
	linker.Resolve(doc, syms, deps, handler)
	diags := handler.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "undefined type: shared.Missing", diags[0].Message)
}

func TestResolveQualifiedIsOneLevel(t *testing.T) {
	// shared's own includes are not consulted: qualified lookup stops at the
	// target's local declarations
	deps := depsFor(t, "shared", "shared.thrift", `
include "base.thrift"
struct Item { 1: i32 id }
`)
	doc, syms, _ := collect(t, "main.thrift", `struct Cart { 1: shared.Deep it }`)

	handler := reporter.NewHandler(nil)
	linker.Resolve(doc, syms, deps, handler)
	require.Len(t, handler.Diagnostics(), 1)
	assert.Equal(t, "undefined type: shared.Deep", handler.Diagnostics()[0].Message)
}

func TestResolveUnqualifiedPrefersLocal(t *testing.T) {
	deps := depsFor(t, "shared", "shared.thrift", `struct Point { 1: i32 remote }`)
	doc, syms, _ := collect(t, "main.thrift", `
struct Point { 1: i32 local }
struct Line { 1: Point a }
`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, deps, handler)

	require.Len(t, refs, 1)
	assert.False(t, refs[0].External)
	assert.Equal(t, "main.thrift", refs[0].Target.Path)
}

func TestResolveUnqualifiedFallsBackToIncludes(t *testing.T) {
	first := depsFor(t, "a", "a.thrift", `struct Shared { 1: i32 x }`)
	second := depsFor(t, "b", "b.thrift", `struct Shared { 1: i32 y }`)
	deps := append(first, second...)

	doc, syms, _ := collect(t, "main.thrift", `struct Use { 1: Shared s }`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, deps, handler)

	// include declaration order decides ties
	require.Len(t, refs, 1)
	assert.True(t, refs[0].External)
	assert.Equal(t, "a.thrift", refs[0].Target.Path)
}

func TestResolveDanglingDep(t *testing.T) {
	deps := []linker.Dep{{Alias: "gone", Path: "gone.thrift", Symbols: nil}}
	doc, syms, _ := collect(t, "main.thrift", `struct Use { 1: gone.Thing t }`)

	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, deps, handler)
	assert.Empty(t, refs)
	require.Len(t, handler.Diagnostics(), 1)
	assert.Equal(t, "undefined type: gone.Thing", handler.Diagnostics()[0].Message)
}

func TestResolveEnumMemberValue(t *testing.T) {
	doc, syms, _ := collect(t, "main.thrift", `
enum Status { OK, FAILED }
const Status DEFAULT = Status.OK
`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, nil, handler)
	assert.Empty(t, handler.Diagnostics())

	// the type reference and the value reference both bind to the enum
	require.Len(t, refs, 2)
	assert.Equal(t, "Status", refs[0].Ident.Text)
	assert.Equal(t, "Status.OK", refs[1].Ident.Text)
	assert.Equal(t, "enum", refs[1].Target.Kind)
}

func TestResolveValueIdentsAreSilent(t *testing.T) {
	doc, syms, _ := collect(t, "main.thrift", `const i32 X = SOMEWHERE_ELSE`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, nil, handler)
	assert.Empty(t, refs)
	assert.Empty(t, handler.Diagnostics())
}

func TestResolveServiceSurface(t *testing.T) {
	deps := depsFor(t, "shared", "shared.thrift", `
exception Error { 1: string msg }
service Base {}
`)
	doc, syms, _ := collect(t, "main.thrift", `
struct Req { 1: i32 id }
service Api extends shared.Base {
  Req echo(1: Req in) throws (1: shared.Error err)
}
`)
	handler := reporter.NewHandler(nil)
	refs := linker.Resolve(doc, syms, deps, handler)
	assert.Empty(t, handler.Diagnostics())

	texts := make([]string, len(refs))
	for i, ref := range refs {
		texts[i] = ref.Ident.Text
	}
	assert.Equal(t, []string{"shared.Base", "Req", "Req", "shared.Error"}, texts)
}
