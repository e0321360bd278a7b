package thriftls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decoded is one semantic token with absolute 0-based coordinates.
type decoded struct {
	line, col, length int
	tokenType         string
	modifiers         uint32
}

func decodeTokens(t *testing.T, data []uint32) []decoded {
	t.Helper()
	require.Zero(t, len(data)%5, "token stream length must be a multiple of 5")

	var out []decoded
	line, col := 0, 0
	for i := 0; i < len(data); i += 5 {
		if data[i] > 0 {
			line += int(data[i])
			col = int(data[i+1])
		} else {
			col += int(data[i+1])
		}
		require.Less(t, int(data[i+3]), len(semanticTokenTypes))
		out = append(out, decoded{
			line: line, col: col, length: int(data[i+2]),
			tokenType: semanticTokenTypes[data[i+3]],
			modifiers: data[i+4],
		})
	}
	return out
}

func TestSemanticTokenLegends(t *testing.T) {
	a := memAnalyzer(nil)
	assert.Equal(t, semanticTokenTypes, a.SemanticTokenTypes())
	assert.Equal(t, semanticTokenModifiers, a.SemanticTokenModifiers())
}

func TestSemanticTokensEnum(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/a.thrift", `enum Status { OK }`)

	got := decodeTokens(t, a.SemanticTokens("/p/a.thrift"))
	assert.Equal(t, []decoded{
		{line: 0, col: 5, length: 6, tokenType: "enum", modifiers: modDeclaration},
		{line: 0, col: 14, length: 2, tokenType: "enumMember", modifiers: modDeclaration},
	}, got)
}

func TestSemanticTokensStruct(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/a.thrift", "struct Point {\n  1: i32 x\n}")

	got := decodeTokens(t, a.SemanticTokens("/p/a.thrift"))
	assert.Equal(t, []decoded{
		{line: 0, col: 7, length: 5, tokenType: "struct", modifiers: modDeclaration},
		{line: 1, col: 5, length: 3, tokenType: "type", modifiers: modDefaultLibrary},
		{line: 1, col: 9, length: 1, tokenType: "property", modifiers: modDeclaration},
	}, got)
}

func TestSemanticTokensExternalReference(t *testing.T) {
	a := memAnalyzer(map[string]string{"/p/shared.thrift": sharedSource})
	a.SyncDocument("/p/main.thrift", mainSource)

	got := decodeTokens(t, a.SemanticTokens("/p/main.thrift"))
	require.Len(t, got, 3)
	assert.Equal(t, decoded{
		line: 1, col: 7, length: 4, tokenType: "struct", modifiers: modDeclaration,
	}, got[0])
	// the imported reference highlights as its target's kind
	assert.Equal(t, decoded{
		line: 1, col: 17, length: 11, tokenType: "struct", modifiers: modImported,
	}, got[1])
	assert.Equal(t, decoded{
		line: 1, col: 29, length: 2, tokenType: "property", modifiers: modDeclaration,
	}, got[2])
}

func TestSemanticTokensService(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/a.thrift", "service Api {\n  void ping(1: i32 n)\n}")

	got := decodeTokens(t, a.SemanticTokens("/p/a.thrift"))
	types := make([]string, len(got))
	for i, tok := range got {
		types[i] = tok.tokenType
	}
	// service name, return type, function name, parameter type, parameter name
	assert.Equal(t, []string{"interface", "type", "function", "type", "parameter"}, types)
}

func TestSemanticTokensConstAndNamespace(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/a.thrift", "namespace go example\nconst i32 MAX = 3")

	got := decodeTokens(t, a.SemanticTokens("/p/a.thrift"))
	require.Len(t, got, 3)
	assert.Equal(t, "namespace", got[0].tokenType)
	assert.Equal(t, "type", got[1].tokenType)
	assert.Equal(t, "variable", got[2].tokenType)
	assert.Equal(t, uint32(modDeclaration|modReadonly), got[2].modifiers)
}

func TestSemanticTokensUnresolvedReference(t *testing.T) {
	a := memAnalyzer(nil)
	a.SyncDocument("/p/a.thrift", `struct S { 1: Missing x }`)

	got := decodeTokens(t, a.SemanticTokens("/p/a.thrift"))
	require.Len(t, got, 3)
	// an unresolved name still classifies, without modifiers
	assert.Equal(t, decoded{
		line: 0, col: 14, length: 7, tokenType: "type", modifiers: 0,
	}, got[1])
}

func TestSemanticTokensUntracked(t *testing.T) {
	a := memAnalyzer(nil)
	assert.Empty(t, a.SemanticTokens("/p/missing.thrift"))
}
