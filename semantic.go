package thriftls

import (
	"sort"

	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/linker"
	"github.com/thriftlabs/thriftls/workspace"
)

// Semantic token legend. The indexes below are positions in these slices;
// the host registers the legend once and decodes tokens against it.
var semanticTokenTypes = []string{
	"namespace",
	"type",
	"struct",
	"enum",
	"interface",
	"function",
	"parameter",
	"property",
	"enumMember",
	"variable",
}

const (
	tokNamespace = iota
	tokType
	tokStruct
	tokEnum
	tokInterface
	tokFunction
	tokParameter
	tokProperty
	tokEnumMember
	tokVariable
)

var semanticTokenModifiers = []string{
	"declaration",
	"readonly",
	"defaultLibrary",
	"imported",
}

const (
	modDeclaration = 1 << iota
	modReadonly
	modDefaultLibrary
	modImported
)

// SemanticTokenTypes returns the legend of token type names, in index order.
func (a *Analyzer) SemanticTokenTypes() []string {
	out := make([]string, len(semanticTokenTypes))
	copy(out, semanticTokenTypes)
	return out
}

// SemanticTokenModifiers returns the legend of modifier names, in bit order.
func (a *Analyzer) SemanticTokenModifiers() []string {
	out := make([]string, len(semanticTokenModifiers))
	copy(out, semanticTokenModifiers)
	return out
}

// SemanticTokens classifies the document's identifiers and returns the flat
// delta-encoded sequence (deltaLine, deltaStart, length, type, modifiers per
// token, 0-based). An untracked path yields an empty sequence.
func (a *Analyzer) SemanticTokens(path string) []uint32 {
	doc := a.document(path)
	if doc == nil || doc.AST == nil {
		return nil
	}
	return encodeSemanticTokens(classifyDocument(doc))
}

type semanticToken struct {
	span      ast.Range
	tokenType uint32
	modifiers uint32
}

// classifyDocument walks the AST in source order and classifies every
// token-bearing construct: declaration names by declaration kind, type
// references by whether they resolved to a built-in, a local declaration or
// an external one. Classification is a function of the current AST and its
// resolution table; a reference that failed to resolve still classifies (as
// a plain type) so one bad name never perturbs its neighbors.
func classifyDocument(doc *workspace.Document) []semanticToken {
	c := classifier{refs: make(map[ast.Position]linker.Reference, len(doc.References))}
	for _, ref := range doc.References {
		c.refs[ref.Ident.Span.Start] = ref
	}

	for _, h := range doc.AST.Headers {
		if ns, ok := h.(*ast.Namespace); ok {
			c.emit(ns.Ident.Span, tokNamespace, modDeclaration)
		}
	}

	for _, def := range doc.AST.Definitions {
		switch def := def.(type) {
		case *ast.Const:
			c.emit(def.Ident.Span, tokVariable, modDeclaration|modReadonly)
			c.typeRef(def.Type)
			c.constValue(def.Value)
		case *ast.Typedef:
			c.emit(def.Ident.Span, tokType, modDeclaration)
			c.typeRef(def.Type)
		case *ast.Enum:
			c.emit(def.Ident.Span, tokEnum, modDeclaration)
			for _, v := range def.Values {
				c.emit(v.Ident.Span, tokEnumMember, modDeclaration)
			}
		case *ast.Struct:
			c.emit(def.Ident.Span, tokStruct, modDeclaration)
			c.fields(def.Fields, tokProperty)
		case *ast.Union:
			c.emit(def.Ident.Span, tokStruct, modDeclaration)
			c.fields(def.Fields, tokProperty)
		case *ast.Exception:
			c.emit(def.Ident.Span, tokStruct, modDeclaration)
			c.fields(def.Fields, tokProperty)
		case *ast.Service:
			c.emit(def.Ident.Span, tokInterface, modDeclaration)
			if def.Extends != nil {
				c.reference(*def.Extends, tokInterface)
			}
			for _, fn := range def.Functions {
				c.emit(fn.Ident.Span, tokFunction, modDeclaration)
				c.typeRef(fn.ReturnType)
				c.fields(fn.Params, tokParameter)
				c.fields(fn.Throws, tokParameter)
			}
		}
	}
	return c.tokens
}

type classifier struct {
	refs   map[ast.Position]linker.Reference
	tokens []semanticToken
}

func (c *classifier) emit(span ast.Range, tokenType uint32, modifiers uint32) {
	if span.Start == (ast.Position{}) {
		return
	}
	c.tokens = append(c.tokens, semanticToken{span: span, tokenType: tokenType, modifiers: modifiers})
}

func (c *classifier) fields(fields []*ast.Field, nameType uint32) {
	for _, f := range fields {
		c.typeRef(f.Type)
		c.emit(f.Ident.Span, nameType, modDeclaration)
		c.constValue(f.Default)
	}
}

func (c *classifier) typeRef(t ast.TypeRef) {
	switch t := t.(type) {
	case *ast.BaseType:
		c.emit(t.Span, tokType, modDefaultLibrary)
	case *ast.TypeName:
		c.reference(t.Ident, tokType)
	case *ast.ListType:
		c.typeRef(t.Elem)
	case *ast.SetType:
		c.typeRef(t.Elem)
	case *ast.MapType:
		c.typeRef(t.Key)
		c.typeRef(t.Value)
	}
}

// reference classifies a name reference: external declarations carry the
// "imported" modifier, local and unresolved ones none.
func (c *classifier) reference(id ast.Ident, tokenType uint32) {
	var modifiers uint32
	if ref, ok := c.refs[id.Span.Start]; ok {
		if ref.External {
			modifiers |= modImported
		}
		if ref.Target != nil {
			tokenType = declTokenType(ref.Target.Kind, tokenType)
		}
	}
	c.emit(id.Span, tokenType, modifiers)
}

func (c *classifier) constValue(v *ast.ConstValue) {
	if v == nil {
		return
	}
	for _, id := range v.Idents {
		c.reference(id, tokVariable)
	}
}

// declTokenType maps a declaration kind to the token type its references
// should highlight as.
func declTokenType(kind string, fallback uint32) uint32 {
	switch kind {
	case "struct", "union", "exception":
		return tokStruct
	case "enum":
		return tokEnum
	case "service":
		return tokInterface
	case "typedef":
		return tokType
	case "const":
		return tokVariable
	default:
		return fallback
	}
}

// encodeSemanticTokens flattens classified tokens into the delta encoding
// editors consume: each token is (deltaLine, deltaStart, length, type,
// modifiers) relative to the previous one, with 0-based positions.
func encodeSemanticTokens(tokens []semanticToken) []uint32 {
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].span.Start.Before(tokens[j].span.Start)
	})

	out := make([]uint32, 0, len(tokens)*5)
	prevLine, prevCol := 0, 0
	for _, tok := range tokens {
		line := tok.span.Start.Line - 1
		col := tok.span.Start.Column - 1
		length := tok.span.End.Column - tok.span.Start.Column
		if length < 0 {
			length = 0
		}

		deltaLine := line - prevLine
		deltaStart := col
		if deltaLine == 0 {
			deltaStart = col - prevCol
		}
		out = append(out,
			uint32(deltaLine), uint32(deltaStart), uint32(length),
			tok.tokenType, tok.modifiers)

		prevLine, prevCol = line, col
	}
	return out
}
