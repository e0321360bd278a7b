// Package parser lexes and parses Thrift IDL using error-tolerant recursive
// descent. Malformed constructs produce diagnostics and partial structure;
// the parser resynchronizes on top-level keywords and never gives up on the
// remainder of a file.
package parser

import (
	"strconv"
	"strings"

	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/reporter"
)

// Parse builds the AST for one document. Lexical and syntactic diagnostics
// are reported to handler; the returned document is never nil.
func Parse(text string, handler *reporter.Handler) *ast.Document {
	toks := Tokenize(text, handler)

	// Comments play no role in the grammar. Invalid tokens were already
	// reported by the lexer; dropping them here is what lets the parser keep
	// going through garbled input without re-reporting it.
	stream := make([]ast.Token, 0, len(toks))
	for _, t := range toks {
		if !t.IsComment() && t.Kind != ast.Invalid {
			stream = append(stream, t)
		}
	}

	p := &parser{toks: stream, h: handler}
	return p.parseDocument()
}

type parser struct {
	toks []ast.Token
	pos  int
	h    *reporter.Handler
}

// cur returns the current token, or EOF past the end of input.
func (p *parser) cur() ast.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	end := ast.Position{Line: 1, Column: 1}
	if len(p.toks) > 0 {
		end = p.toks[len(p.toks)-1].Range().End
	}
	return ast.Token{Kind: ast.EOF, Pos: end}
}

func (p *parser) peek() ast.Token {
	p.pos++
	t := p.cur()
	p.pos--
	return t
}

func (p *parser) advance() ast.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// prevEnd is the end position of the last consumed token, used to close
// node ranges.
func (p *parser) prevEnd() ast.Position {
	if p.pos == 0 {
		return p.cur().Pos
	}
	return p.toks[p.pos-1].Range().End
}

func (p *parser) expect(kind ast.TokenKind, what string) (ast.Token, bool) {
	if p.cur().Kind == kind {
		return p.advance(), true
	}
	p.errAtCur("expected %s", what)
	return p.cur(), false
}

func (p *parser) errAtCur(format string, args ...any) {
	p.h.Errorf(p.cur().Range(), format, args...)
}

// eatSeparator consumes an optional `,` or `;`.
func (p *parser) eatSeparator() {
	if p.cur().IsListSeparator() {
		p.advance()
	}
}

// resyncTopLevel skips ahead to the next top-level keyword or end of input
// without consuming it, so the fumbled declaration never swallows its
// successor. Callers have already consumed at least the introducing keyword,
// which is what guarantees forward progress.
func (p *parser) resyncTopLevel() {
	for !p.cur().IsEOF() && !p.cur().IsTopLevelKeyword() {
		p.advance()
	}
}

func (p *parser) parseDocument() *ast.Document {
	doc := &ast.Document{}
	start := p.cur().Pos

	for !p.cur().IsEOF() {
		tok := p.cur()
		switch tok.Kind {
		case ast.KwInclude, ast.KwCppInclude:
			if h := p.parseInclude(); h != nil {
				doc.Headers = append(doc.Headers, h)
			}
		case ast.KwNamespace:
			if h := p.parseNamespace(); h != nil {
				doc.Headers = append(doc.Headers, h)
			}
		case ast.KwConst:
			if d := p.parseConst(); d != nil {
				doc.Definitions = append(doc.Definitions, d)
			}
		case ast.KwTypedef:
			if d := p.parseTypedef(); d != nil {
				doc.Definitions = append(doc.Definitions, d)
			}
		case ast.KwEnum:
			if d := p.parseEnum(); d != nil {
				doc.Definitions = append(doc.Definitions, d)
			}
		case ast.KwStruct, ast.KwUnion, ast.KwException:
			if d := p.parseStructured(tok.Kind); d != nil {
				doc.Definitions = append(doc.Definitions, d)
			}
		case ast.KwService:
			if d := p.parseService(); d != nil {
				doc.Definitions = append(doc.Definitions, d)
			}
		default:
			p.errAtCur("unexpected %q, expected a declaration", tok.Text)
			p.resyncTopLevel()
		}
	}

	doc.Span = ast.Range{Start: start, End: p.prevEnd()}
	return doc
}

// parseInclude handles `include "path"` and `cpp_include "path"`.
func (p *parser) parseInclude() ast.Header {
	kw := p.advance()
	lit, ok := p.expect(ast.StringLiteral, "include path literal")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	span := ast.Range{Start: kw.Pos, End: lit.Range().End}
	if kw.Kind == ast.KwCppInclude {
		return &ast.CppInclude{Path: lit.Text, PathSpan: lit.Range(), Span: span}
	}
	return &ast.Include{Path: lit.Text, PathSpan: lit.Range(), Span: span}
}

// parseNamespace handles `namespace <scope> <name>`.
func (p *parser) parseNamespace() ast.Header {
	kw := p.advance()

	scopeTok := p.cur()
	if scopeTok.Kind != ast.Identifier && scopeTok.Kind != ast.ScopeName {
		p.errAtCur("expected namespace scope")
		p.resyncTopLevel()
		return nil
	}
	p.advance()
	if !ast.IsNamespaceScope(scopeTok.Text) {
		p.h.Errorf(scopeTok.Range(), "unknown namespace scope: %s", scopeTok.Text)
	}

	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	return &ast.Namespace{
		Scope: ast.Ident{Text: scopeTok.Text, Span: scopeTok.Range()},
		Ident: ast.Ident{Text: nameTok.Text, Span: nameTok.Range()},
		Span:  ast.Range{Start: kw.Pos, End: nameTok.Range().End},
	}
}

// parseConst handles `const <type> <name> = <value>`. A missing `=` is
// reported and the following expression is still taken as the value, so the
// rest of the file stays synchronized.
func (p *parser) parseConst() ast.Definition {
	kw := p.advance()

	typ := p.parseFieldType()
	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.resyncTopLevel()
		return nil
	}

	if p.cur().Kind == ast.Assign {
		p.advance()
	} else {
		p.errAtCur("expected `=`")
	}

	var value *ast.ConstValue
	if startsConstValue(p.cur()) {
		value = p.parseConstValue()
	} else {
		p.errAtCur("expected constant value")
	}
	p.eatSeparator()

	return &ast.Const{
		Type:  typ,
		Ident: ast.Ident{Text: nameTok.Text, Span: nameTok.Range()},
		Value: value,
		Span:  ast.Range{Start: kw.Pos, End: p.prevEnd()},
	}
}

// parseTypedef handles `typedef <type> <name>`.
func (p *parser) parseTypedef() ast.Definition {
	kw := p.advance()

	typ := p.parseFieldType()
	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	anns := p.parseAnnotations()
	p.eatSeparator()

	return &ast.Typedef{
		Type:        typ,
		Ident:       ast.Ident{Text: nameTok.Text, Span: nameTok.Range()},
		Annotations: anns,
		Span:        ast.Range{Start: kw.Pos, End: p.prevEnd()},
	}
}

// openBlock consumes the `{` that begins a declaration body. When the brace
// is missing it reports once and the caller resynchronizes instead of
// swallowing the remainder of the file as the body.
func (p *parser) openBlock() bool {
	if p.cur().Kind == ast.LBrace {
		p.advance()
		return true
	}
	p.errAtCur("expected `{`")
	return false
}

// closeBlock consumes the `}` that ends a body. An unexpected top-level
// keyword closes the body implicitly with a missing-`}` diagnostic anchored
// at that keyword; this resynchronization rule applies uniformly to every
// block-bodied declaration.
func (p *parser) closeBlock() {
	if p.cur().Kind == ast.RBrace {
		p.advance()
		return
	}
	p.errAtCur("expected `}`")
}

// atImplicitClose reports whether the member loop of a block must stop: on
// the closing brace, end of input, or a top-level keyword that implicitly
// closes an unterminated body.
func (p *parser) atImplicitClose() bool {
	tok := p.cur()
	return tok.IsEOF() || tok.Kind == ast.RBrace || tok.IsTopLevelKeyword()
}

func (p *parser) parseEnum() ast.Definition {
	kw := p.advance()

	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	node := &ast.Enum{Ident: ast.Ident{Text: nameTok.Text, Span: nameTok.Range()}}

	if !p.openBlock() {
		p.resyncTopLevel()
		node.Span = ast.Range{Start: kw.Pos, End: p.prevEnd()}
		return node
	}
	for !p.atImplicitClose() {
		if v := p.parseEnumValue(); v != nil {
			node.Values = append(node.Values, v)
		}
	}
	p.closeBlock()
	node.Annotations = p.parseAnnotations()
	p.eatSeparator()

	node.Span = ast.Range{Start: kw.Pos, End: p.prevEnd()}
	return node
}

// parseEnumValue handles `Name (= IntConstant)? Annotations? ListSeparator?`.
func (p *parser) parseEnumValue() *ast.EnumValue {
	nameTok := p.cur()
	if nameTok.Kind != ast.Identifier {
		p.errAtCur("expected identifier")
		p.skipMember()
		return nil
	}
	p.advance()

	node := &ast.EnumValue{Ident: ast.Ident{Text: nameTok.Text, Span: nameTok.Range()}}
	if p.cur().Kind == ast.Assign {
		p.advance()
		valTok, ok := p.expect(ast.IntConstant, "integer constant")
		if ok {
			n, err := strconv.ParseInt(valTok.Text, 10, 32)
			if err != nil {
				p.h.Errorf(valTok.Range(), "invalid enum value: %s", valTok.Text)
			} else {
				v := int32(n)
				node.Value = &v
			}
		}
	}
	node.Annotations = p.parseAnnotations()
	p.eatSeparator()

	node.Span = ast.Range{Start: nameTok.Pos, End: p.prevEnd()}
	return node
}

// parseStructured handles struct, union and exception, which share a shape.
func (p *parser) parseStructured(kind ast.TokenKind) ast.Definition {
	kw := p.advance()

	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	name := ast.Ident{Text: nameTok.Text, Span: nameTok.Range()}

	var fields []*ast.Field
	hasBody := p.openBlock()
	if hasBody {
		for !p.atImplicitClose() {
			if f := p.parseField(ast.RBrace); f != nil {
				fields = append(fields, f)
			}
		}
		p.closeBlock()
	} else {
		p.resyncTopLevel()
	}
	var anns []ast.Annotation
	if hasBody {
		anns = p.parseAnnotations()
		p.eatSeparator()
	}
	span := ast.Range{Start: kw.Pos, End: p.prevEnd()}

	switch kind {
	case ast.KwUnion:
		return &ast.Union{Ident: name, Fields: fields, Annotations: anns, Span: span}
	case ast.KwException:
		return &ast.Exception{Ident: name, Fields: fields, Annotations: anns, Span: span}
	default:
		return &ast.Struct{Ident: name, Fields: fields, Annotations: anns, Span: span}
	}
}

// startsType reports whether tok can begin a field type.
func startsType(tok ast.Token) bool {
	switch tok.Kind {
	case ast.BaseTypeName, ast.Identifier, ast.KwMap, ast.KwSet, ast.KwList:
		return true
	}
	return false
}

func startsConstValue(tok ast.Token) bool {
	switch tok.Kind {
	case ast.IntConstant, ast.DoubleConstant, ast.StringLiteral, ast.Identifier,
		ast.KwTrue, ast.KwFalse, ast.LBracket, ast.LBrace:
		return true
	}
	return false
}

// parseField handles one member of a struct/union/exception body, parameter
// list, or throws clause:
//
//	Field ::= FieldID? FieldReq? FieldType Identifier ('=' ConstValue)? Annotations? ListSeparator?
//
// closer is the token that legitimately ends the enclosing list (RBrace or
// RParen); it bounds error recovery.
func (p *parser) parseField(closer ast.TokenKind) *ast.Field {
	start := p.cur().Pos
	node := &ast.Field{}

	// optional `N:` field id
	if p.cur().Kind == ast.IntConstant {
		idTok := p.advance()
		n, err := strconv.ParseInt(idTok.Text, 10, 32)
		if err != nil {
			p.h.Errorf(idTok.Range(), "invalid field id: %s", idTok.Text)
		} else {
			id := int32(n)
			node.ID = &id
		}
		if p.cur().Kind == ast.Colon {
			p.advance()
		} else {
			p.errAtCur("expected `:` after field id")
		}
	}

	// optional requiredness modifier
	switch p.cur().Kind {
	case ast.KwRequired:
		node.Req = ast.Required
		p.advance()
	case ast.KwOptional:
		node.Req = ast.Optional
		p.advance()
	default:
		// A token that is clearly not a type in the modifier slot is
		// reported and skipped; the member is still parsed as
		// <modifier-slot> <type> <name>.
		if tok := p.cur(); !startsType(tok) && !tok.IsEOF() &&
			tok.Kind != closer && startsType(p.peek()) {
			p.h.Errorf(tok.Range(), "invalid field modifier: %q", tok.Text)
			p.advance()
		}
	}

	if !startsType(p.cur()) {
		p.errAtCur("expected type")
		p.skipUntil(closer)
		return nil
	}
	node.Type = p.parseFieldType()

	if p.cur().Kind == ast.Identifier {
		nameTok := p.advance()
		node.Ident = ast.Ident{Text: nameTok.Text, Span: nameTok.Range()}
	} else if named, ok := node.Type.(*ast.TypeName); ok {
		// A bare `1: name;` parses its only identifier as the type. Keep the
		// field with a placeholder type so downstream queries on the name
		// still work.
		p.h.Errorf(named.Span, "expected type")
		node.Ident = named.Ident
		node.Type = &ast.BadType{Span: named.Span}
	} else {
		p.errAtCur("expected identifier")
		p.skipUntil(closer)
		return nil
	}

	if p.cur().Kind == ast.Assign {
		p.advance()
		if startsConstValue(p.cur()) {
			node.Default = p.parseConstValue()
		} else {
			p.errAtCur("expected constant value")
		}
	}
	node.Annotations = p.parseAnnotations()
	p.eatSeparator()

	node.Span = ast.Range{Start: start, End: p.prevEnd()}
	return node
}

// skipMember consumes tokens until the next plausible member boundary.
func (p *parser) skipMember() {
	p.skipUntil(ast.RBrace)
}

// skipUntil advances to just past the next list separator, or stops in front
// of closer, a closing brace, a top-level keyword, or end of input. The
// enclosing member loops re-check their own boundary condition, which is what
// guarantees forward progress.
func (p *parser) skipUntil(closer ast.TokenKind) {
	for {
		tok := p.cur()
		if tok.IsEOF() || tok.Kind == closer || tok.Kind == ast.RBrace || tok.IsTopLevelKeyword() {
			return
		}
		if tok.IsListSeparator() {
			p.advance()
			return
		}
		p.advance()
	}
}

// parseFieldType parses a type reference. The caller has verified that the
// current token can start a type.
func (p *parser) parseFieldType() ast.TypeRef {
	tok := p.cur()
	switch tok.Kind {
	case ast.BaseTypeName:
		p.advance()
		return &ast.BaseType{Text: tok.Text, Span: tok.Range()}
	case ast.Identifier:
		p.advance()
		return &ast.TypeName{
			Ident: ast.Ident{Text: tok.Text, Span: tok.Range()},
			Span:  tok.Range(),
		}
	case ast.KwList, ast.KwSet:
		return p.parseListOrSet(tok.Kind)
	case ast.KwMap:
		return p.parseMapType()
	default:
		p.errAtCur("expected type")
		bad := &ast.BadType{Span: tok.Range()}
		p.advance()
		return bad
	}
}

// parseTypeArg parses one `<...>` type parameter, degrading to a BadType
// placeholder when the next token cannot start a type.
func (p *parser) parseTypeArg() ast.TypeRef {
	if startsType(p.cur()) {
		return p.parseFieldType()
	}
	p.errAtCur("expected type")
	return &ast.BadType{Span: p.cur().Range()}
}

// dropExtraTypeArgs reports and consumes surplus `, T` groups before the
// closing `>` of a container. The container keeps the arity its grammar
// defines; the enclosing declaration is not aborted.
func (p *parser) dropExtraTypeArgs(container string) {
	reported := false
	for p.cur().Kind == ast.Comma {
		if !reported {
			p.errAtCur("too many type parameters for %s", container)
			reported = true
		}
		p.advance()
		if startsType(p.cur()) {
			p.parseFieldType()
		}
	}
}

// parseListOrSet handles `list cpp_type? <T>` and `set cpp_type? <T>`.
func (p *parser) parseListOrSet(kind ast.TokenKind) ast.TypeRef {
	kw := p.advance()
	name := "list"
	if kind == ast.KwSet {
		name = "set"
	}
	cppType := p.parseCppType()

	if _, ok := p.expect(ast.Less, "`<`"); !ok {
		return &ast.BadType{Span: kw.Range()}
	}
	elem := p.parseTypeArg()
	p.dropExtraTypeArgs(name)
	p.expect(ast.Greater, "`>`")

	span := ast.Range{Start: kw.Pos, End: p.prevEnd()}
	if kind == ast.KwSet {
		return &ast.SetType{Elem: elem, CppType: cppType, Span: span}
	}
	return &ast.ListType{Elem: elem, CppType: cppType, Span: span}
}

// parseMapType handles `map cpp_type? <K, V>`. A missing value parameter is
// reported and replaced with a placeholder.
func (p *parser) parseMapType() ast.TypeRef {
	kw := p.advance()
	cppType := p.parseCppType()

	if _, ok := p.expect(ast.Less, "`<`"); !ok {
		return &ast.BadType{Span: kw.Range()}
	}
	key := p.parseTypeArg()

	var value ast.TypeRef
	if p.cur().Kind == ast.Comma {
		p.advance()
		value = p.parseTypeArg()
		p.dropExtraTypeArgs("map")
	} else {
		p.errAtCur("missing type parameter for map")
		value = &ast.BadType{Span: p.cur().Range()}
	}
	p.expect(ast.Greater, "`>`")

	return &ast.MapType{
		Key:     key,
		Value:   value,
		CppType: cppType,
		Span:    ast.Range{Start: kw.Pos, End: p.prevEnd()},
	}
}

// parseCppType consumes an optional `cpp_type "native"` adornment.
func (p *parser) parseCppType() string {
	if p.cur().Kind != ast.KwCppType {
		return ""
	}
	p.advance()
	if p.cur().Kind == ast.StringLiteral || p.cur().Kind == ast.Identifier {
		return p.advance().Text
	}
	p.errAtCur("expected cpp_type value")
	return ""
}

// parseConstValue parses a constant expression, including nested const lists
// and const maps. Identifier references inside the value are collected for
// go-to-definition.
func (p *parser) parseConstValue() *ast.ConstValue {
	tok := p.cur()
	switch tok.Kind {
	case ast.IntConstant, ast.DoubleConstant, ast.KwTrue, ast.KwFalse:
		p.advance()
		return &ast.ConstValue{Text: tok.Text, Span: tok.Range()}
	case ast.StringLiteral:
		p.advance()
		return &ast.ConstValue{Text: strconv.Quote(tok.Text), Span: tok.Range()}
	case ast.Identifier:
		p.advance()
		id := ast.Ident{Text: tok.Text, Span: tok.Range()}
		return &ast.ConstValue{Text: tok.Text, Idents: []ast.Ident{id}, Span: tok.Range()}
	case ast.LBracket:
		return p.parseConstList()
	case ast.LBrace:
		return p.parseConstMap()
	default:
		p.errAtCur("expected constant value")
		p.advance()
		return nil
	}
}

func (p *parser) parseConstList() *ast.ConstValue {
	open := p.advance()
	node := &ast.ConstValue{}
	var parts []string
	for {
		tok := p.cur()
		if tok.Kind == ast.RBracket {
			p.advance()
			break
		}
		if tok.IsEOF() || tok.IsTopLevelKeyword() {
			p.errAtCur("expected `]`")
			break
		}
		elem := p.parseConstValue()
		if elem != nil {
			parts = append(parts, elem.Text)
			node.Idents = append(node.Idents, elem.Idents...)
		}
		p.eatSeparator()
	}
	node.Text = "[" + strings.Join(parts, ", ") + "]"
	node.Span = ast.Range{Start: open.Pos, End: p.prevEnd()}
	return node
}

func (p *parser) parseConstMap() *ast.ConstValue {
	open := p.advance()
	node := &ast.ConstValue{}
	var parts []string
	for {
		tok := p.cur()
		if tok.Kind == ast.RBrace {
			p.advance()
			break
		}
		if tok.IsEOF() || tok.IsTopLevelKeyword() {
			p.errAtCur("expected `}`")
			break
		}
		key := p.parseConstValue()
		if _, ok := p.expect(ast.Colon, "`:`"); !ok {
			p.skipUntil(ast.RBrace)
			continue
		}
		val := p.parseConstValue()
		if key != nil && val != nil {
			parts = append(parts, key.Text+": "+val.Text)
			node.Idents = append(node.Idents, key.Idents...)
			node.Idents = append(node.Idents, val.Idents...)
		}
		p.eatSeparator()
	}
	node.Text = "{" + strings.Join(parts, ", ") + "}"
	node.Span = ast.Range{Start: open.Pos, End: p.prevEnd()}
	return node
}

// parseService handles `service <name> (extends <base>)? { functions }`.
func (p *parser) parseService() ast.Definition {
	kw := p.advance()

	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.resyncTopLevel()
		return nil
	}
	node := &ast.Service{Ident: ast.Ident{Text: nameTok.Text, Span: nameTok.Range()}}

	if p.cur().Kind == ast.KwExtends {
		p.advance()
		if ext, ok := p.expect(ast.Identifier, "identifier"); ok {
			id := ast.Ident{Text: ext.Text, Span: ext.Range()}
			node.Extends = &id
		}
	}

	if !p.openBlock() {
		p.resyncTopLevel()
		node.Span = ast.Range{Start: kw.Pos, End: p.prevEnd()}
		return node
	}
	for !p.atImplicitClose() {
		if f := p.parseFunction(); f != nil {
			node.Functions = append(node.Functions, f)
		}
	}
	p.closeBlock()
	node.Annotations = p.parseAnnotations()
	p.eatSeparator()

	node.Span = ast.Range{Start: kw.Pos, End: p.prevEnd()}
	return node
}

// parseFunction handles one service method:
//
//	Function ::= 'oneway'? FunctionType Identifier '(' Field* ')' Throws? Annotations? ListSeparator?
func (p *parser) parseFunction() *ast.Function {
	start := p.cur().Pos
	node := &ast.Function{}

	if p.cur().Kind == ast.KwOneway {
		node.Oneway = true
		p.advance()
	}

	if tok := p.cur(); tok.Kind == ast.KwVoid {
		p.advance()
		node.ReturnType = &ast.BaseType{Text: "void", Span: tok.Range()}
	} else if startsType(tok) {
		node.ReturnType = p.parseFieldType()
	} else {
		p.errAtCur("expected return type")
		p.skipMember()
		return nil
	}

	nameTok, ok := p.expect(ast.Identifier, "identifier")
	if !ok {
		p.skipMember()
		return nil
	}
	node.Ident = ast.Ident{Text: nameTok.Text, Span: nameTok.Range()}

	if _, ok := p.expect(ast.LParen, "`(`"); ok {
		for {
			tok := p.cur()
			if tok.Kind == ast.RParen {
				p.advance()
				break
			}
			if tok.IsEOF() || tok.IsTopLevelKeyword() || tok.Kind == ast.RBrace {
				p.errAtCur("expected `)`")
				break
			}
			if f := p.parseField(ast.RParen); f != nil {
				node.Params = append(node.Params, f)
			}
		}
	}

	if p.cur().Kind == ast.KwThrows {
		p.advance()
		if _, ok := p.expect(ast.LParen, "`(`"); ok {
			for {
				tok := p.cur()
				if tok.Kind == ast.RParen {
					p.advance()
					break
				}
				if tok.IsEOF() || tok.IsTopLevelKeyword() || tok.Kind == ast.RBrace {
					p.errAtCur("expected `)`")
					break
				}
				if f := p.parseField(ast.RParen); f != nil {
					node.Throws = append(node.Throws, f)
				}
			}
		}
	}
	node.Annotations = p.parseAnnotations()
	p.eatSeparator()

	node.Span = ast.Range{Start: start, End: p.prevEnd()}
	return node
}

// parseAnnotations consumes an optional trailing annotation list:
//
//	Annotations ::= '(' ( Identifier ('=' Literal)? ListSeparator? )* ')'
func (p *parser) parseAnnotations() []ast.Annotation {
	if p.cur().Kind != ast.LParen {
		return nil
	}
	p.advance()

	var anns []ast.Annotation
	for {
		tok := p.cur()
		if tok.Kind == ast.RParen {
			p.advance()
			return anns
		}
		if tok.IsEOF() || tok.IsTopLevelKeyword() || tok.Kind == ast.RBrace {
			p.errAtCur("expected `)`")
			return anns
		}
		if tok.Kind != ast.Identifier {
			p.errAtCur("expected annotation name")
			p.advance()
			continue
		}
		p.advance()
		ann := ast.Annotation{Ident: ast.Ident{Text: tok.Text, Span: tok.Range()}}
		if p.cur().Kind == ast.Assign {
			p.advance()
			if val, ok := p.expect(ast.StringLiteral, "annotation value literal"); ok {
				ann.Value = val.Text
			}
		}
		p.eatSeparator()
		ann.Span = ast.Range{Start: tok.Pos, End: p.prevEnd()}
		anns = append(anns, ann)
	}
}
