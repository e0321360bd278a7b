package ast

import (
	"strings"
	"unicode/utf8"
)

// TokenKind classifies a lexed token.
type TokenKind int

const (
	// EOF is the zero kind so that a zero Token reads as end of input.
	EOF TokenKind = iota

	// keywords
	KwInclude
	KwCppInclude
	KwNamespace
	KwConst
	KwTypedef
	KwEnum
	KwStruct
	KwUnion
	KwException
	KwService
	KwRequired
	KwOptional
	KwOneway
	KwVoid
	KwThrows
	KwExtends
	KwMap
	KwSet
	KwList
	KwCppType
	KwTrue
	KwFalse

	// punctuation
	Assign    // =
	Colon     // :
	Less      // <
	Greater   // >
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Dot       // .

	// multi-character classes; the token's Text carries the lexeme
	BaseTypeName   // bool, byte, i8 ... binary, uuid
	ScopeName      // namespace scopes: go, cpp, java, * ...
	Identifier     //
	IntConstant    //
	DoubleConstant //
	StringLiteral  // Text holds the unquoted contents

	// comments
	LineComment  // //...
	PoundComment // #...
	BlockComment // /* ... */

	// Invalid marks bytes the lexer could not classify, unterminated
	// strings and unterminated block comments. The lexer always advances
	// past them so the parser keeps making progress.
	Invalid
)

// Token is one lexeme with its source position. Tokens are immutable once
// produced by the lexer.
type Token struct {
	Kind TokenKind
	// Text is the raw lexeme as it appears in the source, except for
	// StringLiteral where it is the unquoted contents.
	Text string
	Pos  Position
}

// Width is the number of characters the token occupies on its first line,
// counted in runes to match the lexer's column accounting. String literals
// account for their delimiters.
func (t Token) Width() int {
	if t.Kind == EOF {
		return 0
	}
	text := t.Text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	width := utf8.RuneCountInString(text)
	if t.Kind == StringLiteral {
		width += 2
	}
	return width
}

// Range is the source span of the token. Multi-line tokens (block comments,
// unterminated strings) report the span of their first line; the parser never
// anchors a node range inside a comment.
func (t Token) Range() Range {
	end := t.Pos
	end.Column += t.Width()
	return Range{Start: t.Pos, End: end}
}

// IsEOF reports whether the token marks end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsComment reports whether the token is any comment form.
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == PoundComment || t.Kind == BlockComment
}

// IsListSeparator reports whether the token is a `,` or `;`.
func (t Token) IsListSeparator() bool {
	return t.Kind == Comma || t.Kind == Semicolon
}

// IsDefinitionKeyword reports whether the token begins a top-level
// definition. The parser resynchronizes on these after an error.
func (t Token) IsDefinitionKeyword() bool {
	switch t.Kind {
	case KwConst, KwTypedef, KwEnum, KwStruct, KwUnion, KwException, KwService:
		return true
	}
	return false
}

// IsTopLevelKeyword reports whether the token begins any top-level
// declaration, headers included.
func (t Token) IsTopLevelKeyword() bool {
	switch t.Kind {
	case KwInclude, KwCppInclude, KwNamespace:
		return true
	}
	return t.IsDefinitionKeyword()
}

var keywords = map[string]TokenKind{
	"include":     KwInclude,
	"cpp_include": KwCppInclude,
	"namespace":   KwNamespace,
	"const":       KwConst,
	"typedef":     KwTypedef,
	"enum":        KwEnum,
	"struct":      KwStruct,
	"union":       KwUnion,
	"exception":   KwException,
	"service":     KwService,
	"required":    KwRequired,
	"optional":    KwOptional,
	"oneway":      KwOneway,
	"void":        KwVoid,
	"throws":      KwThrows,
	"extends":     KwExtends,
	"map":         KwMap,
	"set":         KwSet,
	"list":        KwList,
	"cpp_type":    KwCppType,
	"true":        KwTrue,
	"false":       KwFalse,
}

var baseTypes = map[string]bool{
	"bool":   true,
	"byte":   true,
	"i8":     true,
	"i16":    true,
	"i32":    true,
	"i64":    true,
	"double": true,
	"string": true,
	"binary": true,
	"uuid":   true,
}

// namespace scope identifiers recognized by the Apache Thrift compiler
var namespaceScopes = map[string]bool{
	"*":          true,
	"c_glib":     true,
	"cpp":        true,
	"delphi":     true,
	"haxe":       true,
	"go":         true,
	"java":       true,
	"js":         true,
	"lua":        true,
	"netstd":     true,
	"perl":       true,
	"php":        true,
	"py":         true,
	"py.twisted": true,
	"rb":         true,
	"st":         true,
	"xsd":        true,
	"rs":         true,
}

// ClassifyWord maps an identifier-shaped lexeme to a keyword or base-type
// kind, or to Identifier when it is neither.
func ClassifyWord(word string) TokenKind {
	if k, ok := keywords[word]; ok {
		return k
	}
	if baseTypes[word] {
		return BaseTypeName
	}
	return Identifier
}

// IsBaseTypeName reports whether word names a Thrift base type.
func IsBaseTypeName(word string) bool { return baseTypes[word] }

// IsNamespaceScope reports whether word is a recognized namespace scope.
func IsNamespaceScope(word string) bool { return namespaceScopes[word] }

// Keywords returns the reserved word list in a stable order, for completion.
func Keywords() []string {
	return []string{
		"namespace", "include", "cpp_include", "const", "typedef",
		"extends", "required", "optional", "oneway",
		"struct", "enum", "union", "exception", "service",
		"void", "bool", "byte", "i8", "i16", "i32", "i64",
		"double", "string", "binary", "list", "set", "map",
		"true", "false", "throws",
	}
}
