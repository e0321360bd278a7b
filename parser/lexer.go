package parser

import (
	"github.com/thriftlabs/thriftls/ast"
	"github.com/thriftlabs/thriftls/reporter"
)

// Lexer converts raw source text to a token stream. It is a total function
// over arbitrary input: bytes it cannot classify become single-character
// Invalid tokens and scanning continues, which is what lets the parser keep
// making progress through garbled input.
type Lexer struct {
	input   []rune
	pos     int
	line    int // 1-based
	col     int // 1-based
	handler *reporter.Handler
}

// NewLexer returns a lexer over text reporting lexical problems to handler.
func NewLexer(text string, handler *reporter.Handler) *Lexer {
	return &Lexer{
		input:   []rune(text),
		line:    1,
		col:     1,
		handler: handler,
	}
}

// Tokenize lexes the entire input, excluding the trailing EOF token.
func Tokenize(text string, handler *reporter.Handler) []ast.Token {
	lex := NewLexer(text, handler)
	var toks []ast.Token
	for {
		tok := lex.Next()
		if tok.IsEOF() {
			return toks
		}
		toks = append(toks, tok)
	}
}

// Next scans and returns the next token. After end of input it returns EOF
// tokens forever.
func (l *Lexer) Next() ast.Token {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '\n' || c == '\r':
			l.newline(c)
		case c == ' ' || c == '\t' || c == '\f' || c == '\v':
			l.pos++
			l.col++
		case c == '/':
			return l.scanSlash()
		case c == '#':
			return l.scanPoundComment()
		case isIdentStart(c):
			return l.scanWord()
		case c == '"' || c == '\'':
			return l.scanString(c)
		case c >= '0' && c <= '9', c == '+', c == '-':
			return l.scanNumber()
		case c == '.':
			return l.scanDotOrNumber()
		default:
			return l.scanPunct()
		}
	}
	return ast.Token{Kind: ast.EOF, Pos: l.here()}
}

func (l *Lexer) here() ast.Position {
	return ast.Position{Line: l.line, Column: l.col}
}

// newline consumes \n, \r or \r\n.
func (l *Lexer) newline(c rune) {
	l.pos++
	if c == '\r' && l.pos < len(l.input) && l.input[l.pos] == '\n' {
		l.pos++
	}
	l.line++
	l.col = 1
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '.'
}

// scanWord scans an identifier-shaped lexeme and classifies it. Identifiers
// admit interior dots, which is how qualified references lex as one token.
func (l *Lexer) scanWord() ast.Token {
	pos := l.here()
	start := l.pos
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	text := string(l.input[start:l.pos])
	l.col += l.pos - start
	return ast.Token{Kind: ast.ClassifyWord(text), Text: text, Pos: pos}
}

// scanString scans a single- or double-quoted literal. Escapes are kept
// verbatim in the token text except for the delimiter, which they protect.
// An unterminated string is reported once and the token spans to end of line.
func (l *Lexer) scanString(quote rune) ast.Token {
	pos := l.here()
	start := l.pos
	l.pos++ // opening quote
	escaped := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\n' || c == '\r' {
			break
		}
		l.pos++
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == quote {
			text := string(l.input[start+1 : l.pos-1])
			l.col += l.pos - start
			return ast.Token{Kind: ast.StringLiteral, Text: text, Pos: pos}
		}
	}
	raw := string(l.input[start:l.pos])
	l.col += l.pos - start
	tok := ast.Token{Kind: ast.Invalid, Text: raw, Pos: pos}
	l.handler.Errorf(tok.Range(), "unterminated string: %s", raw)
	return tok
}

// scanNumber scans an integer or decimal constant, with optional leading
// sign and optional exponent.
func (l *Lexer) scanNumber() ast.Token {
	pos := l.here()
	start := l.pos

	if c := l.input[l.pos]; c == '+' || c == '-' {
		l.pos++
	}
	digits := l.scanDigits()
	isDouble := false

	if l.pos < len(l.input) && l.input[l.pos] == '.' {
		l.pos++
		digits += l.scanDigits()
		isDouble = true
	}
	if digits > 0 && l.pos < len(l.input) && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
		mark := l.pos
		l.pos++
		if c := l.peek(); c == '+' || c == '-' {
			l.pos++
		}
		if l.scanDigits() == 0 {
			l.pos = mark // bare `e` is not an exponent
		} else {
			isDouble = true
		}
	}

	text := string(l.input[start:l.pos])
	l.col += l.pos - start
	if digits == 0 {
		tok := ast.Token{Kind: ast.Invalid, Text: text, Pos: pos}
		l.handler.Errorf(tok.Range(), "invalid numeric literal: %s", text)
		return tok
	}
	kind := ast.IntConstant
	if isDouble {
		kind = ast.DoubleConstant
	}
	return ast.Token{Kind: kind, Text: text, Pos: pos}
}

func (l *Lexer) scanDigits() int {
	n := 0
	for l.pos < len(l.input) && l.input[l.pos] >= '0' && l.input[l.pos] <= '9' {
		l.pos++
		n++
	}
	return n
}

func (l *Lexer) peek() rune {
	if l.pos < len(l.input) {
		return l.input[l.pos]
	}
	return 0
}

// scanDotOrNumber handles a leading dot: either the start of a decimal
// (.5) or the `.` punctuation token.
func (l *Lexer) scanDotOrNumber() ast.Token {
	if l.pos+1 < len(l.input) {
		if c := l.input[l.pos+1]; c >= '0' && c <= '9' {
			pos := l.here()
			start := l.pos
			l.pos++
			l.scanDigits()
			text := string(l.input[start:l.pos])
			l.col += l.pos - start
			return ast.Token{Kind: ast.DoubleConstant, Text: text, Pos: pos}
		}
	}
	pos := l.here()
	l.pos++
	l.col++
	return ast.Token{Kind: ast.Dot, Text: ".", Pos: pos}
}

// scanSlash distinguishes `//` line comments, `/* */` block comments and a
// stray slash. There is no nesting: the first `*/` always closes a block
// comment.
func (l *Lexer) scanSlash() ast.Token {
	pos := l.here()
	if l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
		start := l.pos
		for l.pos < len(l.input) && l.input[l.pos] != '\n' && l.input[l.pos] != '\r' {
			l.pos++
		}
		text := string(l.input[start:l.pos])
		l.col += l.pos - start
		return ast.Token{Kind: ast.LineComment, Text: text, Pos: pos}
	}
	if l.pos+1 < len(l.input) && l.input[l.pos+1] == '*' {
		return l.scanBlockComment()
	}
	tok := ast.Token{Kind: ast.Invalid, Text: "/", Pos: pos}
	l.pos++
	l.col++
	l.handler.Errorf(tok.Range(), "unexpected character: /")
	return tok
}

func (l *Lexer) scanBlockComment() ast.Token {
	pos := l.here()
	start := l.pos
	l.pos += 2
	l.col += 2
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\n' || c == '\r' {
			l.newline(c)
			continue
		}
		if c == '*' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/' {
			l.pos += 2
			l.col += 2
			return ast.Token{Kind: ast.BlockComment, Text: string(l.input[start:l.pos]), Pos: pos}
		}
		l.pos++
		l.col++
	}
	// unterminated: consumes to end of input, reported once
	tok := ast.Token{Kind: ast.Invalid, Text: string(l.input[start:l.pos]), Pos: pos}
	l.handler.Errorf(ast.Range{Start: pos, End: ast.Position{Line: pos.Line, Column: pos.Column + 2}},
		"unterminated block comment")
	return tok
}

// scanPoundComment scans a `#` comment to end of line.
func (l *Lexer) scanPoundComment() ast.Token {
	pos := l.here()
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '\n' && l.input[l.pos] != '\r' {
		l.pos++
	}
	text := string(l.input[start:l.pos])
	l.col += l.pos - start
	return ast.Token{Kind: ast.PoundComment, Text: text, Pos: pos}
}

var punct = map[rune]ast.TokenKind{
	'{': ast.LBrace,
	'}': ast.RBrace,
	'(': ast.LParen,
	')': ast.RParen,
	'<': ast.Less,
	'>': ast.Greater,
	'[': ast.LBracket,
	']': ast.RBracket,
	',': ast.Comma,
	';': ast.Semicolon,
	':': ast.Colon,
	'=': ast.Assign,
}

func (l *Lexer) scanPunct() ast.Token {
	pos := l.here()
	c := l.input[l.pos]
	l.pos++
	l.col++
	if kind, ok := punct[c]; ok {
		return ast.Token{Kind: kind, Text: string(c), Pos: pos}
	}
	if c == '*' {
		// `*` only occurs as the wildcard namespace scope
		return ast.Token{Kind: ast.ScopeName, Text: "*", Pos: pos}
	}
	tok := ast.Token{Kind: ast.Invalid, Text: string(c), Pos: pos}
	l.handler.Errorf(tok.Range(), "unexpected character: %q", string(c))
	return tok
}
