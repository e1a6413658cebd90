package lexer

import (
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/compiler/token"
)

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // line of ch (1-indexed)
	column int // column of ch (1-indexed)

	failFast bool
	stopped  bool
	errors   diag.List
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize scans source in full and returns the tokens, terminated by EOF,
// together with every lexical error found along the way.
func Tokenize(source string) ([]token.Token, diag.List) {
	l := NewLexer(source)
	toks := l.Tokenize()
	return toks, l.Errors()
}

// SetFailFast makes the first lexical error end the scan. The default is to
// report the error, skip the offending input and keep going.
func (l *Lexer) SetFailFast(on bool) {
	l.failFast = on
}

func (l *Lexer) Errors() diag.List {
	return l.errors
}

// Tokenize drains the lexer. The last token is always EOF.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks
		}
	}
}

// readChar advances to the next character, keeping line/column in step.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

// peekAt looks n characters past the current one; 0 means the current char.
func (l *Lexer) peekAt(n int) byte {
	i := l.position + n
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) NextToken() token.Token {
	for {
		if l.stopped {
			l.skipRest()
		}
		l.skipWhitespace()

		startLine := l.line
		startCol := l.column

		if l.atEOF() {
			return l.newToken(token.TokenEOF, "", startLine, startCol)
		}

		switch l.ch {
		case '{':
			l.readChar()
			l.skipComment(startLine, startCol, func() bool { return l.ch == '}' }, 1)
			continue
		case '(':
			if l.peekChar() == '*' {
				l.readChar()
				l.readChar()
				l.skipComment(startLine, startCol, func() bool { return l.ch == '*' && l.peekChar() == ')' }, 2)
				continue
			}
		case '\'', '"':
			if tok, ok := l.readString(startLine, startCol); ok {
				return tok
			}
			continue
		}

		if isLetter(l.ch) {
			ident := l.readIdentifier()
			return l.newToken(token.LookupIdent(ident), ident, startLine, startCol)
		}
		if isDigit(l.ch) {
			if tok, ok := l.readNumber(startLine, startCol); ok {
				return tok
			}
			continue
		}
		if tok, ok := l.readSymbol(startLine, startCol); ok {
			return tok
		}

		l.addError(&diag.Diagnostic{Kind: diag.UnexpectedCharacter, Name: string(l.ch), Line: startLine, Column: startCol})
		l.readChar()
	}
}

// twoCharSymbols are matched before their one-character prefixes.
var twoCharSymbols = map[string]token.TokenType{
	":=": token.TokenAssign,
	"<>": token.TokenNotEqual,
	"<=": token.TokenLessEqual,
	">=": token.TokenGreaterEqual,
}

var singleCharSymbols = map[byte]token.TokenType{
	'+': token.TokenPlus,
	'-': token.TokenMinus,
	'*': token.TokenAsterisk,
	'/': token.TokenSlash,
	'=': token.TokenEqual,
	'<': token.TokenLess,
	'>': token.TokenGreater,
	'(': token.TokenLParen,
	')': token.TokenRParen,
	'[': token.TokenLBracket,
	']': token.TokenRBracket,
	'.': token.TokenDot,
	',': token.TokenComma,
	';': token.TokenSemicolon,
	':': token.TokenColon,
}

func (l *Lexer) readSymbol(startLine, startCol int) (token.Token, bool) {
	if next := l.peekChar(); next != 0 {
		pair := string([]byte{l.ch, next})
		if tokType, ok := twoCharSymbols[pair]; ok {
			l.readChar()
			l.readChar()
			return l.newToken(tokType, pair, startLine, startCol), true
		}
	}
	if tokType, ok := singleCharSymbols[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return l.newToken(tokType, lit, startLine, startCol), true
	}
	return token.Token{}, false
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) addError(d *diag.Diagnostic) {
	l.errors.Add(d)
	if l.failFast {
		l.stopped = true
	}
}

func (l *Lexer) skipRest() {
	for !l.atEOF() {
		l.readChar()
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r') {
		l.readChar()
	}
}

// skipComment consumes up to and including the closing delimiter, which is
// closeLen characters long and detected by closed.
func (l *Lexer) skipComment(startLine, startCol int, closed func() bool, closeLen int) {
	for !l.atEOF() {
		if closed() {
			for range closeLen {
				l.readChar()
			}
			return
		}
		l.readChar()
	}
	l.addError(&diag.Diagnostic{Kind: diag.UnterminatedComment, Line: startLine, Column: startCol})
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString scans a literal closed by the same quote that opened it. The
// token's literal is the text between the quotes.
func (l *Lexer) readString(startLine, startCol int) (token.Token, bool) {
	quote := l.ch
	l.readChar() // Consume opening quote
	start := l.position

	for !l.atEOF() && l.ch != quote {
		l.readChar()
	}

	if l.atEOF() {
		l.addError(&diag.Diagnostic{Kind: diag.UnterminatedString, Line: startLine, Column: startCol})
		return token.Token{}, false
	}

	lit := l.input[start:l.position]
	l.readChar() // Consume closing quote
	return l.newToken(token.TokenStringLit, lit, startLine, startCol), true
}

// readNumber scans an integer or real literal. A '.' belongs to the number
// only when a digit follows it; a second such '.' or a trailing letter makes
// the whole run malformed.
func (l *Lexer) readNumber(startLine, startCol int) (token.Token, bool) {
	start := l.position
	isReal := false
	malformed := false

	for !l.atEOF() {
		switch {
		case isDigit(l.ch):
			l.readChar()
			continue
		case l.ch == '.' && isDigit(l.peekChar()):
			if isReal {
				malformed = true
			}
			isReal = true
			l.readChar()
			continue
		case isLetter(l.ch):
			malformed = true
		}
		break
	}

	if malformed {
		for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar()))) {
			l.readChar()
		}
		lit := l.input[start:l.position]
		l.addError(&diag.Diagnostic{Kind: diag.MalformedNumber, Name: lit, Line: startLine, Column: startCol})
		return token.Token{}, false
	}

	lit := l.input[start:l.position]
	if isReal {
		return l.newToken(token.TokenRealLit, lit, startLine, startCol), true
	}
	return l.newToken(token.TokenIntLit, lit, startLine, startCol), true
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
