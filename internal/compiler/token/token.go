package token

import "fmt"

type TokenType string

const (
	// Reserved words
	TokenProgram   TokenType = "PROGRAM"
	TokenVar       TokenType = "VAR"
	TokenConst     TokenType = "CONST"
	TokenTypeDecl  TokenType = "TYPE"
	TokenProcedure TokenType = "PROCEDURE"
	TokenFunction  TokenType = "FUNCTION"
	TokenLabel     TokenType = "LABEL"
	TokenBegin     TokenType = "BEGIN"
	TokenEnd       TokenType = "END"
	TokenIf        TokenType = "IF"
	TokenThen      TokenType = "THEN"
	TokenElse      TokenType = "ELSE"
	TokenWhile     TokenType = "WHILE"
	TokenDo        TokenType = "DO"
	TokenFor       TokenType = "FOR"
	TokenTo        TokenType = "TO"
	TokenDownto    TokenType = "DOWNTO"
	TokenRepeat    TokenType = "REPEAT"
	TokenUntil     TokenType = "UNTIL"
	TokenCase      TokenType = "CASE"
	TokenOf        TokenType = "OF"
	TokenTry       TokenType = "TRY"
	TokenCatch     TokenType = "CATCH"
	TokenExcept    TokenType = "EXCEPT"
	TokenFinally   TokenType = "FINALLY"
	TokenRaise     TokenType = "RAISE"
	TokenRecord    TokenType = "RECORD"
	TokenUses      TokenType = "USES"
	TokenDiv       TokenType = "DIV"
	TokenAnd       TokenType = "AND"
	TokenOr        TokenType = "OR"
	TokenNot       TokenType = "NOT"
	TokenIn        TokenType = "IN"

	// Primitive type names
	TokenInteger TokenType = "INTEGER" // integer
	TokenReal    TokenType = "REAL"    // real
	TokenBoolean TokenType = "BOOLEAN" // boolean
	TokenString  TokenType = "STRING"  // string

	// Literals & Identifiers
	TokenIntLit    TokenType = "INT_LIT"    // 42
	TokenRealLit   TokenType = "REAL_LIT"   // 3.14
	TokenBoolLit   TokenType = "BOOL_LIT"   // true, false
	TokenStringLit TokenType = "STRING_LIT" // 'hi' or "hi"
	TokenIdent     TokenType = "IDENT"      // Identifier (e.g. variable name)

	// Symbols
	TokenAssign       TokenType = "ASSIGN"        // :=
	TokenPlus         TokenType = "PLUS"          // +
	TokenMinus        TokenType = "MINUS"         // -
	TokenAsterisk     TokenType = "ASTERISK"      // *
	TokenSlash        TokenType = "SLASH"         // /
	TokenEqual        TokenType = "EQUAL"         // =
	TokenNotEqual     TokenType = "NOT_EQUAL"     // <>
	TokenLess         TokenType = "LESS"          // <
	TokenGreater      TokenType = "GREATER"       // >
	TokenLessEqual    TokenType = "LESS_EQUAL"    // <=
	TokenGreaterEqual TokenType = "GREATER_EQUAL" // >=
	TokenLParen       TokenType = "LPAREN"        // (
	TokenRParen       TokenType = "RPAREN"        // )
	TokenLBracket     TokenType = "LBRACKET"      // [
	TokenRBracket     TokenType = "RBRACKET"      // ]
	TokenDot          TokenType = "DOT"           // .
	TokenComma        TokenType = "COMMA"         // ,
	TokenSemicolon    TokenType = "SEMICOLON"     // ;
	TokenColon        TokenType = "COLON"         // :

	// Special
	TokenEOF TokenType = "EOF"
)

type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return fmt.Sprintf("%d:%d EOF", t.Line, t.Column)
	}
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Type, t.Literal)
}

// IsTypeKeyword reports whether the token names one of the primitive types.
func (t Token) IsTypeKeyword() bool {
	switch t.Type {
	case TokenInteger, TokenReal, TokenBoolean, TokenString:
		return true
	}
	return false
}

func (t Token) IsLiteral() bool {
	switch t.Type {
	case TokenIntLit, TokenRealLit, TokenBoolLit, TokenStringLit:
		return true
	}
	return false
}

func (t Token) IsRelational() bool {
	switch t.Type {
	case TokenEqual, TokenNotEqual, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual:
		return true
	}
	return false
}

// keywords maps reserved words to their token types. Lookup is case-sensitive.
var keywords = map[string]TokenType{
	"program":   TokenProgram,
	"var":       TokenVar,
	"const":     TokenConst,
	"type":      TokenTypeDecl,
	"procedure": TokenProcedure,
	"function":  TokenFunction,
	"label":     TokenLabel,
	"begin":     TokenBegin,
	"end":       TokenEnd,
	"if":        TokenIf,
	"then":      TokenThen,
	"else":      TokenElse,
	"while":     TokenWhile,
	"do":        TokenDo,
	"for":       TokenFor,
	"to":        TokenTo,
	"downto":    TokenDownto,
	"repeat":    TokenRepeat,
	"until":     TokenUntil,
	"case":      TokenCase,
	"of":        TokenOf,
	"try":       TokenTry,
	"catch":     TokenCatch,
	"except":    TokenExcept,
	"finally":   TokenFinally,
	"raise":     TokenRaise,
	"record":    TokenRecord,
	"uses":      TokenUses,
	"div":       TokenDiv,
	"and":       TokenAnd,
	"or":        TokenOr,
	"not":       TokenNot,
	"in":        TokenIn,
	"integer":   TokenInteger,
	"real":      TokenReal,
	"boolean":   TokenBoolean,
	"string":    TokenString,
	"true":      TokenBoolLit,
	"false":     TokenBoolLit,
}

// LookupIdent returns the keyword's token type, or TokenIdent if ident is
// not reserved.
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return TokenIdent
}
