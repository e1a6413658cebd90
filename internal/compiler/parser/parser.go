package parser

import (
	"strconv"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/compiler/token"
)

// Precedence levels for Pratt parsing
const (
	_ int = iota
	PrecLowest
	PrecCompare // = <> < > <= >=
	PrecSum     // + - or
	PrecProduct // * / div and
	PrecPrefix  // -x, +x, not x
)

// Map tokens to precedence levels
var precedences = map[token.TokenType]int{
	token.TokenEqual:        PrecCompare,
	token.TokenNotEqual:     PrecCompare,
	token.TokenLess:         PrecCompare,
	token.TokenGreater:      PrecCompare,
	token.TokenLessEqual:    PrecCompare,
	token.TokenGreaterEqual: PrecCompare,
	token.TokenPlus:         PrecSum,
	token.TokenMinus:        PrecSum,
	token.TokenOr:           PrecSum,
	token.TokenAsterisk:     PrecProduct,
	token.TokenSlash:        PrecProduct,
	token.TokenDiv:          PrecProduct,
	token.TokenAnd:          PrecProduct,
}

func tokenPrecedence(tok token.Token) int {
	if p, ok := precedences[tok.Type]; ok {
		return p
	}
	return PrecLowest
}

// Pseudo token kinds reported in Expected when a rule accepts several tokens.
const (
	expectStatement  = "STATEMENT"
	expectExpression = "EXPRESSION"
	expectTypeName   = "TYPE_NAME"
	expectLiteral    = "LITERAL"
)

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curTok  token.Token
	peekTok token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// bailout carries the first syntax error up to ParseProgram.
type bailout struct {
	err *diag.Diagnostic
}

// NewParser reads from a token slice. A missing trailing EOF is tolerated:
// reads past the end yield EOF.
func NewParser(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.initializePratt()
	p.curTok = p.tokenAt(0)
	p.peekTok = p.tokenAt(1)
	return p
}

// Parse builds the program tree, or returns a *diag.Diagnostic of kind
// SyntaxError for the first grammar mismatch.
func Parse(tokens []token.Token) (*ast.Program, error) {
	return NewParser(tokens).ParseProgram()
}

// --- Token Handling ---

func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	eof := token.Token{Type: token.TokenEOF, Line: 1, Column: 1}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		eof.Line = last.Line
		eof.Column = last.Column + len(last.Literal)
	}
	return eof
}

func (p *Parser) nextToken() {
	p.pos++
	p.curTok = p.peekTok
	p.peekTok = p.tokenAt(p.pos + 1)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curTok.Type == t
}

// --- Error Handling ---

func (p *Parser) fail(tok token.Token, expected string) {
	panic(bailout{&diag.Diagnostic{
		Kind:     diag.SyntaxError,
		Line:     tok.Line,
		Column:   tok.Column,
		Expected: expected,
		Found:    string(tok.Type),
	}})
}

// expect consumes the current token if it has the expected type and fails
// the parse otherwise.
func (p *Parser) expect(t token.TokenType) token.Token {
	if !p.curTokenIs(t) {
		p.fail(p.curTok, string(t))
	}
	tok := p.curTok
	p.nextToken()
	return tok
}

func (p *Parser) expectIdent() *ast.Identifier {
	tok := p.expect(token.TokenIdent)
	return &ast.Identifier{Token: tok, Value: tok.Literal}
}

// --- Program Parsing ---

func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	prog = &ast.Program{Token: p.expect(token.TokenProgram)}
	prog.Name = p.expectIdent()
	p.expect(token.TokenSemicolon)

	for {
		switch p.curTok.Type {
		case token.TokenConst:
			prog.Sections = append(prog.Sections, p.parseConstSection())
			continue
		case token.TokenVar:
			prog.Sections = append(prog.Sections, p.parseVarSection())
			continue
		case token.TokenTypeDecl:
			prog.Sections = append(prog.Sections, p.parseTypeSection())
			continue
		}
		break
	}

	for p.curTokenIs(token.TokenProcedure) || p.curTokenIs(token.TokenFunction) {
		prog.Subprograms = append(prog.Subprograms, p.parseSubprogram())
	}

	if !p.curTokenIs(token.TokenBegin) {
		p.fail(p.curTok, string(token.TokenBegin))
	}
	prog.Main = p.parseBlock()
	p.expect(token.TokenDot)
	if !p.curTokenIs(token.TokenEOF) {
		p.fail(p.curTok, string(token.TokenEOF))
	}
	return prog, nil
}

// --- Declaration Sections ---

// parseConstSection -> const N = 10; M = 'x';
func (p *Parser) parseConstSection() *ast.ConstSection {
	sect := &ast.ConstSection{Token: p.expect(token.TokenConst)}
	for {
		decl := &ast.ConstDecl{Name: p.expectIdent()}
		p.expect(token.TokenEqual)
		decl.Value = p.parseExpression(PrecLowest)
		p.expect(token.TokenSemicolon)
		sect.Consts = append(sect.Consts, decl)
		if !p.curTokenIs(token.TokenIdent) {
			return sect
		}
	}
}

// parseVarSection -> var a, b: integer; c: real;
func (p *Parser) parseVarSection() *ast.VarSection {
	sect := &ast.VarSection{Token: p.expect(token.TokenVar)}
	for {
		sect.Vars = append(sect.Vars, p.parseVarDecl())
		p.expect(token.TokenSemicolon)
		if !p.curTokenIs(token.TokenIdent) {
			return sect
		}
	}
}

// parseVarDecl -> a, b: integer  (without the trailing ';')
func (p *Parser) parseVarDecl() *ast.VarDecl {
	decl := &ast.VarDecl{Names: []*ast.Identifier{p.expectIdent()}}
	for p.curTokenIs(token.TokenComma) {
		p.nextToken()
		decl.Names = append(decl.Names, p.expectIdent())
	}
	p.expect(token.TokenColon)
	decl.Type = p.parseTypeNode()
	return decl
}

// parseTypeSection -> type T = integer; P = record ... end;
func (p *Parser) parseTypeSection() *ast.TypeSection {
	sect := &ast.TypeSection{Token: p.expect(token.TokenTypeDecl)}
	for {
		decl := &ast.TypeDecl{Name: p.expectIdent()}
		p.expect(token.TokenEqual)
		if p.curTokenIs(token.TokenRecord) {
			decl.Record = p.parseRecordType()
		} else {
			decl.Type = p.parseTypeNode()
		}
		p.expect(token.TokenSemicolon)
		sect.Types = append(sect.Types, decl)
		if !p.curTokenIs(token.TokenIdent) {
			return sect
		}
	}
}

func (p *Parser) parseRecordType() *ast.RecordType {
	rec := &ast.RecordType{Token: p.expect(token.TokenRecord)}
	for {
		rec.Fields = append(rec.Fields, p.parseVarDecl())
		p.expect(token.TokenSemicolon)
		if !p.curTokenIs(token.TokenIdent) {
			break
		}
	}
	p.expect(token.TokenEnd)
	return rec
}

func (p *Parser) parseTypeNode() *ast.TypeNode {
	tok := p.curTok
	if !tok.IsTypeKeyword() && tok.Type != token.TokenIdent {
		p.fail(tok, expectTypeName)
	}
	p.nextToken()
	return &ast.TypeNode{Token: tok, Name: tok.Literal}
}

// parseSubprogram -> procedure p(a: integer; b: real); begin ... end;
func (p *Parser) parseSubprogram() *ast.Subprogram {
	sp := &ast.Subprogram{Token: p.curTok}
	p.nextToken() // procedure or function
	sp.Name = p.expectIdent()

	p.expect(token.TokenLParen)
	if p.curTokenIs(token.TokenIdent) {
		sp.Params = append(sp.Params, p.parseVarDecl())
		for p.curTokenIs(token.TokenSemicolon) {
			p.nextToken()
			sp.Params = append(sp.Params, p.parseVarDecl())
		}
	}
	p.expect(token.TokenRParen)

	if p.curTokenIs(token.TokenColon) {
		p.nextToken()
		sp.ReturnType = p.parseTypeNode()
	}
	p.expect(token.TokenSemicolon)

	if !p.curTokenIs(token.TokenBegin) {
		p.fail(p.curTok, string(token.TokenBegin))
	}
	sp.Body = p.parseBlock()
	p.expect(token.TokenSemicolon)
	return sp
}

// --- Statements ---

// parseBlock -> begin statement* end  (the caller handles what follows 'end')
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Token: p.expect(token.TokenBegin)}
	for !p.curTokenIs(token.TokenEnd) {
		block.Statements = append(block.Statements, p.parseStatement())
	}
	p.nextToken() // end
	return block
}

// parseStatementsUntil parses statements until one of the stop tokens is
// current. The stop token is not consumed.
func (p *Parser) parseStatementsUntil(stops ...token.TokenType) []ast.Statement {
	var stmts []ast.Statement
	for {
		for _, stop := range stops {
			if p.curTokenIs(stop) {
				return stmts
			}
		}
		stmts = append(stmts, p.parseStatement())
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curTok.Type {
	case token.TokenIdent:
		switch p.peekTok.Type {
		case token.TokenLParen:
			return p.parseCallStatement()
		case token.TokenAssign:
			return p.parseAssignStatement()
		}
		p.fail(p.peekTok, string(token.TokenAssign))
	case token.TokenIf:
		return p.parseIfStatement()
	case token.TokenWhile:
		return p.parseWhileStatement()
	case token.TokenFor:
		return p.parseForStatement()
	case token.TokenRepeat:
		return p.parseRepeatStatement()
	case token.TokenCase:
		return p.parseCaseStatement()
	case token.TokenTry:
		return p.parseTryStatement()
	case token.TokenBegin:
		block := p.parseBlock()
		p.expect(token.TokenSemicolon)
		return block
	}
	p.fail(p.curTok, expectStatement)
	return nil
}

// parseAssignStatement -> x := expr;
func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	name := p.expectIdent()
	stmt := &ast.AssignStatement{Token: p.expect(token.TokenAssign), Name: name}
	stmt.Value = p.parseExpression(PrecLowest)
	p.expect(token.TokenSemicolon)
	return stmt
}

// parseCallStatement -> p(args);
func (p *Parser) parseCallStatement() *ast.CallStatement {
	name := p.expectIdent()
	stmt := &ast.CallStatement{Token: name.Token, Name: name}
	stmt.Arguments = p.parseArguments()
	p.expect(token.TokenSemicolon)
	return stmt
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.expect(token.TokenIf)}
	stmt.Condition = p.parseExpression(PrecLowest)
	p.expect(token.TokenThen)
	stmt.Consequence = p.parseStatement()
	if p.curTokenIs(token.TokenElse) {
		p.nextToken()
		stmt.Alternative = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.expect(token.TokenWhile)}
	stmt.Condition = p.parseExpression(PrecLowest)
	p.expect(token.TokenDo)
	stmt.Body = p.parseStatement()
	return stmt
}

// parseForStatement -> for i := start to|downto end do stmt
func (p *Parser) parseForStatement() *ast.ForStatement {
	stmt := &ast.ForStatement{Token: p.expect(token.TokenFor)}
	stmt.Variable = p.expectIdent()
	p.expect(token.TokenAssign)
	stmt.Start = p.parseExpression(PrecLowest)
	switch p.curTok.Type {
	case token.TokenTo:
		stmt.Ascending = true
	case token.TokenDownto:
		stmt.Ascending = false
	default:
		p.fail(p.curTok, string(token.TokenTo))
	}
	p.nextToken()
	stmt.End = p.parseExpression(PrecLowest)
	p.expect(token.TokenDo)
	stmt.Body = p.parseStatement()
	return stmt
}

// parseRepeatStatement -> repeat stmt* until cond;
func (p *Parser) parseRepeatStatement() *ast.RepeatStatement {
	stmt := &ast.RepeatStatement{Token: p.expect(token.TokenRepeat)}
	stmt.Body = p.parseStatementsUntil(token.TokenUntil)
	p.nextToken() // until
	stmt.Condition = p.parseExpression(PrecLowest)
	p.expect(token.TokenSemicolon)
	return stmt
}

// parseCaseStatement -> case expr of 1, 2: stmt ... [else stmt] end;
func (p *Parser) parseCaseStatement() *ast.CaseStatement {
	stmt := &ast.CaseStatement{Token: p.expect(token.TokenCase)}
	stmt.Selector = p.parseExpression(PrecLowest)
	p.expect(token.TokenOf)

	// At least one branch.
	stmt.Branches = append(stmt.Branches, p.parseCaseBranch())
	for !p.curTokenIs(token.TokenEnd) && !p.curTokenIs(token.TokenElse) {
		stmt.Branches = append(stmt.Branches, p.parseCaseBranch())
	}
	if p.curTokenIs(token.TokenElse) {
		p.nextToken()
		stmt.Else = p.parseStatement()
	}
	p.expect(token.TokenEnd)
	p.expect(token.TokenSemicolon)
	return stmt
}

func (p *Parser) parseCaseBranch() *ast.CaseBranch {
	branch := &ast.CaseBranch{Labels: []ast.Expression{p.parseLiteral()}}
	for p.curTokenIs(token.TokenComma) {
		p.nextToken()
		branch.Labels = append(branch.Labels, p.parseLiteral())
	}
	p.expect(token.TokenColon)
	branch.Body = p.parseStatement()
	return branch
}

// parseTryStatement -> try stmt* [catch|except stmt*] [finally stmt*] end;
func (p *Parser) parseTryStatement() *ast.TryStatement {
	stmt := &ast.TryStatement{Token: p.expect(token.TokenTry)}
	stmt.Body = p.parseStatementsUntil(token.TokenCatch, token.TokenExcept, token.TokenFinally, token.TokenEnd)
	if p.curTokenIs(token.TokenCatch) || p.curTokenIs(token.TokenExcept) {
		clause := &ast.Clause{Token: p.curTok}
		p.nextToken()
		clause.Statements = p.parseStatementsUntil(token.TokenFinally, token.TokenEnd)
		stmt.Handler = clause
	}
	if p.curTokenIs(token.TokenFinally) {
		clause := &ast.Clause{Token: p.curTok}
		p.nextToken()
		clause.Statements = p.parseStatementsUntil(token.TokenEnd)
		stmt.Finally = clause
	}
	p.expect(token.TokenEnd)
	p.expect(token.TokenSemicolon)
	return stmt
}

// --- Expressions ---

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) initializePratt() {
	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.infixParseFns = make(map[token.TokenType]infixParseFn)

	// Prefixes (NUDs)
	p.registerPrefix(token.TokenIdent, p.parseIdentifier)
	p.registerPrefix(token.TokenIntLit, p.parseLiteral)
	p.registerPrefix(token.TokenRealLit, p.parseLiteral)
	p.registerPrefix(token.TokenBoolLit, p.parseLiteral)
	p.registerPrefix(token.TokenStringLit, p.parseLiteral)
	p.registerPrefix(token.TokenLParen, p.parseGroupedExpression)
	p.registerPrefix(token.TokenMinus, p.parsePrefixExpression)
	p.registerPrefix(token.TokenPlus, p.parsePrefixExpression)
	p.registerPrefix(token.TokenNot, p.parsePrefixExpression)

	// Infixes (LEDs)
	for tokType := range precedences {
		p.registerInfix(tokType, p.parseInfixExpression)
	}
}

// parseExpression is the main entry point for Pratt parsing.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curTok.Type]
	if prefix == nil {
		p.fail(p.curTok, expectExpression)
	}
	leftExpr := prefix()

	compared := false
	for precedence < tokenPrecedence(p.curTok) {
		// Comparisons do not chain: a second relational operator at this
		// level is left for the enclosing rule to reject.
		if p.curTok.IsRelational() {
			if compared {
				break
			}
			compared = true
		}
		infix := p.infixParseFns[p.curTok.Type]
		if infix == nil {
			return leftExpr
		}
		leftExpr = infix(leftExpr)
	}
	return leftExpr
}

// parseLiteral accepts exactly one literal token. Case labels use it directly.
func (p *Parser) parseLiteral() ast.Expression {
	tok := p.curTok
	var lit ast.Expression
	switch tok.Type {
	case token.TokenIntLit:
		val, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.fail(tok, expectLiteral)
		}
		lit = &ast.IntegerLiteral{Token: tok, Value: val}
	case token.TokenRealLit:
		val, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			p.fail(tok, expectLiteral)
		}
		lit = &ast.RealLiteral{Token: tok, Value: val}
	case token.TokenBoolLit:
		lit = &ast.BooleanLiteral{Token: tok, Value: tok.Literal == "true"}
	case token.TokenStringLit:
		lit = &ast.StringLiteral{Token: tok, Value: tok.Literal}
	default:
		p.fail(tok, expectLiteral)
	}
	p.nextToken()
	return lit
}

// parseIdentifier handles both plain references and calls f(args).
func (p *Parser) parseIdentifier() ast.Expression {
	ident := p.expectIdent()
	if !p.curTokenIs(token.TokenLParen) {
		return ident
	}
	return &ast.CallExpression{Token: ident.Token, Function: ident, Arguments: p.parseArguments()}
}

// parseArguments -> ( [expr {, expr}] )
func (p *Parser) parseArguments() []ast.Expression {
	p.expect(token.TokenLParen)
	var args []ast.Expression
	if p.curTokenIs(token.TokenRParen) {
		p.nextToken()
		return args
	}
	args = append(args, p.parseExpression(PrecLowest))
	for p.curTokenIs(token.TokenComma) {
		p.nextToken()
		args = append(args, p.parseExpression(PrecLowest))
	}
	p.expect(token.TokenRParen)
	return args
}

// Grouping leaves no node behind; the tree shape already records it.
func (p *Parser) parseGroupedExpression() ast.Expression {
	p.expect(token.TokenLParen)
	expr := p.parseExpression(PrecLowest)
	p.expect(token.TokenRParen)
	return expr
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	opToken := p.curTok
	p.nextToken()
	operand := p.parseExpression(PrecPrefix)
	return &ast.UnaryExpression{Token: opToken, Operator: opToken.Literal, Operand: operand}
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	opToken := p.curTok
	precedence := tokenPrecedence(opToken)
	p.nextToken() // Consume operator
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Token: opToken, Left: left, Operator: opToken.Literal, Right: right}
}
