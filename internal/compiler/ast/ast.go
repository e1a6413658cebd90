package ast

import (
	"bytes"
	"strings"

	"github.com/arnavsurve/pasfront/internal/compiler/token"
)

// --- Interfaces ---
//
// The marker methods are unexported, so the sets of statements, expressions
// and sections are closed: every implementation lives in this package and a
// type switch over them can list every case.

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Section is a declaration section of the program header: const, var or type.
type Section interface {
	Node
	sectionNode()
}

// --- Program ---

type Program struct {
	Token       token.Token // program
	Name        *Identifier
	Sections    []Section // in source order
	Subprograms []*Subprogram
	Main        *Block
}

func (p *Program) TokenLiteral() string { return p.Token.Literal }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("program " + p.Name.String() + "; ")
	for _, s := range p.Sections {
		out.WriteString(s.String() + " ")
	}
	for _, sp := range p.Subprograms {
		out.WriteString(sp.String() + " ")
	}
	if p.Main != nil {
		out.WriteString(p.Main.String())
	}
	out.WriteString(".")
	return out.String()
}

// --- Declarations ---

// TypeNode names a type: one of the primitive type keywords or an identifier
// declared in a type section.
type TypeNode struct {
	Token token.Token
	Name  string
}

func (tn *TypeNode) TokenLiteral() string { return tn.Token.Literal }
func (tn *TypeNode) String() string       { return tn.Name }
func (tn *TypeNode) IsPrimitive() bool    { return tn.Token.IsTypeKeyword() }

// VarDecl -> a, b: integer
// Used for var sections, record fields and parameter groups.
type VarDecl struct {
	Names []*Identifier
	Type  *TypeNode
}

func (vd *VarDecl) String() string {
	names := make([]string, len(vd.Names))
	for i, n := range vd.Names {
		names[i] = n.Value
	}
	return strings.Join(names, ", ") + ": " + vd.Type.String()
}

type VarSection struct {
	Token token.Token // var
	Vars  []*VarDecl
}

func (vs *VarSection) sectionNode()         {}
func (vs *VarSection) TokenLiteral() string { return vs.Token.Literal }
func (vs *VarSection) String() string {
	var out bytes.Buffer
	out.WriteString("var")
	for _, v := range vs.Vars {
		out.WriteString(" " + v.String() + ";")
	}
	return out.String()
}

// ConstDecl -> N = 10
type ConstDecl struct {
	Name  *Identifier
	Value Expression
}

type ConstSection struct {
	Token  token.Token // const
	Consts []*ConstDecl
}

func (cs *ConstSection) sectionNode()         {}
func (cs *ConstSection) TokenLiteral() string { return cs.Token.Literal }
func (cs *ConstSection) String() string {
	var out bytes.Buffer
	out.WriteString("const")
	for _, c := range cs.Consts {
		out.WriteString(" " + c.Name.Value + " = " + c.Value.String() + ";")
	}
	return out.String()
}

// RecordType -> record x, y: integer; end
type RecordType struct {
	Token  token.Token // record
	Fields []*VarDecl
}

func (rt *RecordType) TokenLiteral() string { return rt.Token.Literal }
func (rt *RecordType) String() string {
	var out bytes.Buffer
	out.WriteString("record")
	for _, f := range rt.Fields {
		out.WriteString(" " + f.String() + ";")
	}
	out.WriteString(" end")
	return out.String()
}

// TypeDecl -> T = integer or P = record ... end. Exactly one of Type and
// Record is set.
type TypeDecl struct {
	Name   *Identifier
	Type   *TypeNode
	Record *RecordType
}

func (td *TypeDecl) String() string {
	if td.Record != nil {
		return td.Name.Value + " = " + td.Record.String()
	}
	return td.Name.Value + " = " + td.Type.String()
}

type TypeSection struct {
	Token token.Token // type
	Types []*TypeDecl
}

func (ts *TypeSection) sectionNode()         {}
func (ts *TypeSection) TokenLiteral() string { return ts.Token.Literal }
func (ts *TypeSection) String() string {
	var out bytes.Buffer
	out.WriteString("type")
	for _, t := range ts.Types {
		out.WriteString(" " + t.String() + ";")
	}
	return out.String()
}

// Subprogram -> procedure p(a: integer); begin ... end;
type Subprogram struct {
	Token      token.Token // procedure or function
	Name       *Identifier
	Params     []*VarDecl
	ReturnType *TypeNode // nil when absent
	Body       *Block
}

func (sp *Subprogram) TokenLiteral() string { return sp.Token.Literal }
func (sp *Subprogram) IsFunction() bool     { return sp.Token.Type == token.TokenFunction }
func (sp *Subprogram) String() string {
	var out bytes.Buffer
	out.WriteString(sp.TokenLiteral() + " " + sp.Name.Value + "(")
	params := make([]string, len(sp.Params))
	for i, p := range sp.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, "; "))
	out.WriteString(")")
	if sp.ReturnType != nil {
		out.WriteString(": " + sp.ReturnType.String())
	}
	out.WriteString("; ")
	out.WriteString(sp.Body.String())
	out.WriteString(";")
	return out.String()
}

// --- Statements ---

// Block -> begin statement* end
type Block struct {
	Token      token.Token // begin
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("begin")
	for _, s := range b.Statements {
		out.WriteString(" " + StatementString(s))
	}
	out.WriteString(" end")
	return out.String()
}

// StatementString renders s the way it appears inside a statement list. A
// nested block is the only statement whose String lacks its terminator.
func StatementString(s Statement) string {
	if b, ok := s.(*Block); ok {
		return b.String() + ";"
	}
	return s.String()
}

func statementList(stmts []Statement) string {
	parts := make([]string, len(stmts))
	for i, s := range stmts {
		parts[i] = StatementString(s)
	}
	return strings.Join(parts, " ")
}

// AssignStatement -> x := expr;
type AssignStatement struct {
	Token token.Token // :=
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	return as.Name.Value + " := " + as.Value.String() + ";"
}

// CallStatement -> p(args);
type CallStatement struct {
	Token     token.Token // the procedure name
	Name      *Identifier
	Arguments []Expression
}

func (cs *CallStatement) statementNode()       {}
func (cs *CallStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CallStatement) String() string {
	return cs.Name.Value + "(" + expressionList(cs.Arguments) + ");"
}

// IfStatement -> if cond then stmt [else stmt]
type IfStatement struct {
	Token       token.Token // if
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil when absent
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	s := "if " + is.Condition.String() + " then " + StatementString(is.Consequence)
	if is.Alternative != nil {
		s += " else " + StatementString(is.Alternative)
	}
	return s
}

// WhileStatement -> while cond do stmt
type WhileStatement struct {
	Token     token.Token // while
	Condition Expression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while " + ws.Condition.String() + " do " + StatementString(ws.Body)
}

// ForStatement -> for i := start to|downto end do stmt
type ForStatement struct {
	Token     token.Token // for
	Variable  *Identifier
	Start     Expression
	End       Expression
	Ascending bool // true for 'to', false for 'downto'
	Body      Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Direction() string {
	if fs.Ascending {
		return "to"
	}
	return "downto"
}
func (fs *ForStatement) String() string {
	return "for " + fs.Variable.Value + " := " + fs.Start.String() + " " + fs.Direction() + " " +
		fs.End.String() + " do " + StatementString(fs.Body)
}

// RepeatStatement -> repeat stmt* until cond;
type RepeatStatement struct {
	Token     token.Token // repeat
	Body      []Statement
	Condition Expression
}

func (rs *RepeatStatement) statementNode()       {}
func (rs *RepeatStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *RepeatStatement) String() string {
	body := statementList(rs.Body)
	if body != "" {
		body += " "
	}
	return "repeat " + body + "until " + rs.Condition.String() + ";"
}

// CaseBranch -> 1, 2: stmt
type CaseBranch struct {
	Labels []Expression // literals only
	Body   Statement
}

func (cb *CaseBranch) String() string {
	return expressionList(cb.Labels) + ": " + StatementString(cb.Body)
}

// CaseStatement -> case expr of branch+ [else stmt] end;
type CaseStatement struct {
	Token    token.Token // case
	Selector Expression
	Branches []*CaseBranch
	Else     Statement // nil when absent
}

func (cs *CaseStatement) statementNode()       {}
func (cs *CaseStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *CaseStatement) String() string {
	var out bytes.Buffer
	out.WriteString("case " + cs.Selector.String() + " of")
	for _, b := range cs.Branches {
		out.WriteString(" " + b.String())
	}
	if cs.Else != nil {
		out.WriteString(" else " + StatementString(cs.Else))
	}
	out.WriteString(" end;")
	return out.String()
}

// Clause is the handler (catch/except) or finally part of a try statement.
type Clause struct {
	Token      token.Token // catch, except or finally
	Statements []Statement
}

func (c *Clause) String() string {
	body := statementList(c.Statements)
	if body == "" {
		return c.Token.Literal
	}
	return c.Token.Literal + " " + body
}

// TryStatement -> try stmt* [catch|except stmt*] [finally stmt*] end;
type TryStatement struct {
	Token   token.Token // try
	Body    []Statement
	Handler *Clause // nil when absent
	Finally *Clause // nil when absent
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Literal }
func (ts *TryStatement) String() string {
	var out bytes.Buffer
	out.WriteString("try")
	if body := statementList(ts.Body); body != "" {
		out.WriteString(" " + body)
	}
	if ts.Handler != nil {
		out.WriteString(" " + ts.Handler.String())
	}
	if ts.Finally != nil {
		out.WriteString(" " + ts.Finally.String())
	}
	out.WriteString(" end;")
	return out.String()
}

// --- Expressions ---

type Identifier struct {
	Token token.Token // IDENT
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Literal }
func (i *Identifier) String() string        { return i.Value }
func (i *Identifier) GetToken() token.Token { return i.Token }

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Literal }
func (il *IntegerLiteral) String() string        { return il.Token.Literal }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type RealLiteral struct {
	Token token.Token
	Value float64
}

func (rl *RealLiteral) expressionNode()       {}
func (rl *RealLiteral) TokenLiteral() string  { return rl.Token.Literal }
func (rl *RealLiteral) String() string        { return rl.Token.Literal }
func (rl *RealLiteral) GetToken() token.Token { return rl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "true"
	}
	return "false"
}
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string {
	// The lexer has no escapes, so quote with whichever delimiter the text lacks.
	if strings.ContainsRune(sl.Value, '\'') {
		return `"` + sl.Value + `"`
	}
	return "'" + sl.Value + "'"
}
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// UnaryExpression -> -x, +x, not x
type UnaryExpression struct {
	Token    token.Token // the operator
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) String() string {
	if ue.Token.Type == token.TokenNot {
		return "(not " + ue.Operand.String() + ")"
	}
	return "(" + ue.Operator + ue.Operand.String() + ")"
}
func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }

type BinaryExpression struct {
	Token    token.Token // the operator
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(") // Parentheses for clarity/precedence
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// IsComparison reports whether the operator is one of = <> < > <= >=.
func (be *BinaryExpression) IsComparison() bool { return be.Token.IsRelational() }

// CallExpression -> f(args)
type CallExpression struct {
	Token     token.Token // the function name
	Function  *Identifier
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	return ce.Function.Value + "(" + expressionList(ce.Arguments) + ")"
}
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

func expressionList(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
