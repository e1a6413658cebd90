package ast

import (
	"fmt"
	"strings"
)

// SExpr dumps n as an S-expression, e.g.
//
//	(assign "x" (binary "+" (ident "x") (integer 1)))
//
// Test cases and `pasfront ast --sexpr` compare trees in this form.
func SExpr(n Node) string {
	var b strings.Builder
	writeSExpr(&b, n)
	return b.String()
}

func writeSExpr(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		fmt.Fprintf(b, "(program %q", n.Name.Value)
		for _, s := range n.Sections {
			b.WriteByte(' ')
			writeSExpr(b, s)
		}
		for _, sp := range n.Subprograms {
			b.WriteByte(' ')
			writeSExpr(b, sp)
		}
		b.WriteByte(' ')
		writeSExpr(b, n.Main)
		b.WriteByte(')')

	case *ConstSection:
		b.WriteString("(const")
		for _, c := range n.Consts {
			fmt.Fprintf(b, " (%q ", c.Name.Value)
			writeSExpr(b, c.Value)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *VarSection:
		b.WriteString("(var")
		for _, v := range n.Vars {
			b.WriteByte(' ')
			writeDecl(b, v)
		}
		b.WriteByte(')')
	case *TypeSection:
		b.WriteString("(type")
		for _, t := range n.Types {
			fmt.Fprintf(b, " (%q ", t.Name.Value)
			if t.Record != nil {
				b.WriteString("(record")
				for _, f := range t.Record.Fields {
					b.WriteByte(' ')
					writeDecl(b, f)
				}
				b.WriteByte(')')
			} else {
				b.WriteString(t.Type.Name)
			}
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *Subprogram:
		fmt.Fprintf(b, "(%s %q (params", n.Token.Literal, n.Name.Value)
		for _, p := range n.Params {
			b.WriteByte(' ')
			writeDecl(b, p)
		}
		b.WriteByte(')')
		if n.ReturnType != nil {
			b.WriteString(" " + n.ReturnType.Name)
		}
		b.WriteByte(' ')
		writeSExpr(b, n.Body)
		b.WriteByte(')')

	case *Block:
		b.WriteString("(block")
		writeList(b, n.Statements)
		b.WriteByte(')')
	case *AssignStatement:
		fmt.Fprintf(b, "(assign %q ", n.Name.Value)
		writeSExpr(b, n.Value)
		b.WriteByte(')')
	case *CallStatement:
		fmt.Fprintf(b, "(call %q", n.Name.Value)
		writeExprs(b, n.Arguments)
		b.WriteByte(')')
	case *IfStatement:
		b.WriteString("(if ")
		writeSExpr(b, n.Condition)
		b.WriteByte(' ')
		writeSExpr(b, n.Consequence)
		if n.Alternative != nil {
			b.WriteByte(' ')
			writeSExpr(b, n.Alternative)
		}
		b.WriteByte(')')
	case *WhileStatement:
		b.WriteString("(while ")
		writeSExpr(b, n.Condition)
		b.WriteByte(' ')
		writeSExpr(b, n.Body)
		b.WriteByte(')')
	case *ForStatement:
		fmt.Fprintf(b, "(for %q ", n.Variable.Value)
		writeSExpr(b, n.Start)
		b.WriteString(" " + n.Direction() + " ")
		writeSExpr(b, n.End)
		b.WriteByte(' ')
		writeSExpr(b, n.Body)
		b.WriteByte(')')
	case *RepeatStatement:
		b.WriteString("(repeat")
		writeList(b, n.Body)
		b.WriteString(" (until ")
		writeSExpr(b, n.Condition)
		b.WriteString("))")
	case *CaseStatement:
		b.WriteString("(case ")
		writeSExpr(b, n.Selector)
		for _, br := range n.Branches {
			b.WriteString(" (branch (")
			for i, l := range br.Labels {
				if i > 0 {
					b.WriteByte(' ')
				}
				writeSExpr(b, l)
			}
			b.WriteString(") ")
			writeSExpr(b, br.Body)
			b.WriteByte(')')
		}
		if n.Else != nil {
			b.WriteString(" (else ")
			writeSExpr(b, n.Else)
			b.WriteByte(')')
		}
		b.WriteByte(')')
	case *TryStatement:
		b.WriteString("(try (body")
		writeList(b, n.Body)
		b.WriteByte(')')
		for _, c := range []*Clause{n.Handler, n.Finally} {
			if c == nil {
				continue
			}
			b.WriteString(" (" + c.Token.Literal)
			writeList(b, c.Statements)
			b.WriteByte(')')
		}
		b.WriteByte(')')

	case *Identifier:
		fmt.Fprintf(b, "(ident %q)", n.Value)
	case *IntegerLiteral:
		fmt.Fprintf(b, "(integer %d)", n.Value)
	case *RealLiteral:
		fmt.Fprintf(b, "(real %s)", n.Token.Literal)
	case *BooleanLiteral:
		fmt.Fprintf(b, "(boolean %t)", n.Value)
	case *StringLiteral:
		fmt.Fprintf(b, "(string %q)", n.Value)
	case *UnaryExpression:
		fmt.Fprintf(b, "(unary %q ", n.Operator)
		writeSExpr(b, n.Operand)
		b.WriteByte(')')
	case *BinaryExpression:
		fmt.Fprintf(b, "(binary %q ", n.Operator)
		writeSExpr(b, n.Left)
		b.WriteByte(' ')
		writeSExpr(b, n.Right)
		b.WriteByte(')')
	case *CallExpression:
		fmt.Fprintf(b, "(call %q", n.Function.Value)
		writeExprs(b, n.Arguments)
		b.WriteByte(')')

	default:
		panic(fmt.Sprintf("ast: unexpected node %T", n))
	}
}

// writeDecl -> ("a" "b" integer)
func writeDecl(b *strings.Builder, d *VarDecl) {
	b.WriteByte('(')
	for _, n := range d.Names {
		fmt.Fprintf(b, "%q ", n.Value)
	}
	b.WriteString(d.Type.Name + ")")
}

func writeList(b *strings.Builder, stmts []Statement) {
	for _, s := range stmts {
		b.WriteByte(' ')
		writeSExpr(b, s)
	}
}

func writeExprs(b *strings.Builder, exprs []Expression) {
	for _, e := range exprs {
		b.WriteByte(' ')
		writeSExpr(b, e)
	}
}
