package semantic

import (
	"fmt"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/compiler/symbols"
	"github.com/arnavsurve/pasfront/internal/compiler/token"
)

// inferType computes the type of expr without changing the tree or the
// symbol table. An Unknown operand makes the whole expression Unknown with
// no further diagnostic, so one bad name is reported once.
func (a *Analyzer) inferType(expr ast.Expression) symbols.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return symbols.Integer
	case *ast.RealLiteral:
		return symbols.Real
	case *ast.BooleanLiteral:
		return symbols.Boolean
	case *ast.StringLiteral:
		return symbols.String

	case *ast.Identifier:
		sym, ok := a.lookup(e.Value)
		if !ok {
			a.report(diag.UndeclaredVariable, e.Token, diag.Diagnostic{Name: e.Value})
			return symbols.Unknown
		}
		switch sym.Kind {
		case symbols.TypeName:
			return symbols.Unknown
		case symbols.Routine:
			// A parameterless function may be called without parentheses.
			if sym.IsFunction {
				return sym.ReturnType
			}
			return symbols.Unknown
		}
		return sym.Type

	case *ast.CallExpression:
		for _, arg := range e.Arguments {
			a.inferType(arg)
		}
		if routine, ok := a.currentScope.LookupKind(e.Function.Value, symbols.Routine); ok && routine.IsFunction {
			return routine.ReturnType
		}
		return symbols.Unknown

	case *ast.UnaryExpression:
		return a.inferUnary(e)
	case *ast.BinaryExpression:
		return a.inferBinary(e)
	}
	panic(fmt.Sprintf("semantic: unexpected expression %T", expr))
}

func (a *Analyzer) inferUnary(e *ast.UnaryExpression) symbols.Type {
	t := a.inferType(e.Operand)
	switch e.Token.Type {
	case token.TokenNot:
		if t == symbols.Boolean {
			return symbols.Boolean
		}
	default: // + -
		if t.IsNumeric() {
			return t
		}
	}
	a.report(diag.IncompatibleOperandTypes, e.Token, diag.Diagnostic{Operator: e.Operator, Found: t.String()})
	return symbols.Unknown
}

func (a *Analyzer) inferBinary(e *ast.BinaryExpression) symbols.Type {
	left := a.inferType(e.Left)
	right := a.inferType(e.Right)

	// Unknown operands are reported too; the Unknown result keeps the
	// enclosing assignment quiet.
	switch e.Token.Type {
	case token.TokenEqual, token.TokenNotEqual, token.TokenLess,
		token.TokenGreater, token.TokenLessEqual, token.TokenGreaterEqual:
		if left == right && left != symbols.Unknown {
			return symbols.Boolean
		}
	case token.TokenAnd, token.TokenOr:
		if left == symbols.Boolean && right == symbols.Boolean {
			return symbols.Boolean
		}
	default: // + - * / div
		if left == right && left.IsNumeric() {
			return left
		}
	}

	a.report(diag.IncompatibleOperandTypes, e.Token, diag.Diagnostic{
		Operator: e.Operator,
		Expected: left.String(),
		Found:    right.String(),
	})
	return symbols.Unknown
}
