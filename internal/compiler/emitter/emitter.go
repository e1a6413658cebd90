package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
)

// NOTES:
// - Output is canonical, not faithful: comments and original layout are gone.
// - Every binary and unary expression is parenthesised, so the printed text
//   re-parses to the same tree whatever the precedence rules.

const indentUnit = "  "

// Emitter prints a program tree back to source text.
type Emitter struct {
	builder strings.Builder
	indent  int
	errors  []string
}

func NewEmitter() *Emitter {
	return &Emitter{errors: []string{}}
}

func (e *Emitter) addError(format string, args ...any) {
	errMsg := fmt.Sprintf(format, args...)
	e.errors = append(e.errors, errMsg)
}

// Errors lists nodes that have no source form, such as a string literal
// containing both quote characters.
func (e *Emitter) Errors() []string {
	return e.errors
}

// --- Emit Helpers ---

func (e *Emitter) line(format string, args ...any) {
	e.builder.WriteString(strings.Repeat(indentUnit, e.indent))
	fmt.Fprintf(&e.builder, format, args...)
	e.builder.WriteByte('\n')
}

func (e *Emitter) blank() {
	e.builder.WriteByte('\n')
}

// nested emits body one level deeper.
func (e *Emitter) nested(body func()) {
	e.indent++
	body()
	e.indent--
}

// Emit returns the canonical source for program.
func (e *Emitter) Emit(program *ast.Program) string {
	e.builder.Reset()
	e.indent = 0
	e.errors = []string{}

	e.line("program %s;", program.Name.Value)
	for _, sect := range program.Sections {
		e.blank()
		e.emitSection(sect)
	}
	for _, sp := range program.Subprograms {
		e.blank()
		e.emitSubprogram(sp)
	}
	e.blank()
	e.emitBlock(program.Main, ".")
	return e.builder.String()
}

// --- Declarations ---

func (e *Emitter) emitSection(sect ast.Section) {
	switch s := sect.(type) {
	case *ast.ConstSection:
		e.line("const")
		e.nested(func() {
			for _, c := range s.Consts {
				e.line("%s = %s;", c.Name.Value, e.expr(c.Value))
			}
		})
	case *ast.VarSection:
		e.line("var")
		e.nested(func() {
			for _, v := range s.Vars {
				e.line("%s;", v.String())
			}
		})
	case *ast.TypeSection:
		e.line("type")
		e.nested(func() {
			for _, td := range s.Types {
				if td.Record == nil {
					e.line("%s = %s;", td.Name.Value, td.Type.Name)
					continue
				}
				e.line("%s = record", td.Name.Value)
				e.nested(func() {
					for _, f := range td.Record.Fields {
						e.line("%s;", f.String())
					}
				})
				e.line("end;")
			}
		})
	default:
		e.addError("unsupported section %T", sect)
	}
}

func (e *Emitter) emitSubprogram(sp *ast.Subprogram) {
	params := make([]string, len(sp.Params))
	for i, p := range sp.Params {
		params[i] = p.String()
	}
	header := fmt.Sprintf("%s %s(%s)", sp.Token.Literal, sp.Name.Value, strings.Join(params, "; "))
	if sp.ReturnType != nil {
		header += ": " + sp.ReturnType.Name
	}
	e.line("%s;", header)
	e.emitBlock(sp.Body, ";")
}

// --- Statements ---

// emitBlock writes begin ... end followed by terminator.
func (e *Emitter) emitBlock(b *ast.Block, terminator string) {
	e.line("begin")
	e.nested(func() { e.emitStatements(b.Statements) })
	e.line("end%s", terminator)
}

func (e *Emitter) emitStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		e.emitStatement(s)
	}
}

func (e *Emitter) emitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		e.emitBlock(s, ";")
	case *ast.AssignStatement:
		e.line("%s := %s;", s.Name.Value, e.expr(s.Value))
	case *ast.CallStatement:
		e.line("%s(%s);", s.Name.Value, e.exprList(s.Arguments))
	case *ast.IfStatement:
		e.line("if %s then", e.expr(s.Condition))
		consequence := s.Consequence
		if s.Alternative != nil && endsWithOpenIf(consequence) {
			// Keep the else attached to this if rather than the inner one.
			consequence = &ast.Block{Statements: []ast.Statement{consequence}}
		}
		e.nested(func() { e.emitStatement(consequence) })
		if s.Alternative != nil {
			e.line("else")
			e.nested(func() { e.emitStatement(s.Alternative) })
		}
	case *ast.WhileStatement:
		e.line("while %s do", e.expr(s.Condition))
		e.nested(func() { e.emitStatement(s.Body) })
	case *ast.ForStatement:
		e.line("for %s := %s %s %s do", s.Variable.Value, e.expr(s.Start), s.Direction(), e.expr(s.End))
		e.nested(func() { e.emitStatement(s.Body) })
	case *ast.RepeatStatement:
		e.line("repeat")
		e.nested(func() { e.emitStatements(s.Body) })
		e.line("until %s;", e.expr(s.Condition))
	case *ast.CaseStatement:
		e.line("case %s of", e.expr(s.Selector))
		e.nested(func() {
			for _, br := range s.Branches {
				e.line("%s:", e.exprList(br.Labels))
				e.nested(func() { e.emitStatement(br.Body) })
			}
		})
		if s.Else != nil {
			e.line("else")
			e.nested(func() { e.emitStatement(s.Else) })
		}
		e.line("end;")
	case *ast.TryStatement:
		e.line("try")
		e.nested(func() { e.emitStatements(s.Body) })
		for _, c := range []*ast.Clause{s.Handler, s.Finally} {
			if c == nil {
				continue
			}
			e.line("%s", c.Token.Literal)
			e.nested(func() { e.emitStatements(c.Statements) })
		}
		e.line("end;")
	default:
		e.addError("unsupported statement %T", stmt)
	}
}

// endsWithOpenIf reports whether stmt ends in an if without else, which
// would capture a following else.
func endsWithOpenIf(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.IfStatement:
		if s.Alternative == nil {
			return true
		}
		return endsWithOpenIf(s.Alternative)
	case *ast.WhileStatement:
		return endsWithOpenIf(s.Body)
	case *ast.ForStatement:
		return endsWithOpenIf(s.Body)
	}
	return false
}

// --- Expressions ---

func (e *Emitter) expr(expr ast.Expression) string {
	switch x := expr.(type) {
	case *ast.Identifier:
		return x.Value
	case *ast.IntegerLiteral:
		return fmt.Sprintf("%d", x.Value)
	case *ast.RealLiteral:
		if x.Token.Literal != "" {
			return x.Token.Literal
		}
		return formatReal(x.Value)
	case *ast.BooleanLiteral:
		return x.String()
	case *ast.StringLiteral:
		return e.quote(x.Value)
	case *ast.UnaryExpression:
		if x.Operator == "not" {
			return "(not " + e.expr(x.Operand) + ")"
		}
		return "(" + x.Operator + e.expr(x.Operand) + ")"
	case *ast.BinaryExpression:
		return "(" + e.expr(x.Left) + " " + x.Operator + " " + e.expr(x.Right) + ")"
	case *ast.CallExpression:
		return x.Function.Value + "(" + e.exprList(x.Arguments) + ")"
	}
	e.addError("unsupported expression %T", expr)
	return ""
}

func (e *Emitter) exprList(exprs []ast.Expression) string {
	parts := make([]string, len(exprs))
	for i, x := range exprs {
		parts[i] = e.expr(x)
	}
	return strings.Join(parts, ", ")
}

// quote picks a delimiter that does not occur in s; the language has no
// escape sequences.
func (e *Emitter) quote(s string) string {
	hasSingle := strings.ContainsRune(s, '\'')
	hasDouble := strings.ContainsRune(s, '"')
	switch {
	case !hasSingle:
		return "'" + s + "'"
	case !hasDouble:
		return `"` + s + `"`
	}
	e.addError("string %q contains both quote characters", s)
	return "'" + s + "'"
}

// formatReal always keeps a fractional digit so the literal lexes as real.
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
