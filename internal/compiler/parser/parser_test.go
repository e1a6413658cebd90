package parser

import (
	"errors"
	"testing"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/compiler/lexer"
)

// --- Test Helper Functions ---

func parseSource(t *testing.T, input string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.Tokenize(input)
	if len(lexErrs) > 0 {
		t.Fatalf("lexer errors: %v", lexErrs.Err())
	}
	program, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if program == nil {
		t.Fatalf("Parse() returned nil program")
	}
	return program
}

func parseError(t *testing.T, input string) *diag.Diagnostic {
	t.Helper()
	toks, _ := lexer.Tokenize(input)
	program, err := Parse(toks)
	if err == nil {
		t.Fatalf("Parse() expected an error, got program %s", program)
	}
	if program != nil {
		t.Fatalf("Parse() returned a program alongside error %v", err)
	}
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error is not a *diag.Diagnostic. got=%T", err)
	}
	if d.Kind != diag.SyntaxError {
		t.Fatalf("diagnostic kind expected=SyntaxError, got=%s", d.Kind)
	}
	return d
}

// mainStatements parses body as the statements of the main block.
func mainStatements(t *testing.T, body string) []ast.Statement {
	t.Helper()
	program := parseSource(t, "program P; begin "+body+" end.")
	return program.Main.Statements
}

// --- The Test Cases ---

func TestProgramDeclarations(t *testing.T) {
	input := `
program P;
const N = 10; S = 'x';
type T = integer;
  R = record a, b: real; end;
var v: T;
procedure p(a: integer; b: real);
begin
end;
function f(): integer;
begin
  f := 1;
end;
begin
end.
`
	program := parseSource(t, input)

	expected := `(program "P"` +
		` (const ("N" (integer 10)) ("S" (string "x")))` +
		` (type ("T" integer) ("R" (record ("a" "b" real))))` +
		` (var ("v" T))` +
		` (procedure "p" (params ("a" integer) ("b" real)) (block))` +
		` (function "f" (params) integer (block (assign "f" (integer 1))))` +
		` (block))`
	if got := ast.SExpr(program); got != expected {
		t.Fatalf("SExpr wrong.\nexpected=%s\ngot=     %s", expected, got)
	}

	if len(program.Subprograms) != 2 {
		t.Fatalf("program.Subprograms expected=2, got=%d", len(program.Subprograms))
	}
	if program.Subprograms[0].IsFunction() {
		t.Errorf("p should be a procedure")
	}
	if !program.Subprograms[1].IsFunction() {
		t.Errorf("f should be a function")
	}
}

func TestVarSectionGroups(t *testing.T) {
	program := parseSource(t, "program P; var x, y: integer; s: string; begin end.")
	vs, ok := program.Sections[0].(*ast.VarSection)
	if !ok {
		t.Fatalf("program.Sections[0] is not *ast.VarSection. got=%T", program.Sections[0])
	}
	if len(vs.Vars) != 2 {
		t.Fatalf("vs.Vars expected=2 groups, got=%d", len(vs.Vars))
	}
	if vs.String() != "var x, y: integer; s: string;" {
		t.Errorf("vs.String() wrong. got=%q", vs.String())
	}
	if !vs.Vars[0].Type.IsPrimitive() {
		t.Errorf("integer should be primitive")
	}
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", `(binary "+" (integer 1) (binary "*" (integer 2) (integer 3)))`},
		{"(1 + 2) * 3", `(binary "*" (binary "+" (integer 1) (integer 2)) (integer 3))`},
		{"a - b - c", `(binary "-" (binary "-" (ident "a") (ident "b")) (ident "c"))`},
		{"a or b and c", `(binary "or" (ident "a") (binary "and" (ident "b") (ident "c")))`},
		{"x < y + 1", `(binary "<" (ident "x") (binary "+" (ident "y") (integer 1)))`},
		{"-x * 2", `(binary "*" (unary "-" (ident "x")) (integer 2))`},
		{"not a = b", `(binary "=" (unary "not" (ident "a")) (ident "b"))`},
		{"a div 2 / 1.5", `(binary "/" (binary "div" (ident "a") (integer 2)) (real 1.5))`},
		{"(a < b) < c", `(binary "<" (binary "<" (ident "a") (ident "b")) (ident "c"))`},
		{"f(1, x) + g()", `(binary "+" (call "f" (integer 1) (ident "x")) (call "g"))`},
		{"'hi' <> \"there\"", `(binary "<>" (string "hi") (string "there"))`},
		{"true and not false", `(binary "and" (boolean true) (unary "not" (boolean false)))`},
	}

	for _, tt := range tests {
		stmts := mainStatements(t, "x := "+tt.input+";")
		assign, ok := stmts[0].(*ast.AssignStatement)
		if !ok {
			t.Fatalf("stmts[0] is not *ast.AssignStatement. got=%T", stmts[0])
		}
		if got := ast.SExpr(assign.Value); got != tt.expected {
			t.Errorf("input %q:\nexpected=%s\ngot=     %s", tt.input, tt.expected, got)
		}
	}
}

func TestExpressionString(t *testing.T) {
	stmts := mainStatements(t, "x := -a + b * 2;")
	if got := stmts[0].String(); got != "x := ((-a) + (b * 2));" {
		t.Errorf("String() wrong. got=%q", got)
	}
}

func TestComparisonsDoNotChain(t *testing.T) {
	d := parseError(t, "program P; begin x := a < b < c; end.")
	if d.Expected != "SEMICOLON" || d.Found != "LESS" {
		t.Fatalf("expected SEMICOLON/LESS, got %s/%s", d.Expected, d.Found)
	}
	if d.Line != 1 || d.Column != 29 {
		t.Errorf("position expected=1:29, got=%d:%d", d.Line, d.Column)
	}

	d = parseError(t, "program P; begin x := a = b + c <> d; end.")
	if d.Found != "NOT_EQUAL" {
		t.Fatalf("expected NOT_EQUAL, got %s", d.Found)
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"writeln('hi', x);", `(call "writeln" (string "hi") (ident "x"))`},
		{"begin x := 1; end;", `(block (assign "x" (integer 1)))`},
		{"if a then x := 1; else x := 2;", `(if (ident "a") (assign "x" (integer 1)) (assign "x" (integer 2)))`},
		{"if a then if b then x := 1; else x := 2;", `(if (ident "a") (if (ident "b") (assign "x" (integer 1)) (assign "x" (integer 2))))`},
		{"while x < 10 do x := x + 1;", `(while (binary "<" (ident "x") (integer 10)) (assign "x" (binary "+" (ident "x") (integer 1))))`},
		{"for i := 1 to n do s := s + i;", `(for "i" (integer 1) to (ident "n") (assign "s" (binary "+" (ident "s") (ident "i"))))`},
		{"for i := 10 downto 1 do begin end;", `(for "i" (integer 10) downto (integer 1) (block))`},
		{"repeat x := 1; y := 2; until x > 0;", `(repeat (assign "x" (integer 1)) (assign "y" (integer 2)) (until (binary ">" (ident "x") (integer 0))))`},
		{
			"case x of 1, 2: y := 1; 3: y := 2; else y := 0; end;",
			`(case (ident "x") (branch ((integer 1) (integer 2)) (assign "y" (integer 1))) (branch ((integer 3)) (assign "y" (integer 2))) (else (assign "y" (integer 0))))`,
		},
		{"case c of 'a': y := 1; end;", `(case (ident "c") (branch ((string "a")) (assign "y" (integer 1))))`},
		{
			"try x := 1; except x := 2; finally x := 3; end;",
			`(try (body (assign "x" (integer 1))) (except (assign "x" (integer 2))) (finally (assign "x" (integer 3))))`,
		},
		{"try x := 1; catch end;", `(try (body (assign "x" (integer 1))) (catch))`},
		{"try finally x := 3; end;", `(try (body) (finally (assign "x" (integer 3))))`},
	}

	for _, tt := range tests {
		stmts := mainStatements(t, tt.input)
		if len(stmts) != 1 {
			t.Fatalf("input %q: expected 1 statement, got=%d", tt.input, len(stmts))
		}
		if got := ast.SExpr(stmts[0]); got != tt.expected {
			t.Errorf("input %q:\nexpected=%s\ngot=     %s", tt.input, tt.expected, got)
		}
	}
}

func TestForDirection(t *testing.T) {
	stmts := mainStatements(t, "for i := 1 to 3 do x := i; for j := 3 downto 1 do x := j;")
	up, ok := stmts[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("stmts[0] is not *ast.ForStatement. got=%T", stmts[0])
	}
	down := stmts[1].(*ast.ForStatement)
	if !up.Ascending || up.Direction() != "to" {
		t.Errorf("first loop should ascend, got %q", up.Direction())
	}
	if down.Ascending || down.Direction() != "downto" {
		t.Errorf("second loop should descend, got %q", down.Direction())
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    string
		line     int
		column   int
	}{
		{"missing program", "begin end.", "PROGRAM", "BEGIN", 1, 1},
		{"missing dot", "program P; begin end", "DOT", "EOF", 1, 21},
		{"missing semicolon", "program P; begin x := 1 end.", "SEMICOLON", "END", 1, 25},
		{"missing end", "program P; begin x := 1;", "STATEMENT", "EOF", 1, 25},
		{"bare identifier", "program P; begin x 1; end.", "ASSIGN", "INT_LIT", 1, 20},
		{"missing expression", "program P; begin x := ; end.", "EXPRESSION", "SEMICOLON", 1, 23},
		{"for without direction", "program P; begin for i := 1 do x := 1; end.", "TO", "DO", 1, 29},
		{"case without branch", "program P; begin case x of end; end.", "LITERAL", "END", 1, 28},
		{"case label not literal", "program P; begin case x of y: z := 1; end; end.", "LITERAL", "IDENT", 1, 28},
		{"bad type name", "program P; var x: 5; begin end.", "TYPE_NAME", "INT_LIT", 1, 19},
		{"text after dot", "program P; begin end. x", "EOF", "IDENT", 1, 23},
		{"unclosed paren", "program P; begin x := (1 + 2; end.", "RPAREN", "SEMICOLON", 1, 29},
		{"statement on second line", "program P;\nbegin\n  then\nend.", "STATEMENT", "THEN", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseError(t, tt.input)
			if d.Expected != tt.expected || d.Found != tt.found {
				t.Fatalf("expected %s/%s, got %s/%s", tt.expected, tt.found, d.Expected, d.Found)
			}
			if d.Line != tt.line || d.Column != tt.column {
				t.Errorf("position expected=%d:%d, got=%d:%d", tt.line, tt.column, d.Line, d.Column)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	program, err := Parse(nil)
	if program != nil {
		t.Fatalf("expected nil program")
	}
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("error is not a *diag.Diagnostic. got=%T", err)
	}
	if d.Expected != "PROGRAM" || d.Found != "EOF" || d.Line != 1 || d.Column != 1 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}
