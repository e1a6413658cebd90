package diag

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestKindNames(t *testing.T) {
	for k := MalformedNumber; k <= CaseLabelMismatch; k++ {
		name := k.String()
		got, ok := ParseKind(name)
		be.True(t, ok)
		be.Equal(t, got, k)
	}
	_, ok := ParseKind("NotAKind")
	be.Equal(t, ok, false)
	be.Equal(t, Kind(99).String(), "Kind(99)")
}

func TestPhase(t *testing.T) {
	be.Equal(t, UnterminatedComment.Phase(), PhaseLexical)
	be.Equal(t, SyntaxError.Phase(), PhaseSyntax)
	be.Equal(t, DuplicateDeclaration.Phase(), PhaseSemantic)
	be.Equal(t, CaseLabelMismatch.Phase(), PhaseSemantic)
}

func TestDiagnosticError(t *testing.T) {
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Kind: MalformedNumber, Line: 2, Column: 7, Name: "1.2.3"}, `2:7: MalformedNumber: malformed number "1.2.3"`},
		{Diagnostic{Kind: SyntaxError, Line: 1, Column: 5, Expected: "SEMICOLON", Found: "END"}, "1:5: SyntaxError: expected SEMICOLON, found END"},
		{Diagnostic{Kind: IncompatibleOperandTypes, Line: 3, Column: 9, Operator: "not", Found: "INTEGER"}, "3:9: IncompatibleOperandTypes: operator 'not' cannot be applied to INTEGER"},
		{Diagnostic{Kind: IncompatibleOperandTypes, Line: 3, Column: 9, Operator: "+", Expected: "INTEGER", Found: "STRING"}, "3:9: IncompatibleOperandTypes: operator '+' cannot be applied to INTEGER and STRING"},
		{Diagnostic{Kind: ConstantAssignment, Line: 4, Column: 3, Name: "N"}, "4:3: ConstantAssignment: cannot assign to constant 'N'"},
		{Diagnostic{Kind: ConstantAssignment, Line: 4, Column: 3, Name: "p", Found: "routine"}, "4:3: ConstantAssignment: cannot assign to routine 'p'"},
		{Diagnostic{Kind: InvalidForBound, Line: 5, Column: 14, Name: "i", Operator: "end", Found: "REAL"}, "5:14: InvalidForBound: end bound of for loop over 'i' must be INTEGER, got REAL"},
	}
	for _, tt := range tests {
		be.Equal(t, tt.d.Error(), tt.want)
	}
}

func TestList(t *testing.T) {
	var l List
	be.Err(t, l.Err(), nil)

	l.Add(&Diagnostic{Kind: TypeMismatch, Line: 3, Column: 1})
	l.Add(&Diagnostic{Kind: UnexpectedCharacter, Line: 1, Column: 9, Name: "@"})
	l.Add(&Diagnostic{Kind: TypeMismatch, Line: 1, Column: 2})
	l.Add(&Diagnostic{Kind: UndeclaredVariable, Line: 1, Column: 2})

	be.Equal(t, l.Count(TypeMismatch), 2)
	be.Equal(t, l.CountPhase(PhaseLexical), 1)
	be.Equal(t, l.CountPhase(PhaseSemantic), 3)
	be.Err(t, l.Err(), "1:9: UnexpectedCharacter")

	l.Sort()
	// Ties keep discovery order.
	be.Equal(t, l.Kinds(), []Kind{TypeMismatch, UndeclaredVariable, UnexpectedCharacter, TypeMismatch})
	be.Equal(t, l[3].Line, 3)
}
