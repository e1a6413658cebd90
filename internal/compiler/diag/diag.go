// Package diag holds the diagnostics produced by every compiler phase.
//
// A Diagnostic's contract is its Kind, its position and its structured
// fields. The text returned by Error is for humans and may change.
package diag

import (
	"errors"
	"fmt"
	"sort"
)

type Kind int

const (
	// Lexical
	MalformedNumber Kind = iota + 1
	UnterminatedString
	UnterminatedComment
	UnexpectedCharacter

	// Syntax
	SyntaxError

	// Semantic
	DuplicateDeclaration
	UndeclaredVariable
	TypeMismatch
	NonBooleanCondition
	InvalidForControlVariable
	InvalidForBound
	ForLoopVariableMutation
	IncompatibleOperandTypes
	ConstantAssignment
	UndeclaredType
	CaseLabelMismatch
)

var kindNames = map[Kind]string{
	MalformedNumber:           "MalformedNumber",
	UnterminatedString:        "UnterminatedString",
	UnterminatedComment:       "UnterminatedComment",
	UnexpectedCharacter:       "UnexpectedCharacter",
	SyntaxError:               "SyntaxError",
	DuplicateDeclaration:      "DuplicateDeclaration",
	UndeclaredVariable:        "UndeclaredVariable",
	TypeMismatch:              "TypeMismatch",
	NonBooleanCondition:       "NonBooleanCondition",
	InvalidForControlVariable: "InvalidForControlVariable",
	InvalidForBound:           "InvalidForBound",
	ForLoopVariableMutation:   "ForLoopVariableMutation",
	IncompatibleOperandTypes:  "IncompatibleOperandTypes",
	ConstantAssignment:        "ConstantAssignment",
	UndeclaredType:            "UndeclaredType",
	CaseLabelMismatch:         "CaseLabelMismatch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

type Phase string

const (
	PhaseLexical  Phase = "lexical"
	PhaseSyntax   Phase = "syntax"
	PhaseSemantic Phase = "semantic"
)

func (k Kind) Phase() Phase {
	switch {
	case k >= MalformedNumber && k <= UnexpectedCharacter:
		return PhaseLexical
	case k == SyntaxError:
		return PhaseSyntax
	default:
		return PhaseSemantic
	}
}

// Diagnostic is a single lexical, syntax or semantic problem.
//
// Which of the optional fields are set depends on Kind:
//   - Name: the offending identifier (declarations, assignments, for loops,
//     undeclared types) or the unexpected character.
//   - Operator: the operator text for IncompatibleOperandTypes, the
//     statement keyword for NonBooleanCondition, the bound ("start" or
//     "end") for InvalidForBound.
//   - Expected/Found: token kinds for SyntaxError; declared/inferred type
//     names for TypeMismatch, InvalidForControlVariable, InvalidForBound,
//     CaseLabelMismatch and IncompatibleOperandTypes (left/right operand).
//     For ConstantAssignment, Found names what the target is ("constant",
//     "type", "routine").
type Diagnostic struct {
	Kind     Kind
	Line     int
	Column   int
	Name     string
	Operator string
	Expected string
	Found    string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Kind, d.Message())
}

// Message renders the diagnostic's fields without position or kind.
func (d *Diagnostic) Message() string {
	switch d.Kind {
	case MalformedNumber:
		return fmt.Sprintf("malformed number %q", d.Name)
	case UnterminatedString:
		return "string literal not terminated"
	case UnterminatedComment:
		return "comment not terminated"
	case UnexpectedCharacter:
		return fmt.Sprintf("unexpected character %q", d.Name)
	case SyntaxError:
		return fmt.Sprintf("expected %s, found %s", d.Expected, d.Found)
	case DuplicateDeclaration:
		return fmt.Sprintf("'%s' already declared", d.Name)
	case UndeclaredVariable:
		return fmt.Sprintf("variable '%s' not declared", d.Name)
	case TypeMismatch:
		return fmt.Sprintf("variable '%s' is %s but is assigned %s", d.Name, d.Expected, d.Found)
	case NonBooleanCondition:
		return fmt.Sprintf("'%s' condition must be BOOLEAN, got %s", d.Operator, d.Found)
	case InvalidForControlVariable:
		return fmt.Sprintf("for control variable '%s' must be INTEGER, got %s", d.Name, d.Found)
	case InvalidForBound:
		return fmt.Sprintf("%s bound of for loop over '%s' must be INTEGER, got %s", d.Operator, d.Name, d.Found)
	case ForLoopVariableMutation:
		return fmt.Sprintf("for control variable '%s' cannot be modified", d.Name)
	case IncompatibleOperandTypes:
		if d.Expected == "" {
			return fmt.Sprintf("operator '%s' cannot be applied to %s", d.Operator, d.Found)
		}
		return fmt.Sprintf("operator '%s' cannot be applied to %s and %s", d.Operator, d.Expected, d.Found)
	case ConstantAssignment:
		what := d.Found
		if what == "" {
			what = "constant"
		}
		return fmt.Sprintf("cannot assign to %s '%s'", what, d.Name)
	case UndeclaredType:
		return fmt.Sprintf("type '%s' not declared", d.Name)
	case CaseLabelMismatch:
		return fmt.Sprintf("case label is %s but selector is %s", d.Found, d.Expected)
	}
	return d.Kind.String()
}

// MarshalYAML emits the kind by name alongside the other fields.
func (d *Diagnostic) MarshalYAML() (any, error) {
	return struct {
		Kind     string `yaml:"kind"`
		Phase    Phase  `yaml:"phase"`
		Line     int    `yaml:"line"`
		Column   int    `yaml:"column,omitempty"`
		Name     string `yaml:"name,omitempty"`
		Operator string `yaml:"operator,omitempty"`
		Expected string `yaml:"expected,omitempty"`
		Found    string `yaml:"found,omitempty"`
		Message  string `yaml:"message"`
	}{
		Kind:     d.Kind.String(),
		Phase:    d.Kind.Phase(),
		Line:     d.Line,
		Column:   d.Column,
		Name:     d.Name,
		Operator: d.Operator,
		Expected: d.Expected,
		Found:    d.Found,
		Message:  d.Message(),
	}, nil
}

type List []*Diagnostic

func (l *List) Add(d *Diagnostic) {
	*l = append(*l, d)
}

// Err joins every diagnostic into one error, or returns nil for an empty list.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errors.Join(errs...)
}

func (l List) Count(kind Kind) int {
	n := 0
	for _, d := range l {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

func (l List) CountPhase(phase Phase) int {
	n := 0
	for _, d := range l {
		if d.Kind.Phase() == phase {
			n++
		}
	}
	return n
}

func (l List) Kinds() []Kind {
	kinds := make([]Kind, len(l))
	for i, d := range l {
		kinds[i] = d.Kind
	}
	return kinds
}

// Sort orders the list by position, keeping discovery order for ties.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Line != l[j].Line {
			return l[i].Line < l[j].Line
		}
		return l[i].Column < l[j].Column
	})
}
