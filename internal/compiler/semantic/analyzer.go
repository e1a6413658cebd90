// Package semantic checks a parsed program: declarations, assignments,
// conditions, for loops and expression types. It never stops at the first
// problem; Analyze always walks the whole tree.
package semantic

import (
	"fmt"

	"github.com/arnavsurve/pasfront/internal/compiler/ast"
	"github.com/arnavsurve/pasfront/internal/compiler/diag"
	"github.com/arnavsurve/pasfront/internal/compiler/scope"
	"github.com/arnavsurve/pasfront/internal/compiler/symbols"
	"github.com/arnavsurve/pasfront/internal/compiler/token"
)

type Analyzer struct {
	globals      *scope.Scope
	currentScope *scope.Scope

	// Names currently acting as a for-loop control variable. Membership
	// lasts for the body of that loop only.
	activeFor map[string]bool

	diagnostics diag.List
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze checks prog with a fresh analyzer.
func Analyze(prog *ast.Program) diag.List {
	return NewAnalyzer().Analyze(prog)
}

// Analyze walks prog depth-first and returns every diagnostic found, in
// discovery order. Each call starts from an empty symbol table.
func (a *Analyzer) Analyze(prog *ast.Program) diag.List {
	a.globals = scope.NewScope(nil, "global")
	a.currentScope = a.globals
	a.activeFor = make(map[string]bool)
	a.diagnostics = nil

	if prog == nil {
		return nil
	}

	for _, sect := range prog.Sections {
		a.visitSection(sect)
	}
	for _, sp := range prog.Subprograms {
		a.declareRoutine(sp)
	}
	for _, sp := range prog.Subprograms {
		a.visitRoutineBody(sp)
	}
	a.visitBlock(prog.Main)

	return a.diagnostics
}

// Globals is the program-level symbol table built by the last Analyze call.
func (a *Analyzer) Globals() *scope.Scope {
	return a.globals
}

// --- Error Handling ---

func (a *Analyzer) report(kind diag.Kind, tok token.Token, d diag.Diagnostic) {
	d.Kind = kind
	d.Line = tok.Line
	d.Column = tok.Column
	a.diagnostics.Add(&d)
}

func (a *Analyzer) lookup(name string) (*symbols.SymbolInfo, bool) {
	return a.currentScope.Lookup(name)
}

// define adds name to the current scope, reporting a repeat as a duplicate.
// The first declaration always wins.
func (a *Analyzer) define(ident *ast.Identifier, info symbols.SymbolInfo) {
	info.Name = ident.Value
	info.Line = ident.Token.Line
	if err := a.currentScope.Define(ident.Value, info); err != nil {
		a.report(diag.DuplicateDeclaration, ident.Token, diag.Diagnostic{Name: ident.Value})
	}
}

// --- Declarations ---

func (a *Analyzer) visitSection(sect ast.Section) {
	switch s := sect.(type) {
	case *ast.ConstSection:
		for _, c := range s.Consts {
			t := a.inferType(c.Value)
			a.define(c.Name, symbols.SymbolInfo{Type: t, Kind: symbols.Constant, IsConst: true})
		}
	case *ast.VarSection:
		for _, v := range s.Vars {
			t := a.resolveType(v.Type)
			for _, name := range v.Names {
				a.define(name, symbols.SymbolInfo{Type: t, Kind: symbols.Variable})
			}
		}
	case *ast.TypeSection:
		for _, td := range s.Types {
			a.define(td.Name, symbols.SymbolInfo{Type: a.resolveTypeDecl(td), Kind: symbols.TypeName})
		}
	default:
		panic(fmt.Sprintf("semantic: unexpected section %T", sect))
	}
}

// resolveType maps a type name to its Type. Unknown names are reported and
// resolve to Unknown so later checks stay quiet about them.
func (a *Analyzer) resolveType(tn *ast.TypeNode) symbols.Type {
	if tn.IsPrimitive() {
		t, _ := symbols.FromTypeName(tn.Name)
		return t
	}
	if sym, ok := a.currentScope.LookupKind(tn.Name, symbols.TypeName); ok {
		return sym.Type
	}
	a.report(diag.UndeclaredType, tn.Token, diag.Diagnostic{Name: tn.Name})
	return symbols.Unknown
}

// resolveTypeDecl returns what an alias stands for. Records have no
// primitive equivalent and resolve to Unknown after their fields are checked.
func (a *Analyzer) resolveTypeDecl(td *ast.TypeDecl) symbols.Type {
	if td.Record == nil {
		return a.resolveType(td.Type)
	}
	seen := make(map[string]bool)
	for _, f := range td.Record.Fields {
		a.resolveType(f.Type)
		for _, name := range f.Names {
			if seen[name.Value] {
				a.report(diag.DuplicateDeclaration, name.Token, diag.Diagnostic{Name: name.Value})
				continue
			}
			seen[name.Value] = true
		}
	}
	return symbols.Unknown
}

// --- Subprograms ---

func (a *Analyzer) declareRoutine(sp *ast.Subprogram) {
	info := symbols.SymbolInfo{Kind: symbols.Routine, IsFunction: sp.IsFunction()}
	for _, group := range sp.Params {
		t := a.resolveType(group.Type)
		for _, name := range group.Names {
			info.ParamNames = append(info.ParamNames, name.Value)
			info.ParamTypes = append(info.ParamTypes, t)
		}
	}
	if sp.ReturnType != nil {
		info.ReturnType = a.resolveType(sp.ReturnType)
	}
	info.Type = info.ReturnType
	a.define(sp.Name, info)
}

// visitRoutineBody checks a routine's block in its own scope, holding its
// parameters and, for a function, the result variable named after it.
func (a *Analyzer) visitRoutineBody(sp *ast.Subprogram) {
	a.currentScope = scope.NewScope(a.globals, sp.Name.Value)
	defer func() { a.currentScope = a.globals }()

	routine, _ := a.globals.LookupKind(sp.Name.Value, symbols.Routine)
	i := 0
	for _, group := range sp.Params {
		for _, name := range group.Names {
			t := symbols.Unknown
			if routine != nil && i < len(routine.ParamTypes) {
				t = routine.ParamTypes[i]
			}
			a.define(name, symbols.SymbolInfo{Type: t, Kind: symbols.Parameter})
			i++
		}
	}
	if sp.IsFunction() {
		t := symbols.Unknown
		if routine != nil {
			t = routine.ReturnType
		}
		a.define(sp.Name, symbols.SymbolInfo{Type: t, Kind: symbols.Variable})
	}

	a.visitBlock(sp.Body)
}

// --- Statements ---

func (a *Analyzer) visitBlock(b *ast.Block) {
	a.visitStatements(b.Statements)
}

func (a *Analyzer) visitStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		a.visitStatement(s)
	}
}

func (a *Analyzer) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		a.visitBlock(s)
	case *ast.AssignStatement:
		a.visitAssign(s)
	case *ast.CallStatement:
		for _, arg := range s.Arguments {
			a.inferType(arg)
		}
	case *ast.IfStatement:
		a.checkCondition("if", s.Condition)
		a.visitStatement(s.Consequence)
		if s.Alternative != nil {
			a.visitStatement(s.Alternative)
		}
	case *ast.WhileStatement:
		a.checkCondition("while", s.Condition)
		a.visitStatement(s.Body)
	case *ast.ForStatement:
		a.visitFor(s)
	case *ast.RepeatStatement:
		a.visitStatements(s.Body)
		a.checkCondition("until", s.Condition)
	case *ast.CaseStatement:
		a.visitCase(s)
	case *ast.TryStatement:
		a.visitStatements(s.Body)
		if s.Handler != nil {
			a.visitStatements(s.Handler.Statements)
		}
		if s.Finally != nil {
			a.visitStatements(s.Finally.Statements)
		}
	default:
		panic(fmt.Sprintf("semantic: unexpected statement %T", stmt))
	}
}

// visitAssign checks, in order: loop protection, declaration,
// assignability, then the value's type against the target's.
func (a *Analyzer) visitAssign(s *ast.AssignStatement) {
	name := s.Name.Value

	if a.activeFor[name] {
		a.report(diag.ForLoopVariableMutation, s.Name.Token, diag.Diagnostic{Name: name})
		a.inferType(s.Value)
		return
	}

	sym, ok := a.lookup(name)
	if !ok {
		a.report(diag.UndeclaredVariable, s.Name.Token, diag.Diagnostic{Name: name})
		a.inferType(s.Value)
		return
	}
	if !sym.Assignable() {
		a.report(diag.ConstantAssignment, s.Name.Token, diag.Diagnostic{Name: name, Found: sym.Kind.String()})
		a.inferType(s.Value)
		return
	}

	valueType := a.inferType(s.Value)
	if sym.Type != valueType && sym.Type != symbols.Unknown && valueType != symbols.Unknown {
		a.report(diag.TypeMismatch, s.Name.Token, diag.Diagnostic{
			Name:     name,
			Expected: sym.Type.String(),
			Found:    valueType.String(),
		})
	}
}

func (a *Analyzer) checkCondition(keyword string, cond ast.Expression) {
	t := a.inferType(cond)
	if t != symbols.Boolean && t != symbols.Unknown {
		a.report(diag.NonBooleanCondition, cond.GetToken(), diag.Diagnostic{Operator: keyword, Found: t.String()})
	}
}

func (a *Analyzer) visitFor(s *ast.ForStatement) {
	name := s.Variable.Value
	alreadyActive := a.activeFor[name]

	if alreadyActive {
		a.report(diag.ForLoopVariableMutation, s.Variable.Token, diag.Diagnostic{Name: name})
	} else if sym, ok := a.lookup(name); !ok {
		a.report(diag.UndeclaredVariable, s.Variable.Token, diag.Diagnostic{Name: name})
	} else if !sym.Assignable() {
		a.report(diag.ConstantAssignment, s.Variable.Token, diag.Diagnostic{Name: name, Found: sym.Kind.String()})
	} else if sym.Type != symbols.Integer {
		a.report(diag.InvalidForControlVariable, s.Variable.Token, diag.Diagnostic{Name: name, Found: sym.Type.String()})
	}

	a.checkForBound(name, "start", s.Start)
	a.checkForBound(name, "end", s.End)

	if alreadyActive {
		a.visitStatement(s.Body)
		return
	}
	a.activeFor[name] = true
	a.visitStatement(s.Body)
	delete(a.activeFor, name)
}

func (a *Analyzer) checkForBound(name, side string, bound ast.Expression) {
	t := a.inferType(bound)
	if t != symbols.Integer {
		a.report(diag.InvalidForBound, bound.GetToken(), diag.Diagnostic{Name: name, Operator: side, Found: t.String()})
	}
}

func (a *Analyzer) visitCase(s *ast.CaseStatement) {
	selType := a.inferType(s.Selector)
	for _, branch := range s.Branches {
		for _, label := range branch.Labels {
			labelType := a.inferType(label)
			if selType != symbols.Unknown && labelType != selType {
				a.report(diag.CaseLabelMismatch, label.GetToken(), diag.Diagnostic{
					Expected: selType.String(),
					Found:    labelType.String(),
				})
			}
		}
		a.visitStatement(branch.Body)
	}
	if s.Else != nil {
		a.visitStatement(s.Else)
	}
}
