package symbols

// Type is the declared or inferred type of a symbol or expression.
type Type int

const (
	Unknown Type = iota
	Integer
	Real
	Boolean
	String
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case Boolean:
		return "BOOLEAN"
	case String:
		return "STRING"
	}
	return "UNKNOWN"
}

func (t Type) IsNumeric() bool {
	return t == Integer || t == Real
}

// FromTypeName maps a primitive type keyword (integer, real, boolean, string)
// to its Type.
func FromTypeName(name string) (Type, bool) {
	switch name {
	case "integer":
		return Integer, true
	case "real":
		return Real, true
	case "boolean":
		return Boolean, true
	case "string":
		return String, true
	}
	return Unknown, false
}

type Kind int

const (
	Variable Kind = iota
	Constant
	Parameter
	TypeName
	Routine
)

func (k Kind) String() string {
	switch k {
	case Constant:
		return "constant"
	case Parameter:
		return "parameter"
	case TypeName:
		return "type"
	case Routine:
		return "routine"
	}
	return "variable"
}

type SymbolInfo struct {
	Name    string
	Type    Type // for a TypeName, the type it resolves to
	Line    int  // declaration line
	Kind    Kind
	IsConst bool

	// --- Routine specific info ---
	ParamNames []string
	ParamTypes []Type
	ReturnType Type
	IsFunction bool
}

// Assignable reports whether the symbol may appear on the left of ':='.
func (s SymbolInfo) Assignable() bool {
	return s.Kind == Variable || s.Kind == Parameter
}
