// Package jsast holds the small JavaScript expression tree the component
// compiler folds over, and lowers a tree-sitter parse of one ES module
// into it.
//
// Only the shapes the static evaluator understands get a dedicated node
// type. Everything else is lowered to EUnsupported so that a new syntax
// form can never be mistaken for a supported one.
package jsast

// Span is a half-open byte range into the module source.
type Span struct {
	Start int
	End   int
}

// Text returns the source text covered by the span.
func (s Span) Text(src []byte) string {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return string(src[s.Start:s.End])
}

// Expr pairs a node with its location, mirroring the way esbuild keeps
// Data and Loc apart so node structs stay small.
type Expr struct {
	Data E
	Span Span
}

// E is the tagged union of expression nodes.
type E interface{ isExpr() }

func (*EString) isExpr()      {}
func (*ENumber) isExpr()      {}
func (*EBoolean) isExpr()     {}
func (*ENull) isExpr()        {}
func (*EUndefined) isExpr()   {}
func (*ETemplate) isExpr()    {}
func (*EArray) isExpr()       {}
func (*EObject) isExpr()      {}
func (*ESpread) isExpr()      {}
func (*EMissing) isExpr()     {}
func (*EIdentifier) isExpr()  {}
func (*EUnary) isExpr()       {}
func (*EBinary) isExpr()      {}
func (*ELogical) isExpr()     {}
func (*EConditional) isExpr() {}
func (*EDot) isExpr()         {}
func (*EIndex) isExpr()       {}
func (*ECall) isExpr()        {}
func (*EFunction) isExpr()    {}
func (*EArrow) isExpr()       {}
func (*EClass) isExpr()       {}
func (*EUnsupported) isExpr() {}

type EString struct{ Value string }

type ENumber struct{ Value float64 }

type EBoolean struct{ Value bool }

type ENull struct{}

type EUndefined struct{}

// ETemplate is an untagged template literal. Quasis holds the cooked
// strings and always has one more element than Exprs.
type ETemplate struct {
	Quasis []string
	Exprs  []Expr
}

// EArray items may be EMissing (holes) or ESpread.
type EArray struct {
	Items []Expr
}

type PropertyKind uint8

const (
	PropertyInit PropertyKind = iota
	PropertySpread
	PropertyMethod
	PropertyGetter
	PropertySetter
)

type Property struct {
	Kind PropertyKind

	// Key is the literal key for non-computed properties. Computed keys
	// live in KeyExpr.
	Key      string
	Computed bool
	KeyExpr  Expr

	// Value is the initializer for PropertyInit and the operand for
	// PropertySpread.
	Value Expr
}

type EObject struct {
	Properties []Property
}

type ESpread struct {
	Value Expr
}

// EMissing is an array hole.
type EMissing struct{}

type EIdentifier struct {
	Name string
}

type EUnary struct {
	Op    string
	Value Expr
}

type EBinary struct {
	Op    string
	Left  Expr
	Right Expr
}

// ELogical covers &&, || and ??.
type ELogical struct {
	Op    string
	Left  Expr
	Right Expr
}

type EConditional struct {
	Test Expr
	Yes  Expr
	No   Expr
}

// EDot is a non-computed member access such as a.b or a?.b.
type EDot struct {
	Target   Expr
	Name     string
	Optional bool
}

// EIndex is a computed member access such as a[b] or a?.[b].
type EIndex struct {
	Target   Expr
	Index    Expr
	Optional bool
}

type ECall struct {
	Target Expr
	Args   []Expr
}

// EFunction is a function declaration or function expression.
type EFunction struct {
	Name        string
	Declaration bool
}

type EArrow struct{}

// EClass is a class declaration or class expression.
type EClass struct {
	Name        string
	Declaration bool
}

// EUnsupported stands in for any syntax the evaluator does not fold.
// Kind is the tree-sitter node type, kept for diagnostics.
type EUnsupported struct {
	Kind string
}

// IsFunction reports whether the node is function-shaped: a function
// declaration, function expression or arrow function.
func IsFunction(e E) bool {
	switch e.(type) {
	case *EFunction, *EArrow:
		return true
	}
	return false
}
