// Package expr implements the compiled expression tree: the immutable-by-
// contract nodes a downstream runtime evaluates against incoming events.
// This package only constructs nodes; it never evaluates them.
package expr

import "fmt"

// Kind tags the shape of an Expression node.
type Kind int

const (
	KindTerm Kind = iota
	KindAnd
	KindOr
	KindChain
	KindBroadcast
	KindImplication
)

func (k Kind) String() string {
	switch k {
	case KindTerm:
		return "Term"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindChain:
		return "Chain"
	case KindBroadcast:
		return "Broadcast"
	case KindImplication:
		return "Implication"
	default:
		return "Unknown"
	}
}

// Expression is a node in the compiled tree. Equality and hashing are by
// identity (pointer equality), never by structure, matching §4.1 of the
// spec this package implements.
type Expression struct {
	Kind Kind
	Name string

	// Op is the opaque predicate/action payload of a Term node.
	Op any

	// Operands holds the children of And/Or/Chain/Broadcast nodes. The fold
	// assembles each operand slice before constructing its node; callers
	// must treat it as frozen once the root is handed back.
	Operands []*Expression

	// Antecedent/Consequent are the two children of an Implication node.
	Antecedent *Expression
	Consequent *Expression
}

// Term creates an opaque leaf node wrapping a per-stage builder's payload.
func Term(name string, op any) *Expression {
	return &Expression{Kind: KindTerm, Name: name, Op: op}
}

// And creates an operator node whose operands all must succeed.
func And(name string, ops []*Expression) *Expression {
	return &Expression{Kind: KindAnd, Name: name, Operands: ops}
}

// Or creates an operator node where the first successful operand wins.
func Or(name string, ops []*Expression) *Expression {
	return &Expression{Kind: KindOr, Name: name, Operands: ops}
}

// Chain creates an operator node whose operands run in order, unconditionally.
func Chain(name string, ops []*Expression) *Expression {
	return &Expression{Kind: KindChain, Name: name, Operands: ops}
}

// Broadcast creates an operator node whose operands all receive the input
// with no short-circuit, used for rule/output fan-out.
func Broadcast(name string, ops []*Expression) *Expression {
	return &Expression{Kind: KindBroadcast, Name: name, Operands: ops}
}

// Implication creates a two-child node: consequent only applies when
// antecedent succeeds, but the overall result is the antecedent's result.
// Both antecedent and consequent are required (arity exactly one each).
func Implication(name string, antecedent, consequent *Expression) (*Expression, error) {
	if antecedent == nil {
		return nil, fmt.Errorf("expr: Implication %q requires an antecedent", name)
	}
	if consequent == nil {
		return nil, fmt.Errorf("expr: Implication %q requires a consequent", name)
	}
	return &Expression{
		Kind:       KindImplication,
		Name:       name,
		Antecedent: antecedent,
		Consequent: consequent,
	}, nil
}

// MustImplication panics instead of returning an error; for call sites
// that have already validated both children are non-nil.
func MustImplication(name string, antecedent, consequent *Expression) *Expression {
	e, err := Implication(name, antecedent, consequent)
	if err != nil {
		panic(err)
	}
	return e
}

// Children returns the direct children of e in evaluation order, exposing
// a uniform traversal regardless of node kind, for the runtime; the
// compiler itself never calls it.
func (e *Expression) Children() []*Expression {
	switch e.Kind {
	case KindAnd, KindOr, KindChain, KindBroadcast:
		return e.Operands
	case KindImplication:
		return []*Expression{e.Antecedent, e.Consequent}
	default:
		return nil
	}
}

// Walk visits e and every descendant in pre-order, calling visit on each.
// Walk stops early if visit returns false.
func Walk(e *Expression, visit func(*Expression) bool) {
	if e == nil {
		return
	}
	if !visit(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, visit)
	}
}
