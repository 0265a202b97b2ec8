// Package sat is a thin facade over a CDCL SAT back-end. It exposes the
// interface described by the engine's SAT layer: allocate variables, add
// clauses, solve (optionally under a set of assumed literals), and read
// back a total assignment. Callers outside this package never see the
// underlying solver's own types.
package sat

import "fmt"

// Var is a dense, non-negative index identifying a Boolean variable
// allocated by a Solver. Vars are numbered in allocation order.
type Var int

// Lit is a (Var, polarity) pair: the variable together with whether it
// appears negated.
type Lit struct {
	v   Var
	neg bool
}

// PosLit returns the positive literal of v.
func PosLit(v Var) Lit {
	return Lit{v: v}
}

// NegLit returns the negative literal of v.
func NegLit(v Var) Lit {
	return Lit{v: v, neg: true}
}

// Var returns the variable underlying the receiver.
func (m Lit) Var() Var {
	return m.v
}

// Negated reports whether the receiver is the negative literal of its
// variable.
func (m Lit) Negated() bool {
	return m.neg
}

// Not returns the complementary literal.
func (m Lit) Not() Lit {
	return Lit{v: m.v, neg: !m.neg}
}

func (m Lit) String() string {
	if m.neg {
		return fmt.Sprintf("-x%d", m.v)
	}
	return fmt.Sprintf("x%d", m.v)
}

// Clause is an unordered, non-empty disjunction of literals. A Clause
// with no literals is the contradiction: adding one renders the
// instance unsatisfiable.
type Clause []Lit
