// Package normcsp is the canonical intermediate representation the
// Normalizer rewrites a csp.CSP into and the Encoder compiles to CNF.
// It admits exactly three constraint shapes: Boolean clauses, linear
// constraints over norm integers and 0/1 Booleans, and AllDifferent
// over norm integers.
package normcsp

import "fmt"

// NormBoolVar is a dense handle to a Boolean variable in the norm
// IR.
type NormBoolVar int

// NormIntVar is a dense handle to an integer variable in the norm
// IR. Its domain is fixed at creation and stored as the materialized,
// sorted, distinct list of values (rather than the range-list form
// csp.Domain uses), because the Encoder indexes order-encoding bits
// by position in that list.
type NormIntVar int

// Literal is a norm Boolean variable together with a polarity: Var
// alone (Neg == false) or its negation (Neg == true).
type Literal struct {
	Var NormBoolVar
	Neg bool
}

// Lit returns the positive literal of v.
func Lit(v NormBoolVar) Literal { return Literal{Var: v} }

// Not returns the complementary literal.
func (l Literal) Not() Literal { return Literal{Var: l.Var, Neg: !l.Neg} }

func (l Literal) String() string {
	if l.Neg {
		return fmt.Sprintf("~b%d", l.Var)
	}
	return fmt.Sprintf("b%d", l.Var)
}

// Op names the comparison operator of a Linear constraint.
type Op int

const (
	OpEq Op = iota
	OpNe
	OpLe
	OpGe
	OpLt
	OpGt
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	default:
		return "?"
	}
}

// IntTerm is a coefficient applied to a norm integer variable.
type IntTerm struct {
	Var   NormIntVar
	Coeff int32
}

// BoolTerm is a coefficient applied to a norm Boolean literal,
// treated as 0/1.
type BoolTerm struct {
	Lit   Literal
	Coeff int32
}

// Linear is "Σ cᵢ·xᵢ + Σ dⱼ·lⱼ OP K".
type Linear struct {
	IntTerms  []IntTerm
	BoolTerms []BoolTerm
	Op        Op
	K         int32
}

// Constraint is one of ClauseConstraint, LinearConstraint, or
// AllDifferentConstraint — the three shapes NormCSP admits. Closed
// the same way as csp.BoolExpr: isConstraint is unexported so no
// other package may add a fourth shape, but the concrete types are
// exported for destructuring.
type Constraint interface {
	isConstraint()
}

// ClauseConstraint is a disjunction of Booleans literals.
type ClauseConstraint struct{ Lits []Literal }

func (ClauseConstraint) isConstraint() {}

// LinearConstraint wraps a single Linear constraint.
type LinearConstraint struct{ Linear Linear }

func (LinearConstraint) isConstraint() {}

// AllDifferentConstraint asserts pairwise distinctness of Vars.
type AllDifferentConstraint struct{ Vars []NormIntVar }

func (AllDifferentConstraint) isConstraint() {}

// NormCSP is the canonical IR: dense Boolean/integer variable pools,
// each integer variable carrying its materialized domain, plus an
// ordered constraint list. It also tracks the prefix of that list
// already consumed by the Encoder, so Encode can be called
// incrementally as more constraints are appended.
type NormCSP struct {
	numBoolVars   int
	intDomains    [][]int32
	constraints   []Constraint
	encoderCursor int
}

// New returns an empty NormCSP.
func New() *NormCSP {
	return &NormCSP{}
}

// NewBoolVar allocates and returns a fresh norm Boolean variable.
func (n *NormCSP) NewBoolVar() NormBoolVar {
	v := NormBoolVar(n.numBoolVars)
	n.numBoolVars++
	return v
}

// NewIntVar allocates and returns a fresh norm integer variable with
// the given materialized domain (sorted, distinct, non-empty values).
func (n *NormCSP) NewIntVar(domain []int32) NormIntVar {
	v := NormIntVar(len(n.intDomains))
	n.intDomains = append(n.intDomains, append([]int32(nil), domain...))
	return v
}

// NumBoolVars returns the number of norm Boolean variables allocated
// so far.
func (n *NormCSP) NumBoolVars() int { return n.numBoolVars }

// NumIntVars returns the number of norm integer variables allocated
// so far.
func (n *NormCSP) NumIntVars() int { return len(n.intDomains) }

// IntDomain returns the materialized domain of v.
func (n *NormCSP) IntDomain(v NormIntVar) []int32 {
	return n.intDomains[v]
}

// AddClause appends a Boolean clause asserting the disjunction of
// lits.
func (n *NormCSP) AddClause(lits ...Literal) {
	n.constraints = append(n.constraints, ClauseConstraint{Lits: append([]Literal(nil), lits...)})
}

// AddLinear appends a linear constraint.
func (n *NormCSP) AddLinear(l Linear) {
	n.constraints = append(n.constraints, LinearConstraint{Linear: l})
}

// AddAllDifferent appends an AllDifferent constraint over vars.
func (n *NormCSP) AddAllDifferent(vars ...NormIntVar) {
	n.constraints = append(n.constraints, AllDifferentConstraint{Vars: append([]NormIntVar(nil), vars...)})
}

// NumConstraints returns the total number of constraints added so
// far.
func (n *NormCSP) NumConstraints() int { return len(n.constraints) }

// Constraints returns every constraint added so far, in insertion
// order. The returned slice must not be mutated.
func (n *NormCSP) Constraints() []Constraint { return n.constraints }

// EncoderCursor returns the index of the first constraint the Encoder
// has not yet consumed.
func (n *NormCSP) EncoderCursor() int { return n.encoderCursor }

// PendingConstraints returns the constraints from EncoderCursor to
// the end, in insertion order.
func (n *NormCSP) PendingConstraints() []Constraint {
	return n.constraints[n.encoderCursor:]
}

// AdvanceEncoderCursor moves the encoder cursor to i, which must be
// between its current position and NumConstraints inclusive.
func (n *NormCSP) AdvanceEncoderCursor(i int) {
	if i < n.encoderCursor || i > len(n.constraints) {
		panic("normcsp: invalid encoder cursor advance")
	}
	n.encoderCursor = i
}
