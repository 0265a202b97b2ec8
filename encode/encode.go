package encode

import (
	"fmt"

	"github.com/semiexp/enigmacsp/normcsp"
	"github.com/semiexp/enigmacsp/sat"
)

// Encode compiles every constraint norm has accumulated since the last
// call (or since em's creation) into clauses over s, advancing norm's
// encoder cursor as it goes. It is safe to call repeatedly as norm
// grows, mirroring Normalize's own incremental contract.
func Encode(norm *normcsp.NormCSP, s *sat.Solver, em *EncodeMap) {
	e := &encoder{norm: norm, s: s, em: em}
	pending := norm.PendingConstraints()
	for _, ctr := range pending {
		e.encodeConstraint(ctr)
	}
	norm.AdvanceEncoderCursor(norm.NumConstraints())
}

type encoder struct {
	norm *normcsp.NormCSP
	s    *sat.Solver
	em   *EncodeMap
}

func (e *encoder) encodeConstraint(ctr normcsp.Constraint) {
	switch c := ctr.(type) {
	case normcsp.ClauseConstraint:
		e.encodeClause(c)
	case normcsp.LinearConstraint:
		e.encodeLinear(c.Linear)
	case normcsp.AllDifferentConstraint:
		e.encodeAllDifferent(c.Vars)
	default:
		panic("encode: unknown constraint type")
	}
}

func (e *encoder) encodeClause(c normcsp.ClauseConstraint) {
	clause := make(sat.Clause, len(c.Lits))
	for i, l := range c.Lits {
		clause[i] = e.boolLit(l)
	}
	e.addClause(clause)
}

// boolLit returns the SAT literal for a norm Boolean literal, mapping
// its underlying variable to a fresh SAT variable on first reference.
func (e *encoder) boolLit(l normcsp.Literal) sat.Lit {
	lit, ok := e.em.boolLit[l.Var]
	if !ok {
		lit = sat.PosLit(e.s.NewVar())
		e.em.boolLit[l.Var] = lit
	}
	if l.Neg {
		return lit.Not()
	}
	return lit
}

// intBits returns the order-encoding bits for a norm integer variable,
// allocating them and asserting the monotone chain axioms on first
// reference. A singleton domain needs no bits at all: its value is
// fixed, so every level built from it is a bare constant.
func (e *encoder) intBits(v normcsp.NormIntVar) []sat.Var {
	if bits, ok := e.em.intBits[v]; ok {
		return bits
	}
	domain := e.norm.IntDomain(v)
	bits := make([]sat.Var, len(domain)-1)
	for i := range bits {
		bits[i] = e.s.NewVar()
	}
	for i := 1; i < len(bits); i++ {
		// bits[i] (value >= domain[i+1]) implies bits[i-1] (value >= domain[i]).
		e.addClause(sat.Clause{sat.NegLit(bits[i]), sat.PosLit(bits[i-1])})
	}
	e.em.intKind[v] = OrderEncoding
	e.em.intBits[v] = bits
	return bits
}

func (e *encoder) addClause(c sat.Clause) {
	if err := e.s.AddClause(c); err != nil {
		panic(fmt.Sprintf("encode: %v", err))
	}
}

// buildLevels returns the ladder for sign * (intTerms + boolTerms),
// skipping any term whose effective coefficient is zero.
func (e *encoder) buildLevels(intTerms []normcsp.IntTerm, boolTerms []normcsp.BoolTerm, sign int32) [][]level {
	levelTerms := make([][]level, 0, len(intTerms)+len(boolTerms))
	for _, t := range intTerms {
		coeff := sign * t.Coeff
		if coeff == 0 {
			continue
		}
		domain := e.norm.IntDomain(t.Var)
		bits := e.intBits(t.Var)
		levelTerms = append(levelTerms, buildIntLevels(domain, bits, coeff))
	}
	for _, t := range boolTerms {
		coeff := sign * t.Coeff
		if coeff == 0 {
			continue
		}
		lit := e.boolLit(t.Lit)
		levelTerms = append(levelTerms, buildBoolLevels(lit, coeff))
	}
	return levelTerms
}

// encodeLe asserts Σ terms <= k, gated by gate if non-nil.
func (e *encoder) encodeLe(intTerms []normcsp.IntTerm, boolTerms []normcsp.BoolTerm, k int64, gate *sat.Lit) {
	cutsLe(e.s, e.buildLevels(intTerms, boolTerms, 1), k, gate)
}

// encodeGe asserts Σ terms >= k, gated by gate if non-nil, by negating
// every coefficient and the bound: Σ -terms <= -k.
func (e *encoder) encodeGe(intTerms []normcsp.IntTerm, boolTerms []normcsp.BoolTerm, k int64, gate *sat.Lit) {
	cutsLe(e.s, e.buildLevels(intTerms, boolTerms, -1), -k, gate)
}

func (e *encoder) encodeLinear(l normcsp.Linear) {
	k := int64(l.K)
	switch l.Op {
	case normcsp.OpLe:
		e.encodeLe(l.IntTerms, l.BoolTerms, k, nil)
	case normcsp.OpGe:
		e.encodeGe(l.IntTerms, l.BoolTerms, k, nil)
	case normcsp.OpLt:
		e.encodeLe(l.IntTerms, l.BoolTerms, k-1, nil)
	case normcsp.OpGt:
		e.encodeGe(l.IntTerms, l.BoolTerms, k+1, nil)
	case normcsp.OpEq:
		e.encodeLe(l.IntTerms, l.BoolTerms, k, nil)
		e.encodeGe(l.IntTerms, l.BoolTerms, k, nil)
	case normcsp.OpNe:
		e.encodeNe(l.IntTerms, l.BoolTerms, k)
	default:
		panic("encode: unknown linear operator")
	}
}

// encodeNe asserts Σ terms != k. A fresh, otherwise-unconstrained
// variable t splits the assertion into its two only possible
// resolutions: t true forces the sum below k, t false forces it
// above — whichever actually holds for the real sum lets the solver
// pick a consistent value for t, so no clause tying t to anything
// else is needed.
func (e *encoder) encodeNe(intTerms []normcsp.IntTerm, boolTerms []normcsp.BoolTerm, k int64) {
	t := sat.PosLit(e.s.NewVar())
	tn := t.Not()
	e.encodeLe(intTerms, boolTerms, k-1, &t)
	e.encodeGe(intTerms, boolTerms, k+1, &tn)
}

// encodeAllDifferent decomposes pairwise distinctness into O(n^2)
// binary disequality constraints xi - xj != 0.
func (e *encoder) encodeAllDifferent(vars []normcsp.NormIntVar) {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			terms := []normcsp.IntTerm{
				{Var: vars[i], Coeff: 1},
				{Var: vars[j], Coeff: -1},
			}
			e.encodeNe(terms, nil, 0)
		}
	}
}
