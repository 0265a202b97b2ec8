package normalize

import "github.com/semiexp/enigmacsp/normcsp"

// Reification of a linear comparison to a fresh literal uses the
// standard bounded (big-M) gating trick: since every norm integer
// variable carries a finite domain, l's value range [lo, hi] gives an
// exact, not merely heuristic, bound to gate on. This is the same
// mechanism liftIte uses to gate "cond => v = then" and "!cond => v =
// else", so CmpExpr reification and ite lifting share one code path
// instead of two.

// assertImpliesLe asserts: if gate holds, l's value is <= 0.
func (st *normalizer) assertImpliesLe(gate normcsp.Literal, l linComb) {
	if l.hi <= 0 {
		return
	}
	if l.lo > 0 {
		st.norm.AddClause(gate.Not())
		return
	}
	m := l.hi
	lc := cloneLinComb(l)
	lc.bools[gate] += int32(m)
	st.norm.AddLinear(normcsp.Linear{
		IntTerms:  lc.orderedIntTerms(),
		BoolTerms: lc.orderedBoolTerms(),
		Op:        normcsp.OpLe,
		K:         int32(m) - l.const_,
	})
}

// assertImpliesGe asserts: if gate holds, l's value is >= 0.
func (st *normalizer) assertImpliesGe(gate normcsp.Literal, l linComb) {
	if l.lo >= 0 {
		return
	}
	if l.hi < 0 {
		st.norm.AddClause(gate.Not())
		return
	}
	m := -l.lo
	lc := cloneLinComb(l)
	lc.bools[gate] += int32(-m)
	st.norm.AddLinear(normcsp.Linear{
		IntTerms:  lc.orderedIntTerms(),
		BoolTerms: lc.orderedBoolTerms(),
		Op:        normcsp.OpGe,
		K:         int32(-m) - l.const_,
	})
}

// assertImpliesEq asserts: if gate holds, l's value is == 0.
func (st *normalizer) assertImpliesEq(gate normcsp.Literal, l linComb) {
	st.assertImpliesLe(gate, l)
	st.assertImpliesGe(gate, l)
}

func cloneLinComb(l linComb) linComb {
	out := newLinComb()
	for v, c := range l.ints {
		out.ints[v] = c
	}
	for b, c := range l.bools {
		out.bools[b] = c
	}
	out.const_, out.lo, out.hi = l.const_, l.lo, l.hi
	return out
}

// reifyLe returns a literal t with t <-> (l's value <= 0).
func (st *normalizer) reifyLe(l linComb) normcsp.Literal {
	if l.hi <= 0 {
		return st.nm.trueLit(st.norm)
	}
	if l.lo > 0 {
		return st.nm.trueLit(st.norm).Not()
	}
	t := st.norm.NewBoolVar()
	lit := normcsp.Lit(t)
	st.assertImpliesLe(lit, l)

	shifted := cloneLinComb(l)
	shifted.const_--
	shifted.lo--
	shifted.hi--
	st.assertImpliesGe(lit.Not(), shifted)
	return lit
}

// reifyGe returns a literal t with t <-> (l's value >= 0).
func (st *normalizer) reifyGe(l linComb) normcsp.Literal {
	return st.reifyLe(l.negate())
}

// reifyEq returns a literal t with t <-> (l's value == 0), built as
// the conjunction of the <= 0 and >= 0 reifications.
func (st *normalizer) reifyEq(l linComb) normcsp.Literal {
	le := st.reifyLe(l)
	ge := st.reifyGe(l)
	return st.lowerAnd([]normcsp.Literal{le, ge})
}
