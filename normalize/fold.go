package normalize

import (
	"sort"

	"github.com/semiexp/enigmacsp/csp"
	"github.com/semiexp/enigmacsp/normcsp"
)

// linComb is an affine combination Σ cᵢ·xᵢ + Σ dⱼ·lⱼ + const over norm
// integer variables and norm Boolean literals (the latter read as
// 0/1), together with a conservative [lo, hi] range for its value.
// IntExpr folding accumulates into this shape; the only node that
// cannot be folded directly is ite, which is lifted behind a fresh
// norm integer variable first.
type linComb struct {
	ints   map[normcsp.NormIntVar]int32
	bools  map[normcsp.Literal]int32
	const_ int32
	lo, hi int64
}

func newLinComb() linComb {
	return linComb{ints: map[normcsp.NormIntVar]int32{}, bools: map[normcsp.Literal]int32{}}
}

func (l linComb) negate() linComb {
	out := newLinComb()
	for v, c := range l.ints {
		out.ints[v] = -c
	}
	for b, c := range l.bools {
		out.bools[b] = -c
	}
	out.const_ = -l.const_
	out.lo, out.hi = -l.hi, -l.lo
	return out
}

func (l linComb) scale(k int32) linComb {
	out := newLinComb()
	for v, c := range l.ints {
		out.ints[v] = c * k
	}
	for b, c := range l.bools {
		out.bools[b] = c * k
	}
	out.const_ = l.const_ * k
	if k >= 0 {
		out.lo, out.hi = l.lo*int64(k), l.hi*int64(k)
	} else {
		out.lo, out.hi = l.hi*int64(k), l.lo*int64(k)
	}
	return out
}

func addInto(dst *linComb, src linComb) {
	for v, c := range src.ints {
		dst.ints[v] += c
	}
	for b, c := range src.bools {
		dst.bools[b] += c
	}
	dst.const_ += src.const_
	dst.lo += src.lo
	dst.hi += src.hi
}

// orderedIntTerms returns l's integer terms sorted by variable index,
// so emitted constraints are a deterministic function of variable
// allocation order rather than Go's randomized map iteration.
func (l linComb) orderedIntTerms() []normcsp.IntTerm {
	terms := make([]normcsp.IntTerm, 0, len(l.ints))
	for v, c := range l.ints {
		if c != 0 {
			terms = append(terms, normcsp.IntTerm{Var: v, Coeff: c})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Var < terms[j].Var })
	return terms
}

func (l linComb) orderedBoolTerms() []normcsp.BoolTerm {
	terms := make([]normcsp.BoolTerm, 0, len(l.bools))
	for b, c := range l.bools {
		if c != 0 {
			terms = append(terms, normcsp.BoolTerm{Lit: b, Coeff: c})
		}
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Lit.Var != terms[j].Lit.Var {
			return terms[i].Lit.Var < terms[j].Lit.Var
		}
		return !terms[i].Lit.Neg && terms[j].Lit.Neg
	})
	return terms
}

// foldInt reduces an IntExpr to a linComb. ite is the only node that
// cannot be folded in place: it is lifted into a fresh norm integer
// variable pinned by two gated linear constraints (see liftIte), and
// folding returns a trivial reference to that variable.
func (st *normalizer) foldInt(e csp.IntExpr) linComb {
	switch e := e.(type) {
	case csp.IntConst:
		l := newLinComb()
		l.const_ = int32(e)
		l.lo, l.hi = int64(e), int64(e)
		return l
	case csp.IntVarRef:
		nv := st.nm.mapIntVar(st.norm, st.c, e.Var)
		lo, hi := st.nm.bounds(nv)
		l := newLinComb()
		l.ints[nv] = 1
		l.lo, l.hi = lo, hi
		return l
	case csp.NegExpr:
		return st.foldInt(e.X).negate()
	case csp.SumExpr:
		out := newLinComb()
		for _, t := range e.Terms {
			addInto(&out, st.foldInt(t))
		}
		return out
	case csp.IteIntExpr:
		v := st.liftIte(e)
		lo, hi := st.nm.bounds(v)
		l := newLinComb()
		l.ints[v] = 1
		l.lo, l.hi = lo, hi
		return l
	default:
		panic("normalize: unknown int expr type")
	}
}

// liftIte allocates a fresh norm integer variable v whose domain
// spans the union of the then/else branches' ranges, and asserts
// cond => v = then and !cond => v = else as gated linear
// constraints, exactly mirroring how a reified comparison is gated
// (see reify.go) rather than introducing a separate mechanism.
func (st *normalizer) liftIte(e csp.IteIntExpr) normcsp.NormIntVar {
	thenC := st.foldInt(e.Then)
	elseC := st.foldInt(e.Else)
	lo := thenC.lo
	if elseC.lo < lo {
		lo = elseC.lo
	}
	hi := thenC.hi
	if elseC.hi > hi {
		hi = elseC.hi
	}
	v := st.nm.freshIntVar(st.norm, lo, hi)

	cond := st.lowerBool(e.Cond)

	vRef := newLinComb()
	vRef.ints[v] = 1
	vRef.lo, vRef.hi = lo, hi

	diffThen := newLinComb()
	addInto(&diffThen, vRef)
	addInto(&diffThen, thenC.negate())
	st.assertImpliesEq(cond, diffThen)

	diffElse := newLinComb()
	addInto(&diffElse, vRef)
	addInto(&diffElse, elseC.negate())
	st.assertImpliesEq(cond.Not(), diffElse)

	return v
}

// internIntVar reduces e to a single norm integer variable, as
// required by AllDifferent. A bare variable reference needs no new
// variable, and neither does an expression that folds to a single
// variable with coefficient 1 and no constant (such as an ite, whose
// lifted variable is returned directly); anything else (a constant,
// a sum, or a negation) is pinned to a fresh norm integer variable via
// an unconditional linear equality.
func (st *normalizer) internIntVar(e csp.IntExpr) normcsp.NormIntVar {
	if ref, ok := e.(csp.IntVarRef); ok {
		return st.nm.mapIntVar(st.norm, st.c, ref.Var)
	}
	l := st.foldInt(e)
	if len(l.bools) == 0 && l.const_ == 0 && len(l.ints) == 1 {
		for v, c := range l.ints {
			if c == 1 {
				return v
			}
		}
	}
	v := st.nm.freshIntVar(st.norm, l.lo, l.hi)
	diff := newLinComb()
	diff.ints[v] = 1
	diff.lo, diff.hi = l.lo, l.hi
	addInto(&diff, l.negate())
	st.norm.AddLinear(normcsp.Linear{
		IntTerms:  diff.orderedIntTerms(),
		BoolTerms: diff.orderedBoolTerms(),
		Op:        normcsp.OpEq,
		K:         -diff.const_,
	})
	return v
}
