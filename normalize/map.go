// Package normalize lowers a csp.CSP into a normcsp.NormCSP: Boolean
// sub-expressions are Tseitin-lowered to clauses, integer
// sub-expressions are folded into linear combinations, and non-linear
// operators (ite) are lifted behind a fresh norm integer variable and
// a pair of gated linear constraints.
package normalize

import (
	"github.com/semiexp/enigmacsp/csp"
	"github.com/semiexp/enigmacsp/normcsp"
)

// NormalizeMap records the correspondence between csp.CSP variables
// and normcsp.NormCSP variables established by Normalize, plus how far
// through the CSP's statement list Normalize has already walked. It is
// append-only: re-running Normalize after more statements have been
// added to the CSP only processes the new suffix and never revisits
// or invalidates an earlier mapping.
type NormalizeMap struct {
	boolVars map[csp.BoolVar]normcsp.NormBoolVar
	intVars  map[csp.IntVar]normcsp.NormIntVar
	intLo    map[normcsp.NormIntVar]int64
	intHi    map[normcsp.NormIntVar]int64

	trueVar    normcsp.NormBoolVar
	haveTrue   bool
	stmtCursor int
}

// NewNormalizeMap returns an empty NormalizeMap.
func NewNormalizeMap() *NormalizeMap {
	return &NormalizeMap{
		boolVars: map[csp.BoolVar]normcsp.NormBoolVar{},
		intVars:  map[csp.IntVar]normcsp.NormIntVar{},
		intLo:    map[normcsp.NormIntVar]int64{},
		intHi:    map[normcsp.NormIntVar]int64{},
	}
}

// GetBoolVar returns the norm Boolean variable v was mapped to, if
// any. A CSP Boolean variable is mapped lazily, the first time it is
// referenced by a statement Normalize has processed; one never
// referenced by any retained statement has no mapping.
func (nm *NormalizeMap) GetBoolVar(v csp.BoolVar) (normcsp.NormBoolVar, bool) {
	nv, ok := nm.boolVars[v]
	return nv, ok
}

// GetIntVar returns the norm integer variable v was mapped to, if any.
func (nm *NormalizeMap) GetIntVar(v csp.IntVar) (normcsp.NormIntVar, bool) {
	nv, ok := nm.intVars[v]
	return nv, ok
}

func (nm *NormalizeMap) mapBoolVar(norm *normcsp.NormCSP, v csp.BoolVar) normcsp.NormBoolVar {
	if nv, ok := nm.boolVars[v]; ok {
		return nv
	}
	nv := norm.NewBoolVar()
	nm.boolVars[v] = nv
	return nv
}

func (nm *NormalizeMap) mapIntVar(norm *normcsp.NormCSP, c *csp.CSP, v csp.IntVar) normcsp.NormIntVar {
	if nv, ok := nm.intVars[v]; ok {
		return nv
	}
	d := c.IntDomain(v)
	nv := norm.NewIntVar(d.Enumerate())
	nm.intVars[v] = nv
	nm.intLo[nv] = int64(d.LowerBound())
	nm.intHi[nv] = int64(d.UpperBound())
	return nv
}

// freshIntVar allocates a norm integer variable for a materialized
// sub-expression whose value is known to range over [lo, hi], and
// records its bounds for later folds (e.g. an all-different argument
// built from an ite).
func (nm *NormalizeMap) freshIntVar(norm *normcsp.NormCSP, lo, hi int64) normcsp.NormIntVar {
	domain := make([]int32, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		domain = append(domain, int32(v))
	}
	nv := norm.NewIntVar(domain)
	nm.intLo[nv] = lo
	nm.intHi[nv] = hi
	return nv
}

func (nm *NormalizeMap) bounds(v normcsp.NormIntVar) (int64, int64) {
	return nm.intLo[v], nm.intHi[v]
}

// trueLit returns a literal that is unconditionally true, allocating
// and pinning a dedicated norm Boolean the first time it is needed so
// that BoolConst(true)/BoolConst(false) have something to lower to.
func (nm *NormalizeMap) trueLit(norm *normcsp.NormCSP) normcsp.Literal {
	if !nm.haveTrue {
		nm.trueVar = norm.NewBoolVar()
		nm.haveTrue = true
		norm.AddClause(normcsp.Lit(nm.trueVar))
	}
	return normcsp.Lit(nm.trueVar)
}
