package normalize

import (
	"github.com/semiexp/enigmacsp/csp"
	"github.com/semiexp/enigmacsp/normcsp"
)

// normalizer carries the three pieces of state a single Normalize
// call threads through: the CSP being read, the NormCSP being built,
// and the map recording the correspondence between them.
type normalizer struct {
	c    *csp.CSP
	norm *normcsp.NormCSP
	nm   *NormalizeMap
}

// Normalize walks the statements nm has not yet processed and appends
// their normalized form to norm. It is safe to call repeatedly as c
// grows: nm's stmtCursor ensures already-normalized statements are
// never revisited, and bool/int variable mappings are append-only, so
// a previously normalized prefix of c is left completely undisturbed.
//
// c is assumed well-formed: csp.CSP.AddStmt/AddExpr already reject
// out-of-range variable references and under-sized all-different
// argument lists at construction time, so there is nothing left for
// Normalize itself to fail on.
func Normalize(c *csp.CSP, norm *normcsp.NormCSP, nm *NormalizeMap) {
	st := &normalizer{c: c, norm: norm, nm: nm}
	stmts := c.Stmts()
	for i := nm.stmtCursor; i < len(stmts); i++ {
		st.normalizeStmt(stmts[i])
	}
	nm.stmtCursor = len(stmts)
}

func (st *normalizer) normalizeStmt(s csp.Stmt) {
	switch s := s.(type) {
	case csp.ExprStmt:
		st.assertTrue(s.Expr)
	case csp.AllDifferentStmt:
		vars := make([]normcsp.NormIntVar, len(s.Exprs))
		for i, e := range s.Exprs {
			vars[i] = st.internIntVar(e)
		}
		st.norm.AddAllDifferent(vars...)
	default:
		panic("normalize: unknown statement type")
	}
}

// assertTrue asserts e unconditionally. And is flattened recursively
// (so a top-level conjunction of clauses produces exactly those
// clauses, with no Tseitin variable in between), Or becomes a single
// clause directly, a comparison becomes one unconditional linear
// constraint (assertLinearCmp), and a constant is asserted through the
// pinned true literal; anything else falls back to lowering e to a
// literal and asserting it with a unit clause.
func (st *normalizer) assertTrue(e csp.BoolExpr) {
	switch e := e.(type) {
	case csp.BoolConst:
		if bool(e) {
			st.nm.trueLit(st.norm)
		} else {
			st.norm.AddClause(st.nm.trueLit(st.norm).Not())
		}
	case csp.AndExpr:
		for _, x := range e.Xs {
			st.assertTrue(x)
		}
	case csp.OrExpr:
		lits := make([]normcsp.Literal, len(e.Xs))
		for i, x := range e.Xs {
			lits[i] = st.lowerBool(x)
		}
		st.norm.AddClause(lits...)
	case csp.CmpExpr:
		st.assertLinearCmp(e.Op, e.A, e.B)
	default:
		st.norm.AddClause(st.lowerBool(e))
	}
}

// assertLinearCmp asserts a OP b unconditionally. NormCSP's Linear
// shape takes all six comparison kinds directly, so the unconditional
// case needs no auxiliary variable, unlike a comparison that must be
// reified because it appears nested under a connective.
func (st *normalizer) assertLinearCmp(op csp.CmpOp, a, b csp.IntExpr) {
	d := st.diff(a, b)
	switch op {
	case csp.OpLe:
		st.addUnconditional(d, normcsp.OpLe)
	case csp.OpGe:
		st.addUnconditional(d, normcsp.OpGe)
	case csp.OpLt:
		d.const_++
		st.addUnconditional(d, normcsp.OpLe)
	case csp.OpGt:
		d.const_--
		st.addUnconditional(d, normcsp.OpGe)
	case csp.OpEq:
		st.addUnconditional(d, normcsp.OpEq)
	case csp.OpNe:
		st.addUnconditional(d, normcsp.OpNe)
	default:
		panic("normalize: unknown CmpOp")
	}
}

func (st *normalizer) addUnconditional(d linComb, op normcsp.Op) {
	st.norm.AddLinear(normcsp.Linear{
		IntTerms:  d.orderedIntTerms(),
		BoolTerms: d.orderedBoolTerms(),
		Op:        op,
		K:         -d.const_,
	})
}

// diff folds a - b into a single linComb.
func (st *normalizer) diff(a, b csp.IntExpr) linComb {
	d := st.foldInt(a)
	addInto(&d, st.foldInt(b).negate())
	return d
}

// lowerBool lowers e to a literal representing its truth value,
// allocating a fresh norm Boolean and Tseitin clauses for any
// non-atomic node. Negation is absorbed into the returned literal's
// polarity rather than spent on a fresh variable.
func (st *normalizer) lowerBool(e csp.BoolExpr) normcsp.Literal {
	switch e := e.(type) {
	case csp.BoolConst:
		if bool(e) {
			return st.nm.trueLit(st.norm)
		}
		return st.nm.trueLit(st.norm).Not()
	case csp.BoolVarRef:
		return normcsp.Lit(st.nm.mapBoolVar(st.norm, e.Var))
	case csp.NotExpr:
		return st.lowerBool(e.X).Not()
	case csp.AndExpr:
		lits := make([]normcsp.Literal, len(e.Xs))
		for i, x := range e.Xs {
			lits[i] = st.lowerBool(x)
		}
		return st.lowerAnd(lits)
	case csp.OrExpr:
		lits := make([]normcsp.Literal, len(e.Xs))
		for i, x := range e.Xs {
			lits[i] = st.lowerBool(x)
		}
		return st.lowerOr(lits)
	case csp.XorExpr:
		a, b := st.lowerBool(e.A), st.lowerBool(e.B)
		t := st.norm.NewBoolVar()
		lit := normcsp.Lit(t)
		st.norm.AddClause(lit.Not(), a, b)
		st.norm.AddClause(lit.Not(), a.Not(), b.Not())
		st.norm.AddClause(lit, a.Not(), b)
		st.norm.AddClause(lit, a, b.Not())
		return lit
	case csp.IffExpr:
		a, b := st.lowerBool(e.A), st.lowerBool(e.B)
		t := st.norm.NewBoolVar()
		lit := normcsp.Lit(t)
		st.norm.AddClause(lit.Not(), a.Not(), b)
		st.norm.AddClause(lit.Not(), a, b.Not())
		st.norm.AddClause(lit, a, b)
		st.norm.AddClause(lit, a.Not(), b.Not())
		return lit
	case csp.ImpExpr:
		a, b := st.lowerBool(e.A), st.lowerBool(e.B)
		t := st.norm.NewBoolVar()
		lit := normcsp.Lit(t)
		st.norm.AddClause(lit.Not(), a.Not(), b)
		st.norm.AddClause(lit, a)
		st.norm.AddClause(lit, b.Not())
		return lit
	case csp.CmpExpr:
		return st.lowerCmp(e)
	case csp.IteBoolExpr:
		c := st.lowerBool(e.Cond)
		a := st.lowerBool(e.Then)
		b := st.lowerBool(e.Else)
		t := st.norm.NewBoolVar()
		lit := normcsp.Lit(t)
		st.norm.AddClause(lit.Not(), c.Not(), a)
		st.norm.AddClause(lit.Not(), c, b)
		st.norm.AddClause(lit, c.Not(), a.Not())
		st.norm.AddClause(lit, c, b.Not())
		return lit
	default:
		panic("normalize: unknown bool expr type")
	}
}

func (st *normalizer) lowerCmp(e csp.CmpExpr) normcsp.Literal {
	d := st.diff(e.A, e.B)
	switch e.Op {
	case csp.OpLe:
		return st.reifyLe(d)
	case csp.OpGe:
		return st.reifyGe(d)
	case csp.OpLt:
		d.const_++
		d.lo++
		d.hi++
		return st.reifyLe(d)
	case csp.OpGt:
		d.const_--
		d.lo--
		d.hi--
		return st.reifyGe(d)
	case csp.OpEq:
		return st.reifyEq(d)
	case csp.OpNe:
		return st.reifyEq(d).Not()
	default:
		panic("normalize: unknown CmpOp")
	}
}

// lowerAnd returns a literal t <-> (all of lits are true).
func (st *normalizer) lowerAnd(lits []normcsp.Literal) normcsp.Literal {
	t := st.norm.NewBoolVar()
	lit := normcsp.Lit(t)
	neg := make([]normcsp.Literal, 0, len(lits)+1)
	for _, l := range lits {
		st.norm.AddClause(lit.Not(), l)
		neg = append(neg, l.Not())
	}
	neg = append(neg, lit)
	st.norm.AddClause(neg...)
	return lit
}

// lowerOr returns a literal t <-> (any of lits is true).
func (st *normalizer) lowerOr(lits []normcsp.Literal) normcsp.Literal {
	t := st.norm.NewBoolVar()
	lit := normcsp.Lit(t)
	pos := make([]normcsp.Literal, 0, len(lits)+1)
	for _, l := range lits {
		st.norm.AddClause(lit, l.Not())
		pos = append(pos, l)
	}
	pos = append(pos, lit.Not())
	st.norm.AddClause(pos...)
	return lit
}
