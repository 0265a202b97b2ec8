package csp

// BoolExpr is a node in a Boolean expression tree: a constant, a
// variable reference, one of the classical connectives, a comparison
// between two IntExprs, or a conditional returning a Boolean.
//
// The set of implementations is closed: isBoolExpr is unexported, so
// no package outside csp can add a new node kind. The concrete struct
// types themselves are exported so that other packages in this module
// (normalize, in particular) can destructure them with a type switch;
// sealing only prevents new variants, not inspection of existing ones.
type BoolExpr interface {
	isBoolExpr()
}

// IntExpr is a node in an integer expression tree: a constant, a
// variable reference, negation, a sum of terms, or a conditional
// returning an integer. Closed the same way as BoolExpr.
type IntExpr interface {
	isIntExpr()
}

// BoolConst is a literal Boolean value.
type BoolConst bool

func (BoolConst) isBoolExpr() {}

// Bool returns the constant Boolean expression b.
func Bool(b bool) BoolExpr { return BoolConst(b) }

// BoolVarRef references a BoolVar.
type BoolVarRef struct{ Var BoolVar }

func (BoolVarRef) isBoolExpr() {}

// Expr returns the BoolExpr referencing v.
func (v BoolVar) Expr() BoolExpr { return BoolVarRef{v} }

// NotExpr is the negation of X.
type NotExpr struct{ X BoolExpr }

func (NotExpr) isBoolExpr() {}

// Not returns the negation of x.
func Not(x BoolExpr) BoolExpr { return NotExpr{x} }

// AndExpr is the conjunction of Xs.
type AndExpr struct{ Xs []BoolExpr }

func (AndExpr) isBoolExpr() {}

// And returns the conjunction of xs. And() with no arguments is the
// constant true.
func And(xs ...BoolExpr) BoolExpr {
	if len(xs) == 0 {
		return Bool(true)
	}
	return AndExpr{Xs: append([]BoolExpr(nil), xs...)}
}

// OrExpr is the disjunction of Xs.
type OrExpr struct{ Xs []BoolExpr }

func (OrExpr) isBoolExpr() {}

// Or returns the disjunction of xs. Or() with no arguments is the
// constant false.
func Or(xs ...BoolExpr) BoolExpr {
	if len(xs) == 0 {
		return Bool(false)
	}
	return OrExpr{Xs: append([]BoolExpr(nil), xs...)}
}

// XorExpr is true iff exactly one of A, B is true.
type XorExpr struct{ A, B BoolExpr }

func (XorExpr) isBoolExpr() {}

// Xor returns an expression that is true iff exactly one of a, b is
// true.
func Xor(a, b BoolExpr) BoolExpr { return XorExpr{a, b} }

// IffExpr is true iff A and B have the same truth value.
type IffExpr struct{ A, B BoolExpr }

func (IffExpr) isBoolExpr() {}

// Iff returns an expression that is true iff a and b have the same
// truth value.
func Iff(a, b BoolExpr) BoolExpr { return IffExpr{a, b} }

// ImpExpr is "A implies B".
type ImpExpr struct{ A, B BoolExpr }

func (ImpExpr) isBoolExpr() {}

// Imp returns "a implies b", equivalent to Or(Not(a), b).
func Imp(a, b BoolExpr) BoolExpr { return ImpExpr{a, b} }

// CmpOp names a comparison operator between two IntExprs.
type CmpOp int

const (
	OpEq CmpOp = iota
	OpNe
	OpLe
	OpGe
	OpLt
	OpGt
)

func (op CmpOp) String() string {
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

// Negate returns the operator satisfied exactly when op is not.
func (op CmpOp) Negate() CmpOp {
	switch op {
	case OpEq:
		return OpNe
	case OpNe:
		return OpEq
	case OpLe:
		return OpGt
	case OpGe:
		return OpLt
	case OpLt:
		return OpGe
	case OpGt:
		return OpLe
	default:
		panic("csp: invalid CmpOp")
	}
}

// CmpExpr is "A Op B".
type CmpExpr struct {
	Op   CmpOp
	A, B IntExpr
}

func (CmpExpr) isBoolExpr() {}

// Cmp returns the Boolean expression "a op b".
func Cmp(op CmpOp, a, b IntExpr) BoolExpr { return CmpExpr{op, a, b} }

// Eq, Ne, Lt, Le, Gt, Ge are convenience wrappers around Cmp.
func Eq(a, b IntExpr) BoolExpr { return Cmp(OpEq, a, b) }
func Ne(a, b IntExpr) BoolExpr { return Cmp(OpNe, a, b) }
func Lt(a, b IntExpr) BoolExpr { return Cmp(OpLt, a, b) }
func Le(a, b IntExpr) BoolExpr { return Cmp(OpLe, a, b) }
func Gt(a, b IntExpr) BoolExpr { return Cmp(OpGt, a, b) }
func Ge(a, b IntExpr) BoolExpr { return Cmp(OpGe, a, b) }

// IteBoolExpr returns Then if Cond evaluates true, else Else.
type IteBoolExpr struct {
	Cond       BoolExpr
	Then, Else BoolExpr
}

func (IteBoolExpr) isBoolExpr() {}

// IteBool returns then if cond evaluates true, else els.
func IteBool(cond, then, els BoolExpr) BoolExpr {
	return IteBoolExpr{Cond: cond, Then: then, Else: els}
}

// IntConst is a literal integer value.
type IntConst int32

func (IntConst) isIntExpr() {}

// Int returns the constant integer expression v.
func Int(v int32) IntExpr { return IntConst(v) }

// IntVarRef references an IntVar.
type IntVarRef struct{ Var IntVar }

func (IntVarRef) isIntExpr() {}

// Expr returns the IntExpr referencing v.
func (v IntVar) Expr() IntExpr { return IntVarRef{v} }

// NegExpr is the negation of X.
type NegExpr struct{ X IntExpr }

func (NegExpr) isIntExpr() {}

// NegInt returns the negation of x.
func NegInt(x IntExpr) IntExpr { return NegExpr{x} }

// SumExpr is the sum of Terms.
type SumExpr struct{ Terms []IntExpr }

func (SumExpr) isIntExpr() {}

// Sum returns the sum of terms. Sum() with no arguments is the
// constant 0.
func Sum(terms ...IntExpr) IntExpr {
	if len(terms) == 0 {
		return Int(0)
	}
	return SumExpr{Terms: append([]IntExpr(nil), terms...)}
}

// Sub returns a - b.
func Sub(a, b IntExpr) IntExpr {
	return Sum(a, NegInt(b))
}

// IteIntExpr returns Then if Cond evaluates true, else Else.
type IteIntExpr struct {
	Cond       BoolExpr
	Then, Else IntExpr
}

func (IteIntExpr) isIntExpr() {}

// IteInt returns then if cond evaluates true, else els.
func IteInt(cond BoolExpr, then, els IntExpr) IntExpr {
	return IteIntExpr{Cond: cond, Then: then, Else: els}
}

// AndOf folds xs into a single And expression. Convenient when a
// caller accumulates conjuncts in a slice before combining them.
func AndOf(xs ...BoolExpr) BoolExpr { return And(xs...) }

// OrOf folds xs into a single Or expression.
func OrOf(xs ...BoolExpr) BoolExpr { return Or(xs...) }

// SumOf folds xs into a single Sum expression.
func SumOf(xs ...IntExpr) IntExpr { return Sum(xs...) }
