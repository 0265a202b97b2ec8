package csp

// Assignment is a proposed (not necessarily total) valuation of the
// Boolean and integer variables of a CSP, used by EvalBoolExpr and
// EvalIntExpr to check a candidate solution directly against a CSP's
// statements, independently of the normalize/encode/solve pipeline.
type Assignment struct {
	bools map[BoolVar]bool
	ints  map[IntVar]int32
}

// NewAssignment returns an empty Assignment.
func NewAssignment() *Assignment {
	return &Assignment{bools: map[BoolVar]bool{}, ints: map[IntVar]int32{}}
}

// SetBool records v = val.
func (a *Assignment) SetBool(v BoolVar, val bool) {
	a.bools[v] = val
}

// SetInt records v = val.
func (a *Assignment) SetInt(v IntVar, val int32) {
	a.ints[v] = val
}

// Bool returns the recorded value of v, or false if unset.
func (a *Assignment) Bool(v BoolVar) bool {
	return a.bools[v]
}

// Int returns the recorded value of v, or 0 if unset.
func (a *Assignment) Int(v IntVar) int32 {
	return a.ints[v]
}

// EvalBoolExpr evaluates e against a. Boolean connectives are
// classical two-valued; Iff is equality on Booleans; Xor is
// inequality; Imp(a,b) equals Or(Not(a), b); IteBool/IteInt require
// the condition to be Boolean and return the matching branch.
func EvalBoolExpr(e BoolExpr, a *Assignment) bool {
	switch e := e.(type) {
	case BoolConst:
		return bool(e)
	case BoolVarRef:
		return a.Bool(e.Var)
	case NotExpr:
		return !EvalBoolExpr(e.X, a)
	case AndExpr:
		for _, x := range e.Xs {
			if !EvalBoolExpr(x, a) {
				return false
			}
		}
		return true
	case OrExpr:
		for _, x := range e.Xs {
			if EvalBoolExpr(x, a) {
				return true
			}
		}
		return false
	case XorExpr:
		return EvalBoolExpr(e.A, a) != EvalBoolExpr(e.B, a)
	case IffExpr:
		return EvalBoolExpr(e.A, a) == EvalBoolExpr(e.B, a)
	case ImpExpr:
		return !EvalBoolExpr(e.A, a) || EvalBoolExpr(e.B, a)
	case CmpExpr:
		return evalCmp(e.Op, EvalIntExpr(e.A, a), EvalIntExpr(e.B, a))
	case IteBoolExpr:
		if EvalBoolExpr(e.Cond, a) {
			return EvalBoolExpr(e.Then, a)
		}
		return EvalBoolExpr(e.Else, a)
	default:
		panic("csp: unknown bool expr type in EvalBoolExpr")
	}
}

func evalCmp(op CmpOp, x, y int32) bool {
	switch op {
	case OpEq:
		return x == y
	case OpNe:
		return x != y
	case OpLe:
		return x <= y
	case OpGe:
		return x >= y
	case OpLt:
		return x < y
	case OpGt:
		return x > y
	default:
		panic("csp: invalid CmpOp in EvalBoolExpr")
	}
}

// EvalIntExpr evaluates e against a. Arithmetic is over ordinary
// (32-bit) integers.
func EvalIntExpr(e IntExpr, a *Assignment) int32 {
	switch e := e.(type) {
	case IntConst:
		return int32(e)
	case IntVarRef:
		return a.Int(e.Var)
	case NegExpr:
		return -EvalIntExpr(e.X, a)
	case SumExpr:
		var sum int32
		for _, t := range e.Terms {
			sum += EvalIntExpr(t, a)
		}
		return sum
	case IteIntExpr:
		if EvalBoolExpr(e.Cond, a) {
			return EvalIntExpr(e.Then, a)
		}
		return EvalIntExpr(e.Else, a)
	default:
		panic("csp: unknown int expr type in EvalIntExpr")
	}
}

// EvalStmt evaluates a Stmt against a, implementing the semantics
// "all-different(xs) is satisfied iff all xs evaluate to pairwise
// distinct integers."
func EvalStmt(s Stmt, a *Assignment) bool {
	switch s := s.(type) {
	case ExprStmt:
		return EvalBoolExpr(s.Expr, a)
	case AllDifferentStmt:
		seen := map[int32]bool{}
		for _, e := range s.Exprs {
			v := EvalIntExpr(e, a)
			if seen[v] {
				return false
			}
			seen[v] = true
		}
		return true
	default:
		panic("csp: unknown stmt type in EvalStmt")
	}
}
