package csp

// BoolVar is an opaque, stable handle to a Boolean variable. Once
// returned by (*CSP).NewBoolVar, it is valid for the lifetime of the
// CSP (and of any Integrator built on top of it).
type BoolVar int

// IntVar is an opaque, stable handle to an integer variable with an
// associated Domain, fixed at creation time.
type IntVar int

// CSP is the user-facing intermediate representation: an ordered list
// of Boolean and integer variables plus an ordered list of
// statements. Statements may only reference variables already
// registered with this CSP.
type CSP struct {
	boolVars   int
	intDomains []Domain
	stmts      []Stmt
}

// New returns an empty CSP.
func New() *CSP {
	return &CSP{}
}

// NewBoolVar allocates and returns a fresh Boolean variable.
func (c *CSP) NewBoolVar() BoolVar {
	v := BoolVar(c.boolVars)
	c.boolVars++
	return v
}

// NewIntVar allocates and returns a fresh integer variable with the
// given domain. It is a ConstructionError for d to be the empty
// (zero) Domain.
func (c *CSP) NewIntVar(d Domain) (IntVar, error) {
	if d.Size() == 0 {
		return 0, errorf("new_int_var: empty domain")
	}
	v := IntVar(len(c.intDomains))
	c.intDomains = append(c.intDomains, d)
	return v, nil
}

// NumBoolVars returns the number of Boolean variables allocated so
// far.
func (c *CSP) NumBoolVars() int { return c.boolVars }

// NumIntVars returns the number of integer variables allocated so
// far.
func (c *CSP) NumIntVars() int { return len(c.intDomains) }

// IntDomain returns the domain associated with v. Panics if v was not
// allocated by c; callers are expected to only pass handles returned
// by c.NewIntVar.
func (c *CSP) IntDomain(v IntVar) Domain {
	return c.intDomains[v]
}

// Stmts returns the statements added to c so far, in insertion order.
// The returned slice must not be mutated.
func (c *CSP) Stmts() []Stmt {
	return c.stmts
}

// AddExpr is shorthand for AddStmt(AsExprStmt(e)).
func (c *CSP) AddExpr(e BoolExpr) error {
	return c.AddStmt(AsExprStmt(e))
}

// AddStmt appends s to the CSP's statement list. It does not solve
// anything. Every variable s references must already have been
// returned by NewBoolVar/NewIntVar on this CSP, and every
// AllDifferentStmt must contain at least two expressions; violations
// are reported as a ConstructionError and s is not appended.
func (c *CSP) AddStmt(s Stmt) error {
	if err := c.validateStmt(s); err != nil {
		return err
	}
	c.stmts = append(c.stmts, s)
	return nil
}

func (c *CSP) validateStmt(s Stmt) error {
	switch s := s.(type) {
	case ExprStmt:
		return c.validateBoolExpr(s.Expr)
	case AllDifferentStmt:
		if len(s.Exprs) < 2 {
			return errorf("all_different: requires at least two expressions, got %d", len(s.Exprs))
		}
		for _, e := range s.Exprs {
			if err := c.validateIntExpr(e); err != nil {
				return err
			}
		}
		return nil
	default:
		return errorf("add_stmt: unknown statement type %T", s)
	}
}

func (c *CSP) validateBoolExpr(e BoolExpr) error {
	switch e := e.(type) {
	case BoolConst:
		return nil
	case BoolVarRef:
		if int(e.Var) < 0 || int(e.Var) >= c.boolVars {
			return errorf("reference to unknown bool var %d", e.Var)
		}
		return nil
	case NotExpr:
		return c.validateBoolExpr(e.X)
	case AndExpr:
		return c.validateAllBool(e.Xs)
	case OrExpr:
		return c.validateAllBool(e.Xs)
	case XorExpr:
		return c.validateAllBool([]BoolExpr{e.A, e.B})
	case IffExpr:
		return c.validateAllBool([]BoolExpr{e.A, e.B})
	case ImpExpr:
		return c.validateAllBool([]BoolExpr{e.A, e.B})
	case CmpExpr:
		if err := c.validateIntExpr(e.A); err != nil {
			return err
		}
		return c.validateIntExpr(e.B)
	case IteBoolExpr:
		if err := c.validateBoolExpr(e.Cond); err != nil {
			return err
		}
		return c.validateAllBool([]BoolExpr{e.Then, e.Else})
	default:
		return errorf("unknown bool expr type %T", e)
	}
}

func (c *CSP) validateAllBool(xs []BoolExpr) error {
	for _, x := range xs {
		if err := c.validateBoolExpr(x); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSP) validateIntExpr(e IntExpr) error {
	switch e := e.(type) {
	case IntConst:
		return nil
	case IntVarRef:
		if int(e.Var) < 0 || int(e.Var) >= len(c.intDomains) {
			return errorf("reference to unknown int var %d", e.Var)
		}
		return nil
	case NegExpr:
		return c.validateIntExpr(e.X)
	case SumExpr:
		for _, t := range e.Terms {
			if err := c.validateIntExpr(t); err != nil {
				return err
			}
		}
		return nil
	case IteIntExpr:
		if err := c.validateBoolExpr(e.Cond); err != nil {
			return err
		}
		if err := c.validateIntExpr(e.Then); err != nil {
			return err
		}
		return c.validateIntExpr(e.Else)
	default:
		return errorf("unknown int expr type %T", e)
	}
}
