// Package integrate is the orchestrator tying the csp, normcsp, sat,
// normalize and encode packages together. An Integrator owns a CSP, the
// NormCSP it is lowered into, the SAT solver it is compiled to, and
// both mapping tables between them; it lazily normalizes and encodes
// only the prefix not yet processed, drives the SAT search, and
// materializes per-variable answer values out of whichever mapping
// chain actually reaches a SAT literal.
package integrate

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/semiexp/enigmacsp/csp"
	"github.com/semiexp/enigmacsp/encode"
	"github.com/semiexp/enigmacsp/normalize"
	"github.com/semiexp/enigmacsp/normcsp"
	"github.com/semiexp/enigmacsp/sat"
)

// ErrConsumed is returned by every Integrator method that mutates or
// solves the problem once EnumerateValidAssignments has run on it.
// Enumeration destructively refines the problem with refutation
// constraints, so the instance is one-shot afterward; the contract is
// enforced at run time. NewBoolVar, which has no error result, is not
// guarded and still allocates a variable.
var ErrConsumed = errors.New("integrate: integrator was consumed by EnumerateValidAssignments")

// Integrator owns the whole CSP-to-CNF pipeline for a single problem
// instance. It is not safe for concurrent use; each SAT back-end has
// exactly one cooperative owner.
type Integrator struct {
	csp     *csp.CSP
	normMap *normalize.NormalizeMap
	norm    *normcsp.NormCSP
	encMap  *encode.EncodeMap
	sat     *sat.Solver
	log     logrus.FieldLogger

	// consumed is set once EnumerateValidAssignments has run; every
	// subsequent call on this Integrator that has an error result
	// returns ErrConsumed.
	consumed bool
}

// New returns an empty Integrator with a default logrus logger.
func New() *Integrator {
	return NewIntegrator(logrus.New())
}

// NewIntegrator returns an empty Integrator that reports its solve
// lifecycle (normalize/encode/solve/enumerate progress) to log at
// Debug level.
func NewIntegrator(log logrus.FieldLogger) *Integrator {
	return &Integrator{
		csp:     csp.New(),
		normMap: normalize.NewNormalizeMap(),
		norm:    normcsp.New(),
		encMap:  encode.NewEncodeMap(),
		sat:     sat.New(),
		log:     log,
	}
}

// NewBoolVar allocates and returns a fresh Boolean variable. The
// handle is stable for the lifetime of the Integrator.
func (it *Integrator) NewBoolVar() csp.BoolVar {
	v := it.csp.NewBoolVar()
	it.log.WithField("var", v).Debug("integrate: new bool var")
	return v
}

// NewIntVar allocates and returns a fresh integer variable with
// domain d. Returns a ConstructionError if d is empty, or ErrConsumed
// if EnumerateValidAssignments has already consumed this Integrator.
func (it *Integrator) NewIntVar(d csp.Domain) (csp.IntVar, error) {
	if it.consumed {
		return 0, ErrConsumed
	}
	v, err := it.csp.NewIntVar(d)
	if err != nil {
		return 0, err
	}
	it.log.WithFields(logrus.Fields{"var": v, "domain": d.String()}).Debug("integrate: new int var")
	return v, nil
}

// AddExpr appends the assertion that e evaluates to true. It does not
// solve anything; e is only normalized/encoded on the next Solve.
func (it *Integrator) AddExpr(e csp.BoolExpr) error {
	if it.consumed {
		return ErrConsumed
	}
	return it.csp.AddExpr(e)
}

// AddStmt appends s to the CSP.
func (it *Integrator) AddStmt(s csp.Stmt) error {
	if it.consumed {
		return ErrConsumed
	}
	return it.csp.AddStmt(s)
}

// Solve runs Normalize then Encode over any statements added since the
// last call, then invokes the SAT back-end. It returns a Model bound
// to the resulting assignment if the instance is satisfiable, (nil,
// nil) if it is UNSAT, and (nil, err) if the back-end could not reach
// a verdict (e.g. ctx was cancelled — see sat.ErrUnknown) or this
// Integrator was already consumed by EnumerateValidAssignments. Any
// Model returned by a previous call is invalidated by this call, since
// the Integrator's own SAT state advances underneath it.
func (it *Integrator) Solve(ctx context.Context) (*Model, error) {
	if it.consumed {
		return nil, ErrConsumed
	}
	it.log.Debug("integrate: normalizing pending statements")
	normalize.Normalize(it.csp, it.norm, it.normMap)

	it.log.Debug("integrate: encoding pending constraints")
	encode.Encode(it.norm, it.sat, it.encMap)

	it.log.WithField("sat_vars", it.sat.NumVars()).Debug("integrate: solving")
	sm, err := it.sat.Solve(ctx)
	if err != nil {
		return nil, err
	}
	if sm == nil {
		it.log.Debug("integrate: unsat")
		return nil, nil
	}
	it.log.Debug("integrate: sat")
	return &Model{it: it, sm: sm}, nil
}

// boolLit returns the SAT literal v currently maps to through
// NormalizeMap then EncodeMap, if any link in that chain exists.
func (it *Integrator) boolLit(v csp.BoolVar) (sat.Lit, bool) {
	nv, ok := it.normMap.GetBoolVar(v)
	if !ok {
		return sat.Lit{}, false
	}
	return it.encMap.BoolLit(nv)
}
