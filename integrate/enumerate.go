package integrate

import (
	"context"

	"github.com/semiexp/enigmacsp/csp"
)

// EnumerateValidAssignments repeatedly solves the Integrator, records
// the full assignment over every Boolean and integer variable the
// caller has allocated, and appends a blocking clause excluding
// exactly that assignment, until the instance becomes UNSAT. Because
// it destructively grows the CSP with refutation constraints, it
// leaves the Integrator in a strict refinement of the original
// problem: the instance should not be reused for anything but further
// enumeration afterward.
func (it *Integrator) EnumerateValidAssignments(ctx context.Context) ([]*csp.Assignment, error) {
	if it.consumed {
		return nil, ErrConsumed
	}
	defer func() { it.consumed = true }()

	var results []*csp.Assignment

	for {
		model, err := it.Solve(ctx)
		if err != nil {
			return results, err
		}
		if model == nil {
			break
		}

		assignment := csp.NewAssignment()
		refutation := make([]csp.BoolExpr, 0, it.csp.NumBoolVars()+it.csp.NumIntVars())

		for i := 0; i < it.csp.NumBoolVars(); i++ {
			v := csp.BoolVar(i)
			val := model.GetBool(v)
			assignment.SetBool(v, val)
			if val {
				refutation = append(refutation, csp.Not(v.Expr()))
			} else {
				refutation = append(refutation, v.Expr())
			}
		}
		for i := 0; i < it.csp.NumIntVars(); i++ {
			v := csp.IntVar(i)
			val := model.GetInt(v)
			assignment.SetInt(v, val)
			refutation = append(refutation, csp.Ne(v.Expr(), csp.Int(val)))
		}

		results = append(results, assignment)
		it.log.WithField("found", len(results)).Debug("integrate: blocking assignment")

		// csp.Or() of an empty slice is the constant false, which makes
		// the next Solve immediately UNSAT — the correct behavior when
		// the caller allocated no variables at all: there is exactly
		// one assignment (the empty one) to report.
		if err := it.AddExpr(csp.Or(refutation...)); err != nil {
			return results, err
		}
	}

	return results, nil
}
