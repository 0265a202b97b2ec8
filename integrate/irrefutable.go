package integrate

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/semiexp/enigmacsp/csp"
	"github.com/semiexp/enigmacsp/sat"
)

// ErrUnsatisfiable is returned by IrrefutableFacts when the
// Integrator's CSP has no satisfying assignment at all, so no value
// can be called forced or free.
var ErrUnsatisfiable = errors.New("integrate: problem is unsatisfiable")

// Tri is the three-valued verdict IrrefutableFacts reports for an
// answer-key Boolean: forced true in every model, forced false in
// every model, or free (both values are consistent with some model).
type Tri int

const (
	Free Tri = iota
	True
	False
)

func (t Tri) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "free"
	}
}

// IrrefutableFacts determines, for every Boolean in answerKeys, whether
// it is forced true, forced false, or free across every satisfying
// assignment of the current CSP. It first solves once to obtain a
// baseline model (bringing normalize/encode fully up to date), then
// for each answer-key variable re-solves under the assumption that the
// variable takes the opposite of its baseline value: an UNSAT result
// proves the baseline value is the only possible one. SolveAssuming is
// used so this costs one incremental solve per candidate rather than a
// full re-encode.
func (it *Integrator) IrrefutableFacts(ctx context.Context, answerKeys []csp.BoolVar) (map[csp.BoolVar]Tri, error) {
	if it.consumed {
		return nil, ErrConsumed
	}

	base, err := it.Solve(ctx)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, ErrUnsatisfiable
	}

	facts := make(map[csp.BoolVar]Tri, len(answerKeys))
	for _, v := range answerKeys {
		baseVal := base.GetBool(v)

		lit, ok := it.boolLit(v)
		if !ok {
			// Unmapped: v is unconstrained, so both truth values are
			// achievable.
			facts[v] = Free
			continue
		}

		opposite := lit
		if baseVal {
			opposite = lit.Not()
		}

		it.log.WithFields(logrus.Fields{"var": v, "baseline": baseVal}).Debug("integrate: checking irrefutability")
		sm, err := it.sat.SolveAssuming(ctx, []sat.Lit{opposite})
		if err != nil {
			return nil, err
		}
		if sm == nil {
			if baseVal {
				facts[v] = True
			} else {
				facts[v] = False
			}
		} else {
			facts[v] = Free
		}
	}
	return facts, nil
}
