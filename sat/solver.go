package sat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// ErrUnknown is returned by Solve and SolveAssuming when the back-end
// gives up before reaching a verdict, e.g. because the caller's
// Context was cancelled or its deadline expired. It is distinct from
// an unsatisfiable result, which is reported as (nil, nil).
var ErrUnknown = errors.New("sat: solve did not reach a result (cancelled or deadline exceeded)")

// Solver is a facade over a CDCL SAT solver. Variables are allocated
// in call order via NewVar and clauses are added via AddClause; Solve
// and SolveAssuming drive the search.
type Solver struct {
	g    *gini.Gini
	lits []z.Lit       // Solver Var i <-> lits[i]
	back map[z.Var]Var // inverse of lits, for reading UNSAT cores back
}

// New returns an empty Solver with no variables or clauses.
func New() *Solver {
	return &Solver{g: gini.New(), back: map[z.Var]Var{}}
}

// NewVar allocates and returns a fresh variable.
func (s *Solver) NewVar() Var {
	v := Var(len(s.lits))
	zl := s.g.Lit()
	s.lits = append(s.lits, zl)
	s.back[zl.Var()] = v
	return v
}

// NumVars returns the number of variables allocated so far.
func (s *Solver) NumVars() int {
	return len(s.lits)
}

func (s *Solver) lit(m Lit) (z.Lit, error) {
	if int(m.v) < 0 || int(m.v) >= len(s.lits) {
		return z.LitNull, fmt.Errorf("sat: variable %d was never allocated by this Solver", m.v)
	}
	zl := s.lits[m.v]
	if m.neg {
		zl = zl.Not()
	}
	return zl, nil
}

// AddClause adds c as a permanent clause. An empty Clause is the
// contradiction and renders the instance unsatisfiable from this point
// on.
func (s *Solver) AddClause(c Clause) error {
	for _, m := range c {
		zl, err := s.lit(m)
		if err != nil {
			return err
		}
		s.g.Add(zl)
	}
	s.g.Add(0)
	return nil
}

// Solve runs the search with no assumptions. It returns a Model if the
// instance is satisfiable, (nil, nil) if it is unsatisfiable, and
// (nil, ErrUnknown) if ctx is done before a verdict is reached.
func (s *Solver) Solve(ctx context.Context) (*Model, error) {
	return s.solve(ctx, nil)
}

// SolveAssuming is equivalent to temporarily adding a unit clause for
// each literal in assume and then calling Solve.
func (s *Solver) SolveAssuming(ctx context.Context, assume []Lit) (*Model, error) {
	return s.solve(ctx, assume)
}

// NotSatisfiable is an error listing a subset of the assumptions passed
// to SolveWithCore that is by itself sufficient to make the instance
// unsatisfiable.
type NotSatisfiable []Lit

func (e NotSatisfiable) Error() string {
	const msg = "sat: not satisfiable under assumptions"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, m := range e {
		s[i] = m.String()
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

// SolveWithCore is SolveAssuming, except that an unsatisfiable result
// is reported as a NotSatisfiable error carrying the failing subset of
// assume, instead of as a nil Model.
func (s *Solver) SolveWithCore(ctx context.Context, assume []Lit) (*Model, error) {
	m, err := s.solve(ctx, assume)
	if err != nil || m != nil {
		return m, err
	}
	why := s.g.Why(nil)
	core := make(NotSatisfiable, 0, len(why))
	for _, zl := range why {
		v, ok := s.back[zl.Var()]
		if !ok {
			continue
		}
		core = append(core, Lit{v: v, neg: !zl.IsPos()})
	}
	return nil, core
}

func (s *Solver) solve(ctx context.Context, assume []Lit) (*Model, error) {
	if len(assume) > 0 {
		zs := make([]z.Lit, len(assume))
		for i, m := range assume {
			zl, err := s.lit(m)
			if err != nil {
				return nil, err
			}
			zs[i] = zl
		}
		s.g.Assume(zs...)
	}

	res := waitForSolution(ctx, s.g.GoSolve())
	switch res {
	case 1:
		vals := make([]bool, len(s.lits))
		for i, zl := range s.lits {
			vals[i] = s.g.Value(zl)
		}
		return &Model{vals: vals}, nil
	case -1:
		return nil, nil
	default:
		return nil, ErrUnknown
	}
}

// waitForSolution polls a background solve for completion, stopping it
// early if ctx is done.
func waitForSolution(ctx context.Context, gs inter.Solve) int {
	t := time.NewTicker(10 * time.Millisecond)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-t.C:
			if result, ok := gs.Test(); ok {
				return result
			}
		}
	}
}

// Model is a read-only total assignment over all variables allocated
// before the Solve/SolveAssuming call that produced it.
type Model struct {
	vals []bool
}

// Value returns the truth value assigned to m's variable, accounting
// for m's polarity.
func (model *Model) Value(m Lit) bool {
	v := model.vals[m.v]
	if m.neg {
		return !v
	}
	return v
}
