package sat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveUniqueSmallCNF(t *testing.T) {
	s := New()
	x := s.NewVar()
	y := s.NewVar()

	require.NoError(t, s.AddClause(Clause{PosLit(x), PosLit(y)}))
	require.NoError(t, s.AddClause(Clause{PosLit(x), NegLit(y)}))
	require.NoError(t, s.AddClause(Clause{NegLit(x), NegLit(y)}))

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.Value(PosLit(x)))
	assert.False(t, model.Value(PosLit(y)))
}

func TestSolveUnsatisfiable(t *testing.T) {
	s := New()
	x := s.NewVar()

	require.NoError(t, s.AddClause(Clause{PosLit(x)}))
	require.NoError(t, s.AddClause(Clause{NegLit(x)}))

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestEmptyClauseIsContradiction(t *testing.T) {
	s := New()
	require.NoError(t, s.AddClause(Clause{}))

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestSolveAssuming(t *testing.T) {
	s := New()
	x := s.NewVar()
	y := s.NewVar()
	require.NoError(t, s.AddClause(Clause{PosLit(x), PosLit(y)}))

	model, err := s.SolveAssuming(context.Background(), []Lit{NegLit(x)})
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.Value(PosLit(y)))
}

func TestSolveWithCoreReportsFailedAssumptions(t *testing.T) {
	s := New()
	x := s.NewVar()
	y := s.NewVar()
	require.NoError(t, s.AddClause(Clause{NegLit(x), NegLit(y)}))

	_, err := s.SolveWithCore(context.Background(), []Lit{PosLit(x), PosLit(y)})
	var core NotSatisfiable
	require.ErrorAs(t, err, &core)
	assert.NotEmpty(t, core)
	for _, m := range core {
		assert.Contains(t, []Var{x, y}, m.Var())
		assert.False(t, m.Negated())
	}
}

func TestSolveWithCoreSatisfiable(t *testing.T) {
	s := New()
	x := s.NewVar()
	require.NoError(t, s.AddClause(Clause{PosLit(x)}))

	model, err := s.SolveWithCore(context.Background(), []Lit{PosLit(x)})
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.Value(PosLit(x)))
}

func TestAddClauseUnknownVar(t *testing.T) {
	s := New()
	other := New()
	v := other.NewVar()

	err := s.AddClause(Clause{PosLit(v)})
	assert.Error(t, err)
}

func TestLitNot(t *testing.T) {
	s := New()
	x := s.NewVar()
	assert.Equal(t, NegLit(x), PosLit(x).Not())
	assert.Equal(t, PosLit(x), NegLit(x).Not())
}
