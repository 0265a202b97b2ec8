package encode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/enigmacsp/normcsp"
	"github.com/semiexp/enigmacsp/sat"
)

// decodeInt reads the value order-encoded in bits back out of a
// model, using the chain guarantee that the true bits form a prefix.
func decodeInt(model *sat.Model, domain []int32, bits []sat.Var) int32 {
	idx := 0
	for _, b := range bits {
		if !model.Value(sat.PosLit(b)) {
			break
		}
		idx++
	}
	return domain[idx]
}

func TestClausePassesThroughDirectly(t *testing.T) {
	norm := normcsp.New()
	x := norm.NewBoolVar()
	y := norm.NewBoolVar()
	norm.AddClause(normcsp.Lit(x), normcsp.Lit(y).Not())

	s := sat.New()
	em := NewEncodeMap()
	Encode(norm, s, em)

	assert.Equal(t, 2, s.NumVars())

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)

	xl := em.boolLit[x]
	yl := em.boolLit[y]
	assert.True(t, model.Value(xl) || !model.Value(yl))
}

func TestLinearLeIsRespectedInEverySolution(t *testing.T) {
	norm := normcsp.New()
	a := norm.NewIntVar([]int32{0, 1, 2, 3})
	b := norm.NewIntVar([]int32{0, 1, 2, 3})
	norm.AddLinear(normcsp.Linear{
		IntTerms: []normcsp.IntTerm{{Var: a, Coeff: 1}, {Var: b, Coeff: 1}},
		Op:       normcsp.OpLe,
		K:        3,
	})

	s := sat.New()
	em := NewEncodeMap()
	Encode(norm, s, em)

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)

	av := decodeInt(model, norm.IntDomain(a), em.intBits[a])
	bv := decodeInt(model, norm.IntDomain(b), em.intBits[b])
	assert.LessOrEqual(t, av+bv, int32(3))
}

func TestLinearContradictionBetweenFixedValuesIsUnsat(t *testing.T) {
	norm := normcsp.New()
	a := norm.NewIntVar([]int32{5})
	b := norm.NewIntVar([]int32{5})
	norm.AddLinear(normcsp.Linear{
		IntTerms: []normcsp.IntTerm{{Var: a, Coeff: 1}, {Var: b, Coeff: 1}},
		Op:       normcsp.OpLe,
		K:        3,
	})

	s := sat.New()
	em := NewEncodeMap()
	Encode(norm, s, em)

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestLinearEqPinsExactValue(t *testing.T) {
	norm := normcsp.New()
	a := norm.NewIntVar([]int32{0, 1, 2, 3, 4})
	norm.AddLinear(normcsp.Linear{
		IntTerms: []normcsp.IntTerm{{Var: a, Coeff: 1}},
		Op:       normcsp.OpEq,
		K:        2,
	})

	s := sat.New()
	em := NewEncodeMap()
	Encode(norm, s, em)

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, int32(2), decodeInt(model, norm.IntDomain(a), em.intBits[a]))
}

func TestAllDifferentForcesAPermutation(t *testing.T) {
	norm := normcsp.New()
	vars := make([]normcsp.NormIntVar, 3)
	for i := range vars {
		vars[i] = norm.NewIntVar([]int32{0, 1, 2})
	}
	norm.AddAllDifferent(vars...)

	s := sat.New()
	em := NewEncodeMap()
	Encode(norm, s, em)

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)

	seen := map[int32]bool{}
	for _, v := range vars {
		val := decodeInt(model, norm.IntDomain(v), em.intBits[v])
		assert.False(t, seen[val], "value %d used twice", val)
		seen[val] = true
	}
}

func TestEncodeIsIncremental(t *testing.T) {
	norm := normcsp.New()
	x := norm.NewBoolVar()
	norm.AddClause(normcsp.Lit(x))

	s := sat.New()
	em := NewEncodeMap()
	Encode(norm, s, em)
	varsAfterFirst := s.NumVars()

	y := norm.NewBoolVar()
	norm.AddClause(normcsp.Lit(y).Not())
	Encode(norm, s, em)

	assert.Greater(t, s.NumVars(), varsAfterFirst)

	model, err := s.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.Value(em.boolLit[x]))
	assert.False(t, model.Value(em.boolLit[y]))
}
