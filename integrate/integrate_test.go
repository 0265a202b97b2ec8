package integrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semiexp/enigmacsp/csp"
)

func TestSimpleLogicUniqueModel(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Or(x.Expr(), y.Expr())))
	require.NoError(t, it.AddExpr(csp.Or(x.Expr(), csp.Not(y.Expr()))))
	require.NoError(t, it.AddExpr(csp.Or(csp.Not(x.Expr()), csp.Not(y.Expr()))))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.GetBool(x))
	assert.False(t, model.GetBool(y))
}

func TestContradictoryXorIffIsUnsat(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Xor(x.Expr(), y.Expr())))
	require.NoError(t, it.AddExpr(csp.Iff(x.Expr(), y.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestParityChain(t *testing.T) {
	it := New()
	v := it.NewBoolVar()
	w := it.NewBoolVar()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	z := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Xor(v.Expr(), w.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(w.Expr(), x.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(x.Expr(), y.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(y.Expr(), z.Expr())))
	require.NoError(t, it.AddExpr(csp.Or(z.Expr(), v.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.True(t, model.GetBool(v))
	assert.False(t, model.GetBool(w))
	assert.True(t, model.GetBool(x))
	assert.False(t, model.GetBool(y))
	assert.True(t, model.GetBool(z))
}

func TestParityCycleIsUnsat(t *testing.T) {
	it := New()
	v := it.NewBoolVar()
	w := it.NewBoolVar()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	z := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Xor(v.Expr(), w.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(w.Expr(), x.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(x.Expr(), y.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(y.Expr(), z.Expr())))
	require.NoError(t, it.AddExpr(csp.Xor(z.Expr(), v.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestLinearTriple(t *testing.T) {
	it := New()
	a, err := it.NewIntVar(csp.MustRange(1, 4))
	require.NoError(t, err)
	b, err := it.NewIntVar(csp.MustRange(1, 4))
	require.NoError(t, err)
	c, err := it.NewIntVar(csp.MustRange(1, 4))
	require.NoError(t, err)
	require.NoError(t, it.AddExpr(csp.Ge(csp.Sum(a.Expr(), b.Expr(), c.Expr()), csp.Int(9))))
	require.NoError(t, it.AddExpr(csp.Gt(a.Expr(), b.Expr())))
	require.NoError(t, it.AddExpr(csp.Gt(b.Expr(), c.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, int32(4), model.GetInt(a))
	assert.Equal(t, int32(3), model.GetInt(b))
	assert.Equal(t, int32(2), model.GetInt(c))
}

func TestEmptyProblemIsSatisfiable(t *testing.T) {
	it := New()

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, model)
}

func TestAllDifferentPermutationCount(t *testing.T) {
	it := New()
	vars := make([]csp.IntExpr, 3)
	for i := range vars {
		v, err := it.NewIntVar(csp.MustRange(0, 2))
		require.NoError(t, err)
		vars[i] = v.Expr()
	}
	require.NoError(t, it.AddStmt(csp.AllDifferent(vars...)))

	assignments, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)
	assert.Len(t, assignments, 6)
}

func TestAllDifferentImpossibility(t *testing.T) {
	it := New()
	a, err := it.NewIntVar(csp.MustRange(1, 2))
	require.NoError(t, err)
	b, err := it.NewIntVar(csp.MustRange(1, 2))
	require.NoError(t, err)
	c, err := it.NewIntVar(csp.MustRange(1, 2))
	require.NoError(t, err)
	require.NoError(t, it.AddStmt(csp.AllDifferent(a.Expr(), b.Expr(), c.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestUnusedBoolVarReadsFalse(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	z := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Or(y.Expr(), z.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.False(t, model.GetBool(x))
}

func TestUnusedIntVarReadsLowerBound(t *testing.T) {
	it := New()
	a, err := it.NewIntVar(csp.MustRange(0, 2))
	require.NoError(t, err)
	b, err := it.NewIntVar(csp.MustRange(0, 2))
	require.NoError(t, err)
	c, err := it.NewIntVar(csp.MustRange(0, 2))
	require.NoError(t, err)
	require.NoError(t, it.AddExpr(csp.Gt(a.Expr(), b.Expr())))

	model, err := it.Solve(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Equal(t, int32(0), model.GetInt(c))
}

func TestEnumerateUniqueSmallCNF(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Or(x.Expr(), y.Expr())))
	require.NoError(t, it.AddExpr(csp.Or(x.Expr(), csp.Not(y.Expr()))))
	require.NoError(t, it.AddExpr(csp.Or(csp.Not(x.Expr()), csp.Not(y.Expr()))))

	assignments, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.True(t, assignments[0].Bool(x))
	assert.False(t, assignments[0].Bool(y))
}

func TestEnumerateCountMatchesBruteForce(t *testing.T) {
	it := New()
	a, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	b, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	c, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	d, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	require.NoError(t, it.AddExpr(csp.Ge(csp.Sum(a.Expr(), b.Expr(), c.Expr()), csp.Int(5))))
	require.NoError(t, it.AddExpr(csp.Le(csp.Sum(b.Expr(), c.Expr(), d.Expr()), csp.Int(5))))

	assignments, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)

	expected := 0
	for av := int32(0); av <= 3; av++ {
		for bv := int32(0); bv <= 3; bv++ {
			for cv := int32(0); cv <= 3; cv++ {
				for dv := int32(0); dv <= 3; dv++ {
					if av+bv+cv >= 5 && bv+cv+dv <= 5 {
						expected++
					}
				}
			}
		}
	}
	assert.Equal(t, expected, len(assignments))
}

// exhaustiveCheck compares EnumerateValidAssignments's count against a
// brute-force count obtained by evaluating every statement in stmts
// against every assignment with csp.EvalStmt. stmts must be taken
// before enumeration, which appends its blocking clauses to the CSP.
func exhaustiveCheck(t *testing.T, stmts []csp.Stmt, boolVars []csp.BoolVar, intVars []csp.IntVar, domains []csp.Domain, n int) {
	t.Helper()

	expected := 0
	var rec func(bi int, ii int, a *csp.Assignment)
	rec = func(bi, ii int, a *csp.Assignment) {
		if bi < len(boolVars) {
			for _, v := range []bool{false, true} {
				a.SetBool(boolVars[bi], v)
				rec(bi+1, ii, a)
			}
			return
		}
		if ii < len(intVars) {
			for _, v := range domains[ii].Enumerate() {
				a.SetInt(intVars[ii], v)
				rec(bi, ii+1, a)
			}
			return
		}
		ok := true
		for _, s := range stmts {
			if !csp.EvalStmt(s, a) {
				ok = false
				break
			}
		}
		if ok {
			expected++
		}
	}
	rec(0, 0, csp.NewAssignment())
	assert.Equal(t, expected, n)
}

func TestExhaustiveBool(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	z := it.NewBoolVar()
	w := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Imp(x.Expr(), csp.Xor(y.Expr(), z.Expr()))))
	require.NoError(t, it.AddExpr(csp.Imp(y.Expr(), csp.Iff(z.Expr(), w.Expr()))))
	stmts := it.csp.Stmts()

	assignments, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)

	exhaustiveCheck(t, stmts, []csp.BoolVar{x, y, z, w}, nil, nil, len(assignments))
}

func TestExhaustiveLinear(t *testing.T) {
	it := New()
	a, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	b, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	c, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	d, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	require.NoError(t, it.AddExpr(csp.Ge(csp.Sum(a.Expr(), b.Expr(), c.Expr()), csp.Int(5))))
	require.NoError(t, it.AddExpr(csp.Le(csp.Sum(b.Expr(), c.Expr(), d.Expr()), csp.Int(5))))
	stmts := it.csp.Stmts()

	assignments, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)

	domain := csp.MustRange(0, 3)
	exhaustiveCheck(t, stmts,
		nil,
		[]csp.IntVar{a, b, c, d},
		[]csp.Domain{domain, domain, domain, domain},
		len(assignments))
}

func TestExhaustiveComplex(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	z := it.NewBoolVar()
	a, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	b, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)
	c, err := it.NewIntVar(csp.MustRange(0, 3))
	require.NoError(t, err)

	require.NoError(t, it.AddExpr(csp.Eq(
		csp.IteInt(x.Expr(), a.Expr(), csp.Sum(b.Expr(), c.Expr())),
		csp.Sub(a.Expr(), b.Expr()),
	)))
	require.NoError(t, it.AddExpr(csp.Xor(
		csp.Ge(a.Expr(), csp.IteInt(y.Expr(), b.Expr(), c.Expr())),
		z.Expr(),
	)))
	stmts := it.csp.Stmts()

	assignments, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)

	expected := 0
	for _, xv := range []bool{false, true} {
		for _, yv := range []bool{false, true} {
			for _, zv := range []bool{false, true} {
				for av := int32(0); av <= 3; av++ {
					for bv := int32(0); bv <= 3; bv++ {
						for cv := int32(0); cv <= 3; cv++ {
							asn := csp.NewAssignment()
							asn.SetBool(x, xv)
							asn.SetBool(y, yv)
							asn.SetBool(z, zv)
							asn.SetInt(a, av)
							asn.SetInt(b, bv)
							asn.SetInt(c, cv)
							ok := true
							for _, s := range stmts {
								if !csp.EvalStmt(s, asn) {
									ok = false
									break
								}
							}
							if ok {
								expected++
							}
						}
					}
				}
			}
		}
	}
	assert.Equal(t, expected, len(assignments))
}

func TestIrrefutableFacts(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	y := it.NewBoolVar()
	z := it.NewBoolVar()
	require.NoError(t, it.AddExpr(csp.Or(x.Expr(), y.Expr())))
	require.NoError(t, it.AddExpr(csp.Or(csp.Not(x.Expr()), csp.Not(y.Expr()))))
	require.NoError(t, it.AddExpr(csp.Not(y.Expr())))

	facts, err := it.IrrefutableFacts(context.Background(), []csp.BoolVar{x, y, z})
	require.NoError(t, err)
	assert.Equal(t, True, facts[x])
	assert.Equal(t, False, facts[y])
	assert.Equal(t, Free, facts[z])
}

func TestIrrefutableFactsUnsatisfiable(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	require.NoError(t, it.AddExpr(x.Expr()))
	require.NoError(t, it.AddExpr(csp.Not(x.Expr())))

	_, err := it.IrrefutableFacts(context.Background(), []csp.BoolVar{x})
	assert.ErrorIs(t, err, ErrUnsatisfiable)
}

func TestEnumerateConsumesIntegrator(t *testing.T) {
	it := New()
	x := it.NewBoolVar()
	require.NoError(t, it.AddExpr(x.Expr()))

	_, err := it.EnumerateValidAssignments(context.Background())
	require.NoError(t, err)

	_, err = it.Solve(context.Background())
	assert.ErrorIs(t, err, ErrConsumed)

	err = it.AddExpr(csp.Not(x.Expr()))
	assert.ErrorIs(t, err, ErrConsumed)

	_, err = it.EnumerateValidAssignments(context.Background())
	assert.ErrorIs(t, err, ErrConsumed)
}
