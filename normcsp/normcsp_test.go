package normcsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVarsAreDense(t *testing.T) {
	n := New()
	b0 := n.NewBoolVar()
	b1 := n.NewBoolVar()
	assert.Equal(t, NormBoolVar(0), b0)
	assert.Equal(t, NormBoolVar(1), b1)
	assert.Equal(t, 2, n.NumBoolVars())

	i0 := n.NewIntVar([]int32{1, 2, 3})
	assert.Equal(t, NormIntVar(0), i0)
	assert.Equal(t, []int32{1, 2, 3}, n.IntDomain(i0))
}

func TestEncoderCursorAdvances(t *testing.T) {
	n := New()
	b := n.NewBoolVar()
	n.AddClause(Lit(b))
	n.AddClause(Lit(b).Not())
	assert.Equal(t, 2, n.NumConstraints())
	assert.Equal(t, 0, n.EncoderCursor())
	assert.Len(t, n.PendingConstraints(), 2)

	n.AdvanceEncoderCursor(1)
	assert.Equal(t, 1, n.EncoderCursor())
	assert.Len(t, n.PendingConstraints(), 1)

	n.AddClause(Lit(b))
	assert.Len(t, n.PendingConstraints(), 2)
}

func TestLiteralNot(t *testing.T) {
	l := Lit(NormBoolVar(3))
	assert.False(t, l.Neg)
	assert.True(t, l.Not().Neg)
	assert.False(t, l.Not().Not().Neg)
}
