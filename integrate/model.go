package integrate

import (
	"github.com/semiexp/enigmacsp/csp"
	"github.com/semiexp/enigmacsp/sat"
)

// Model is a read-only view of a satisfying assignment, bound to the
// Integrator's SAT state at the moment Solve produced it. It is
// invalidated by any later Solve/EnumerateValidAssignments/
// IrrefutableFacts call on the same Integrator.
type Model struct {
	it *Integrator
	sm *sat.Model
}

// GetBool reads off the value of v: it follows NormalizeMap then
// EncodeMap and reports the SAT literal's value, or false if either
// link is absent. A variable reachable by no retained statement is
// unconstrained and may read as any value; false is the canonical one.
func (m *Model) GetBool(v csp.BoolVar) bool {
	lit, ok := m.it.boolLit(v)
	if !ok {
		return false
	}
	return m.sm.Value(lit)
}

// GetInt reads off the value of v the same way, falling back to the
// domain's lower bound when unmapped or unencoded.
func (m *Model) GetInt(v csp.IntVar) int32 {
	nv, ok := m.it.normMap.GetIntVar(v)
	if !ok {
		return m.it.csp.IntDomain(v).LowerBound()
	}
	val, ok := m.it.encMap.IntValue(m.it.norm, nv, m.sm)
	if !ok {
		return m.it.csp.IntDomain(v).LowerBound()
	}
	return val
}
