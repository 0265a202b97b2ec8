// Package encode compiles a normcsp.NormCSP into CNF over a sat.Solver:
// integer variables get an order encoding, Boolean clauses pass
// through directly, linear constraints become unit-propagation-friendly
// cut clauses over the order-encoding bits, and AllDifferent is
// decomposed into pairwise disequalities.
package encode

import (
	"github.com/semiexp/enigmacsp/normcsp"
	"github.com/semiexp/enigmacsp/sat"
)

// Kind names the numeric representation chosen for a norm integer
// variable. Only OrderEncoding is implemented; the tag exists so a
// future direct or log encoding can be introduced without changing any
// caller.
type Kind int

const (
	OrderEncoding Kind = iota
)

func (k Kind) String() string {
	switch k {
	case OrderEncoding:
		return "order"
	default:
		return "?"
	}
}

// EncodeMap records, for each norm integer variable, its chosen Kind
// and order-encoding bits (n-1 SAT variables for a domain of size n,
// bits[i] meaning "value >= domain[i+1]"); and for each norm Boolean
// variable, the SAT literal it was lazily mapped to on first sight.
type EncodeMap struct {
	intKind map[normcsp.NormIntVar]Kind
	intBits map[normcsp.NormIntVar][]sat.Var
	boolLit map[normcsp.NormBoolVar]sat.Lit
}

// NewEncodeMap returns an empty EncodeMap.
func NewEncodeMap() *EncodeMap {
	return &EncodeMap{
		intKind: map[normcsp.NormIntVar]Kind{},
		intBits: map[normcsp.NormIntVar][]sat.Var{},
		boolLit: map[normcsp.NormBoolVar]sat.Lit{},
	}
}

// IntKind returns the encoding kind chosen for v, if it has been
// encoded yet.
func (em *EncodeMap) IntKind(v normcsp.NormIntVar) (Kind, bool) {
	k, ok := em.intKind[v]
	return k, ok
}

// IntBits returns the order-encoding bits allocated for v, if any.
func (em *EncodeMap) IntBits(v normcsp.NormIntVar) ([]sat.Var, bool) {
	b, ok := em.intBits[v]
	return b, ok
}

// BoolLit returns the SAT literal v was mapped to, if any.
func (em *EncodeMap) BoolLit(v normcsp.NormBoolVar) (sat.Lit, bool) {
	l, ok := em.boolLit[v]
	return l, ok
}

// IntValue decodes v's value out of m, using the order-encoding chain
// guarantee that the true bits among v's bits form a prefix: the
// value is the domain entry at the index equal to the count of true
// bits. It reports false if v has not been encoded yet (e.g. it was
// mapped in NormalizeMap but never reached by Encode).
func (em *EncodeMap) IntValue(norm *normcsp.NormCSP, v normcsp.NormIntVar, m *sat.Model) (int32, bool) {
	bits, ok := em.intBits[v]
	if !ok {
		return 0, false
	}
	idx := 0
	for _, b := range bits {
		if !m.Value(sat.PosLit(b)) {
			break
		}
		idx++
	}
	return norm.IntDomain(v)[idx], true
}
