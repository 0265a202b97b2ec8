package encode

import "github.com/semiexp/enigmacsp/sat"

// level is one point on the ascending lower-bound ladder a single
// linear term contributes to a cut. Reaching level 0 needs no
// literal: it is the term's global minimum possible contribution,
// true regardless of the term's actual value. Reaching level j > 0
// needs lit to hold, and guarantees the term contributes at least
// contribution — a valid lower bound, not necessarily its exact
// value, which is enough for a forbidding-clause cut.
type level struct {
	contribution int64
	lit          *sat.Lit
}

// buildIntLevels returns the level ladder for coeff*v, where v is a
// norm integer variable with the given materialized domain and order-
// encoding bits (bits[i] meaning v >= domain[i+1], with bits[i] ->
// bits[i-1] already asserted). For coeff >= 0 the ladder walks domain
// ascending, gated by the bit that proves the lower threshold reached.
// For coeff < 0 a larger value lowers the contribution, so the ladder
// instead walks domain descending, gated by the negation of the bit
// that proves an upper threshold has NOT been exceeded.
func buildIntLevels(domain []int32, bits []sat.Var, coeff int32) []level {
	n := len(domain)
	levels := make([]level, n)
	if coeff >= 0 {
		for j := 0; j < n; j++ {
			levels[j].contribution = int64(coeff) * int64(domain[j])
			if j > 0 {
				l := sat.PosLit(bits[j-1])
				levels[j].lit = &l
			}
		}
	} else {
		for j := 0; j < n; j++ {
			levels[j].contribution = int64(coeff) * int64(domain[n-1-j])
			if j > 0 {
				l := sat.NegLit(bits[n-1-j])
				levels[j].lit = &l
			}
		}
	}
	return levels
}

// buildBoolLevels returns the two-point ladder for coeff*b, treating
// lit as a 0/1 value (0 when false, 1 when true) — the same shape as
// buildIntLevels over the domain {0, 1}, with lit standing in for the
// single order-encoding bit.
func buildBoolLevels(lit sat.Lit, coeff int32) []level {
	if coeff >= 0 {
		l := lit
		return []level{
			{contribution: 0},
			{contribution: int64(coeff), lit: &l},
		}
	}
	l := lit.Not()
	return []level{
		{contribution: int64(coeff)},
		{contribution: 0, lit: &l},
	}
}

// cutsLe asserts, over the order-encoding bits feeding levelTerms,
// that the linear sum those terms represent is <= k. When gate is
// non-nil the assertion is instead "gate implies sum <= k": every
// emitted clause carries gate.Not() as an extra disjunct.
//
// It walks terms in order, accumulating the partial sum implied by
// literals chosen so far. At each term it tries every level in
// ascending contribution order; suffixMin bounds what the remaining
// terms could add at minimum. The moment a level's contribution,
// combined with the running partial sum and the remaining terms'
// guaranteed minimum, would already exceed k, the literals needed to
// reach that level (plus whatever was chosen for earlier terms) are
// forbidden by a single clause — reaching any higher level of this
// term only increases the sum further, so recursion stops there
// instead of enumerating those dominated levels too.
func cutsLe(s *sat.Solver, levelTerms [][]level, k int64, gate *sat.Lit) {
	n := len(levelTerms)
	suffixMin := make([]int64, n+1)
	for i := n - 1; i >= 0; i-- {
		suffixMin[i] = suffixMin[i+1] + levelTerms[i][0].contribution
	}

	emit := func(chosen []sat.Lit) {
		clause := make(sat.Clause, 0, len(chosen)+1)
		for _, l := range chosen {
			clause = append(clause, l.Not())
		}
		if gate != nil {
			clause = append(clause, gate.Not())
		}
		s.AddClause(clause)
	}

	var rec func(idx int, partial int64, chosen []sat.Lit)
	rec = func(idx int, partial int64, chosen []sat.Lit) {
		if idx == n {
			if partial > k {
				emit(chosen)
			}
			return
		}
		for _, lv := range levelTerms[idx] {
			cand := partial + lv.contribution + suffixMin[idx+1]
			next := chosen
			if lv.lit != nil {
				next = append(append([]sat.Lit(nil), chosen...), *lv.lit)
			}
			if cand > k {
				emit(next)
				break
			}
			rec(idx+1, partial+lv.contribution, next)
		}
	}
	rec(0, 0, nil)
}
