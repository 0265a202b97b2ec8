package csp

import (
	"fmt"
	"sort"
)

// Domain is a finite, non-empty set of integers, stored as a sorted
// list of disjoint closed ranges. Domains are immutable once
// constructed.
type Domain struct {
	ranges [][2]int32 // sorted, disjoint, non-adjacent
}

// Range returns the Domain containing every integer in [lo, hi].
func Range(lo, hi int32) (Domain, error) {
	if lo > hi {
		return Domain{}, fmt.Errorf("csp: empty domain: range [%d, %d]", lo, hi)
	}
	return Domain{ranges: [][2]int32{{lo, hi}}}, nil
}

// MustRange is Range but panics on error; intended for tests and
// package-level constants, not for validating caller input.
func MustRange(lo, hi int32) Domain {
	d, err := Range(lo, hi)
	if err != nil {
		panic(err)
	}
	return d
}

// Values returns the Domain containing exactly the given (not
// necessarily sorted or distinct) integers.
func Values(vs ...int32) (Domain, error) {
	if len(vs) == 0 {
		return Domain{}, fmt.Errorf("csp: empty domain")
	}
	sorted := append([]int32(nil), vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var ranges [][2]int32
	for _, v := range sorted {
		if n := len(ranges); n > 0 && (v == ranges[n-1][1] || v == ranges[n-1][1]+1) {
			if v > ranges[n-1][1] {
				ranges[n-1][1] = v
			}
			continue
		}
		ranges = append(ranges, [2]int32{v, v})
	}
	return Domain{ranges: ranges}, nil
}

// Union returns the Domain containing every value in any of ds.
// Returns an error if the union is empty (i.e. ds is empty or every
// member Domain is the zero value).
func Union(ds ...Domain) (Domain, error) {
	var all []int32
	for _, d := range ds {
		all = append(all, d.Enumerate()...)
	}
	if len(all) == 0 {
		return Domain{}, fmt.Errorf("csp: empty domain")
	}
	return Values(all...)
}

// Enumerate returns the sorted, distinct list of every value in the
// domain.
func (d Domain) Enumerate() []int32 {
	var vs []int32
	for _, r := range d.ranges {
		for v := r[0]; v <= r[1]; v++ {
			vs = append(vs, v)
		}
	}
	return vs
}

// Size returns the number of distinct values in the domain.
func (d Domain) Size() int {
	n := 0
	for _, r := range d.ranges {
		n += int(r[1]-r[0]) + 1
	}
	return n
}

// LowerBound returns the smallest value in the domain. Panics if the
// domain is empty (the zero value), which should never occur for a
// Domain obtained through Range/Values/Union.
func (d Domain) LowerBound() int32 {
	if len(d.ranges) == 0 {
		panic("csp: LowerBound of empty domain")
	}
	return d.ranges[0][0]
}

// UpperBound returns the largest value in the domain.
func (d Domain) UpperBound() int32 {
	if len(d.ranges) == 0 {
		panic("csp: UpperBound of empty domain")
	}
	return d.ranges[len(d.ranges)-1][1]
}

// Contains reports whether v is a member of the domain.
func (d Domain) Contains(v int32) bool {
	for _, r := range d.ranges {
		if v >= r[0] && v <= r[1] {
			return true
		}
	}
	return false
}

// IsSingleton reports whether the domain contains exactly one value.
func (d Domain) IsSingleton() bool {
	return d.Size() == 1
}

func (d Domain) String() string {
	s := ""
	for i, r := range d.ranges {
		if i > 0 {
			s += ","
		}
		if r[0] == r[1] {
			s += fmt.Sprintf("%d", r[0])
		} else {
			s += fmt.Sprintf("%d..%d", r[0], r[1])
		}
	}
	return "{" + s + "}"
}
