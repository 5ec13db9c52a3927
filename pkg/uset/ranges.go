package uset

import (
	"slices"
	"unicode"
)

// span is an inclusive range of code points.
type span struct{ lo, hi rune }

// spans is a sorted list of disjoint, non-adjacent spans.
type spans []span

func (s spans) index(r rune) (int, bool) {
	i, found := slices.BinarySearchFunc(s, r, func(sp span, r rune) int {
		switch {
		case sp.hi < r:
			return -1
		case sp.lo > r:
			return 1
		}
		return 0
	})
	return i, found
}

func (s spans) contains(r rune) bool {
	_, ok := s.index(r)
	return ok
}

func (s spans) containsRange(lo, hi rune) bool {
	i, ok := s.index(lo)
	return ok && s[i].hi >= hi
}

func (s spans) add(lo, hi rune) spans {
	if lo > hi {
		return s
	}
	out := make(spans, 0, len(s)+1)
	i := 0
	for ; i < len(s) && s[i].hi < lo-1; i++ {
		out = append(out, s[i])
	}
	for ; i < len(s) && s[i].lo <= hi+1; i++ {
		lo, hi = min(lo, s[i].lo), max(hi, s[i].hi)
	}
	out = append(out, span{lo, hi})
	return append(out, s[i:]...)
}

func (s spans) remove(lo, hi rune) spans {
	if lo > hi {
		return s
	}
	out := make(spans, 0, len(s)+1)
	for _, sp := range s {
		if sp.hi < lo || sp.lo > hi {
			out = append(out, sp)
			continue
		}
		if sp.lo < lo {
			out = append(out, span{sp.lo, lo - 1})
		}
		if sp.hi > hi {
			out = append(out, span{hi + 1, sp.hi})
		}
	}
	return out
}

func (s spans) complement() spans {
	out := make(spans, 0, len(s)+1)
	next := rune(0)
	for _, sp := range s {
		if sp.lo > next {
			out = append(out, span{next, sp.lo - 1})
		}
		next = sp.hi + 1
	}
	if next <= unicode.MaxRune {
		out = append(out, span{next, unicode.MaxRune})
	}
	return out
}

func (s spans) union(o spans) spans {
	out := slices.Clone(s)
	for _, sp := range o {
		out = out.add(sp.lo, sp.hi)
	}
	return out
}

func (s spans) intersect(o spans) spans {
	return s.complement().union(o.complement()).complement()
}

func (s spans) subtract(o spans) spans {
	out := slices.Clone(s)
	for _, sp := range o {
		out = out.remove(sp.lo, sp.hi)
	}
	return out
}

func (s spans) size() int {
	n := 0
	for _, sp := range s {
		n += int(sp.hi-sp.lo) + 1
	}
	return n
}

// fromTable converts a range table to spans.
func fromTable(rt *unicode.RangeTable) spans {
	var out spans
	for _, r := range rt.R16 {
		out = addStrided(out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range rt.R32 {
		out = addStrided(out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return out
}

func addStrided(s spans, lo, hi, stride rune) spans {
	if stride == 1 {
		return s.add(lo, hi)
	}
	for r := lo; r <= hi; r += stride {
		s = s.add(r, r)
	}
	return s
}
