// Package uset implements mutable sets of code points and strings, built
// programmatically or from patterns like "[a-z]", "[^[:Greek:]]" and
// "\p{Lu}". A set can be frozen, after which every write fails with
// NoWritePermission, and exported as a unicode.RangeTable.
package uset

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"

	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of sets.
const Kind = "unicode_set"

// Set is a set of code points and strings. Not safe for concurrent mutation.
type Set struct {
	cps     spans
	strs    []string // sorted, never single code points
	pattern string   // source pattern while unmodified
	lc      handle.Lifecycle
	frozen  bool
}

func open(cps spans, strs []string, pattern string) *Set {
	s := &Set{cps: cps, pattern: pattern}
	for _, str := range strs {
		s.insertString(str)
	}
	s.lc.Open(Kind)
	return s
}

// New returns an empty set.
func New() *Set { return open(nil, nil, "") }

// NewRange returns the set of code points lo through hi. It is empty when
// lo > hi.
func NewRange(lo, hi rune) (*Set, error) {
	if err := checkRange("uset.NewRange", lo, hi); err != nil {
		return nil, err
	}
	return open(spans(nil).add(lo, hi), nil, ""), nil
}

// NewPattern parses a set pattern.
func NewPattern(pattern string) (*Set, error) {
	cps, strs, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return open(cps, strs, pattern), nil
}

// NewFromTable returns the set of code points in rt.
func NewFromTable(rt *unicode.RangeTable) (*Set, error) {
	if rt == nil {
		return nil, status.Invalid("uset.NewFromTable", "nil range table")
	}
	return open(fromTable(rt), nil, ""), nil
}

func checkRange(op string, lo, hi rune) error {
	if lo < 0 || lo > unicode.MaxRune || hi < 0 || hi > unicode.MaxRune {
		return status.New(op, status.InvalidParameter, ErrCodePoint)
	}
	return nil
}

func (s *Set) live(op string) error {
	if s == nil {
		return handle.Nil(op)
	}
	return s.lc.Check(op)
}

// writable checks a mutating operation and drops the source pattern.
func (s *Set) writable(op string) error {
	if err := s.live(op); err != nil {
		return err
	}
	if s.frozen {
		return status.New(op, status.NoWritePermission, ErrFrozen)
	}
	s.pattern = ""
	return nil
}

func (s *Set) insertString(str string) {
	if r, n := utf8.DecodeRuneInString(str); n == len(str) && n > 0 {
		s.cps = s.cps.add(r, r)
		return
	}
	if i, found := slices.BinarySearch(s.strs, str); !found {
		s.strs = slices.Insert(s.strs, i, str)
	}
}

// Add adds the code point r.
func (s *Set) Add(r rune) error {
	if err := s.writable("uset.Add"); err != nil {
		return err
	}
	if err := checkRange("uset.Add", r, r); err != nil {
		return err
	}
	s.cps = s.cps.add(r, r)
	return nil
}

// AddRange adds lo through hi. Nothing is added when lo > hi.
func (s *Set) AddRange(lo, hi rune) error {
	if err := s.writable("uset.AddRange"); err != nil {
		return err
	}
	if err := checkRange("uset.AddRange", lo, hi); err != nil {
		return err
	}
	s.cps = s.cps.add(lo, hi)
	return nil
}

// AddString adds str. A string of one code point adds that code point.
func (s *Set) AddString(str string) error {
	if err := s.writable("uset.AddString"); err != nil {
		return err
	}
	s.insertString(str)
	return nil
}

// AddAll adds every member of o.
func (s *Set) AddAll(o *Set) error {
	if err := o.live("uset.AddAll"); err != nil {
		return err
	}
	if err := s.writable("uset.AddAll"); err != nil {
		return err
	}
	s.cps = s.cps.union(o.cps)
	for _, str := range o.strs {
		s.insertString(str)
	}
	return nil
}

// Remove removes the code point r.
func (s *Set) Remove(r rune) error {
	return s.RemoveRange(r, r)
}

// RemoveRange removes lo through hi.
func (s *Set) RemoveRange(lo, hi rune) error {
	if err := s.writable("uset.RemoveRange"); err != nil {
		return err
	}
	if err := checkRange("uset.RemoveRange", lo, hi); err != nil {
		return err
	}
	s.cps = s.cps.remove(lo, hi)
	return nil
}

// RemoveString removes str.
func (s *Set) RemoveString(str string) error {
	if err := s.writable("uset.RemoveString"); err != nil {
		return err
	}
	if r, n := utf8.DecodeRuneInString(str); n == len(str) && n > 0 {
		s.cps = s.cps.remove(r, r)
		return nil
	}
	if i, found := slices.BinarySearch(s.strs, str); found {
		s.strs = slices.Delete(s.strs, i, i+1)
	}
	return nil
}

// Clear removes every member.
func (s *Set) Clear() error {
	if err := s.writable("uset.Clear"); err != nil {
		return err
	}
	s.cps, s.strs = nil, nil
	return nil
}

// Complement inverts the code points of the set. Strings are unchanged.
func (s *Set) Complement() error {
	if err := s.writable("uset.Complement"); err != nil {
		return err
	}
	s.cps = s.cps.complement()
	return nil
}

// Contains reports whether r is a member.
func (s *Set) Contains(r rune) (bool, error) {
	if err := s.live("uset.Contains"); err != nil {
		return false, err
	}
	return s.cps.contains(r), nil
}

// ContainsRange reports whether every code point lo through hi is a member.
func (s *Set) ContainsRange(lo, hi rune) (bool, error) {
	if err := s.live("uset.ContainsRange"); err != nil {
		return false, err
	}
	if err := checkRange("uset.ContainsRange", lo, hi); err != nil {
		return false, err
	}
	if lo > hi {
		return false, nil
	}
	return s.cps.containsRange(lo, hi), nil
}

// ContainsString reports whether str is a member.
func (s *Set) ContainsString(str string) (bool, error) {
	if err := s.live("uset.ContainsString"); err != nil {
		return false, err
	}
	if r, n := utf8.DecodeRuneInString(str); n == len(str) && n > 0 {
		return s.cps.contains(r), nil
	}
	_, found := slices.BinarySearch(s.strs, str)
	return found, nil
}

// Size returns the number of code points plus the number of strings.
func (s *Set) Size() (int, error) {
	if err := s.live("uset.Size"); err != nil {
		return 0, err
	}
	return s.cps.size() + len(s.strs), nil
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() (bool, error) {
	n, err := s.Size()
	return n == 0, err
}

// ItemCount returns the number of ranges plus the number of strings.
func (s *Set) ItemCount() (int, error) {
	if err := s.live("uset.ItemCount"); err != nil {
		return 0, err
	}
	return len(s.cps) + len(s.strs), nil
}

// Item returns item i: ranges come first in code point order, then strings.
// For a range item str is "", for a string item lo and hi are 0.
func (s *Set) Item(i int) (lo, hi rune, str string, err error) {
	if err := s.live("uset.Item"); err != nil {
		return 0, 0, "", err
	}
	switch {
	case i < 0 || i >= len(s.cps)+len(s.strs):
		return 0, 0, "", status.New("uset.Item", status.IndexOutOfBounds, ErrIndex)
	case i < len(s.cps):
		return s.cps[i].lo, s.cps[i].hi, "", nil
	}
	return 0, 0, s.strs[i-len(s.cps)], nil
}

// ToPattern returns a pattern that parses back to the set. An unmodified set
// built from a pattern returns that pattern. With escapeUnprintable, control
// and non-ASCII code points are written as \uXXXX or \UXXXXXXXX.
func (s *Set) ToPattern(escapeUnprintable bool) (string, error) {
	if err := s.live("uset.ToPattern"); err != nil {
		return "", err
	}
	if s.pattern != "" && !escapeUnprintable {
		return s.pattern, nil
	}
	var b strings.Builder
	b.WriteByte('[')
	for _, sp := range s.cps {
		writeChar(&b, sp.lo, escapeUnprintable)
		switch {
		case sp.hi == sp.lo+1:
			writeChar(&b, sp.hi, escapeUnprintable)
		case sp.hi > sp.lo:
			b.WriteByte('-')
			writeChar(&b, sp.hi, escapeUnprintable)
		}
	}
	for _, str := range s.strs {
		b.WriteByte('{')
		for _, r := range str {
			writeChar(&b, r, escapeUnprintable)
		}
		b.WriteByte('}')
	}
	b.WriteByte(']')
	return b.String(), nil
}

func writeChar(b *strings.Builder, r rune, escapeUnprintable bool) {
	switch {
	case strings.ContainsRune(`[]-^&\{}$:`, r):
		b.WriteByte('\\')
		b.WriteRune(r)
	case escapeUnprintable && (r < 0x20 || r > 0x7e), unicode.Is(unicode.Pattern_White_Space, r), !utf8.ValidRune(r):
		if r > 0xffff {
			fmt.Fprintf(b, `\U%08X`, r)
		} else {
			fmt.Fprintf(b, `\u%04X`, r)
		}
	default:
		b.WriteRune(r)
	}
}

// RangeTable returns the code points of the set as a range table. Strings
// are not included.
func (s *Set) RangeTable() (*unicode.RangeTable, error) {
	if err := s.live("uset.RangeTable"); err != nil {
		return nil, err
	}
	rt := &unicode.RangeTable{}
	for _, sp := range s.cps {
		if sp.lo <= 0xffff {
			rt.R16 = append(rt.R16, unicode.Range16{Lo: uint16(sp.lo), Hi: uint16(min(sp.hi, 0xffff)), Stride: 1})
		}
		if sp.hi > 0xffff {
			rt.R32 = append(rt.R32, unicode.Range32{Lo: uint32(max(sp.lo, 0x10000)), Hi: uint32(sp.hi), Stride: 1})
		}
	}
	return rangetable.Merge(rt), nil
}

// Freeze makes the set read-only.
func (s *Set) Freeze() error {
	if err := s.live("uset.Freeze"); err != nil {
		return err
	}
	s.frozen = true
	return nil
}

// IsFrozen reports whether the set is read-only.
func (s *Set) IsFrozen() bool { return s != nil && s.frozen }

// Clone returns an independent copy, frozen when s is.
func (s *Set) Clone() (*Set, error) {
	if err := s.live("uset.Clone"); err != nil {
		return nil, err
	}
	out := open(slices.Clone(s.cps), s.strs, s.pattern)
	out.frozen = s.frozen
	return out, nil
}

// CloneAsThawed returns an independent, writable copy.
func (s *Set) CloneAsThawed() (*Set, error) {
	if err := s.live("uset.CloneAsThawed"); err != nil {
		return nil, err
	}
	return open(slices.Clone(s.cps), s.strs, s.pattern), nil
}

// Close releases the set. Frozen sets can be closed.
func (s *Set) Close() error {
	if s == nil {
		return handle.Nil("uset.Close")
	}
	return s.lc.Release("uset.Close")
}

// All yields the ranges of the set in code point order.
func (s *Set) All() iter.Seq2[rune, rune] {
	return func(yield func(lo, hi rune) bool) {
		if s.live("uset.All") != nil {
			return
		}
		for _, sp := range s.cps {
			if !yield(sp.lo, sp.hi) {
				return
			}
		}
	}
}
