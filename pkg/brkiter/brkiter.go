// Package brkiter finds text boundaries (user-perceived characters, words,
// line break opportunities and sentences) using the Unicode segmentation
// rules of github.com/rivo/uniseg.
//
// Boundaries are computed when the text is set. Offsets are in UTF-16 units.
package brkiter

import (
	"errors"
	"slices"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of break iterators.
const Kind = "break_iterator"

// Done is returned when there is no boundary in the requested direction.
const Done = -1

// Type selects the boundary rules.
type Type int

const (
	Character Type = iota
	Word
	Line
	Sentence
)

// Rule status values of word boundaries.
const (
	WordNone   = 0
	WordNumber = 100
	WordLetter = 200
	WordKana   = 300
	WordIdeo   = 400
)

// Rule status values of line boundaries.
const (
	LineSoft = 0
	LineHard = 100
)

// Rule status values of sentence boundaries.
const (
	SentenceTerm = 0
	SentenceSep  = 100
)

var ErrInvalidType = errors.New("brkiter: invalid iterator type")

// segments holds the boundaries of a text and the rule status of the segment
// ending at each boundary. It is never mutated once built.
type segments struct {
	text   string
	bounds []int
	rules  []int
}

// Iterator walks the boundaries of a text. Not safe for concurrent use; see
// SafeClone.
type Iterator struct {
	seg     *segments
	id      string
	typ     Type
	lc      handle.Lifecycle
	current int // index into seg.bounds
}

// New opens an iterator of typ for the locale id over text.
func New(typ Type, id, text string) (*Iterator, error) {
	if typ < Character || typ > Sentence {
		return nil, status.New("brkiter.New", status.InvalidParameter, ErrInvalidType)
	}
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	it := &Iterator{id: locale.ID(tag), typ: typ, seg: segment(typ, text)}
	it.lc.Open(Kind)
	return it, nil
}

func segment(typ Type, text string) *segments {
	s := &segments{text: text, bounds: []int{0}, rules: []int{0}}
	pos, state := 0, -1
	for rest := text; rest != ""; {
		var part string
		rule := 0
		switch typ {
		case Character:
			part, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		case Word:
			part, rest, state = uniseg.FirstWordInString(rest, state)
			rule = wordRule(part)
		case Line:
			var hard bool
			part, rest, hard, state = uniseg.FirstLineSegmentInString(rest, state)
			if hard && rest != "" {
				rule = LineHard
			}
		case Sentence:
			part, rest, state = uniseg.FirstSentenceInString(rest, state)
			rule = sentenceRule(part)
		}
		pos += buffer.Len16(part)
		s.bounds = append(s.bounds, pos)
		s.rules = append(s.rules, rule)
	}
	return s
}

func wordRule(word string) int {
	for _, r := range word {
		switch {
		case unicode.Is(unicode.Han, r):
			return WordIdeo
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			return WordKana
		case unicode.IsLetter(r):
			return WordLetter
		case unicode.IsDigit(r):
			return WordNumber
		}
	}
	return WordNone
}

func sentenceRule(sentence string) int {
	trimmed := strings.TrimRight(sentence, " \t")
	if strings.HasSuffix(trimmed, "\n") || strings.HasSuffix(trimmed, "\r") {
		return SentenceSep
	}
	return SentenceTerm
}

func (it *Iterator) live(op string) error {
	if it == nil {
		return handle.Nil(op)
	}
	return it.lc.Check(op)
}

// Type returns the boundary rules of it.
func (it *Iterator) Type() Type { return it.typ }

// Locale returns the locale the iterator was opened for.
func (it *Iterator) Locale() string { return it.id }

// SetText replaces the text and moves to the first boundary.
func (it *Iterator) SetText(text string) error {
	if err := it.live("brkiter.SetText"); err != nil {
		return err
	}
	it.seg = segment(it.typ, text)
	it.current = 0
	return nil
}

// Text returns the text being iterated.
func (it *Iterator) Text() (string, error) {
	if err := it.live("brkiter.Text"); err != nil {
		return "", err
	}
	return it.seg.text, nil
}

func (it *Iterator) at(i int) int {
	if i < 0 || i >= len(it.seg.bounds) {
		return Done
	}
	it.current = i
	return it.seg.bounds[i]
}

// First moves to the start of the text, which is always 0.
func (it *Iterator) First() (int, error) {
	if err := it.live("brkiter.First"); err != nil {
		return Done, err
	}
	return it.at(0), nil
}

// Last moves to the end of the text.
func (it *Iterator) Last() (int, error) {
	if err := it.live("brkiter.Last"); err != nil {
		return Done, err
	}
	return it.at(len(it.seg.bounds) - 1), nil
}

// Next moves to the following boundary. At the end it returns Done and the
// position stays at the last boundary.
func (it *Iterator) Next() (int, error) {
	if err := it.live("brkiter.Next"); err != nil {
		return Done, err
	}
	return it.at(it.current + 1), nil
}

// Previous moves to the preceding boundary.
func (it *Iterator) Previous() (int, error) {
	if err := it.live("brkiter.Previous"); err != nil {
		return Done, err
	}
	return it.at(it.current - 1), nil
}

// Current returns the boundary last moved to.
func (it *Iterator) Current() (int, error) {
	if err := it.live("brkiter.Current"); err != nil {
		return Done, err
	}
	return it.seg.bounds[it.current], nil
}

// Following moves to the first boundary after offset.
func (it *Iterator) Following(offset int) (int, error) {
	if err := it.live("brkiter.Following"); err != nil {
		return Done, err
	}
	i, _ := slices.BinarySearch(it.seg.bounds, offset+1)
	if i >= len(it.seg.bounds) {
		it.current = len(it.seg.bounds) - 1
		return Done, nil
	}
	return it.at(i), nil
}

// Preceding moves to the last boundary before offset.
func (it *Iterator) Preceding(offset int) (int, error) {
	if err := it.live("brkiter.Preceding"); err != nil {
		return Done, err
	}
	i, _ := slices.BinarySearch(it.seg.bounds, offset)
	if i == 0 {
		it.current = 0
		return Done, nil
	}
	return it.at(i - 1), nil
}

// IsBoundary reports whether offset is a boundary. The iterator moves to
// offset when it is, otherwise to the following boundary.
func (it *Iterator) IsBoundary(offset int) (bool, error) {
	if err := it.live("brkiter.IsBoundary"); err != nil {
		return false, err
	}
	i, found := slices.BinarySearch(it.seg.bounds, offset)
	switch {
	case found:
		it.current = i
		return true, nil
	case i >= len(it.seg.bounds):
		it.current = len(it.seg.bounds) - 1
	default:
		it.current = i
	}
	return false, nil
}

// RuleStatus returns the status of the rule that produced the current
// boundary: one of the Word*, Line* or Sentence* constants, 0 for characters.
func (it *Iterator) RuleStatus() (int, error) {
	if err := it.live("brkiter.RuleStatus"); err != nil {
		return 0, err
	}
	return it.seg.rules[it.current], nil
}

// Clone returns an independent iterator positioned like it.
func (it *Iterator) Clone() (*Iterator, error) {
	if err := it.live("brkiter.Clone"); err != nil {
		return nil, err
	}
	seg := &segments{
		text:   it.seg.text,
		bounds: slices.Clone(it.seg.bounds),
		rules:  slices.Clone(it.seg.rules),
	}
	out := &Iterator{seg: seg, id: it.id, typ: it.typ, current: it.current}
	out.lc.Open(Kind)
	return out, nil
}

// SafeClone returns an iterator for use on another goroutine. It shares the
// computed boundaries, which are immutable, and has its own position.
func (it *Iterator) SafeClone() (*Iterator, error) {
	if err := it.live("brkiter.SafeClone"); err != nil {
		return nil, err
	}
	out := &Iterator{seg: it.seg, id: it.id, typ: it.typ, current: it.current}
	out.lc.Open(Kind)
	return out, nil
}

// Close releases the iterator.
func (it *Iterator) Close() error {
	if it == nil {
		return handle.Nil("brkiter.Close")
	}
	return it.lc.Release("brkiter.Close")
}
