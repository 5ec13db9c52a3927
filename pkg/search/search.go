// Package search finds a pattern in text with locale-sensitive matching
// (golang.org/x/text/search), iterating matches the way a cursor does.
//
// A Searcher created with New owns an internal collator and releases it on
// Close. One created with NewWithCollator borrows the caller's collator,
// which stays usable after the searcher is closed. Matching follows the
// collator's locale and strength as of the last Reset.
//
// All offsets are in UTF-16 code units.
package search

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/language"
	xsearch "golang.org/x/text/search"

	"github.com/dmitrymomot/intl/pkg/collator"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of searchers.
const Kind = "string_search"

// Done is returned by cursor operations when there is no further match.
const Done = -1

var (
	// ErrEmptyPattern is returned when the search pattern is empty.
	ErrEmptyPattern = errors.New("search: empty pattern")
	// ErrEmptyText is returned when the searched text is empty.
	ErrEmptyText = errors.New("search: empty text")
	// ErrOffset is returned for an offset outside the text.
	ErrOffset = errors.New("search: offset out of range")
)

type match struct {
	start, end int // UTF-16 units
}

// Searcher iterates the matches of a pattern in a text. Not safe for
// concurrent use.
type Searcher struct {
	coll    handle.Ref[*collator.Collator]
	text    string
	pattern string
	units   []int // UTF-16 offset of every byte offset of text
	matches []match
	lc      handle.Lifecycle
	offset  int
	current int // index into matches, -1 when none
	overlap bool
}

// New creates a searcher with its own collator for the locale id.
func New(pattern, text, id string) (*Searcher, error) {
	c, err := collator.New(id)
	if err != nil {
		return nil, err
	}
	s, err := newSearcher(pattern, text, handle.Own(c))
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return s, nil
}

// NewWithCollator creates a searcher using the caller's collator.
func NewWithCollator(pattern, text string, c *collator.Collator) (*Searcher, error) {
	if _, err := c.Strength(); err != nil {
		return nil, err
	}
	return newSearcher(pattern, text, handle.Borrow(c))
}

func newSearcher(pattern, text string, ref handle.Ref[*collator.Collator]) (*Searcher, error) {
	switch {
	case pattern == "":
		return nil, status.New("search.New", status.InvalidParameter, ErrEmptyPattern)
	case text == "":
		return nil, status.New("search.New", status.InvalidParameter, ErrEmptyText)
	}
	s := &Searcher{coll: ref}
	if err := s.rebuild(text, pattern, false); err != nil {
		return nil, err
	}
	s.lc.Open(Kind)
	return s, nil
}

func (s *Searcher) live(op string) error {
	if s == nil {
		return handle.Nil(op)
	}
	return s.lc.Check(op)
}

// rebuild compiles pattern against the current collator, finds its matches
// in text and rewinds the cursor. The searcher is left unchanged on error.
func (s *Searcher) rebuild(text, pattern string, overlap bool) error {
	c := s.coll.Get()
	strength, err := c.Strength()
	if err != nil {
		return err
	}
	tag, err := locale.Parse(c.Locale())
	if err != nil {
		tag = language.Und
	}

	var opts []xsearch.Option
	switch strength {
	case collator.Primary:
		opts = append(opts, xsearch.IgnoreCase, xsearch.IgnoreDiacritics, xsearch.IgnoreWidth)
	case collator.Secondary:
		opts = append(opts, xsearch.IgnoreCase, xsearch.IgnoreWidth)
	}
	pat := xsearch.New(tag, opts...).CompileString(pattern)

	units := utf16Offsets(text)
	var matches []match
	for pos := 0; pos < len(text); {
		start, end := pat.IndexString(text[pos:])
		if start < 0 {
			break
		}
		start, end = start+pos, end+pos
		matches = append(matches, match{start: units[start], end: units[end]})
		switch {
		case overlap || end == start:
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
		default:
			pos = end
		}
	}
	s.text, s.pattern, s.overlap = text, pattern, overlap
	s.units, s.matches = units, matches
	s.offset = 0
	s.current = -1
	return nil
}

// utf16Offsets maps each byte offset of s, and len(s), to a UTF-16 offset.
func utf16Offsets(s string) []int {
	out := make([]int, len(s)+1)
	u := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		size := utf8.RuneLen(r)
		if r == utf8.RuneError {
			_, size = utf8.DecodeRuneInString(s[i:])
		}
		for j := range size {
			out[i+j] = u
		}
		u += n
	}
	out[len(s)] = u
	return out
}

func (s *Searcher) textLen() int { return s.units[len(s.text)] }

func (s *Searcher) move(i int) int {
	if i < 0 || i >= len(s.matches) {
		s.current = -1
		return Done
	}
	s.current = i
	s.offset = s.matches[i].start
	return s.matches[i].start
}

// First moves to the first match and returns its start, or Done.
func (s *Searcher) First() (int, error) {
	if err := s.live("search.First"); err != nil {
		return Done, err
	}
	return s.move(0), nil
}

// Last moves to the last match.
func (s *Searcher) Last() (int, error) {
	if err := s.live("search.Last"); err != nil {
		return Done, err
	}
	return s.move(len(s.matches) - 1), nil
}

// Next moves to the match after the current one, or to the first match at or
// after the offset when there is no current match.
func (s *Searcher) Next() (int, error) {
	if err := s.live("search.Next"); err != nil {
		return Done, err
	}
	if s.current >= 0 {
		return s.move(s.current + 1), nil
	}
	return s.move(s.indexFrom(s.offset)), nil
}

// Previous moves to the match before the current one, or to the last match
// starting before the offset.
func (s *Searcher) Previous() (int, error) {
	if err := s.live("search.Previous"); err != nil {
		return Done, err
	}
	if s.current >= 0 {
		return s.move(s.current - 1), nil
	}
	offset := s.offset
	if offset == 0 {
		offset = s.textLen()
	}
	return s.move(s.indexBefore(offset)), nil
}

// Following moves to the first match starting at or after pos.
func (s *Searcher) Following(pos int) (int, error) {
	if err := s.live("search.Following"); err != nil {
		return Done, err
	}
	if err := s.checkOffset("search.Following", pos); err != nil {
		return Done, err
	}
	return s.move(s.indexFrom(pos)), nil
}

// Preceding moves to the last match starting before pos.
func (s *Searcher) Preceding(pos int) (int, error) {
	if err := s.live("search.Preceding"); err != nil {
		return Done, err
	}
	if err := s.checkOffset("search.Preceding", pos); err != nil {
		return Done, err
	}
	return s.move(s.indexBefore(pos)), nil
}

func (s *Searcher) indexFrom(pos int) int {
	for i, m := range s.matches {
		if m.start >= pos {
			return i
		}
	}
	return -1
}

func (s *Searcher) indexBefore(pos int) int {
	for i := len(s.matches) - 1; i >= 0; i-- {
		if s.matches[i].start < pos {
			return i
		}
	}
	return -1
}

func (s *Searcher) checkOffset(op string, pos int) error {
	if pos < 0 || pos > s.textLen() {
		return status.New(op, status.IndexOutOfBounds, ErrOffset)
	}
	return nil
}

// Offset returns the current position.
func (s *Searcher) Offset() (int, error) {
	if err := s.live("search.Offset"); err != nil {
		return Done, err
	}
	return s.offset, nil
}

// SetOffset moves the position without matching and drops the current match.
func (s *Searcher) SetOffset(pos int) error {
	if err := s.live("search.SetOffset"); err != nil {
		return err
	}
	if err := s.checkOffset("search.SetOffset", pos); err != nil {
		return err
	}
	s.offset = pos
	s.current = -1
	return nil
}

// MatchedStart returns the start of the current match, or Done.
func (s *Searcher) MatchedStart() (int, error) {
	if err := s.live("search.MatchedStart"); err != nil {
		return Done, err
	}
	if s.current < 0 {
		return Done, nil
	}
	return s.matches[s.current].start, nil
}

// MatchedLength returns the length of the current match, 0 when none.
func (s *Searcher) MatchedLength() (int, error) {
	if err := s.live("search.MatchedLength"); err != nil {
		return 0, err
	}
	if s.current < 0 {
		return 0, nil
	}
	m := s.matches[s.current]
	return m.end - m.start, nil
}

// MatchedText returns the text of the current match, "" when none.
func (s *Searcher) MatchedText() (string, error) {
	if err := s.live("search.MatchedText"); err != nil {
		return "", err
	}
	if s.current < 0 {
		return "", nil
	}
	m := s.matches[s.current]
	u := utf16.Encode([]rune(s.text))
	return string(utf16.Decode(u[m.start:m.end])), nil
}

// Text returns the searched text.
func (s *Searcher) Text() (string, error) {
	if err := s.live("search.Text"); err != nil {
		return "", err
	}
	return s.text, nil
}

// SetText replaces the text and rewinds.
func (s *Searcher) SetText(text string) error {
	if err := s.live("search.SetText"); err != nil {
		return err
	}
	if text == "" {
		return status.New("search.SetText", status.InvalidParameter, ErrEmptyText)
	}
	return s.rebuild(text, s.pattern, s.overlap)
}

// Pattern returns the pattern.
func (s *Searcher) Pattern() (string, error) {
	if err := s.live("search.Pattern"); err != nil {
		return "", err
	}
	return s.pattern, nil
}

// SetPattern replaces the pattern and rewinds.
func (s *Searcher) SetPattern(pattern string) error {
	if err := s.live("search.SetPattern"); err != nil {
		return err
	}
	if pattern == "" {
		return status.New("search.SetPattern", status.InvalidParameter, ErrEmptyPattern)
	}
	return s.rebuild(s.text, pattern, s.overlap)
}

// Collator returns the collator in use. The searcher may own it; callers
// must not close it.
func (s *Searcher) Collator() (*collator.Collator, error) {
	if err := s.live("search.Collator"); err != nil {
		return nil, err
	}
	return s.coll.Get(), nil
}

// OwnsCollator reports whether Close releases the collator.
func (s *Searcher) OwnsCollator() bool { return s != nil && s.coll.Owned() }

// SetCollator switches to the caller's collator, releasing an owned one.
func (s *Searcher) SetCollator(c *collator.Collator) error {
	if err := s.live("search.SetCollator"); err != nil {
		return err
	}
	if _, err := c.Strength(); err != nil {
		return err
	}
	if err := s.coll.Replace(handle.Borrow(c)); err != nil {
		return err
	}
	return s.rebuild(s.text, s.pattern, s.overlap)
}

// SetOverlap controls whether matches may overlap.
func (s *Searcher) SetOverlap(on bool) error {
	if err := s.live("search.SetOverlap"); err != nil {
		return err
	}
	return s.rebuild(s.text, s.pattern, on)
}

// Reset rewinds and picks up changes made to the collator.
func (s *Searcher) Reset() error {
	if err := s.live("search.Reset"); err != nil {
		return err
	}
	return s.rebuild(s.text, s.pattern, s.overlap)
}

// Close releases the searcher and the collator when it owns it.
func (s *Searcher) Close() error {
	if s == nil {
		return handle.Nil("search.Close")
	}
	if err := s.lc.Release("search.Close"); err != nil {
		return err
	}
	return s.coll.Release()
}
