// Package patterngen turns skeletons ("yMMMd", "jm") into locale date
// patterns ("MMM d, y", "h:mm a").
//
// A Generator is stateful: AddPattern changes later answers and puts the
// skeleton enumerations opened before it out of sync.
package patterngen

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/localedata"
	"github.com/dmitrymomot/intl/pkg/numfmt"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of pattern generators.
const Kind = "date_pattern_generator"

// ConflictStatus reports what AddPattern collided with.
type ConflictStatus int

const (
	NoConflict ConflictStatus = iota
	// BaseConflict means a pattern with the same base skeleton exists.
	BaseConflict
	// Conflict means a pattern with the same skeleton exists.
	Conflict
)

func (c ConflictStatus) String() string {
	switch c {
	case BaseConflict:
		return "base_conflict"
	case Conflict:
		return "conflict"
	}
	return "no_conflict"
}

// singles give every field group a pattern of its own, so any request can
// be assembled.
var singles = []string{"G", "y", "Q", "M", "w", "W", "E", "D", "F", "d", "g", "a", "H", "m", "s", "S", "A", "v"}

// Generator is a date-time pattern generator. Not safe for concurrent use.
type Generator struct {
	id        string
	data      localedata.Data
	patterns  map[string]string
	parsed    map[string]skeleton
	bases     map[string]string
	skeletons *enum.List
	baseList  *enum.List
	dateTime  string
	decimal   string
	hourChar  rune
	lc        handle.Lifecycle
}

// New opens a generator seeded with the patterns of the locale id.
func New(id string) (*Generator, error) {
	const op = "patterngen.New"
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	g := &Generator{
		id:        locale.ID(tag),
		patterns:  make(map[string]string),
		parsed:    make(map[string]skeleton),
		bases:     make(map[string]string),
		skeletons: enum.NewList(),
		baseList:  enum.NewList(),
	}
	if g.data, err = localedata.Default().Lookup(g.id); err != nil {
		return nil, err
	}
	g.dateTime = g.data.DateTimePattern("{1}", "{0}")
	if g.decimal, err = decimalOf(g.id); err != nil {
		return nil, err
	}
	g.hourChar = hourOf(g.data)

	for _, p := range singles {
		if _, _, err := g.add(op, p, "", false); err != nil {
			return nil, err
		}
	}
	for _, styles := range []localedata.Styles{g.data.Date, g.data.Time} {
		for _, s := range []localedata.Style{localedata.Full, localedata.Long, localedata.Medium, localedata.Short} {
			p, err := styles.Get(s)
			if err != nil || p == "" {
				continue
			}
			if _, _, err := g.add(op, p, "", false); err != nil {
				return nil, err
			}
		}
	}
	for _, k := range slices.Sorted(maps.Keys(g.data.Skeletons)) {
		if _, _, err := g.add(op, g.data.Skeletons[k], k, true); err != nil {
			return nil, err
		}
	}
	g.lc.Open(Kind)
	return g, nil
}

func decimalOf(id string) (string, error) {
	nf, err := numfmt.New(numfmt.Decimal, "", id)
	if err != nil {
		return "", err
	}
	defer func() { _ = nf.Close() }()
	return nf.Symbol(numfmt.DecimalSeparator)
}

// hourOf picks the hour letter of the locale's short time pattern.
func hourOf(d localedata.Data) rune {
	short, _ := d.Time.Get(localedata.Short)
	tokens, err := tokenize("", short)
	if err != nil {
		return 'H'
	}
	for _, t := range tokens {
		switch t.field.letter {
		case 'h', 'H', 'k', 'K':
			return t.field.letter
		}
	}
	return 'H'
}

func (g *Generator) live(op string) error {
	if g == nil {
		return handle.Nil(op)
	}
	return g.lc.Check(op)
}

// Kind returns the handle kind.
func (g *Generator) Kind() string { return Kind }

// Locale returns the canonical ID the generator was opened for.
func (g *Generator) Locale() string { return g.id }

// Skeleton returns the canonical skeleton of pattern: its fields in a fixed
// order with literals removed.
func (g *Generator) Skeleton(pattern string) (string, error) {
	const op = "patterngen.Skeleton"
	if err := g.live(op); err != nil {
		return "", err
	}
	s, err := parseSkeleton(op, pattern)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// BaseSkeleton is Skeleton with numeric widths dropped: "dd-MMM" becomes
// "MMMd".
func (g *Generator) BaseSkeleton(pattern string) (string, error) {
	const op = "patterngen.BaseSkeleton"
	if err := g.live(op); err != nil {
		return "", err
	}
	s, err := parseSkeleton(op, pattern)
	if err != nil {
		return "", err
	}
	return s.base().String(), nil
}

// AddPattern registers pattern under its skeleton. Without override an
// existing pattern for the same skeleton or base skeleton wins and is
// returned with the conflict kind; with override the new pattern replaces
// it and the conflict is still reported.
func (g *Generator) AddPattern(pattern string, override bool) (string, ConflictStatus, error) {
	const op = "patterngen.AddPattern"
	if err := g.live(op); err != nil {
		return "", NoConflict, err
	}
	return g.add(op, pattern, "", override)
}

// add stores pattern under skel, or under the skeleton of pattern when skel
// is empty.
func (g *Generator) add(op, pattern, skel string, override bool) (string, ConflictStatus, error) {
	src := skel
	if src == "" {
		src = pattern
	}
	s, err := parseSkeleton(op, src)
	if err != nil {
		return "", NoConflict, err
	}
	if s.empty() {
		return "", NoConflict, status.New(op, status.InvalidParameter, ErrEmptySkeleton)
	}
	if _, err := tokenize(op, pattern); err != nil {
		return "", NoConflict, err
	}
	key, base := s.String(), s.base().String()

	var (
		conflicting string
		conflict    = NoConflict
	)
	if prev, ok := g.bases[base]; ok {
		conflicting, conflict = prev, BaseConflict
		if !override {
			return conflicting, conflict, nil
		}
	}
	if prev, ok := g.patterns[key]; ok {
		conflicting, conflict = prev, Conflict
		if !override {
			return conflicting, conflict, nil
		}
	} else {
		g.skeletons.Append(key)
		g.parsed[key] = s
	}
	g.patterns[key] = pattern
	if _, ok := g.bases[base]; !ok {
		g.baseList.Append(base)
	}
	g.bases[base] = pattern
	return conflicting, conflict, nil
}

// PatternForSkeleton returns the pattern stored for exactly skeleton, or ""
// when there is none.
func (g *Generator) PatternForSkeleton(skel string) (string, error) {
	const op = "patterngen.PatternForSkeleton"
	if err := g.live(op); err != nil {
		return "", err
	}
	s, err := parseSkeleton(op, skel)
	if err != nil {
		return "", err
	}
	return g.patterns[s.String()], nil
}

// OpenSkeletons lists the stored skeletons. The enumeration goes out of
// sync on the next AddPattern.
func (g *Generator) OpenSkeletons() (*enum.Enumeration, error) {
	if err := g.live("patterngen.OpenSkeletons"); err != nil {
		return nil, err
	}
	return enum.New(g.skeletons), nil
}

// OpenBaseSkeletons lists the distinct base skeletons.
func (g *Generator) OpenBaseSkeletons() (*enum.Enumeration, error) {
	if err := g.live("patterngen.OpenBaseSkeletons"); err != nil {
		return nil, err
	}
	return enum.New(g.baseList), nil
}

// DateTimeFormat returns the glue of date and time parts, "{1}" standing
// for the date and "{0}" for the time.
func (g *Generator) DateTimeFormat() (string, error) {
	if err := g.live("patterngen.DateTimeFormat"); err != nil {
		return "", err
	}
	return g.dateTime, nil
}

func (g *Generator) SetDateTimeFormat(glue string) error {
	const op = "patterngen.SetDateTimeFormat"
	if err := g.live(op); err != nil {
		return err
	}
	if !strings.Contains(glue, "{0}") || !strings.Contains(glue, "{1}") {
		return status.Invalid(op, "date time format %q lacks {0} or {1}", glue)
	}
	g.dateTime = glue
	return nil
}

// Decimal returns the separator put between seconds and fractions.
func (g *Generator) Decimal() (string, error) {
	if err := g.live("patterngen.Decimal"); err != nil {
		return "", err
	}
	return g.decimal, nil
}

func (g *Generator) SetDecimal(decimal string) error {
	if err := g.live("patterngen.SetDecimal"); err != nil {
		return err
	}
	g.decimal = decimal
	return nil
}

// Clone returns an independent generator with the same patterns.
func (g *Generator) Clone() (*Generator, error) {
	if err := g.live("patterngen.Clone"); err != nil {
		return nil, err
	}
	c := &Generator{
		id:        g.id,
		data:      g.data,
		patterns:  maps.Clone(g.patterns),
		parsed:    maps.Clone(g.parsed),
		bases:     maps.Clone(g.bases),
		skeletons: enum.NewList(g.skeletons.Snapshot()...),
		baseList:  enum.NewList(g.baseList.Snapshot()...),
		dateTime:  g.dateTime,
		decimal:   g.decimal,
		hourChar:  g.hourChar,
	}
	c.lc.Open(Kind)
	return c, nil
}

// Close releases the generator. Enumerations opened on it stay usable.
func (g *Generator) Close() error {
	if g == nil {
		return handle.Nil("patterngen.Close")
	}
	return g.lc.Release("patterngen.Close")
}

func quoteLiteral(s string) string {
	for _, r := range s {
		if unicode.IsLetter(r) || r == '\'' {
			return "'" + strings.ReplaceAll(s, "'", "''") + "'"
		}
	}
	return s
}
