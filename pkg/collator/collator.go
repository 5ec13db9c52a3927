// Package collator compares strings by locale rules with
// golang.org/x/text/collate.
//
// A Collator is rebuilt from its locale and attribute settings whenever an
// attribute changes. It keeps internal buffers and is not safe for concurrent
// use; clone it per goroutine.
package collator

import (
	"bytes"
	"errors"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/handle"
	"github.com/dmitrymomot/intl/pkg/locale"
	"github.com/dmitrymomot/intl/pkg/status"
)

// Kind is the handle kind of collators.
const Kind = "collator"

var (
	// ErrInvalidAttribute is returned for an unknown attribute or a value it does not accept.
	ErrInvalidAttribute = errors.New("collator: invalid attribute or value")

	// ErrInvalidStrength is returned for a value that is not a Strength constant.
	ErrInvalidStrength = errors.New("collator: invalid strength")
)

// identicalSeparator separates the collation key from the code point tail
// at identical strength.
const identicalSeparator = 0x01

// Collator compares strings for one locale.
type Collator struct {
	coll *collate.Collator
	buf  collate.Buffer
	tag  language.Tag
	id   string
	lc   handle.Lifecycle
	set  settings
}

// New opens a collator for the locale id ("" is the default locale). Collation
// keywords of the ID (collation=phonebook, colnumeric=yes) apply.
func New(id string) (*Collator, error) {
	tag, err := locale.Resolve(id)
	if err != nil {
		return nil, err
	}
	c := &Collator{tag: tag, id: locale.ID(tag), set: defaultSettings()}
	c.adoptTagSettings()
	c.rebuild()
	c.lc.Open(Kind)
	return c, nil
}

// adoptTagSettings reflects the collation keywords of the locale in the settings.
func (c *Collator) adoptTagSettings() {
	switch c.tag.TypeForKey("ks") {
	case "level1":
		c.set.strength = Primary
	case "level2":
		c.set.strength = Secondary
	case "level3":
		c.set.strength = Tertiary
	case "level4":
		c.set.strength = Quaternary
	case "identic":
		c.set.strength = Identical
	}
	if c.tag.TypeForKey("kn") == "true" {
		c.set.numeric = On
	}
}

func (c *Collator) rebuild() {
	tag := c.tag
	for _, kv := range [][2]string{
		{"kb", boolType(c.set.french)},
		{"kc", boolType(c.set.caseLevel)},
		{"ka", alternateType(c.set.alternate)},
		{"kf", caseFirstType(c.set.caseFirst)},
		{"ks", ""},
		{"kn", ""},
	} {
		if t, err := tag.SetTypeForKey(kv[0], kv[1]); err == nil {
			tag = t
		}
	}

	var opts []collate.Option
	switch c.set.effectiveStrength() {
	case Primary:
		opts = append(opts, collate.IgnoreCase, collate.IgnoreDiacritics, collate.IgnoreWidth)
	case Secondary:
		opts = append(opts, collate.IgnoreCase, collate.IgnoreWidth)
	}
	if c.set.numeric == On {
		opts = append(opts, collate.Numeric)
	}
	c.coll = collate.New(tag, opts...)
}

func boolType(v Value) string {
	switch v {
	case On:
		return "true"
	case Off:
		return "false"
	}
	return ""
}

func alternateType(v Value) string {
	switch v {
	case Shifted:
		return "shifted"
	case NonIgnorable:
		return "noignore"
	}
	return ""
}

func caseFirstType(v Value) string {
	switch v {
	case UpperFirst:
		return "upper"
	case LowerFirst:
		return "lower"
	case Off:
		return "false"
	}
	return ""
}

func (c *Collator) live(op string) error {
	if c == nil {
		return handle.Nil(op)
	}
	return c.lc.Check(op)
}

// Locale returns the canonical ID the collator was opened for.
func (c *Collator) Locale() string { return c.id }

// Strength returns the effective comparison level.
func (c *Collator) Strength() (Strength, error) {
	if err := c.live("collator.Strength"); err != nil {
		return 0, err
	}
	return c.set.effectiveStrength(), nil
}

// SetStrength changes the comparison level.
func (c *Collator) SetStrength(s Strength) error {
	if err := c.live("collator.SetStrength"); err != nil {
		return err
	}
	if !s.valid() {
		return status.New("collator.SetStrength", status.InvalidParameter, ErrInvalidStrength)
	}
	c.set.strength = s
	c.rebuild()
	return nil
}

// Attribute returns the value of a.
func (c *Collator) Attribute(a Attribute) (Value, error) {
	if err := c.live("collator.Attribute"); err != nil {
		return 0, err
	}
	v, ok := c.set.get(a)
	if !ok {
		return 0, status.New("collator.Attribute", status.InvalidParameter, ErrInvalidAttribute)
	}
	return v, nil
}

// SetAttribute changes a. Default restores the locale behaviour.
func (c *Collator) SetAttribute(a Attribute, v Value) error {
	if err := c.live("collator.SetAttribute"); err != nil {
		return err
	}
	if !c.set.set(a, v) {
		return status.New("collator.SetAttribute", status.InvalidParameter, ErrInvalidAttribute)
	}
	c.rebuild()
	return nil
}

// Compare orders a and b.
func (c *Collator) Compare(a, b string) (Result, error) {
	if err := c.live("collator.Compare"); err != nil {
		return Equal, err
	}
	return c.compare(a, b), nil
}

func (c *Collator) compare(a, b string) Result {
	r := c.coll.CompareString(a, b)
	if r == 0 && c.set.effectiveStrength() == Identical {
		r = strings.Compare(norm.NFD.String(a), norm.NFD.String(b))
	}
	return Result(r)
}

// Equal reports whether a and b compare equal.
func (c *Collator) Equal(a, b string) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r == Equal, err
}

// Greater reports whether a sorts after b.
func (c *Collator) Greater(a, b string) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r == Greater, err
}

// GreaterOrEqual reports whether a does not sort before b.
func (c *Collator) GreaterOrEqual(a, b string) (bool, error) {
	r, err := c.Compare(a, b)
	return err == nil && r != Less, err
}

// SortKey returns a key whose byte order matches Compare.
func (c *Collator) SortKey(s string) ([]byte, error) {
	if err := c.live("collator.SortKey"); err != nil {
		return nil, err
	}
	return c.key(s), nil
}

func (c *Collator) key(s string) []byte {
	c.buf.Reset()
	key := slices.Clone(c.coll.KeyFromString(&c.buf, s))
	if c.set.effectiveStrength() == Identical {
		key = append(key, identicalSeparator)
		key = append(key, norm.NFD.String(s)...)
	}
	return key
}

// SortKeyInto writes the sort key of s into dst and returns its full length.
// A key longer than capacity is truncated and reported as
// WarnSortKeyTooShort; the caller retries with the returned length.
func (c *Collator) SortKeyInto(s string, dst []byte, capacity int) (int, error) {
	if err := c.live("collator.SortKeyInto"); err != nil {
		return 0, err
	}
	n, err := buffer.Fill(dst, capacity, c.key(s), buffer.Unterminated)
	if errors.Is(err, status.BufferOverflow) {
		return n, status.New("collator.SortKeyInto", status.WarnSortKeyTooShort, nil)
	}
	return n, err
}

// CompareKeys orders two sort keys.
func CompareKeys(a, b []byte) Result {
	return Result(bytes.Compare(a, b))
}

// Sort sorts items in place.
func (c *Collator) Sort(items []string) error {
	if err := c.live("collator.Sort"); err != nil {
		return err
	}
	slices.SortStableFunc(items, func(a, b string) int { return int(c.compare(a, b)) })
	return nil
}

// Clone returns an independent collator with the same locale and settings.
func (c *Collator) Clone() (*Collator, error) {
	if err := c.live("collator.Clone"); err != nil {
		return nil, err
	}
	out := &Collator{tag: c.tag, id: c.id, set: c.set}
	out.rebuild()
	out.lc.Open(Kind)
	return out, nil
}

// Close releases the collator.
func (c *Collator) Close() error {
	if c == nil {
		return handle.Nil("collator.Close")
	}
	return c.lc.Release("collator.Close")
}

var available = func() []string {
	tags := collate.Supported()
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, locale.ID(t))
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}()

// CountAvailable returns the number of locales with collation data.
func CountAvailable() int { return len(available) }

// Available returns the i-th locale with collation data.
func Available(i int) (string, error) {
	if i < 0 || i >= len(available) {
		return "", status.New("collator.Available", status.IndexOutOfBounds, nil)
	}
	return available[i], nil
}

// OpenAvailable enumerates the locales with collation data.
func OpenAvailable() *enum.Enumeration {
	return enum.New(enum.Strings(available))
}
