// Package locale converts between ICU locale IDs and BCP 47 tags, holds the
// process default locale and answers locale queries through
// golang.org/x/text/language and golang.org/x/text/language/display.
//
// IDs use the ICU form: language, script, region and variants joined by
// underscores, keywords after '@' (sr_Latn_RS, de_DE@collation=phonebook).
// BCP 47 input is accepted wherever an ID is.
package locale

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/internal/diag"
	"github.com/dmitrymomot/intl/pkg/enum"
	"github.com/dmitrymomot/intl/pkg/status"
)

var defaultID atomic.Value

func init() {
	defaultID.Store("en_US")
}

// Default returns the process default locale ID.
func Default() string { return defaultID.Load().(string) }

// SetDefault replaces the process default locale. Callers serialize it
// against every reader. The empty ID restores en_US.
func SetDefault(id string) error {
	if id == "" {
		id = "en_US"
	}
	tag, err := Parse(id)
	if err != nil {
		return err
	}
	canonical := ID(tag)
	prev := defaultID.Swap(canonical).(string)
	diag.Info(context.Background(), "default locale changed",
		slog.String("from", prev), slog.String("to", canonical))
	return nil
}

// Resolve parses id, substituting the default locale for the empty ID.
func Resolve(id string) (language.Tag, error) {
	if id == "" {
		id = Default()
	}
	return Parse(id)
}

// Canonicalize returns the canonical ICU form of id.
func Canonicalize(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	return ID(tag), nil
}

// ToLanguageTag converts an ICU ID to BCP 47.
func ToLanguageTag(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

// ForLanguageTag converts BCP 47 to an ICU ID.
func ForLanguageTag(bcp47 string) (string, error) {
	tag, err := language.Parse(bcp47)
	if err != nil {
		return "", status.Invalid("locale.ForLanguageTag", "%w %q: %w", ErrMalformedID, bcp47, err)
	}
	return ID(tag), nil
}

// Language returns the language code of id, "" for und.
func Language(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	b, _, _ := tag.Raw()
	if b.String() == "und" {
		return "", nil
	}
	return b.String(), nil
}

// Script returns the explicit script of id, "" when absent.
func Script(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	_, s, _ := tag.Raw()
	if s.String() == "Zzzz" {
		return "", nil
	}
	return s.String(), nil
}

// Country returns the explicit region of id, "" when absent.
func Country(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	_, _, r := tag.Raw()
	if r.String() == "ZZ" {
		return "", nil
	}
	return r.String(), nil
}

// Variant returns the variants of id joined by underscores.
func Variant(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	vs := make([]string, 0, 1)
	for _, v := range tag.Variants() {
		vs = append(vs, strings.ToUpper(v.String()))
	}
	if tag.TypeForKey("va") == "posix" {
		vs = append(vs, "POSIX")
	}
	return strings.Join(vs, "_"), nil
}

// BaseName returns id without keywords.
func BaseName(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	full := ID(tag)
	base, _, _ := strings.Cut(full, "@")
	return base, nil
}

// ISO3Language returns the ISO 639-2 code of the language of id.
func ISO3Language(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	b, _, _ := tag.Raw()
	if b.String() == "und" {
		return "", nil
	}
	return b.ISO3(), nil
}

// ISO3Country returns the ISO 3166-1 alpha-3 code of the region of id.
func ISO3Country(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	_, _, r := tag.Raw()
	if r.String() == "ZZ" {
		return "", nil
	}
	return r.ISO3(), nil
}

// AddLikelySubtags fills in the most likely script and region.
func AddLikelySubtags(id string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	full, err := maximize(tag)
	if err != nil {
		return "", status.New("locale.AddLikelySubtags", status.InternalProgram, err)
	}
	out, err := language.Compose(append([]any{full}, withoutSubtags(tag)...)...)
	if err != nil {
		return "", status.New("locale.AddLikelySubtags", status.InternalProgram, err)
	}
	return ID(out), nil
}

// MinimizeSubtags removes the script and region when they are the likely ones.
func MinimizeSubtags(id string) (string, error) {
	const op = "locale.MinimizeSubtags"
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	full, err := maximize(tag)
	if err != nil {
		return "", status.New(op, status.InternalProgram, err)
	}
	b, s, r := full.Raw()
	rest := withoutSubtags(tag)
	for _, parts := range [][]any{{b}, {b, r}, {b, s}} {
		trial, err := language.Compose(parts...)
		if err != nil {
			continue
		}
		if m, err := maximize(trial); err == nil && m.String() == full.String() {
			out, err := language.Compose(append(parts, rest...)...)
			if err != nil {
				return "", status.New(op, status.InternalProgram, err)
			}
			return ID(out), nil
		}
	}
	return ID(tag), nil
}

func maximize(tag language.Tag) (language.Tag, error) {
	b, _ := tag.Base()
	s, _ := tag.Script()
	r, _ := tag.Region()
	return language.Compose(b, s, r)
}

// withoutSubtags returns the variants and extensions of tag as Compose parts.
func withoutSubtags(tag language.Tag) []any {
	var parts []any
	for _, v := range tag.Variants() {
		parts = append(parts, v)
	}
	for _, e := range tag.Extensions() {
		parts = append(parts, e)
	}
	return parts
}

// Keywords returns the ICU keywords of id sorted by name.
func Keywords(id string) ([]Keyword, error) {
	tag, err := Parse(id)
	if err != nil {
		return nil, err
	}
	return keywords(tag), nil
}

// OpenKeywords enumerates the keyword names of id.
func OpenKeywords(id string) (*enum.Enumeration, error) {
	kws, err := Keywords(id)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(kws))
	for i, kw := range kws {
		names[i] = kw.Name
	}
	return enum.FromStrings(names...), nil
}

// KeywordValue returns the value of keyword name in id, "" when unset.
func KeywordValue(id, name string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	key, ok := bcpKey(name)
	if !ok {
		return "", status.Invalid("locale.KeywordValue", "%w: %q", ErrUnknownKeyword, name)
	}
	typ := tag.TypeForKey(key)
	if typ == "" {
		return "", nil
	}
	return icuValue(key, typ), nil
}

// SetKeywordValue returns id with keyword name set to value. An empty value
// removes the keyword.
func SetKeywordValue(id, name, value string) (string, error) {
	tag, err := Parse(id)
	if err != nil {
		return "", err
	}
	tag, err = setKeyword(tag, name, value)
	if err != nil {
		return "", status.New("locale.SetKeywordValue", status.InvalidParameter, err)
	}
	return ID(tag), nil
}

var rtlScripts = map[string]bool{
	"Adlm": true, "Arab": true, "Hebr": true, "Mand": true, "Mend": true,
	"Nkoo": true, "Rohg": true, "Samr": true, "Syrc": true, "Thaa": true,
	"Yezi": true, "Phnx": true, "Armi": true, "Avst": true, "Nbat": true,
}

// IsRightToLeft reports whether the likely script of id is written right to left.
func IsRightToLeft(id string) (bool, error) {
	tag, err := Parse(id)
	if err != nil {
		return false, err
	}
	s, _ := tag.Script()
	return rtlScripts[s.String()], nil
}
