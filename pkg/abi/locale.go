package abi

import (
	"context"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/locale"
)

// LocaleDefault writes the process default locale into dst.
func (s *Surface) LocaleDefault(dst []byte, capacity int) (int, ErrorCode) {
	return chars(dst, capacity, locale.Default(), nil)
}

// LocaleSetDefault replaces the process default locale.
func (s *Surface) LocaleSetDefault(id string) ErrorCode {
	return code(locale.SetDefault(id))
}

// LocaleLanguage writes the language code of id into dst.
func (s *Surface) LocaleLanguage(id string, dst []byte, capacity int) (int, ErrorCode) {
	v, err := locale.Language(id)
	return chars(dst, capacity, v, err)
}

// LocaleCountry writes the region code of id into dst.
func (s *Surface) LocaleCountry(id string, dst []byte, capacity int) (int, ErrorCode) {
	v, err := locale.Country(id)
	return chars(dst, capacity, v, err)
}

// LocaleCanonicalize writes the canonical form of id into dst.
func (s *Surface) LocaleCanonicalize(id string, dst []byte, capacity int) (int, ErrorCode) {
	v, err := locale.Canonicalize(id)
	return chars(dst, capacity, v, err)
}

// LocaleToLanguageTag writes the BCP 47 form of id into dst.
func (s *Surface) LocaleToLanguageTag(id string, dst []byte, capacity int) (int, ErrorCode) {
	v, err := locale.ToLanguageTag(id)
	return chars(dst, capacity, v, err)
}

// LocaleDisplayName writes the name of id, in the language of displayID,
// into dst as UTF-16.
func (s *Surface) LocaleDisplayName(id, displayID string, dst []uint16, capacity int) (int, ErrorCode) {
	v, err := locale.DisplayName(id, displayID)
	return text(dst, capacity, v, err)
}

// LocaleKeywordValue writes the value of keyword name in id into dst.
func (s *Surface) LocaleKeywordValue(id, name string, dst []byte, capacity int) (int, ErrorCode) {
	v, err := locale.KeywordValue(id, name)
	return chars(dst, capacity, v, err)
}

// LocaleOpenKeywords enumerates the keywords of id.
func (s *Surface) LocaleOpenKeywords(id string) (Handle, ErrorCode) {
	e, err := locale.OpenKeywords(id)
	return create(s, "abi.LocaleOpenKeywords", e, err)
}

// LocaleIsRightToLeft reports whether the script of id is written right to
// left.
func (s *Surface) LocaleIsRightToLeft(ctx context.Context, id string) bool {
	v, err := locale.IsRightToLeft(id)
	return record(ctx, v, err)
}

// LocaleCountAvailable returns the number of available locales.
func (s *Surface) LocaleCountAvailable(ctx context.Context) int {
	return record(ctx, locale.CountAvailable(), nil)
}

// LocaleAvailable returns the i-th available locale. An index past the end
// returns "" and records IndexOutOfBounds.
func (s *Surface) LocaleAvailable(ctx context.Context, i int) string {
	id, err := locale.Available(i)
	return record(ctx, id, err)
}

// LocaleOpenAvailable enumerates the available locales.
func (s *Surface) LocaleOpenAvailable(ctx context.Context) Handle {
	return record(ctx, s.put("abi.LocaleOpenAvailable", locale.OpenAvailable()), nil)
}

// LocaleAcceptLanguage picks the best of available for an Accept-Language
// header given as UTF-16.
func (s *Surface) LocaleAcceptLanguage(header []uint16, headerLength int, available []string, dst []byte, capacity int) (int, locale.AcceptResult, ErrorCode) {
	h, err := buffer.Input16(header, headerLength)
	if err != nil {
		return 0, locale.AcceptFailed, code(err)
	}
	id, res, err := locale.AcceptLanguage(h, available)
	n, c := chars(dst, capacity, id, err)
	return n, res, c
}
