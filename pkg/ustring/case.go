// Package ustring implements string utilities over Go strings and UTF-16 code
// units: locale-aware case mapping (golang.org/x/text/cases), UTF-8/UTF-16
// conversion and code point counting and ordering.
//
// Every text-producing function has an Into variant writing UTF-16 or UTF-8
// into a caller buffer with the preflight convention of package buffer.
package ustring

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/buffer"
	"github.com/dmitrymomot/intl/pkg/locale"
)

func mapCase(s, id string, mk func(language.Tag) cases.Caser) (string, error) {
	tag, err := locale.Resolve(id)
	if err != nil {
		return "", err
	}
	return mk(tag).String(s), nil
}

// ToUpper maps s to upper case with the rules of the locale id.
func ToUpper(s, id string) (string, error) {
	return mapCase(s, id, func(t language.Tag) cases.Caser { return cases.Upper(t) })
}

// ToLower maps s to lower case with the rules of the locale id.
func ToLower(s, id string) (string, error) {
	return mapCase(s, id, func(t language.Tag) cases.Caser { return cases.Lower(t) })
}

// ToTitle title-cases each word of s.
func ToTitle(s, id string) (string, error) {
	return mapCase(s, id, func(t language.Tag) cases.Caser { return cases.Title(t) })
}

// FoldCase applies full case folding, independent of locale.
func FoldCase(s string) string {
	return cases.Fold().String(s)
}

func caseInto(dst []uint16, capacity int, src []uint16, srcLength int, fn func(string) (string, error)) (int, error) {
	if err := buffer.Check(dst, capacity); err != nil {
		return 0, err
	}
	in, err := buffer.Input16(src, srcLength)
	if err != nil {
		return 0, err
	}
	out, err := fn(in)
	if err != nil {
		return 0, err
	}
	return buffer.FillUTF16(dst, capacity, out, buffer.NulTerminated)
}

// ToUpperInto is ToUpper over UTF-16 buffers. srcLength -1 means src is
// terminated by a zero unit.
func ToUpperInto(dst []uint16, capacity int, src []uint16, srcLength int, id string) (int, error) {
	return caseInto(dst, capacity, src, srcLength, func(s string) (string, error) { return ToUpper(s, id) })
}

// ToLowerInto is ToLower over UTF-16 buffers.
func ToLowerInto(dst []uint16, capacity int, src []uint16, srcLength int, id string) (int, error) {
	return caseInto(dst, capacity, src, srcLength, func(s string) (string, error) { return ToLower(s, id) })
}

// ToTitleInto is ToTitle over UTF-16 buffers.
func ToTitleInto(dst []uint16, capacity int, src []uint16, srcLength int, id string) (int, error) {
	return caseInto(dst, capacity, src, srcLength, func(s string) (string, error) { return ToTitle(s, id) })
}

// FoldCaseInto is FoldCase over UTF-16 buffers.
func FoldCaseInto(dst []uint16, capacity int, src []uint16, srcLength int) (int, error) {
	return caseInto(dst, capacity, src, srcLength, func(s string) (string, error) { return FoldCase(s), nil })
}
