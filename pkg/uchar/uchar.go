// Package uchar exposes Unicode character properties, simple case mappings
// and character names.
package uchar

import (
	"errors"
	"unicode"

	"github.com/dmitrymomot/intl/pkg/status"
)

var (
	// ErrInvalidCodePoint is returned for a value outside 0..10FFFF.
	ErrInvalidCodePoint = errors.New("uchar: invalid code point")

	// ErrUnknownName is returned when no character has the given name.
	ErrUnknownName = errors.New("uchar: no character with that name")
)

// Category is a Unicode general category.
type Category int

const (
	Unassigned Category = iota
	UppercaseLetter
	LowercaseLetter
	TitlecaseLetter
	ModifierLetter
	OtherLetter
	NonSpacingMark
	EnclosingMark
	CombiningSpacingMark
	DecimalDigitNumber
	LetterNumber
	OtherNumber
	SpaceSeparator
	LineSeparator
	ParagraphSeparator
	Control
	Format
	PrivateUse
	Surrogate
	DashPunctuation
	StartPunctuation
	EndPunctuation
	ConnectorPunctuation
	OtherPunctuation
	MathSymbol
	CurrencySymbol
	ModifierSymbol
	OtherSymbol
	InitialPunctuation
	FinalPunctuation
)

var categories = []struct {
	cat   Category
	table *unicode.RangeTable
}{
	{UppercaseLetter, unicode.Lu},
	{LowercaseLetter, unicode.Ll},
	{TitlecaseLetter, unicode.Lt},
	{ModifierLetter, unicode.Lm},
	{OtherLetter, unicode.Lo},
	{NonSpacingMark, unicode.Mn},
	{EnclosingMark, unicode.Me},
	{CombiningSpacingMark, unicode.Mc},
	{DecimalDigitNumber, unicode.Nd},
	{LetterNumber, unicode.Nl},
	{OtherNumber, unicode.No},
	{SpaceSeparator, unicode.Zs},
	{LineSeparator, unicode.Zl},
	{ParagraphSeparator, unicode.Zp},
	{Control, unicode.Cc},
	{Format, unicode.Cf},
	{PrivateUse, unicode.Co},
	{Surrogate, unicode.Cs},
	{DashPunctuation, unicode.Pd},
	{StartPunctuation, unicode.Ps},
	{EndPunctuation, unicode.Pe},
	{ConnectorPunctuation, unicode.Pc},
	{OtherPunctuation, unicode.Po},
	{MathSymbol, unicode.Sm},
	{CurrencySymbol, unicode.Sc},
	{ModifierSymbol, unicode.Sk},
	{OtherSymbol, unicode.So},
	{InitialPunctuation, unicode.Pi},
	{FinalPunctuation, unicode.Pf},
}

// Table returns the range table of the category, nil for Unassigned.
func (c Category) Table() *unicode.RangeTable {
	for _, e := range categories {
		if e.cat == c {
			return e.table
		}
	}
	return nil
}

func valid(op string, r rune) error {
	if r < 0 || r > unicode.MaxRune {
		return status.New(op, status.InvalidParameter, ErrInvalidCodePoint)
	}
	return nil
}

// GeneralCategory returns the general category of r.
func GeneralCategory(r rune) (Category, error) {
	if err := valid("uchar.GeneralCategory", r); err != nil {
		return Unassigned, err
	}
	return category(r), nil
}

func category(r rune) Category {
	for _, e := range categories {
		if unicode.Is(e.table, r) {
			return e.cat
		}
	}
	return Unassigned
}

// Script returns the script name of r ("Latin", "Common"), or "Unknown".
func Script(r rune) (string, error) {
	if err := valid("uchar.Script", r); err != nil {
		return "", err
	}
	for name, table := range unicode.Scripts {
		if unicode.Is(table, r) {
			return name, nil
		}
	}
	return "Unknown", nil
}

// IsAlphabetic reports the Alphabetic property.
func IsAlphabetic(r rune) bool {
	return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Other_Alphabetic)
}

// IsLowercase reports the Lowercase property.
func IsLowercase(r rune) bool {
	return unicode.In(r, unicode.Ll, unicode.Other_Lowercase)
}

// IsUppercase reports the Uppercase property.
func IsUppercase(r rune) bool {
	return unicode.In(r, unicode.Lu, unicode.Other_Uppercase)
}

// IsWhitespace reports whether r is a breaking space or a line or
// paragraph separator, or one of the ASCII and information separator
// controls. No-break spaces are not whitespace.
func IsWhitespace(r rune) bool {
	switch r {
	case 0x00a0, 0x2007, 0x202f:
		return false
	case '\t', '\n', '\v', '\f', '\r', 0x1c, 0x1d, 0x1e, 0x1f:
		return true
	}
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}

// IsDigit reports whether r is a decimal digit (Nd).
func IsDigit(r rune) bool { return unicode.Is(unicode.Nd, r) }

// DigitValue returns the decimal value of r, or -1 when r is not a decimal
// digit.
func DigitValue(r rune) int {
	for _, rg := range unicode.Nd.R16 {
		if v, ok := digitIn(r, rune(rg.Lo), rune(rg.Hi), rune(rg.Stride)); ok {
			return v
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if v, ok := digitIn(r, rune(rg.Lo), rune(rg.Hi), rune(rg.Stride)); ok {
			return v
		}
	}
	return -1
}

// digitIn relies on decimal digits being encoded in runs of ten starting at
// zero.
func digitIn(r, lo, hi, stride rune) (int, bool) {
	if r < lo || r > hi || (r-lo)%stride != 0 {
		return 0, false
	}
	return int(r-lo) % 10, true
}

// ToUpper, ToLower and ToTitle are the simple, one-to-one case mappings.
func ToUpper(r rune) rune { return unicode.ToUpper(r) }

func ToLower(r rune) rune { return unicode.ToLower(r) }

func ToTitle(r rune) rune { return unicode.ToTitle(r) }

// UnicodeVersion is the Unicode version of the property data.
func UnicodeVersion() string { return unicode.Version }
