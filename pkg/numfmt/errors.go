package numfmt

import "errors"

var (
	// ErrUnsupportedStyle is returned for styles that have no formatter.
	ErrUnsupportedStyle = errors.New("numfmt: unsupported style")

	// ErrInvalidAttribute is returned for an unknown attribute.
	ErrInvalidAttribute = errors.New("numfmt: invalid attribute")

	// ErrAttributeValue is returned when an attribute value is out of range.
	ErrAttributeValue = errors.New("numfmt: attribute value out of range")

	// ErrInvalidSymbol is returned for an unknown symbol.
	ErrInvalidSymbol = errors.New("numfmt: invalid symbol")

	// ErrUnknownCurrency is returned for a currency code that is not ISO 4217.
	ErrUnknownCurrency = errors.New("numfmt: unknown currency code")

	// ErrNotNumeric is returned when a formattable does not hold a number.
	ErrNotNumeric = errors.New("numfmt: value is not a number")

	// ErrParse is returned when no number can be read at the parse position.
	ErrParse = errors.New("numfmt: text is not a number")

	// ErrOverflow is returned when a parsed integer does not fit an int64.
	ErrOverflow = errors.New("numfmt: number does not fit an int64")

	// ErrRoundingNeeded is returned when RoundUnnecessary meets a value that needs rounding.
	ErrRoundingNeeded = errors.New("numfmt: rounding needed with rounding mode unnecessary")

	// ErrUnknownNumberingSystem is returned for a numbering system name that is not known.
	ErrUnknownNumberingSystem = errors.New("numfmt: unknown numbering system")
)

// Pattern syntax errors, carried by the matching status code.
var (
	// ErrPatternSyntax is returned for a malformed pattern.
	ErrPatternSyntax = errors.New("numfmt: malformed pattern")

	// ErrUnterminatedQuote is returned when a quoted literal is not closed.
	ErrUnterminatedQuote = errors.New("numfmt: unterminated quote in pattern")

	// ErrMultipleDecimals is returned when a pattern holds two decimal separators.
	ErrMultipleDecimals = errors.New("numfmt: more than one decimal separator in pattern")

	// ErrMultipleExponents is returned when a pattern holds two exponents.
	ErrMultipleExponents = errors.New("numfmt: more than one exponent in pattern")

	// ErrMalformedExponent is returned when an exponent has no digits.
	ErrMalformedExponent = errors.New("numfmt: exponent needs at least one digit")

	// ErrMultiplePercents is returned when a pattern holds two percent signs.
	ErrMultiplePercents = errors.New("numfmt: more than one percent sign in pattern")

	// ErrMultiplePermills is returned when a pattern holds two per mille signs.
	ErrMultiplePermills = errors.New("numfmt: more than one per mille sign in pattern")
)
