// Package status defines the facade error taxonomy and its translation to and
// from the native status codes of the wrapped library.
package status

import "fmt"

// ErrorCode is the facade status of an operation.
// The zero value is Success. ErrorCode implements error so codes can be used
// as errors.Is targets.
type ErrorCode int

const (
	// Success means the operation completed without caveat.
	Success ErrorCode = iota

	// Warnings.

	// WarnStringNotTerminated means the output exactly filled the buffer and
	// no terminator could be written.
	WarnStringNotTerminated
	// WarnSortKeyTooShort means a sort key was truncated to the buffer size.
	WarnSortKeyTooShort

	// Argument and resource failures.

	// InvalidParameter means argument validation failed before delegation.
	InvalidParameter
	// OutOfMemory means an allocation failed.
	OutOfMemory
	// MissingResource means requested locale data or a zone could not be found.
	MissingResource
	// InvalidFormat means data or a value has an unexpected type or shape.
	InvalidFormat
	// FileAccess means a data file could not be read.
	FileAccess
	// InternalProgram indicates a bug in the wrapped library or the facade.
	InternalProgram
	// MessageParse means a message pattern could not be parsed.
	MessageParse
	// IndexOutOfBounds means an index was outside the valid range.
	IndexOutOfBounds
	// Parse means input text could not be parsed.
	Parse
	// InvalidCharFound means an unmappable input sequence was found.
	InvalidCharFound
	// TruncatedCharFound means an incomplete input sequence was found.
	TruncatedCharFound
	// IllegalCharFound means an illegal input sequence was found.
	IllegalCharFound
	InvalidTableFormat
	InvalidTableFile
	// BufferOverflow means the result does not fit the supplied capacity.
	BufferOverflow
	// NotSupported means the operation is not supported in this context.
	NotSupported
	// ResourceTypeMismatch means the operation does not apply to the resource.
	ResourceTypeMismatch
	IllegalEscapeSequence
	UnsupportedEscapeSequence
	NoSpaceAvailable
	CENotFound
	PrimaryTooLong
	StateTooOld
	TooManyAliases
	// EnumOutOfSync means the sequence behind an enumeration changed.
	EnumOutOfSync
	InvariantConversion
	// InvalidState means the handle cannot perform the operation in its state.
	InvalidState
	CollatorVersionMismatch
	UselessCollator
	// NoWritePermission means a frozen or read-only value was modified.
	NoWritePermission

	// Format and parse failures.

	UnexpectedToken
	MultipleDecimalSeparators
	MultipleExponentialSymbols
	MalformedExponentialPattern
	MultiplePercentSymbols
	MultiplePermillSymbols
	MultiplePadSpecifiers
	PatternSyntax
	IllegalPadPosition
	UnmatchedBraces
	ArgumentTypeMismatch
	DuplicateKeyword
	UndefinedKeyword
	DefaultKeywordMissing
	DecimalNumberSyntax
	FormatInexact

	// Unknown is returned for native statuses without a facade mapping.
	Unknown

	codeLimit
)

var codeNames = [...]string{
	Success:                     "SUCCESS",
	WarnStringNotTerminated:     "WARNING_STRING_NOT_TERMINATED",
	WarnSortKeyTooShort:         "WARNING_SORT_KEY_TOO_SHORT",
	InvalidParameter:            "INVALID_PARAMETER",
	OutOfMemory:                 "OUT_OF_MEMORY",
	MissingResource:             "MISSING_RESOURCE",
	InvalidFormat:               "INVALID_FORMAT",
	FileAccess:                  "FILE_ACCESS",
	InternalProgram:             "INTERNAL_PROGRAM",
	MessageParse:                "MESSAGE_PARSE",
	IndexOutOfBounds:            "INDEX_OUT_OF_BOUNDS",
	Parse:                       "PARSE",
	InvalidCharFound:            "INVALID_CHAR_FOUND",
	TruncatedCharFound:          "TRUNCATED_CHAR_FOUND",
	IllegalCharFound:            "ILLEGAL_CHAR_FOUND",
	InvalidTableFormat:          "INVALID_TABLE_FORMAT",
	InvalidTableFile:            "INVALID_TABLE_FILE",
	BufferOverflow:              "BUFFER_OVERFLOW",
	NotSupported:                "NOT_SUPPORTED",
	ResourceTypeMismatch:        "RESOURCE_TYPE_MISMATCH",
	IllegalEscapeSequence:       "ILLEGAL_ESCAPE_SEQUENCE",
	UnsupportedEscapeSequence:   "UNSUPPORTED_ESCAPE_SEQUENCE",
	NoSpaceAvailable:            "NO_SPACE_AVAILABLE",
	CENotFound:                  "CE_NOT_FOUND",
	PrimaryTooLong:              "PRIMARY_TOO_LONG",
	StateTooOld:                 "STATE_TOO_OLD",
	TooManyAliases:              "TOO_MANY_ALIASES",
	EnumOutOfSync:               "ENUM_OUT_OF_SYNC",
	InvariantConversion:         "INVARIANT_CONVERSION",
	InvalidState:                "INVALID_STATE",
	CollatorVersionMismatch:     "COLLATOR_VERSION_MISMATCH",
	UselessCollator:             "USELESS_COLLATOR",
	NoWritePermission:           "NO_WRITE_PERMISSION",
	UnexpectedToken:             "UNEXPECTED_TOKEN",
	MultipleDecimalSeparators:   "MULTIPLE_DECIMAL_SEPARATORS",
	MultipleExponentialSymbols:  "MULTIPLE_EXPONENTIAL_SYMBOLS",
	MalformedExponentialPattern: "MALFORMED_EXPONENTIAL_PATTERN",
	MultiplePercentSymbols:      "MULTIPLE_PERCENT_SYMBOLS",
	MultiplePermillSymbols:      "MULTIPLE_PERMILL_SYMBOLS",
	MultiplePadSpecifiers:       "MULTIPLE_PAD_SPECIFIERS",
	PatternSyntax:               "PATTERN_SYNTAX",
	IllegalPadPosition:          "ILLEGAL_PAD_POSITION",
	UnmatchedBraces:             "UNMATCHED_BRACES",
	ArgumentTypeMismatch:        "ARGUMENT_TYPE_MISMATCH",
	DuplicateKeyword:            "DUPLICATE_KEYWORD",
	UndefinedKeyword:            "UNDEFINED_KEYWORD",
	DefaultKeywordMissing:       "DEFAULT_KEYWORD_MISSING",
	DecimalNumberSyntax:         "DECIMAL_NUMBER_SYNTAX",
	FormatInexact:               "FORMAT_INEXACT",
	Unknown:                     "UNKNOWN",
}

// Codes returns every defined code in declaration order.
func Codes() []ErrorCode {
	out := make([]ErrorCode, 0, int(codeLimit))
	for c := Success; c < codeLimit; c++ {
		out = append(out, c)
	}
	return out
}

// Valid reports whether c is a defined code.
func (c ErrorCode) Valid() bool { return c >= Success && c < codeLimit }

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if !c.Valid() {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return codeNames[c]
}

// Error implements error.
func (c ErrorCode) Error() string {
	return "intl: " + c.String()
}

// IsWarning reports whether c is one of the two warning codes.
func (c ErrorCode) IsWarning() bool {
	return c == WarnStringNotTerminated || c == WarnSortKeyTooShort
}

// Failed reports whether c is a failure. Success and warnings are not failures.
func (c ErrorCode) Failed() bool {
	return c != Success && !c.IsWarning()
}
