package status

// Native is a status code produced by the wrapped library. The numbering is
// ICU compatible: warnings are negative, ZeroError is zero and failures are
// positive.
type Native int32

// Warnings.
const (
	UsingFallbackWarning Native = iota - 128
	UsingDefaultWarning
	SafecloneAllocatedWarning
	StateOldWarning
	StringNotTerminatedWarning
	SortKeyTooShortWarning
	AmbiguousAliasWarning
	DifferentUCAVersion
	PluginChangedLevelWarning
	ErrorWarningLimit
)

// ZeroError is the "no error, no warning" sentinel.
const ZeroError Native = 0

// Standard failures.
const (
	IllegalArgumentError Native = iota + 1
	MissingResourceError
	InvalidFormatError
	FileAccessError
	InternalProgramError
	MessageParseError
	MemoryAllocationError
	IndexOutOfBoundsError
	ParseError
	InvalidCharFoundError
	TruncatedCharFoundError
	IllegalCharFoundError
	InvalidTableFormatError
	InvalidTableFileError
	BufferOverflowError
	UnsupportedError
	ResourceTypeMismatchError
	IllegalEscapeSequenceError
	UnsupportedEscapeSequenceError
	NoSpaceAvailableError
	CENotFoundError
	PrimaryTooLongError
	StateTooOldError
	TooManyAliasesError
	EnumOutOfSyncError
	InvariantConversionError
	InvalidStateError
	CollatorVersionMismatchError
	UselessCollatorError
	NoWritePermissionError
	InputTooLongError

	// StandardErrorLimit is the fallback for codes with no native counterpart.
	StandardErrorLimit
)

// Format and parse failures.
const (
	UnexpectedTokenError Native = iota + 0x10100
	MultipleDecimalSeparatorsError
	MultipleExponentialSymbolsError
	MalformedExponentialPatternError
	MultiplePercentSymbolsError
	MultiplePermillSymbolsError
	MultiplePadSpecifiersError
	PatternSyntaxError
	IllegalPadPositionError
	UnmatchedBracesError
	UnsupportedPropertyError
	UnsupportedAttributeError
	ArgumentTypeMismatchError
	DuplicateKeywordError
	UndefinedKeywordError
	DefaultKeywordMissingError
	DecimalNumberSyntaxError
	FormatInexactError
	FmtParseErrorLimit
)

// Success reports whether n is not a failure (ICU's U_SUCCESS).
func (n Native) Success() bool { return n <= ZeroError }

// Failure reports whether n is a failure (ICU's U_FAILURE).
func (n Native) Failure() bool { return n > ZeroError }
