package status

// forward maps every native failure with a facade counterpart. It must stay
// one-to-one: reverse is derived from it.
var forward = map[Native]ErrorCode{
	IllegalArgumentError:             InvalidParameter,
	MissingResourceError:             MissingResource,
	InvalidFormatError:               InvalidFormat,
	FileAccessError:                  FileAccess,
	InternalProgramError:             InternalProgram,
	MessageParseError:                MessageParse,
	MemoryAllocationError:            OutOfMemory,
	IndexOutOfBoundsError:            IndexOutOfBounds,
	ParseError:                       Parse,
	InvalidCharFoundError:            InvalidCharFound,
	TruncatedCharFoundError:          TruncatedCharFound,
	IllegalCharFoundError:            IllegalCharFound,
	InvalidTableFormatError:          InvalidTableFormat,
	InvalidTableFileError:            InvalidTableFile,
	BufferOverflowError:              BufferOverflow,
	UnsupportedError:                 NotSupported,
	ResourceTypeMismatchError:        ResourceTypeMismatch,
	IllegalEscapeSequenceError:       IllegalEscapeSequence,
	UnsupportedEscapeSequenceError:   UnsupportedEscapeSequence,
	NoSpaceAvailableError:            NoSpaceAvailable,
	CENotFoundError:                  CENotFound,
	PrimaryTooLongError:              PrimaryTooLong,
	StateTooOldError:                 StateTooOld,
	TooManyAliasesError:              TooManyAliases,
	EnumOutOfSyncError:               EnumOutOfSync,
	InvariantConversionError:         InvariantConversion,
	InvalidStateError:                InvalidState,
	CollatorVersionMismatchError:     CollatorVersionMismatch,
	UselessCollatorError:             UselessCollator,
	NoWritePermissionError:           NoWritePermission,
	UnexpectedTokenError:             UnexpectedToken,
	MultipleDecimalSeparatorsError:   MultipleDecimalSeparators,
	MultipleExponentialSymbolsError:  MultipleExponentialSymbols,
	MalformedExponentialPatternError: MalformedExponentialPattern,
	MultiplePercentSymbolsError:      MultiplePercentSymbols,
	MultiplePermillSymbolsError:      MultiplePermillSymbols,
	MultiplePadSpecifiersError:       MultiplePadSpecifiers,
	PatternSyntaxError:               PatternSyntax,
	IllegalPadPositionError:          IllegalPadPosition,
	UnmatchedBracesError:             UnmatchedBraces,
	ArgumentTypeMismatchError:        ArgumentTypeMismatch,
	DuplicateKeywordError:            DuplicateKeyword,
	UndefinedKeywordError:            UndefinedKeyword,
	DefaultKeywordMissingError:       DefaultKeywordMissing,
	DecimalNumberSyntaxError:         DecimalNumberSyntax,
	FormatInexactError:               FormatInexact,
	StandardErrorLimit:               Unknown,
}

var reverse = func() map[ErrorCode]Native {
	m := make(map[ErrorCode]Native, len(forward)+3)
	for n, c := range forward {
		m[c] = n
	}
	m[Success] = ZeroError
	m[WarnStringNotTerminated] = StringNotTerminatedWarning
	m[WarnSortKeyTooShort] = SortKeyTooShortWarning
	return m
}()

// ToFacade translates a native status into the facade taxonomy.
// The two named warnings are checked first, then every value at or below
// ZeroError is Success. Unmapped failures become Unknown.
func ToFacade(n Native) ErrorCode {
	switch {
	case n == StringNotTerminatedWarning:
		return WarnStringNotTerminated
	case n == SortKeyTooShortWarning:
		return WarnSortKeyTooShort
	case n <= ZeroError:
		return Success
	}
	if c, ok := forward[n]; ok {
		return c
	}
	return Unknown
}

// ToNative translates a facade code into the native status used to pre-seed
// a native call. Codes without a reverse entry map to StandardErrorLimit.
func ToNative(c ErrorCode) Native {
	if n, ok := reverse[c]; ok {
		return n
	}
	return StandardErrorLimit
}

// Mapped reports whether n has an explicit facade counterpart.
func Mapped(n Native) bool {
	if n <= ZeroError {
		return true
	}
	_, ok := forward[n]
	return ok
}
