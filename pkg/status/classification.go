package status

// Class groups codes by how a caller is expected to react.
type Class string

const (
	// ClassSuccess is the class of Success only.
	ClassSuccess Class = "SUCCESS"

	// ClassWarning means the operation succeeded but the output carries a caveat.
	ClassWarning Class = "WARNING"

	// ClassRecoverable means the caller can fix the input and retry,
	// for example by growing a buffer.
	ClassRecoverable Class = "RECOVERABLE"

	// ClassFatal means an environment failure the facade does not recover from.
	ClassFatal Class = "FATAL"
)

// fatalCodes are environment failures. Every other failure is recoverable.
var fatalCodes = map[ErrorCode]struct{}{
	OutOfMemory:        {},
	InternalProgram:    {},
	FileAccess:         {},
	InvalidTableFormat: {},
	InvalidTableFile:   {},
	StateTooOld:        {},
	Unknown:            {},
}

// Class returns the class of c. Undefined codes are fatal.
func (c ErrorCode) Class() Class {
	switch {
	case c == Success:
		return ClassSuccess
	case c.IsWarning():
		return ClassWarning
	case !c.Valid():
		return ClassFatal
	}
	if _, ok := fatalCodes[c]; ok {
		return ClassFatal
	}
	return ClassRecoverable
}
