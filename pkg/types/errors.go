package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindState       ErrKind = iota // invalid operation for current state (e.g., not connected)
	ErrKindProtocol                   // provider returned no response object (transport/protocol failure)
	ErrKindUnsupported                // value-type tag outside the known six
	ErrKindType                       // supplied data doesn't match the requested value type
	ErrKindProvider                   // provider reported a non-zero return code
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by implementations.
var (
	// ErrNotConnected indicates the provider session is not established.
	// Callers must connect first; operations are never auto-retried.
	ErrNotConnected = &Error{Kind: ErrKindState, Msg: "provider session not connected"}
	// ErrInvalidResponse indicates the provider returned no response object.
	// This is a protocol-level invariant violation and always fatal.
	ErrInvalidResponse = &Error{Kind: ErrKindProtocol, Msg: "provider returned no response"}
	// ErrUnsupportedType indicates a value-type tag outside the known six.
	ErrUnsupportedType = &Error{Kind: ErrKindUnsupported, Msg: "unsupported registry value type"}
	// ErrTypeMismatch indicates the supplied data doesn't match the value type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "value data has different type"}
)
