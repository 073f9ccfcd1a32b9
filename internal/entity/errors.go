package entity

import "fmt"

// Kind distinguishes the stable error taxonomy every layer maps onto: exit
// codes in the Command Surface, connect.Code in the Resource Model adapter.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindInvariantViolation Kind = "invariant_violation"
	KindInvalidInput       Kind = "invalid_input"
	KindBackendUnavailable Kind = "backend_unavailable"
	KindInternal           Kind = "internal"
)

// Error is the one typed error carrier used across Data Access, the Command
// Surface, and the Resource Model adapter. Remediation is populated for
// BackendUnavailable (§4.1/§7); Offending names the invalid field for
// InvalidInput; for Conflict it names the conflicting identifier.
type Error struct {
	Kind        Kind
	Message     string
	Offending   string
	Remediation []string
	cause       error
}

func (e *Error) Error() string {
	if e.Offending != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Offending)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(offending, format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Offending: offending}
}

func InvariantViolation(format string, args ...any) *Error {
	return &Error{Kind: KindInvariantViolation, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(offending, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...), Offending: offending}
}

func BackendUnavailableErr(remediation []string, format string, args ...any) *Error {
	return &Error{Kind: KindBackendUnavailable, Message: fmt.Sprintf(format, args...), Remediation: remediation}
}

func Internal(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), cause: cause}
}

// As reports whether err is an *Error and, if so, returns it.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

// KindOf returns the Kind of err, defaulting to KindInternal for untyped
// errors so every caller can switch on Kind alone.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
