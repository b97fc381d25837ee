package newsextract

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// ETRANSPORT and EEMPTY are the two recoverable adapter failures: the chain
// falls through to the next tier when it sees either one. Every other code
// means an adapter broke its contract and is surfaced to the caller.
const (
	EINTERNAL  = "internal"
	EINVALID   = "invalid"
	ENOTFOUND  = "not_found"
	ETRANSPORT = "transport"
	EEMPTY     = "empty"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("newsextract error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// IsRecoverable reports whether err is an adapter failure the chain recovers
// from by moving on to the next tier.
func IsRecoverable(err error) bool {
	switch ErrorCode(err) {
	case ETRANSPORT, EEMPTY:
		return true
	}
	return false
}
