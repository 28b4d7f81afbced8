package linkwish

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic and map well to transport-level error
// classifications (HTTP status codes, retryability decisions).
const (
	ECONFLICT      = "conflict"      // duplicate entry, not retryable
	EINTERNAL      = "internal"      // unclassified internal error
	EINVALID       = "invalid"       // validation failed, not retryable
	ENOTFOUND      = "not_found"     // entity does not exist
	ETIMEOUT       = "timeout"       // deadline exceeded, retryable
	EUNAVAILABLE   = "unavailable"   // transport failure, retryable
	EUNPROCESSABLE = "unprocessable" // response could not be parsed
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("linkwish error: code=%s message=%s", e.Code, e.Message)
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

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Retryable reports whether an error is worth retrying. Only transport
// failures and timeouts qualify; validation and conflict errors never do.
func Retryable(err error) bool {
	switch ErrorCode(err) {
	case ETIMEOUT, EUNAVAILABLE:
		return true
	default:
		return false
	}
}
