package audible

import (
	"fmt"
)

// Error represents an error response from the Audible API.
type Error struct {
	StatusCode int    // HTTP status code of the failing response
	Message    string // Message from the response body, if any
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("audible: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("audible: status %d", e.StatusCode)
}

// Is checks if the target error is an Audible API error with the same
// status code, allowing errors.Is() to work with *Error values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// Predefined errors for common cases.
var (
	// ErrNoSession is returned by LoadSession when no usable session
	// file exists.
	ErrNoSession = fmt.Errorf("audible: no stored session")

	// ErrInvalidSession is returned when the API rejects the current
	// session token. The caller should fall back to interactive login.
	ErrInvalidSession = fmt.Errorf("audible: session rejected")

	// ErrBadCredentials is returned by Login when the vendor rejects
	// the supplied username/password.
	ErrBadCredentials = fmt.Errorf("audible: invalid credentials")
)
