package cannibal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	EFETCH    = "fetch"
	EPARSE    = "parse"
	EEMPTY    = "empty"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cannibal error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Fetch errors report EFETCH. Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return EFETCH
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return "Internal error"
}

// FetchError records a failed retrieval of a single page.
// It is recovered locally: the page is excluded and the run continues.
//
// Err does not survive serialization; its message is written as Cause
// and a decoded FetchError reports that instead.
type FetchError struct {
	URL        string `json:"url"`
	StatusCode int    `json:"statusCode,omitempty"`
	Cause      string `json:"cause,omitempty"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	if cause := e.cause(); cause != "" {
		return fmt.Sprintf("fetch %s: %s", e.URL, cause)
	}
	return fmt.Sprintf("fetch %s: failed", e.URL)
}

// MarshalJSON fills Cause from Err.
func (e *FetchError) MarshalJSON() ([]byte, error) {
	type fetchError FetchError
	out := fetchError(*e)
	out.Cause = e.cause()
	return json.Marshal(out)
}

func (e *FetchError) cause() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Cause
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Transient reports whether retrying the fetch may succeed:
// 5xx and 429 responses, and timeouts.
func (e *FetchError) Transient() bool {
	if e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if e.StatusCode != 0 || e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// NewFetchError wraps err as a FetchError for url unless it already is one.
func NewFetchError(url string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &FetchError{URL: url, Err: err}
}

// IsTransient reports whether err is a FetchError worth retrying.
func IsTransient(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Transient()
}
