package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ResponseError is returned for error statuses when the client is
// configured to raise for status. Err holds the typed error for the
// status so callers can use IsNotFound, IsConflict and friends.
type ResponseError struct {
	Base
	Body []byte `json:"-"`
	Err  error  `json:"-"`
}

// FromStatus builds a ResponseError for the given status and body.
func FromStatus(status int, body []byte) *ResponseError {
	msg, details := ParsePayload(body)
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &ResponseError{
		Base: newBasef(status, "%s", msg),
		Body: body,
		Err:  typed(status, msg, details),
	}
}

func typed(status int, msg string, details []string) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		verr := Validation("%s", msg).WithStatus(status)
		for _, d := range details {
			_ = verr.AddError(&FieldError{Message: d})
		}
		return verr
	case status == http.StatusUnauthorized:
		return Unauthenticated("%s", msg)
	case status == http.StatusForbidden:
		return Unauthorized("%s", msg)
	case status == http.StatusNotFound:
		return NotFound("%s", msg)
	case status == http.StatusConflict:
		return Conflict("%s", msg)
	case status == http.StatusPreconditionFailed:
		return PreconditionFailed("%s", msg)
	case status == http.StatusNotImplemented:
		return NotImplemented("%s", msg)
	case status >= http.StatusInternalServerError:
		ierr := Internal(nil, "%s", msg)
		ierr.Status = status
		return ierr
	}
	return nil
}

// IsResponse checks if err is a ResponseError.
func IsResponse(err error) bool {
	return errors.Is(err, &ResponseError{})
}

func AsResponse(err error) (rerr *ResponseError, b bool) {
	if errors.As(err, &rerr) {
		return rerr, true
	}

	return nil, false
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Msg)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

func (e *ResponseError) Is(err error) bool {
	_, ok := err.(*ResponseError)
	return ok
}

// HttpStatus returns the status of err when it carries one, zero otherwise.
func HttpStatus(err error) int {
	var s interface{ HttpStatus() int }
	if errors.As(err, &s) {
		return s.HttpStatus()
	}
	return 0
}
