package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Base struct {
	// Msg contains user friendly error.
	Msg string `json:"message"`
	// Status is the HTTP status of the response that produced the error,
	// zero when no response was involved.
	Status    int       `json:"status,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func newBasef(status int, format string, args ...any) Base {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return Base{
		Msg:       msg,
		Status:    status,
		Timestamp: time.Now(),
	}
}

func (b *Base) SetRequestID(id string) {
	b.RequestID = id
}

// HttpStatus returns the response status attached to the error.
func (b *Base) HttpStatus() int {
	return b.Status
}

type requestTracer interface {
	SetRequestID(id string)
	Error() string
}

// RequestID attaches the request id to t when t supports it.
func RequestID(id string, t error) error {
	var err requestTracer
	if errors.As(t, &err) {
		err.SetRequestID(id)
	}

	return t
}

type MarshalableErrors []error

func (me MarshalableErrors) MarshalJSON() ([]byte, error) {
	data := []byte("[")
	for i, err := range me {
		if i != 0 {
			data = append(data, ',')
		}
		var (
			j    []byte
			merr error
		)
		if ferr, ok := err.(*FieldError); ok {
			j, merr = json.Marshal(ferr)
		} else {
			j, merr = json.Marshal(strings.ReplaceAll(err.Error(), "\n", " or "))
		}
		if merr != nil {
			return nil, merr
		}

		data = append(data, j...)
	}
	data = append(data, ']')

	return data, nil
}

// FieldError describes a single problem found at a location of a
// response body. Field is a dotted path, e.g. "data.items[2].id".
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Field returns a FieldError for the given location.
func Field(field, format string, args ...any) *FieldError {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &FieldError{
		Field:   field,
		Message: msg,
	}
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

type ValidationError struct {
	Base
	Errors MarshalableErrors `json:"errors,omitempty"`
}

// Validation is a helper function to return a validation Error.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{
		Base: newBasef(0, format, args...),
	}
}

// IsValidation checks if err is validation error.
func IsValidation(err error) bool {
	return errors.Is(err, &ValidationError{})
}

func AsValidation(err error) (verr *ValidationError, b bool) {
	if errors.As(err, &verr) {
		return verr, true
	}

	return nil, false
}

func (e *ValidationError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = "validation error"
	}
	switch len(e.Errors) {
	case 0:
		return msg
	case 1:
		return msg + ": " + e.Errors[0].Error()
	default:
		return fmt.Sprintf("%s: %s (and %d more)", msg, e.Errors[0], len(e.Errors)-1)
	}
}

func (e *ValidationError) ErrorDetails() string {
	sb := strings.Builder{}
	sb.WriteString(e.Error())
	sb.WriteString("\n\n")

	for _, err := range e.Errors {
		sb.WriteString("\t - " + err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// Fields returns the field level errors.
func (e *ValidationError) Fields() []*FieldError {
	fields := make([]*FieldError, 0, len(e.Errors))
	for _, err := range e.Errors {
		var ferr *FieldError
		if errors.As(err, &ferr) {
			fields = append(fields, ferr)
			continue
		}
		fields = append(fields, &FieldError{Message: err.Error()})
	}
	return fields
}

func (e *ValidationError) AsError() error {
	if e == nil || (len(e.Errors) == 0 && e.Msg == "") {
		return nil
	}
	return e
}

func (e *ValidationError) AddError(err error) *ValidationError {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
	return e
}

// WithStatus records the response status on the error.
func (e *ValidationError) WithStatus(status int) *ValidationError {
	e.Status = status
	return e
}

func (e *ValidationError) Is(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

func (e *ValidationError) Check(ok bool, err error) {
	if !ok {
		_ = e.AddError(err)
	}
}

type NotFoundError struct {
	Base
}

// NotFound is a helper function to return an NotFoundError.
func NotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{
		Base: newBasef(http.StatusNotFound, format, args...),
	}
}

// IsNotFound checks if err is not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, &NotFoundError{})
}

// AsNotFound return err as NotFoundError or nil if it is not
// successfull.
func AsNotFound(err error) (nerr *NotFoundError, b bool) {
	if errors.As(err, &nerr) {
		return nerr, true
	}

	return nil, false
}

func (e *NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "resource not found"
}

func (e *NotFoundError) Is(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

type ConflictError struct {
	Base
}

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{
		Base: newBasef(http.StatusConflict, format, args...),
	}
}

// IsConflict checks if err is conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, &ConflictError{})
}

func AsConflict(err error) (cerr *ConflictError, b bool) {
	if errors.As(err, &cerr) {
		return cerr, true
	}

	return nil, false
}

func (e *ConflictError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "resource already exist"
}

func (e *ConflictError) Is(t error) bool {
	_, ok := t.(*ConflictError)
	return ok
}

// InternalError is returned for 5xx responses without a more specific type.
type InternalError struct {
	Base
	Err error `json:"-"`
}

func Internal(err error, format string, args ...any) *InternalError {
	return &InternalError{
		Base: newBasef(http.StatusInternalServerError, format, args...),
		Err:  err,
	}
}

func AsInternal(err error) (ierr *InternalError, b bool) {
	if errors.As(err, &ierr) {
		return ierr, true
	}

	return nil, false
}

// IsInternal checks if err is internal error.
func IsInternal(err error) bool {
	return errors.Is(err, &InternalError{})
}

func (e *InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("internal server error: %s", e.Err)
	}
	return "internal server error"
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func (e *InternalError) Is(err error) bool {
	_, ok := err.(*InternalError)
	return ok
}

type PreconditionFailedError struct {
	Base
}

func PreconditionFailed(format string, args ...any) *PreconditionFailedError {
	return &PreconditionFailedError{
		Base: newBasef(http.StatusPreconditionFailed, format, args...),
	}
}

func IsPreconditionFailed(err error) bool {
	return errors.Is(err, &PreconditionFailedError{})
}

func (e *PreconditionFailedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "precondition failed error"
}

func (e *PreconditionFailedError) Is(err error) bool {
	_, ok := err.(*PreconditionFailedError)
	return ok
}

type NotImplementedError struct {
	Base
}

func NotImplemented(format string, args ...any) *NotImplementedError {
	return &NotImplementedError{
		Base: newBasef(http.StatusNotImplemented, format, args...),
	}
}

// IsNotImplemented checks if err is not implemented error.
func IsNotImplemented(err error) bool {
	return errors.Is(err, &NotImplementedError{})
}

func (e *NotImplementedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "operation not implemented"
}

func (e *NotImplementedError) Is(err error) bool {
	_, ok := err.(*NotImplementedError)
	return ok
}

type UnauthenticatedError struct {
	Base
}

func Unauthenticated(format string, args ...any) *UnauthenticatedError {
	return &UnauthenticatedError{
		Base: newBasef(http.StatusUnauthorized, format, args...),
	}
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, &UnauthenticatedError{})
}

func (e *UnauthenticatedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthenticated"
}

func (e *UnauthenticatedError) Is(err error) bool {
	_, ok := err.(*UnauthenticatedError)
	return ok
}

type UnauthorizedError struct {
	Base
}

func Unauthorized(format string, args ...any) *UnauthorizedError {
	return &UnauthorizedError{
		Base: newBasef(http.StatusForbidden, format, args...),
	}
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, &UnauthorizedError{})
}

func (e *UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e *UnauthorizedError) Is(err error) bool {
	_, ok := err.(*UnauthorizedError)
	return ok
}

func Details(err error) error {
	switch e := err.(type) {
	case interface{ ErrorDetails() string }:
		return errors.New(e.ErrorDetails())
	default:
		return errors.New(err.Error())
	}
}
