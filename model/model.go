// Package model turns transport responses into validated Go values.
//
// A response model is any Go type. Its JSON schema is reflected with
// swaggest/jsonschema-go, the decoded body is checked against it, then the
// body is decoded into the type. Types that implement Validate() error get a
// final say.
//
//	type User struct {
//		ID        int    `json:"id" required:"true"`
//		FirstName string `json:"first_name" required:"true"`
//	}
//
//	var getUser = model.Bind[Envelope[User]](func(ctx context.Context, id int) (*httputil.Response, error) {
//		return client.Get(ctx, fmt.Sprintf("/users/%d", id), nil)
//	})
//
//	user, status, err := getUser(ctx, 2)
package model

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/enverbisevac/restmodel/errors"
	"github.com/enverbisevac/restmodel/httputil"
	"github.com/enverbisevac/restmodel/schema"
)

// ErrNilResponse is returned when a method yields neither a response nor an error.
var ErrNilResponse = errors.New("model: nil response")

// Method is a client call, usually a closure over one of the httputil.Client verbs.
type Method[A any] func(ctx context.Context, args A) (*httputil.Response, error)

// Bound is a Method whose response is parsed into T.
type Bound[T, A any] func(ctx context.Context, args A) (T, int, error)

type validatable interface {
	Validate() error
}

var schemas sync.Map

// Bind wraps fn so that its response is validated against T and decoded into
// it. The schema of T is reflected once; Bind panics if T has no valid schema.
func Bind[T, A any](fn Method[A], options ...Option) Bound[T, A] {
	s := schema.MustFor[T]()
	config := newConfig(options)

	return func(ctx context.Context, args A) (T, int, error) {
		resp, err := fn(ctx, args)
		return parse[T](s, config, resp, err)
	}
}

// Parse validates resp against T and decodes it. It accepts the results of
// a client call directly:
//
//	user, status, err := model.Parse[User](client.Get(ctx, "/users/2", nil))
//
// An error from the call is returned unchanged together with the status of
// resp, if any.
func Parse[T any](resp *httputil.Response, err error, options ...Option) (T, int, error) {
	s, serr := schemaFor[T]()
	if serr != nil {
		var zero T
		return zero, statusOf(resp), serr
	}
	return parse[T](s, newConfig(options), resp, err)
}

// Status returns the status of a call and discards its body.
func Status(resp *httputil.Response, err error) (int, error) {
	if resp == nil && err == nil {
		return 0, ErrNilResponse
	}
	return statusOf(resp), err
}

func schemaFor[T any]() (*schema.Schema, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if s, ok := schemas.Load(typ); ok {
		return s.(*schema.Schema), nil
	}

	s, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	actual, _ := schemas.LoadOrStore(typ, s)
	return actual.(*schema.Schema), nil
}

func parse[T any](s *schema.Schema, config Config, resp *httputil.Response, err error) (T, int, error) {
	var out T

	if err != nil {
		return out, statusOf(resp), err
	}
	if resp == nil {
		return out, 0, ErrNilResponse
	}
	if !config.validates(resp.Status) {
		return out, resp.Status, nil
	}

	verr := s.Validate(resp.Body,
		schema.WithStrict(config.Strict),
		schema.WithMessage(config.Message),
	)
	if verr != nil {
		return out, resp.Status, withStatus(verr, resp.Status)
	}

	if err := resp.Decode(&out); err != nil {
		return out, resp.Status, decodeError(config.Message, resp.Status, err)
	}

	if err := validate(&out); err != nil {
		var zero T
		return zero, resp.Status, hookError(config.Message, resp.Status, err)
	}

	return out, resp.Status, nil
}

func validate(v any) error {
	if val, ok := reflect.ValueOf(v).Elem().Interface().(validatable); ok {
		return val.Validate()
	}
	if val, ok := v.(validatable); ok {
		return val.Validate()
	}
	return nil
}

func decodeError(msg string, status int, err error) error {
	field := errors.Field("", "%s", err.Error())

	var terr *json.UnmarshalTypeError
	if errors.As(err, &terr) {
		field = errors.Field(terr.Field, "cannot decode %s into %v", terr.Value, terr.Type)
	}
	return errors.Validation("%s", msg).
		WithStatus(status).
		AddError(field)
}

func hookError(msg string, status int, err error) error {
	if verr, ok := errors.AsValidation(err); ok {
		return verr.WithStatus(status)
	}
	return errors.Validation("%s", msg).
		WithStatus(status).
		AddError(err)
}

func withStatus(err error, status int) error {
	if verr, ok := errors.AsValidation(err); ok {
		return verr.WithStatus(status)
	}
	return err
}

func statusOf(resp *httputil.Response) int {
	if resp == nil {
		return 0
	}
	return resp.Status
}
