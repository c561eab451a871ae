package validator

import (
	"sync"

	"github.com/enverbisevac/restmodel/errors"
)

// Validator collects field errors. It is safe for concurrent use.
type Validator struct {
	mux    sync.Mutex
	Errors []error
}

func (v *Validator) HasErrors() bool {
	v.mux.Lock()
	defer v.mux.Unlock()
	return len(v.Errors) != 0
}

func (v *Validator) AddError(err ...error) {
	nerrs := make([]error, 0, len(err))
	for _, verr := range err {
		if verr != nil {
			nerrs = append(nerrs, verr)
		}
	}
	if len(nerrs) == 0 {
		return
	}

	v.mux.Lock()
	defer v.mux.Unlock()

	v.Errors = append(v.Errors, nerrs...)
}

func (v *Validator) Check(ok bool, err error) {
	if !ok {
		v.AddError(err)
	}
}

// CheckField records a field error when ok is false.
func (v *Validator) CheckField(ok bool, field, format string, args ...any) {
	if !ok {
		v.AddError(errors.Field(field, format, args...))
	}
}

// Err returns a ValidationError holding the collected errors, or nil.
func (v *Validator) Err(msg string) error {
	if !v.HasErrors() {
		return nil
	}

	v.mux.Lock()
	defer v.mux.Unlock()

	verr := errors.Validation("%s", msg)
	verr.Errors = append(errors.MarshalableErrors(nil), v.Errors...)
	return verr
}
