package schema

import (
	"strconv"
	"strings"

	"github.com/enverbisevac/restmodel/validator"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Option configures a validation run.
type Option interface {
	Apply(*Config)
}

// Config holds validation settings.
type Config struct {
	// Strict rejects object properties the schema does not declare.
	Strict bool
	// Message is the top level message of the returned ValidationError.
	Message string
}

// OptionFunc is a function that configures a validation config.
type OptionFunc func(*Config)

// Apply calls f(config).
func (f OptionFunc) Apply(config *Config) {
	f(config)
}

// WithStrict returns an option that rejects undeclared object properties.
func WithStrict(value bool) Option {
	return OptionFunc(func(c *Config) {
		c.Strict = value
	})
}

// WithMessage returns an option that sets the validation error message.
func WithMessage(value string) Option {
	return OptionFunc(func(c *Config) {
		c.Message = value
	})
}

// Validate checks a decoded body (maps, slices, json.Number, strings,
// bools, nil) against the schema. Every failing keyword is reported as a
// field error inside a single *errors.ValidationError. Field paths look like
// "data.id" or "[1].email"; the empty path is the body itself.
func (s *Schema) Validate(body any, options ...Option) error {
	config := Config{
		Message: "response body does not match schema",
	}
	for _, opt := range options {
		opt.Apply(&config)
	}

	compiled := s.lenient
	if config.Strict {
		compiled = s.strict
	}

	err := compiled.Validate(body)
	if err == nil {
		return nil
	}

	v := validator.Validator{}
	verr, ok := err.(*jsv.ValidationError)
	if !ok {
		v.CheckField(false, "", "%v", err)
		return v.Err(config.Message)
	}

	collect(&v, body, verr)
	if !v.HasErrors() {
		v.CheckField(false, fieldPath(body, verr.InstanceLocation), "%s", verr.ErrorKind.LocalizedString(printer))
	}
	return v.Err(config.Message)
}

// collect turns the leaves of the error tree into field errors.
func collect(v *validator.Validator, body any, verr *jsv.ValidationError) {
	path := fieldPath(body, verr.InstanceLocation)

	switch k := verr.ErrorKind.(type) {
	case *kind.Required:
		for _, name := range k.Missing {
			v.CheckField(false, join(path, name), "field required")
		}
		return
	case *kind.AdditionalProperties:
		for _, name := range k.Properties {
			v.CheckField(false, join(path, name), "extra field not permitted")
		}
		return
	case *kind.Type:
		v.CheckField(false, path, "expected %s, got %s", strings.Join(k.Want, " or "), k.Got)
		return
	case *kind.AnyOf, *kind.OneOf:
		// A nullable reference fails both as null and as the referenced
		// schema; report the branch that got past the type check.
		var matched []*jsv.ValidationError
		for _, cause := range verr.Causes {
			if _, typeOnly := cause.ErrorKind.(*kind.Type); !typeOnly {
				matched = append(matched, cause)
			}
		}
		if len(matched) == 1 {
			collect(v, body, matched[0])
			return
		}
		v.CheckField(false, path, "%s", k.LocalizedString(printer))
		return
	}

	if len(verr.Causes) == 0 {
		v.CheckField(false, path, "%s", verr.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range verr.Causes {
		collect(v, body, cause)
	}
}

// fieldPath renders an instance location, using the body to tell array
// indexes from property names.
func fieldPath(body any, location []string) string {
	var (
		sb  strings.Builder
		cur = body
	)
	for _, tok := range location {
		if arr, ok := cur.([]any); ok {
			sb.WriteString("[" + tok + "]")
			if i, err := strconv.Atoi(tok); err == nil && i >= 0 && i < len(arr) {
				cur = arr[i]
			} else {
				cur = nil
			}
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(tok)
		if obj, ok := cur.(map[string]any); ok {
			cur = obj[tok]
		} else {
			cur = nil
		}
	}
	return sb.String()
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
