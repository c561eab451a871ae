// Package schema reflects JSON schemas from Go types and validates decoded
// response bodies against them.
//
// Struct fields follow the swaggest/jsonschema-go tag conventions:
// `required:"true"` marks a field that must be present, `minimum`,
// `exclusiveMinimum`, `maximum`, `minLength`, `maxLength`, `pattern`,
// `format`, `minItems`, `maxItems`, `uniqueItems`, `multipleOf` and `enum`
// add constraints. Pointers, slices and maps accept null.
//
// The reflected document is compiled and evaluated by
// santhosh-tekuri/jsonschema, so every keyword jsonschema-go emits is
// enforced.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/swaggest/jsonschema-go"
)

const resourceURL = "schema.json"

// Schema is an immutable reflected and compiled schema of a Go type.
type Schema struct {
	root jsonschema.Schema
	typ  reflect.Type

	lenient *jsv.Schema
	strict  *jsv.Schema
}

// Reflect builds the schema of v's type. A nil v yields a schema accepting
// any value.
func Reflect(v any) (*Schema, error) {
	if v == nil {
		return anySchema(nil)
	}

	r := jsonschema.Reflector{}
	root, err := r.Reflect(v)
	if err != nil {
		return nil, fmt.Errorf("reflect schema of %T: %w", v, err)
	}

	return compile(root, reflect.TypeOf(v))
}

// For builds the schema of T. Interface types yield a schema accepting any value.
func For[T any]() (*Schema, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() == reflect.Interface {
		return anySchema(typ)
	}
	return Reflect(reflect.New(typ).Elem().Interface())
}

// MustFor is like For but panics on error.
func MustFor[T any]() *Schema {
	s, err := For[T]()
	if err != nil {
		panic(err)
	}
	return s
}

// Type returns the Go type the schema was reflected from, nil for Reflect(nil).
func (s *Schema) Type() reflect.Type {
	return s.typ
}

// JSON returns the JSON Schema document.
func (s *Schema) JSON() ([]byte, error) {
	return json.Marshal(s.root)
}

func anySchema(typ reflect.Type) (*Schema, error) {
	return compile(jsonschema.Schema{}, typ)
}

func compile(root jsonschema.Schema, typ reflect.Type) (*Schema, error) {
	s := &Schema{
		root: root,
		typ:  typ,
	}

	data, err := s.JSON()
	if err != nil {
		return nil, fmt.Errorf("marshal schema of %v: %w", typ, err)
	}

	if s.lenient, err = compileDoc(data, false); err != nil {
		return nil, fmt.Errorf("compile schema of %v: %w", typ, err)
	}
	if s.strict, err = compileDoc(data, true); err != nil {
		return nil, fmt.Errorf("compile strict schema of %v: %w", typ, err)
	}
	return s, nil
}

func compileDoc(data []byte, strict bool) (*jsv.Schema, error) {
	doc, err := jsv.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if strict {
		closeObjects(doc)
	}

	c := jsv.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(resourceURL, doc); err != nil {
		return nil, err
	}
	return c.Compile(resourceURL)
}

// closeObjects forbids undeclared properties on every object schema that
// declares properties and says nothing about additional ones.
func closeObjects(doc any) {
	switch v := doc.(type) {
	case map[string]any:
		props, ok := v["properties"].(map[string]any)
		if _, set := v["additionalProperties"]; ok && len(props) > 0 && !set {
			v["additionalProperties"] = false
		}
		for _, child := range v {
			closeObjects(child)
		}
	case []any:
		for _, child := range v {
			closeObjects(child)
		}
	}
}
