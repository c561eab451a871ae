// Package types holds value types for response models.
package types

import (
	"encoding/json"

	"github.com/swaggest/jsonschema-go"
)

// Optional tracks whether a response field was absent, null or set.
// Optional fields are never required by the schema and always accept null.
// Use the `omitzero` json option to skip unset values when encoding.
type Optional[T any] struct {
	set   bool
	null  bool
	value T
}

func New[T any](value T) Optional[T] {
	return Optional[T]{
		value: value,
		set:   true,
	}
}

// Null returns an Optional explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

func (n *Optional[T]) Set(value T) {
	n.value = value
	n.set = true
	n.null = false
}

func (n *Optional[T]) SetNull() {
	var zero T
	n.value = zero
	n.set = true
	n.null = true
}

func (n *Optional[T]) Unset() {
	var zero T
	n.value = zero
	n.set = false
	n.null = false
}

func (n Optional[T]) IsSet() bool { return n.set }

func (n Optional[T]) IsNull() bool { return n.set && n.null }

func (n Optional[T]) IsZero() bool { return !n.set }

func (n Optional[T]) Value() (T, bool) {
	return n.value, n.set && !n.null
}

func (n Optional[T]) Ptr() *T {
	if n.set && !n.null {
		v := n.value
		return &v
	}
	return nil
}

func (n Optional[T]) ValueOrDefault(defaultValue T) T {
	if n.set && !n.null {
		return n.value
	}
	return defaultValue
}

// MarshalJSON encodes unset and null alike as null.
func (n Optional[T]) MarshalJSON() ([]byte, error) {
	if !n.set || n.null {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		n.SetNull()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Set(v)
	return nil
}

// JSONSchema exposes the schema of T extended with null.
func (n Optional[T]) JSONSchema() (jsonschema.Schema, error) {
	var (
		schema jsonschema.Schema
		zero   T
	)

	switch any(zero).(type) {
	case string:
		schema.WithType(jsonschema.String.Type())
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		schema.WithType(jsonschema.Integer.Type())
	case float32, float64:
		schema.WithType(jsonschema.Number.Type())
	case bool:
		schema.WithType(jsonschema.Boolean.Type())
	default:
		r := jsonschema.Reflector{}
		reflected, err := r.Reflect(zero, jsonschema.InlineRefs)
		if err != nil {
			return schema, err
		}
		schema = reflected
	}

	if schema.Type != nil {
		schema.AddType(jsonschema.Null)
	}

	return schema, nil
}
