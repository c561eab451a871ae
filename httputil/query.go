package httputil

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/enverbisevac/restmodel/slice"
	"github.com/enverbisevac/restmodel/timeutil"
)

// EncodeQuery converts params into query values. Supported inputs are nil,
// url.Values, map[string]string, map[string][]string, map[string]any and
// structs (or pointers to structs) whose fields carry a `query` tag:
//
//	type ListUsers struct {
//		Page  int      `query:"page,omitempty"`
//		Roles []string `query:"role,explode"`
//		Since time.Time `query:"since,omitempty"`
//	}
//
// Slices are joined with commas unless the tag has the explode option, in
// which case the key is repeated. Nil pointers are skipped, and so are zero
// values with omitempty.
func EncodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		values := make(url.Values, len(p))
		for k, v := range p {
			values[k] = append([]string(nil), v...)
		}
		return values, nil
	case map[string]string:
		values := make(url.Values, len(p))
		for k, v := range p {
			values.Set(k, v)
		}
		return values, nil
	case map[string][]string:
		return EncodeQuery(url.Values(p))
	case map[string]any:
		values := make(url.Values, len(p))
		for k, v := range p {
			if err := encodeField(values, k, reflect.ValueOf(v), false, false); err != nil {
				return nil, err
			}
		}
		return values, nil
	}

	v := reflect.ValueOf(params)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("invalid query type: %T", params)
	}

	values := url.Values{}
	if err := encodeStruct(values, v); err != nil {
		return nil, err
	}
	return values, nil
}

func encodeStruct(values url.Values, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		typ := t.Field(i)
		field := v.Field(i)

		if typ.Anonymous && typ.IsExported() && typ.Type.Kind() == reflect.Struct {
			if err := encodeStruct(values, field); err != nil {
				return err
			}
			continue
		}

		queryTag := typ.Tag.Get("query")
		if queryTag == "" || queryTag == "-" || !typ.IsExported() {
			continue
		}

		parts := strings.Split(queryTag, ",")
		var omitempty, explode bool
		for _, p := range parts[1:] {
			switch p {
			case "omitempty":
				omitempty = true
			case "explode":
				explode = true
			}
		}

		if err := encodeField(values, parts[0], field, omitempty, explode); err != nil {
			return fmt.Errorf("query param %s: %w", parts[0], err)
		}
	}
	return nil
}

func encodeField(values url.Values, key string, field reflect.Value, omitempty, explode bool) error {
	for field.Kind() == reflect.Pointer || field.Kind() == reflect.Interface {
		if field.IsNil() {
			return nil
		}
		field = field.Elem()
	}
	if !field.IsValid() {
		return nil
	}
	if omitempty && field.IsZero() {
		return nil
	}

	if field.Kind() == reflect.Slice || field.Kind() == reflect.Array {
		items := make([]reflect.Value, field.Len())
		for i := range items {
			items[i] = field.Index(i)
		}
		strs, err := slice.MapErr(items, formatValue)
		if err != nil {
			return err
		}
		if explode {
			for _, s := range strs {
				values.Add(key, s)
			}
			return nil
		}
		values.Set(key, strings.Join(strs, ","))
		return nil
	}

	s, err := formatValue(field)
	if err != nil {
		return err
	}
	values.Set(key, s)
	return nil
}

// formatValue renders a single value as a query string value.
func formatValue(v reflect.Value) (string, error) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return "", nil
		}
		v = v.Elem()
	}

	switch t := v.Interface().(type) {
	case time.Time:
		return timeutil.DefaultFormatterFunc(t), nil
	case time.Duration:
		return t.String(), nil
	case fmt.Stringer:
		return t.String(), nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	}
	return "", fmt.Errorf("unsupported type: %v", v.Type())
}
