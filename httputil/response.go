package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Response is a decoded HTTP response.
//
// Body holds the decoded payload: map[string]any, []any, json.Number,
// string, bool or nil for JSON and YAML bodies, the raw text for text bodies
// and for bodies that fail to parse, nil for empty bodies.
type Response struct {
	Status  int
	Header  http.Header
	Body    any
	Raw     []byte
	Elapsed time.Duration
}

func newResponse(status int, header http.Header, raw []byte, elapsed time.Duration) *Response {
	return &Response{
		Status:  status,
		Header:  header,
		Body:    decodeBody(header.Get(HeaderContentType), raw),
		Raw:     raw,
		Elapsed: elapsed,
	}
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.Status >= 200 && r.Status < 300
}

// Decode stores the decoded body into v using encoding/json rules.
func (r *Response) Decode(v any) error {
	data, err := json.Marshal(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func decodeBody(contentType string, raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)

	switch {
	case isYAML(mediaType):
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return string(raw)
		}
		return normalize(v)
	case strings.HasPrefix(mediaType, "text/"):
		return string(raw)
	}

	v, err := decodeJSON(raw)
	if err != nil {
		return string(raw)
	}
	return v
}

func decodeJSON(raw []byte) (any, error) {
	var v any
	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	if d.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return v, nil
}

func isYAML(mediaType string) bool {
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return strings.HasSuffix(mediaType, "+yaml")
}

// normalize turns yaml values into the shapes JSON decoding produces.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalize(item)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []any:
		for i, item := range t {
			t[i] = normalize(item)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	}
	return v
}
