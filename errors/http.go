package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// HttpResponse is the error payload shape servers commonly return:
// {"message": "...", "errors": [...]} or {"detail": ...}.
type HttpResponse struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Detail  json.RawMessage `json:"detail"`
	Errors  []any           `json:"errors"`
}

// ParsePayload extracts a message and detail lines from an error body.
// Bodies that are not JSON objects yield the trimmed body as message.
func ParsePayload(body []byte) (string, []string) {
	var resp HttpResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return strings.TrimSpace(string(body)), nil
	}

	details := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		details = append(details, stringify(e))
	}

	msg := resp.Message
	if msg == "" {
		msg = resp.Error
	}

	if len(resp.Detail) > 0 {
		var s string
		if err := json.Unmarshal(resp.Detail, &s); err == nil {
			if msg == "" {
				msg = s
			} else {
				details = append(details, s)
			}
		} else {
			var items []any
			if err := json.Unmarshal(resp.Detail, &items); err == nil {
				for _, item := range items {
					details = append(details, stringify(item))
				}
			} else {
				details = append(details, string(resp.Detail))
			}
		}
	}

	return msg, details
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		if msg, ok := t["msg"].(string); ok {
			if loc, ok := t["loc"]; ok {
				return fmt.Sprintf("%v: %s", loc, msg)
			}
			return msg
		}
		if msg, ok := t["message"].(string); ok {
			return msg
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
