package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NewHTTPError creates the error for a non-2xx response. The message is
// extracted from body; fallback is used when the body carries none.
func NewHTTPError(op string, statusCode int, body []byte, fallback string) *APIError {
	return &APIError{
		Kind:       KindHTTP,
		Op:         op,
		StatusCode: statusCode,
		Message:    ExtractMessage(body, fallback),
		Body:       body,
		Underlying: fmt.Errorf("%s failed: HTTP %d", op, statusCode),
	}
}

// NewNetworkError creates the error for a request that never got a response.
func NewNetworkError(op string, err error, fallback string) *APIError {
	return &APIError{
		Kind:       KindTransport,
		Op:         op,
		Message:    fallback,
		Underlying: fmt.Errorf("%s network error: %w", op, err),
	}
}

// ExtractMessage reduces an error body to one human-readable string.
//
// Accepted shapes, in order: {"detail": "..."}, a field map whose first key
// (in document order) holds a non-empty list or a string, and a bare string.
// Anything else, including an absent or unparseable body, yields fallback.
func ExtractMessage(body []byte, fallback string) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return fallback
	}

	var msg string
	switch body[0] {
	case '{':
		msg = fromObject(body)
	case '[':
		// A list behaves like an object keyed "0", "1", ...
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err == nil && len(items) > 0 {
			msg = fromValue(items[0])
		}
	case '"':
		_ = json.Unmarshal(body, &msg)
	}
	if msg == "" {
		return fallback
	}
	return msg
}

func fromObject(body []byte) string {
	var probe struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &probe); err == nil {
		if s, ok := asString(probe.Detail); ok {
			return s
		}
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil { // '{'
		return ""
	}
	if !dec.More() {
		return ""
	}
	if _, err := dec.Token(); err != nil { // first key
		return ""
	}
	var first json.RawMessage
	if err := dec.Decode(&first); err != nil {
		return ""
	}
	return fromValue(first)
}

// fromValue inspects the value held by the first key.
func fromValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return ""
		}
		return render(items[0])
	case '"':
		s, _ := asString(raw)
		return s
	}
	return ""
}

func asString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// render turns a list element into text; non-strings keep their JSON form.
func render(raw json.RawMessage) string {
	if s, ok := asString(raw); ok {
		return s
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if compact.String() == "null" {
		return ""
	}
	return compact.String()
}
