// Package assistant understands the request shapes a voice assistant
// platform uses to call the customer lookup tool, and writes the reply in
// the matching shape.
//
// Three shapes are supported, checked in this order:
//
//	functionCall  {"message":{"functionCall":{"parameters":{"phone":"..."}}}}
//	toolCall      {"message":{"toolCalls":[{"id":"...","function":{"arguments":{"phone":"..."}}}]}}
//	direct        {"phone":"..."}
//
// Business outcomes (found, new customer, missing value, empty sheet,
// failure) are always answered with HTTP 200; the platform treats any other
// status as a broken tool.
package assistant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the caller's request shape.
type Kind string

const (
	KindFunctionCall Kind = "functionCall"
	KindToolCall     Kind = "toolCall"
	KindDirect       Kind = "direct"
)

// ErrInvalidBody is returned when the body is not a JSON object.
var ErrInvalidBody = errors.New("invalid request body")

// Request is a decoded lookup call. SearchValue is empty when the caller
// sent no usable phone or email.
type Request struct {
	Kind        Kind
	SearchValue string
	ToolCallID  string
}

// envelope is the union of all supported shapes. Presence of a field, not
// its content, decides the shape, so the nested parts stay raw.
type envelope struct {
	RawMessage json.RawMessage `json:"message"`
	Phone      json.RawMessage `json:"phone"`
	Email      json.RawMessage `json:"email"`

	// Message is set only when "message" is a JSON object. Any other value
	// (a string, a number) leaves the body to the direct format.
	Message *messageFields `json:"-"`
}

type messageFields struct {
	FunctionCall json.RawMessage `json:"functionCall"`
	ToolCalls    json.RawMessage `json:"toolCalls"`
}

// Detect decodes body and extracts the search value using the first
// registered format that recognises it.
func Detect(body []byte) (Request, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Request{Kind: KindDirect}, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Request{}, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	env.Message = objectMessage(env.RawMessage)

	for _, f := range Formats() {
		if !f.Matches(&env) {
			continue
		}
		req := f.Extract(&env)
		req.Kind = f.Kind
		req.SearchValue = strings.TrimSpace(req.SearchValue)
		return req, nil
	}

	return Request{Kind: KindDirect}, nil
}

func objectMessage(raw json.RawMessage) *messageFields {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var m messageFields
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return &m
}

// present reports whether a raw field was sent with a non-null value.
func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// scalar returns a JSON string or number as text. Anything else is "".
func scalar(raw json.RawMessage) string {
	if !present(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	return ""
}

// firstScalar returns the first non-empty value among keys.
func firstScalar(fields map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(scalar(fields[k])); v != "" {
			return v
		}
	}
	return ""
}
