// Package model holds the registration entities, the request payloads that
// produce them and the response envelope.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Response is the body of every successful registration.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK builds a successful Response.
func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// Text is a string field that also accepts a JSON number, so identifiers and
// phone numbers posted as numbers bind the same as their quoted form. A
// numeric zero binds as empty text and fails a required check.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		if d.IsZero() {
			*t = ""
			return nil
		}
		*t = Text(n.String())
		return nil
	}
}

func (t Text) String() string {
	return string(t)
}

// Count is a whole number that binds from a JSON number or a numeric string.
// An empty string or null binds as zero.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	raw := string(b)
	if raw == "null" {
		*c = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*c = 0
			return nil
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return fmt.Errorf("expected whole number, got %s", b)
	}
	*c = Count(d.IntPart())
	return nil
}

func (c Count) Int() int {
	return int(c)
}
