package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the tracker backend. Detail carries the
// backend's human-readable message when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracker API: %d: %s", e.Status, e.Detail)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// errorPayload covers the two shapes the backend produces: DRF's
// {"detail": ...} and the custom exception handler's {"error", "message"}.
// Field validation errors arrive as {"field": ["msg", ...]}.
type errorPayload struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

// newAPIError builds an APIError from a response body, falling back to the
// HTTP status text when no message can be extracted.
func newAPIError(status int, body []byte) *APIError {
	detail := extractDetail(body)
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{Status: status, Detail: detail}
}

func extractDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Detail != "":
			return payload.Detail
		case payload.Message != "":
			return payload.Message
		case payload.Err != "":
			return payload.Err
		}
	}

	// Field validation shape: collect the first message per field.
	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil {
		names := make([]string, 0, len(fields))
		for field := range fields {
			names = append(names, field)
		}
		sort.Strings(names)
		var parts []string
		for _, field := range names {
			if msgs := fields[field]; len(msgs) > 0 {
				parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	return ""
}
