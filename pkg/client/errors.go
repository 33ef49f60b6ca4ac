package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// APIError represents an error returned by the API.
type APIError struct {
	StatusCode int                 `json:"-"`
	Code       string              `json:"code,omitempty"`
	Message    string              `json:"message"`
	Fields     map[string][]string `json:"errors,omitempty"` // 422 field -> messages
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// IsUnauthorized returns true for a 401 response.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsForbidden returns true for a 403 response.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == 403
}

// IsNotFound returns true for a 404 response.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsValidation returns true for a 422 response.
func (e *APIError) IsValidation() bool {
	return e.StatusCode == 422
}

// IsConflict returns true for a 409 response, typically a delete blocked by
// existing references such as bookings or payments.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == 409
}

// IsServerError returns true for any 5xx response.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// FieldMessages flattens the 422 errors map into "field: message" lines,
// sorted by field for stable output.
func (e *APIError) FieldMessages() []string {
	if len(e.Fields) == 0 {
		return nil
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var out []string
	for _, f := range fields {
		for _, msg := range e.Fields[f] {
			out = append(out, f+": "+msg)
		}
	}
	return out
}

// newAPIError builds an APIError from a non-2xx response body. The API is
// not consistent about its error key; "message", "error" and "detail" all
// occur in the wild.
func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Err     string              `json:"error"`
		Detail  string              `json:"detail"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = "request failed"
		}
		return apiErr
	}

	apiErr.Code = payload.Code
	apiErr.Fields = payload.Errors
	switch {
	case payload.Message != "":
		apiErr.Message = payload.Message
	case payload.Err != "":
		apiErr.Message = payload.Err
	case payload.Detail != "":
		apiErr.Message = payload.Detail
	default:
		apiErr.Message = "request failed"
	}
	return apiErr
}
