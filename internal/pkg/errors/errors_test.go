package errors

import (
	"fmt"
	"testing"

	"github.com/gymstack/gymctl/pkg/client"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
	}{
		{name: "network failure", err: fmt.Errorf("request failed: connection refused"), wantKind: KindNetwork},
		{name: "401", err: &client.APIError{StatusCode: 401, Message: "token expired"}, wantKind: KindAuth},
		{name: "403", err: &client.APIError{StatusCode: 403, Message: "forbidden"}, wantKind: KindForbidden},
		{name: "404", err: &client.APIError{StatusCode: 404, Message: "not found"}, wantKind: KindNotFound},
		{name: "409", err: &client.APIError{StatusCode: 409, Message: "has bookings"}, wantKind: KindConflict},
		{name: "422", err: &client.APIError{StatusCode: 422, Message: "invalid"}, wantKind: KindValidation},
		{name: "500", err: &client.APIError{StatusCode: 500, Message: "boom"}, wantKind: KindServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("update member", tt.err)
			if got.Kind != tt.wantKind {
				t.Errorf("Classify() kind = %d, want %d", got.Kind, tt.wantKind)
			}
			if got.Message == "" {
				t.Error("Classify() produced empty message")
			}
		})
	}
}

func TestClassifyValidationFields(t *testing.T) {
	err := &client.APIError{
		StatusCode: 422,
		Message:    "validation failed",
		Fields:     map[string][]string{"email": {"email is invalid"}},
	}

	got := Classify("create trainer", err)
	if len(got.Fields) != 1 || got.Fields[0] != "email: email is invalid" {
		t.Errorf("Fields = %v, want field-level messages", got.Fields)
	}
}

func TestIsAuth(t *testing.T) {
	auth := Classify("load members", &client.APIError{StatusCode: 401})
	if !IsAuth(auth) {
		t.Error("IsAuth() = false for 401-derived error")
	}
	other := Classify("load members", &client.APIError{StatusCode: 500})
	if IsAuth(other) {
		t.Error("IsAuth() = true for 500-derived error")
	}
}
