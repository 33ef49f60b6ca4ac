package validator

import (
	"testing"

	"github.com/gymstack/gymctl/pkg/client"
)

func TestValidateRegisterRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		req        client.RegisterRequest
		wantFields []string
	}{
		{
			name: "valid request",
			req:  client.RegisterRequest{Name: "Sam", Email: "sam@example.com", Password: "longenough"},
		},
		{
			name:       "missing everything",
			req:        client.RegisterRequest{},
			wantFields: []string{"name", "email", "password"},
		},
		{
			name:       "bad email and short password",
			req:        client.RegisterRequest{Name: "Sam", Email: "nope", Password: "short"},
			wantFields: []string{"email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.req)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Validate() returned %d errors (%v), want %d", len(errs), errs, len(tt.wantFields))
			}
			for i, f := range tt.wantFields {
				if errs[i].Field != f {
					t.Errorf("error %d field = %q, want %q", i, errs[i].Field, f)
				}
				if errs[i].Message == "" {
					t.Errorf("error %d has empty message", i)
				}
			}
		})
	}
}

func TestValidateCreateActivityRequest(t *testing.T) {
	v := New()

	errs := v.Validate(client.CreateActivityRequest{
		Name:            "Yoga",
		Category:        "wellness",
		Difficulty:      "impossible",
		DurationMinutes: 0,
		Capacity:        10,
	})

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	if !fields["difficulty"] {
		t.Error("expected difficulty oneof failure")
	}
	if !fields["duration_minutes"] {
		t.Error("expected duration_minutes gt failure")
	}
}
