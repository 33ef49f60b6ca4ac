package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestDoRawSetsHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Token: "tok-123"})
	if _, err := c.Members().List(context.Background(), nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	if _, err := c.Activities().List(context.Background(), nil); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want unset", gotAuth)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(*APIError) bool
		want   string
	}{
		{
			name:   "401 unauthorized",
			status: 401,
			body:   `{"message":"token expired"}`,
			check:  (*APIError).IsUnauthorized,
			want:   "token expired",
		},
		{
			name:   "403 forbidden",
			status: 403,
			body:   `{"error":"admin role required"}`,
			check:  (*APIError).IsForbidden,
			want:   "admin role required",
		},
		{
			name:   "404 not found",
			status: 404,
			body:   `{"message":"member not found"}`,
			check:  (*APIError).IsNotFound,
			want:   "member not found",
		},
		{
			name:   "409 conflict",
			status: 409,
			body:   `{"message":"member has existing bookings"}`,
			check:  (*APIError).IsConflict,
			want:   "member has existing bookings",
		},
		{
			name:   "500 server error",
			status: 500,
			body:   `{"message":"internal error"}`,
			check:  (*APIError).IsServerError,
			want:   "internal error",
		},
		{
			name:   "non-JSON body",
			status: 502,
			body:   `bad gateway`,
			check:  (*APIError).IsServerError,
			want:   "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL})
			_, err := c.Members().Get(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error, got nil")
			}

			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if !tt.check(apiErr) {
				t.Errorf("status predicate failed for %d", tt.status)
			}
			if apiErr.Message != tt.want {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.want)
			}
		})
	}
}

func TestValidationErrorFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(422)
		w.Write([]byte(`{"message":"validation failed","errors":{"name":["name is required"],"email":["email is invalid","email already taken"]}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Trainers().Create(context.Background(), CreateTrainerRequest{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if !apiErr.IsValidation() {
		t.Error("IsValidation() = false, want true")
	}

	want := []string{
		"email: email is invalid",
		"email: email already taken",
		"name: name is required",
	}
	if got := apiErr.FieldMessages(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldMessages() = %v, want %v", got, want)
	}
}

func TestListEnvelopeVariantsEndToEnd(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "raw array", body: `[{"id":1,"name":"Yoga"},{"id":2,"name":"HIIT"}]`},
		{name: "data envelope", body: `{"data":[{"id":1,"name":"Yoga"},{"id":2,"name":"HIIT"}]}`},
		{name: "nested pagination", body: `{"data":{"items":[{"id":1,"name":"Yoga"},{"id":2,"name":"HIIT"}],"page":1,"total":2}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(Config{BaseURL: srv.URL})
			activities, err := c.Activities().List(context.Background(), nil)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(activities) != 2 || activities[0].Name != "Yoga" {
				t.Errorf("List() = %v, want Yoga and HIIT", activities)
			}
		})
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"fresh-token","user":{"id":7,"name":"Sam","email":"sam@example.com","role":"admin"}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	resp, err := c.Login(context.Background(), "sam@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if c.Token() != "fresh-token" {
		t.Errorf("Token() = %q, want %q", c.Token(), "fresh-token")
	}
	if resp.User == nil || resp.User.Role != RoleAdmin {
		t.Errorf("User = %+v, want admin role", resp.User)
	}
}
