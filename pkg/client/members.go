package client

import (
	"context"
	"fmt"
	"net/url"
)

// MembersService handles member-related API calls.
type MembersService struct {
	client *Client
}

// MemberListOptions contains server-side filters for listing members.
// Free-text search and pagination are client-side concerns and never
// appear here.
type MemberListOptions struct {
	Status string // active, inactive
}

// UpdateMemberRequest represents a partial member update. Nil fields are
// left unchanged by the server.
type UpdateMemberRequest struct {
	Name             *string `json:"name,omitempty"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	HealthNotes      *string `json:"health_notes,omitempty"`
}

// List retrieves members, optionally filtered server-side.
func (s *MembersService) List(ctx context.Context, opts *MemberListOptions) ([]Member, error) {
	query := url.Values{}
	if opts != nil && opts.Status != "" {
		query.Set("status", opts.Status)
	}

	path := "/api/members"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	members, _, err := listOf[Member](ctx, s.client, path)
	return members, err
}

// Get retrieves a single member by ID.
func (s *MembersService) Get(ctx context.Context, id int64) (*Member, error) {
	return one[Member](ctx, s.client, "GET", fmt.Sprintf("/api/members/%d", id), nil)
}

// Update updates an existing member and returns the server-authoritative
// record.
func (s *MembersService) Update(ctx context.Context, id int64, req UpdateMemberRequest) (*Member, error) {
	return one[Member](ctx, s.client, "PUT", fmt.Sprintf("/api/members/%d", id), req)
}

// Delete deletes a member. The API refuses with a conflict error when the
// member still has bookings or payments.
func (s *MembersService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/members/%d", id), nil, nil)
}
