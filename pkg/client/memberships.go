package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// MembershipsService handles membership plan and subscription API calls.
type MembershipsService struct {
	client *Client
}

// PlanListOptions contains server-side filters for listing plans.
type PlanListOptions struct {
	ActiveOnly bool
}

// CreatePlanRequest represents a request to create a membership plan.
type CreatePlanRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price" validate:"gte=0"`
	DurationDays int      `json:"duration_days" validate:"gt=0"`
	Features     []string `json:"features,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

// UpdatePlanRequest represents a partial plan update.
type UpdatePlanRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	DurationDays *int     `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	Features     []string `json:"features,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

// MembershipListOptions contains server-side filters for subscriptions.
type MembershipListOptions struct {
	UserID     *int64
	ActiveOnly bool
}

// SubscribeRequest creates a subscription linking a user to a plan.
type SubscribeRequest struct {
	PlanID    int64  `json:"plan_id" validate:"required"`
	StartDate string `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// ListPlans retrieves membership plans.
func (s *MembershipsService) ListPlans(ctx context.Context, opts *PlanListOptions) ([]MembershipPlan, error) {
	path := "/api/plans"
	if opts != nil && opts.ActiveOnly {
		path += "?active=true"
	}

	plans, _, err := listOf[MembershipPlan](ctx, s.client, path)
	return plans, err
}

// GetPlan retrieves a single plan by ID.
func (s *MembershipsService) GetPlan(ctx context.Context, id int64) (*MembershipPlan, error) {
	return one[MembershipPlan](ctx, s.client, "GET", fmt.Sprintf("/api/plans/%d", id), nil)
}

// CreatePlan creates a new membership plan.
func (s *MembershipsService) CreatePlan(ctx context.Context, req CreatePlanRequest) (*MembershipPlan, error) {
	return one[MembershipPlan](ctx, s.client, "POST", "/api/plans", req)
}

// UpdatePlan updates a plan and returns the server-authoritative record.
func (s *MembershipsService) UpdatePlan(ctx context.Context, id int64, req UpdatePlanRequest) (*MembershipPlan, error) {
	return one[MembershipPlan](ctx, s.client, "PUT", fmt.Sprintf("/api/plans/%d", id), req)
}

// DeletePlan deletes a plan. The API refuses with a conflict error when
// subscriptions still reference it.
func (s *MembershipsService) DeletePlan(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/plans/%d", id), nil, nil)
}

// List retrieves subscriptions, optionally filtered server-side.
func (s *MembershipsService) List(ctx context.Context, opts *MembershipListOptions) ([]Membership, error) {
	query := url.Values{}
	if opts != nil {
		if opts.UserID != nil {
			query.Set("user_id", strconv.FormatInt(*opts.UserID, 10))
		}
		if opts.ActiveOnly {
			query.Set("active", "true")
		}
	}

	path := "/api/memberships"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	memberships, _, err := listOf[Membership](ctx, s.client, path)
	return memberships, err
}

// Subscribe creates a subscription for the authenticated user.
func (s *MembershipsService) Subscribe(ctx context.Context, req SubscribeRequest) (*Membership, error) {
	return one[Membership](ctx, s.client, "POST", "/api/memberships", req)
}

// Cancel deactivates a subscription.
func (s *MembershipsService) Cancel(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "POST", fmt.Sprintf("/api/memberships/%d/cancel", id), nil, nil)
}
