package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ActivitiesService handles activity (class) API calls.
type ActivitiesService struct {
	client *Client
}

// ActivityListOptions contains server-side filters for listing activities.
type ActivityListOptions struct {
	Category   string
	Difficulty string
	TrainerID  *int64
}

// CreateActivityRequest represents a request to create an activity.
type CreateActivityRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category" validate:"required"`
	Difficulty      string   `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationMinutes int      `json:"duration_minutes" validate:"gt=0"`
	Capacity        int      `json:"capacity" validate:"gt=0"`
	Location        string   `json:"location,omitempty"`
	EquipmentNeeded []string `json:"equipment_needed,omitempty"`
	TrainerID       *int64   `json:"trainer_id,omitempty"`
}

// UpdateActivityRequest represents a partial activity update.
type UpdateActivityRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Difficulty      *string  `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	DurationMinutes *int     `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Capacity        *int     `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Location        *string  `json:"location,omitempty"`
	EquipmentNeeded []string `json:"equipment_needed,omitempty"`
	TrainerID       *int64   `json:"trainer_id,omitempty"`
}

// List retrieves activities, optionally filtered server-side.
func (s *ActivitiesService) List(ctx context.Context, opts *ActivityListOptions) ([]Activity, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.Difficulty != "" {
			query.Set("difficulty", opts.Difficulty)
		}
		if opts.TrainerID != nil {
			query.Set("trainer_id", strconv.FormatInt(*opts.TrainerID, 10))
		}
	}

	path := "/api/activities"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	activities, _, err := listOf[Activity](ctx, s.client, path)
	return activities, err
}

// Get retrieves a single activity by ID.
func (s *ActivitiesService) Get(ctx context.Context, id int64) (*Activity, error) {
	return one[Activity](ctx, s.client, "GET", fmt.Sprintf("/api/activities/%d", id), nil)
}

// Create creates a new activity.
func (s *ActivitiesService) Create(ctx context.Context, req CreateActivityRequest) (*Activity, error) {
	return one[Activity](ctx, s.client, "POST", "/api/activities", req)
}

// Update updates an existing activity and returns the server-authoritative
// record.
func (s *ActivitiesService) Update(ctx context.Context, id int64, req UpdateActivityRequest) (*Activity, error) {
	return one[Activity](ctx, s.client, "PUT", fmt.Sprintf("/api/activities/%d", id), req)
}

// Delete deletes an activity. The API refuses with a conflict error when
// the activity still has bookings.
func (s *ActivitiesService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/activities/%d", id), nil, nil)
}
