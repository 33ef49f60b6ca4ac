package client

import "context"

// SettingsService handles gym settings API calls.
type SettingsService struct {
	client *Client
}

// UpdateSettingsRequest represents a partial settings update.
type UpdateSettingsRequest struct {
	GymName           *string `json:"gym_name,omitempty"`
	Address           *string `json:"address,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty" validate:"omitempty,email"`
	OpeningHours      *string `json:"opening_hours,omitempty"`
	MaxBookingsPerDay *int    `json:"max_bookings_per_day,omitempty" validate:"omitempty,gt=0"`
}

// Get retrieves the gym settings.
func (s *SettingsService) Get(ctx context.Context) (*GymSettings, error) {
	return one[GymSettings](ctx, s.client, "GET", "/api/settings", nil)
}

// Update updates the gym settings and returns the server-authoritative
// record.
func (s *SettingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*GymSettings, error) {
	return one[GymSettings](ctx, s.client, "PUT", "/api/settings", req)
}
