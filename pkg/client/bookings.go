package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// BookingsService handles booking API calls.
type BookingsService struct {
	client *Client
}

// BookingListOptions contains server-side filters for listing bookings.
type BookingListOptions struct {
	UserID     *int64
	ActivityID *int64
	Status     string // upcoming, completed, canceled
}

// CreateBookingRequest books the authenticated user onto an activity.
type CreateBookingRequest struct {
	ActivityID int64  `json:"activity_id" validate:"required"`
	Date       string `json:"date" validate:"required"` // YYYY-MM-DD
	Time       string `json:"time,omitempty"`
}

// List retrieves bookings, optionally filtered server-side.
func (s *BookingsService) List(ctx context.Context, opts *BookingListOptions) ([]Booking, error) {
	query := url.Values{}
	if opts != nil {
		if opts.UserID != nil {
			query.Set("user_id", strconv.FormatInt(*opts.UserID, 10))
		}
		if opts.ActivityID != nil {
			query.Set("activity_id", strconv.FormatInt(*opts.ActivityID, 10))
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	path := "/api/bookings"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	bookings, _, err := listOf[Booking](ctx, s.client, path)
	return bookings, err
}

// Create books the authenticated user onto an activity.
func (s *BookingsService) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	return one[Booking](ctx, s.client, "POST", "/api/bookings", req)
}

// Cancel cancels an upcoming booking. The server rejects cancellation of
// completed bookings.
func (s *BookingsService) Cancel(ctx context.Context, id int64) (*Booking, error) {
	return one[Booking](ctx, s.client, "POST", fmt.Sprintf("/api/bookings/%d/cancel", id), nil)
}
