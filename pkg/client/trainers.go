package client

import (
	"context"
	"fmt"
	"net/url"
)

// TrainersService handles trainer-related API calls.
type TrainersService struct {
	client *Client
}

// TrainerListOptions contains server-side filters for listing trainers.
type TrainerListOptions struct {
	Specialization string
}

// CreateTrainerRequest represents a request to create a trainer profile.
type CreateTrainerRequest struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Specialization  string   `json:"specialization" validate:"required"`
	ExperienceYears int      `json:"experience_years" validate:"gte=0"`
	Certifications  []string `json:"certifications,omitempty"`
	Bio             string   `json:"bio,omitempty"`
}

// UpdateTrainerRequest represents a partial trainer update.
type UpdateTrainerRequest struct {
	Name            *string  `json:"name,omitempty"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email"`
	Specialization  *string  `json:"specialization,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty" validate:"omitempty,gte=0"`
	Certifications  []string `json:"certifications,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
}

// List retrieves trainers, optionally filtered server-side.
func (s *TrainersService) List(ctx context.Context, opts *TrainerListOptions) ([]Trainer, error) {
	query := url.Values{}
	if opts != nil && opts.Specialization != "" {
		query.Set("specialization", opts.Specialization)
	}

	path := "/api/trainers"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	trainers, _, err := listOf[Trainer](ctx, s.client, path)
	return trainers, err
}

// Get retrieves a single trainer by ID.
func (s *TrainersService) Get(ctx context.Context, id int64) (*Trainer, error) {
	return one[Trainer](ctx, s.client, "GET", fmt.Sprintf("/api/trainers/%d", id), nil)
}

// Create creates a new trainer profile.
func (s *TrainersService) Create(ctx context.Context, req CreateTrainerRequest) (*Trainer, error) {
	return one[Trainer](ctx, s.client, "POST", "/api/trainers", req)
}

// Update updates an existing trainer and returns the server-authoritative
// record.
func (s *TrainersService) Update(ctx context.Context, id int64, req UpdateTrainerRequest) (*Trainer, error) {
	return one[Trainer](ctx, s.client, "PUT", fmt.Sprintf("/api/trainers/%d", id), req)
}

// Delete deletes a trainer.
func (s *TrainersService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/trainers/%d", id), nil, nil)
}
