package client

import (
	"context"
	"fmt"
	"net/url"
)

// EquipmentService handles equipment inventory API calls.
type EquipmentService struct {
	client *Client
}

// EquipmentListOptions contains server-side filters for listing equipment.
type EquipmentListOptions struct {
	Category string
	Status   string // available, in_use, maintenance, retired
}

// CreateEquipmentRequest represents a request to add an inventory item.
type CreateEquipmentRequest struct {
	Name            string `json:"name" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Quantity        int    `json:"quantity" validate:"gte=1"`
	Status          string `json:"status" validate:"omitempty,oneof=available in_use maintenance retired"`
	MaintenanceDate string `json:"maintenance_date,omitempty"`
}

// UpdateEquipmentRequest represents a partial equipment update. Status and
// maintenance date are independently settable, as the API allows.
type UpdateEquipmentRequest struct {
	Name            *string `json:"name,omitempty"`
	Category        *string `json:"category,omitempty"`
	Quantity        *int    `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=available in_use maintenance retired"`
	MaintenanceDate *string `json:"maintenance_date,omitempty"`
}

// List retrieves equipment, optionally filtered server-side.
func (s *EquipmentService) List(ctx context.Context, opts *EquipmentListOptions) ([]Equipment, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Category != "" {
			query.Set("category", opts.Category)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	path := "/api/equipment"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	equipment, _, err := listOf[Equipment](ctx, s.client, path)
	return equipment, err
}

// Get retrieves a single equipment item by ID.
func (s *EquipmentService) Get(ctx context.Context, id int64) (*Equipment, error) {
	return one[Equipment](ctx, s.client, "GET", fmt.Sprintf("/api/equipment/%d", id), nil)
}

// Create adds a new inventory item.
func (s *EquipmentService) Create(ctx context.Context, req CreateEquipmentRequest) (*Equipment, error) {
	return one[Equipment](ctx, s.client, "POST", "/api/equipment", req)
}

// Update updates an inventory item and returns the server-authoritative
// record.
func (s *EquipmentService) Update(ctx context.Context, id int64, req UpdateEquipmentRequest) (*Equipment, error) {
	return one[Equipment](ctx, s.client, "PUT", fmt.Sprintf("/api/equipment/%d", id), req)
}

// Delete removes an inventory item.
func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/equipment/%d", id), nil, nil)
}
