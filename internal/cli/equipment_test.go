package cli

import (
	"testing"
	"time"

	"github.com/gymstack/gymctl/pkg/client"
)

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestMaintenanceDue(t *testing.T) {
	items := []client.Equipment{
		{ID: 1, Name: "Treadmill", MaintenanceDate: dateOffset(5), Status: client.EquipmentAvailable},
		{ID: 2, Name: "Rower", MaintenanceDate: dateOffset(90), Status: client.EquipmentAvailable},
		{ID: 3, Name: "Old Bike", MaintenanceDate: dateOffset(-10), Status: client.EquipmentAvailable},
		{ID: 4, Name: "Scrapped Bike", MaintenanceDate: dateOffset(2), Status: client.EquipmentRetired},
		{ID: 5, Name: "No Date", Status: client.EquipmentAvailable},
		{ID: 6, Name: "Bad Date", MaintenanceDate: "soon", Status: client.EquipmentAvailable},
	}

	due := maintenanceDue(items, 30)

	wantIDs := map[int64]bool{1: true, 3: true}
	if len(due) != len(wantIDs) {
		t.Fatalf("maintenanceDue() returned %d items, want %d: %+v", len(due), len(wantIDs), due)
	}
	for _, e := range due {
		if !wantIDs[e.ID] {
			t.Errorf("unexpected item %d (%s) in due list", e.ID, e.Name)
		}
	}
}

func TestEquipmentUpdateFromDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   map[string]string
		wantErr bool
		check   func(t *testing.T, req client.UpdateEquipmentRequest)
	}{
		{
			name:  "all fields",
			draft: map[string]string{"name": "Kettlebell", "category": "weights", "quantity": "12", "status": "available", "maintenance_date": "2026-10-01"},
			check: func(t *testing.T, req client.UpdateEquipmentRequest) {
				if req.Name == nil || *req.Name != "Kettlebell" {
					t.Error("name not set")
				}
				if req.Quantity == nil || *req.Quantity != 12 {
					t.Error("quantity not set")
				}
				if req.MaintenanceDate == nil || *req.MaintenanceDate != "2026-10-01" {
					t.Error("maintenance_date not set")
				}
			},
		},
		{
			name:  "untouched fields stay nil",
			draft: map[string]string{"status": "maintenance"},
			check: func(t *testing.T, req client.UpdateEquipmentRequest) {
				if req.Name != nil || req.Category != nil || req.Quantity != nil {
					t.Errorf("unexpected fields set: %+v", req)
				}
				if req.Status == nil || *req.Status != "maintenance" {
					t.Error("status not set")
				}
			},
		},
		{
			name:    "non-numeric quantity",
			draft:   map[string]string{"quantity": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := equipmentUpdateFromDraft(tt.draft)
			if (err != nil) != tt.wantErr {
				t.Fatalf("equipmentUpdateFromDraft() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}
