package cli

import (
	"testing"

	"github.com/gymstack/gymctl/pkg/client"
)

func TestActivityUpdateFromDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   map[string]string
		wantErr bool
		check   func(t *testing.T, req client.UpdateActivityRequest)
	}{
		{
			name:  "numeric and list fields convert",
			draft: map[string]string{"duration_minutes": "45", "capacity": "20", "equipment_needed": "mat, band", "trainer_id": "3"},
			check: func(t *testing.T, req client.UpdateActivityRequest) {
				if req.DurationMinutes == nil || *req.DurationMinutes != 45 {
					t.Error("duration_minutes not converted")
				}
				if req.Capacity == nil || *req.Capacity != 20 {
					t.Error("capacity not converted")
				}
				if len(req.EquipmentNeeded) != 2 || req.EquipmentNeeded[0] != "mat" || req.EquipmentNeeded[1] != "band" {
					t.Errorf("equipment_needed = %v, want [mat band]", req.EquipmentNeeded)
				}
				if req.TrainerID == nil || *req.TrainerID != 3 {
					t.Error("trainer_id not converted")
				}
				if req.Name != nil {
					t.Error("name should stay nil when absent from draft")
				}
			},
		},
		{
			name:    "bad duration",
			draft:   map[string]string{"duration_minutes": "an hour"},
			wantErr: true,
		},
		{
			name:    "bad trainer id",
			draft:   map[string]string{"trainer_id": "coach"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := activityUpdateFromDraft(tt.draft)
			if (err != nil) != tt.wantErr {
				t.Fatalf("activityUpdateFromDraft() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, req)
			}
		})
	}
}

func TestTrainerUpdateFromDraft(t *testing.T) {
	req, err := trainerUpdateFromDraft(map[string]string{"experience_years": "8", "certifications": "CPT, CPR"})
	if err != nil {
		t.Fatalf("trainerUpdateFromDraft() error = %v", err)
	}
	if req.ExperienceYears == nil || *req.ExperienceYears != 8 {
		t.Error("experience_years not converted")
	}
	if len(req.Certifications) != 2 {
		t.Errorf("certifications = %v, want two entries", req.Certifications)
	}

	if _, err := trainerUpdateFromDraft(map[string]string{"experience_years": "lots"}); err == nil {
		t.Error("expected error for non-numeric experience_years")
	}
}

func TestPlanUpdateFromDraft(t *testing.T) {
	req, err := planUpdateFromDraft(map[string]string{"price": "49.90", "duration_days": "30", "is_active": "false"})
	if err != nil {
		t.Fatalf("planUpdateFromDraft() error = %v", err)
	}
	if req.Price == nil || *req.Price != 49.90 {
		t.Error("price not converted")
	}
	if req.DurationDays == nil || *req.DurationDays != 30 {
		t.Error("duration_days not converted")
	}
	if req.IsActive == nil || *req.IsActive != false {
		t.Error("is_active not converted")
	}

	if _, err := planUpdateFromDraft(map[string]string{"is_active": "sometimes"}); err == nil {
		t.Error("expected error for bad is_active")
	}
}
