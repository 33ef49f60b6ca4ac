package client

import (
	"encoding/json"
	"strings"
	"time"
)

// Role values returned by the API.
const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleAdmin   = "admin"
)

// Equipment lifecycle statuses.
const (
	EquipmentAvailable   = "available"
	EquipmentInUse       = "in_use"
	EquipmentMaintenance = "maintenance"
	EquipmentRetired     = "retired"
)

// Booking statuses. A booking only ever moves from upcoming to completed
// or canceled; the server enforces the transition.
const (
	BookingUpcoming  = "upcoming"
	BookingCompleted = "completed"
	BookingCanceled  = "canceled"
)

// StringList is a []string that tolerates the API's two wire forms for
// array-valued fields: a native JSON array, or a JSON-encoded array inside
// a string (e.g. "[\"mat\",\"band\"]"). A plain string that is not valid
// JSON decodes as a single-element list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var native []string
	if err := json.Unmarshal(data, &native); err == nil {
		*l = native
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*l = nil
		return nil
	}

	var nested []string
	if err := json.Unmarshal([]byte(s), &nested); err == nil {
		*l = nested
		return nil
	}
	*l = []string{s}
	return nil
}

// String joins the list for display, e.g. "mat, band".
func (l StringList) String() string {
	return strings.Join(l, ", ")
}

// User is the identity record. Role determines which command surface is
// available; it is immutable from this client's perspective.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"is_verified"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Member is a user-linked member profile.
type Member struct {
	ID               int64        `json:"id"`
	UserID           int64        `json:"user_id"`
	Name             string       `json:"name"`
	Email            string       `json:"email"`
	Phone            string       `json:"phone"`
	EmergencyContact string       `json:"emergency_contact"`
	HealthNotes      string       `json:"health_notes"`
	Memberships      []Membership `json:"memberships,omitempty"`
	CreatedAt        time.Time    `json:"created_at,omitempty"`
	UpdatedAt        time.Time    `json:"updated_at,omitempty"`
}

// Trainer is a user-linked trainer profile.
type Trainer struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Specialization  string     `json:"specialization"`
	ExperienceYears int        `json:"experience_years"`
	Certifications  StringList `json:"certifications"`
	Bio             string     `json:"bio"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty"`
}

// Activity is a class or session definition.
type Activity struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Difficulty      string     `json:"difficulty"`
	DurationMinutes int        `json:"duration_minutes"`
	Capacity        int        `json:"capacity"`
	Location        string     `json:"location"`
	EquipmentNeeded StringList `json:"equipment_needed"`
	TrainerID       *int64     `json:"trainer_id,omitempty"`
	TrainerName     string     `json:"trainer_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty"`
}

// Equipment is an inventory item. Status and maintenance date are set
// independently by the API and may disagree; the client displays both as
// returned.
type Equipment struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Quantity        int       `json:"quantity"`
	Status          string    `json:"status"`
	MaintenanceDate string    `json:"maintenance_date,omitempty"` // YYYY-MM-DD
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// MembershipPlan is a purchasable plan.
type MembershipPlan struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Price        float64    `json:"price"`
	DurationDays int        `json:"duration_days"`
	Features     StringList `json:"features"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty"`
}

// Membership is a subscription instance linking a user to a plan. IsActive
// is trusted as returned; the client does not derive it from EndDate.
type Membership struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	PlanID    int64  `json:"plan_id"`
	PlanName  string `json:"plan_name,omitempty"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	IsActive  bool   `json:"is_active"`
}

// Booking links a user to an activity occurrence.
type Booking struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name,omitempty"`
	ActivityID   int64  `json:"activity_id"`
	ActivityName string `json:"activity_name,omitempty"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time,omitempty"`
	Status       string `json:"status"`
}

// GymSettings is the single gym-wide settings record.
type GymSettings struct {
	GymName           string `json:"gym_name"`
	Address           string `json:"address"`
	Phone             string `json:"phone"`
	Email             string `json:"email"`
	OpeningHours      string `json:"opening_hours"`
	MaxBookingsPerDay int    `json:"max_bookings_per_day"`
}
