package mockapi

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gymstack/gymctl/pkg/client"
)

// store is the in-memory backing state for the development server. All
// access goes through the mutex; handlers never hold references into the
// maps across a lock boundary.
type store struct {
	mu sync.RWMutex

	users       map[int64]*user
	members     map[int64]*client.Member
	trainers    map[int64]*client.Trainer
	activities  map[int64]*client.Activity
	equipment   map[int64]*client.Equipment
	plans       map[int64]*client.MembershipPlan
	memberships map[int64]*client.Membership
	bookings    map[int64]*client.Booking
	settings    client.GymSettings

	seq int64
}

// user is the server-side identity record, including the password the API
// never returns. Passwords are stored in plain text: this server exists
// only to exercise the client locally.
type user struct {
	client.User
	Password string
}

var errNotFound = fmt.Errorf("not found")

type conflictError struct{ msg string }

func (e *conflictError) Error() string { return e.msg }

func newStore() *store {
	s := &store{
		users:       map[int64]*user{},
		members:     map[int64]*client.Member{},
		trainers:    map[int64]*client.Trainer{},
		activities:  map[int64]*client.Activity{},
		equipment:   map[int64]*client.Equipment{},
		plans:       map[int64]*client.MembershipPlan{},
		memberships: map[int64]*client.Membership{},
		bookings:    map[int64]*client.Booking{},
	}
	s.seed()
	return s
}

func (s *store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *store) findUserByEmail(email string) *user {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *store) createUser(name, email, password, role string) *user {
	u := &user{
		User: client.User{
			ID:        s.nextID(),
			Name:      name,
			Email:     email,
			Role:      role,
			Verified:  true,
			CreatedAt: time.Now().UTC(),
		},
		Password: password,
	}
	s.users[u.ID] = u

	if role == client.RoleMember {
		m := &client.Member{
			ID:        s.nextID(),
			UserID:    u.ID,
			Name:      name,
			Email:     email,
			CreatedAt: u.CreatedAt,
		}
		s.members[m.ID] = m
	}
	return u
}

// memberView attaches the member's subscriptions to a copy of the profile.
func (s *store) memberView(m *client.Member) client.Member {
	out := *m
	out.Memberships = nil
	for _, ms := range s.memberships {
		if ms.UserID == m.UserID {
			out.Memberships = append(out.Memberships, *ms)
		}
	}
	sort.Slice(out.Memberships, func(i, j int) bool { return out.Memberships[i].ID < out.Memberships[j].ID })
	return out
}

func (s *store) deleteMember(id int64) error {
	m, ok := s.members[id]
	if !ok {
		return errNotFound
	}
	for _, ms := range s.memberships {
		if ms.UserID == m.UserID && ms.IsActive {
			return &conflictError{msg: "member has an active subscription"}
		}
	}
	for _, b := range s.bookings {
		if b.UserID == m.UserID && b.Status == client.BookingUpcoming {
			return &conflictError{msg: "member has upcoming bookings"}
		}
	}
	delete(s.members, id)
	delete(s.users, m.UserID)
	return nil
}

func (s *store) deleteTrainer(id int64) error {
	t, ok := s.trainers[id]
	if !ok {
		return errNotFound
	}
	for _, a := range s.activities {
		if a.TrainerID != nil && *a.TrainerID == t.ID {
			return &conflictError{msg: "trainer is assigned to activities"}
		}
	}
	delete(s.trainers, id)
	return nil
}

func (s *store) deleteActivity(id int64) error {
	if _, ok := s.activities[id]; !ok {
		return errNotFound
	}
	for _, b := range s.bookings {
		if b.ActivityID == id && b.Status == client.BookingUpcoming {
			return &conflictError{msg: "activity has upcoming bookings"}
		}
	}
	delete(s.activities, id)
	return nil
}

func (s *store) deletePlan(id int64) error {
	if _, ok := s.plans[id]; !ok {
		return errNotFound
	}
	for _, ms := range s.memberships {
		if ms.PlanID == id && ms.IsActive {
			return &conflictError{msg: "plan has active subscriptions"}
		}
	}
	delete(s.plans, id)
	return nil
}

// trainerName resolves an activity's trainer display name.
func (s *store) trainerName(trainerID *int64) string {
	if trainerID == nil {
		return ""
	}
	if t, ok := s.trainers[*trainerID]; ok {
		return t.Name
	}
	return ""
}

func (s *store) seed() {
	now := time.Now().UTC()
	today := now.Format("2006-01-02")

	admin := s.createUser("Alex Admin", "admin@gymstack.local", "admin123", client.RoleAdmin)
	_ = admin
	coach := s.createUser("Taylor Coach", "coach@gymstack.local", "coach123", client.RoleTrainer)
	member := s.createUser("Morgan Member", "member@gymstack.local", "member123", client.RoleMember)

	trainer := &client.Trainer{
		ID:              s.nextID(),
		UserID:          coach.ID,
		Name:            coach.Name,
		Email:           coach.Email,
		Specialization:  "strength and conditioning",
		ExperienceYears: 6,
		Certifications:  client.StringList{"CPT", "CPR"},
		Bio:             "Former competitive powerlifter.",
		CreatedAt:       now,
	}
	s.trainers[trainer.ID] = trainer

	yoga := &client.Activity{
		ID:              s.nextID(),
		Name:            "Morning Yoga",
		Description:     "Gentle flow to start the day",
		Category:        "yoga",
		Difficulty:      "beginner",
		DurationMinutes: 60,
		Capacity:        15,
		Location:        "Studio A",
		EquipmentNeeded: client.StringList{"mat"},
		TrainerID:       &trainer.ID,
		CreatedAt:       now,
	}
	s.activities[yoga.ID] = yoga

	hiit := &client.Activity{
		ID:              s.nextID(),
		Name:            "HIIT Circuit",
		Description:     "High intensity interval training",
		Category:        "cardio",
		Difficulty:      "advanced",
		DurationMinutes: 45,
		Capacity:        12,
		Location:        "Main Floor",
		EquipmentNeeded: client.StringList{"kettlebell", "rower"},
		TrainerID:       &trainer.ID,
		CreatedAt:       now,
	}
	s.activities[hiit.ID] = hiit

	for _, e := range []*client.Equipment{
		{Name: "Treadmill", Category: "cardio", Quantity: 8, Status: client.EquipmentAvailable, MaintenanceDate: now.AddDate(0, 0, 14).Format("2006-01-02")},
		{Name: "Rowing Machine", Category: "cardio", Quantity: 4, Status: client.EquipmentInUse, MaintenanceDate: now.AddDate(0, 2, 0).Format("2006-01-02")},
		{Name: "Squat Rack", Category: "strength", Quantity: 3, Status: client.EquipmentMaintenance, MaintenanceDate: today},
	} {
		e.ID = s.nextID()
		e.CreatedAt = now
		s.equipment[e.ID] = e
	}

	basic := &client.MembershipPlan{
		ID:           s.nextID(),
		Name:         "Basic",
		Description:  "Gym floor access",
		Price:        29.90,
		DurationDays: 30,
		Features:     client.StringList{"gym floor", "lockers"},
		IsActive:     true,
		CreatedAt:    now,
	}
	s.plans[basic.ID] = basic

	premium := &client.MembershipPlan{
		ID:           s.nextID(),
		Name:         "Premium",
		Description:  "All classes included",
		Price:        59.90,
		DurationDays: 30,
		Features:     client.StringList{"gym floor", "all classes", "sauna"},
		IsActive:     true,
		CreatedAt:    now,
	}
	s.plans[premium.ID] = premium

	sub := &client.Membership{
		ID:        s.nextID(),
		UserID:    member.ID,
		PlanID:    premium.ID,
		PlanName:  premium.Name,
		StartDate: today,
		EndDate:   now.AddDate(0, 0, premium.DurationDays).Format("2006-01-02"),
		IsActive:  true,
	}
	s.memberships[sub.ID] = sub

	booking := &client.Booking{
		ID:           s.nextID(),
		UserID:       member.ID,
		UserName:     member.Name,
		ActivityID:   yoga.ID,
		ActivityName: yoga.Name,
		Date:         now.AddDate(0, 0, 1).Format("2006-01-02"),
		Time:         "07:30",
		Status:       client.BookingUpcoming,
	}
	s.bookings[booking.ID] = booking

	s.settings = client.GymSettings{
		GymName:           "GymStack Downtown",
		Address:           "12 Harbor Street",
		Phone:             "+1 555 0100",
		Email:             "hello@gymstack.local",
		OpeningHours:      "Mon-Fri 06:00-22:00, Sat-Sun 08:00-20:00",
		MaxBookingsPerDay: 3,
	}
}
