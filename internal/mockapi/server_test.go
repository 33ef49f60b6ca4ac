package mockapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gymstack/gymctl/internal/pkg/logger"
	"github.com/gymstack/gymctl/pkg/client"
)

// The server is tested through the real SDK so the two halves stay in
// agreement about paths, envelopes and error shapes.

func testServer(t *testing.T) (*httptest.Server, *client.Client) {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "console"})
	srv := httptest.NewServer(NewServer("test-secret", log).Handler())
	t.Cleanup(srv.Close)
	return srv, client.NewClient(client.Config{BaseURL: srv.URL})
}

func loginAs(t *testing.T, c *client.Client, email, password string) *client.LoginResponse {
	t.Helper()
	resp, err := c.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("login as %s failed: %v", email, err)
	}
	return resp
}

func TestLoginAndMe(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()

	resp := loginAs(t, c, "admin@gymstack.local", "admin123")
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	if resp.User == nil || resp.User.Role != client.RoleAdmin {
		t.Fatalf("login user = %+v, want admin role", resp.User)
	}

	me, err := c.GetCurrentUser(ctx)
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if me.Email != "admin@gymstack.local" {
		t.Errorf("me.Email = %q", me.Email)
	}
}

func TestLoginBadPassword(t *testing.T) {
	_, c := testServer(t)

	_, err := c.Login(context.Background(), "admin@gymstack.local", "wrong")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsUnauthorized() {
		t.Fatalf("login error = %v, want 401", err)
	}
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	_, c := testServer(t)

	_, err := c.Members().List(context.Background(), nil)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsUnauthorized() {
		t.Fatalf("error = %v, want 401", err)
	}
}

func TestMemberRoleForbiddenFromMembers(t *testing.T) {
	_, c := testServer(t)
	loginAs(t, c, "member@gymstack.local", "member123")

	_, err := c.Members().List(context.Background(), nil)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsForbidden() {
		t.Fatalf("error = %v, want 403", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, c := testServer(t)

	_, err := c.Register(context.Background(), client.RegisterRequest{Name: "", Email: "nope", Password: "short"})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsValidation() {
		t.Fatalf("error = %v, want 422", err)
	}
	if len(apiErr.FieldMessages()) != 3 {
		t.Errorf("FieldMessages() = %v, want three entries", apiErr.FieldMessages())
	}
}

func TestRegisterAndDuplicateEmail(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()

	req := client.RegisterRequest{Name: "New Member", Email: "new@gymstack.local", Password: "longenough"}
	resp, err := c.Register(ctx, req)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User == nil || resp.User.Role != client.RoleMember {
		t.Fatalf("registered user = %+v, want member role", resp.User)
	}

	_, err = client.NewClient(client.Config{BaseURL: c.BaseURL()}).Register(ctx, req)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("duplicate register error = %v, want 409", err)
	}
}

func TestListEnvelopeVariants(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "admin@gymstack.local", "admin123")

	// Bare array.
	members, err := c.Members().List(ctx, nil)
	if err != nil || len(members) == 0 {
		t.Fatalf("Members().List() = %v, %v", members, err)
	}

	// {"data": [...]}.
	trainers, err := c.Trainers().List(ctx, nil)
	if err != nil || len(trainers) == 0 {
		t.Fatalf("Trainers().List() = %v, %v", trainers, err)
	}

	// Paged envelope, with trainer names resolved.
	activities, err := c.Activities().List(ctx, nil)
	if err != nil || len(activities) == 0 {
		t.Fatalf("Activities().List() = %v, %v", activities, err)
	}
	if activities[0].TrainerName == "" {
		t.Error("activity trainer name not resolved")
	}
}

func TestActivityCRUD(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "coach@gymstack.local", "coach123")

	created, err := c.Activities().Create(ctx, client.CreateActivityRequest{
		Name:            "Evening Stretch",
		Category:        "mobility",
		Difficulty:      "beginner",
		DurationMinutes: 30,
		Capacity:        20,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	name := "Evening Stretch & Mobility"
	updated, err := c.Activities().Update(ctx, created.ID, client.UpdateActivityRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != name {
		t.Errorf("updated name = %q, want %q", updated.Name, name)
	}
	if updated.Capacity != 20 {
		t.Errorf("untouched capacity changed: %d", updated.Capacity)
	}

	// Trainers cannot delete.
	err = c.Activities().Delete(ctx, created.ID)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsForbidden() {
		t.Fatalf("trainer delete error = %v, want 403", err)
	}
}

func TestDeleteActivityWithBookingsConflicts(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "admin@gymstack.local", "admin123")

	activities, err := c.Activities().List(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	// Seeded yoga class has an upcoming booking.
	err = c.Activities().Delete(ctx, activities[0].ID)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("delete error = %v, want 409", err)
	}
}

func TestSubscribeAndCancel(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "member@gymstack.local", "member123")

	plans, err := c.Memberships().ListPlans(ctx, &client.PlanListOptions{ActiveOnly: true})
	if err != nil || len(plans) < 2 {
		t.Fatalf("ListPlans() = %v, %v", plans, err)
	}

	// plans[0] is Basic; the member is seeded onto Premium.
	ms, err := c.Memberships().Subscribe(ctx, client.SubscribeRequest{PlanID: plans[0].ID})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !ms.IsActive || ms.PlanName != plans[0].Name {
		t.Errorf("subscription = %+v", ms)
	}

	// Double subscribe conflicts.
	_, err = c.Memberships().Subscribe(ctx, client.SubscribeRequest{PlanID: plans[0].ID})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("double subscribe error = %v, want 409", err)
	}

	if err := c.Memberships().Cancel(ctx, ms.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	mine, err := c.Memberships().List(ctx, &client.MembershipListOptions{ActiveOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range mine {
		if m.ID == ms.ID {
			t.Error("canceled subscription still listed as active")
		}
	}
}

func TestBookingLifecycleAndLimits(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "member@gymstack.local", "member123")

	activities, err := c.Activities().List(ctx, nil)
	if err != nil || len(activities) < 2 {
		t.Fatalf("Activities().List() = %v, %v", activities, err)
	}

	date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	b, err := c.Bookings().Create(ctx, client.CreateBookingRequest{ActivityID: activities[1].ID, Date: date, Time: "18:00"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if b.Status != client.BookingUpcoming {
		t.Errorf("booking status = %q, want upcoming", b.Status)
	}

	// Same activity, same date conflicts.
	_, err = c.Bookings().Create(ctx, client.CreateBookingRequest{ActivityID: activities[1].ID, Date: date})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("duplicate booking error = %v, want 409", err)
	}

	canceled, err := c.Bookings().Cancel(ctx, b.ID)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if canceled.Status != client.BookingCanceled {
		t.Errorf("canceled status = %q", canceled.Status)
	}

	// Cancel is not idempotent: a second cancel conflicts.
	_, err = c.Bookings().Cancel(ctx, b.ID)
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("second cancel error = %v, want 409", err)
	}
}

func TestBadDateRejected(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "member@gymstack.local", "member123")

	_, err := c.Bookings().Create(ctx, client.CreateBookingRequest{ActivityID: 1, Date: "next tuesday"})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsValidation() {
		t.Fatalf("error = %v, want 422", err)
	}
}

func TestSettingsUpdate(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "admin@gymstack.local", "admin123")

	maxBookings := 5
	updated, err := c.Settings().Update(ctx, client.UpdateSettingsRequest{MaxBookingsPerDay: &maxBookings})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.MaxBookingsPerDay != 5 {
		t.Errorf("MaxBookingsPerDay = %d, want 5", updated.MaxBookingsPerDay)
	}
	if updated.GymName == "" {
		t.Error("untouched gym name was lost")
	}
}

func TestDeletePlanWithSubscriptionsConflicts(t *testing.T) {
	_, c := testServer(t)
	ctx := context.Background()
	loginAs(t, c, "admin@gymstack.local", "admin123")

	plans, err := c.Memberships().ListPlans(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	var premium *client.MembershipPlan
	for i := range plans {
		if plans[i].Name == "Premium" {
			premium = &plans[i]
		}
	}
	if premium == nil {
		t.Fatal("seed plan Premium missing")
	}

	err = c.Memberships().DeletePlan(ctx, premium.ID)
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsConflict() {
		t.Fatalf("delete error = %v, want 409", err)
	}
}
