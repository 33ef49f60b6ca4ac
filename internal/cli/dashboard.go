package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/pkg/client"
)

// The dashboard switches on the stored role and shows only what that role
// can act on. Each section fetch degrades independently: a failed call is
// reported and its section renders empty.
func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Role-specific overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			switch currentRole() {
			case client.RoleAdmin:
				return adminDashboard(ctx)
			case client.RoleTrainer:
				return trainerDashboard(ctx)
			default:
				return memberDashboard(ctx)
			}
		},
	}
}

func memberDashboard(ctx context.Context) error {
	user := storedUser()
	if user == nil {
		return fmt.Errorf("no stored user profile: log in again")
	}
	fmt.Printf("Welcome back, %s\n\n", user.Name)

	memberships := fetchCollection("load memberships", func() ([]client.Membership, error) {
		return apiClient.Memberships().List(ctx, &client.MembershipListOptions{UserID: &user.ID, ActiveOnly: true})
	})
	fmt.Println("Active memberships:")
	if len(memberships) == 0 {
		fmt.Println("  none (run `gymctl plans list` to pick one)")
	}
	for _, m := range memberships {
		fmt.Printf("  %s until %s\n", m.PlanName, m.EndDate)
	}

	bookings := fetchCollection("load bookings", func() ([]client.Booking, error) {
		return apiClient.Bookings().List(ctx, &client.BookingListOptions{UserID: &user.ID, Status: client.BookingUpcoming})
	})
	fmt.Println("\nUpcoming bookings:")
	if len(bookings) == 0 {
		fmt.Println("  none")
	}
	for _, b := range bookings {
		fmt.Printf("  %s  %s %s\n", b.ActivityName, b.Date, b.Time)
	}
	return nil
}

func trainerDashboard(ctx context.Context) error {
	user := storedUser()
	if user == nil {
		return fmt.Errorf("no stored user profile: log in again")
	}
	fmt.Printf("Trainer dashboard for %s\n\n", user.Name)

	activities := fetchCollection("load activities", func() ([]client.Activity, error) {
		return apiClient.Activities().List(ctx, &client.ActivityListOptions{TrainerID: &user.ID})
	})
	fmt.Printf("Your activities (%d):\n", len(activities))
	for _, a := range activities {
		fmt.Printf("  [%d] %s  %s/%s  capacity %d  %s\n", a.ID, a.Name, a.Category, a.Difficulty, a.Capacity, a.Location)
	}

	fmt.Println("\nUpcoming bookings on your activities:")
	total := 0
	for _, a := range activities {
		id := a.ID
		bookings := fetchCollection("load bookings", func() ([]client.Booking, error) {
			return apiClient.Bookings().List(ctx, &client.BookingListOptions{ActivityID: &id, Status: client.BookingUpcoming})
		})
		for _, b := range bookings {
			fmt.Printf("  %s  %s %s\n", a.Name, b.Date, b.Time)
			total++
		}
	}
	if total == 0 {
		fmt.Println("  none")
	}
	return nil
}

func adminDashboard(ctx context.Context) error {
	fmt.Println("Admin dashboard")

	members := fetchCollection("load members", func() ([]client.Member, error) {
		return apiClient.Members().List(ctx, nil)
	})
	trainers := fetchCollection("load trainers", func() ([]client.Trainer, error) {
		return apiClient.Trainers().List(ctx, nil)
	})
	activities := fetchCollection("load activities", func() ([]client.Activity, error) {
		return apiClient.Activities().List(ctx, nil)
	})
	equipment := fetchCollection("load equipment", func() ([]client.Equipment, error) {
		return apiClient.Equipment().List(ctx, nil)
	})
	memberships := fetchCollection("load memberships", func() ([]client.Membership, error) {
		return apiClient.Memberships().List(ctx, &client.MembershipListOptions{ActiveOnly: true})
	})

	t := NewTable("RESOURCE", "COUNT")
	t.AddRow("Members", fmt.Sprintf("%d", len(members)))
	t.AddRow("Trainers", fmt.Sprintf("%d", len(trainers)))
	t.AddRow("Activities", fmt.Sprintf("%d", len(activities)))
	t.AddRow("Equipment items", fmt.Sprintf("%d", len(equipment)))
	t.AddRow("Active subscriptions", fmt.Sprintf("%d", len(memberships)))
	t.Render()

	due := maintenanceDue(equipment, 30)
	if len(due) > 0 {
		fmt.Printf("\nMaintenance due within 30 days (%d):\n", len(due))
		for _, e := range due {
			fmt.Printf("  [%d] %s  %s\n", e.ID, e.Name, e.MaintenanceDate)
		}
	}
	return nil
}
