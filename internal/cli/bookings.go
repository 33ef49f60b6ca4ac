package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/pkg/client"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage class bookings",
	}

	cmd.AddCommand(newBookingsListCmd())
	cmd.AddCommand(newBookingsMyCmd())
	cmd.AddCommand(newBookingsCreateCmd())
	cmd.AddCommand(newBookingsCancelCmd())

	return cmd
}

func bookingRow(b client.Booking) []string {
	return []string{
		formatID(b.ID),
		truncate(b.ActivityName, 25),
		b.Date,
		b.Time,
		formatStatus(b.Status),
	}
}

var bookingHeaders = []string{"ID", "ACTIVITY", "DATE", "TIME", "STATUS"}

func renderBookings(bookings []client.Booking) {
	t := NewTable(bookingHeaders...)
	for _, b := range bookings {
		t.AddRow(bookingRow(b)...)
	}
	t.Render()
	fmt.Printf("\n%d booking(s)\n", len(bookings))
}

func newBookingsListCmd() *cobra.Command {
	var userID, activityID int64
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings across users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin, client.RoleTrainer); err != nil {
				return err
			}

			opts := &client.BookingListOptions{Status: status}
			if cmd.Flags().Changed("user") {
				opts.UserID = &userID
			}
			if cmd.Flags().Changed("activity") {
				opts.ActivityID = &activityID
			}

			bookings, err := apiClient.Bookings().List(context.Background(), opts)
			if err != nil {
				return failure("load bookings", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(bookings)
			}
			renderBookings(bookings)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "server-side filter by user id")
	cmd.Flags().Int64Var(&activityID, "activity", 0, "server-side filter by activity id")
	cmd.Flags().StringVar(&status, "status", "", "server-side filter by status: upcoming, completed, canceled")

	return cmd
}

func newBookingsMyCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "my",
		Short: "List your own bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := storedUser()
			if user == nil {
				return fmt.Errorf("no stored user profile: log in again")
			}

			bookings, err := apiClient.Bookings().List(context.Background(), &client.BookingListOptions{
				UserID: &user.ID,
				Status: status,
			})
			if err != nil {
				return failure("load bookings", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(bookings)
			}
			renderBookings(bookings)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "server-side filter by status: upcoming, completed, canceled")

	return cmd
}

func newBookingsCreateCmd() *cobra.Command {
	var date, timeOfDay string

	cmd := &cobra.Command{
		Use:   "create <activity-id>",
		Short: "Book yourself onto an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: gymctl bookings create <activity-id> --date YYYY-MM-DD")
			}
			activityID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid activity id %q", args[0])
			}

			req := client.CreateBookingRequest{ActivityID: activityID, Date: date, Time: timeOfDay}
			if err := validateRequest(req); err != nil {
				return err
			}

			b, err := apiClient.Bookings().Create(context.Background(), req)
			if err != nil {
				return failure("create booking", err)
			}
			notifySuccess(fmt.Sprintf("booked %s on %s (booking %d)", b.ActivityName, b.Date, b.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "booking date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&timeOfDay, "time", "", "booking time (HH:MM)")

	return cmd
}

func newBookingsCancelCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an upcoming booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid booking id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Cancel booking %d?", id)) {
				return nil
			}

			b, err := apiClient.Bookings().Cancel(context.Background(), id)
			if err != nil {
				return failure("cancel booking", err)
			}
			notifySuccess(fmt.Sprintf("canceled booking %d (%s)", b.ID, b.ActivityName))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
