package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/pkg/client"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage gym settings (admin)",
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsUpdateCmd())

	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show gym settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			s, err := apiClient.Settings().Get(context.Background())
			if err != nil {
				return failure("load settings", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(s)
			}

			fmt.Printf("Gym name:             %s\n", s.GymName)
			fmt.Printf("Address:              %s\n", s.Address)
			fmt.Printf("Phone:                %s\n", s.Phone)
			fmt.Printf("Email:                %s\n", s.Email)
			fmt.Printf("Opening hours:        %s\n", s.OpeningHours)
			fmt.Printf("Max bookings per day: %d\n", s.MaxBookingsPerDay)
			return nil
		},
	}
}

func newSettingsUpdateCmd() *cobra.Command {
	var gymName, address, phone, email, openingHours string
	var maxBookings int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update gym settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			var req client.UpdateSettingsRequest
			changed := false
			if cmd.Flags().Changed("gym-name") {
				req.GymName = &gymName
				changed = true
			}
			if cmd.Flags().Changed("address") {
				req.Address = &address
				changed = true
			}
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
				changed = true
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
				changed = true
			}
			if cmd.Flags().Changed("opening-hours") {
				req.OpeningHours = &openingHours
				changed = true
			}
			if cmd.Flags().Changed("max-bookings-per-day") {
				req.MaxBookingsPerDay = &maxBookings
				changed = true
			}
			if !changed {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			s, err := apiClient.Settings().Update(context.Background(), req)
			if err != nil {
				return failure("update settings", err)
			}
			notifySuccess("updated settings for " + s.GymName + " (max " + strconv.Itoa(s.MaxBookingsPerDay) + " bookings/day)")
			return nil
		},
	}

	cmd.Flags().StringVar(&gymName, "gym-name", "", "gym name")
	cmd.Flags().StringVar(&address, "address", "", "street address")
	cmd.Flags().StringVar(&phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringVar(&openingHours, "opening-hours", "", "opening hours text")
	cmd.Flags().IntVar(&maxBookings, "max-bookings-per-day", 0, "per-member daily booking cap")

	return cmd
}
