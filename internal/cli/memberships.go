package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/pkg/client"
)

func newMembershipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memberships",
		Short: "Manage plan subscriptions",
	}

	cmd.AddCommand(newMembershipsListCmd())
	cmd.AddCommand(newMembershipsMyCmd())
	cmd.AddCommand(newMembershipsSubscribeCmd())
	cmd.AddCommand(newMembershipsCancelCmd())

	return cmd
}

func membershipRow(m client.Membership) []string {
	return []string{
		formatID(m.ID),
		formatID(m.UserID),
		truncate(m.PlanName, 25),
		m.StartDate,
		m.EndDate,
		formatStatus(activeLabel(m.IsActive)),
	}
}

var membershipHeaders = []string{"ID", "USER", "PLAN", "START", "END", "STATUS"}

func renderMemberships(memberships []client.Membership) {
	t := NewTable(membershipHeaders...)
	for _, m := range memberships {
		t.AddRow(membershipRow(m)...)
	}
	t.Render()
	fmt.Printf("\n%d subscription(s)\n", len(memberships))
}

func newMembershipsListCmd() *cobra.Command {
	var userID int64
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions across users",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			opts := &client.MembershipListOptions{ActiveOnly: activeOnly}
			if cmd.Flags().Changed("user") {
				opts.UserID = &userID
			}

			memberships, err := apiClient.Memberships().List(context.Background(), opts)
			if err != nil {
				return failure("load memberships", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(memberships)
			}
			renderMemberships(memberships)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "server-side filter by user id")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active subscriptions")

	return cmd
}

func newMembershipsMyCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "my",
		Short: "List your own subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := storedUser()
			if user == nil {
				return fmt.Errorf("no stored user profile: log in again")
			}

			memberships, err := apiClient.Memberships().List(context.Background(), &client.MembershipListOptions{
				UserID:     &user.ID,
				ActiveOnly: activeOnly,
			})
			if err != nil {
				return failure("load memberships", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(memberships)
			}
			renderMemberships(memberships)
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active subscriptions")

	return cmd
}

func newMembershipsSubscribeCmd() *cobra.Command {
	var startDate string

	cmd := &cobra.Command{
		Use:   "subscribe <plan-id>",
		Short: "Subscribe to a membership plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid plan id %q", args[0])
			}

			req := client.SubscribeRequest{PlanID: planID, StartDate: startDate}
			if err := validateRequest(req); err != nil {
				return err
			}

			m, err := apiClient.Memberships().Subscribe(context.Background(), req)
			if err != nil {
				return failure("subscribe", err)
			}
			notifySuccess(fmt.Sprintf("subscribed to %s until %s", m.PlanName, m.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "start date (YYYY-MM-DD, defaults to today)")

	return cmd
}

func newMembershipsCancelCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid membership id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Cancel subscription %d?", id)) {
				return nil
			}

			if err := apiClient.Memberships().Cancel(context.Background(), id); err != nil {
				return failure("cancel membership", err)
			}
			notifySuccess(fmt.Sprintf("canceled subscription %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
