package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/internal/listview"
	"github.com/gymstack/gymctl/pkg/client"
)

func newPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage membership plans",
	}

	cmd.AddCommand(newPlansListCmd())
	cmd.AddCommand(newPlansGetCmd())
	cmd.AddCommand(newPlansCreateCmd())
	cmd.AddCommand(newPlansUpdateCmd())
	cmd.AddCommand(newPlansDeleteCmd())
	cmd.AddCommand(newPlansBrowseCmd())

	return cmd
}

func planSession(items []client.MembershipPlan) *listview.Session[client.MembershipPlan] {
	return listview.NewSession(listview.Config[client.MembershipPlan]{
		PageSize: listview.DefaultPageSize,
		ID:       func(p client.MembershipPlan) int64 { return p.ID },
		SearchFields: func(p client.MembershipPlan) []string {
			return []string{p.Name, p.Description}
		},
		Update: func(ctx context.Context, p client.MembershipPlan, draft map[string]string) (client.MembershipPlan, error) {
			req, err := planUpdateFromDraft(draft)
			if err != nil {
				return p, err
			}
			if err := validateRequest(req); err != nil {
				return p, err
			}
			updated, err := apiClient.Memberships().UpdatePlan(ctx, p.ID, req)
			if err != nil {
				return p, err
			}
			return *updated, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return apiClient.Memberships().DeletePlan(ctx, id)
		},
	}, items)
}

func planUpdateFromDraft(draft map[string]string) (client.UpdatePlanRequest, error) {
	var req client.UpdatePlanRequest
	if v, ok := draft["name"]; ok {
		req.Name = &v
	}
	if v, ok := draft["description"]; ok {
		req.Description = &v
	}
	if v, ok := draft["price"]; ok {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("price must be a number, got %q", v)
		}
		req.Price = &price
	}
	if v, ok := draft["duration_days"]; ok {
		days, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("duration_days must be a number, got %q", v)
		}
		req.DurationDays = &days
	}
	if v, ok := draft["features"]; ok {
		req.Features = listview.SplitCSV(v)
	}
	if v, ok := draft["is_active"]; ok {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return req, fmt.Errorf("is_active must be true or false, got %q", v)
		}
		req.IsActive = &active
	}
	return req, nil
}

func planRow(p client.MembershipPlan) []string {
	return []string{
		formatID(p.ID),
		truncate(p.Name, 25),
		formatPrice(p.Price),
		fmt.Sprintf("%dd", p.DurationDays),
		formatStatus(activeLabel(p.IsActive)),
		truncate(p.Features.String(), 35),
	}
}

var planHeaders = []string{"ID", "NAME", "PRICE", "DURATION", "STATUS", "FEATURES"}

func newPlansListCmd() *cobra.Command {
	var activeOnly bool
	var search string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List membership plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Memberships().ListPlans(context.Background(), &client.PlanListOptions{ActiveOnly: activeOnly})
			if err != nil {
				return failure("load plans", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			s := planSession(plans)
			s.Search(search)
			s.GoToPage(page)

			t := NewTable(planHeaders...)
			for _, p := range s.PageItems() {
				t.AddRow(planRow(p)...)
			}
			t.Render()
			fmt.Printf("\n%s (%d plan(s))\n", s.PageLabel(), s.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active plans")
	cmd.Flags().StringVar(&search, "search", "", "client-side text search across name and description")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newPlansGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get plan details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid plan id %q", args[0])
			}

			p, err := apiClient.Memberships().GetPlan(context.Background(), id)
			if err != nil {
				return failure("load plan", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(p)
			}

			fmt.Printf("Name:        %s\n", p.Name)
			fmt.Printf("Description: %s\n", p.Description)
			fmt.Printf("Price:       %s\n", formatPrice(p.Price))
			fmt.Printf("Duration:    %d days\n", p.DurationDays)
			fmt.Printf("Status:      %s\n", formatStatus(activeLabel(p.IsActive)))
			fmt.Printf("Features:    %s\n", p.Features.String())
			return nil
		},
	}
}

func newPlansCreateCmd() *cobra.Command {
	var name, description, features string
	var price float64
	var durationDays int
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a membership plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			req := client.CreatePlanRequest{
				Name:         name,
				Description:  description,
				Price:        price,
				DurationDays: durationDays,
				Features:     listview.SplitCSV(features),
			}
			if inactive {
				active := false
				req.IsActive = &active
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			p, err := apiClient.Memberships().CreatePlan(context.Background(), req)
			if err != nil {
				return failure("create plan", err)
			}
			notifySuccess(fmt.Sprintf("created plan %d (%s)", p.ID, p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "plan name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().Float64Var(&price, "price", 0, "price")
	cmd.Flags().IntVar(&durationDays, "duration-days", 30, "duration in days")
	cmd.Flags().StringVar(&features, "features", "", "comma-separated feature list")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "create as inactive")

	return cmd
}

func newPlansUpdateCmd() *cobra.Command {
	var name, description, price, durationDays, features, isActive string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update plan fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid plan id %q", args[0])
			}

			draft := map[string]string{}
			setIfChanged(cmd, draft, "name", name)
			setIfChanged(cmd, draft, "description", description)
			setIfChanged(cmd, draft, "price", price)
			setIfChanged(cmd, draft, "duration_days", durationDays)
			setIfChanged(cmd, draft, "features", features)
			setIfChanged(cmd, draft, "is_active", isActive)
			if len(draft) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			req, err := planUpdateFromDraft(draft)
			if err != nil {
				return err
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			p, err := apiClient.Memberships().UpdatePlan(context.Background(), id, req)
			if err != nil {
				return failure("update plan", err)
			}
			notifySuccess(fmt.Sprintf("updated plan %d (%s)", p.ID, p.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "plan name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&price, "price", "", "price")
	cmd.Flags().StringVar(&durationDays, "duration-days", "", "duration in days")
	cmd.Flags().StringVar(&features, "features", "", "comma-separated feature list")
	cmd.Flags().StringVar(&isActive, "is-active", "", "true or false")

	return cmd
}

func newPlansDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a membership plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid plan id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Delete plan %d? Active subscriptions may block this.", id)) {
				return nil
			}

			if err := apiClient.Memberships().DeletePlan(context.Background(), id); err != nil {
				return failure("delete plan", err)
			}
			notifySuccess(fmt.Sprintf("deleted plan %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func newPlansBrowseCmd() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search, page, edit and delete plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			ctx := context.Background()

			plans := fetchCollection("load plans", func() ([]client.MembershipPlan, error) {
				return apiClient.Memberships().ListPlans(ctx, &client.PlanListOptions{ActiveOnly: activeOnly})
			})

			sc := newScreen("Plans", planSession(plans), planHeaders, planRow, []screenField[client.MembershipPlan]{
				{name: "name", get: func(p client.MembershipPlan) string { return p.Name }},
				{name: "description", get: func(p client.MembershipPlan) string { return p.Description }},
				{name: "price", get: func(p client.MembershipPlan) string { return strconv.FormatFloat(p.Price, 'f', 2, 64) }},
				{name: "duration_days", get: func(p client.MembershipPlan) string { return strconv.Itoa(p.DurationDays) }},
				{name: "features", get: func(p client.MembershipPlan) string { return listview.JoinCSV(p.Features) }},
				{name: "is_active", get: func(p client.MembershipPlan) string { return strconv.FormatBool(p.IsActive) }},
			})
			return sc.run(ctx)
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active plans")

	return cmd
}
