package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/internal/listview"
	"github.com/gymstack/gymctl/pkg/client"
)

func newEquipmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Manage equipment inventory",
	}

	cmd.AddCommand(newEquipmentListCmd())
	cmd.AddCommand(newEquipmentGetCmd())
	cmd.AddCommand(newEquipmentCreateCmd())
	cmd.AddCommand(newEquipmentUpdateCmd())
	cmd.AddCommand(newEquipmentDeleteCmd())
	cmd.AddCommand(newEquipmentBrowseCmd())
	cmd.AddCommand(newEquipmentMaintenanceCmd())

	return cmd
}

func equipmentSession(items []client.Equipment) *listview.Session[client.Equipment] {
	return listview.NewSession(listview.Config[client.Equipment]{
		PageSize: listview.DefaultPageSize,
		ID:       func(e client.Equipment) int64 { return e.ID },
		SearchFields: func(e client.Equipment) []string {
			return []string{e.Name, e.Category, e.Status}
		},
		Update: func(ctx context.Context, e client.Equipment, draft map[string]string) (client.Equipment, error) {
			req, err := equipmentUpdateFromDraft(draft)
			if err != nil {
				return e, err
			}
			if err := validateRequest(req); err != nil {
				return e, err
			}
			updated, err := apiClient.Equipment().Update(ctx, e.ID, req)
			if err != nil {
				return e, err
			}
			return *updated, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return apiClient.Equipment().Delete(ctx, id)
		},
	}, items)
}

func equipmentUpdateFromDraft(draft map[string]string) (client.UpdateEquipmentRequest, error) {
	var req client.UpdateEquipmentRequest
	if v, ok := draft["name"]; ok {
		req.Name = &v
	}
	if v, ok := draft["category"]; ok {
		req.Category = &v
	}
	if v, ok := draft["quantity"]; ok {
		qty, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("quantity must be a number, got %q", v)
		}
		req.Quantity = &qty
	}
	if v, ok := draft["status"]; ok {
		req.Status = &v
	}
	if v, ok := draft["maintenance_date"]; ok {
		req.MaintenanceDate = &v
	}
	return req, nil
}

func equipmentRow(e client.Equipment) []string {
	return []string{
		formatID(e.ID),
		truncate(e.Name, 30),
		e.Category,
		strconv.Itoa(e.Quantity),
		formatStatus(e.Status),
		e.MaintenanceDate,
	}
}

var equipmentHeaders = []string{"ID", "NAME", "CATEGORY", "QTY", "STATUS", "NEXT MAINTENANCE"}

func newEquipmentListCmd() *cobra.Command {
	var category, status, search string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := apiClient.Equipment().List(context.Background(), &client.EquipmentListOptions{Category: category, Status: status})
			if err != nil {
				return failure("load equipment", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(items)
			}

			s := equipmentSession(items)
			s.Search(search)
			s.GoToPage(page)

			t := NewTable(equipmentHeaders...)
			for _, e := range s.PageItems() {
				t.AddRow(equipmentRow(e)...)
			}
			t.Render()
			fmt.Printf("\n%s (%d item(s))\n", s.PageLabel(), s.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "server-side filter by category")
	cmd.Flags().StringVar(&status, "status", "", "server-side filter by status: available, in_use, maintenance, retired")
	cmd.Flags().StringVar(&search, "search", "", "client-side text search across name, category and status")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newEquipmentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get equipment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid equipment id %q", args[0])
			}

			e, err := apiClient.Equipment().Get(context.Background(), id)
			if err != nil {
				return failure("load equipment", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(e)
			}

			fmt.Printf("Name:             %s\n", e.Name)
			fmt.Printf("Category:         %s\n", e.Category)
			fmt.Printf("Quantity:         %d\n", e.Quantity)
			fmt.Printf("Status:           %s\n", formatStatus(e.Status))
			fmt.Printf("Next maintenance: %s\n", e.MaintenanceDate)
			return nil
		},
	}
}

func newEquipmentCreateCmd() *cobra.Command {
	var name, category, status, maintenanceDate string
	var quantity int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an inventory item",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			req := client.CreateEquipmentRequest{
				Name:            name,
				Category:        category,
				Quantity:        quantity,
				Status:          status,
				MaintenanceDate: maintenanceDate,
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			e, err := apiClient.Equipment().Create(context.Background(), req)
			if err != nil {
				return failure("create equipment", err)
			}
			notifySuccess(fmt.Sprintf("created equipment %d (%s)", e.ID, e.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "equipment name")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity on hand")
	cmd.Flags().StringVar(&status, "status", client.EquipmentAvailable, "status: available, in_use, maintenance, retired")
	cmd.Flags().StringVar(&maintenanceDate, "maintenance-date", "", "next maintenance date (YYYY-MM-DD)")

	return cmd
}

func newEquipmentUpdateCmd() *cobra.Command {
	var name, category, quantity, status, maintenanceDate string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update equipment fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid equipment id %q", args[0])
			}

			draft := map[string]string{}
			setIfChanged(cmd, draft, "name", name)
			setIfChanged(cmd, draft, "category", category)
			setIfChanged(cmd, draft, "quantity", quantity)
			setIfChanged(cmd, draft, "status", status)
			setIfChanged(cmd, draft, "maintenance_date", maintenanceDate)
			if len(draft) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			req, err := equipmentUpdateFromDraft(draft)
			if err != nil {
				return err
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			e, err := apiClient.Equipment().Update(context.Background(), id, req)
			if err != nil {
				return failure("update equipment", err)
			}
			notifySuccess(fmt.Sprintf("updated equipment %d (%s)", e.ID, e.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "equipment name")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&quantity, "quantity", "", "quantity on hand")
	cmd.Flags().StringVar(&status, "status", "", "status: available, in_use, maintenance, retired")
	cmd.Flags().StringVar(&maintenanceDate, "maintenance-date", "", "next maintenance date (YYYY-MM-DD)")

	return cmd
}

func newEquipmentDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an inventory item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid equipment id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Delete equipment %d? This cannot be undone.", id)) {
				return nil
			}

			if err := apiClient.Equipment().Delete(context.Background(), id); err != nil {
				return failure("delete equipment", err)
			}
			notifySuccess(fmt.Sprintf("deleted equipment %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func newEquipmentBrowseCmd() *cobra.Command {
	var category, status string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search, page, edit and delete equipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			ctx := context.Background()

			items := fetchCollection("load equipment", func() ([]client.Equipment, error) {
				return apiClient.Equipment().List(ctx, &client.EquipmentListOptions{Category: category, Status: status})
			})

			sc := newScreen("Equipment", equipmentSession(items), equipmentHeaders, equipmentRow, []screenField[client.Equipment]{
				{name: "name", get: func(e client.Equipment) string { return e.Name }},
				{name: "category", get: func(e client.Equipment) string { return e.Category }},
				{name: "quantity", get: func(e client.Equipment) string { return strconv.Itoa(e.Quantity) }},
				{name: "status", get: func(e client.Equipment) string { return e.Status }},
				{name: "maintenance_date", get: func(e client.Equipment) string { return e.MaintenanceDate }},
			})
			return sc.run(ctx)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "server-side filter by category")
	cmd.Flags().StringVar(&status, "status", "", "server-side filter by status")

	return cmd
}

func newEquipmentMaintenanceCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "maintenance-due",
		Short: "List equipment with maintenance due within a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			items, err := apiClient.Equipment().List(context.Background(), nil)
			if err != nil {
				return failure("load equipment", err)
			}

			due := maintenanceDue(items, days)
			if getOutputFormat() != "table" {
				return printOutput(due)
			}

			if len(due) == 0 {
				fmt.Printf("No equipment due for maintenance in the next %d day(s)\n", days)
				return nil
			}

			t := NewTable(equipmentHeaders...)
			for _, e := range due {
				t.AddRow(equipmentRow(e)...)
			}
			t.Render()
			fmt.Printf("\n%d item(s) due within %d day(s)\n", len(due), days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "window in days")

	return cmd
}

// maintenanceDue returns items whose maintenance date falls on or before
// today plus the window. Items without a parseable date are skipped.
func maintenanceDue(items []client.Equipment, days int) []client.Equipment {
	cutoff := time.Now().AddDate(0, 0, days)
	var due []client.Equipment
	for _, e := range items {
		if e.Status == client.EquipmentRetired || e.MaintenanceDate == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", e.MaintenanceDate)
		if err != nil {
			continue
		}
		if !d.After(cutoff) {
			due = append(due, e)
		}
	}
	return due
}
