package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/internal/listview"
	"github.com/gymstack/gymctl/pkg/client"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Manage gym members (admin)",
	}

	cmd.AddCommand(newMembersListCmd())
	cmd.AddCommand(newMembersGetCmd())
	cmd.AddCommand(newMembersUpdateCmd())
	cmd.AddCommand(newMembersDeleteCmd())
	cmd.AddCommand(newMembersBrowseCmd())

	return cmd
}

func memberSession(items []client.Member) *listview.Session[client.Member] {
	return listview.NewSession(listview.Config[client.Member]{
		PageSize: listview.DefaultPageSize,
		ID:       func(m client.Member) int64 { return m.ID },
		SearchFields: func(m client.Member) []string {
			return []string{m.Name, m.Email, m.Phone}
		},
		Update: func(ctx context.Context, m client.Member, draft map[string]string) (client.Member, error) {
			req := memberUpdateFromDraft(draft)
			if err := validateRequest(req); err != nil {
				return m, err
			}
			updated, err := apiClient.Members().Update(ctx, m.ID, req)
			if err != nil {
				return m, err
			}
			return *updated, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return apiClient.Members().Delete(ctx, id)
		},
	}, items)
}

// memberUpdateFromDraft builds the partial update request from an inline
// editor draft; untouched fields stay nil and are preserved server-side.
func memberUpdateFromDraft(draft map[string]string) client.UpdateMemberRequest {
	var req client.UpdateMemberRequest
	if v, ok := draft["name"]; ok {
		req.Name = &v
	}
	if v, ok := draft["email"]; ok {
		req.Email = &v
	}
	if v, ok := draft["phone"]; ok {
		req.Phone = &v
	}
	if v, ok := draft["emergency_contact"]; ok {
		req.EmergencyContact = &v
	}
	if v, ok := draft["health_notes"]; ok {
		req.HealthNotes = &v
	}
	return req
}

func memberRow(m client.Member) []string {
	return []string{
		formatID(m.ID),
		truncate(m.Name, 30),
		truncate(m.Email, 30),
		m.Phone,
	}
}

var memberHeaders = []string{"ID", "NAME", "EMAIL", "PHONE"}

func newMembersListCmd() *cobra.Command {
	var status, search string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			members, err := apiClient.Members().List(context.Background(), &client.MemberListOptions{Status: status})
			if err != nil {
				return failure("load members", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(members)
			}

			s := memberSession(members)
			s.Search(search)
			s.GoToPage(page)

			t := NewTable(memberHeaders...)
			for _, m := range s.PageItems() {
				t.AddRow(memberRow(m)...)
			}
			t.Render()
			fmt.Printf("\n%s (%d member(s))\n", s.PageLabel(), s.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "server-side filter by membership status")
	cmd.Flags().StringVar(&search, "search", "", "client-side text search across name, email and phone")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newMembersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get member details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}

			m, err := apiClient.Members().Get(context.Background(), id)
			if err != nil {
				return failure("load member", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(m)
			}

			fmt.Printf("Name:              %s\n", m.Name)
			fmt.Printf("Email:             %s\n", m.Email)
			fmt.Printf("Phone:             %s\n", m.Phone)
			fmt.Printf("Emergency contact: %s\n", m.EmergencyContact)
			fmt.Printf("Health notes:      %s\n", m.HealthNotes)
			if len(m.Memberships) > 0 {
				fmt.Println("Memberships:")
				for _, ms := range m.Memberships {
					fmt.Printf("  %s  %s to %s  %s\n", ms.PlanName, ms.StartDate, ms.EndDate, formatStatus(activeLabel(ms.IsActive)))
				}
			}
			return nil
		},
	}
}

func newMembersUpdateCmd() *cobra.Command {
	var name, email, phone, emergency, notes string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update member fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}

			draft := map[string]string{}
			setIfChanged(cmd, draft, "name", name)
			setIfChanged(cmd, draft, "email", email)
			setIfChanged(cmd, draft, "phone", phone)
			setIfChanged(cmd, draft, "emergency_contact", emergency)
			setIfChanged(cmd, draft, "health_notes", notes)
			if len(draft) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			req := memberUpdateFromDraft(draft)
			if err := validateRequest(req); err != nil {
				return err
			}

			m, err := apiClient.Members().Update(context.Background(), id, req)
			if err != nil {
				return failure("update member", err)
			}
			notifySuccess(fmt.Sprintf("updated member %d (%s)", m.ID, m.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&emergency, "emergency-contact", "", "emergency contact")
	cmd.Flags().StringVar(&notes, "health-notes", "", "health notes")

	return cmd
}

func newMembersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Delete member %d? This cannot be undone.", id)) {
				return nil
			}

			if err := apiClient.Members().Delete(context.Background(), id); err != nil {
				return failure("delete member", err)
			}
			notifySuccess(fmt.Sprintf("deleted member %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func newMembersBrowseCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search, page, edit and delete members",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			ctx := context.Background()

			members := fetchCollection("load members", func() ([]client.Member, error) {
				return apiClient.Members().List(ctx, &client.MemberListOptions{Status: status})
			})

			sc := newScreen("Members", memberSession(members), memberHeaders, memberRow, []screenField[client.Member]{
				{name: "name", get: func(m client.Member) string { return m.Name }},
				{name: "email", get: func(m client.Member) string { return m.Email }},
				{name: "phone", get: func(m client.Member) string { return m.Phone }},
				{name: "emergency_contact", get: func(m client.Member) string { return m.EmergencyContact }},
				{name: "health_notes", get: func(m client.Member) string { return m.HealthNotes }},
			})
			return sc.run(ctx)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "server-side filter by membership status")

	return cmd
}

func activeLabel(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// setIfChanged adds a flag's value to the draft only when the user passed
// the flag, so empty strings can still be set deliberately. Flag names are
// the draft keys with underscores dashed.
func setIfChanged(cmd *cobra.Command, draft map[string]string, key, value string) {
	if cmd.Flags().Changed(strings.ReplaceAll(key, "_", "-")) {
		draft[key] = value
	}
}
