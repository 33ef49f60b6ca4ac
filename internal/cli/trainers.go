package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/internal/listview"
	"github.com/gymstack/gymctl/pkg/client"
)

func newTrainersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trainers",
		Short: "Manage trainers (admin)",
	}

	cmd.AddCommand(newTrainersListCmd())
	cmd.AddCommand(newTrainersGetCmd())
	cmd.AddCommand(newTrainersCreateCmd())
	cmd.AddCommand(newTrainersUpdateCmd())
	cmd.AddCommand(newTrainersDeleteCmd())
	cmd.AddCommand(newTrainersBrowseCmd())

	return cmd
}

func trainerSession(items []client.Trainer) *listview.Session[client.Trainer] {
	return listview.NewSession(listview.Config[client.Trainer]{
		PageSize: listview.DefaultPageSize,
		ID:       func(t client.Trainer) int64 { return t.ID },
		SearchFields: func(t client.Trainer) []string {
			return []string{t.Name, t.Email, t.Specialization}
		},
		Update: func(ctx context.Context, t client.Trainer, draft map[string]string) (client.Trainer, error) {
			req, err := trainerUpdateFromDraft(draft)
			if err != nil {
				return t, err
			}
			if err := validateRequest(req); err != nil {
				return t, err
			}
			updated, err := apiClient.Trainers().Update(ctx, t.ID, req)
			if err != nil {
				return t, err
			}
			return *updated, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return apiClient.Trainers().Delete(ctx, id)
		},
	}, items)
}

func trainerUpdateFromDraft(draft map[string]string) (client.UpdateTrainerRequest, error) {
	var req client.UpdateTrainerRequest
	if v, ok := draft["name"]; ok {
		req.Name = &v
	}
	if v, ok := draft["email"]; ok {
		req.Email = &v
	}
	if v, ok := draft["specialization"]; ok {
		req.Specialization = &v
	}
	if v, ok := draft["experience_years"]; ok {
		years, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("experience_years must be a number, got %q", v)
		}
		req.ExperienceYears = &years
	}
	if v, ok := draft["certifications"]; ok {
		req.Certifications = listview.SplitCSV(v)
	}
	if v, ok := draft["bio"]; ok {
		req.Bio = &v
	}
	return req, nil
}

func trainerRow(t client.Trainer) []string {
	return []string{
		formatID(t.ID),
		truncate(t.Name, 30),
		truncate(t.Specialization, 25),
		strconv.Itoa(t.ExperienceYears) + "y",
		truncate(t.Certifications.String(), 30),
	}
}

var trainerHeaders = []string{"ID", "NAME", "SPECIALIZATION", "EXPERIENCE", "CERTIFICATIONS"}

func newTrainersListCmd() *cobra.Command {
	var specialization, search string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trainers",
		RunE: func(cmd *cobra.Command, args []string) error {
			trainers, err := apiClient.Trainers().List(context.Background(), &client.TrainerListOptions{Specialization: specialization})
			if err != nil {
				return failure("load trainers", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(trainers)
			}

			s := trainerSession(trainers)
			s.Search(search)
			s.GoToPage(page)

			t := NewTable(trainerHeaders...)
			for _, tr := range s.PageItems() {
				t.AddRow(trainerRow(tr)...)
			}
			t.Render()
			fmt.Printf("\n%s (%d trainer(s))\n", s.PageLabel(), s.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&specialization, "specialization", "", "server-side filter by specialization")
	cmd.Flags().StringVar(&search, "search", "", "client-side text search across name, email and specialization")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newTrainersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get trainer details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trainer id %q", args[0])
			}

			t, err := apiClient.Trainers().Get(context.Background(), id)
			if err != nil {
				return failure("load trainer", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(t)
			}

			fmt.Printf("Name:           %s\n", t.Name)
			fmt.Printf("Email:          %s\n", t.Email)
			fmt.Printf("Specialization: %s\n", t.Specialization)
			fmt.Printf("Experience:     %d years\n", t.ExperienceYears)
			fmt.Printf("Certifications: %s\n", t.Certifications.String())
			fmt.Printf("Bio:            %s\n", t.Bio)
			return nil
		},
	}
}

func newTrainersCreateCmd() *cobra.Command {
	var name, email, specialization, certifications, bio string
	var years int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trainer profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}

			req := client.CreateTrainerRequest{
				Name:            name,
				Email:           email,
				Specialization:  specialization,
				ExperienceYears: years,
				Certifications:  listview.SplitCSV(certifications),
				Bio:             bio,
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			t, err := apiClient.Trainers().Create(context.Background(), req)
			if err != nil {
				return failure("create trainer", err)
			}
			notifySuccess(fmt.Sprintf("created trainer %d (%s)", t.ID, t.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&specialization, "specialization", "", "specialization")
	cmd.Flags().IntVar(&years, "experience-years", 0, "years of experience")
	cmd.Flags().StringVar(&certifications, "certifications", "", "comma-separated certifications")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")

	return cmd
}

func newTrainersUpdateCmd() *cobra.Command {
	var name, email, specialization, years, certifications, bio string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update trainer fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trainer id %q", args[0])
			}

			draft := map[string]string{}
			setIfChanged(cmd, draft, "name", name)
			setIfChanged(cmd, draft, "email", email)
			setIfChanged(cmd, draft, "specialization", specialization)
			setIfChanged(cmd, draft, "experience_years", years)
			setIfChanged(cmd, draft, "certifications", certifications)
			setIfChanged(cmd, draft, "bio", bio)
			if len(draft) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			req, err := trainerUpdateFromDraft(draft)
			if err != nil {
				return err
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			t, err := apiClient.Trainers().Update(context.Background(), id, req)
			if err != nil {
				return failure("update trainer", err)
			}
			notifySuccess(fmt.Sprintf("updated trainer %d (%s)", t.ID, t.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&specialization, "specialization", "", "specialization")
	cmd.Flags().StringVar(&years, "experience-years", "", "years of experience")
	cmd.Flags().StringVar(&certifications, "certifications", "", "comma-separated certifications")
	cmd.Flags().StringVar(&bio, "bio", "", "short bio")

	return cmd
}

func newTrainersDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a trainer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid trainer id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Delete trainer %d? This cannot be undone.", id)) {
				return nil
			}

			if err := apiClient.Trainers().Delete(context.Background(), id); err != nil {
				return failure("delete trainer", err)
			}
			notifySuccess(fmt.Sprintf("deleted trainer %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func newTrainersBrowseCmd() *cobra.Command {
	var specialization string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search, page, edit and delete trainers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			ctx := context.Background()

			trainers := fetchCollection("load trainers", func() ([]client.Trainer, error) {
				return apiClient.Trainers().List(ctx, &client.TrainerListOptions{Specialization: specialization})
			})

			sc := newScreen("Trainers", trainerSession(trainers), trainerHeaders, trainerRow, []screenField[client.Trainer]{
				{name: "name", get: func(t client.Trainer) string { return t.Name }},
				{name: "email", get: func(t client.Trainer) string { return t.Email }},
				{name: "specialization", get: func(t client.Trainer) string { return t.Specialization }},
				{name: "experience_years", get: func(t client.Trainer) string { return strconv.Itoa(t.ExperienceYears) }},
				{name: "certifications", get: func(t client.Trainer) string { return listview.JoinCSV(t.Certifications) }},
				{name: "bio", get: func(t client.Trainer) string { return t.Bio }},
			})
			return sc.run(ctx)
		},
	}

	cmd.Flags().StringVar(&specialization, "specialization", "", "server-side filter by specialization")

	return cmd
}
