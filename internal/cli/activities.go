package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gymstack/gymctl/internal/listview"
	"github.com/gymstack/gymctl/pkg/client"
)

func newActivitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Manage classes and sessions",
	}

	cmd.AddCommand(newActivitiesListCmd())
	cmd.AddCommand(newActivitiesGetCmd())
	cmd.AddCommand(newActivitiesCreateCmd())
	cmd.AddCommand(newActivitiesUpdateCmd())
	cmd.AddCommand(newActivitiesDeleteCmd())
	cmd.AddCommand(newActivitiesBrowseCmd())

	return cmd
}

func activitySession(items []client.Activity) *listview.Session[client.Activity] {
	return listview.NewSession(listview.Config[client.Activity]{
		PageSize: listview.DefaultPageSize,
		ID:       func(a client.Activity) int64 { return a.ID },
		SearchFields: func(a client.Activity) []string {
			return []string{a.Name, a.Description, a.Location, a.TrainerName}
		},
		Update: func(ctx context.Context, a client.Activity, draft map[string]string) (client.Activity, error) {
			req, err := activityUpdateFromDraft(draft)
			if err != nil {
				return a, err
			}
			if err := validateRequest(req); err != nil {
				return a, err
			}
			updated, err := apiClient.Activities().Update(ctx, a.ID, req)
			if err != nil {
				return a, err
			}
			return *updated, nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return apiClient.Activities().Delete(ctx, id)
		},
	}, items)
}

func activityUpdateFromDraft(draft map[string]string) (client.UpdateActivityRequest, error) {
	var req client.UpdateActivityRequest
	if v, ok := draft["name"]; ok {
		req.Name = &v
	}
	if v, ok := draft["description"]; ok {
		req.Description = &v
	}
	if v, ok := draft["category"]; ok {
		req.Category = &v
	}
	if v, ok := draft["difficulty"]; ok {
		req.Difficulty = &v
	}
	if v, ok := draft["duration_minutes"]; ok {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("duration_minutes must be a number, got %q", v)
		}
		req.DurationMinutes = &minutes
	}
	if v, ok := draft["capacity"]; ok {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("capacity must be a number, got %q", v)
		}
		req.Capacity = &capacity
	}
	if v, ok := draft["location"]; ok {
		req.Location = &v
	}
	if v, ok := draft["equipment_needed"]; ok {
		req.EquipmentNeeded = listview.SplitCSV(v)
	}
	if v, ok := draft["trainer_id"]; ok {
		trainerID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("trainer_id must be a number, got %q", v)
		}
		req.TrainerID = &trainerID
	}
	return req, nil
}

func activityRow(a client.Activity) []string {
	return []string{
		formatID(a.ID),
		truncate(a.Name, 25),
		a.Category,
		a.Difficulty,
		fmt.Sprintf("%dm", a.DurationMinutes),
		strconv.Itoa(a.Capacity),
		truncate(a.TrainerName, 20),
	}
}

var activityHeaders = []string{"ID", "NAME", "CATEGORY", "DIFFICULTY", "DURATION", "CAPACITY", "TRAINER"}

func newActivitiesListCmd() *cobra.Command {
	var category, difficulty, search string
	var trainerID int64
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.ActivityListOptions{Category: category, Difficulty: difficulty}
			if cmd.Flags().Changed("trainer") {
				opts.TrainerID = &trainerID
			}

			activities, err := apiClient.Activities().List(context.Background(), opts)
			if err != nil {
				return failure("load activities", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(activities)
			}

			s := activitySession(activities)
			s.Search(search)
			s.GoToPage(page)

			t := NewTable(activityHeaders...)
			for _, a := range s.PageItems() {
				t.AddRow(activityRow(a)...)
			}
			t.Render()
			fmt.Printf("\n%s (%d activities)\n", s.PageLabel(), s.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "server-side filter by category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "server-side filter by difficulty")
	cmd.Flags().Int64Var(&trainerID, "trainer", 0, "server-side filter by assigned trainer id")
	cmd.Flags().StringVar(&search, "search", "", "client-side text search across name, description, location and trainer")
	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

func newActivitiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get activity details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid activity id %q", args[0])
			}

			a, err := apiClient.Activities().Get(context.Background(), id)
			if err != nil {
				return failure("load activity", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(a)
			}

			fmt.Printf("Name:        %s\n", a.Name)
			fmt.Printf("Description: %s\n", a.Description)
			fmt.Printf("Category:    %s\n", a.Category)
			fmt.Printf("Difficulty:  %s\n", a.Difficulty)
			fmt.Printf("Duration:    %d minutes\n", a.DurationMinutes)
			fmt.Printf("Capacity:    %d\n", a.Capacity)
			fmt.Printf("Location:    %s\n", a.Location)
			fmt.Printf("Equipment:   %s\n", a.EquipmentNeeded.String())
			fmt.Printf("Trainer:     %s\n", a.TrainerName)
			return nil
		},
	}
}

func newActivitiesCreateCmd() *cobra.Command {
	var name, description, category, difficulty, location, equipment string
	var duration, capacity int
	var trainerID int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin, client.RoleTrainer); err != nil {
				return err
			}

			req := client.CreateActivityRequest{
				Name:            name,
				Description:     description,
				Category:        category,
				Difficulty:      difficulty,
				DurationMinutes: duration,
				Capacity:        capacity,
				Location:        location,
				EquipmentNeeded: listview.SplitCSV(equipment),
			}
			if cmd.Flags().Changed("trainer") {
				req.TrainerID = &trainerID
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			a, err := apiClient.Activities().Create(context.Background(), req)
			if err != nil {
				return failure("create activity", err)
			}
			notifySuccess(fmt.Sprintf("created activity %d (%s)", a.ID, a.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "activity name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "beginner", "difficulty: beginner, intermediate, advanced")
	cmd.Flags().IntVar(&duration, "duration-minutes", 60, "duration in minutes")
	cmd.Flags().IntVar(&capacity, "capacity", 10, "maximum participants")
	cmd.Flags().StringVar(&location, "location", "", "room or area")
	cmd.Flags().StringVar(&equipment, "equipment-needed", "", "comma-separated equipment list")
	cmd.Flags().Int64Var(&trainerID, "trainer", 0, "assigned trainer id")

	return cmd
}

func newActivitiesUpdateCmd() *cobra.Command {
	var name, description, category, difficulty, duration, capacity, location, equipment, trainerID string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update activity fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin, client.RoleTrainer); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid activity id %q", args[0])
			}

			draft := map[string]string{}
			setIfChanged(cmd, draft, "name", name)
			setIfChanged(cmd, draft, "description", description)
			setIfChanged(cmd, draft, "category", category)
			setIfChanged(cmd, draft, "difficulty", difficulty)
			setIfChanged(cmd, draft, "duration_minutes", duration)
			setIfChanged(cmd, draft, "capacity", capacity)
			setIfChanged(cmd, draft, "location", location)
			setIfChanged(cmd, draft, "equipment_needed", equipment)
			setIfChanged(cmd, draft, "trainer_id", trainerID)
			if len(draft) == 0 {
				return fmt.Errorf("nothing to update: pass at least one field flag")
			}

			req, err := activityUpdateFromDraft(draft)
			if err != nil {
				return err
			}
			if err := validateRequest(req); err != nil {
				return err
			}

			a, err := apiClient.Activities().Update(context.Background(), id, req)
			if err != nil {
				return failure("update activity", err)
			}
			notifySuccess(fmt.Sprintf("updated activity %d (%s)", a.ID, a.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "activity name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "difficulty: beginner, intermediate, advanced")
	cmd.Flags().StringVar(&duration, "duration-minutes", "", "duration in minutes")
	cmd.Flags().StringVar(&capacity, "capacity", "", "maximum participants")
	cmd.Flags().StringVar(&location, "location", "", "room or area")
	cmd.Flags().StringVar(&equipment, "equipment-needed", "", "comma-separated equipment list")
	cmd.Flags().StringVar(&trainerID, "trainer-id", "", "assigned trainer id")

	return cmd
}

func newActivitiesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid activity id %q", args[0])
			}
			if !yes && !confirm(fmt.Sprintf("Delete activity %d? Existing bookings may block this.", id)) {
				return nil
			}

			if err := apiClient.Activities().Delete(context.Background(), id); err != nil {
				return failure("delete activity", err)
			}
			notifySuccess(fmt.Sprintf("deleted activity %d", id))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}

func newActivitiesBrowseCmd() *cobra.Command {
	var category, difficulty string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively search, page, edit and delete activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRole(client.RoleAdmin, client.RoleTrainer); err != nil {
				return err
			}
			ctx := context.Background()

			activities := fetchCollection("load activities", func() ([]client.Activity, error) {
				return apiClient.Activities().List(ctx, &client.ActivityListOptions{Category: category, Difficulty: difficulty})
			})

			sc := newScreen("Activities", activitySession(activities), activityHeaders, activityRow, []screenField[client.Activity]{
				{name: "name", get: func(a client.Activity) string { return a.Name }},
				{name: "description", get: func(a client.Activity) string { return a.Description }},
				{name: "category", get: func(a client.Activity) string { return a.Category }},
				{name: "difficulty", get: func(a client.Activity) string { return a.Difficulty }},
				{name: "duration_minutes", get: func(a client.Activity) string { return strconv.Itoa(a.DurationMinutes) }},
				{name: "capacity", get: func(a client.Activity) string { return strconv.Itoa(a.Capacity) }},
				{name: "location", get: func(a client.Activity) string { return a.Location }},
				{name: "equipment_needed", get: func(a client.Activity) string { return listview.JoinCSV(a.EquipmentNeeded) }},
			})
			return sc.run(ctx)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "server-side filter by category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "server-side filter by difficulty")

	return cmd
}
