package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"jobdash/internal"
	"jobdash/internal/models"
)

func newPreferencesCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "preferences", Short: "Manage saved job preferences"}
	cmd.AddCommand(newPreferencesListCmd(r), newPreferencesAddCmd(r), newPreferencesDeleteCmd(r))
	return cmd
}

func newPreferencesListCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				prefs, err := app.Preferences.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, prefs)
			})
		},
	}
}

func newPreferencesAddCmd(r *runner) *cobra.Command {
	pref := models.JobPreference{}
	var minSalary, maxSalary int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save a new preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("min-salary") {
				pref.MinSalary = &minSalary
			}
			if cmd.Flags().Changed("max-salary") {
				pref.MaxSalary = &maxSalary
			}
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				created, err := app.Preferences.Create(ctx, pref)
				if err != nil {
					return err
				}
				return printJSON(cmd, created)
			})
		},
	}
	cmd.Flags().StringVar(&pref.Keywords, "keywords", "", "Comma-separated keywords")
	cmd.Flags().StringVar(&pref.LocationType, "location", "remote", "Location type: remote, onsite or hybrid")
	cmd.Flags().StringVar(&pref.DesiredLocation, "desired-location", "", "Preferred city or region")
	cmd.Flags().StringVar(&pref.ExperienceLevel, "experience", "", "Experience level: entry, mid, senior or lead")
	cmd.Flags().StringVar(&pref.JobType, "type", "", "Job type")
	cmd.Flags().IntVar(&minSalary, "min-salary", 0, "Minimum salary")
	cmd.Flags().IntVar(&maxSalary, "max-salary", 0, "Maximum salary")
	cmd.Flags().BoolVar(&pref.IsActive, "active", true, "Use this preference for matching")
	cmd.Flags().BoolVar(&pref.EmailNotifications, "notify", true, "Email new matches")
	return cmd
}

func newPreferencesDeleteCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid preference id %q", args[0])
			}
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				if err := app.Preferences.Delete(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted preference %d\n", id)
				return nil
			})
		},
	}
}
