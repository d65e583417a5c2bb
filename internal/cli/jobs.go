package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"jobdash/internal"
	"jobdash/internal/query"
	"jobdash/internal/transport"
)

type filterFlags struct {
	search    string
	location  string
	jobType   string
	recency   string
	minSalary int
	maxSalary int
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search term")
	cmd.Flags().StringVar(&f.location, "location", "", "Location type: remote, onsite or hybrid")
	cmd.Flags().StringVar(&f.jobType, "type", "", "Job type: full-time, part-time, contract, freelance or internship")
	cmd.Flags().StringVar(&f.recency, "recency", "", "Posted within: 24h, week or month")
	cmd.Flags().IntVar(&f.minSalary, "min-salary", 0, "Minimum salary")
	cmd.Flags().IntVar(&f.maxSalary, "max-salary", 0, "Maximum salary")
}

func (f *filterFlags) params() (query.Params, error) {
	var set query.FilterSet
	var err error
	if set.LocationType, err = query.ParseLocationType(f.location); err != nil {
		return nil, err
	}
	if set.JobType, err = query.ParseJobType(f.jobType); err != nil {
		return nil, err
	}
	if set.Recency, err = query.ParseRecency(f.recency); err != nil {
		return nil, err
	}
	if f.minSalary < 0 || f.maxSalary < 0 {
		return nil, errors.New("salary bounds must not be negative")
	}
	set.MinSalary, set.MaxSalary = f.minSalary, f.maxSalary
	return query.Compose(f.search, set), nil
}

func parseJobID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid job id %q", arg)
	}
	return id, nil
}

func newJobsCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "jobs", Short: "Browse and track job postings"}
	cmd.AddCommand(newJobsListCmd(r), newJobsShowCmd(r), newJobsBookmarkCmd(r), newJobsApplyCmd(r))
	return cmd
}

func newJobsListCmd(r *runner) *cobra.Command {
	var filters filterFlags
	var hydrate bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List postings matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := filters.params()
			if err != nil {
				return err
			}
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				if _, err := app.Jobs.Load(ctx, params); err != nil {
					return err
				}
				if hydrate {
					if _, err := app.Jobs.Hydrate(ctx); err != nil {
						return err
					}
				}
				return printJSON(cmd, app.Jobs.Jobs())
			})
		},
	}
	filters.bind(cmd)
	cmd.Flags().BoolVar(&hydrate, "hydrate", false, "Fill bookmark and applied flags from your matches")
	return cmd
}

func newJobsShowCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one posting in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				job, err := app.Details.Get(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, job)
			})
		},
	}
}

type flagChange struct {
	ID         int64 `json:"id"`
	Bookmarked *bool `json:"bookmarked,omitempty"`
	Applied    *bool `json:"applied,omitempty"`
}

// loadForMutation fills the collection so id can be found. Flags come from
// the user's matches, which the list endpoint does not carry.
func loadForMutation(ctx context.Context, app *internal.App, params query.Params, id int64) error {
	if _, err := app.Jobs.Load(ctx, params); err != nil {
		return err
	}
	if _, ok := app.Jobs.Job(id); !ok {
		return fmt.Errorf("job %d is not in the current result page, narrow it with --search or the filter flags: %w", id, transport.ErrNotFound)
	}
	_, err := app.Jobs.Hydrate(ctx)
	return err
}

func newJobsBookmarkCmd(r *runner) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "bookmark ID",
		Short: "Toggle the bookmark on a posting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			params, err := filters.params()
			if err != nil {
				return err
			}
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				if err := loadForMutation(ctx, app, params, id); err != nil {
					return err
				}
				marked, err := app.Jobs.ToggleBookmark(ctx, id)
				if err != nil {
					return err
				}
				app.Details.Forget(id)
				return printJSON(cmd, flagChange{ID: id, Bookmarked: &marked})
			})
		},
	}
	filters.bind(cmd)
	return cmd
}

func newJobsApplyCmd(r *runner) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "apply ID",
		Short: "Mark a posting as applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			params, err := filters.params()
			if err != nil {
				return err
			}
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				if err := loadForMutation(ctx, app, params, id); err != nil {
					return err
				}
				if err := app.Jobs.MarkApplied(ctx, id); err != nil {
					return err
				}
				app.Details.Forget(id)
				applied := true
				return printJSON(cmd, flagChange{ID: id, Applied: &applied})
			})
		},
	}
	filters.bind(cmd)
	return cmd
}

func newMatchesCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "matches",
		Short: "List postings matched to your preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				matches, err := app.Matches.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, matches)
			})
		},
	}
}

func newDashboardCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show summary counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				snap, err := app.Dashboard.Refresh(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, snap)
			})
		},
	}
}

func newWatchCmd(r *runner) *cobra.Command {
	var filters filterFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh on a schedule and serve /health, /metrics, /dashboard and /jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := filters.params()
			if err != nil {
				return err
			}
			return r.withApp(cmd, false, func(ctx context.Context, app *internal.App) error {
				return app.Watch(ctx, params)
			})
		},
	}
	filters.bind(cmd)
	return cmd
}
