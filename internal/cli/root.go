package cli

import (
	"bufio"
	"context"

	"github.com/spf13/cobra"
	"jobdash/internal"
	"jobdash/internal/structures"
)

const defaultConfigPath = "configs/jobdash.yaml"

// AppFactory assembles the application from command-line flags.
type AppFactory func(flags *structures.CliFlags) (*internal.App, error)

type runner struct {
	flags   *structures.CliFlags
	factory AppFactory
	in      *bufio.Reader
}

func NewRootCmd(version, buildDate string, factory AppFactory) *cobra.Command {
	r := &runner{
		flags:   &structures.CliFlags{},
		factory: factory,
	}
	root := &cobra.Command{
		Use:           "jobdash",
		Short:         "Job alert dashboard client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&r.flags.ConfigPath, "config", defaultConfigPath, "Path to config file")
	root.PersistentFlags().BoolVar(&r.flags.DebugMode, "debug", false, "Also log to the console")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newAuthCmd(r))
	root.AddCommand(newProfileCmd(r))
	root.AddCommand(newJobsCmd(r))
	root.AddCommand(newMatchesCmd(r))
	root.AddCommand(newDashboardCmd(r))
	root.AddCommand(newPreferencesCmd(r))
	root.AddCommand(newWatchCmd(r))
	return root
}

// withApp builds the app for one command. With restore set, the persisted
// session is revalidated first; a rejected one is cleared and later
// authenticated calls fail with an unauthorized error.
func (r *runner) withApp(cmd *cobra.Command, restore bool, fn func(ctx context.Context, app *internal.App) error) error {
	app, err := r.factory(r.flags)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if restore {
		app.Session.Restore(ctx)
	}
	return withLoginHint(fn(ctx, app))
}
