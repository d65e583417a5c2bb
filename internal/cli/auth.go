package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"jobdash/internal"
	"jobdash/internal/models"
	"jobdash/internal/transport"
)

type authCmd struct {
	r   *runner
	reg models.Registration
}

func newAuthCmd(r *runner) *cobra.Command {
	a := &authCmd{r: r}
	cmd := &cobra.Command{Use: "auth", Short: "Authentication commands"}

	login := &cobra.Command{Use: "login", Short: "Sign in and store the session", Args: cobra.NoArgs, RunE: a.login}
	login.Flags().StringVar(&a.reg.Email, "email", "", "Account email (prompted when empty)")

	register := &cobra.Command{Use: "register", Short: "Create an account and store the session", Args: cobra.NoArgs, RunE: a.register}
	register.Flags().StringVar(&a.reg.Email, "email", "", "Account email (prompted when empty)")
	register.Flags().StringVar(&a.reg.Username, "username", "", "Username (prompted when empty)")
	register.Flags().StringVar(&a.reg.FirstName, "first-name", "", "First name")
	register.Flags().StringVar(&a.reg.LastName, "last-name", "", "Last name")

	cmd.AddCommand(login, register)
	cmd.AddCommand(&cobra.Command{Use: "logout", Short: "Forget the stored session", Args: cobra.NoArgs, RunE: a.logout})
	cmd.AddCommand(&cobra.Command{Use: "whoami", Short: "Show the signed-in user", Args: cobra.NoArgs, RunE: a.whoami})
	return cmd
}

func (a *authCmd) ask(cmd *cobra.Command, value *string, label string) error {
	if *value != "" {
		return nil
	}
	v, err := a.r.prompt(cmd, label)
	if err != nil {
		return err
	}
	*value = v
	return nil
}

func (a *authCmd) login(cmd *cobra.Command, _ []string) error {
	if err := a.ask(cmd, &a.reg.Email, "Email: "); err != nil {
		return err
	}
	password, err := a.r.promptPassword(cmd, "Password: ")
	if err != nil {
		return err
	}
	return a.r.withApp(cmd, false, func(ctx context.Context, app *internal.App) error {
		pair, err := app.Session.SignIn(ctx, a.reg.Email, password)
		if err != nil {
			return err
		}
		return printJSON(cmd, pair.User)
	})
}

func (a *authCmd) register(cmd *cobra.Command, _ []string) error {
	if err := a.ask(cmd, &a.reg.Email, "Email: "); err != nil {
		return err
	}
	if err := a.ask(cmd, &a.reg.Username, "Username: "); err != nil {
		return err
	}
	var err error
	if a.reg.Password, err = a.r.promptPassword(cmd, "Password: "); err != nil {
		return err
	}
	if a.reg.PasswordConfirm, err = a.r.promptPassword(cmd, "Confirm password: "); err != nil {
		return err
	}
	return a.r.withApp(cmd, false, func(ctx context.Context, app *internal.App) error {
		pair, err := app.Session.SignUp(ctx, a.reg)
		if err != nil {
			return err
		}
		return printJSON(cmd, pair.User)
	})
}

func (a *authCmd) logout(cmd *cobra.Command, _ []string) error {
	return a.r.withApp(cmd, false, func(_ context.Context, app *internal.App) error {
		app.Session.SignOut()
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	})
}

func (a *authCmd) whoami(cmd *cobra.Command, _ []string) error {
	return a.r.withApp(cmd, true, func(_ context.Context, app *internal.App) error {
		user, ok := app.Session.Identity()
		if !ok {
			return errNotSignedIn
		}
		return printJSON(cmd, user)
	})
}

var errNotSignedIn = fmt.Errorf("not signed in, run `jobdash auth login`: %w", transport.ErrUnauthorized)

// withLoginHint points at the login command when err comes from a missing
// or rejected session.
func withLoginHint(err error) error {
	if errors.Is(err, transport.ErrUnauthorized) && !errors.Is(err, errNotSignedIn) {
		return fmt.Errorf("%w (run `jobdash auth login`)", err)
	}
	return err
}
