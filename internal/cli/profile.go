package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"jobdash/internal"
	"jobdash/internal/models"
)

func newProfileCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Profile commands"}

	var email, username, firstName, lastName string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; omitted flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var upd models.ProfileUpdate
			set := func(name string, v *string) *string {
				if cmd.Flags().Changed(name) {
					return v
				}
				return nil
			}
			upd.Email = set("email", &email)
			upd.Username = set("username", &username)
			upd.FirstName = set("first-name", &firstName)
			upd.LastName = set("last-name", &lastName)
			if upd == (models.ProfileUpdate{}) {
				return errors.New("nothing to update, pass at least one field flag")
			}

			return r.withApp(cmd, true, func(ctx context.Context, app *internal.App) error {
				user, err := app.Session.UpdateProfile(ctx, upd)
				if err != nil {
					return err
				}
				return printJSON(cmd, user)
			})
		},
	}
	update.Flags().StringVar(&email, "email", "", "New email")
	update.Flags().StringVar(&username, "username", "", "New username")
	update.Flags().StringVar(&firstName, "first-name", "", "New first name")
	update.Flags().StringVar(&lastName, "last-name", "", "New last name")

	cmd.AddCommand(update)
	return cmd
}
