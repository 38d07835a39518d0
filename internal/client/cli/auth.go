package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignUpCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := getSimpleText(app.reader, "Enter email", app.out)
			if err != nil {
				return err
			}
			password, err := getPassword(app.out, "Enter password")
			if err != nil {
				return err
			}

			if err := app.session.SignUp(cmd.Context(), email, password); err != nil {
				return err
			}

			userID, email := app.session.Identity()
			if err := app.store.setIdentity(userID, email); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Signed up as %s\n", email)
			return nil
		},
	}
}

func newLoginCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in to an existing account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := getSimpleText(app.reader, "Enter email", app.out)
			if err != nil {
				return err
			}
			password, err := getPassword(app.out, "Enter password")
			if err != nil {
				return err
			}

			if err := app.session.SignIn(cmd.Context(), email, password); err != nil {
				return err
			}

			userID, email := app.session.Identity()
			if err := app.store.setIdentity(userID, email); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Signed in as %s\n", email)
			return nil
		},
	}
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.SignOut(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Signed out")
			return nil
		},
	}
}

func newResetCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a forgotten password",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "request <email>",
		Short: "Request a reset code by mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.RequestPasswordReset(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Reset code sent, check your mail")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "confirm <code>",
		Short: "Redeem a reset code and set a new password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := getPassword(app.out, "Enter new password")
			if err != nil {
				return err
			}
			if err := app.session.ConfirmPasswordReset(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Password changed, you can sign in now")
			return nil
		},
	})

	return cmd
}
