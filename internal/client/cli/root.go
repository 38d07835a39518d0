package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the Furari CLI.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "furari",
		Short:         "Furari - a travel journal in your terminal",
		Long:          "Record where you have been, with a comment and a photo, and watch the journal update live across your devices.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newSignUpCommand(app))
	cmd.AddCommand(newLoginCommand(app))
	cmd.AddCommand(newLogoutCommand(app))
	cmd.AddCommand(newResetCommand(app))
	cmd.AddCommand(newAddCommand(app))
	cmd.AddCommand(newListCommand(app))
	cmd.AddCommand(newCommentCommand(app))
	cmd.AddCommand(newSetImageCommand(app))
	cmd.AddCommand(newRemoveCommand(app))
	cmd.AddCommand(newWatchCommand(app))
	cmd.AddCommand(newWhereAmICommand(app))

	return cmd
}
