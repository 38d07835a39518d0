package cli

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/furari-app/furari/internal/api"
	"github.com/furari-app/furari/internal/client/models"
	"github.com/furari-app/furari/internal/client/syncer"
	"github.com/furari-app/furari/internal/filex"
)

// addOptions holds flags for the add command.
type addOptions struct {
	Lat     float64
	Lng     float64
	Comment string
	Image   string
	When    string
}

func newAddCommand(app *App) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record the current (or a given) place",
		Long: `Record a place in the journal. Without --lat/--lng the position comes
from the configured locator. The address is resolved via the backend
geocoder; when no address is found the coordinates are kept as-is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			loc := api.Location{Lat: opts.Lat, Lng: opts.Lng}
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lng") {
				position, err := app.locator.CurrentPosition(ctx)
				if err != nil {
					return fmt.Errorf("no position: %w (pass --lat and --lng)", err)
				}
				loc = position
			}

			var image *filex.ImageFile
			if opts.Image != "" {
				img, err := filex.ReadImage(opts.Image)
				if err != nil {
					return err
				}
				image = img
			}

			when := opts.When
			if when == "" {
				when = time.Now().Format(time.RFC3339)
			}

			address := app.resolver.AddressFor(ctx, loc)
			if err := app.mutator.Create(ctx, loc, opts.Comment, address, when, image); err != nil {
				return err
			}

			fmt.Fprintf(app.out, "Recorded %s\n", address)
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.Lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&opts.Lng, "lng", 0, "longitude in decimal degrees")
	// no -c shorthand, the config layer owns it for the config file path
	cmd.Flags().StringVar(&opts.Comment, "comment", "", "comment to attach")
	cmd.Flags().StringVarP(&opts.Image, "image", "i", "", "path to a photo to attach")
	cmd.Flags().StringVar(&opts.When, "when", "", "visit time (RFC 3339, defaults to now)")

	return cmd
}

func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := app.api.ListRecords(cmd.Context())
			if err != nil {
				return err
			}
			views := make([]models.RecordView, 0, len(snapshot.Records))
			for _, r := range snapshot.Records {
				views = append(views, models.RecordView{Record: r})
			}
			printViews(app.out, views)
			return nil
		},
	}
}

func newCommentCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <id> <text>",
		Short: "Change a record's comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.mutator.UpdateComment(cmd.Context(), args[0], args[1])
		},
	}
}

func newSetImageCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "setimage <id> <path>",
		Short: "Attach or replace a record's photo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := filex.ReadImage(args[1])
			if err != nil {
				return err
			}
			return app.mutator.ReplaceImage(cmd.Context(), args[0], image)
		},
	}
}

func newRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.mutator.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Deleted")
			return nil
		},
	}
}

func newWatchCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the journal live until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := syncer.New(app.api, func(views []models.RecordView) {
				fmt.Fprintln(app.out, "---")
				printViews(app.out, views)
			})
			if err := s.Start(ctx); err != nil {
				return err
			}
			defer s.Stop()

			<-ctx.Done()
			return s.Err()
		},
	}
}

func newWhereAmICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whereami",
		Short: "Print the current position and its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := app.locator.CurrentPosition(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%.5f, %.5f\n", loc.Lat, loc.Lng)
			if app.session.Authenticated() {
				fmt.Fprintln(app.out, app.resolver.AddressFor(cmd.Context(), loc))
			}
			return nil
		},
	}
}

// printViews writes one line per record: marker, creation time, address,
// comment, and a photo indicator.
func printViews(w io.Writer, views []models.RecordView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "(no records yet)")
		return
	}
	for _, v := range views {
		marker := " "
		if v.Pending {
			marker = "~"
		}
		photo := ""
		if v.Record.ImageURL != "" {
			photo = " [photo]"
		}
		fmt.Fprintf(w, "%s %s  %s  %s  %q%s\n",
			marker, v.Record.ID, v.Record.CreatedAt.Format(time.RFC3339),
			v.Record.Address, v.Record.Comment, photo)
	}
}
