package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewWishlistCommand creates the wishlist command and its subcommands.
func NewWishlistCommand(g *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "wishlist",
		Aliases: []string{"wl"},
		Short:   "Manage the movies you want to watch",
	}

	cmd.AddCommand(newWishlistListCommand(g))
	cmd.AddCommand(newWishlistAddCommand(g))
	cmd.AddCommand(newWishlistRemoveCommand(g))
	cmd.AddCommand(newWishlistClearCommand(g))
	cmd.AddCommand(newWishlistExportCommand(g))

	return cmd
}

func newWishlistListCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List wishlist movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			wl := application.Wishlist()
			if wl.Len() == 0 {
				fmt.Fprintln(out, "Your wishlist is empty")
				return nil
			}

			fmt.Fprintln(out, wl.Summary())
			fmt.Fprintln(out)
			for _, m := range wl.Items() {
				fmt.Fprintln(out, movieLine(application, m))
			}
			return nil
		},
	}
}

func newWishlistAddCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add ID",
		Short: "Add a movie to the wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			if application.Wishlist().Contains(id) {
				fmt.Fprintf(out, "Movie %d is already in your wishlist\n", id)
				return nil
			}

			details, err := application.Catalog().Movie(cmd.Context(), id, application.Lang())
			if err != nil {
				return fmt.Errorf("failed to fetch movie %d: %w", id, err)
			}
			application.Wishlist().Add(cmd.Context(), details.Movie)
			fmt.Fprintf(out, "♥ Added %s\n", details.Title)
			return nil
		},
	}
}

func newWishlistRemoveCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from the wishlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			out := cmd.OutOrStdout()
			if !application.Wishlist().Remove(cmd.Context(), id) {
				fmt.Fprintf(out, "Movie %d is not in your wishlist\n", id)
				return nil
			}
			fmt.Fprintf(out, "Removed movie %d\n", id)
			return nil
		},
	}
}

func newWishlistClearCommand(g *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every movie from the wishlist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			n := application.Wishlist().Len()
			application.Wishlist().Clear(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s\n", n, plural(n, "movie"))
			return nil
		},
	}
}

func newWishlistExportCommand(g *GlobalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the wishlist as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			return application.Wishlist().Export(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json, yaml)")

	return cmd
}
