package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/artpar/marquee/internal/app"
	"github.com/artpar/marquee/internal/catalog"
	"github.com/artpar/marquee/internal/locale"
	"github.com/artpar/marquee/internal/pagination"
	"github.com/spf13/cobra"
)

// ListOptions holds options for listing commands.
type ListOptions struct {
	Page int
	JSON bool
}

// NewMoviesCommand creates the movies command.
func NewMoviesCommand(g *GlobalOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "List movies now playing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			page, err := application.Catalog().NowPlaying(cmd.Context(), application.Lang(), opts.Page)
			if err != nil {
				return fmt.Errorf("failed to fetch movies: %w", err)
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), page)
			}
			printListing(cmd.OutOrStdout(), application, "Now Playing", page, opts.Page)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "Page number")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// NewSearchCommand creates the search command.
func NewSearchCommand(g *GlobalOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New("search query must not be empty")
			}

			application, err := openApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer application.Close()

			page, err := application.Catalog().Search(cmd.Context(), query, application.Lang(), opts.Page)
			if err != nil {
				return fmt.Errorf("failed to search movies: %w", err)
			}
			if opts.JSON {
				return writeJSON(cmd.OutOrStdout(), page)
			}

			out := cmd.OutOrStdout()
			lang := application.Language().Value()
			fmt.Fprintf(out, "Found %s %s\n", locale.FormatCount(lang, page.TotalResults), plural(page.TotalResults, "movie"))
			printListing(out, application, fmt.Sprintf("Search Results for %q", query), page, opts.Page)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "Page number")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// NewMovieCommand creates the movie command.
func NewMovieCommand(g *GlobalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "movie ID",
		Short: "Show movie details and recommendations",
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

			view, err := application.LoadMovie(cmd.Context(), id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), view)
			}
			printMovie(cmd.OutOrStdout(), application, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid movie id: %q", s)
	}
	return id, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printListing(out io.Writer, a *app.App, heading string, page *catalog.Page[catalog.Movie], current int) {
	fmt.Fprintln(out, heading)
	fmt.Fprintln(out)

	if page == nil || len(page.Results) == 0 {
		fmt.Fprintln(out, "No movies found")
		return
	}
	for _, m := range page.Results {
		fmt.Fprintln(out, movieLine(a, m))
	}

	if current < 1 {
		current = 1
	}
	controls := pagination.NewControls(current, pagination.CapTotal(page.TotalPages), pagination.DefaultWindow)
	if controls.Visible() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, controls.String())
	}
}

func movieLine(a *app.App, m catalog.Movie) string {
	mark := " "
	if a.Wishlist().Contains(m.ID) {
		mark = "♥"
	}
	title := m.Title
	if year := m.Year(); year != "" {
		title += " (" + year + ")"
	}
	return fmt.Sprintf("%s %-8d %s  ★ %.1f", mark, m.ID, title, m.VoteAverage)
}

func printMovie(out io.Writer, a *app.App, view *app.MovieView) {
	m := view.Movie
	lang := a.Language().Value()

	fmt.Fprintln(out, m.Title)
	if m.Tagline != "" {
		fmt.Fprintln(out, m.Tagline)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Rating:   ★ %.1f (%s votes)\n", m.VoteAverage, locale.FormatCount(lang, m.VoteCount))
	fmt.Fprintf(out, "Released: %s\n", orNA(m.ReleaseDate))
	fmt.Fprintf(out, "Runtime:  %s\n", catalog.FormatRuntime(m.Runtime))
	fmt.Fprintf(out, "Status:   %s\n", orNA(m.Status))
	fmt.Fprintf(out, "Budget:   %s\n", locale.FormatMoney(lang, m.Budget))
	fmt.Fprintf(out, "Revenue:  %s\n", locale.FormatMoney(lang, m.Revenue))

	if len(m.Genres) > 0 {
		names := make([]string, 0, len(m.Genres))
		for _, genre := range m.Genres {
			names = append(names, genre.Name)
		}
		fmt.Fprintf(out, "Genres:   %s\n", strings.Join(names, ", "))
	}
	if len(m.ProductionCompanies) > 0 {
		names := make([]string, 0, len(m.ProductionCompanies))
		for _, company := range m.ProductionCompanies {
			names = append(names, company.Name)
		}
		fmt.Fprintf(out, "Studios:  %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(out, "Poster:   %s\n", catalog.ImageURL(m.PosterPath, "w500"))
	fmt.Fprintf(out, "Link:     %s\n", catalog.WebURL(m.ID))
	if a.Wishlist().Contains(m.ID) {
		fmt.Fprintln(out, "♥ In your wishlist")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, orDefault(m.Overview, "No overview available."))

	if len(view.Recommendations) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Recommended Movies")
		for _, rec := range view.Recommendations {
			fmt.Fprintln(out, movieLine(a, rec))
		}
	}
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
