package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/artpar/marquee/internal/app"
	"github.com/artpar/marquee/internal/config"
	"github.com/artpar/marquee/internal/locale"
	"github.com/artpar/marquee/internal/logging"
	"github.com/artpar/marquee/internal/tui/views"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	DataDir   string
	APIKey    string
	LogLevel  string
	LogFormat string

	appOpts []app.Option
}

// NewRootCommand creates the root command. opts are applied to every App
// the commands open.
func NewRootCommand(version string, opts ...app.Option) *cobra.Command {
	g := &GlobalOptions{appOpts: opts}

	cmd := &cobra.Command{
		Use:     "marquee",
		Short:   "Marquee - a terminal movie browser",
		Long:    "Marquee browses now-playing movies from TMDB, keeps a local wishlist and builds the id list for static pages.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, g)
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.DataDir, "data-dir", "", "Directory holding local state (default ~/.marquee)")
	flags.StringVar(&g.APIKey, "api-key", "", "TMDB API key")
	flags.StringVar(&g.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&g.LogFormat, "log-format", "", "Log format (console, json)")

	// Add subcommands
	cmd.AddCommand(NewMoviesCommand(g))
	cmd.AddCommand(NewSearchCommand(g))
	cmd.AddCommand(NewMovieCommand(g))
	cmd.AddCommand(NewWishlistCommand(g))
	cmd.AddCommand(NewLangCommand(g))
	cmd.AddCommand(NewCrawlCommand(g))

	return cmd
}

// config resolves the environment configuration with flag overrides.
func (g *GlobalOptions) config() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if g.DataDir != "" {
		cfg.DataDir = g.DataDir
	}
	if g.APIKey != "" {
		cfg.APIKey = g.APIKey
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.LogFormat = g.LogFormat
	}
	return cfg, nil
}

// openApp builds the application and loads persisted state. The caller
// must Close it.
func openApp(ctx context.Context, g *GlobalOptions, extra ...app.Option) (*app.App, error) {
	cfg, err := g.config()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	opts := append([]app.Option{app.WithLogger(logger)}, g.appOpts...)
	opts = append(opts, extra...)

	application, err := app.Open(cfg, opts...)
	if err != nil {
		return nil, err
	}
	application.Load(ctx)
	return application, nil
}

// tuiModel wraps the BrowserView for bubbletea
type tuiModel struct {
	view *views.BrowserView
}

func (m tuiModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.view.Update(msg)
	m.view = updated.(*views.BrowserView)
	return m, cmd
}

func (m tuiModel) View() string {
	return m.view.View()
}

// runTUI starts the TUI application
func runTUI(cmd *cobra.Command, g *GlobalOptions) error {
	var view *views.BrowserView
	apply := func(p locale.Projection) {
		if view != nil {
			view.ApplyProjection(p)
		}
	}

	application, err := openApp(cmd.Context(), g, app.WithProjection(apply))
	if err != nil {
		return err
	}
	defer application.Close()

	view = views.NewBrowserView(application)
	p := tea.NewProgram(tuiModel{view: view}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return err
	}
	return nil
}
