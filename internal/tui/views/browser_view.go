package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artpar/marquee/internal/app"
	"github.com/artpar/marquee/internal/catalog"
	"github.com/artpar/marquee/internal/locale"
	"github.com/artpar/marquee/internal/pagination"
	"github.com/artpar/marquee/internal/tui"
	"github.com/artpar/marquee/internal/tui/vim"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Source is the listing the browser shows.
type Source int

const (
	SourceNowPlaying Source = iota
	SourceSearch
	SourceWishlist
)

// String returns the listing heading.
func (s Source) String() string {
	switch s {
	case SourceNowPlaying:
		return "Now Playing"
	case SourceSearch:
		return "Search"
	case SourceWishlist:
		return "My Wishlist"
	default:
		return "Unknown"
	}
}

const fetchTimeout = 30 * time.Second

// BrowserView lists movies with pagination, search, a wishlist and a
// detail overlay.
type BrowserView struct {
	app        *app.App
	styles     tui.Styles
	modes      *vim.ModeManager
	nav        *pagination.Navigator
	projection locale.Projection
	copyFn     func(string) error

	width  int
	height int

	source       Source
	query        string
	movies       []catalog.Movie
	totalResults int
	cursor       int
	loading      bool
	err          error
	seq          int // id of the latest fetch; older replies are dropped

	detail     *app.MovieView
	detailErr  error
	showDetail bool

	notification string
}

// Messages

type moviesLoadedMsg struct {
	seq  int
	page *catalog.Page[catalog.Movie]
}

type fetchFailedMsg struct {
	seq int
	err error
}

type detailLoadedMsg struct {
	seq  int
	view *app.MovieView
	err  error
}

type clearNotificationMsg struct{}

// NewBrowserView creates the browser for a. The app's state should already
// be loaded.
func NewBrowserView(a *app.App) *BrowserView {
	return &BrowserView{
		app:        a,
		styles:     tui.DefaultStyles(),
		modes:      vim.NewModeManager(),
		nav:        pagination.NewNavigator(1),
		projection: a.Language().Projection(),
		copyFn:     clipboard.WriteAll,
		source:     SourceNowPlaying,
	}
}

// SetClipboard replaces the clipboard writer.
func (v *BrowserView) SetClipboard(fn func(string) error) {
	v.copyFn = fn
}

// ApplyProjection sets the text direction used for rendering.
func (v *BrowserView) ApplyProjection(p locale.Projection) {
	v.projection = p
}

// Init starts loading the first page.
func (v *BrowserView) Init() tea.Cmd {
	return v.fetch()
}

// Title returns the view title.
func (v *BrowserView) Title() string {
	return "Marquee"
}

// SetSize sets the view dimensions.
func (v *BrowserView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Width returns the view width.
func (v *BrowserView) Width() int {
	return v.width
}

// Height returns the view height.
func (v *BrowserView) Height() int {
	return v.height
}

// Source returns the current listing.
func (v *BrowserView) Source() Source {
	return v.source
}

// Movies returns the movies on the current page.
func (v *BrowserView) Movies() []catalog.Movie {
	return v.movies
}

// Cursor returns the selected row.
func (v *BrowserView) Cursor() int {
	return v.cursor
}

// Page returns the current page number.
func (v *BrowserView) Page() int {
	return v.nav.Current()
}

// Loading reports whether a fetch is in flight.
func (v *BrowserView) Loading() bool {
	return v.loading
}

// Err returns the last fetch error.
func (v *BrowserView) Err() error {
	return v.err
}

// Mode returns the input mode.
func (v *BrowserView) Mode() vim.Mode {
	return v.modes.Current()
}

// Notification returns the transient status message.
func (v *BrowserView) Notification() string {
	return v.notification
}

// Projection returns the projection used for rendering.
func (v *BrowserView) Projection() locale.Projection {
	return v.projection
}

// Selected returns the movie under the cursor.
func (v *BrowserView) Selected() (catalog.Movie, bool) {
	if v.cursor < 0 || v.cursor >= len(v.movies) {
		return catalog.Movie{}, false
	}
	return v.movies[v.cursor], true
}

// Update handles messages.
func (v *BrowserView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case moviesLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.err = nil
		v.movies = nil
		v.totalResults = 0
		if msg.page != nil {
			v.movies = msg.page.Results
			v.totalResults = msg.page.TotalResults
			v.nav.SetTotal(msg.page.TotalPages)
		}
		v.clampCursor()
		return v, nil

	case fetchFailedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		return v, nil

	case detailLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.detail = msg.view
		v.detailErr = msg.err
		return v, nil

	case clearNotificationMsg:
		v.notification = ""
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *BrowserView) handleKeyMsg(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	// Ctrl+C always quits
	if msg.Type == tea.KeyCtrlC {
		return v, tea.Quit
	}

	if v.modes.IsInput() {
		return v.handleInputKey(msg)
	}

	if v.showDetail {
		return v.handleDetailKey(msg)
	}

	switch msg.Type {
	case tea.KeyUp:
		v.moveCursor(-1)
		return v, nil
	case tea.KeyDown:
		v.moveCursor(1)
		return v, nil
	case tea.KeyLeft:
		return v, v.turnPage(-1)
	case tea.KeyRight:
		return v, v.turnPage(1)
	case tea.KeyEnter:
		return v, v.openDetail()
	case tea.KeyTab:
		return v, v.cycleSource()
	case tea.KeyEsc:
		v.modes.ResetCount()
		if v.source == SourceSearch {
			return v, v.switchSource(SourceNowPlaying)
		}
		return v, nil
	case tea.KeyRunes:
		return v.handleRune(string(msg.Runes))
	}

	return v, nil
}

func (v *BrowserView) handleRune(key string) (tui.Component, tea.Cmd) {
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		digit := int(key[0] - '0')
		if digit > 0 || v.modes.HasCount() {
			v.modes.AppendCount(digit)
			return v, nil
		}
	}
	defer v.modes.ResetCount()

	switch key {
	case "q":
		return v, tea.Quit
	case "j":
		v.moveCursor(v.modes.Count())
	case "k":
		v.moveCursor(-v.modes.Count())
	case "l":
		return v, v.turnPage(v.modes.Count())
	case "h":
		return v, v.turnPage(-v.modes.Count())
	case "g":
		return v, v.goTo(1)
	case "G":
		return v, v.goTo(v.nav.Total())
	case "/":
		v.modes.SetMode(vim.ModeSearch)
	case ":":
		v.modes.SetMode(vim.ModeGoto)
	case "w":
		return v, v.toggleWishlist()
	case "L":
		return v, v.cycleLanguage()
	case "y":
		return v, v.copySelected()
	case "r":
		return v, v.fetch()
	}
	return v, nil
}

func (v *BrowserView) handleInputKey(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.modes.SetMode(vim.ModeNormal)
		return v, nil
	case tea.KeyBackspace:
		v.modes.Backspace()
		return v, nil
	case tea.KeySpace:
		v.modes.Append(' ')
		return v, nil
	case tea.KeyRunes:
		v.modes.Append(msg.Runes...)
		return v, nil
	case tea.KeyEnter:
		mode := v.modes.Current()
		page, hasPage := v.modes.PageNumber()
		input := v.modes.Submit()

		switch mode {
		case vim.ModeSearch:
			query := strings.TrimSpace(input)
			if query == "" {
				return v, nil
			}
			v.query = query
			return v, v.switchSource(SourceSearch)
		case vim.ModeGoto:
			if !hasPage {
				return v, nil
			}
			return v, v.goTo(page)
		}
	}
	return v, nil
}

func (v *BrowserView) handleDetailKey(msg tea.KeyMsg) (tui.Component, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, msg.Type == tea.KeyRunes && string(msg.Runes) == "q":
		v.showDetail = false
		v.detail = nil
		v.detailErr = nil
		return v, nil
	case msg.Type == tea.KeyRunes && string(msg.Runes) == "w":
		return v, v.toggleWishlist()
	case msg.Type == tea.KeyRunes && string(msg.Runes) == "y":
		return v, v.copySelected()
	}
	return v, nil
}

func (v *BrowserView) moveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *BrowserView) clampCursor() {
	if v.cursor >= len(v.movies) {
		v.cursor = len(v.movies) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *BrowserView) turnPage(delta int) tea.Cmd {
	return v.goTo(v.nav.Current() + delta)
}

// goTo moves to page and fetches it. Out-of-range pages are ignored.
func (v *BrowserView) goTo(page int) tea.Cmd {
	if !v.nav.GoTo(page) {
		return nil
	}
	v.cursor = 0
	return v.fetch()
}

func (v *BrowserView) cycleSource() tea.Cmd {
	if v.source == SourceWishlist {
		return v.switchSource(SourceNowPlaying)
	}
	return v.switchSource(SourceWishlist)
}

func (v *BrowserView) switchSource(source Source) tea.Cmd {
	v.source = source
	v.nav = pagination.NewNavigator(1)
	v.cursor = 0
	return v.fetch()
}

// fetch loads the current page of the current source.
func (v *BrowserView) fetch() tea.Cmd {
	v.seq++
	v.err = nil

	if v.source == SourceWishlist {
		v.loading = false
		v.movies = v.app.Wishlist().Items()
		v.totalResults = len(v.movies)
		v.nav.SetTotal(1)
		v.clampCursor()
		return nil
	}

	v.loading = true
	seq := v.seq
	source := v.source
	query := v.query
	page := v.nav.Current()
	lang := v.app.Lang()
	c := v.app.Catalog()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		var (
			result *catalog.Page[catalog.Movie]
			err    error
		)
		if source == SourceSearch {
			result, err = c.Search(ctx, query, lang, page)
		} else {
			result, err = c.NowPlaying(ctx, lang, page)
		}
		if err != nil {
			return fetchFailedMsg{seq: seq, err: err}
		}
		return moviesLoadedMsg{seq: seq, page: result}
	}
}

func (v *BrowserView) openDetail() tea.Cmd {
	movie, ok := v.Selected()
	if !ok {
		return nil
	}

	v.seq++
	v.showDetail = true
	v.detail = nil
	v.detailErr = nil
	v.loading = true

	seq := v.seq
	a := v.app
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		view, err := a.LoadMovie(ctx, movie.ID)
		return detailLoadedMsg{seq: seq, view: view, err: err}
	}
}

func (v *BrowserView) toggleWishlist() tea.Cmd {
	movie, ok := v.Selected()
	if v.showDetail && v.detail != nil && v.detail.Movie != nil {
		movie, ok = v.detail.Movie.Movie, true
	}
	if !ok {
		return nil
	}

	ctx := context.Background()
	if v.app.Wishlist().Toggle(ctx, movie) {
		v.notification = "♥ Added " + movie.Title
	} else {
		v.notification = "Removed " + movie.Title
	}

	if v.source == SourceWishlist && !v.showDetail {
		v.movies = v.app.Wishlist().Items()
		v.clampCursor()
	}
	return v.clearNotificationLater()
}

func (v *BrowserView) cycleLanguage() tea.Cmd {
	next := locale.Next(v.app.Language().Value())
	v.app.Language().Set(context.Background(), next)
	v.projection = v.app.Language().Projection()
	v.notification = "Language: " + next.Label()
	return tea.Batch(v.fetch(), v.clearNotificationLater())
}

func (v *BrowserView) copySelected() tea.Cmd {
	movie, ok := v.Selected()
	if !ok {
		return nil
	}
	url := catalog.WebURL(movie.ID)
	if err := v.copyFn(url); err != nil {
		v.notification = "✗ Copy failed"
	} else {
		v.notification = "✓ Copied " + url
	}
	return v.clearNotificationLater()
}

func (v *BrowserView) clearNotificationLater() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return clearNotificationMsg{}
	})
}

// View renders the browser.
func (v *BrowserView) View() string {
	var lines []string
	lines = append(lines, v.renderHeader())
	lines = append(lines, "")

	if v.showDetail {
		lines = append(lines, v.renderDetail()...)
	} else {
		lines = append(lines, v.renderListing()...)
	}

	lines = append(lines, "")
	lines = append(lines, v.renderFooter())

	for i, line := range lines {
		lines[i] = tui.Align(line, v.width, v.projection.RTL)
	}
	return strings.Join(lines, "\n")
}

func (v *BrowserView) renderHeader() string {
	heading := v.source.String()
	if v.source == SourceSearch {
		heading = fmt.Sprintf("Search Results for %q", v.query)
	}
	lang := locale.Language(v.projection.Code)
	return v.styles.Title.Render("Marquee · "+heading) + " " +
		v.styles.Muted.Render(fmt.Sprintf("%s (%s)", lang.Label(), v.projection.Dir))
}

func (v *BrowserView) renderListing() []string {
	if v.err != nil {
		return []string{
			v.styles.Error.Render("Oops! Something went wrong"),
			v.styles.Muted.Render("Failed to fetch movies. Please try again later."),
			v.styles.Muted.Render("Press r to try again."),
		}
	}
	if v.loading {
		return []string{v.styles.Muted.Render("Loading…")}
	}
	if len(v.movies) == 0 {
		switch v.source {
		case SourceWishlist:
			return []string{
				"Your wishlist is empty",
				v.styles.Muted.Render("Press w on any movie to add it."),
			}
		case SourceSearch:
			return []string{
				"No movies found",
				v.styles.Muted.Render("Try searching with different keywords."),
			}
		default:
			return []string{"No movies"}
		}
	}

	var lines []string
	switch v.source {
	case SourceSearch:
		lang := locale.Language(v.projection.Code)
		lines = append(lines, v.styles.Muted.Render("Found "+locale.FormatCount(lang, v.totalResults)+" "+plural(v.totalResults, "movie")))
	case SourceWishlist:
		lines = append(lines, v.styles.Muted.Render(v.app.Wishlist().Summary()))
	}

	for i, movie := range v.movies {
		line := v.renderMovie(movie)
		if i == v.cursor {
			line = v.styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	if pager := v.renderPager(); pager != "" {
		lines = append(lines, "", pager)
	}
	return lines
}

func (v *BrowserView) renderMovie(movie catalog.Movie) string {
	mark := " "
	if v.app.Wishlist().Contains(movie.ID) {
		mark = v.styles.Accent.Render("♥")
	}

	title := movie.Title
	if v.width > 30 {
		title = tui.Truncate(title, v.width-24)
	}
	line := fmt.Sprintf("%s %s", mark, title)
	if year := movie.Year(); year != "" {
		line += " (" + year + ")"
	}
	return line + v.styles.Muted.Render(fmt.Sprintf("  ★ %.1f", movie.VoteAverage))
}

func (v *BrowserView) renderPager() string {
	controls := v.nav.Controls()
	if !controls.Visible() {
		return ""
	}

	parts := make([]string, 0, len(controls.Tokens()))
	for _, tok := range controls.Tokens() {
		switch {
		case tok.Current:
			parts = append(parts, v.styles.Current.Render(" "+tok.Label+" "))
		case tok.Disabled, tok.Page == 0:
			parts = append(parts, v.styles.Muted.Render(tok.Label))
		default:
			parts = append(parts, tok.Label)
		}
	}
	return strings.Join(parts, " ")
}

func (v *BrowserView) renderDetail() []string {
	if v.detailErr != nil {
		return []string{
			v.styles.Error.Render("Movie not found"),
			v.styles.Muted.Render(v.detailErr.Error()),
		}
	}
	if v.detail == nil || v.detail.Movie == nil {
		return []string{v.styles.Muted.Render("Loading…")}
	}

	m := v.detail.Movie
	lines := []string{v.styles.Title.Render(m.Title)}
	if m.Tagline != "" {
		lines = append(lines, v.styles.Muted.Render(m.Tagline))
	}

	lang := locale.Language(v.projection.Code)
	lines = append(lines, fmt.Sprintf("★ %.1f (%s votes) · %s · %s",
		m.VoteAverage, locale.FormatCount(lang, m.VoteCount), m.ReleaseDate, catalog.FormatRuntime(m.Runtime)))

	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	if len(genres) > 0 {
		lines = append(lines, strings.Join(genres, ", "))
	}

	wish := "Add to Wishlist (w)"
	if v.app.Wishlist().Contains(m.ID) {
		wish = v.styles.Accent.Render("♥ Remove from Wishlist (w)")
	}
	lines = append(lines, wish, "")

	overview := m.Overview
	if overview == "" {
		overview = "No overview available."
	}
	lines = append(lines, overview)

	if len(v.detail.Recommendations) > 0 {
		lines = append(lines, "", v.styles.Title.Render("Recommended Movies"))
		for _, rec := range v.detail.Recommendations {
			lines = append(lines, "  "+v.renderMovie(rec))
		}
	}
	return lines
}

func (v *BrowserView) renderFooter() string {
	if v.modes.IsInput() {
		return v.modes.Current().Prompt() + v.modes.Buffer() + "█"
	}
	if v.notification != "" {
		return v.notification
	}
	if v.showDetail {
		return v.styles.Muted.Render("w wishlist · y copy link · esc back")
	}
	return v.styles.Muted.Render("j/k move · h/l page · : goto · / search · enter details · w wishlist · tab wishlist view · L language · y copy · q quit")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
