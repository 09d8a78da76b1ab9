package views

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/artpar/marquee/internal/app"
	"github.com/artpar/marquee/internal/catalog"
	"github.com/artpar/marquee/internal/locale"
	"github.com/artpar/marquee/internal/tui/vim"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moviesFor(page int) []catalog.Movie {
	movies := make([]catalog.Movie, 3)
	for i := range movies {
		id := int64(page*100 + i)
		movies[i] = catalog.Movie{
			ID:          id,
			Title:       fmt.Sprintf("Movie %d", id),
			ReleaseDate: "2024-05-01",
			VoteAverage: 7.5,
		}
	}
	return movies
}

func newFake(pages int) *catalog.Fake {
	fake := &catalog.Fake{
		NowPlayingPages: map[int][]catalog.Movie{},
		Details:         map[int64]catalog.MovieDetails{},
		Related:         map[int64][]catalog.Movie{},
	}
	for p := 1; p <= pages; p++ {
		fake.NowPlayingPages[p] = moviesFor(p)
	}
	return fake
}

func newTestView(t *testing.T, fake *catalog.Fake) *BrowserView {
	t.Helper()
	a := app.New(app.WithCatalog(fake))
	a.Load(context.Background())
	view := NewBrowserView(a)
	view.SetSize(100, 40)
	return view
}

// run executes cmd and feeds its message back into the view.
func run(t *testing.T, view *BrowserView, cmd tea.Cmd) *BrowserView {
	t.Helper()
	require.NotNil(t, cmd)
	updated, _ := view.Update(cmd())
	return updated.(*BrowserView)
}

func press(view *BrowserView, msg tea.KeyMsg) (*BrowserView, tea.Cmd) {
	updated, cmd := view.Update(msg)
	return updated.(*BrowserView), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewBrowserView(t *testing.T) {
	t.Run("starts on now playing", func(t *testing.T) {
		view := newTestView(t, newFake(1))
		assert.Equal(t, SourceNowPlaying, view.Source())
		assert.Equal(t, 1, view.Page())
		assert.Equal(t, vim.ModeNormal, view.Mode())
		assert.Equal(t, "Marquee", view.Title())
	})

	t.Run("init loads the first page", func(t *testing.T) {
		view := newTestView(t, newFake(2))
		cmd := view.Init()
		assert.True(t, view.Loading())

		view = run(t, view, cmd)
		assert.False(t, view.Loading())
		assert.Len(t, view.Movies(), 3)
		assert.Equal(t, int64(100), view.Movies()[0].ID)
	})
}

func TestBrowserView_Size(t *testing.T) {
	view := newTestView(t, newFake(1))
	updated, _ := view.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	view = updated.(*BrowserView)

	assert.Equal(t, 120, view.Width())
	assert.Equal(t, 50, view.Height())
}

func TestBrowserView_Cursor(t *testing.T) {
	view := newTestView(t, newFake(1))
	view = run(t, view, view.Init())

	t.Run("moves down and clamps", func(t *testing.T) {
		view, _ = press(view, runes("j"))
		assert.Equal(t, 1, view.Cursor())
		view, _ = press(view, tea.KeyMsg{Type: tea.KeyDown})
		view, _ = press(view, runes("j"))
		assert.Equal(t, 2, view.Cursor())
	})

	t.Run("moves up and clamps", func(t *testing.T) {
		view, _ = press(view, runes("k"))
		assert.Equal(t, 1, view.Cursor())
		view, _ = press(view, tea.KeyMsg{Type: tea.KeyUp})
		view, _ = press(view, runes("k"))
		assert.Equal(t, 0, view.Cursor())
	})

	t.Run("count prefix", func(t *testing.T) {
		view, _ = press(view, runes("2"))
		view, _ = press(view, runes("j"))
		assert.Equal(t, 2, view.Cursor())
	})
}

func TestBrowserView_Paging(t *testing.T) {
	t.Run("next page fetches it", func(t *testing.T) {
		view := newTestView(t, newFake(3))
		view = run(t, view, view.Init())

		view, cmd := press(view, runes("l"))
		assert.Equal(t, 2, view.Page())
		view = run(t, view, cmd)
		assert.Equal(t, int64(200), view.Movies()[0].ID)
	})

	t.Run("previous at first page is ignored", func(t *testing.T) {
		view := newTestView(t, newFake(3))
		view = run(t, view, view.Init())

		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyLeft})
		assert.Nil(t, cmd)
		assert.Equal(t, 1, view.Page())
	})

	t.Run("next at last page is ignored", func(t *testing.T) {
		view := newTestView(t, newFake(2))
		view = run(t, view, view.Init())

		view, cmd := press(view, runes("G"))
		view = run(t, view, cmd)
		assert.Equal(t, 2, view.Page())

		view, cmd = press(view, tea.KeyMsg{Type: tea.KeyRight})
		assert.Nil(t, cmd)
		assert.Equal(t, 2, view.Page())
	})

	t.Run("g returns to the first page", func(t *testing.T) {
		view := newTestView(t, newFake(3))
		view = run(t, view, view.Init())
		view, cmd := press(view, runes("l"))
		view = run(t, view, cmd)

		view, cmd = press(view, runes("g"))
		view = run(t, view, cmd)
		assert.Equal(t, 1, view.Page())
	})

	t.Run("goto mode jumps to a page", func(t *testing.T) {
		view := newTestView(t, newFake(3))
		view = run(t, view, view.Init())

		view, _ = press(view, runes(":"))
		assert.Equal(t, vim.ModeGoto, view.Mode())
		view, _ = press(view, runes("3"))
		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, vim.ModeNormal, view.Mode())
		view = run(t, view, cmd)

		assert.Equal(t, 3, view.Page())
		assert.Equal(t, int64(300), view.Movies()[0].ID)
	})

	t.Run("goto out of range is ignored", func(t *testing.T) {
		view := newTestView(t, newFake(3))
		view = run(t, view, view.Init())

		view, _ = press(view, runes(":"))
		view, _ = press(view, runes("9"))
		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Equal(t, 1, view.Page())
	})

	t.Run("renders the pager", func(t *testing.T) {
		view := newTestView(t, newFake(3))
		view = run(t, view, view.Init())

		out := view.View()
		assert.Contains(t, out, "Next ›")
		assert.Contains(t, out, "‹ Prev")
	})
}

func TestBrowserView_StaleResults(t *testing.T) {
	view := newTestView(t, newFake(3))
	view = run(t, view, view.Init())

	view, older := press(view, runes("l"))
	view, newer := press(view, runes("g"))
	require.NotNil(t, older)

	// the newer request completes first
	view = run(t, view, newer)
	view = run(t, view, older)

	assert.Equal(t, 1, view.Page())
	assert.Equal(t, int64(100), view.Movies()[0].ID)
}

func TestBrowserView_FetchError(t *testing.T) {
	fake := newFake(1)
	fake.Err = errors.New("network down")
	view := newTestView(t, fake)
	view = run(t, view, view.Init())

	require.Error(t, view.Err())
	assert.False(t, view.Loading())
	assert.Contains(t, view.View(), "Oops! Something went wrong")

	t.Run("r retries", func(t *testing.T) {
		fake.Err = nil
		view, cmd := press(view, runes("r"))
		view = run(t, view, cmd)

		assert.NoError(t, view.Err())
		assert.Len(t, view.Movies(), 3)
	})
}

func TestBrowserView_Search(t *testing.T) {
	view := newTestView(t, newFake(2))
	view = run(t, view, view.Init())

	view, _ = press(view, runes("/"))
	assert.Equal(t, vim.ModeSearch, view.Mode())
	view, _ = press(view, runes("Movie"))
	view, _ = press(view, tea.KeyMsg{Type: tea.KeySpace})
	view, _ = press(view, runes("201"))
	view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEnter})
	view = run(t, view, cmd)

	assert.Equal(t, SourceSearch, view.Source())
	require.Len(t, view.Movies(), 1)
	assert.Equal(t, int64(201), view.Movies()[0].ID)
	assert.Contains(t, view.View(), `Search Results for "Movie 201"`)
	assert.Contains(t, view.View(), "Found 1 movie")

	t.Run("esc leaves search", func(t *testing.T) {
		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEsc})
		view = run(t, view, cmd)
		assert.Equal(t, SourceNowPlaying, view.Source())
	})

	t.Run("blank query is ignored", func(t *testing.T) {
		view, _ := press(view, runes("/"))
		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Nil(t, cmd)
		assert.Equal(t, vim.ModeNormal, view.Mode())
	})

	t.Run("esc cancels input", func(t *testing.T) {
		view, _ := press(view, runes("/"))
		view, _ = press(view, runes("abc"))
		view, _ = press(view, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, vim.ModeNormal, view.Mode())
	})
}

func TestBrowserView_Wishlist(t *testing.T) {
	t.Run("w toggles the selected movie", func(t *testing.T) {
		view := newTestView(t, newFake(1))
		view = run(t, view, view.Init())

		view, cmd := press(view, runes("w"))
		assert.NotNil(t, cmd)
		assert.True(t, view.app.Wishlist().Contains(100))
		assert.Contains(t, view.Notification(), "Added Movie 100")
		assert.Contains(t, view.View(), "♥")

		view, _ = press(view, runes("w"))
		assert.False(t, view.app.Wishlist().Contains(100))
		assert.Contains(t, view.Notification(), "Removed Movie 100")
	})

	t.Run("tab shows the wishlist", func(t *testing.T) {
		view := newTestView(t, newFake(1))
		view = run(t, view, view.Init())
		view, _ = press(view, runes("j"))
		view, _ = press(view, runes("w"))

		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyTab})
		assert.Nil(t, cmd)
		assert.Equal(t, SourceWishlist, view.Source())
		require.Len(t, view.Movies(), 1)
		assert.Equal(t, int64(101), view.Movies()[0].ID)
		assert.Contains(t, view.View(), "1 movie in your wishlist")
	})

	t.Run("removing from the wishlist view updates the list", func(t *testing.T) {
		view := newTestView(t, newFake(1))
		view = run(t, view, view.Init())
		view, _ = press(view, runes("w"))
		view, _ = press(view, tea.KeyMsg{Type: tea.KeyTab})

		view, _ = press(view, runes("w"))
		assert.Empty(t, view.Movies())
		assert.Contains(t, view.View(), "Your wishlist is empty")
	})

	t.Run("clear notification", func(t *testing.T) {
		view := newTestView(t, newFake(1))
		view = run(t, view, view.Init())
		view, _ = press(view, runes("w"))

		updated, _ := view.Update(clearNotificationMsg{})
		view = updated.(*BrowserView)
		assert.Empty(t, view.Notification())
	})
}

func TestBrowserView_Language(t *testing.T) {
	fake := newFake(1)
	view := newTestView(t, fake)
	view = run(t, view, view.Init())
	assert.False(t, view.Projection().RTL)

	view, cmd := press(view, runes("L"))
	assert.NotNil(t, cmd)
	assert.Equal(t, locale.Arabic, view.app.Language().Value())
	assert.True(t, view.Projection().RTL)
	assert.Contains(t, view.Notification(), "العربية")
	assert.Contains(t, view.View(), "rtl")

	t.Run("apply projection", func(t *testing.T) {
		view.ApplyProjection(locale.Project(locale.French))
		assert.False(t, view.Projection().RTL)
	})
}

func TestBrowserView_Copy(t *testing.T) {
	view := newTestView(t, newFake(1))
	view = run(t, view, view.Init())

	var copied string
	view.SetClipboard(func(s string) error {
		copied = s
		return nil
	})

	view, _ = press(view, runes("y"))
	assert.Equal(t, "https://www.themoviedb.org/movie/100", copied)
	assert.Contains(t, view.Notification(), "Copied")

	t.Run("reports failure", func(t *testing.T) {
		view.SetClipboard(func(string) error { return errors.New("no clipboard") })
		view, _ := press(view, runes("y"))
		assert.Contains(t, view.Notification(), "Copy failed")
	})
}

func TestBrowserView_Detail(t *testing.T) {
	fake := newFake(1)
	fake.Details[100] = catalog.MovieDetails{
		Movie:   catalog.Movie{ID: 100, Title: "Movie 100", ReleaseDate: "2024-05-01", VoteCount: 1234},
		Genres:  []catalog.Genre{{ID: 1, Name: "Drama"}},
		Runtime: 139,
		Tagline: "Mischief. Mayhem. Soap.",
	}
	fake.Related[100] = []catalog.Movie{{ID: 550, Title: "Related"}}

	view := newTestView(t, fake)
	view = run(t, view, view.Init())

	view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEnter})
	view = run(t, view, cmd)

	out := view.View()
	assert.Contains(t, out, "Mischief. Mayhem. Soap.")
	assert.Contains(t, out, "2h 19m")
	assert.Contains(t, out, "1,234 votes")
	assert.Contains(t, out, "Drama")
	assert.Contains(t, out, "Recommended Movies")
	assert.Contains(t, out, "Related")

	t.Run("w toggles the shown movie", func(t *testing.T) {
		view, _ = press(view, runes("w"))
		assert.True(t, view.app.Wishlist().Contains(100))
	})

	t.Run("esc closes", func(t *testing.T) {
		view, _ = press(view, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Contains(t, view.View(), "Movie 101")
	})

	t.Run("missing movie", func(t *testing.T) {
		view, _ = press(view, runes("j"))
		view, cmd := press(view, tea.KeyMsg{Type: tea.KeyEnter})
		view = run(t, view, cmd)
		assert.Contains(t, view.View(), "Movie not found")
	})
}

func TestBrowserView_Quit(t *testing.T) {
	view := newTestView(t, newFake(1))

	_, cmd := press(view, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = press(view, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
