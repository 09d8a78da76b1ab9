package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client with defaults", func(t *testing.T) {
		client := NewClient()
		assert.NotNil(t, client)
		assert.Equal(t, DefaultBaseURL, client.Config().BaseURL)
		assert.Equal(t, "demo_key", client.Config().APIKey)
	})

	t.Run("applies options", func(t *testing.T) {
		client := NewClient(
			WithTimeout(5*time.Second),
			WithBaseURL("http://localhost:9999/3/"),
			WithAPIKey("secret"),
			WithRateLimit(10),
		)
		assert.Equal(t, 5*time.Second, client.Config().Timeout)
		assert.Equal(t, "http://localhost:9999/3", client.Config().BaseURL)
		assert.Equal(t, "secret", client.Config().APIKey)
		assert.NotNil(t, client.limiter)
	})

	t.Run("empty api key keeps default", func(t *testing.T) {
		client := NewClient(WithAPIKey(""))
		assert.Equal(t, "demo_key", client.Config().APIKey)
	})
}

func TestClient_NowPlaying(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/now_playing", r.URL.Path)
		assert.Equal(t, "key123", r.URL.Query().Get("api_key"))
		assert.Equal(t, "fr", r.URL.Query().Get("language"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"page": 2,
			"results": []map[string]any{
				{"id": 550, "title": "Fight Club", "release_date": "1999-10-15"},
				{"id": 680, "title": "Pulp Fiction"},
			},
			"total_pages":   40,
			"total_results": 800,
		})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithAPIKey("key123"))
	page, err := client.NowPlaying(context.Background(), "fr", 2)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 40, page.TotalPages)
	assert.Equal(t, 800, page.TotalResults)
	require.Len(t, page.Results, 2)
	assert.Equal(t, []int64{550, 680}, IDs(page.Results))
	assert.Equal(t, "Fight Club", page.Results[0].Title)
	assert.Equal(t, "1999", page.Results[0].Year())
}

func TestClient_PageNormalization(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "en", r.URL.Query().Get("language"))
		w.Write([]byte(`{"page":1,"results":[],"total_pages":0,"total_results":0}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	page, err := client.NowPlaying(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestClient_Movie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"runtime": 139,
			"budget": 63000000,
			"tagline": "Mischief. Mayhem. Soap.",
			"genres": [{"id": 18, "name": "Drama"}],
			"production_companies": [{"id": 508, "name": "Regency Enterprises"}]
		}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	movie, err := client.Movie(context.Background(), 550, "en")

	require.NoError(t, err)
	assert.Equal(t, int64(550), movie.ID)
	assert.Equal(t, "Fight Club", movie.Title)
	assert.Equal(t, 139, movie.Runtime)
	assert.Equal(t, int64(63000000), movie.Budget)
	require.Len(t, movie.Genres, 1)
	assert.Equal(t, "Drama", movie.Genres[0].Name)
	require.Len(t, movie.ProductionCompanies, 1)
}

func TestClient_RecommendationsAndSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/13/recommendations":
			w.Write([]byte(`{"page":1,"results":[{"id":155},{"id":550}],"total_pages":1,"total_results":2}`))
		case "/search/movie":
			assert.Equal(t, "dark knight", r.URL.Query().Get("query"))
			assert.Equal(t, "3", r.URL.Query().Get("page"))
			w.Write([]byte(`{"page":3,"results":[{"id":155}],"total_pages":3,"total_results":41}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	ctx := context.Background()

	recs, err := client.Recommendations(ctx, 13, "en")
	require.NoError(t, err)
	assert.Equal(t, []int64{155, 550}, IDs(recs.Results))

	found, err := client.Search(ctx, "dark knight", "en", 3)
	require.NoError(t, err)
	assert.Equal(t, 41, found.TotalResults)
	assert.Equal(t, []int64{155}, IDs(found.Results))
}

func TestClient_Errors(t *testing.T) {
	t.Run("404 maps to ErrNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.Movie(context.Background(), 1, "en")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Contains(t, apiErr.Error(), "could not be found")
	})

	t.Run("rate limit status is an APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.NowPlaying(context.Background(), "en", 1)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 429, apiErr.StatusCode)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "catalog: status 429", apiErr.Error())
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL))
		_, err := client.NowPlaying(context.Background(), "en", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := NewClient(WithBaseURL(server.URL), WithTimeout(20*time.Millisecond))
		_, err := client.NowPlaying(context.Background(), "en", 1)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := NewClient(WithBaseURL("http://127.0.0.1:1"), WithRateLimit(1))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.NowPlaying(ctx, "en", 1)
		assert.Error(t, err)
	})
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "/placeholder-movie.jpg", ImageURL("", "w500"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", ImageURL("/abc.jpg", ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/original/abc.jpg", ImageURL("/abc.jpg", "original"))
}

func TestWebURL(t *testing.T) {
	assert.Equal(t, "https://www.themoviedb.org/movie/550", WebURL(550))
}

func TestFormatRuntime(t *testing.T) {
	assert.Equal(t, "2h 19m", FormatRuntime(139))
	assert.Equal(t, "0h 45m", FormatRuntime(45))
	assert.Equal(t, "N/A", FormatRuntime(0))
}
