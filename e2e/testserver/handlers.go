package testserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/artpar/marquee/internal/catalog"
)

// Catalog is the data served by the fake TMDB API.
type Catalog struct {
	NowPlaying map[int][]catalog.Movie // by 1-based page
	Details    map[int64]catalog.MovieDetails
	Related    map[int64][]catalog.Movie
	Delay      time.Duration // applied to every response
	Fail       bool          // every request answers 500
}

// Routes returns handlers for the endpoints the client uses.
func (c *Catalog) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"GET /movie/now_playing":          c.guard(c.nowPlaying),
		"GET /movie/{id}":                 c.guard(c.movie),
		"GET /movie/{id}/recommendations": c.guard(c.recommendations),
		"GET /search/movie":               c.guard(c.search),
	}
}

func (c *Catalog) guard(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c.Delay > 0 {
			time.Sleep(c.Delay)
		}
		if c.Fail {
			Error(http.StatusInternalServerError, "Internal error: Something went wrong")(w, r)
			return
		}
		if r.URL.Query().Get("api_key") == "" {
			Error(http.StatusUnauthorized, "Invalid API key: You must be granted a valid key.")(w, r)
			return
		}
		h(w, r)
	}
}

func (c *Catalog) nowPlaying(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	movies, ok := c.NowPlaying[page]
	if !ok {
		Error(http.StatusNotFound, "The resource you requested could not be found.")(w, r)
		return
	}
	total := 0
	for _, m := range c.NowPlaying {
		total += len(m)
	}
	JSON(http.StatusOK, catalog.Page[catalog.Movie]{
		Page:         page,
		Results:      movies,
		TotalPages:   len(c.NowPlaying),
		TotalResults: total,
	})(w, r)
}

func (c *Catalog) movie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	details, ok := c.Details[id]
	if err != nil || !ok {
		Error(http.StatusNotFound, "The resource you requested could not be found.")(w, r)
		return
	}
	JSON(http.StatusOK, details)(w, r)
}

func (c *Catalog) recommendations(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	movies, ok := c.Related[id]
	if err != nil || !ok {
		Error(http.StatusNotFound, "The resource you requested could not be found.")(w, r)
		return
	}
	JSON(http.StatusOK, catalog.Page[catalog.Movie]{
		Page:         1,
		Results:      movies,
		TotalPages:   1,
		TotalResults: len(movies),
	})(w, r)
}

func (c *Catalog) search(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("query"))
	found := []catalog.Movie{}
	seen := map[int64]bool{}
	for page := 1; page <= len(c.NowPlaying); page++ {
		for _, m := range c.NowPlaying[page] {
			if !seen[m.ID] && strings.Contains(strings.ToLower(m.Title), query) {
				seen[m.ID] = true
				found = append(found, m)
			}
		}
	}
	JSON(http.StatusOK, catalog.Page[catalog.Movie]{
		Page:         1,
		Results:      found,
		TotalPages:   1,
		TotalResults: len(found),
	})(w, r)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// JSON returns a handler that responds with JSON.
func JSON(code int, data any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(data)
	}
}

// Error returns a handler that responds with a TMDB-style error body.
func Error(code int, message string) http.HandlerFunc {
	return JSON(code, map[string]any{
		"success":        false,
		"status_code":    code,
		"status_message": message,
	})
}
