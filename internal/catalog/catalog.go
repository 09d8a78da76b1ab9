package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when the catalog has no such resource.
var ErrNotFound = errors.New("not found")

// Catalog is the remote movie catalog.
type Catalog interface {
	// NowPlaying lists movies currently in theaters.
	NowPlaying(ctx context.Context, language string, page int) (*Page[Movie], error)

	// Movie returns the details of a single movie.
	Movie(ctx context.Context, id int64, language string) (*MovieDetails, error)

	// Recommendations lists movies related to id.
	Recommendations(ctx context.Context, id int64, language string) (*Page[Movie], error)

	// Search finds movies matching query.
	Search(ctx context.Context, query, language string, page int) (*Page[Movie], error)
}

// APIError is a non-2xx response from the catalog.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog: status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog: status %d: %s", e.StatusCode, e.Message)
}

// Is reports 404 responses as ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}

const (
	imageBaseURL     = "https://image.tmdb.org/t/p/"
	placeholderImage = "/placeholder-movie.jpg"
	webBaseURL       = "https://www.themoviedb.org/movie/"
)

// ImageURL returns the CDN URL for an image path at the given size.
func ImageURL(path, size string) string {
	if path == "" {
		return placeholderImage
	}
	if size == "" {
		size = "w500"
	}
	return imageBaseURL + size + path
}

// WebURL returns the public page of a movie.
func WebURL(id int64) string {
	return fmt.Sprintf("%s%d", webBaseURL, id)
}
