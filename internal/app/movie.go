package app

import (
	"context"
	"fmt"

	"github.com/artpar/marquee/internal/catalog"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MaxRecommendations is how many related movies a detail view shows.
const MaxRecommendations = 12

// MovieView is a movie with its recommendations.
type MovieView struct {
	Movie           *catalog.MovieDetails
	Recommendations []catalog.Movie
}

// LoadMovie fetches a movie and its recommendations concurrently. Failing
// to fetch recommendations leaves them empty; failing to fetch the movie
// is an error.
func (a *App) LoadMovie(ctx context.Context, id int64) (*MovieView, error) {
	lang := a.Lang()
	view := &MovieView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movie, err := a.catalog.Movie(gctx, id, lang)
		if err != nil {
			return fmt.Errorf("failed to fetch movie %d: %w", id, err)
		}
		view.Movie = movie
		return nil
	})
	g.Go(func() error {
		recs, err := a.catalog.Recommendations(gctx, id, lang)
		if err != nil {
			a.logger.Debug("recommendations unavailable", zap.Int64("movie_id", id), zap.Error(err))
			return nil
		}
		if recs != nil {
			view.Recommendations = recs.Results
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(view.Recommendations) > MaxRecommendations {
		view.Recommendations = view.Recommendations[:MaxRecommendations]
	}
	return view, nil
}
