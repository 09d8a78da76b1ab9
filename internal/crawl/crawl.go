// Package crawl gathers the movie ids a static build pre-renders. It fans
// out over several catalog listings and their recommendations, tolerating
// any individual failure, and always includes a curated allowlist.
package crawl

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/artpar/marquee/internal/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultAllowlist is always part of the output, in this order when nothing
// else was gathered.
var DefaultAllowlist = []int64{1134865, 1151031, 9822, 550, 680, 13, 19995, 155}

// Source is the part of the catalog the crawl reads.
type Source interface {
	NowPlaying(ctx context.Context, language string, page int) (*catalog.Page[catalog.Movie], error)
	Recommendations(ctx context.Context, id int64, language string) (*catalog.Page[catalog.Movie], error)
}

// Config controls the crawl.
type Config struct {
	Pages          int           // listing pages fetched
	Seeds          int           // ids expanded with recommendations
	Concurrency    int           // in-flight requests per stage
	RequestTimeout time.Duration // a request slower than this counts as failed
	Language       string
	Allowlist      []int64
}

// DefaultConfig returns the default crawl configuration.
func DefaultConfig() Config {
	return Config{
		Pages:          5,
		Seeds:          50,
		Concurrency:    8,
		RequestTimeout: 10 * time.Second,
		Language:       "en",
		Allowlist:      DefaultAllowlist,
	}
}

// Stats summarizes a run.
type Stats struct {
	RunID           string
	ListRequests    int
	ListFailures    int
	RelatedRequests int
	RelatedFailures int
	FromListings    int
	FromRelated     int
	FromAllowlist   int
	Duration        time.Duration
}

// Result is the outcome of a crawl.
type Result struct {
	IDs   []int64
	Stats Stats
}

// Crawler runs identifier crawls against a Source.
type Crawler struct {
	source Source
	config Config
	logger *zap.Logger
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithConfig replaces the configuration.
func WithConfig(cfg Config) Option {
	return func(c *Crawler) {
		c.config = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Crawler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPages sets how many listing pages are fetched.
func WithPages(n int) Option {
	return func(c *Crawler) {
		c.config.Pages = n
	}
}

// WithSeeds sets how many ids are expanded with recommendations.
func WithSeeds(n int) Option {
	return func(c *Crawler) {
		c.config.Seeds = n
	}
}

// WithConcurrency bounds in-flight requests per stage.
func WithConcurrency(n int) Option {
	return func(c *Crawler) {
		c.config.Concurrency = n
	}
}

// Config returns the effective configuration.
func (c *Crawler) Config() Config {
	return c.config
}

// New creates a crawler reading from source.
func New(source Source, opts ...Option) *Crawler {
	c := &Crawler{
		source: source,
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.config.Concurrency <= 0 {
		c.config.Concurrency = 1
	}
	return c
}

// Run gathers ids. It never fails: when every request fails the result is
// exactly the allowlist.
func (c *Crawler) Run(ctx context.Context) Result {
	start := time.Now()
	stats := Stats{RunID: uuid.New().String()}
	logger := c.logger.With(zap.String("run_id", stats.RunID))
	set := newIDSet()

	// Listings
	listings, failed := c.fanOut(ctx, c.config.Pages, func(ctx context.Context, i int) (*catalog.Page[catalog.Movie], error) {
		return c.source.NowPlaying(ctx, c.config.Language, i+1)
	}, func(i int, err error) {
		logger.Warn("listing fetch failed", zap.Int("page", i+1), zap.Error(err))
	})
	stats.ListRequests = max(c.config.Pages, 0)
	stats.ListFailures = failed
	for _, ids := range listings {
		stats.FromListings += set.add(ids...)
	}

	// Recommendations for the first seeds
	seeds := set.first(max(c.config.Seeds, 0))
	related, failed := c.fanOut(ctx, len(seeds), func(ctx context.Context, i int) (*catalog.Page[catalog.Movie], error) {
		return c.source.Recommendations(ctx, seeds[i], c.config.Language)
	}, func(i int, err error) {
		logger.Debug("recommendations fetch failed", zap.Int64("movie_id", seeds[i]), zap.Error(err))
	})
	stats.RelatedRequests = len(seeds)
	stats.RelatedFailures = failed
	for _, ids := range related {
		stats.FromRelated += set.add(ids...)
	}

	stats.FromAllowlist = set.add(c.config.Allowlist...)
	stats.Duration = time.Since(start)

	logger.Info("crawl finished",
		zap.Int("ids", set.len()),
		zap.Int("list_failures", stats.ListFailures),
		zap.Int("related_failures", stats.RelatedFailures),
		zap.Duration("duration", stats.Duration),
	)

	return Result{IDs: set.list(), Stats: stats}
}

// fanOut runs fetch for indexes [0, n) with bounded concurrency. Slot i of
// the result holds the ids of call i, or nil when it failed; results are
// therefore independent of completion order.
func (c *Crawler) fanOut(
	ctx context.Context,
	n int,
	fetch func(ctx context.Context, i int) (*catalog.Page[catalog.Movie], error),
	onError func(i int, err error),
) ([][]int64, int) {
	if n <= 0 {
		return nil, 0
	}

	results := make([][]int64, n)
	var failures atomic.Int64

	var g errgroup.Group
	g.SetLimit(c.config.Concurrency)
	for i := range n {
		g.Go(func() error {
			ids, err := c.fetchIDs(ctx, func(ctx context.Context) (*catalog.Page[catalog.Movie], error) {
				return fetch(ctx, i)
			})
			if err != nil {
				failures.Add(1)
				onError(i, err)
				return nil
			}
			results[i] = ids
			return nil
		})
	}
	// Workers never return errors; a failure only empties its own slot.
	_ = g.Wait()

	return results, int(failures.Load())
}

func (c *Crawler) fetchIDs(ctx context.Context, fetch func(context.Context) (*catalog.Page[catalog.Movie], error)) ([]int64, error) {
	if c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}

	type outcome struct {
		page *catalog.Page[catalog.Movie]
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		page, err := fetch(ctx)
		done <- outcome{page, err}
	}()

	// A source that ignores its context must not stall the crawl.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		if out.page == nil {
			return nil, nil
		}
		return catalog.IDs(out.page.Results), nil
	}
}
