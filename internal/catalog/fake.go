package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Fake is an in-memory Catalog for tests. Listings are served from
// NowPlayingPages (1-based), details from Details, recommendations from
// Related. Anything missing fails; Err, when set, fails every call.
type Fake struct {
	mu              sync.Mutex
	NowPlayingPages map[int][]Movie
	Details         map[int64]MovieDetails
	Related         map[int64][]Movie
	TotalPages      int
	Err             error
	Calls           []string
}

func (f *Fake) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
	return f.Err
}

// NowPlaying serves a canned listing page.
func (f *Fake) NowPlaying(ctx context.Context, language string, page int) (*Page[Movie], error) {
	if err := f.record(fmt.Sprintf("now_playing:%s:%d", language, page)); err != nil {
		return nil, err
	}
	movies, ok := f.NowPlayingPages[page]
	if !ok {
		return nil, &APIError{StatusCode: 404}
	}
	return f.page(page, movies), nil
}

// Movie serves canned details.
func (f *Fake) Movie(ctx context.Context, id int64, language string) (*MovieDetails, error) {
	if err := f.record(fmt.Sprintf("movie:%s:%d", language, id)); err != nil {
		return nil, err
	}
	details, ok := f.Details[id]
	if !ok {
		return nil, &APIError{StatusCode: 404}
	}
	return &details, nil
}

// Recommendations serves canned related movies.
func (f *Fake) Recommendations(ctx context.Context, id int64, language string) (*Page[Movie], error) {
	if err := f.record(fmt.Sprintf("recommendations:%s:%d", language, id)); err != nil {
		return nil, err
	}
	movies, ok := f.Related[id]
	if !ok {
		return nil, &APIError{StatusCode: 404}
	}
	return &Page[Movie]{Page: 1, Results: movies, TotalPages: 1, TotalResults: len(movies)}, nil
}

// Search matches titles across every listing page, case-insensitively.
func (f *Fake) Search(ctx context.Context, query, language string, page int) (*Page[Movie], error) {
	if err := f.record(fmt.Sprintf("search:%s:%s:%d", language, query, page)); err != nil {
		return nil, err
	}
	var found []Movie
	for p := 1; p <= len(f.NowPlayingPages); p++ {
		for _, m := range f.NowPlayingPages[p] {
			if strings.Contains(strings.ToLower(m.Title), strings.ToLower(query)) {
				found = append(found, m)
			}
		}
	}
	return &Page[Movie]{Page: 1, Results: found, TotalPages: 1, TotalResults: len(found)}, nil
}

// CallLog returns a copy of the recorded calls.
func (f *Fake) CallLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *Fake) page(n int, movies []Movie) *Page[Movie] {
	total := f.TotalPages
	if total == 0 {
		total = len(f.NowPlayingPages)
	}
	results := 0
	for _, m := range f.NowPlayingPages {
		results += len(m)
	}
	return &Page[Movie]{Page: n, Results: movies, TotalPages: total, TotalResults: results}
}

var _ Catalog = (*Fake)(nil)
