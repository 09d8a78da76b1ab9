package catalog

import "fmt"

// Movie is a catalog entry as returned in listings.
type Movie struct {
	ID               int64   `json:"id" yaml:"id"`
	Title            string  `json:"title" yaml:"title"`
	PosterPath       string  `json:"poster_path,omitempty" yaml:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty" yaml:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	Overview         string  `json:"overview,omitempty" yaml:"overview,omitempty"`
	VoteAverage      float64 `json:"vote_average" yaml:"vote_average"`
	VoteCount        int     `json:"vote_count" yaml:"vote_count"`
	GenreIDs         []int   `json:"genre_ids,omitempty" yaml:"genre_ids,omitempty"`
	Adult            bool    `json:"adult" yaml:"adult"`
	OriginalLanguage string  `json:"original_language,omitempty" yaml:"original_language,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty" yaml:"original_title,omitempty"`
	Popularity       float64 `json:"popularity" yaml:"popularity"`
	Video            bool    `json:"video" yaml:"video"`
}

// ItemID returns the movie id.
func (m Movie) ItemID() int64 {
	return m.ID
}

// Year returns the release year, or "" when unknown.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Genre is a named genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company.
type Company struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LogoPath string `json:"logo_path,omitempty"`
}

// MovieDetails is the full record returned by the details endpoint.
type MovieDetails struct {
	Movie
	Genres              []Genre   `json:"genres"`
	Runtime             int       `json:"runtime"`
	Budget              int64     `json:"budget"`
	Revenue             int64     `json:"revenue"`
	Status              string    `json:"status"`
	Tagline             string    `json:"tagline"`
	ProductionCompanies []Company `json:"production_companies"`
}

// Page is a paginated result envelope.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// IDs returns the ids of the movies in the page, in order.
func IDs(movies []Movie) []int64 {
	ids := make([]int64, 0, len(movies))
	for _, m := range movies {
		ids = append(ids, m.ID)
	}
	return ids
}

// FormatRuntime renders minutes as "2h 19m".
func FormatRuntime(minutes int) string {
	if minutes <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
