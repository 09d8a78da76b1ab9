package testserver

import "github.com/artpar/marquee/internal/catalog"

// Sample returns a small catalog: three now-playing pages, details for a
// few movies and recommendations for Fight Club.
func Sample() *Catalog {
	fightClub := catalog.Movie{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4, VoteCount: 27000, PosterPath: "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg"}
	pulpFiction := catalog.Movie{ID: 680, Title: "Pulp Fiction", ReleaseDate: "1994-09-10", VoteAverage: 8.5, VoteCount: 26000}
	forrestGump := catalog.Movie{ID: 13, Title: "Forrest Gump", ReleaseDate: "1994-06-23", VoteAverage: 8.5, VoteCount: 25000}
	darkKnight := catalog.Movie{ID: 155, Title: "The Dark Knight", ReleaseDate: "2008-07-16", VoteAverage: 8.5, VoteCount: 31000}
	seven := catalog.Movie{ID: 807, Title: "Se7en", ReleaseDate: "1995-09-22", VoteAverage: 8.4, VoteCount: 20000}

	return &Catalog{
		NowPlaying: map[int][]catalog.Movie{
			1: {fightClub, pulpFiction},
			2: {pulpFiction, forrestGump},
			3: {darkKnight},
		},
		Details: map[int64]catalog.MovieDetails{
			550: {
				Movie:   fightClub,
				Genres:  []catalog.Genre{{ID: 18, Name: "Drama"}},
				Runtime: 139,
				Budget:  63000000,
				Revenue: 100853753,
				Status:  "Released",
				Tagline: "Mischief. Mayhem. Soap.",
			},
			680: {
				Movie:   pulpFiction,
				Genres:  []catalog.Genre{{ID: 53, Name: "Thriller"}, {ID: 80, Name: "Crime"}},
				Runtime: 154,
				Status:  "Released",
			},
		},
		Related: map[int64][]catalog.Movie{
			550: {seven, pulpFiction},
		},
	}
}
