package models

import "strings"

// Genres is the closed set of genres a movie may be tagged with.
var Genres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Biography",
	"Comedy",
	"Crime",
	"Drama",
	"Fantasy",
	"Horror",
	"Romance",
	"Sci-Fi",
	"Thriller",
}

// Movie represents a movie in the catalog.
type Movie struct {
	ID       string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title    string   `json:"title" gorm:"not null"`
	Year     int      `json:"year" gorm:"not null"`
	Director string   `json:"director" gorm:"not null"`
	Duration int      `json:"duration" gorm:"not null"` // minutes
	Poster   string   `json:"poster" gorm:"not null"`
	Genre    []string `json:"genre" gorm:"serializer:json;type:text"`
	Rate     float64  `json:"rate"`
}

// HasGenre reports whether the movie is tagged with genre, ignoring case.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genre {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with m.
func (m Movie) Clone() Movie {
	if m.Genre != nil {
		m.Genre = append([]string(nil), m.Genre...)
	}
	return m
}

// MovieInput is a fully validated movie body, ready to be stored.
type MovieInput struct {
	Title    string
	Year     int
	Director string
	Duration int
	Poster   string
	Genre    []string
	Rate     float64
}

// NewMovie builds the stored record for in under the given id.
func (in MovieInput) NewMovie(id string) Movie {
	return Movie{
		ID:       id,
		Title:    in.Title,
		Year:     in.Year,
		Director: in.Director,
		Duration: in.Duration,
		Poster:   in.Poster,
		Genre:    append([]string(nil), in.Genre...),
		Rate:     in.Rate,
	}
}

// MoviePatch holds the validated subset of fields supplied by a partial update.
// A nil field was not supplied and leaves the stored value untouched.
type MoviePatch struct {
	Title    *string
	Year     *int
	Director *string
	Duration *int
	Poster   *string
	Genre    []string
	Rate     *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Year == nil && p.Director == nil && p.Duration == nil &&
		p.Poster == nil && p.Genre == nil && p.Rate == nil
}

// Apply returns m with the patch merged over it. The id is never touched.
func (p MoviePatch) Apply(m Movie) Movie {
	out := m.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Year != nil {
		out.Year = *p.Year
	}
	if p.Director != nil {
		out.Director = *p.Director
	}
	if p.Duration != nil {
		out.Duration = *p.Duration
	}
	if p.Poster != nil {
		out.Poster = *p.Poster
	}
	if p.Genre != nil {
		out.Genre = append([]string(nil), p.Genre...)
	}
	if p.Rate != nil {
		out.Rate = *p.Rate
	}
	return out
}
