// Package model defines the movie entity and the request/response shapes
// exchanged at the HTTP boundary. Each boundary gets its own flat struct
// (create, update, filters, response) built by explicit field copying; there
// is no shared embedded base.
package model

import (
	"strings"
	"time"

	"github.com/ramink/movie-catalog/internal/utils"
)

// Classification is a per-country rating attached to a movie. It is always
// initialized empty at creation and is not settable through the public
// create or update payloads.
type Classification struct {
	Country string `json:"country" bson:"country"`
	Value   string `json:"value" bson:"value"`
}

// Movie is the canonical record returned to clients. ID is the hex form of
// the store identifier. UpdatedAt stays null until the first effective
// update.
type Movie struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Casts          []string         `json:"casts"`
	Genres         []string         `json:"genres"`
	Year           int              `json:"year"`
	Slug           string           `json:"slug"`
	Classification []Classification `json:"classification"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      *time.Time       `json:"updatedAt"`
}

// MovieCreate is the payload for creating a movie. Slug, classification and
// timestamps are derived server-side and cannot be supplied here.
type MovieCreate struct {
	Name   string   `json:"name" validate:"required,min=1,max=200"`
	Casts  []string `json:"casts"`
	Genres []string `json:"genres"`
	Year   int      `json:"year" validate:"required,gte=1900,lte=2100"`
}

// Validate normalizes the payload in place and checks the field constraints.
// It returns an *errs.ValidationError listing the offending fields.
func (m *MovieCreate) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Casts = utils.NormalizeList(m.Casts)
	m.Genres = utils.NormalizeList(m.Genres)
	return runValidation(m)
}

// MovieUpdate is the partial-update payload. Every field is a pointer so a
// field that is absent from the JSON body stays nil and is left untouched
// downstream, while an explicitly supplied value (including an empty list)
// is applied.
type MovieUpdate struct {
	Name   *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Casts  *[]string `json:"casts"`
	Genres *[]string `json:"genres"`
	Year   *int      `json:"year" validate:"omitempty,gte=1900,lte=2100"`
}

// Validate trims the present fields and checks the same per-field constraints
// as creation for name and year.
func (m *MovieUpdate) Validate() error {
	if m.Name != nil {
		trimmed := strings.TrimSpace(*m.Name)
		m.Name = &trimmed
	}
	if m.Casts != nil {
		normalized := utils.NormalizeList(*m.Casts)
		m.Casts = &normalized
	}
	if m.Genres != nil {
		normalized := utils.NormalizeList(*m.Genres)
		m.Genres = &normalized
	}
	return runValidation(m)
}

// IsEmpty reports whether no field is present, i.e. the update carries an
// empty change-set.
func (m *MovieUpdate) IsEmpty() bool {
	return m.Name == nil && m.Casts == nil && m.Genres == nil && m.Year == nil
}

// MovieFilters describes the query surface of the list endpoint. Title is a
// case-insensitive substring match against the name, genres matches any,
// year bounds are inclusive.
type MovieFilters struct {
	Title   string   `json:"title"`
	Genres  []string `json:"genres"`
	YearMin *int     `json:"year_min" validate:"omitempty,gte=1900"`
	YearMax *int     `json:"year_max" validate:"omitempty,lte=2100"`
	Limit   int      `json:"limit" validate:"gte=1,lte=100"`
	Offset  int      `json:"offset" validate:"gte=0"`
}

// DefaultLimit is applied when the list request does not specify one.
const DefaultLimit = 20

// NewMovieFilters returns filters with pagination defaults applied.
func NewMovieFilters() *MovieFilters {
	return &MovieFilters{Limit: DefaultLimit, Offset: 0}
}

// Validate checks pagination and year-bound ranges.
func (f *MovieFilters) Validate() error {
	return runValidation(f)
}

// MovieResponse wraps a single movie for the wire.
type MovieResponse struct {
	Movie *Movie `json:"movie"`
}

// MoviesResponse wraps a result page together with the total match count,
// which is independent of the returned page size.
type MoviesResponse struct {
	Movies      []*Movie `json:"movies"`
	MoviesCount int64    `json:"moviesCount"`
}
