// Package handler maps HTTP requests to service calls and results back to
// response envelopes. No business logic lives here: handlers parse and
// validate transport input, invoke exactly one service method and hand any
// error to the central error handler.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ramink/movie-catalog/internal/errs"
	"github.com/ramink/movie-catalog/internal/model"
)

// MovieService is the use-case surface the handlers depend on. The concrete
// implementation lives in the service package; tests substitute a fake.
type MovieService interface {
	CreateMovie(ctx context.Context, in *model.MovieCreate) (*model.Movie, error)
	GetMovie(ctx context.Context, id string) (*model.Movie, error)
	GetMovieBySlug(ctx context.Context, slug string) (*model.Movie, error)
	GetMovies(ctx context.Context, f *model.MovieFilters) ([]*model.Movie, int64, error)
	UpdateMovie(ctx context.Context, id string, in *model.MovieUpdate) (*model.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// MovieHandler serves the /movies routes.
type MovieHandler struct {
	svc MovieService
}

// NewMovieHandler constructs a MovieHandler over the given service.
func NewMovieHandler(svc MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// ListMovies handles GET /movies and returns one page of movies plus the
// total match count.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	filters, err := bindFilters(c)
	if err != nil {
		return err
	}
	movies, total, err := h.svc.GetMovies(c.Request().Context(), filters)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.MoviesResponse{Movies: movies, MoviesCount: total})
}

// GetMovie handles GET /movies/:id.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	movie, err := h.svc.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.MovieResponse{Movie: movie})
}

// GetMovieBySlug handles GET /movies/slug/:slug.
func (h *MovieHandler) GetMovieBySlug(c echo.Context) error {
	movie, err := h.svc.GetMovieBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.MovieResponse{Movie: movie})
}

// CreateMovie handles POST /movies.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var in model.MovieCreate
	if err := c.Bind(&in); err != nil {
		return &errs.BadRequestError{Message: "invalid request body"}
	}
	if err := in.Validate(); err != nil {
		return err
	}
	movie, err := h.svc.CreateMovie(c.Request().Context(), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, model.MovieResponse{Movie: movie})
}

// UpdateMovie handles PUT /movies/:id with partial-update semantics: only
// the fields present in the body are applied.
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	var in model.MovieUpdate
	if err := c.Bind(&in); err != nil {
		return &errs.BadRequestError{Message: "invalid request body"}
	}
	if err := in.Validate(); err != nil {
		return err
	}
	movie, err := h.svc.UpdateMovie(c.Request().Context(), c.Param("id"), &in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, model.MovieResponse{Movie: movie})
}

// DeleteMovie handles DELETE /movies/:id and returns 204 on success.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	if err := h.svc.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// bindFilters parses the list query string into MovieFilters, applying the
// pagination defaults and validating ranges.
func bindFilters(c echo.Context) (*model.MovieFilters, error) {
	f := model.NewMovieFilters()
	f.Title = strings.TrimSpace(c.QueryParam("title"))

	if raw := c.QueryParam("genres"); raw != "" {
		for _, g := range strings.Split(raw, ",") {
			if g = strings.TrimSpace(g); g != "" {
				f.Genres = append(f.Genres, g)
			}
		}
	}

	var err error
	if f.Limit, err = intQueryParam(c, "limit", model.DefaultLimit); err != nil {
		return nil, err
	}
	if f.Offset, err = intQueryParam(c, "offset", 0); err != nil {
		return nil, err
	}
	if f.YearMin, err = optionalIntQueryParam(c, "year_min"); err != nil {
		return nil, err
	}
	if f.YearMax, err = optionalIntQueryParam(c, "year_max"); err != nil {
		return nil, err
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func intQueryParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValidation(name, "must be an integer")
	}
	return n, nil
}

func optionalIntQueryParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errs.NewValidation(name, "must be an integer")
	}
	return &n, nil
}
