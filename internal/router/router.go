// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ramink/movie-catalog/internal/handler"
)

// APIPrefix is the versioned prefix all movie routes live under.
const APIPrefix = "/api/v1"

// RegisterHealth registers the liveness and readiness probes at the root,
// outside the versioned prefix, so infrastructure can reach them without
// knowing the API version.
func RegisterHealth(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

// RegisterMovies registers the movie CRUD routes under the versioned prefix.
// The optional middleware (cache, rate limit) applies to this group only.
// The slug route is registered under its own path segment so it never
// collides with the id parameter.
func RegisterMovies(e *echo.Echo, h *handler.MovieHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group(APIPrefix, mw...)
	g.GET("/movies", h.ListMovies)
	g.POST("/movies", h.CreateMovie)
	g.GET("/movies/slug/:slug", h.GetMovieBySlug)
	g.GET("/movies/:id", h.GetMovie)
	g.PUT("/movies/:id", h.UpdateMovie)
	g.DELETE("/movies/:id", h.DeleteMovie)
}
