// Package service holds the business-rule layer between handlers and the
// repository. It is stateless orchestration: every persistence call goes
// through the repository, and this is the only place where a neutral
// "not found" result from the repository becomes a request-level failure.
package service

import (
	"context"

	"github.com/ramink/movie-catalog/internal/errs"
	"github.com/ramink/movie-catalog/internal/model"
)

// MovieRepository is the persistence surface the service depends on. The
// concrete implementation lives in the repository package; tests substitute
// a fake.
type MovieRepository interface {
	Create(ctx context.Context, in *model.MovieCreate) (*model.Movie, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	GetBySlug(ctx context.Context, slug string) (*model.Movie, error)
	GetMany(ctx context.Context, f *model.MovieFilters) ([]*model.Movie, error)
	Count(ctx context.Context, f *model.MovieFilters) (int64, error)
	Update(ctx context.Context, id string, in *model.MovieUpdate) (*model.Movie, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// MovieService implements the movie use cases.
type MovieService struct {
	repo MovieRepository
}

// NewMovieService constructs a MovieService over the given repository.
func NewMovieService(repo MovieRepository) *MovieService {
	return &MovieService{repo: repo}
}

// CreateMovie persists a new movie from the validated input.
func (s *MovieService) CreateMovie(ctx context.Context, in *model.MovieCreate) (*model.Movie, error) {
	return s.repo.Create(ctx, in)
}

// GetMovie returns the movie with the given id or a NotFoundError.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	movie, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, errs.NewNotFound("Movie with id %s not found", id)
	}
	return movie, nil
}

// GetMovieBySlug returns the movie with the given slug or a NotFoundError.
func (s *MovieService) GetMovieBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	movie, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, errs.NewNotFound("Movie with slug %s not found", slug)
	}
	return movie, nil
}

// GetMovies returns one page of movies matching the filters together with
// the total match count, which does not depend on the page size.
func (s *MovieService) GetMovies(ctx context.Context, f *model.MovieFilters) ([]*model.Movie, int64, error) {
	movies, err := s.repo.GetMany(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return movies, total, nil
}

// UpdateMovie applies a partial update and returns the updated record, or a
// NotFoundError when no movie matches the id.
func (s *MovieService) UpdateMovie(ctx context.Context, id string, in *model.MovieUpdate) (*model.Movie, error) {
	movie, err := s.repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, errs.NewNotFound("Movie with id %s not found", id)
	}
	return movie, nil
}

// DeleteMovie removes the movie with the given id, returning a NotFoundError
// when nothing was deleted.
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewNotFound("Movie with id %s not found", id)
	}
	return nil
}
