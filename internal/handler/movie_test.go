package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramink/movie-catalog/internal/errs"
	"github.com/ramink/movie-catalog/internal/handler"
	"github.com/ramink/movie-catalog/internal/model"
	"github.com/ramink/movie-catalog/internal/router"
)

// fakeService implements handler.MovieService through function fields so each
// test controls exactly the call it expects.
type fakeService struct {
	createFn    func(ctx context.Context, in *model.MovieCreate) (*model.Movie, error)
	getFn       func(ctx context.Context, id string) (*model.Movie, error)
	getBySlugFn func(ctx context.Context, slug string) (*model.Movie, error)
	listFn      func(ctx context.Context, f *model.MovieFilters) ([]*model.Movie, int64, error)
	updateFn    func(ctx context.Context, id string, in *model.MovieUpdate) (*model.Movie, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (f *fakeService) CreateMovie(ctx context.Context, in *model.MovieCreate) (*model.Movie, error) {
	return f.createFn(ctx, in)
}
func (f *fakeService) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	return f.getFn(ctx, id)
}
func (f *fakeService) GetMovieBySlug(ctx context.Context, slug string) (*model.Movie, error) {
	return f.getBySlugFn(ctx, slug)
}
func (f *fakeService) GetMovies(ctx context.Context, filters *model.MovieFilters) ([]*model.Movie, int64, error) {
	return f.listFn(ctx, filters)
}
func (f *fakeService) UpdateMovie(ctx context.Context, id string, in *model.MovieUpdate) (*model.Movie, error) {
	return f.updateFn(ctx, id, in)
}
func (f *fakeService) DeleteMovie(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func newTestServer(svc handler.MovieService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler()
	router.RegisterMovies(e, handler.NewMovieHandler(svc))
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleMovie() *model.Movie {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &model.Movie{
		ID:             "665f1f77bcf86cd799439011",
		Name:           "Test Movie",
		Casts:          []string{"Actor 1", "Actor 2"},
		Genres:         []string{"Action", "Drama"},
		Year:           2024,
		Slug:           "test-movie",
		Classification: []model.Classification{},
		CreatedAt:      created,
	}
}

func decodeErrorField(t *testing.T, rec *httptest.ResponseRecorder) (string, []errs.FieldError) {
	t.Helper()
	var body struct {
		Error struct {
			Message string            `json:"message"`
			Detail  []errs.FieldError `json:"detail"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message, body.Error.Detail
}

func TestListMovies(t *testing.T) {
	t.Run("returns page and total count", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(_ context.Context, f *model.MovieFilters) ([]*model.Movie, int64, error) {
				assert.Equal(t, model.DefaultLimit, f.Limit)
				return []*model.Movie{sampleMovie()}, 7, nil
			},
		}
		rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body model.MoviesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Movies, 1)
		assert.Equal(t, int64(7), body.MoviesCount)
	})

	t.Run("query filters are forwarded", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(_ context.Context, f *model.MovieFilters) ([]*model.Movie, int64, error) {
				assert.Equal(t, "matrix", f.Title)
				assert.Equal(t, []string{"Action", "Sci-Fi"}, f.Genres)
				assert.Equal(t, 50, f.Limit)
				assert.Equal(t, 10, f.Offset)
				require.NotNil(t, f.YearMin)
				assert.Equal(t, 1990, *f.YearMin)
				return []*model.Movie{}, 0, nil
			},
		}
		rec := do(newTestServer(svc), http.MethodGet,
			"/api/v1/movies?title=matrix&genres=Action,Sci-Fi&limit=50&offset=10&year_min=1990", "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("limit out of range is a 422 naming the field", func(t *testing.T) {
		svc := &fakeService{
			listFn: func(context.Context, *model.MovieFilters) ([]*model.Movie, int64, error) {
				t.Fatal("service must not be called on invalid filters")
				return nil, 0, nil
			},
		}
		rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies?limit=150", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, detail := decodeErrorField(t, rec)
		require.Len(t, detail, 1)
		assert.Equal(t, "limit", detail[0].Field)
	})

	t.Run("non-numeric limit is a 422", func(t *testing.T) {
		svc := &fakeService{}
		rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies?limit=abc", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, detail := decodeErrorField(t, rec)
		require.Len(t, detail, 1)
		assert.Equal(t, "limit", detail[0].Field)
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeService{
			getFn: func(_ context.Context, id string) (*model.Movie, error) {
				assert.Equal(t, "665f1f77bcf86cd799439011", id)
				return sampleMovie(), nil
			},
		}
		rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies/665f1f77bcf86cd799439011", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body model.MovieResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "test-movie", body.Movie.Slug)
		assert.Nil(t, body.Movie.UpdatedAt)
	})

	t.Run("absent is a 404 with message", func(t *testing.T) {
		svc := &fakeService{
			getFn: func(_ context.Context, id string) (*model.Movie, error) {
				return nil, errs.NewNotFound("Movie with id %s not found", id)
			},
		}
		rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies/deadbeef", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		msg, _ := decodeErrorField(t, rec)
		assert.Equal(t, "Movie with id deadbeef not found", msg)
	})

	t.Run("database failure is a generic 500", func(t *testing.T) {
		svc := &fakeService{
			getFn: func(context.Context, string) (*model.Movie, error) {
				return nil, errs.NewDatabase("get movie by id", context.DeadlineExceeded)
			},
		}
		rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies/abc", "")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		msg, _ := decodeErrorField(t, rec)
		assert.Equal(t, "internal server error", msg)
		assert.NotContains(t, rec.Body.String(), "deadline")
	})
}

func TestGetMovieBySlug(t *testing.T) {
	svc := &fakeService{
		getBySlugFn: func(_ context.Context, slug string) (*model.Movie, error) {
			assert.Equal(t, "test-movie", slug)
			return sampleMovie(), nil
		},
	}
	rec := do(newTestServer(svc), http.MethodGet, "/api/v1/movies/slug/test-movie", "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateMovie(t *testing.T) {
	t.Run("valid payload is normalized and created", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(_ context.Context, in *model.MovieCreate) (*model.Movie, error) {
				assert.Equal(t, "Test Movie", in.Name)
				assert.Equal(t, []string{"Actor 1", "Actor 2"}, in.Casts)
				return sampleMovie(), nil
			},
		}
		payload := `{"name":"  Test Movie  ","casts":["Actor 1"," Actor 2 "],"genres":["Action","Drama"],"year":2024}`
		rec := do(newTestServer(svc), http.MethodPost, "/api/v1/movies", payload)
		require.Equal(t, http.StatusCreated, rec.Code)

		var body model.MovieResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "test-movie", body.Movie.Slug)
	})

	t.Run("year out of range is a 422 naming the field", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(context.Context, *model.MovieCreate) (*model.Movie, error) {
				t.Fatal("service must not be called on invalid input")
				return nil, nil
			},
		}
		rec := do(newTestServer(svc), http.MethodPost, "/api/v1/movies", `{"name":"Old","year":1800}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		_, detail := decodeErrorField(t, rec)
		require.Len(t, detail, 1)
		assert.Equal(t, "year", detail[0].Field)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		svc := &fakeService{}
		rec := do(newTestServer(svc), http.MethodPost, "/api/v1/movies", `{"name":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateMovie(t *testing.T) {
	t.Run("partial update forwards only present fields", func(t *testing.T) {
		svc := &fakeService{
			updateFn: func(_ context.Context, id string, in *model.MovieUpdate) (*model.Movie, error) {
				require.NotNil(t, in.Name)
				assert.Equal(t, "Updated Movie Name", *in.Name)
				assert.Nil(t, in.Year)
				assert.Nil(t, in.Casts)
				updated := sampleMovie()
				updated.Name = *in.Name
				updated.Slug = "updated-movie-name"
				now := time.Now().UTC()
				updated.UpdatedAt = &now
				return updated, nil
			},
		}
		rec := do(newTestServer(svc), http.MethodPut, "/api/v1/movies/665f1f77bcf86cd799439011",
			`{"name":"Updated Movie Name"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body model.MovieResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "updated-movie-name", body.Movie.Slug)
		assert.Equal(t, 2024, body.Movie.Year)
		assert.NotNil(t, body.Movie.UpdatedAt)
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		svc := &fakeService{
			updateFn: func(_ context.Context, id string, _ *model.MovieUpdate) (*model.Movie, error) {
				return nil, errs.NewNotFound("Movie with id %s not found", id)
			},
		}
		rec := do(newTestServer(svc), http.MethodPut, "/api/v1/movies/665f1f77bcf86cd799439099", `{"year":2000}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteMovie(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		svc := &fakeService{
			deleteFn: func(_ context.Context, id string) error {
				assert.Equal(t, "665f1f77bcf86cd799439011", id)
				return nil
			},
		}
		rec := do(newTestServer(svc), http.MethodDelete, "/api/v1/movies/665f1f77bcf86cd799439011", "")
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		svc := &fakeService{
			deleteFn: func(_ context.Context, id string) error {
				return errs.NewNotFound("Movie with id %s not found", id)
			},
		}
		rec := do(newTestServer(svc), http.MethodDelete, "/api/v1/movies/665f1f77bcf86cd799439099", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
