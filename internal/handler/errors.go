package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/ramink/movie-catalog/internal/errs"
)

// errorDetail is the body of every error response. Detail is present only on
// validation failures and lists the offending fields.
type errorDetail struct {
	Message    string            `json:"message"`
	StatusCode int               `json:"status_code"`
	Detail     []errs.FieldError `json:"detail,omitempty"`
}

// errorResponse wraps the detail under an "error" key.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// NewHTTPErrorHandler returns the central echo error handler. It is the only
// place errors become wire status codes: each type in the errs taxonomy maps
// to exactly one status, and anything unmapped becomes a 500 with a generic
// body. Database causes are logged here, never sent to the client.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		body := errorDetail{Message: "internal server error"}

		var (
			validationErr *errs.ValidationError
			notFoundErr   *errs.NotFoundError
			badRequestErr *errs.BadRequestError
			databaseErr   *errs.DatabaseError
			httpErr       *echo.HTTPError
		)
		switch {
		case errors.As(err, &validationErr):
			status = http.StatusUnprocessableEntity
			body = errorDetail{Message: "Validation error", Detail: validationErr.Fields}
		case errors.As(err, &notFoundErr):
			status = http.StatusNotFound
			body = errorDetail{Message: notFoundErr.Message}
		case errors.As(err, &badRequestErr):
			status = http.StatusBadRequest
			body = errorDetail{Message: badRequestErr.Message}
		case errors.As(err, &databaseErr):
			log.Errorf("%v", databaseErr)
		case errors.As(err, &httpErr):
			status = httpErr.Code
			body = errorDetail{Message: fmt.Sprintf("%v", httpErr.Message)}
		default:
			log.Errorf("unhandled error: %v", err)
		}
		body.StatusCode = status

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorResponse{Error: body})
		}
		if writeErr != nil {
			log.Errorf("writing error response: %v", writeErr)
		}
	}
}
