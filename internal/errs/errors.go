// Package errs defines the error taxonomy shared by the repository, service
// and handler layers. Repositories wrap every store failure into a
// DatabaseError, services turn absence into a NotFoundError, and the HTTP
// error handler is the single place these types become status codes.
package errs

import "fmt"

// FieldError describes a single constraint violation on a named input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports one or more field-level constraint violations in a
// request payload or query string. Handlers map it to HTTP 422.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	return fmt.Sprintf("validation error: %s %s", e.Fields[0].Field, e.Fields[0].Message)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// NotFoundError signals that a requested entity does not exist. It is raised
// by the service layer only; repositories report absence with a nil result.
// Handlers map it to HTTP 404.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFound formats a NotFoundError message.
func NewNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// BadRequestError signals a structurally malformed request that never reached
// schema validation, such as an unparsable JSON body. Handlers map it to
// HTTP 400.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

// DatabaseError wraps a store-level failure. The raw driver error never
// crosses the repository boundary on its own; it travels inside this type so
// the error handler can log the cause and return a generic 500.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// NewDatabase wraps err with the failed operation name.
func NewDatabase(op string, err error) *DatabaseError {
	return &DatabaseError{Op: op, Err: err}
}
