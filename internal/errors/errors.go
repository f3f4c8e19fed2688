package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes attached to structured failures.
const (
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("User not found")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid email or password")
	// ErrMissingAccountID is returned when message retrieval is called without an id.
	ErrMissingAccountID = errors.New("UserId query parameter is required")
	// ErrEmailAlreadyExists is returned when the normalized email is already registered.
	ErrEmailAlreadyExists = &ConflictError{
		Code:    CodeEmailAlreadyExists,
		Field:   "email",
		Message: "User with this email already exists",
	}
)

// ValidationError lists every violated field rule of a request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// ConflictError reports a caller-correctable clash with existing state.
type ConflictError struct {
	Code    string
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Is matches any ConflictError carrying the same code.
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// StorageError wraps a failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err as a storage failure of operation op.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Message   string   `json:"message"`
	Errors    []string `json:"errors,omitempty"`
	ErrorCode string   `json:"errorCode,omitempty"`
	Field     string   `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Body       ErrorResponse
}

func (e *HTTPError) Error() string {
	return e.Body.Message
}

// NewHTTPError creates a new HTTP error with a plain message body.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Body:       ErrorResponse{Message: message},
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Storage and unknown failures collapse into an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	var conflictErr *ConflictError

	switch {
	case errors.As(err, &validationErr):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Body: ErrorResponse{
				Message: "Validation failed",
				Errors:  validationErr.Messages,
			},
		}
	case errors.As(err, &conflictErr):
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Body: ErrorResponse{
				Message:   conflictErr.Message,
				ErrorCode: conflictErr.Code,
				Field:     conflictErr.Field,
			},
		}
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error())
	case errors.Is(err, ErrMissingAccountID):
		return NewHTTPError(http.StatusBadRequest, ErrMissingAccountID.Error())
	case errors.Is(err, ErrAccountNotFound):
		return NewHTTPError(http.StatusNotFound, ErrAccountNotFound.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
