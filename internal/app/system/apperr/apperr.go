// Package apperr defines the error kinds the API reports and their stable
// HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a request failure.
type Kind int

const (
	// StoreFailure is the zero value so that unclassified errors are treated
	// as internal failures.
	StoreFailure Kind = iota
	Validation
	Conflict
	Unauthenticated
	InvalidCredentials
	Forbidden
	NotFound
	PrincipalNotFound
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation_error"
	case Conflict:
		return "conflict"
	case Unauthenticated:
		return "unauthenticated"
	case InvalidCredentials:
		return "invalid_credentials"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case PrincipalNotFound:
		return "principal_not_found"
	default:
		return "store_failure"
	}
}

// Status maps a kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case Unauthenticated, InvalidCredentials:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound, PrincipalNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// GenericMessage is what clients see for a StoreFailure.
const GenericMessage = "Internal server error"

// Error is a classified request failure. Message is safe to show to clients;
// Err, when set, is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// ValidationError reports missing or malformed input.
func ValidationError(msg string) *Error { return newErr(Validation, msg) }

// ConflictError reports a uniqueness violation on an email or explicit id.
func ConflictError(msg string) *Error { return newErr(Conflict, msg) }

// UnauthenticatedError reports a missing or invalid token.
func UnauthenticatedError(msg string) *Error { return newErr(Unauthenticated, msg) }

// InvalidCredentialsError reports a failed login without saying which part was wrong.
func InvalidCredentialsError(msg string) *Error { return newErr(InvalidCredentials, msg) }

// ForbiddenError reports a valid principal lacking role or ownership.
func ForbiddenError(msg string) *Error { return newErr(Forbidden, msg) }

// NotFoundError reports an absent resource.
func NotFoundError(msg string) *Error { return newErr(NotFound, msg) }

// PrincipalNotFoundError reports a valid token whose principal no longer exists.
func PrincipalNotFoundError(msg string) *Error { return newErr(PrincipalNotFound, msg) }

// Store wraps a persistence error. The cause is kept for logging only.
func Store(err error) *Error {
	return &Error{Kind: StoreFailure, Message: GenericMessage, Err: err}
}

// As extracts an *Error from err. Anything else is reported as a
// StoreFailure wrapping err.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Store(err)
}
