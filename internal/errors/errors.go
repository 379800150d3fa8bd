package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for the contacts server. Handlers map these onto HTTP
// responses via Status and Message.
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrMissingToken       = errors.New("authorization token is missing")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found or invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotFound       = errors.New("user not found")

	// Password reset errors. Forged and expired tokens carry the same
	// user-visible message.
	ErrResetTokenInvalid = errors.New("reset token is expired or invalid")
	ErrResetTokenExpired = errors.New("reset token is expired or invalid")

	// Registration / input errors
	ErrEmailInUse = errors.New("email in use")
	ErrValidation = errors.New("invalid request")

	// Contact errors
	ErrContactNotFound = errors.New("contact not found")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Status returns the HTTP status code a domain error maps to. Unknown
// errors are treated as internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrMissingToken),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrResetTokenInvalid),
		errors.Is(err, ErrResetTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrContactNotFound),
		errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-visible message for an error. Errors that map to
// a 500 collapse to a generic message so internal details never reach the
// client.
func Message(err error) string {
	if Status(err) == http.StatusInternalServerError {
		return "Something went wrong"
	}
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
