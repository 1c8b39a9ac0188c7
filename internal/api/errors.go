// Package api provides HTTP handlers for the API.
package api

import (
	"errors"
	"net/http"

	"github.com/dvdgamer2003/learntrack-api/internal/domain"
	"github.com/dvdgamer2003/learntrack-api/internal/service/auth"
	"github.com/dvdgamer2003/learntrack-api/internal/service/progress"
	"github.com/dvdgamer2003/learntrack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrProgressNotFound),
		errors.Is(err, store.ErrGameResultNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, progress.ErrProgressNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, progress.ErrConflict),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, progress.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidGameResult),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProgressNotFound),
		errors.Is(err, progress.ErrProgressNotFound):
		return "Progress not found"

	case errors.Is(err, store.ErrGameResultNotFound):
		return "No game results recorded"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, progress.ErrConflict),
		errors.Is(err, store.ErrConflict):
		return "The record was modified concurrently; please retry"

	case errors.Is(err, progress.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAmount):
		return "XP amount must be a positive number"

	case errors.Is(err, domain.ErrInvalidGameResult):
		return "Invalid game result"

	default:
		return "An unexpected error occurred"
	}
}
