// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidAmount is returned when an XP amount is not a positive number.
	ErrInvalidAmount = errors.New("xp amount must be positive")

	// ErrInvalidGameResult is returned when a game result record is not valid.
	ErrInvalidGameResult = errors.New("invalid game result")

	// ErrInvalidLearnerCategory is returned when a learner category is not valid.
	ErrInvalidLearnerCategory = errors.New("invalid learner category")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
