// Package services defines the business logic for accounts, recipes, and
// ratings. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Account and session errors.
var (
	// ErrMissingFields is returned when a request omits a required field or
	// supplies it blank.
	ErrMissingFields = errors.New("required fields are missing")

	// ErrDuplicateEmail is returned when registering with an email that
	// already belongs to an account.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound indicates that no account exists for the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the password does not match
	// the stored hash.
	ErrInvalidCredentials = errors.New("incorrect password")
)

// Recipe errors.
var (
	// ErrRecipeNotFound indicates that the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrNotRecipeOwner is returned when an authenticated user attempts to
	// mutate or delete a recipe they do not own.
	ErrNotRecipeOwner = errors.New("not the recipe owner")
)

// Rating errors.
var (
	// ErrInvalidRating is returned when a rating value is outside the
	// allowed 1..5 range.
	ErrInvalidRating = errors.New("rating value must be between 1 and 5")

	// ErrSelfRating is returned when a user attempts to rate their own
	// recipe.
	ErrSelfRating = errors.New("cannot rate your own recipe")

	// ErrAlreadyRated is returned when a user attempts to rate a recipe
	// they have already rated.
	ErrAlreadyRated = errors.New("recipe already rated")
)

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
