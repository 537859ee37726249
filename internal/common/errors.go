package common

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Page errors
	ErrPageNotFound    = errors.New("page not found")
	ErrVersionNotFound = errors.New("page version not found")
	ErrNoDraftVersion  = errors.New("page has no draft version")
	ErrDraftExists     = errors.New("page already has a draft version")

	// Override errors
	ErrOverrideNotFound     = errors.New("content override not found")
	ErrThemeDefaultNotFound = errors.New("theme default not found")

	// Domain errors (business-rule / constraint violations)
	ErrDomain = errors.New("domain rule violated")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Request lifecycle
	ErrCancelled = errors.New("request cancelled")
)

// TranslateDBError maps store-level failures onto the business error taxonomy.
// Unique-key violations become ErrDomain (a losing concurrent writer must see
// a domain failure, not a crash), missing rows become ErrNotFound and an
// observed context cancellation becomes ErrCancelled. Anything else passes
// through unchanged and is surfaced as unexpected.
func TranslateDBError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCancelled
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDomain
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
