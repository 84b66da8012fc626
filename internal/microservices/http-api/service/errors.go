package service

import (
	"errors"

	"churchhub/internal/apperror"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = apperror.Unauthorized("Invalid credentials")
	ErrInvalidToken       = apperror.Unauthorized("Invalid or expired token")
	ErrAccountSuspended   = apperror.Unauthorized("Account suspended")
	ErrEmailInUse         = apperror.Conflict("Email already registered")
	ErrNotBranchScope     = apperror.Forbidden("Access denied for this branch")
)

// lookupError turns a repository read failure into a typed error:
// a missing row becomes NotFound with the given message, everything else Internal.
func lookupError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFound)
	}
	return apperror.Internal("database error", err)
}
