package services

import (
	"errors"

	apperrors "github.com/nfu-im/internship-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrConflict         = errors.New("resource conflict")

	// Login and session errors. ErrAccountNotFound and
	// ErrBadCredentials are deliberately distinct user-visible cases.
	ErrAccountNotFound  = errors.New("account does not exist")
	ErrBadCredentials   = errors.New("incorrect username or password")
	ErrNotAuthenticated = errors.New("login required")
	ErrRoleNotAllowed   = errors.New("role not allowed")

	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrDuplicateAccount    = errors.New("account already exists for this role")
	ErrUsernameTaken       = errors.New("username already used by another account")
	ErrOldPasswordMismatch = errors.New("old password does not match")
	ErrNotStudent          = errors.New("user is not a student")
	ErrNotTeacher          = errors.New("user is not a teacher or director")

	// Class assignment errors
	ErrClassNotFound       = errors.New("class not found")
	ErrDuplicateAssignment = errors.New("teacher already assigned to this class with this kind")
	ErrNotHomeroom         = errors.New("user is not a homeroom teacher")

	// Company errors
	ErrCompanyNotFound        = errors.New("company not found")
	ErrCompanyAlreadyReviewed = errors.New("company has already been reviewed")
	ErrCompanyNotApproved     = errors.New("company is not approved")

	// Resume errors
	ErrResumeNotFound     = errors.New("resume not found")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")

	// Preference errors
	ErrTooManyPreferences = errors.New("too many preferences submitted")
)

// ===== ERROR CLASSIFIERS =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// apperrorsFrom turns a go-playground validation error into the shared
// ValidationErrors type, falling back to the generic sentinel.
func apperrorsFrom(err error) error {
	if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
		return ve
	}
	return ErrValidationFailed
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrClassNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrResumeNotFound)
}

// IsUnauthorized checks if error represents an auth failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrBadCredentials) ||
		errors.Is(err, ErrNotAuthenticated)
}

// IsForbidden checks if error represents a permission failure
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotHomeroom) ||
		errors.Is(err, ErrOldPasswordMismatch)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrRoleNotAllowed) ||
		errors.Is(err, ErrNotStudent) ||
		errors.Is(err, ErrNotTeacher) ||
		errors.Is(err, ErrTooManyPreferences) ||
		errors.Is(err, ErrCompanyNotApproved) ||
		errors.Is(err, ErrFileTypeNotAllowed) {
		return true
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDuplicateAccount) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrDuplicateAssignment) ||
		errors.Is(err, ErrCompanyAlreadyReviewed)
}
