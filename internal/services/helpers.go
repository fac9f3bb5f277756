package services

import (
	"errors"
	"fmt"
	"strings"

	"skillbridge/internal/models"
	"skillbridge/internal/storage"
)

// MapRepoError maps storage errors to service errors.
func MapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) || errors.Is(err, storage.ErrDuplicateUsername) || errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// NormalizeEmail lowercases and trims an email address. Natural-key matching
// across the two stores depends on this being applied everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidVerificationTransition enforces Pending -> Verified/Rejected, both
// terminal. Re-review is out of scope.
func isValidVerificationTransition(from, to models.VerificationStatus) bool {
	if from != models.VerificationPending {
		return false
	}
	return to == models.VerificationVerified || to == models.VerificationRejected
}

// isValidApplicationTransition enforces the decision flow on applications.
func isValidApplicationTransition(from, to models.ApplicationStatus) bool {
	switch from {
	case models.ApplicationPending:
		return to == models.ApplicationAccepted || to == models.ApplicationRejected
	case models.ApplicationAccepted:
		return to == models.ApplicationHired
	default:
		return false
	}
}

// isValidAttendanceTransition enforces Registered -> Attended -> Completed.
func isValidAttendanceTransition(from, to models.AttendanceStatus) bool {
	switch from {
	case models.AttendanceRegistered:
		return to == models.AttendanceAttended
	case models.AttendanceAttended:
		return to == models.AttendanceCompleted
	default:
		return false
	}
}
