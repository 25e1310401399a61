package service

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrValidationFailed  = errors.New("validation failed")
	ErrExportUnavailable = errors.New("log export is not configured")
)

// validationError wraps ErrValidationFailed with a caller-facing reason.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}

// parseUserID converts a hex id from the URL. An id that is not an ObjectID
// cannot name a stored user, so it is reported as not found.
func parseUserID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, ErrUserNotFound
	}
	return id, nil
}
