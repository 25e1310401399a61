package repository

import (
	"alcyxob/exercise-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user records and their logs.
type UserRepository interface {
	// Create stores a new user and returns the assigned ID.
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// List returns every user in the store's natural order. Only ID and Username are populated.
	List(ctx context.Context) ([]domain.User, error)
	// AppendLogEntry appends entry to the user's log and increments count in one
	// atomic update, returning the user as it is after the update.
	AppendLogEntry(ctx context.Context, id primitive.ObjectID, entry domain.LogEntry) (*domain.User, error)
}
