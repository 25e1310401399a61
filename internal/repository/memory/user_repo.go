// Package memory provides an in-process UserRepository for tests and local runs.
package memory

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository keeps users in a map and remembers insertion order for List.
type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*domain.User
	order []primitive.ObjectID
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[primitive.ObjectID]*domain.User),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = primitive.NewObjectID()
	if user.Log == nil {
		user.Log = []domain.LogEntry{}
	}
	user.Count = len(user.Log)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = cloneUser(user)
	r.order = append(r.order, user.ID)
	return user.ID, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		users = append(users, domain.User{ID: u.ID, Username: u.Username})
	}
	return users, nil
}

func (r *UserRepository) AppendLogEntry(ctx context.Context, id primitive.ObjectID, entry domain.LogEntry) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user.Log = append(user.Log, entry)
	user.Count++
	user.UpdatedAt = time.Now().UTC()
	return cloneUser(user), nil
}

// cloneUser copies the log so callers never share backing arrays with the store.
func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Log = append(make([]domain.LogEntry, 0, len(u.Log)), u.Log...)
	return &c
}
