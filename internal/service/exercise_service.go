package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"math"
	"strings"
	"time"
)

// AddExerciseInput carries one exercise as submitted by a client.
// An empty Date means today.
type AddExerciseInput struct {
	Description string
	Duration    float64
	Date        string
}

type ExerciseService interface {
	AddExercise(ctx context.Context, userID string, input AddExerciseInput) (*domain.User, error)
}

type exerciseService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewExerciseService creates the service. now may be nil, in which case time.Now is used.
func NewExerciseService(userRepo repository.UserRepository, now func() time.Time) ExerciseService {
	if now == nil {
		now = time.Now
	}
	return &exerciseService{
		userRepo: userRepo,
		now:      now,
	}
}

// AddExercise normalizes the entry's date and appends it to the user's log.
// The returned user reflects the log after the append.
func (s *exerciseService) AddExercise(ctx context.Context, userID string, input AddExerciseInput) (*domain.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.buildEntry(input)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.AppendLogEntry(ctx, id, entry)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *exerciseService) buildEntry(input AddExerciseInput) (domain.LogEntry, error) {
	if strings.TrimSpace(input.Description) == "" {
		return domain.LogEntry{}, validationError("description is required")
	}
	if math.IsNaN(input.Duration) || math.IsInf(input.Duration, 0) || input.Duration <= 0 {
		return domain.LogEntry{}, validationError("duration must be a positive number of minutes")
	}

	date := domain.Today(s.now())
	if strings.TrimSpace(input.Date) != "" {
		normalized, err := domain.NormalizeDate(input.Date)
		if err != nil {
			return domain.LogEntry{}, validationError("date %q is not a recognizable calendar date", input.Date)
		}
		date = normalized
	}

	return domain.LogEntry{
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
	}, nil
}
