package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LogResult is a user's log after a LogQuery. User.Count stays the all-time
// total; Log holds only the entries that matched.
type LogResult struct {
	User *domain.User
	Log  []domain.LogEntry
}

// LogExport points at an uploaded JSON snapshot of a filtered log.
type LogExport struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

type LogService interface {
	GetLogs(ctx context.Context, userID string, query domain.LogQuery) (*LogResult, error)
	ExportLogs(ctx context.Context, userID string, query domain.LogQuery) (*LogExport, error)
}

type logService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage // nil disables exports
	urlTTL      time.Duration
	now         func() time.Time
}

// NewLogService creates the service. fileStorage may be nil when exports are not configured.
func NewLogService(userRepo repository.UserRepository, fileStorage storage.FileStorage, urlTTL time.Duration, now func() time.Time) LogService {
	if urlTTL <= 0 {
		urlTTL = storage.DefaultPresignedURLExpiry
	}
	if now == nil {
		now = time.Now
	}
	return &logService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		urlTTL:      urlTTL,
		now:         now,
	}
}

// GetLogs loads the user and applies query to the stored log.
func (s *logService) GetLogs(ctx context.Context, userID string, query domain.LogQuery) (*LogResult, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &LogResult{
		User: user,
		Log:  query.Apply(user.Log),
	}, nil
}

// exportDocument is the JSON written to object storage.
type exportDocument struct {
	ID         string            `json:"_id"`
	Username   string            `json:"username"`
	Count      int               `json:"count"`
	ExportedAt time.Time         `json:"exportedAt"`
	Log        []domain.LogEntry `json:"log"`
}

// ExportLogs uploads the filtered log as JSON and returns a presigned download URL.
func (s *logService) ExportLogs(ctx context.Context, userID string, query domain.LogQuery) (*LogExport, error) {
	if s.fileStorage == nil {
		return nil, ErrExportUnavailable
	}

	result, err := s.GetLogs(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.Marshal(exportDocument{
		ID:         result.User.ID.Hex(),
		Username:   result.User.Username,
		Count:      result.User.Count,
		ExportedAt: now,
		Log:        result.Log,
	})
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", result.User.ID.Hex(), uuid.NewString())
	if err := s.fileStorage.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.urlTTL)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &LogExport{
		Key:       key,
		URL:       url,
		ExpiresAt: now.Add(s.urlTTL),
	}, nil
}
