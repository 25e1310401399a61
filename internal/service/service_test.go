package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"alcyxob/exercise-tracker/internal/repository/memory"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, time.March, 15, 18, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// brokenRepo fails every call, standing in for an unreachable database.
type brokenRepo struct{ err error }

func (r brokenRepo) Create(context.Context, *domain.User) (primitive.ObjectID, error) {
	return primitive.NilObjectID, r.err
}
func (r brokenRepo) GetByID(context.Context, primitive.ObjectID) (*domain.User, error) {
	return nil, r.err
}
func (r brokenRepo) List(context.Context) ([]domain.User, error) { return nil, r.err }
func (r brokenRepo) AppendLogEntry(context.Context, primitive.ObjectID, domain.LogEntry) (*domain.User, error) {
	return nil, r.err
}

var _ repository.UserRepository = brokenRepo{}

type fakeStorage struct {
	objects map[string][]byte
	putErr  error
}

func (f *fakeStorage) PutObject(_ context.Context, key, contentType string, body []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[key] = body
	return nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	return fmt.Sprintf("https://bucket.example/%s?ttl=%s", key, expires), nil
}

func newUser(t *testing.T, repo repository.UserRepository, name string) string {
	t.Helper()
	u, err := NewUserService(repo).CreateUser(context.Background(), name)
	require.NoError(t, err)
	return u.ID.Hex()
}

func TestCreateUser(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewUserService(repo)

	a, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	b, err := svc.CreateUser(context.Background(), "alice")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID, "duplicate usernames still get distinct ids")
	assert.Equal(t, "alice", a.Username)
	assert.Zero(t, a.Count)
}

func TestCreateUserRequiresUsername(t *testing.T) {
	_, err := NewUserService(memory.NewUserRepository()).CreateUser(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateUserPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := NewUserService(brokenRepo{boom}).CreateUser(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
}

func TestListUsers(t *testing.T) {
	repo := memory.NewUserRepository()
	svc := NewUserService(repo)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	newUser(t, repo, "alice")
	newUser(t, repo, "bob")
	users, err = svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
}

func TestAddExerciseDefaultsToToday(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	svc := NewExerciseService(repo, clock)

	user, err := svc.AddExercise(context.Background(), id, AddExerciseInput{Description: "run", Duration: 30})
	require.NoError(t, err)

	latest, ok := user.Latest()
	require.True(t, ok)
	assert.Equal(t, "Fri Mar 15 2024", latest.Date)
	assert.Equal(t, float64(30), latest.Duration)
	assert.Equal(t, 1, user.Count)
}

func TestAddExerciseNormalizesDate(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	svc := NewExerciseService(repo, clock)

	for _, in := range []string{"2024-01-01", "January 1, 2024"} {
		user, err := svc.AddExercise(context.Background(), id, AddExerciseInput{Description: "run", Duration: 10, Date: in})
		require.NoError(t, err)
		latest, _ := user.Latest()
		assert.Equal(t, "Mon Jan 01 2024", latest.Date, "input %q", in)
	}
}

func TestAddExerciseIncrementsCount(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	svc := NewExerciseService(repo, clock)

	for i := 1; i <= 3; i++ {
		user, err := svc.AddExercise(context.Background(), id, AddExerciseInput{Description: "lift", Duration: 5})
		require.NoError(t, err)
		assert.Equal(t, i, user.Count)
		assert.Len(t, user.Log, user.Count)
	}
}

func TestAddExerciseValidation(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	svc := NewExerciseService(repo, clock)

	cases := map[string]AddExerciseInput{
		"missing description": {Duration: 10},
		"zero duration":       {Description: "run"},
		"negative duration":   {Description: "run", Duration: -4},
		"bad date":            {Description: "run", Duration: 4, Date: "someday"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddExercise(context.Background(), id, in)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}

	user, err := repo.GetByID(context.Background(), mustID(t, id))
	require.NoError(t, err)
	assert.Zero(t, user.Count, "rejected input must not be stored")
}

func TestAddExerciseUnknownUser(t *testing.T) {
	svc := NewExerciseService(memory.NewUserRepository(), clock)
	in := AddExerciseInput{Description: "run", Duration: 1}

	_, err := svc.AddExercise(context.Background(), primitive.NewObjectID().Hex(), in)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.AddExercise(context.Background(), "not-an-id", in)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetLogsKeepsTotalCount(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	ex := NewExerciseService(repo, clock)
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := ex.AddExercise(context.Background(), id, AddExerciseInput{Description: "run " + d, Duration: 10, Date: d})
		require.NoError(t, err)
	}

	q, err := domain.ParseLogQuery("2024-01-02", "", "")
	require.NoError(t, err)
	result, err := NewLogService(repo, nil, 0, clock).GetLogs(context.Background(), id, q)
	require.NoError(t, err)

	assert.Equal(t, 3, result.User.Count)
	require.Len(t, result.Log, 2)
	assert.Equal(t, "run 2024-01-02", result.Log[0].Description)
	assert.Equal(t, "run 2024-01-03", result.Log[1].Description)
}

func TestGetLogsUnknownUser(t *testing.T) {
	_, err := NewLogService(memory.NewUserRepository(), nil, 0, clock).GetLogs(context.Background(), primitive.NewObjectID().Hex(), domain.LogQuery{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExportLogsDisabled(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	_, err := NewLogService(repo, nil, 0, clock).ExportLogs(context.Background(), id, domain.LogQuery{})
	assert.ErrorIs(t, err, ErrExportUnavailable)
}

func TestExportLogs(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	ex := NewExerciseService(repo, clock)
	for _, d := range []string{"2024-01-01", "2024-01-02"} {
		_, err := ex.AddExercise(context.Background(), id, AddExerciseInput{Description: "row", Duration: 12, Date: d})
		require.NoError(t, err)
	}

	store := &fakeStorage{}
	export, err := NewLogService(repo, store, 10*time.Minute, clock).ExportLogs(context.Background(), id, domain.LogQuery{Limit: 1})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(export.Key, "exports/"+id+"/"))
	assert.Contains(t, export.URL, export.Key)
	assert.Equal(t, fixedNow.Add(10*time.Minute), export.ExpiresAt)

	var doc struct {
		ID    string            `json:"_id"`
		Count int               `json:"count"`
		Log   []domain.LogEntry `json:"log"`
	}
	require.NoError(t, json.Unmarshal(store.objects[export.Key], &doc))
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, 2, doc.Count)
	require.Len(t, doc.Log, 1)
	assert.Equal(t, "Mon Jan 01 2024", doc.Log[0].Date)
}

func TestExportLogsUploadFailure(t *testing.T) {
	repo := memory.NewUserRepository()
	id := newUser(t, repo, "alice")
	boom := errors.New("bucket gone")

	_, err := NewLogService(repo, &fakeStorage{putErr: boom}, 0, clock).ExportLogs(context.Background(), id, domain.LogQuery{})
	assert.ErrorIs(t, err, boom)
}

func mustID(t *testing.T, hex string) primitive.ObjectID {
	t.Helper()
	id, err := primitive.ObjectIDFromHex(hex)
	require.NoError(t, err)
	return id
}
