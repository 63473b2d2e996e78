package intakes

import (
	"context"
	"homecare-service/internal/app/config"
	"homecare-service/internal/app/services/shared/drafts"
	"homecare-service/internal/app/services/shared/jwtmanager"
	"homecare-service/internal/app/services/shared/locker"
	"homecare-service/internal/app/services/shared/submission"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/intake"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// sharedRedis is a goroutine-safe in-memory store with the same JSON encoding as the
// real Redis repository, shared by drafts and locks like a single Redis instance.
type sharedRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newSharedRedis() *sharedRedis {
	return &sharedRedis{data: map[string]string{}}
}

func (r *sharedRedis) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *sharedRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = string(raw)
	return nil
}

func (r *sharedRedis) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[key], nil
}

func (r *sharedRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; ok {
		return false, nil
	}
	r.data[key] = string(raw)
	return true, nil
}

func newRedisBackedUsecase(t *testing.T, store *sharedRedis, client *MockSubmissionClient) (*intakeUsecase, *drafts.RedisRepository) {
	t.Helper()

	jwtManager, err := jwtmanager.NewJWTManager("test-secret", time.Hour, zap.NewNop())
	require.NoError(t, err)

	catalog := intake.DefaultCatalog()
	gate := intake.NewGate(intake.GateConfig{})
	repo := drafts.NewRedisRepository(store, intake.NewValidator(catalog), gate, time.Hour, zap.NewNop())

	uc := NewIntakeUsecase(
		catalog,
		gate,
		repo,
		client,
		jwtManager,
		locker.NewLockService(store, zap.NewNop()),
		nil,
		nil,
		&config.InternalConfig{Intake: config.AppIntake{SubmitLockTTLInSeconds: 30}},
		zap.NewNop(),
	).(*intakeUsecase)
	uc.now = func() time.Time { return fixedNow }
	return uc, repo
}

func TestIntakeUsecase_RedisBacked_UpdateDuringSubmitIsRejected(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	client := new(MockSubmissionClient)
	client.On("Submit", mock.Anything, mock.Anything, "").
		Run(func(args mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(nil, &submission.SubmissionError{Kind: submission.FailureServer, Message: constvars.ErrClientSubmissionFailed}).Once()

	uc, _ := newRedisBackedUsecase(t, newSharedRedis(), client)
	draftID := createValidDraft(t, uc)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := uc.SubmitDraft(ctx, &requests.SubmitIntakeDraft{DraftID: draftID})
		done <- err
	}()
	<-entered

	_, err := uc.UpdateDraft(ctx, &requests.UpdateIntakeDraft{
		Fields:  map[string]interface{}{"city": "Salem"},
		DraftID: draftID,
	})
	customErr := requireCustomError(t, err, constvars.StatusConflict)
	assert.Equal(t, constvars.ErrClientSubmissionInFlight, customErr.ClientMessage)

	close(release)
	requireCustomError(t, <-done, constvars.StatusBadGateway)

	draft, err := uc.FindDraft(ctx, &requests.FindIntakeDraft{DraftID: draftID})
	require.NoError(t, err)
	assert.Equal(t, string(intake.StatusIdle), draft.Status)
	assert.Equal(t, "Portland", draft.Values["city"])
	assert.Equal(t, constvars.ErrClientSubmissionFailed, draft.LastFailure)

	updated, err := uc.UpdateDraft(ctx, &requests.UpdateIntakeDraft{
		Fields:  map[string]interface{}{"city": "Salem"},
		DraftID: draftID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Salem", updated.Values["city"])

	draft, err = uc.FindDraft(ctx, &requests.FindIntakeDraft{DraftID: draftID})
	require.NoError(t, err)
	assert.Equal(t, "Salem", draft.Values["city"])
}

func TestIntakeUsecase_RedisBacked_UpdateRejectedWhileLockHeld(t *testing.T) {
	store := newSharedRedis()
	uc, _ := newRedisBackedUsecase(t, store, new(MockSubmissionClient))
	draftID := createValidDraft(t, uc)
	ctx := context.Background()

	lockKey := constvars.RedisKeySubmitLockPrefix + draftID
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = uc.UpdateDraft(ctx, &requests.UpdateIntakeDraft{
		Fields:  map[string]interface{}{"city": "Salem"},
		DraftID: draftID,
	})
	requireCustomError(t, err, constvars.StatusConflict)

	require.NoError(t, uc.Locker.Unlock(ctx, lockKey, lockValue))
	_, err = uc.UpdateDraft(ctx, &requests.UpdateIntakeDraft{
		Fields:  map[string]interface{}{"city": "Salem"},
		DraftID: draftID,
	})
	require.NoError(t, err)
}

func TestIntakeUsecase_RedisBacked_AbandonedSubmitIsRecovered(t *testing.T) {
	uc, repo := newRedisBackedUsecase(t, newSharedRedis(), new(MockSubmissionClient))
	draftID := createValidDraft(t, uc)
	ctx := context.Background()

	// In flight in the store, with no lock: the request that set it is gone.
	stale, err := repo.FindByID(ctx, draftID)
	require.NoError(t, err)
	require.NoError(t, stale.BeginSubmit())
	require.NoError(t, repo.Save(ctx, stale))

	updated, err := uc.UpdateDraft(ctx, &requests.UpdateIntakeDraft{
		Fields:  map[string]interface{}{"city": "Salem"},
		DraftID: draftID,
	})
	require.NoError(t, err)
	assert.Equal(t, string(intake.StatusIdle), updated.Status)
	assert.Equal(t, "Salem", updated.Values["city"])
	assert.Equal(t, constvars.ErrClientSubmissionFailed, updated.LastFailure)
}
