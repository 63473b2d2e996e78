package locker

import (
	"context"
	"fmt"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lockService guards a key with a random token written by SET NX. Only the request
// holding the token may release it; an expired lock simply disappears.
type lockService struct {
	store contracts.RedisRepository
	Log   *zap.Logger
}

func NewLockService(store contracts.RedisRepository, logger *zap.Logger) contracts.LockerService {
	return &lockService{
		store: store,
		Log:   logger,
	}
}

func (s *lockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	token := uuid.NewString()
	acquired, err := s.store.TrySetNX(ctx, key, token, expiration)
	if err != nil {
		s.Log.Error("lockService.TryLock error calling store.TrySetNX",
			s.fields(ctx, key, zap.Error(err))...,
		)
		return false, "", err
	}
	if !acquired {
		s.Log.Info("lockService.TryLock lock held elsewhere", s.fields(ctx, key)...)
		return false, "", nil
	}

	s.Log.Debug("lockService.TryLock acquired",
		s.fields(ctx, key,
			zap.String(constvars.LoggingLockValueKey, token),
			zap.Duration(constvars.LoggingLockExpirationKey, expiration),
		)...,
	)
	return true, token, nil
}

// Unlock is a no-op when the lock already expired and an error when another token
// holds it.
func (s *lockService) Unlock(ctx context.Context, key, token string) error {
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		s.Log.Error("lockService.Unlock error calling store.Get", s.fields(ctx, key, zap.Error(err))...)
		return err
	}
	if stored == "" {
		s.Log.Info("lockService.Unlock lock already expired", s.fields(ctx, key)...)
		return nil
	}

	if !ownedBy(stored, token) {
		err := exceptions.ErrRedisUnlock(fmt.Errorf("lock on %s not owned by this client", key))
		s.Log.Error("lockService.Unlock ownership mismatch", s.fields(ctx, key, zap.Error(err))...)
		return err
	}

	if err := s.store.Delete(ctx, key); err != nil {
		s.Log.Error("lockService.Unlock error calling store.Delete", s.fields(ctx, key, zap.Error(err))...)
		return err
	}
	s.Log.Debug("lockService.Unlock released", s.fields(ctx, key)...)
	return nil
}

func (s *lockService) fields(ctx context.Context, key string, extra ...zap.Field) []zap.Field {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return append([]zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedisKey, key),
	}, extra...)
}

// ownedBy reports whether a stored lock value, JSON encoded by the store, is token.
func ownedBy(stored, token string) bool {
	var holder string
	if err := json.Unmarshal([]byte(stored), &holder); err != nil {
		return false
	}
	return holder == token
}
