package locker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func TestLockService_TryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("Acquired", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "intake:submit:d1", mock.AnythingOfType("string"), 30*time.Second).Return(true, nil)

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, "intake:submit:d1", 30*time.Second)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NotEmpty(t, value)
	})

	t.Run("Held by someone else", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "k", mock.Anything, time.Second).Return(false, nil)

		acquired, value, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, "k", time.Second)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.Empty(t, value)
	})

	t.Run("Redis error", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("TrySetNX", ctx, "k", mock.Anything, time.Second).Return(false, fmt.Errorf("connection refused"))

		_, _, err := NewLockService(repo, zap.NewNop()).TryLock(ctx, "k", time.Second)

		assert.Error(t, err)
	})
}

func TestLockService_Unlock(t *testing.T) {
	ctx := context.Background()

	t.Run("Owner releases", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, "k").Return(`"owner"`, nil)
		repo.On("Delete", ctx, "k").Return(nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "owner")

		require.NoError(t, err)
		repo.AssertCalled(t, "Delete", ctx, "k")
	})

	t.Run("Expired lock is a no-op", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, "k").Return("", nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "owner")

		require.NoError(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Someone else's lock is left alone", func(t *testing.T) {
		repo := new(MockRedisRepository)
		repo.On("Get", ctx, "k").Return(`"other"`, nil)

		err := NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "owner")

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestLockService_UnlockStoreError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRedisRepository)
	repo.On("Get", ctx, "k").Return("", fmt.Errorf("connection refused"))

	err := NewLockService(repo, zap.NewNop()).Unlock(ctx, "k", "owner")

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOwnedBy(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		token  string
		want   bool
	}{
		{name: "matching token", stored: `"owner"`, token: "owner", want: true},
		{name: "other token", stored: `"other"`, token: "owner", want: false},
		{name: "unquoted value", stored: "owner", token: "owner", want: false},
		{name: "not a string", stored: `{"token":"owner"}`, token: "owner", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ownedBy(tt.stored, tt.token))
		})
	}
}
