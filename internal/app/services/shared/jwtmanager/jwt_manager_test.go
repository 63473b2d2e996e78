package jwtmanager

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewJWTManager_RequiresSecret(t *testing.T) {
	_, err := NewJWTManager(" ", time.Hour, zap.NewNop())
	assert.Error(t, err)
}

func TestJWTManager_RoundTrip(t *testing.T) {
	manager, err := NewJWTManager("s3cret", time.Hour, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	created, err := manager.CreateToken(ctx, &CreateTokenInput{DraftID: "draft-1"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), created.ExpiresAt, 5*time.Second)

	verified, err := manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
	require.NoError(t, err)
	assert.Equal(t, "draft-1", verified.DraftID)
}

func TestJWTManager_Rejects(t *testing.T) {
	ctx := context.Background()
	manager, err := NewJWTManager("s3cret", time.Hour, zap.NewNop())
	require.NoError(t, err)

	t.Run("Empty draft id", func(t *testing.T) {
		_, err := manager.CreateToken(ctx, &CreateTokenInput{})
		assert.Error(t, err)
	})

	t.Run("Empty token", func(t *testing.T) {
		_, err := manager.VerifyToken(ctx, &VerifyTokenInput{})
		assert.ErrorIs(t, err, ErrInvalidDraftSession)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other, _ := NewJWTManager("other", time.Hour, zap.NewNop())
		created, err := other.CreateToken(ctx, &CreateTokenInput{DraftID: "draft-1"})
		require.NoError(t, err)

		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
		assert.ErrorIs(t, err, ErrInvalidDraftSession)
	})

	t.Run("Expired", func(t *testing.T) {
		expired, _ := NewJWTManager("s3cret", time.Hour, zap.NewNop())
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		created, err := expired.CreateToken(ctx, &CreateTokenInput{DraftID: "draft-1"})
		require.NoError(t, err)

		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: created.Token})
		assert.ErrorIs(t, err, ErrInvalidDraftSession)
	})

	t.Run("Foreign issuer", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"draft_id": "draft-1",
			"iss":      "someone-else",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("s3cret"))
		require.NoError(t, err)

		_, err = manager.VerifyToken(ctx, &VerifyTokenInput{Token: signed})
		assert.ErrorIs(t, err, ErrInvalidDraftSession)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := manager.VerifyToken(ctx, &VerifyTokenInput{Token: "not.a.token"})
		assert.ErrorIs(t, err, ErrInvalidDraftSession)
	})
}
