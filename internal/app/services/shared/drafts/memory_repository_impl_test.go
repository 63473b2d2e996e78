package drafts

import (
	"context"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/intake"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDraft(id string) *intake.Draft {
	catalog := intake.DefaultCatalog()
	return intake.NewDraft(id, intake.NewValidator(catalog), intake.NewGate(intake.GateConfig{}))
}

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(time.Hour)
	draft := newDraft("d1")

	require.NoError(t, repo.Create(ctx, draft))

	found, err := repo.FindByID(ctx, "d1")
	require.NoError(t, err)
	assert.Same(t, draft, found, "the memory store shares the live draft")

	require.NoError(t, repo.Save(ctx, draft))
	require.NoError(t, repo.Delete(ctx, "d1"))

	_, err = repo.FindByID(ctx, "d1")
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusNotFound, customErr.StatusCode)

	assert.Error(t, repo.Save(ctx, draft), "saving a deleted draft fails")
}

func TestMemoryRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository(10 * time.Minute)
	repo.now = func() time.Time { return now }

	stale := newDraft("stale")
	fresh := newDraft("fresh")
	require.NoError(t, repo.Create(ctx, stale))
	require.NoError(t, repo.Create(ctx, fresh))

	now = now.Add(8 * time.Minute)
	require.NoError(t, repo.Save(ctx, fresh))

	now = now.Add(3 * time.Minute)
	_, err := repo.FindByID(ctx, "stale")
	assert.Error(t, err, "expired drafts are not returned even before a sweep")

	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 1, repo.Len())
	assert.True(t, stale.Discarded())
	assert.False(t, fresh.Discarded())

	_, err = repo.FindByID(ctx, "fresh")
	assert.NoError(t, err)
}

func TestSweeper(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	now := time.Now()
	repo.now = func() time.Time { return now }
	require.NoError(t, repo.Create(context.Background(), newDraft("d1")))
	now = now.Add(2 * time.Minute)

	sweeper := NewSweeper(zap.NewNop(), repo, "not a cron spec")
	sweeper.Start(context.Background())
	require.NotNil(t, sweeper.cron, "an invalid spec falls back to the default schedule")
	assert.Len(t, sweeper.cron.Entries(), 1)

	sweeper.runOnce()
	assert.Equal(t, 0, repo.Len())

	sweeper.Stop()
	require.NoError(t, repo.Create(context.Background(), newDraft("d2")))
	sweeper.runOnce()
	assert.Equal(t, 1, repo.Len(), "a stopped sweeper does nothing")
}
