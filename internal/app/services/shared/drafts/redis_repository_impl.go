package drafts

import (
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/intake"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// RedisRepository stores each Draft as a JSON snapshot under intake:draft:<id>.
// Every FindByID returns a fresh Draft restored from the snapshot.
type RedisRepository struct {
	redisRepo contracts.RedisRepository
	validator *intake.Validator
	gate      *intake.Gate
	ttl       time.Duration
	Log       *zap.Logger
}

var _ contracts.DraftRepository = (*RedisRepository)(nil)

func NewRedisRepository(
	redisRepo contracts.RedisRepository,
	validator *intake.Validator,
	gate *intake.Gate,
	ttl time.Duration,
	logger *zap.Logger,
) *RedisRepository {
	return &RedisRepository{
		redisRepo: redisRepo,
		validator: validator,
		gate:      gate,
		ttl:       ttl,
		Log:       logger,
	}
}

func DraftKey(draftID string) string {
	return constvars.RedisKeyDraftPrefix + draftID
}

func (r *RedisRepository) Create(ctx context.Context, draft *intake.Draft) error {
	return r.Save(ctx, draft)
}

func (r *RedisRepository) FindByID(ctx context.Context, draftID string) (*intake.Draft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	raw, err := r.redisRepo.Get(ctx, DraftKey(draftID))
	if err != nil {
		r.Log.Error("drafts.RedisRepository.FindByID error calling redisRepo.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDraftIDKey, draftID),
			zap.Error(err),
		)
		return nil, err
	}
	if raw == "" {
		return nil, exceptions.ErrDraftNotFound(nil, draftID)
	}

	snapshot := new(intake.Snapshot)
	if err := json.Unmarshal([]byte(raw), snapshot); err != nil {
		r.Log.Error("drafts.RedisRepository.FindByID error decoding snapshot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDraftIDKey, draftID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	snapshot.ID = draftID

	return intake.RestoreDraft(snapshot, r.validator, r.gate), nil
}

func (r *RedisRepository) Save(ctx context.Context, draft *intake.Draft) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := r.redisRepo.Set(ctx, DraftKey(draft.ID()), draft.Snapshot(), r.ttl)
	if err != nil {
		r.Log.Error("drafts.RedisRepository.Save error calling redisRepo.Set",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, draftID string) error {
	return r.redisRepo.Delete(ctx, DraftKey(draftID))
}
