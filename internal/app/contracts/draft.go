package contracts

import (
	"context"
	"homecare-service/internal/pkg/intake"
)

// DraftRepository keeps the Draft of every active intake session.
type DraftRepository interface {
	Create(ctx context.Context, draft *intake.Draft) error
	// FindByID returns exceptions.ErrDraftNotFound when the draft is unknown or expired.
	FindByID(ctx context.Context, draftID string) (*intake.Draft, error)
	Save(ctx context.Context, draft *intake.Draft) error
	Delete(ctx context.Context, draftID string) error
}
