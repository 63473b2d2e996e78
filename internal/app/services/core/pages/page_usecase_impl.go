package pages

import (
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/dto/responses"
	"homecare-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type pageUsecase struct {
	Repositories []contracts.PageMetadataRepository
	Log          *zap.Logger
}

// NewPageUsecase resolves a slug against repositories in order; the first hit wins.
func NewPageUsecase(logger *zap.Logger, repositories ...contracts.PageMetadataRepository) contracts.PageUsecase {
	return &pageUsecase{
		Repositories: repositories,
		Log:          logger,
	}
}

func (uc *pageUsecase) FindPageMetadata(ctx context.Context, request *requests.FindPageMetadata) (*responses.PageMetadata, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	for _, repo := range uc.Repositories {
		page, err := repo.FindBySlug(ctx, request.Slug)
		if err != nil {
			uc.Log.Warn("pageUsecase.FindPageMetadata repository lookup failed, trying next",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPageSlugKey, request.Slug),
				zap.Error(err),
			)
			continue
		}
		if page != nil {
			return page, nil
		}
	}

	return nil, exceptions.ErrPageMetadataNotFound(nil, request.Slug)
}
