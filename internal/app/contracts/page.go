package contracts

import (
	"context"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/dto/responses"
)

// PageMetadataRepository returns nil, nil for an unknown slug.
type PageMetadataRepository interface {
	FindBySlug(ctx context.Context, slug string) (*responses.PageMetadata, error)
}

type PageUsecase interface {
	FindPageMetadata(ctx context.Context, request *requests.FindPageMetadata) (*responses.PageMetadata, error)
}
