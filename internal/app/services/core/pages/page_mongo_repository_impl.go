package pages

import (
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/app/models"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/responses"
	"homecare-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PageMetadataMongoRepository struct {
	Collection *mongo.Collection
}

func NewPageMetadataMongoRepository(db *mongo.Database) contracts.PageMetadataRepository {
	return &PageMetadataMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPageMetadata),
	}
}

func (repo *PageMetadataMongoRepository) FindBySlug(ctx context.Context, slug string) (*responses.PageMetadata, error) {
	var page models.PageMetadata
	err := repo.Collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&page)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &responses.PageMetadata{
		Slug:        page.Slug,
		Title:       page.Title,
		Description: page.Description,
	}, nil
}
