package contracts

import (
	"context"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/dto/responses"
)

type IntakeUsecase interface {
	GetSchema(ctx context.Context) *responses.IntakeSchema
	CreateDraft(ctx context.Context, request *requests.CreateIntakeDraft) (*responses.IntakeDraftSession, error)
	FindDraft(ctx context.Context, request *requests.FindIntakeDraft) (*responses.IntakeDraft, error)
	UpdateDraft(ctx context.Context, request *requests.UpdateIntakeDraft) (*responses.IntakeDraft, error)
	SubmitDraft(ctx context.Context, request *requests.SubmitIntakeDraft) (*responses.SubmissionReceipt, error)
	DiscardDraft(ctx context.Context, request *requests.DiscardIntakeDraft) error
	// ResolveDraftSession returns the draft ID bound to a session token.
	ResolveDraftSession(ctx context.Context, token string) (string, error)
}
