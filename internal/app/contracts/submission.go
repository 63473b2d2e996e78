package contracts

import (
	"context"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/dto/responses"
	"homecare-service/internal/pkg/intake"
)

type SubmissionClient interface {
	Submit(ctx context.Context, document *intake.SubmissionDocument, captchaToken string) (*responses.SubmissionAccepted, error)
}

type SubmissionNotifier interface {
	PublishSubmitted(ctx context.Context, event *requests.AssessmentSubmittedEvent) error
}

type SubmissionArchive interface {
	Archive(ctx context.Context, draftID string, document *intake.SubmissionDocument) (string, error)
}
