package intakes

import (
	"context"
	"errors"
	"homecare-service/internal/app/config"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/app/services/shared/jwtmanager"
	"homecare-service/internal/app/services/shared/submission"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/dto/responses"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/intake"
	"homecare-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type intakeUsecase struct {
	Catalog          *intake.Catalog
	Validator        *intake.Validator
	Gate             *intake.Gate
	Transformer      *intake.Transformer
	DraftRepository  contracts.DraftRepository
	SubmissionClient contracts.SubmissionClient
	JWTManager       *jwtmanager.JWTManager
	// Locker, Notifier and Archive are optional and may be nil.
	Locker         contracts.LockerService
	Notifier       contracts.SubmissionNotifier
	Archive        contracts.SubmissionArchive
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	now            func() time.Time
}

func NewIntakeUsecase(
	catalog *intake.Catalog,
	gate *intake.Gate,
	draftRepository contracts.DraftRepository,
	submissionClient contracts.SubmissionClient,
	jwtManager *jwtmanager.JWTManager,
	locker contracts.LockerService,
	notifier contracts.SubmissionNotifier,
	archive contracts.SubmissionArchive,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.IntakeUsecase {
	return &intakeUsecase{
		Catalog:          catalog,
		Validator:        intake.NewValidator(catalog),
		Gate:             gate,
		Transformer:      intake.NewTransformer(catalog),
		DraftRepository:  draftRepository,
		SubmissionClient: submissionClient,
		JWTManager:       jwtManager,
		Locker:           locker,
		Notifier:         notifier,
		Archive:          archive,
		InternalConfig:   internalConfig,
		Log:              logger,
		now:              time.Now,
	}
}

func (uc *intakeUsecase) GetSchema(ctx context.Context) *responses.IntakeSchema {
	gateConfig := uc.Gate.Config()
	schema := &responses.IntakeSchema{
		Captcha: responses.IntakeCaptcha{
			Enabled: gateConfig.ChallengeEnabled(),
			SiteKey: gateConfig.SiteKey,
		},
		HoneypotField: intake.FieldHoneypot,
		TokenField:    intake.FieldCaptchaToken,
	}

	for _, section := range uc.Catalog.Sections() {
		out := responses.IntakeSection{
			Key:    string(section.Key),
			Title:  section.Title,
			Fields: make([]responses.IntakeField, 0, len(section.Fields)),
		}
		for _, key := range section.Fields {
			field, _ := uc.Catalog.Field(key)
			out.Fields = append(out.Fields, toIntakeField(field))
		}
		schema.Sections = append(schema.Sections, out)
	}

	for _, field := range uc.Catalog.Fields() {
		if field.Section == intake.SectionTopLevel && !field.Hidden {
			schema.Consents = append(schema.Consents, toIntakeField(field))
		}
	}
	return schema
}

func (uc *intakeUsecase) CreateDraft(ctx context.Context, request *requests.CreateIntakeDraft) (*responses.IntakeDraftSession, error) {
	draft := intake.NewDraft(utils.GenerateDraftID(), uc.Validator, uc.Gate)

	err := uc.DraftRepository.Create(ctx, draft)
	if err != nil {
		uc.Log.Error("intakeUsecase.CreateDraft error calling DraftRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := uc.JWTManager.CreateToken(ctx, &jwtmanager.CreateTokenInput{DraftID: draft.ID()})
	if err != nil {
		uc.Log.Error("intakeUsecase.CreateDraft error signing draft session",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.Error(err),
		)
		_ = uc.DraftRepository.Delete(ctx, draft.ID())
		return nil, exceptions.ErrDraftSessionSign(err)
	}

	uc.Log.Info("intakeUsecase.CreateDraft draft created",
		zap.String(constvars.LoggingRequestIDKey, request.RequestID),
		zap.String(constvars.LoggingDraftIDKey, draft.ID()),
	)
	return &responses.IntakeDraftSession{
		DraftID:   draft.ID(),
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		Draft:     toIntakeDraft(draft),
	}, nil
}

func (uc *intakeUsecase) FindDraft(ctx context.Context, request *requests.FindIntakeDraft) (*responses.IntakeDraft, error) {
	draft, err := uc.DraftRepository.FindByID(ctx, request.DraftID)
	if err != nil {
		return nil, err
	}
	response := toIntakeDraft(draft)
	return &response, nil
}

func (uc *intakeUsecase) UpdateDraft(ctx context.Context, request *requests.UpdateIntakeDraft) (*responses.IntakeDraft, error) {
	for key := range request.Fields {
		if _, ok := uc.Catalog.Field(key); !ok {
			return nil, exceptions.ErrUnknownField(intake.ErrUnknownField, key)
		}
	}

	// A copy loaded from a shared store must not be saved over a submission in progress.
	release, err := uc.holdSubmitLock(ctx, request.RequestID, request.DraftID)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := uc.DraftRepository.FindByID(ctx, request.DraftID)
	if err != nil {
		return nil, err
	}
	uc.recoverAbandonedSubmit(draft)

	err = draft.SetFields(request.Fields)
	if err != nil {
		uc.Log.Warn("intakeUsecase.UpdateDraft draft rejected mutation",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.String(constvars.LoggingDraftStatusKey, string(draft.Status())),
			zap.Error(err),
		)
		return nil, mapDraftError(err, draft.ID())
	}

	err = uc.DraftRepository.Save(ctx, draft)
	if err != nil {
		return nil, err
	}

	response := toIntakeDraft(draft)
	uc.Log.Debug("intakeUsecase.UpdateDraft fields applied",
		zap.String(constvars.LoggingRequestIDKey, request.RequestID),
		zap.String(constvars.LoggingDraftIDKey, draft.ID()),
		zap.Int(constvars.LoggingFieldCountKey, len(request.Fields)),
		zap.Int(constvars.LoggingErrorCountKey, len(draft.Result().Errors)),
	)
	return &response, nil
}

// SubmitDraft runs the submit attempt: every field becomes touched, the form must be
// valid, the challenge token must be present, and only then is the document built and
// sent. At most one submission per draft is in flight at a time.
func (uc *intakeUsecase) SubmitDraft(ctx context.Context, request *requests.SubmitIntakeDraft) (*responses.SubmissionReceipt, error) {
	release, err := uc.holdSubmitLock(ctx, request.RequestID, request.DraftID)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := uc.DraftRepository.FindByID(ctx, request.DraftID)
	if err != nil {
		return nil, err
	}
	uc.recoverAbandonedSubmit(draft)

	unsubscribe := draft.Subscribe(func(event intake.Event) {
		if event.Field != "" {
			return
		}
		uc.Log.Info("intakeUsecase.SubmitDraft status changed",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, request.DraftID),
			zap.String(constvars.LoggingDraftStatusKey, string(event.Status)),
		)
	})
	defer unsubscribe()

	if request.CaptchaToken != "" {
		err = draft.SetField(intake.FieldCaptchaToken, request.CaptchaToken)
		if err != nil {
			return nil, mapDraftError(err, draft.ID())
		}
	}

	if draft.Status() == intake.StatusIdle {
		draft.TouchAll()
	}
	result := draft.Result()
	if !result.Valid {
		uc.saveQuietly(ctx, request.RequestID, draft)
		uc.Log.Info("intakeUsecase.SubmitDraft draft has field errors",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.Int(constvars.LoggingErrorCountKey, len(result.Errors)),
		)
		return nil, exceptions.ErrDraftInvalid(nil, draft.ID(), result.Errors)
	}

	if err := uc.Gate.Check(draft.Values()); err != nil {
		uc.saveQuietly(ctx, request.RequestID, draft)
		var gateErr *intake.GateError
		if errors.As(err, &gateErr) {
			return nil, exceptions.ErrCaptchaMissing(err, draft.ID(), gateErr.Field, gateErr.Message)
		}
		return nil, exceptions.ErrCaptchaMissing(err, draft.ID(), intake.FieldCaptchaToken, constvars.ErrClientCaptchaRequired)
	}

	values, err := draft.StartSubmission()
	switch {
	case errors.Is(err, intake.ErrDraftInvalid):
		return nil, exceptions.ErrDraftInvalid(err, draft.ID(), draft.Result().Errors)
	case errors.Is(err, intake.ErrChallengeMissing):
		return nil, exceptions.ErrCaptchaMissing(err, draft.ID(), intake.FieldCaptchaToken, constvars.ErrClientCaptchaRequired)
	case err != nil:
		return nil, mapDraftError(err, draft.ID())
	}
	uc.saveQuietly(ctx, request.RequestID, draft)

	document := uc.Transformer.Transform(values)
	captchaToken, _ := values[intake.FieldCaptchaToken].(string)
	accepted, err := uc.SubmissionClient.Submit(ctx, document, captchaToken)

	if !uc.stillActive(ctx, draft) {
		uc.Log.Info("intakeUsecase.SubmitDraft draft discarded while submission was in flight",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
		)
		if err != nil {
			return nil, uc.mapSubmissionError(ctx, err)
		}
		receipt := uc.receipt(draft.ID(), accepted)
		uc.afterSubmit(ctx, request.RequestID, document, receipt)
		return receipt, nil
	}

	if err != nil {
		failure := uc.mapSubmissionError(ctx, err)
		if failErr := draft.SubmitFailed(failure.ClientMessage); failErr == nil {
			uc.saveQuietly(ctx, request.RequestID, draft)
		}
		uc.Log.Warn("intakeUsecase.SubmitDraft submission failed",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.Error(err),
		)
		return nil, failure
	}

	if err := draft.SubmitSucceeded(); err != nil {
		return nil, mapDraftError(err, draft.ID())
	}
	draft.Discard()
	if err := uc.DraftRepository.Delete(context.WithoutCancel(ctx), draft.ID()); err != nil {
		uc.Log.Warn("intakeUsecase.SubmitDraft failed to delete submitted draft",
			zap.String(constvars.LoggingRequestIDKey, request.RequestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.Error(err),
		)
	}

	receipt := uc.receipt(draft.ID(), accepted)
	uc.afterSubmit(ctx, request.RequestID, document, receipt)
	return receipt, nil
}

func (uc *intakeUsecase) DiscardDraft(ctx context.Context, request *requests.DiscardIntakeDraft) error {
	draft, err := uc.DraftRepository.FindByID(ctx, request.DraftID)
	if err != nil {
		return err
	}
	draft.Discard()

	err = uc.DraftRepository.Delete(ctx, request.DraftID)
	if err != nil {
		return err
	}
	uc.Log.Info("intakeUsecase.DiscardDraft draft discarded",
		zap.String(constvars.LoggingRequestIDKey, request.RequestID),
		zap.String(constvars.LoggingDraftIDKey, request.DraftID),
	)
	return nil
}

func (uc *intakeUsecase) ResolveDraftSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", exceptions.ErrDraftSessionMissing(nil)
	}
	out, err := uc.JWTManager.VerifyToken(ctx, &jwtmanager.VerifyTokenInput{Token: token})
	if err != nil {
		return "", exceptions.ErrDraftSessionInvalid(err)
	}
	return out.DraftID, nil
}

// holdSubmitLock takes the per-draft lock shared by edits and submissions. Without a
// Locker the live Draft's own guard is enough and release is a no-op.
func (uc *intakeUsecase) holdSubmitLock(ctx context.Context, requestID, draftID string) (func(), error) {
	if uc.Locker == nil {
		return func() {}, nil
	}

	lockKey := constvars.RedisKeySubmitLockPrefix + draftID
	ttl := time.Duration(uc.InternalConfig.Intake.SubmitLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.Locker.TryLock(ctx, lockKey, ttl)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrSubmissionInFlight(intake.ErrSubmissionInFlight, draftID)
	}

	return func() {
		if err := uc.Locker.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("intakeUsecase failed to release submit lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, draftID),
				zap.Error(err),
			)
		}
	}, nil
}

// recoverAbandonedSubmit runs with the submit lock held: a draft still marked in flight
// was left behind by a request that is gone. Without a Locker the status belongs to a
// live request and is left alone.
func (uc *intakeUsecase) recoverAbandonedSubmit(draft *intake.Draft) {
	if uc.Locker != nil && draft.Status() == intake.StatusInFlight {
		_ = draft.SubmitFailed(constvars.ErrClientSubmissionFailed)
	}
}

// stillActive reports whether the draft may still be written to. A draft deleted from
// the repository by another request counts as discarded.
func (uc *intakeUsecase) stillActive(ctx context.Context, draft *intake.Draft) bool {
	if draft.Discarded() {
		return false
	}
	_, err := uc.DraftRepository.FindByID(context.WithoutCancel(ctx), draft.ID())
	return err == nil
}

func (uc *intakeUsecase) saveQuietly(ctx context.Context, requestID string, draft *intake.Draft) {
	if err := uc.DraftRepository.Save(context.WithoutCancel(ctx), draft); err != nil {
		uc.Log.Warn("intakeUsecase failed to save draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDraftIDKey, draft.ID()),
			zap.Error(err),
		)
	}
}

func (uc *intakeUsecase) receipt(draftID string, accepted *responses.SubmissionAccepted) *responses.SubmissionReceipt {
	receipt := &responses.SubmissionReceipt{
		DraftID:     draftID,
		Status:      string(intake.StatusSucceeded),
		SubmittedAt: uc.now().UTC(),
	}
	if accepted != nil {
		receipt.SubmissionID = accepted.SubmissionID
	}
	return receipt
}

// afterSubmit archives the document and publishes the submitted event. Failures here
// never turn a successful submission into a failed one.
func (uc *intakeUsecase) afterSubmit(ctx context.Context, requestID string, document *intake.SubmissionDocument, receipt *responses.SubmissionReceipt) {
	ctx = context.WithoutCancel(ctx)

	var archivePath string
	if uc.Archive != nil {
		path, err := uc.Archive.Archive(ctx, receipt.DraftID, document)
		if err != nil {
			uc.Log.Error("intakeUsecase.SubmitDraft failed to archive submission",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, receipt.DraftID),
				zap.Error(err),
			)
		}
		archivePath = path
	}

	if uc.Notifier != nil {
		sections := make([]string, 0, len(document.Sections))
		for _, section := range uc.Catalog.Sections() {
			sections = append(sections, string(section.Key))
		}
		err := uc.Notifier.PublishSubmitted(ctx, &requests.AssessmentSubmittedEvent{
			DraftID:      receipt.DraftID,
			SubmissionID: receipt.SubmissionID,
			ArchivePath:  archivePath,
			Sections:     sections,
			SubmittedAt:  receipt.SubmittedAt,
		})
		if err != nil {
			uc.Log.Error("intakeUsecase.SubmitDraft failed to publish submitted event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, receipt.DraftID),
				zap.Error(err),
			)
		}
	}
}

func (uc *intakeUsecase) mapSubmissionError(ctx context.Context, err error) *exceptions.CustomError {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return exceptions.ErrServerDeadlineExceeded(err)
	}

	var submissionErr *submission.SubmissionError
	if !errors.As(err, &submissionErr) {
		return exceptions.ErrSendHTTPRequest(err)
	}

	statusCode := constvars.StatusBadGateway
	switch submissionErr.Kind {
	case submission.FailureValidation, submission.FailureCaptcha:
		statusCode = constvars.StatusUnprocessableEntity
	}
	return exceptions.ErrSubmissionRejected(err, statusCode, submissionErr.Message, string(submissionErr.Kind))
}

func mapDraftError(err error, draftID string) error {
	switch {
	case errors.Is(err, intake.ErrUnknownField):
		return exceptions.ErrUnknownField(err, "")
	case errors.Is(err, intake.ErrSubmissionInFlight):
		return exceptions.ErrSubmissionInFlight(err, draftID)
	case errors.Is(err, intake.ErrDraftLocked), errors.Is(err, intake.ErrNotInFlight):
		return exceptions.ErrDraftNotEditable(err, draftID)
	case errors.Is(err, intake.ErrDraftDiscarded):
		return exceptions.ErrDraftDiscarded(err, draftID)
	}
	return exceptions.ErrServerProcess(err)
}

func toIntakeField(field intake.Field) responses.IntakeField {
	return responses.IntakeField{
		Key:      field.Key,
		Label:    field.Label,
		Kind:     string(field.Kind),
		Required: field.Required,
		Options:  field.Options,
	}
}

func toIntakeDraft(draft *intake.Draft) responses.IntakeDraft {
	return responses.IntakeDraft{
		DraftID:           draft.ID(),
		Values:            draft.Values(),
		Errors:            draft.VisibleErrors(),
		Valid:             draft.IsValid(),
		SubmissionEnabled: draft.SubmissionEnabled(),
		Status:            string(draft.Status()),
		LastFailure:       draft.LastFailure(),
	}
}
