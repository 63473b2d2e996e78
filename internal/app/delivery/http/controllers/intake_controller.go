package controllers

import (
	"context"
	"homecare-service/internal/app/config"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type IntakeController struct {
	Log            *zap.Logger
	IntakeUsecase  contracts.IntakeUsecase
	InternalConfig *config.InternalConfig
}

func NewIntakeController(logger *zap.Logger, intakeUsecase contracts.IntakeUsecase, internalConfig *config.InternalConfig) *IntakeController {
	return &IntakeController{
		Log:            logger,
		IntakeUsecase:  intakeUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *IntakeController) GetSchema(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("IntakeController.GetSchema requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("IntakeController.GetSchema called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	schema := ctrl.IntakeUsecase.GetSchema(r.Context())
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetIntakeSchemaSuccessMessage, schema)
}

func (ctrl *IntakeController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("IntakeController.CreateDraft requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("IntakeController.CreateDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	request := &requests.CreateIntakeDraft{RequestID: requestID}
	response, err := ctrl.IntakeUsecase.CreateDraft(ctx, request)
	if err != nil {
		ctrl.Log.Error("IntakeController.CreateDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("IntakeController.CreateDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, response.DraftID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateIntakeDraftSuccessMessage, response)
}

func (ctrl *IntakeController) FindDraft(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("IntakeController.FindDraft requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("IntakeController.FindDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	draftID, ok := r.Context().Value(constvars.CONTEXT_DRAFT_ID_KEY).(string)
	if !ok || draftID == "" {
		ctrl.Log.Error("IntakeController.FindDraft draftID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDraftSessionMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	request := &requests.FindIntakeDraft{DraftID: draftID, RequestID: requestID}
	response, err := ctrl.IntakeUsecase.FindDraft(ctx, request)
	if err != nil {
		ctrl.Log.Error("IntakeController.FindDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetIntakeDraftSuccessMessage, response)
}

func (ctrl *IntakeController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("IntakeController.UpdateDraft requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("IntakeController.UpdateDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	draftID, ok := r.Context().Value(constvars.CONTEXT_DRAFT_ID_KEY).(string)
	if !ok || draftID == "" {
		ctrl.Log.Error("IntakeController.UpdateDraft draftID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDraftSessionMissing(nil))
		return
	}

	request := new(requests.UpdateIntakeDraft)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("IntakeController.UpdateDraft error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.DraftID = draftID
	request.RequestID = requestID

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("IntakeController.UpdateDraft validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	response, err := ctrl.IntakeUsecase.UpdateDraft(ctx, request)
	if err != nil {
		ctrl.Log.Error("IntakeController.UpdateDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("IntakeController.UpdateDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFieldCountKey, len(request.Fields)),
		zap.Int(constvars.LoggingErrorCountKey, len(response.Errors)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateIntakeDraftSuccessMessage, response)
}

// SubmitDraft accepts an empty body; the captcha token is optional when it was
// already set as a field.
func (ctrl *IntakeController) SubmitDraft(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("IntakeController.SubmitDraft requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("IntakeController.SubmitDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	draftID, ok := r.Context().Value(constvars.CONTEXT_DRAFT_ID_KEY).(string)
	if !ok || draftID == "" {
		ctrl.Log.Error("IntakeController.SubmitDraft draftID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDraftSessionMissing(nil))
		return
	}

	request := new(requests.SubmitIntakeDraft)
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			ctrl.Log.Error("IntakeController.SubmitDraft error decoding JSON",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
			return
		}
	}
	request.DraftID = draftID
	request.RequestID = requestID

	timeout := ctrl.requestTimeout() + time.Duration(ctrl.InternalConfig.Submission.TimeoutInSeconds)*time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	response, err := ctrl.IntakeUsecase.SubmitDraft(ctx, request)
	if err != nil {
		ctrl.Log.Error("IntakeController.SubmitDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("IntakeController.SubmitDraft succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, response.SubmissionID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitIntakeDraftSuccessMessage, response)
}

func (ctrl *IntakeController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("IntakeController.DiscardDraft requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("IntakeController.DiscardDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	draftID, ok := r.Context().Value(constvars.CONTEXT_DRAFT_ID_KEY).(string)
	if !ok || draftID == "" {
		ctrl.Log.Error("IntakeController.DiscardDraft draftID not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDraftSessionMissing(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.requestTimeout())
	defer cancel()

	request := &requests.DiscardIntakeDraft{DraftID: draftID, RequestID: requestID}
	if err := ctrl.IntakeUsecase.DiscardDraft(ctx, request); err != nil {
		ctrl.Log.Error("IntakeController.DiscardDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DiscardIntakeDraftSuccessMessage, nil)
}

func (ctrl *IntakeController) requestTimeout() time.Duration {
	seconds := ctrl.InternalConfig.App.RequestTimeoutInSeconds
	if seconds <= 0 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}
