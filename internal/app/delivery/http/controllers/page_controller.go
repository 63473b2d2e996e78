package controllers

import (
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PageController struct {
	Log         *zap.Logger
	PageUsecase contracts.PageUsecase
}

func NewPageController(logger *zap.Logger, pageUsecase contracts.PageUsecase) *PageController {
	return &PageController{
		Log:         logger,
		PageUsecase: pageUsecase,
	}
}

func (ctrl *PageController) FindPageMetadata(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("PageController.FindPageMetadata requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := &requests.FindPageMetadata{
		Slug: chi.URLParam(r, constvars.URLParamPageSlug),
	}
	ctrl.Log.Info("PageController.FindPageMetadata called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPageSlugKey, request.Slug),
	)

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("PageController.FindPageMetadata validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response, err := ctrl.PageUsecase.FindPageMetadata(ctx, request)
	if err != nil {
		ctrl.Log.Error("PageController.FindPageMetadata error from usecase",
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

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPageMetadataSuccessMessage, response)
}
