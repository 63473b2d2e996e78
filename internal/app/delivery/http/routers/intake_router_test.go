package routers

import (
	"bytes"
	"context"
	"homecare-service/internal/app/config"
	"homecare-service/internal/app/delivery/http/controllers"
	"homecare-service/internal/app/delivery/http/middlewares"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/requests"
	"homecare-service/internal/pkg/dto/responses"
	"homecare-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockIntakeUsecase struct {
	mock.Mock
}

func (m *MockIntakeUsecase) GetSchema(ctx context.Context) *responses.IntakeSchema {
	args := m.Called(ctx)
	return args.Get(0).(*responses.IntakeSchema)
}

func (m *MockIntakeUsecase) CreateDraft(ctx context.Context, request *requests.CreateIntakeDraft) (*responses.IntakeDraftSession, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.IntakeDraftSession), args.Error(1)
}

func (m *MockIntakeUsecase) FindDraft(ctx context.Context, request *requests.FindIntakeDraft) (*responses.IntakeDraft, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.IntakeDraft), args.Error(1)
}

func (m *MockIntakeUsecase) UpdateDraft(ctx context.Context, request *requests.UpdateIntakeDraft) (*responses.IntakeDraft, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.IntakeDraft), args.Error(1)
}

func (m *MockIntakeUsecase) SubmitDraft(ctx context.Context, request *requests.SubmitIntakeDraft) (*responses.SubmissionReceipt, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*responses.SubmissionReceipt), args.Error(1)
}

func (m *MockIntakeUsecase) DiscardDraft(ctx context.Context, request *requests.DiscardIntakeDraft) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockIntakeUsecase) ResolveDraftSession(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newTestInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		App: config.App{
			MaxRequests:                100,
			MaxTimeRequestsPerSeconds:  1,
			RequestTimeoutInSeconds:    5,
			RequestBodyLimitInMegabyte: 1,
		},
		Intake: config.AppIntake{
			MaxDraftsPerMinutePerIP: 2,
		},
		Submission: config.AppSubmission{
			TimeoutInSeconds: 5,
		},
	}
}

func newIntakeTestRouter(usecase *MockIntakeUsecase) *chi.Mux {
	logger := zap.NewNop()
	internalConfig := newTestInternalConfig()

	middlewareInstance := middlewares.NewMiddlewares(logger, usecase, internalConfig)
	intakeController := controllers.NewIntakeController(logger, usecase, internalConfig)

	router := chi.NewRouter()
	router.Use(middlewareInstance.RequestIDMiddleware)
	attachIntakeRoutes(router, middlewareInstance, intakeController)
	return router
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestIntakeRouter_Schema(t *testing.T) {
	usecase := new(MockIntakeUsecase)
	router := newIntakeTestRouter(usecase)

	usecase.On("GetSchema", mock.Anything).Return(&responses.IntakeSchema{
		Sections:      []responses.IntakeSection{{Key: "identification", Title: "Identification"}},
		HoneypotField: "website",
		TokenField:    "captchaToken",
	})

	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected status OK")
	assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	body := decodeBody(t, rr)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "website", data["honeypot_field"])
	usecase.AssertExpectations(t)
}

func TestIntakeRouter_CreateDraft(t *testing.T) {
	t.Run("Creates a draft session", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("CreateDraft", mock.Anything, mock.AnythingOfType("*requests.CreateIntakeDraft")).Return(&responses.IntakeDraftSession{
			DraftID:   "draft-1",
			Token:     "signed-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/drafts", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-request-id")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code, "Expected status Created")
		assert.Equal(t, "client-request-id", rr.Header().Get(constvars.HeaderXRequestID))
		data := decodeBody(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, "signed-token", data["token"])
		usecase.AssertExpectations(t)
	})

	t.Run("Rate limits draft creation per IP", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("CreateDraft", mock.Anything, mock.Anything).Return(&responses.IntakeDraftSession{DraftID: "draft-1"}, nil)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/drafts", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			codes = append(codes, rr.Code)
		}

		assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)
		usecase.AssertNumberOfCalls(t, "CreateDraft", 2)
	})
}

func TestIntakeRouter_DraftSession(t *testing.T) {
	t.Run("Missing token is rejected", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "").Return("", exceptions.ErrDraftSessionMissing(nil))

		req := httptest.NewRequest(http.MethodGet, "/draft", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected status Unauthorized")
		usecase.AssertNotCalled(t, "FindDraft", mock.Anything, mock.Anything)
	})

	t.Run("Valid token reaches the handler", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)
		usecase.On("FindDraft", mock.Anything, mock.MatchedBy(func(r *requests.FindIntakeDraft) bool {
			return r.DraftID == "draft-1"
		})).Return(&responses.IntakeDraft{DraftID: "draft-1", Status: "idle"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/draft", nil)
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "Expected status OK")
		data := decodeBody(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, "draft-1", data["draft_id"])
		usecase.AssertExpectations(t)
	})
}

func TestIntakeRouter_UpdateDraft(t *testing.T) {
	t.Run("Applies fields", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)
		usecase.On("UpdateDraft", mock.Anything, mock.MatchedBy(func(r *requests.UpdateIntakeDraft) bool {
			return r.DraftID == "draft-1" && r.Fields["firstName"] == "Ada"
		})).Return(&responses.IntakeDraft{
			DraftID: "draft-1",
			Errors:  map[string]string{"lastName": "Last Name is required"},
		}, nil)

		body, _ := json.Marshal(map[string]interface{}{
			"fields": map[string]interface{}{"firstName": "Ada"},
		})
		req := httptest.NewRequest(http.MethodPatch, "/draft", bytes.NewBuffer(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "Expected status OK")
		usecase.AssertExpectations(t)
	})

	t.Run("Empty field set fails validation", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)

		req := httptest.NewRequest(http.MethodPatch, "/draft", bytes.NewBufferString(`{"fields":{}}`))
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status Bad Request")
		usecase.AssertNotCalled(t, "UpdateDraft", mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)

		req := httptest.NewRequest(http.MethodPatch, "/draft", bytes.NewBufferString(`{"fields":`))
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "Expected status Bad Request")
	})
}

func TestIntakeRouter_SubmitDraft(t *testing.T) {
	t.Run("Invalid draft returns field errors", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)
		usecase.On("SubmitDraft", mock.Anything, mock.AnythingOfType("*requests.SubmitIntakeDraft")).
			Return(nil, exceptions.ErrDraftInvalid(nil, "draft-1", map[string]string{"firstName": "First Name is required"}))

		req := httptest.NewRequest(http.MethodPost, "/draft/submit", nil)
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "Expected status Unprocessable Entity")
		body := decodeBody(t, rr)
		errs := body["errors"].(map[string]interface{})
		assert.Equal(t, "First Name is required", errs["firstName"])
	})

	t.Run("Captcha token is forwarded", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)
		usecase.On("SubmitDraft", mock.Anything, mock.MatchedBy(func(r *requests.SubmitIntakeDraft) bool {
			return r.DraftID == "draft-1" && r.CaptchaToken == "captcha-123"
		})).Return(&responses.SubmissionReceipt{
			DraftID:      "draft-1",
			SubmissionID: "sub-9",
			Status:       "succeeded",
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/draft/submit", bytes.NewBufferString(`{"captcha_token":"captcha-123"}`))
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, "Expected status OK")
		data := decodeBody(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, "sub-9", data["submission_id"])
		usecase.AssertExpectations(t)
	})

	t.Run("Concurrent submit is a conflict", func(t *testing.T) {
		usecase := new(MockIntakeUsecase)
		router := newIntakeTestRouter(usecase)

		usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)
		usecase.On("SubmitDraft", mock.Anything, mock.Anything).Return(nil, exceptions.ErrSubmissionInFlight(nil, "draft-1"))

		req := httptest.NewRequest(http.MethodPost, "/draft/submit", nil)
		req.Header.Set(constvars.HeaderXDraftToken, "good-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code, "Expected status Conflict")
	})
}

func TestIntakeRouter_DiscardDraft(t *testing.T) {
	usecase := new(MockIntakeUsecase)
	router := newIntakeTestRouter(usecase)

	usecase.On("ResolveDraftSession", mock.Anything, "good-token").Return("draft-1", nil)
	usecase.On("DiscardDraft", mock.Anything, &requests.DiscardIntakeDraft{DraftID: "draft-1", RequestID: "req-1"}).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/draft", nil)
	req.Header.Set(constvars.HeaderXDraftToken, "good-token")
	req.Header.Set(constvars.HeaderXRequestID, "req-1")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected status OK")
	usecase.AssertExpectations(t)
}
