package submission

import (
	"context"
	"errors"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/intake"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDocument() *intake.SubmissionDocument {
	return &intake.SubmissionDocument{
		Sections: map[intake.SectionKey]intake.SectionData{
			intake.SectionIdentification:  {"fullName": "Margaret Hale", "dateOfBirth": "04/09/1940"},
			intake.SectionInformalSupport: {"caregiverStatus": []string{"unable", "distressed"}},
		},
		AgreedToTerms:   intake.ConsentYes,
		AgreedToPrivacy: intake.ConsentYes,
	}
}

func TestSubmissionClient_Success(t *testing.T) {
	var received map[string]any
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, constvars.MIMEApplicationJSON, r.Header.Get(constvars.HeaderContentType))
		requestID = r.Header.Get(constvars.HeaderXRequestID)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"sub-42"},"message":"Assessment received"}`))
	}))
	defer server.Close()

	client := NewSubmissionClient(server.URL, 5*time.Second, nil, zap.NewNop())
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	accepted, err := client.Submit(ctx, testDocument(), "captcha-token")

	require.NoError(t, err)
	assert.Equal(t, "sub-42", accepted.SubmissionID)
	assert.Equal(t, "Assessment received", accepted.Message)
	assert.Equal(t, http.StatusCreated, accepted.StatusCode)
	assert.Equal(t, "req-1", requestID)

	identification := received["identification"].(map[string]any)
	assert.Equal(t, "04/09/1940", identification["dateOfBirth"])
	assert.Equal(t, "captcha-token", received[intake.FieldCaptchaToken])
	assert.Equal(t, intake.ConsentYes, received[intake.FieldAgreedToTerms])
	support := received["informalSupport"].(map[string]any)
	assert.Equal(t, []any{"unable", "distressed"}, support["caregiverStatus"])
}

func TestSubmissionClient_Failures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    FailureKind
		wantMessage string
	}{
		{"server message shown verbatim", http.StatusInternalServerError, `{"message":"Database is down for maintenance"}`, FailureServer, "Database is down for maintenance"},
		{"no message falls back", http.StatusBadGateway, `<html>bad gateway</html>`, FailureServer, constvars.ErrClientSubmissionFailed},
		{"forbidden is a captcha rejection", http.StatusForbidden, `{"message":"Verification failed"}`, FailureCaptcha, "Verification failed"},
		{"captcha code", http.StatusBadRequest, `{"code":"CAPTCHA_INVALID","message":"Captcha expired"}`, FailureCaptcha, "Captcha expired"},
		{"validation", http.StatusUnprocessableEntity, `{"error":{"message":"zipCode is invalid"}}`, FailureValidation, "zipCode is invalid"},
		{"bad request", http.StatusBadRequest, `{}`, FailureValidation, constvars.ErrClientSubmissionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewSubmissionClient(server.URL, 5*time.Second, nil, zap.NewNop())
			accepted, err := client.Submit(context.Background(), testDocument(), "")

			assert.Nil(t, accepted)
			var submissionErr *SubmissionError
			require.True(t, errors.As(err, &submissionErr))
			assert.Equal(t, tt.wantKind, submissionErr.Kind)
			assert.Equal(t, tt.status, submissionErr.StatusCode)
			assert.Equal(t, tt.wantMessage, submissionErr.Message)
		})
	}
}

func TestSubmissionClient_Transport(t *testing.T) {
	t.Run("Unreachable endpoint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewSubmissionClient(url, time.Second, nil, zap.NewNop())
		_, err := client.Submit(context.Background(), testDocument(), "")

		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Equal(t, FailureTransport, submissionErr.Kind)
		assert.Equal(t, constvars.ErrClientSubmissionFailed, submissionErr.Message)
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client := NewSubmissionClient(server.URL, 50*time.Millisecond, nil, zap.NewNop())
		_, err := client.Submit(context.Background(), testDocument(), "")

		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Equal(t, FailureTransport, submissionErr.Kind)
	})
}

func TestSubmissionClient_SendsOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewSubmissionClient(server.URL, time.Second, nil, zap.NewNop())
	_, err := client.Submit(context.Background(), testDocument(), "")

	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "failures are never retried")
}
