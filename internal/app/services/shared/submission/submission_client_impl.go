package submission

import (
	"bytes"
	"context"
	"homecare-service/internal/app/contracts"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/dto/responses"
	"homecare-service/internal/pkg/intake"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxResponseBodyBytes = 64 << 10

type submissionClient struct {
	URL        string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
}

// NewSubmissionClient builds the client for the persistence endpoint. A nil limiter
// disables outbound throttling.
func NewSubmissionClient(url string, timeout time.Duration, limiter *rate.Limiter, logger *zap.Logger) contracts.SubmissionClient {
	return &submissionClient{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    limiter,
		Log:        logger,
	}
}

// Submit POSTs the document once. It never retries; every failure comes back as a
// *SubmissionError.
func (c *submissionClient) Submit(ctx context.Context, document *intake.SubmissionDocument, captchaToken string) (*responses.SubmissionAccepted, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("submissionClient.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingFieldCountKey, len(document.Sections)),
	)

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			c.Log.Warn("submissionClient.Submit throttled until deadline",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, newSubmissionError(FailureTransport, 0, "", err)
		}
	}

	payload := document.Payload()
	payload[intake.FieldCaptchaToken] = captchaToken
	body, err := json.Marshal(payload)
	if err != nil {
		c.Log.Error("submissionClient.Submit error marshaling payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, newSubmissionError(FailureTransport, 0, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		c.Log.Error("submissionClient.Submit error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, newSubmissionError(FailureTransport, 0, "", err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("submissionClient.Submit error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, newSubmissionError(FailureTransport, 0, "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		c.Log.Error("submissionClient.Submit error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(err),
		)
		return nil, newSubmissionError(FailureTransport, resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		failure := classifyFailure(resp.StatusCode, respBody)
		c.Log.Warn("submissionClient.Submit rejected by endpoint",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingFailureKindKey, string(failure.Kind)),
		)
		return nil, failure
	}

	accepted := &responses.SubmissionAccepted{StatusCode: resp.StatusCode}
	if gjson.ValidBytes(respBody) {
		accepted.SubmissionID = firstString(respBody, "id", "data.id", "submission_id")
		accepted.Message = firstString(respBody, "message", "data.message")
	}

	c.Log.Info("submissionClient.Submit accepted",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.String(constvars.LoggingSubmissionIDKey, accepted.SubmissionID),
	)
	return accepted, nil
}

// classifyFailure maps a non-2xx response to a failure kind. A 403, or any body whose
// code mentions captcha, is a challenge rejection.
func classifyFailure(statusCode int, body []byte) *SubmissionError {
	var message, code string
	if gjson.ValidBytes(body) {
		message = firstString(body, "message", "error.message", "error")
		code = strings.ToLower(firstString(body, "code", "error.code"))
	}

	switch {
	case statusCode == constvars.StatusForbidden || strings.Contains(code, "captcha"):
		return newSubmissionError(FailureCaptcha, statusCode, message, nil)
	case statusCode == constvars.StatusBadRequest || statusCode == constvars.StatusUnprocessableEntity:
		return newSubmissionError(FailureValidation, statusCode, message, nil)
	default:
		return newSubmissionError(FailureServer, statusCode, message, nil)
	}
}

func firstString(body []byte, paths ...string) string {
	for _, path := range paths {
		result := gjson.GetBytes(body, path)
		if result.Type == gjson.String && result.Str != "" {
			return result.Str
		}
	}
	return ""
}
