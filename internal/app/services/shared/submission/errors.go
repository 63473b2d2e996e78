package submission

import (
	"fmt"
	"homecare-service/internal/pkg/constvars"
)

// FailureKind classifies why the persistence endpoint did not accept a document.
type FailureKind string

const (
	FailureTransport  FailureKind = "transport"
	FailureValidation FailureKind = "validation"
	FailureCaptcha    FailureKind = "captcha"
	FailureServer     FailureKind = "server"
)

// SubmissionError carries the message shown to the user: the server's own message when it
// sent one, otherwise a generic fallback.
type SubmissionError struct {
	Kind       FailureKind
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submission %s failure (status %d): %s: %v", e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("submission %s failure (status %d): %s", e.Kind, e.StatusCode, e.Message)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func newSubmissionError(kind FailureKind, statusCode int, message string, err error) *SubmissionError {
	if message == "" {
		message = constvars.ErrClientSubmissionFailed
	}
	return &SubmissionError{Kind: kind, StatusCode: statusCode, Message: message, Err: err}
}
