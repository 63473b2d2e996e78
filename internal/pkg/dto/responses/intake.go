package responses

import "time"

type IntakeSchema struct {
	Sections      []IntakeSection `json:"sections"`
	Consents      []IntakeField   `json:"consents"`
	Captcha       IntakeCaptcha   `json:"captcha"`
	HoneypotField string          `json:"honeypot_field"`
	TokenField    string          `json:"token_field"`
}

type IntakeSection struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Fields []IntakeField `json:"fields"`
}

type IntakeField struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

type IntakeCaptcha struct {
	Enabled bool   `json:"enabled"`
	SiteKey string `json:"site_key,omitempty"`
}

type IntakeDraftSession struct {
	DraftID   string      `json:"draft_id"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Draft     IntakeDraft `json:"draft"`
}

type IntakeDraft struct {
	DraftID           string                 `json:"draft_id"`
	Values            map[string]interface{} `json:"values"`
	Errors            map[string]string      `json:"errors"`
	Valid             bool                   `json:"valid"`
	SubmissionEnabled bool                   `json:"submission_enabled"`
	Status            string                 `json:"status"`
	LastFailure       string                 `json:"last_failure,omitempty"`
}

type SubmissionReceipt struct {
	DraftID      string    `json:"draft_id"`
	SubmissionID string    `json:"submission_id,omitempty"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// SubmissionAccepted is what the persistence endpoint returns for an accepted document.
type SubmissionAccepted struct {
	SubmissionID string `json:"id,omitempty"`
	Message      string `json:"message,omitempty"`
	StatusCode   int    `json:"-"`
}
