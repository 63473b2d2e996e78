package requests

type CreateIntakeDraft struct {
	RequestID string
}

type FindIntakeDraft struct {
	DraftID   string
	RequestID string
}

type UpdateIntakeDraft struct {
	Fields    map[string]interface{} `json:"fields" validate:"required,min=1"`
	DraftID   string
	RequestID string
}

type SubmitIntakeDraft struct {
	CaptchaToken string `json:"captcha_token,omitempty"`
	DraftID      string
	RequestID    string
}

type DiscardIntakeDraft struct {
	DraftID   string
	RequestID string
}
