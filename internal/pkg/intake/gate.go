package intake

import (
	"homecare-service/internal/pkg/constvars"
	"strings"
)

// GateConfig toggles the challenge widget. An empty SiteKey disables both the
// widget and the token requirement.
type GateConfig struct {
	SiteKey string `json:"site_key,omitempty"`
}

// ChallengeEnabled reports whether a challenge token is required at submit time.
func (c GateConfig) ChallengeEnabled() bool {
	return strings.TrimSpace(c.SiteKey) != ""
}

// GateError is returned when the challenge token is absent at submit time.
type GateError struct {
	Field   string
	Message string
}

func (e *GateError) Error() string {
	return e.Message
}

// Gate is the anti-automation gate: honeypot plus challenge token.
type Gate struct {
	config GateConfig
}

func NewGate(config GateConfig) *Gate {
	return &Gate{config: config}
}

func (g *Gate) Config() GateConfig {
	return g.config
}

// TokenSatisfied reports whether the challenge requirement is met for values.
func (g *Gate) TokenSatisfied(values map[string]any) bool {
	if !g.config.ChallengeEnabled() {
		return true
	}
	token, _ := values[FieldCaptchaToken].(string)
	return strings.TrimSpace(token) != ""
}

// Check is evaluated only on a submit attempt.
func (g *Gate) Check(values map[string]any) error {
	if g.TokenSatisfied(values) {
		return nil
	}
	return &GateError{Field: FieldCaptchaToken, Message: constvars.ErrClientCaptchaRequired}
}

// HoneypotTripped reports whether the hidden field carries any value.
func HoneypotTripped(values map[string]any) bool {
	switch v := values[FieldHoneypot].(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}
