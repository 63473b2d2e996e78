package middlewares

import (
	"homecare-service/internal/pkg/exceptions"
	"homecare-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit limits every route per client IP.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.App.MaxRequests,
		time.Duration(m.InternalConfig.App.MaxTimeRequestsPerSeconds)*time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(m.rateLimited),
	)
}

// DraftCreationRateLimit limits how many drafts one IP can open per minute.
func (m *Middlewares) DraftCreationRateLimit() func(next http.Handler) http.Handler {
	return httprate.Limit(
		m.InternalConfig.Intake.MaxDraftsPerMinutePerIP,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(m.rateLimited),
	)
}

func (m *Middlewares) rateLimited(w http.ResponseWriter, r *http.Request) {
	utils.BuildErrorResponse(m.Log, w, exceptions.ErrRateLimited(nil))
}
