package middlewares

import (
	"context"
	"homecare-service/internal/pkg/constvars"
	"homecare-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// DraftSession resolves the X-Draft-Token header to a draft ID and stores it in the
// request context. Requests without a valid token never reach the handler.
func (m *Middlewares) DraftSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		token := strings.TrimSpace(r.Header.Get(constvars.HeaderXDraftToken))
		draftID, err := m.IntakeUsecase.ResolveDraftSession(r.Context(), token)
		if err != nil {
			m.Log.Warn("Middlewares.DraftSession rejected request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_DRAFT_ID_KEY, draftID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
