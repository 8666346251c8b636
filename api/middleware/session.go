package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/andremartins/storefront-backend/pkg/logger"
)

// SessionIDHeader carries the anonymous session identity. Clients that omit
// it get a fresh id minted and echoed back, and are expected to resend it so
// their cart and favorites survive reloads.
const SessionIDHeader = "X-Session-Id"

type sessionIDKey struct{}

// Session resolves or mints the session id, echoes it on the response, and
// stores it on the request context for the controllers.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(SessionIDHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(SessionIDHeader, sessionID)

			ctx := context.WithValue(r.Context(), sessionIDKey{}, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFromContext returns the resolved session id, or "" outside the
// Session middleware.
func SessionIDFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return sessionID
	}
	return ""
}
