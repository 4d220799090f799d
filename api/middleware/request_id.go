package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// Inbound ids longer than this are replaced rather than echoed.
const maxRequestIDLen = 64

// RequestID tags every request with an id, honoring one supplied by the
// caller so gateway and app logs can be correlated.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" || len(reqID) > maxRequestIDLen {
				reqID = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
