package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags each request with an id, honoring one supplied by the client
// so a caller can correlate its own traces with server logs. The id is echoed
// back in the response header and stamped on the request logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
