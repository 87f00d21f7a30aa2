package middleware

import (
	"fmt"
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses instead of letting
// net/http tear down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				ctx := r.Context()
				err := fmt.Errorf("panic: %v", rec)
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
					logg.Error(ctx, "panic.recovered", err)
				}
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
