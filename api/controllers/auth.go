package controllers

import (
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/middleware"
	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/auth"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

// AuthLogin authenticates an operator and returns an access token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// AuthLogout revokes the session behind the presented token.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jti := middleware.SessionJTIFromContext(r.Context())
		if err := svc.Logout(r.Context(), jti); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
