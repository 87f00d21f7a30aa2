package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cargodesk/cargodesk-backend/api/middleware"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

// amountPtr unwraps an optional money field into the plain decimal pointer
// service inputs expect. Absent fields stay nil.
func amountPtr(a *types.Amount) *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}

// actorID resolves the authenticated operator id seeded by middleware.Auth.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return id, nil
}

// pathUUID parses a chi URL parameter as a UUID.
func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id in path").WithDetails(map[string]any{"param": key})
	}
	return id, nil
}
