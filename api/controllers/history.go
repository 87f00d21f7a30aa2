package controllers

import (
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

// HistoryList returns the change history, newest first, optionally scoped
// to one entity or one acting operator.
func HistoryList(svc audit.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := audit.HistoryFilters{}
		if raw := r.URL.Query().Get("entityType"); raw != "" {
			entityType, err := enums.ParseEntityType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid entity type"))
				return
			}
			filters.EntityType = &entityType
		}
		if filters.EntityID, err = validators.ParseQueryUUID(r, "entityId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.UserID, err = validators.ParseQueryUUID(r, "userId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
