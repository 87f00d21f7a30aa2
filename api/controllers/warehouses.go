package controllers

import (
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/warehouses"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

type createWarehouseRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
	Comment string `json:"comment,omitempty"`
}

type updateWarehouseRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address *string `json:"address,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func WarehouseCreate(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createWarehouseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.Create(r.Context(), warehouses.CreateInput{
			Name:        req.Name,
			Address:     req.Address,
			Comment:     req.Comment,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, warehouse)
	}
}

func WarehouseUpdate(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateWarehouseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.Update(r.Context(), warehouses.UpdateInput{
			WarehouseID: id,
			Name:        req.Name,
			Address:     req.Address,
			Comment:     req.Comment,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouse)
	}
}

func WarehouseDelete(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), warehouses.DeleteInput{WarehouseID: id, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func WarehouseDetail(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, warehouse)
	}
}

func WarehouseList(svc warehouses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, next, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"warehouses": list, "nextCursor": next})
	}
}
