package controllers

import (
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/trucks"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

type createTruckRequest struct {
	Number   string       `json:"number" validate:"required"`
	Model    string       `json:"model,omitempty"`
	Capacity types.Amount `json:"capacity"`
}

type updateTruckRequest struct {
	Number   *string       `json:"number,omitempty" validate:"omitempty,min=1"`
	Model    *string       `json:"model,omitempty"`
	Capacity *types.Amount `json:"capacity,omitempty"`
	Status   *string       `json:"status,omitempty"`
}

func TruckCreate(svc trucks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createTruckRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		truck, err := svc.Create(r.Context(), trucks.CreateInput{
			Number:      req.Number,
			Model:       req.Model,
			Capacity:    req.Capacity.Decimal,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, truck)
	}
}

func TruckUpdate(svc trucks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "truckId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateTruckRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := trucks.UpdateInput{
			TruckID:     id,
			Number:      req.Number,
			Model:       req.Model,
			Capacity:    amountPtr(req.Capacity),
			ActorUserID: actor,
		}
		if req.Status != nil {
			status, err := enums.ParseTruckStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid truck status"))
				return
			}
			input.Status = &status
		}

		truck, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, truck)
	}
}

func TruckDelete(svc trucks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "truckId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), trucks.DeleteInput{TruckID: id, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func TruckDetail(svc trucks.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "truckId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		truck, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, truck)
	}
}

func TruckList(svc trucks.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, map[string]any{"trucks": list, "nextCursor": next})
	}
}
