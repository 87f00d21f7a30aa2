package controllers

import (
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/counterparties"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

type createCounterpartyRequest struct {
	Name    string  `json:"name" validate:"required"`
	Type    string  `json:"type" validate:"required"`
	INN     *string `json:"inn,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Comment string  `json:"comment,omitempty"`
}

type updateCounterpartyRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Type    *string `json:"type,omitempty"`
	INN     *string `json:"inn,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

func CounterpartyCreate(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createCounterpartyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctype, err := enums.ParseCounterpartyType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid counterparty type"))
			return
		}

		counterparty, err := svc.Create(r.Context(), counterparties.CreateInput{
			Name:        req.Name,
			Type:        ctype,
			INN:         req.INN,
			Phone:       req.Phone,
			Email:       req.Email,
			Address:     req.Address,
			Comment:     req.Comment,
			ActorUserID: actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, counterparty)
	}
}

func CounterpartyUpdate(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "counterpartyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateCounterpartyRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := counterparties.UpdateInput{
			CounterpartyID: id,
			Name:           req.Name,
			INN:            req.INN,
			Phone:          req.Phone,
			Email:          req.Email,
			Address:        req.Address,
			Comment:        req.Comment,
			ActorUserID:    actor,
		}
		if req.Type != nil {
			ctype, err := enums.ParseCounterpartyType(*req.Type)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid counterparty type"))
				return
			}
			input.Type = &ctype
		}

		counterparty, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, counterparty)
	}
}

func CounterpartyDelete(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "counterpartyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), counterparties.DeleteInput{CounterpartyID: id, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func CounterpartyDetail(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "counterpartyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		counterparty, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, counterparty)
	}
}

func CounterpartyList(svc counterparties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := counterparties.Filters{Query: r.URL.Query().Get("q")}
		if raw := r.URL.Query().Get("type"); raw != "" {
			ctype, err := enums.ParseCounterpartyType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid counterparty type"))
				return
			}
			filters.Type = &ctype
		}

		list, next, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"counterparties": list, "nextCursor": next})
	}
}
