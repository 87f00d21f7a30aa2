package controllers

import (
	"net/http"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/inventory"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

type createInventoryItemRequest struct {
	Code            string       `json:"code" validate:"required"`
	Name            string       `json:"name" validate:"required"`
	Characteristics string       `json:"characteristics,omitempty"`
	Quantity        int          `json:"quantity" validate:"gte=0"`
	UnitPrice       types.Amount `json:"unitPrice"`
	Weight          types.Amount `json:"weight"`
	Volume          types.Amount `json:"volume"`
	Photos          []string     `json:"photos,omitempty"`
}

type updateInventoryItemRequest struct {
	Code            *string       `json:"code,omitempty"`
	Name            *string       `json:"name,omitempty" validate:"omitempty,min=1"`
	Characteristics *string       `json:"characteristics,omitempty"`
	Quantity        *int          `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	UnitPrice       *types.Amount `json:"unitPrice,omitempty"`
	Weight          *types.Amount `json:"weight,omitempty"`
	Volume          *types.Amount `json:"volume,omitempty"`
	Photos          []string      `json:"photos,omitempty"`
}

func InventoryItemCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		warehouseID, err := pathUUID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createInventoryItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CreateItem(r.Context(), inventory.CreateItemInput{
			WarehouseID:     warehouseID,
			Code:            req.Code,
			Name:            req.Name,
			Characteristics: req.Characteristics,
			Quantity:        req.Quantity,
			UnitPrice:       req.UnitPrice.Decimal,
			Weight:          req.Weight.Decimal,
			Volume:          req.Volume.Decimal,
			Photos:          req.Photos,
			ActorUserID:     actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func InventoryItemUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateInventoryItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpdateItem(r.Context(), inventory.UpdateItemInput{
			ItemID:          itemID,
			Code:            req.Code,
			Name:            req.Name,
			Characteristics: req.Characteristics,
			Quantity:        req.Quantity,
			UnitPrice:       amountPtr(req.UnitPrice),
			Weight:          amountPtr(req.Weight),
			Volume:          amountPtr(req.Volume),
			Photos:          req.Photos,
			ActorUserID:     actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func InventoryItemDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), inventory.DeleteItemInput{ItemID: itemID, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func InventoryItemDetail(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := pathUUID(r, "itemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		warehouseID, err := pathUUID(r, "warehouseId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, next, err := svc.ListByWarehouse(r.Context(), warehouseID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": list, "nextCursor": next})
	}
}
