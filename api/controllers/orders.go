package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/api/responses"
	"github.com/cargodesk/cargodesk-backend/api/validators"
	"github.com/cargodesk/cargodesk-backend/internal/orders"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

type createOrderRequest struct {
	Name           string     `json:"name" validate:"required"`
	Code           *string    `json:"code,omitempty"`
	CounterpartyID *uuid.UUID `json:"counterpartyId,omitempty"`
}

type updateOrderRequest struct {
	Name           *string             `json:"name,omitempty" validate:"omitempty,min=1"`
	Code           *string             `json:"code,omitempty"`
	CounterpartyID *types.NullableUUID `json:"counterpartyId,omitempty"`
	Status         *string             `json:"status,omitempty"`
}

func OrderCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CreateOrder(r.Context(), orders.CreateOrderInput{
			Name:           req.Name,
			Code:           req.Code,
			CounterpartyID: req.CounterpartyID,
			ActorUserID:    actor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func OrderUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.UpdateOrderInput{
			OrderID:        id,
			Name:           req.Name,
			Code:           req.Code,
			CounterpartyID: req.CounterpartyID,
			ActorUserID:    actor,
		}
		if req.Status != nil {
			status, err := enums.ParseOrderStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
				return
			}
			input.Status = &status
		}

		order, err := svc.UpdateOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOrder(r.Context(), orders.DeleteOrderInput{OrderID: id, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func OrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := orders.OrderFilters{Query: r.URL.Query().Get("q")}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
				return
			}
			filters.Status = &status
		}
		counterpartyID, err := validators.ParseQueryUUID(r, "counterpartyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.CounterpartyID = counterpartyID

		list, next, err := svc.ListOrders(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": list, "nextCursor": next})
	}
}

type createOrderItemRequest struct {
	Code            string       `json:"code" validate:"required"`
	Name            string       `json:"name" validate:"required"`
	Quantity        int          `json:"quantity" validate:"gte=0"`
	Characteristics string       `json:"characteristics,omitempty"`
	Comment         string       `json:"comment,omitempty"`
	VolumeType      string       `json:"volumeType" validate:"required"`
	Weight          types.Amount `json:"weight"`
	Volume          types.Amount `json:"volume"`
	UnitPrice       types.Amount `json:"unitPrice"`
	TransportPrice  types.Amount `json:"transportPrice"`
	PaidAmount      types.Amount `json:"paidAmount"`
	Status          string       `json:"status" validate:"required"`
	WarehouseID     *uuid.UUID   `json:"warehouseId,omitempty"`
	TruckID         *uuid.UUID   `json:"truckId,omitempty"`
	InventoryItemID *uuid.UUID   `json:"inventoryItemId,omitempty"`
	FromInventory   bool         `json:"fromInventory,omitempty"`
	Photos          []string     `json:"photos,omitempty"`
}

type updateOrderItemRequest struct {
	Code            *string             `json:"code,omitempty"`
	Name            *string             `json:"name,omitempty" validate:"omitempty,min=1"`
	Quantity        *int                `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Characteristics *string             `json:"characteristics,omitempty"`
	Comment         *string             `json:"comment,omitempty"`
	VolumeType      *string             `json:"volumeType,omitempty"`
	Weight          *types.Amount       `json:"weight,omitempty"`
	Volume          *types.Amount       `json:"volume,omitempty"`
	UnitPrice       *types.Amount       `json:"unitPrice,omitempty"`
	TransportPrice  *types.Amount       `json:"transportPrice,omitempty"`
	PaidAmount      *types.Amount       `json:"paidAmount,omitempty"`
	Status          *string             `json:"status,omitempty"`
	WarehouseID     *types.NullableUUID `json:"warehouseId,omitempty"`
	TruckID         *types.NullableUUID `json:"truckId,omitempty"`
	Photos          []string            `json:"photos,omitempty"`
}

func OrderItemCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createOrderItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		volumeType, err := enums.ParseVolumeType(req.VolumeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid volume type"))
			return
		}
		status, err := enums.ParseOrderItemStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item status"))
			return
		}

		item, err := svc.CreateItem(r.Context(), orders.CreateItemInput{
			OrderID:         orderID,
			Code:            req.Code,
			Name:            req.Name,
			Quantity:        req.Quantity,
			Characteristics: req.Characteristics,
			Comment:         req.Comment,
			VolumeType:      volumeType,
			Weight:          req.Weight.Decimal,
			Volume:          req.Volume.Decimal,
			UnitPrice:       req.UnitPrice.Decimal,
			TransportPrice:  req.TransportPrice.Decimal,
			PaidAmount:      req.PaidAmount.Decimal,
			Status:          status,
			WarehouseID:     req.WarehouseID,
			TruckID:         req.TruckID,
			InventoryItemID: req.InventoryItemID,
			FromInventory:   req.FromInventory,
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

func OrderItemUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		var req updateOrderItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.UpdateItemInput{
			ItemID:          itemID,
			Code:            req.Code,
			Name:            req.Name,
			Quantity:        req.Quantity,
			Characteristics: req.Characteristics,
			Comment:         req.Comment,
			Weight:          amountPtr(req.Weight),
			Volume:          amountPtr(req.Volume),
			UnitPrice:       amountPtr(req.UnitPrice),
			TransportPrice:  amountPtr(req.TransportPrice),
			PaidAmount:      amountPtr(req.PaidAmount),
			WarehouseID:     req.WarehouseID,
			TruckID:         req.TruckID,
			Photos:          req.Photos,
			ActorUserID:     actor,
		}
		if req.VolumeType != nil {
			volumeType, err := enums.ParseVolumeType(*req.VolumeType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid volume type"))
				return
			}
			input.VolumeType = &volumeType
		}
		if req.Status != nil {
			status, err := enums.ParseOrderItemStatus(*req.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item status"))
				return
			}
			input.Status = &status
		}

		item, err := svc.UpdateItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func OrderItemDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.DeleteItem(r.Context(), orders.DeleteItemInput{ItemID: itemID, ActorUserID: actor}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
