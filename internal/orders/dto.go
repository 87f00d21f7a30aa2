package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

// CreateOrderInput creates an order, initially without line items.
type CreateOrderInput struct {
	Name           string
	Code           *string
	CounterpartyID *uuid.UUID
	ActorUserID    uuid.UUID
}

// UpdateOrderInput carries a partial order update. Nil fields are left
// untouched; CounterpartyID uses the nullable wrapper so an explicit null
// detaches the counterparty.
type UpdateOrderInput struct {
	OrderID        uuid.UUID
	Name           *string
	Code           *string
	CounterpartyID *types.NullableUUID
	Status         *enums.OrderStatus
	ActorUserID    uuid.UUID
}

// DeleteOrderInput removes an order together with its line items.
type DeleteOrderInput struct {
	OrderID     uuid.UUID
	ActorUserID uuid.UUID
}

// OrderFilters narrow the order list.
type OrderFilters struct {
	Status         *enums.OrderStatus
	CounterpartyID *uuid.UUID
	Query          string
}

// CreateItemInput adds a line item to an order. InventoryItemID is set when
// the item is drawn from existing warehouse stock instead of a fresh intake.
type CreateItemInput struct {
	OrderID         uuid.UUID
	Code            string
	Name            string
	Quantity        int
	Characteristics string
	Comment         string
	VolumeType      enums.VolumeType
	Weight          decimal.Decimal
	Volume          decimal.Decimal
	UnitPrice       decimal.Decimal
	TransportPrice  decimal.Decimal
	PaidAmount      decimal.Decimal
	Status          enums.OrderItemStatus
	WarehouseID     *uuid.UUID
	TruckID         *uuid.UUID
	InventoryItemID *uuid.UUID
	FromInventory   bool
	Photos          []string
	ActorUserID     uuid.UUID
}

// UpdateItemInput carries a partial line item update. Nil fields are left
// untouched. WarehouseID and TruckID use the nullable wrapper so explicit
// nulls detach the item.
type UpdateItemInput struct {
	ItemID          uuid.UUID
	Code            *string
	Name            *string
	Quantity        *int
	Characteristics *string
	Comment         *string
	VolumeType      *enums.VolumeType
	Weight          *decimal.Decimal
	Volume          *decimal.Decimal
	UnitPrice       *decimal.Decimal
	TransportPrice  *decimal.Decimal
	PaidAmount      *decimal.Decimal
	Status          *enums.OrderItemStatus
	WarehouseID     *types.NullableUUID
	TruckID         *types.NullableUUID
	Photos          []string
	ActorUserID     uuid.UUID
}

// DeleteItemInput removes a single line item.
type DeleteItemInput struct {
	ItemID      uuid.UUID
	ActorUserID uuid.UUID
}
