package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterializeInput mirrors an order item into warehouse stock.
type MaterializeInput struct {
	WarehouseID     uuid.UUID
	Code            string
	Name            string
	Characteristics string
	Quantity        int
	UnitPrice       decimal.Decimal
	Weight          decimal.Decimal
	Volume          decimal.Decimal
	Photos          []string
}

// CreateItemInput creates a stock row directly from the admin console.
type CreateItemInput struct {
	WarehouseID     uuid.UUID
	Code            string
	Name            string
	Characteristics string
	Quantity        int
	UnitPrice       decimal.Decimal
	Weight          decimal.Decimal
	Volume          decimal.Decimal
	Photos          []string
	ActorUserID     uuid.UUID
}

// UpdateItemInput carries a partial update. Nil fields are left untouched.
type UpdateItemInput struct {
	ItemID          uuid.UUID
	Code            *string
	Name            *string
	Characteristics *string
	Quantity        *int
	UnitPrice       *decimal.Decimal
	Weight          *decimal.Decimal
	Volume          *decimal.Decimal
	Photos          []string
	ActorUserID     uuid.UUID
}

// DeleteItemInput removes a stock row.
type DeleteItemInput struct {
	ItemID      uuid.UUID
	ActorUserID uuid.UUID
}
