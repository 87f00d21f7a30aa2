package warehouses

import "github.com/google/uuid"

// CreateInput registers a new warehouse.
type CreateInput struct {
	Name        string
	Address     string
	Comment     string
	ActorUserID uuid.UUID
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	WarehouseID uuid.UUID
	Name        *string
	Address     *string
	Comment     *string
	ActorUserID uuid.UUID
}

// DeleteInput removes a warehouse and, via the schema cascade, its stock.
type DeleteInput struct {
	WarehouseID uuid.UUID
	ActorUserID uuid.UUID
}
