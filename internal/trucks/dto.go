package trucks

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// CreateInput registers a new truck.
type CreateInput struct {
	Number      string
	Model       string
	Capacity    decimal.Decimal
	ActorUserID uuid.UUID
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	TruckID     uuid.UUID
	Number      *string
	Model       *string
	Capacity    *decimal.Decimal
	Status      *enums.TruckStatus
	ActorUserID uuid.UUID
}

// DeleteInput removes a truck. Items still assigned to it are detached by
// the schema's ON DELETE SET NULL.
type DeleteInput struct {
	TruckID     uuid.UUID
	ActorUserID uuid.UUID
}
