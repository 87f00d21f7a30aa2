package counterparties

import (
	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// CreateInput registers a client or supplier.
type CreateInput struct {
	Name        string
	Type        enums.CounterpartyType
	INN         *string
	Phone       *string
	Email       *string
	Address     *string
	Comment     string
	ActorUserID uuid.UUID
}

// UpdateInput carries a partial update. Nil fields are left untouched.
type UpdateInput struct {
	CounterpartyID uuid.UUID
	Name           *string
	Type           *enums.CounterpartyType
	INN            *string
	Phone          *string
	Email          *string
	Address        *string
	Comment        *string
	ActorUserID    uuid.UUID
}

// DeleteInput removes a registry entry.
type DeleteInput struct {
	CounterpartyID uuid.UUID
	ActorUserID    uuid.UUID
}

// Filters narrow the counterparty list.
type Filters struct {
	Type  *enums.CounterpartyType
	Query string
}
