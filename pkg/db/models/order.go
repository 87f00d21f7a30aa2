package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// Order groups line items for one shipment or purchase. The Total* columns
// are denormalized caches recomputed from the item set after every item
// mutation; they are never treated as sources of truth.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string            `gorm:"column:name;not null"`
	Code           *string           `gorm:"column:code"`
	CounterpartyID *uuid.UUID        `gorm:"column:counterparty_id;type:uuid"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'active'"`
	TotalAmount    decimal.Decimal   `gorm:"column:total_amount;type:numeric;not null;default:0"`
	PaidAmount     decimal.Decimal   `gorm:"column:paid_amount;type:numeric;not null;default:0"`
	UnpaidAmount   decimal.Decimal   `gorm:"column:unpaid_amount;type:numeric;not null;default:0"`
	TotalQuantity  int               `gorm:"column:total_quantity;not null;default:0"`
	TotalWeight    decimal.Decimal   `gorm:"column:total_weight;type:numeric;not null;default:0"`
	TotalVolume    decimal.Decimal   `gorm:"column:total_volume;type:numeric;not null;default:0"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
