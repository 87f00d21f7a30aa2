package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseInventory mirrors an order item (or a manually created product)
// as stock at a specific warehouse. Quantity is the nominal stock;
// AvailableQuantity depletes when the mirrored item leaves the warehouse and
// replenishes when it returns. Invariant: 0 <= available <= quantity.
type WarehouseInventory struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WarehouseID       uuid.UUID       `gorm:"column:warehouse_id;type:uuid;not null;index"`
	Code              string          `gorm:"column:code;not null"`
	Name              string          `gorm:"column:name;not null"`
	Characteristics   string          `gorm:"column:characteristics"`
	Quantity          int             `gorm:"column:quantity;not null;default:0"`
	AvailableQuantity int             `gorm:"column:available_quantity;not null;default:0"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price;type:numeric;not null;default:0"`
	Weight            decimal.Decimal `gorm:"column:weight;type:numeric;not null;default:0"`
	Volume            decimal.Decimal `gorm:"column:volume;type:numeric;not null;default:0"`
	Photos            []string        `gorm:"column:photos;type:jsonb;serializer:json"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
