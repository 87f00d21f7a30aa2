package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Warehouse is a registry entry plus rollup statistics over its inventory
// rows. The Total* columns are recomputed from scratch after every inventory
// mutation touching the warehouse.
type Warehouse struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Address     string          `gorm:"column:address"`
	Comment     string          `gorm:"column:comment"`
	TotalItems  int             `gorm:"column:total_items;not null;default:0"`
	TotalVolume decimal.Decimal `gorm:"column:total_volume;type:numeric;not null;default:0"`
	TotalValue  decimal.Decimal `gorm:"column:total_value;type:numeric;not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
