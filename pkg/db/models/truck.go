package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// Truck is a transport unit. CurrentWeight/CurrentVolume are rollups over
// the order items currently assigned to the truck.
type Truck struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number        string            `gorm:"column:number;not null"`
	Model         string            `gorm:"column:model"`
	Capacity      decimal.Decimal   `gorm:"column:capacity;type:numeric;not null;default:0"`
	CurrentWeight decimal.Decimal   `gorm:"column:current_weight;type:numeric;not null;default:0"`
	CurrentVolume decimal.Decimal   `gorm:"column:current_volume;type:numeric;not null;default:0"`
	Status        enums.TruckStatus `gorm:"column:status;type:text;not null;default:'Свободен'"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
