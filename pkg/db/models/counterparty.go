package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// Counterparty is a client or supplier registry entry.
type Counterparty struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string                 `gorm:"column:name;not null"`
	Type      enums.CounterpartyType `gorm:"column:type;type:text;not null"`
	INN       *string                `gorm:"column:inn"`
	Phone     *string                `gorm:"column:phone"`
	Email     *string                `gorm:"column:email"`
	Address   *string                `gorm:"column:address"`
	Comment   string                 `gorm:"column:comment"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
