package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// ChangeHistory is an immutable audit entry. Application code only ever
// inserts and reads these rows; there is no update or delete path.
type ChangeHistory struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EntityType   enums.EntityType  `gorm:"column:entity_type;type:text;not null;index:idx_change_history_entity"`
	EntityID     uuid.UUID         `gorm:"column:entity_id;type:uuid;not null;index:idx_change_history_entity"`
	Action       enums.AuditAction `gorm:"column:action;type:text;not null"`
	FieldChanged *string           `gorm:"column:field_changed"`
	OldValue     *string           `gorm:"column:old_value"`
	NewValue     *string           `gorm:"column:new_value"`
	Description  string            `gorm:"column:description"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
}
