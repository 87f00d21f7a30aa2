package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// FieldChange is a single field delta produced by diffing an update payload
// against the stored row.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

// HistoryFilters narrow the change history list to one entity or entity kind.
type HistoryFilters struct {
	EntityType *enums.EntityType
	EntityID   *uuid.UUID
	UserID     *uuid.UUID
}

// HistoryEntry is one audit record joined with the operator display name.
type HistoryEntry struct {
	ID           uuid.UUID         `json:"id"`
	EntityType   enums.EntityType  `json:"entity_type"`
	EntityID     uuid.UUID         `json:"entity_id"`
	Action       enums.AuditAction `json:"action"`
	FieldChanged *string           `json:"field_changed,omitempty"`
	OldValue     *string           `json:"old_value,omitempty"`
	NewValue     *string           `json:"new_value,omitempty"`
	Description  string            `json:"description"`
	UserID       uuid.UUID         `json:"user_id"`
	UserName     string            `json:"user_name"`
	CreatedAt    time.Time         `json:"created_at"`
}

// HistoryList wraps the paginated entries plus the next page cursor.
type HistoryList struct {
	Entries    []HistoryEntry `json:"entries"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
