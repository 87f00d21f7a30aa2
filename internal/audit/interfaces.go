package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

// Repository defines persistence operations for change history rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, entries []models.ChangeHistory) error
	List(ctx context.Context, params pagination.Params, filters HistoryFilters) (*HistoryList, error)
}
