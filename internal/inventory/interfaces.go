package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

// Repository defines persistence operations for warehouse stock rows and the
// warehouse rollup columns they feed.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, item *models.WarehouseInventory) (*models.WarehouseInventory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.WarehouseInventory, error)
	FindAllByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.WarehouseInventory, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, params pagination.Params) ([]models.WarehouseInventory, string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateWarehouseRollup(ctx context.Context, warehouseID uuid.UUID, updates map[string]any) error
}
