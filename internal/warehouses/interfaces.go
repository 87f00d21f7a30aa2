package warehouses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

// Repository defines persistence operations for the warehouse registry.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	List(ctx context.Context, params pagination.Params) ([]models.Warehouse, string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
