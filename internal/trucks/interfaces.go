package trucks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

// Repository defines persistence operations for trucks and the order items
// assigned to them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, truck *models.Truck) (*models.Truck, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Truck, error)
	List(ctx context.Context, params pagination.Params) ([]models.Truck, string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindAssignedItems(ctx context.Context, truckID uuid.UUID) ([]models.OrderItem, error)
}
