package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

// Repository defines persistence operations for orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOrderWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, string, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error)
	FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	DeleteItemsByOrder(ctx context.Context, orderID uuid.UUID) error
}
