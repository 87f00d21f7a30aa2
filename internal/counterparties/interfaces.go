package counterparties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

// Repository defines persistence operations for the counterparty registry.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, counterparty *models.Counterparty) (*models.Counterparty, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Counterparty, error)
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Counterparty, string, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}
