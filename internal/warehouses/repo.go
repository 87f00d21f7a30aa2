package warehouses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a warehouse repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	if err := r.db.WithContext(ctx).Create(warehouse).Error; err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Warehouse, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Warehouse{})
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var warehouses []models.Warehouse
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&warehouses).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(warehouses) > normalized {
		warehouses = warehouses[:normalized]
		last := warehouses[normalized-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return warehouses, nextCursor, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Warehouse{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Warehouse{}).Error
}
