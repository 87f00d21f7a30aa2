package inventory

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

// NewRepository builds an inventory repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, item *models.WarehouseInventory) (*models.WarehouseInventory, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.WarehouseInventory, error) {
	var item models.WarehouseInventory
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindAllByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]models.WarehouseInventory, error) {
	var items []models.WarehouseInventory
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, params pagination.Params) ([]models.WarehouseInventory, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.WarehouseInventory{}).
		Where("warehouse_id = ?", warehouseID)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var items []models.WarehouseInventory
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(items) > normalized {
		items = items[:normalized]
		last := items[normalized-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return items, nextCursor, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.WarehouseInventory{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.WarehouseInventory{}).Error
}

func (r *repository) UpdateWarehouseRollup(ctx context.Context, warehouseID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Warehouse{}).
		Where("id = ?", warehouseID).
		Updates(updates).Error
}
