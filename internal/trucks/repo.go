package trucks

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

// NewRepository builds a truck repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, truck *models.Truck) (*models.Truck, error) {
	if err := r.db.WithContext(ctx).Create(truck).Error; err != nil {
		return nil, err
	}
	return truck, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Truck, error) {
	var truck models.Truck
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&truck).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params) ([]models.Truck, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Truck{})
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var trucks []models.Truck
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&trucks).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(trucks) > normalized {
		trucks = trucks[:normalized]
		last := trucks[normalized-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return trucks, nextCursor, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Truck{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Truck{}).Error
}

func (r *repository) FindAssignedItems(ctx context.Context, truckID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("truck_id = ?", truckID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
