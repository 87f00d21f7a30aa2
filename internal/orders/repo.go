package orders

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

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Order{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *filters.CounterpartyID)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", pattern, pattern)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(orders) > normalized {
		orders = orders[:normalized]
		last := orders[normalized-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return orders, nextCursor, nil
}

func (r *repository) UpdateOrder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Order{}).Error
}

func (r *repository) CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.OrderItem{}).Error
}

func (r *repository) DeleteItemsByOrder(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error
}
