package counterparties

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

// NewRepository builds a counterparty repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, counterparty *models.Counterparty) (*models.Counterparty, error) {
	if err := r.db.WithContext(ctx).Create(counterparty).Error; err != nil {
		return nil, err
	}
	return counterparty, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Counterparty, error) {
	var counterparty models.Counterparty
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&counterparty).Error
	if err != nil {
		return nil, err
	}
	return &counterparty, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Counterparty, string, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Counterparty{})
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		query = query.Where("name LIKE ? OR inn LIKE ?", pattern, pattern)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var counterparties []models.Counterparty
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&counterparties).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(counterparties) > normalized {
		counterparties = counterparties[:normalized]
		last := counterparties[normalized-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return counterparties, nextCursor, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Counterparty{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Counterparty{}).Error
}
