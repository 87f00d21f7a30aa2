package audit

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

// NewRepository builds a change history repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Insert(ctx context.Context, entries []models.ChangeHistory) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters HistoryFilters) (*HistoryList, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.ChangeHistory{})
	if filters.EntityType != nil {
		query = query.Where("entity_type = ?", *filters.EntityType)
	}
	if filters.EntityID != nil {
		query = query.Where("entity_id = ?", *filters.EntityID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.ChangeHistory
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > normalized {
		rows = rows[:normalized]
		last := rows[normalized-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	names, err := r.operatorNames(ctx, rows)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, HistoryEntry{
			ID:           row.ID,
			EntityType:   row.EntityType,
			EntityID:     row.EntityID,
			Action:       row.Action,
			FieldChanged: row.FieldChanged,
			OldValue:     row.OldValue,
			NewValue:     row.NewValue,
			Description:  row.Description,
			UserID:       row.UserID,
			UserName:     names[row.UserID],
			CreatedAt:    row.CreatedAt,
		})
	}

	return &HistoryList{Entries: entries, NextCursor: nextCursor}, nil
}

func (r *repository) operatorNames(ctx context.Context, rows []models.ChangeHistory) (map[uuid.UUID]string, error) {
	names := map[uuid.UUID]string{}
	if len(rows) == 0 {
		return names, nil
	}

	seen := map[uuid.UUID]struct{}{}
	ids := []uuid.UUID{}
	for _, row := range rows {
		if _, ok := seen[row.UserID]; ok {
			continue
		}
		seen[row.UserID] = struct{}{}
		ids = append(ids, row.UserID)
	}

	var users []models.AdminUser
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, user := range users {
		names[user.ID] = user.DisplayName
	}
	return names, nil
}
