package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
)

// Service records and lists change history. Record methods run inside the
// caller's transaction so audit rows commit or roll back with the primary
// write.
type Service interface {
	RecordCreated(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, description string, userID uuid.UUID) error
	RecordFieldChanges(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, userID uuid.UUID, changes []FieldChange) error
	List(ctx context.Context, params pagination.Params, filters HistoryFilters) (*HistoryList, error)
}

type service struct {
	repo Repository
}

// NewService builds an audit service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) RecordCreated(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, description string, userID uuid.UUID) error {
	if !entityType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type")
	}
	if entityID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "entity id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	entry := models.ChangeHistory{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      enums.AuditActionCreated,
		Description: description,
		UserID:      userID,
	}
	if err := s.repo.WithTx(tx).Insert(ctx, []models.ChangeHistory{entry}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert audit entry")
	}
	return nil
}

func (s *service) RecordFieldChanges(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, userID uuid.UUID, changes []FieldChange) error {
	if !entityType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type")
	}
	if entityID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "entity id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if len(changes) == 0 {
		return nil
	}

	entries := make([]models.ChangeHistory, 0, len(changes))
	for _, change := range changes {
		field := change.Field
		oldValue := change.OldValue
		newValue := change.NewValue
		entries = append(entries, models.ChangeHistory{
			EntityType:   entityType,
			EntityID:     entityID,
			Action:       enums.AuditActionUpdated,
			FieldChanged: &field,
			OldValue:     &oldValue,
			NewValue:     &newValue,
			Description:  fmt.Sprintf("%s: %s -> %s", field, oldValue, newValue),
			UserID:       userID,
		})
	}
	if err := s.repo.WithTx(tx).Insert(ctx, entries); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert audit entries")
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters HistoryFilters) (*HistoryList, error) {
	if filters.EntityType != nil && !filters.EntityType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid entity type")
	}
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list change history")
	}
	return list, nil
}
