package counterparties

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	RecordCreated(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, description string, userID uuid.UUID) error
	RecordFieldChanges(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, userID uuid.UUID, changes []audit.FieldChange) error
}

// Service manages the counterparty registry.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Counterparty, error)
	Update(ctx context.Context, input UpdateInput) (*models.Counterparty, error)
	Delete(ctx context.Context, input DeleteInput) error
	Get(ctx context.Context, counterpartyID uuid.UUID) (*models.Counterparty, error)
	List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Counterparty, string, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService builds a counterparty service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("counterparty repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: recorder}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Counterparty, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid counterparty type")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.Counterparty
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		counterparty, err := repo.Create(ctx, &models.Counterparty{
			Name:    input.Name,
			Type:    input.Type,
			INN:     input.INN,
			Phone:   input.Phone,
			Email:   input.Email,
			Address: input.Address,
			Comment: input.Comment,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create counterparty")
		}
		created = counterparty
		description := fmt.Sprintf("Создан контрагент %q", counterparty.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityCounterparty, counterparty.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Counterparty, error) {
	if input.CounterpartyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "counterparty id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Type != nil && !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid counterparty type")
	}

	var updated *models.Counterparty
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		counterparty, err := repo.FindByID(ctx, input.CounterpartyID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "counterparty not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load counterparty")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}
		if input.Name != nil && *input.Name != counterparty.Name {
			changes = append(changes, audit.FieldChange{Field: "name", OldValue: counterparty.Name, NewValue: *input.Name})
			updates["name"] = *input.Name
		}
		if input.Type != nil && *input.Type != counterparty.Type {
			changes = append(changes, audit.FieldChange{Field: "type", OldValue: counterparty.Type.String(), NewValue: input.Type.String()})
			updates["type"] = *input.Type
		}
		if input.INN != nil && !equalPtr(input.INN, counterparty.INN) {
			changes = append(changes, audit.FieldChange{Field: "inn", OldValue: derefOr(counterparty.INN, ""), NewValue: *input.INN})
			updates["inn"] = *input.INN
		}
		if input.Phone != nil && !equalPtr(input.Phone, counterparty.Phone) {
			changes = append(changes, audit.FieldChange{Field: "phone", OldValue: derefOr(counterparty.Phone, ""), NewValue: *input.Phone})
			updates["phone"] = *input.Phone
		}
		if input.Email != nil && !equalPtr(input.Email, counterparty.Email) {
			changes = append(changes, audit.FieldChange{Field: "email", OldValue: derefOr(counterparty.Email, ""), NewValue: *input.Email})
			updates["email"] = *input.Email
		}
		if input.Address != nil && !equalPtr(input.Address, counterparty.Address) {
			changes = append(changes, audit.FieldChange{Field: "address", OldValue: derefOr(counterparty.Address, ""), NewValue: *input.Address})
			updates["address"] = *input.Address
		}
		if input.Comment != nil && *input.Comment != counterparty.Comment {
			changes = append(changes, audit.FieldChange{Field: "comment", OldValue: counterparty.Comment, NewValue: *input.Comment})
			updates["comment"] = *input.Comment
		}

		if len(updates) == 0 {
			updated = counterparty
			return nil
		}
		if err := repo.Update(ctx, input.CounterpartyID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update counterparty")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityCounterparty, input.CounterpartyID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindByID(ctx, input.CounterpartyID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload counterparty")
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, input DeleteInput) error {
	if input.CounterpartyID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "counterparty id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, input.CounterpartyID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete counterparty")
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, counterpartyID uuid.UUID) (*models.Counterparty, error) {
	counterparty, err := s.repo.FindByID(ctx, counterpartyID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "counterparty not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load counterparty")
	}
	return counterparty, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) ([]models.Counterparty, string, error) {
	if filters.Type != nil && !filters.Type.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid counterparty type")
	}
	counterparties, next, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list counterparties")
	}
	return counterparties, next, nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
