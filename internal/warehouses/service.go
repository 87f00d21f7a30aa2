package warehouses

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

// Service manages the warehouse registry.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Warehouse, error)
	Update(ctx context.Context, input UpdateInput) (*models.Warehouse, error)
	Delete(ctx context.Context, input DeleteInput) error
	Get(ctx context.Context, warehouseID uuid.UUID) (*models.Warehouse, error)
	List(ctx context.Context, params pagination.Params) ([]models.Warehouse, string, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService builds a warehouse service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouse repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: recorder}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Warehouse, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.Warehouse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		warehouse, err := repo.Create(ctx, &models.Warehouse{
			Name:    input.Name,
			Address: input.Address,
			Comment: input.Comment,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create warehouse")
		}
		created = warehouse
		description := fmt.Sprintf("Создан склад %q", warehouse.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityWarehouse, warehouse.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Warehouse, error) {
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.Warehouse
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		warehouse, err := repo.FindByID(ctx, input.WarehouseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}
		if input.Name != nil && *input.Name != warehouse.Name {
			changes = append(changes, audit.FieldChange{Field: "name", OldValue: warehouse.Name, NewValue: *input.Name})
			updates["name"] = *input.Name
		}
		if input.Address != nil && *input.Address != warehouse.Address {
			changes = append(changes, audit.FieldChange{Field: "address", OldValue: warehouse.Address, NewValue: *input.Address})
			updates["address"] = *input.Address
		}
		if input.Comment != nil && *input.Comment != warehouse.Comment {
			changes = append(changes, audit.FieldChange{Field: "comment", OldValue: warehouse.Comment, NewValue: *input.Comment})
			updates["comment"] = *input.Comment
		}

		if len(updates) == 0 {
			updated = warehouse
			return nil
		}
		if err := repo.Update(ctx, input.WarehouseID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warehouse")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityWarehouse, input.WarehouseID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindByID(ctx, input.WarehouseID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload warehouse")
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
	if input.WarehouseID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, input.WarehouseID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete warehouse")
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, warehouseID uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.repo.FindByID(ctx, warehouseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse")
	}
	return warehouse, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Warehouse, string, error) {
	warehouses, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouses")
	}
	return warehouses, next, nil
}
