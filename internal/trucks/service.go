package trucks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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

// Service manages the truck registry and the load rollups derived from the
// items assigned to each truck.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Truck, error)
	Update(ctx context.Context, input UpdateInput) (*models.Truck, error)
	Delete(ctx context.Context, input DeleteInput) error
	Get(ctx context.Context, truckID uuid.UUID) (*models.Truck, error)
	List(ctx context.Context, params pagination.Params) ([]models.Truck, string, error)
	RecomputeLoad(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) error
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService builds a truck service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("truck repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: recorder}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Truck, error) {
	if input.Number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "truck number required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.Truck
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		truck, err := repo.Create(ctx, &models.Truck{
			Number:   input.Number,
			Model:    input.Model,
			Capacity: input.Capacity,
			Status:   enums.TruckStatusFree,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create truck")
		}
		created = truck
		description := fmt.Sprintf("Добавлена машина %s", truck.Number)
		return s.audit.RecordCreated(ctx, tx, enums.EntityTruck, truck.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*models.Truck, error) {
	if input.TruckID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "truck id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid truck status")
	}

	var updated *models.Truck
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		truck, err := repo.FindByID(ctx, input.TruckID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}
		if input.Number != nil && *input.Number != truck.Number {
			changes = append(changes, audit.FieldChange{Field: "number", OldValue: truck.Number, NewValue: *input.Number})
			updates["number"] = *input.Number
		}
		if input.Model != nil && *input.Model != truck.Model {
			changes = append(changes, audit.FieldChange{Field: "model", OldValue: truck.Model, NewValue: *input.Model})
			updates["model"] = *input.Model
		}
		if input.Capacity != nil && !input.Capacity.Equal(truck.Capacity) {
			changes = append(changes, audit.FieldChange{Field: "capacity", OldValue: truck.Capacity.String(), NewValue: input.Capacity.String()})
			updates["capacity"] = *input.Capacity
		}
		if input.Status != nil && *input.Status != truck.Status {
			changes = append(changes, audit.FieldChange{Field: "status", OldValue: truck.Status.String(), NewValue: input.Status.String()})
			updates["status"] = *input.Status
		}

		if len(updates) == 0 {
			updated = truck
			return nil
		}
		if err := repo.Update(ctx, input.TruckID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update truck")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityTruck, input.TruckID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindByID(ctx, input.TruckID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload truck")
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
	if input.TruckID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "truck id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Delete(ctx, input.TruckID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete truck")
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, truckID uuid.UUID) (*models.Truck, error) {
	truck, err := s.repo.FindByID(ctx, truckID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}
	return truck, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Truck, string, error) {
	trucks, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trucks")
	}
	return trucks, next, nil
}

// RecomputeLoad rebuilds the truck's load columns from the assigned item
// set. Cubic-measured items count their volume toward current_volume;
// kg-measured items count their volume figure toward current_weight.
// Every item's weight column is added to current_weight on top of that,
// matching how dispatch has always tallied mixed loads.
func (s *service) RecomputeLoad(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) error {
	if truckID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "truck id required")
	}

	repo := s.repo.WithTx(tx)
	items, err := repo.FindAssignedItems(ctx, truckID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assigned items")
	}

	currentVolume := decimal.Zero
	currentWeight := decimal.Zero
	for _, item := range items {
		if item.VolumeType.IsCubic() {
			currentVolume = currentVolume.Add(item.Volume)
		} else if item.VolumeType.IsKg() {
			currentWeight = currentWeight.Add(item.Volume)
		}
		currentWeight = currentWeight.Add(item.Weight)
	}

	status := enums.TruckStatusFree
	if len(items) > 0 {
		status = enums.TruckStatusInTransit
	}

	updates := map[string]any{
		"current_volume": currentVolume,
		"current_weight": currentWeight,
		"status":         status,
	}
	if err := repo.Update(ctx, truckID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update truck load")
	}
	return nil
}
