package inventory

import (
	"context"
	"fmt"
	"strconv"

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

// Service manages warehouse stock. The ledger methods (Materialize, Reduce,
// Replenish) run inside the caller's transaction; the CRUD methods open
// their own.
type Service interface {
	Materialize(ctx context.Context, tx *gorm.DB, input MaterializeInput) (*models.WarehouseInventory, error)
	Reduce(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
	Replenish(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
	RecomputeRollup(ctx context.Context, tx *gorm.DB, warehouseID uuid.UUID) error

	CreateItem(ctx context.Context, input CreateItemInput) (*models.WarehouseInventory, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (*models.WarehouseInventory, error)
	DeleteItem(ctx context.Context, input DeleteItemInput) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.WarehouseInventory, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, params pagination.Params) ([]models.WarehouseInventory, string, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: recorder}, nil
}

func (s *service) Materialize(ctx context.Context, tx *gorm.DB, input MaterializeInput) (*models.WarehouseInventory, error) {
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	repo := s.repo.WithTx(tx)
	item := &models.WarehouseInventory{
		WarehouseID:       input.WarehouseID,
		Code:              input.Code,
		Name:              input.Name,
		Characteristics:   input.Characteristics,
		Quantity:          input.Quantity,
		AvailableQuantity: input.Quantity,
		UnitPrice:         input.UnitPrice,
		Weight:            input.Weight,
		Volume:            input.Volume,
		Photos:            input.Photos,
	}
	created, err := repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stock row")
	}
	if err := s.recomputeRollup(ctx, repo, input.WarehouseID); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Reduce(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	repo := s.repo.WithTx(tx)
	item, err := repo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock row")
	}

	// Departures never drive availability below zero.
	available := item.AvailableQuantity - qty
	if available < 0 {
		available = 0
	}
	if available == item.AvailableQuantity {
		return nil
	}
	if err := repo.Update(ctx, itemID, map[string]any{"available_quantity": available}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reduce stock")
	}
	return nil
}

func (s *service) Replenish(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	repo := s.repo.WithTx(tx)
	item, err := repo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock row")
	}

	available := item.AvailableQuantity + qty
	if err := repo.Update(ctx, itemID, map[string]any{"available_quantity": available}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replenish stock")
	}
	return nil
}

func (s *service) RecomputeRollup(ctx context.Context, tx *gorm.DB, warehouseID uuid.UUID) error {
	return s.recomputeRollup(ctx, s.repo.WithTx(tx), warehouseID)
}

// recomputeRollup rebuilds the warehouse totals from the full stock set
// rather than adjusting them incrementally.
func (s *service) recomputeRollup(ctx context.Context, repo Repository, warehouseID uuid.UUID) error {
	items, err := repo.FindAllByWarehouse(ctx, warehouseID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse stock")
	}

	totalVolume := decimal.Zero
	totalValue := decimal.Zero
	for _, item := range items {
		totalVolume = totalVolume.Add(item.Volume)
		totalValue = totalValue.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	updates := map[string]any{
		"total_items":  len(items),
		"total_volume": totalVolume,
		"total_value":  totalValue,
	}
	if err := repo.UpdateWarehouseRollup(ctx, warehouseID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warehouse rollup")
	}
	return nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*models.WarehouseInventory, error) {
	if input.WarehouseID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.WarehouseInventory
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		item, err := s.Materialize(ctx, tx, MaterializeInput{
			WarehouseID:     input.WarehouseID,
			Code:            input.Code,
			Name:            input.Name,
			Characteristics: input.Characteristics,
			Quantity:        input.Quantity,
			UnitPrice:       input.UnitPrice,
			Weight:          input.Weight,
			Volume:          input.Volume,
			Photos:          input.Photos,
		})
		if err != nil {
			return err
		}
		created = item
		description := fmt.Sprintf("Создан товар %q", item.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityInventoryItem, item.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) (*models.WarehouseInventory, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.WarehouseInventory
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindByID(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock row")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}

		if input.Code != nil && *input.Code != item.Code {
			changes = append(changes, audit.FieldChange{Field: "code", OldValue: item.Code, NewValue: *input.Code})
			updates["code"] = *input.Code
		}
		if input.Name != nil && *input.Name != item.Name {
			changes = append(changes, audit.FieldChange{Field: "name", OldValue: item.Name, NewValue: *input.Name})
			updates["name"] = *input.Name
		}
		if input.Characteristics != nil && *input.Characteristics != item.Characteristics {
			changes = append(changes, audit.FieldChange{Field: "characteristics", OldValue: item.Characteristics, NewValue: *input.Characteristics})
			updates["characteristics"] = *input.Characteristics
		}
		if input.Quantity != nil && *input.Quantity != item.Quantity {
			if *input.Quantity < 0 {
				return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
			}
			changes = append(changes, audit.FieldChange{Field: "quantity", OldValue: strconv.Itoa(item.Quantity), NewValue: strconv.Itoa(*input.Quantity)})
			updates["quantity"] = *input.Quantity

			// Manual stock corrections shift availability by the same delta.
			available := item.AvailableQuantity + (*input.Quantity - item.Quantity)
			if available < 0 {
				available = 0
			}
			updates["available_quantity"] = available
		}
		if input.UnitPrice != nil && !input.UnitPrice.Equal(item.UnitPrice) {
			changes = append(changes, audit.FieldChange{Field: "unit_price", OldValue: item.UnitPrice.String(), NewValue: input.UnitPrice.String()})
			updates["unit_price"] = *input.UnitPrice
		}
		if input.Weight != nil && !input.Weight.Equal(item.Weight) {
			changes = append(changes, audit.FieldChange{Field: "weight", OldValue: item.Weight.String(), NewValue: input.Weight.String()})
			updates["weight"] = *input.Weight
		}
		if input.Volume != nil && !input.Volume.Equal(item.Volume) {
			changes = append(changes, audit.FieldChange{Field: "volume", OldValue: item.Volume.String(), NewValue: input.Volume.String()})
			updates["volume"] = *input.Volume
		}
		if input.Photos != nil {
			updates["photos"] = input.Photos
		}

		if len(updates) == 0 {
			updated = item
			return nil
		}
		if err := repo.Update(ctx, input.ItemID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock row")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityInventoryItem, input.ItemID, input.ActorUserID, changes); err != nil {
			return err
		}
		if err := s.recomputeRollup(ctx, repo, item.WarehouseID); err != nil {
			return err
		}

		fresh, err := repo.FindByID(ctx, input.ItemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload stock row")
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, input DeleteItemInput) error {
	if input.ItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindByID(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock row")
		}
		if err := repo.Delete(ctx, input.ItemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete stock row")
		}
		return s.recomputeRollup(ctx, repo, item.WarehouseID)
	})
}

func (s *service) GetItem(ctx context.Context, itemID uuid.UUID) (*models.WarehouseInventory, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock row")
	}
	return item, nil
}

func (s *service) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, params pagination.Params) ([]models.WarehouseInventory, string, error) {
	if warehouseID == uuid.Nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	items, next, err := s.repo.ListByWarehouse(ctx, warehouseID, params)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouse stock")
	}
	return items, next, nil
}
