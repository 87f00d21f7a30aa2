package orders

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/internal/inventory"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// inventoryLedger mirrors line items into warehouse stock.
type inventoryLedger interface {
	Materialize(ctx context.Context, tx *gorm.DB, input inventory.MaterializeInput) (*models.WarehouseInventory, error)
	Reduce(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
	Replenish(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, qty int) error
	RecomputeRollup(ctx context.Context, tx *gorm.DB, warehouseID uuid.UUID) error
}

// truckLoads rebuilds a truck's load columns from its assigned items.
type truckLoads interface {
	RecomputeLoad(ctx context.Context, tx *gorm.DB, truckID uuid.UUID) error
}

type auditRecorder interface {
	RecordCreated(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, description string, userID uuid.UUID) error
	RecordFieldChanges(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, userID uuid.UUID, changes []audit.FieldChange) error
}

// notifier delivers preformatted text to the back-office channel. Delivery
// is best effort; implementations never return an error to the caller.
type notifier interface {
	Notify(ctx context.Context, message string)
}

// Service is the mutation façade for orders and line items. Every mutating
// call runs its reads, writes, aggregate recomputes and audit entries inside
// one transaction.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	UpdateOrder(ctx context.Context, input UpdateOrderInput) (*models.Order, error)
	DeleteOrder(ctx context.Context, input DeleteOrderInput) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, string, error)

	CreateItem(ctx context.Context, input CreateItemInput) (*models.OrderItem, error)
	UpdateItem(ctx context.Context, input UpdateItemInput) (*models.OrderItem, error)
	DeleteItem(ctx context.Context, input DeleteItemInput) error
}

type service struct {
	repo   Repository
	tx     txRunner
	stock  inventoryLedger
	trucks truckLoads
	audit  auditRecorder
	notify notifier
	logg   *logger.Logger
}

// NewService builds the order façade with the required dependencies.
func NewService(repo Repository, tx txRunner, stock inventoryLedger, trucks truckLoads, recorder auditRecorder, notify notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory ledger required")
	}
	if trucks == nil {
		return nil, fmt.Errorf("truck load aggregator required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if notify == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:   repo,
		tx:     tx,
		stock:  stock,
		trucks: trucks,
		audit:  recorder,
		notify: notify,
		logg:   logg,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order name required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.CreateOrder(ctx, &models.Order{
			Name:           input.Name,
			Code:           input.Code,
			CounterpartyID: input.CounterpartyID,
			Status:         enums.OrderStatusActive,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		created = order
		description := fmt.Sprintf("Создан заказ %q", order.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityOrder, order.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	s.notify.Notify(ctx, fmt.Sprintf("Создан заказ %q", created.Name))
	return created, nil
}

func (s *service) UpdateOrder(ctx context.Context, input UpdateOrderInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderByID(ctx, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// Nothing to update is vacuously successful.
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}
		if input.Name != nil && *input.Name != order.Name {
			changes = append(changes, audit.FieldChange{Field: "name", OldValue: order.Name, NewValue: *input.Name})
			updates["name"] = *input.Name
		}
		if input.Code != nil && !equalStrPtr(input.Code, order.Code) {
			changes = append(changes, audit.FieldChange{Field: "code", OldValue: strOrEmpty(order.Code), NewValue: *input.Code})
			updates["code"] = *input.Code
		}
		if input.CounterpartyID != nil && input.CounterpartyID.Valid {
			newRef := input.CounterpartyID.Value
			if !equalUUIDPtr(newRef, order.CounterpartyID) {
				changes = append(changes, audit.FieldChange{
					Field:    "counterparty_id",
					OldValue: uuidOrEmpty(order.CounterpartyID),
					NewValue: uuidOrEmpty(newRef),
				})
				updates["counterparty_id"] = newRef
			}
		}
		if input.Status != nil && *input.Status != order.Status {
			changes = append(changes, audit.FieldChange{Field: "status", OldValue: order.Status.String(), NewValue: input.Status.String()})
			updates["status"] = *input.Status
		}

		if len(updates) == 0 {
			updated = order
			return nil
		}
		if err := repo.UpdateOrder(ctx, input.OrderID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityOrder, input.OrderID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindOrderByID(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteOrder(ctx context.Context, input DeleteOrderInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var name string
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := repo.FindOrderByID(ctx, input.OrderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}
		name = order.Name

		// Capture the aggregates the items feed before the rows disappear.
		items, err := repo.FindItemsByOrder(ctx, input.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
		}
		truckIDs, warehouseIDs := affectedAggregates(items)

		if err := repo.DeleteItemsByOrder(ctx, input.OrderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order items")
		}
		if err := repo.DeleteOrder(ctx, input.OrderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}

		for truckID := range truckIDs {
			if err := s.trucks.RecomputeLoad(ctx, tx, truckID); err != nil {
				return err
			}
		}
		for warehouseID := range warehouseIDs {
			if err := s.stock.RecomputeRollup(ctx, tx, warehouseID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if name != "" {
		s.notify.Notify(ctx, fmt.Sprintf("Удалён заказ %q", name))
	}
	return nil
}

func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrderWithItems(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ListOrders(ctx context.Context, params pagination.Params, filters OrderFilters) ([]models.Order, string, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	orders, next, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, next, nil
}

func (s *service) CreateItem(ctx context.Context, input CreateItemInput) (*models.OrderItem, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if !input.VolumeType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid volume type")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindOrderByID(ctx, input.OrderID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		totalPrice, totalTransportCost, unpaid, payStatus := deriveItemMoney(input.Quantity, input.UnitPrice, input.TransportPrice, input.Volume, input.PaidAmount)
		item := &models.OrderItem{
			OrderID:            input.OrderID,
			Code:               input.Code,
			Name:               input.Name,
			Quantity:           input.Quantity,
			Characteristics:    input.Characteristics,
			Comment:            input.Comment,
			VolumeType:         input.VolumeType,
			Weight:             input.Weight,
			Volume:             input.Volume,
			UnitPrice:          input.UnitPrice,
			TransportPrice:     input.TransportPrice,
			TotalPrice:         totalPrice,
			TotalTransportCost: totalTransportCost,
			PaidAmount:         input.PaidAmount,
			UnpaidAmount:       unpaid,
			PaymentStatus:      payStatus,
			Status:             input.Status,
			WarehouseID:        input.WarehouseID,
			TruckID:            input.TruckID,
			InventoryItemID:    input.InventoryItemID,
			FromInventory:      input.FromInventory,
			Photos:             input.Photos,
		}
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
		}
		created = item

		// Items born on a warehouse are mirrored into stock right away.
		if item.Status == enums.OrderItemStatusOnWarehouse {
			s.materializeIfUnlinked(ctx, tx, repo, item)
		}

		if err := s.recomputeAggregates(ctx, tx, repo, item.OrderID, item.TruckID, item.WarehouseID); err != nil {
			return err
		}

		description := fmt.Sprintf("Добавлен товар %q", item.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityOrderItem, item.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateItem(ctx context.Context, input UpdateItemInput) (*models.OrderItem, error) {
	if input.ItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status")
	}
	if input.VolumeType != nil && !input.VolumeType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid volume type")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	var updated *models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		item, err := repo.FindItemByID(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// Nothing to update is vacuously successful.
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
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
		if input.Quantity != nil && *input.Quantity != item.Quantity {
			changes = append(changes, audit.FieldChange{Field: "quantity", OldValue: strconv.Itoa(item.Quantity), NewValue: strconv.Itoa(*input.Quantity)})
			updates["quantity"] = *input.Quantity
		}
		if input.Characteristics != nil && *input.Characteristics != item.Characteristics {
			changes = append(changes, audit.FieldChange{Field: "characteristics", OldValue: item.Characteristics, NewValue: *input.Characteristics})
			updates["characteristics"] = *input.Characteristics
		}
		if input.Comment != nil && *input.Comment != item.Comment {
			changes = append(changes, audit.FieldChange{Field: "comment", OldValue: item.Comment, NewValue: *input.Comment})
			updates["comment"] = *input.Comment
		}
		if input.VolumeType != nil && *input.VolumeType != item.VolumeType {
			changes = append(changes, audit.FieldChange{Field: "volume_type", OldValue: item.VolumeType.String(), NewValue: input.VolumeType.String()})
			updates["volume_type"] = *input.VolumeType
		}
		if input.Weight != nil && !input.Weight.Equal(item.Weight) {
			changes = append(changes, audit.FieldChange{Field: "weight", OldValue: item.Weight.String(), NewValue: input.Weight.String()})
			updates["weight"] = *input.Weight
		}
		if input.Volume != nil && !input.Volume.Equal(item.Volume) {
			changes = append(changes, audit.FieldChange{Field: "volume", OldValue: item.Volume.String(), NewValue: input.Volume.String()})
			updates["volume"] = *input.Volume
		}
		if input.UnitPrice != nil && !input.UnitPrice.Equal(item.UnitPrice) {
			changes = append(changes, audit.FieldChange{Field: "unit_price", OldValue: item.UnitPrice.String(), NewValue: input.UnitPrice.String()})
			updates["unit_price"] = *input.UnitPrice
		}
		if input.TransportPrice != nil && !input.TransportPrice.Equal(item.TransportPrice) {
			changes = append(changes, audit.FieldChange{Field: "transport_price", OldValue: item.TransportPrice.String(), NewValue: input.TransportPrice.String()})
			updates["transport_price"] = *input.TransportPrice
		}
		if input.PaidAmount != nil && !input.PaidAmount.Equal(item.PaidAmount) {
			changes = append(changes, audit.FieldChange{Field: "paid_amount", OldValue: item.PaidAmount.String(), NewValue: input.PaidAmount.String()})
			updates["paid_amount"] = *input.PaidAmount
		}

		oldTruckID := item.TruckID
		oldWarehouseID := item.WarehouseID
		newTruckID := item.TruckID
		newWarehouseID := item.WarehouseID
		if input.TruckID != nil && input.TruckID.Valid && !equalUUIDPtr(input.TruckID.Value, item.TruckID) {
			changes = append(changes, audit.FieldChange{Field: "truck_id", OldValue: uuidOrEmpty(item.TruckID), NewValue: uuidOrEmpty(input.TruckID.Value)})
			updates["truck_id"] = input.TruckID.Value
			newTruckID = input.TruckID.Value
		}
		if input.WarehouseID != nil && input.WarehouseID.Valid && !equalUUIDPtr(input.WarehouseID.Value, item.WarehouseID) {
			changes = append(changes, audit.FieldChange{Field: "warehouse_id", OldValue: uuidOrEmpty(item.WarehouseID), NewValue: uuidOrEmpty(input.WarehouseID.Value)})
			updates["warehouse_id"] = input.WarehouseID.Value
			newWarehouseID = input.WarehouseID.Value
		}
		if input.Photos != nil {
			updates["photos"] = input.Photos
		}

		oldStatus := item.Status
		newStatus := item.Status
		if input.Status != nil && *input.Status != item.Status {
			changes = append(changes, audit.FieldChange{Field: "status", OldValue: item.Status.String(), NewValue: input.Status.String()})
			updates["status"] = *input.Status
			newStatus = *input.Status
		}

		if len(updates) == 0 {
			updated = item
			return nil
		}

		// Money columns derive from the effective post-update values.
		qty := item.Quantity
		if input.Quantity != nil {
			qty = *input.Quantity
		}
		unitPrice := pickDecimal(input.UnitPrice, item.UnitPrice)
		transportPrice := pickDecimal(input.TransportPrice, item.TransportPrice)
		volume := pickDecimal(input.Volume, item.Volume)
		paid := pickDecimal(input.PaidAmount, item.PaidAmount)
		totalPrice, totalTransportCost, unpaid, payStatus := deriveItemMoney(qty, unitPrice, transportPrice, volume, paid)
		updates["total_price"] = totalPrice
		updates["total_transport_cost"] = totalTransportCost
		updates["unpaid_amount"] = unpaid
		updates["payment_status"] = payStatus

		if err := repo.UpdateItem(ctx, input.ItemID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
		}

		if newStatus != oldStatus {
			if err := s.applyTransition(ctx, tx, repo, item, oldStatus, newStatus, newWarehouseID, qty); err != nil {
				return err
			}
		}

		if err := s.recomputeAggregates(ctx, tx, repo, item.OrderID, newTruckID, newWarehouseID); err != nil {
			return err
		}
		// A reassigned item changes the aggregates it used to feed too.
		if !equalUUIDPtr(oldTruckID, newTruckID) && oldTruckID != nil {
			if err := s.trucks.RecomputeLoad(ctx, tx, *oldTruckID); err != nil {
				return err
			}
		}
		if !equalUUIDPtr(oldWarehouseID, newWarehouseID) && oldWarehouseID != nil {
			if err := s.stock.RecomputeRollup(ctx, tx, *oldWarehouseID); err != nil {
				return err
			}
		}

		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityOrderItem, input.ItemID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindItemByID(ctx, input.ItemID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order item")
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
		item, err := repo.FindItemByID(ctx, input.ItemID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order item")
		}

		if err := repo.DeleteItem(ctx, input.ItemID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order item")
		}
		return s.recomputeAggregates(ctx, tx, repo, item.OrderID, item.TruckID, item.WarehouseID)
	})
}

// applyTransition runs the inventory side effect for an explicit status
// change on an item that has already been written with its new status.
func (s *service) applyTransition(ctx context.Context, tx *gorm.DB, repo Repository, item *models.OrderItem, oldStatus, newStatus enums.OrderItemStatus, warehouseID *uuid.UUID, qty int) error {
	switch transitionEffect(oldStatus, newStatus) {
	case effectReduce:
		if item.InventoryItemID != nil {
			if err := s.skipMissingStock(ctx, item, s.stock.Reduce(ctx, tx, *item.InventoryItemID, qty)); err != nil {
				return err
			}
		}
	case effectReturn:
		if item.InventoryItemID != nil {
			if err := s.skipMissingStock(ctx, item, s.stock.Replenish(ctx, tx, *item.InventoryItemID, qty)); err != nil {
				return err
			}
		} else if warehouseID != nil {
			refreshed := *item
			refreshed.WarehouseID = warehouseID
			refreshed.Quantity = qty
			s.materializeIfUnlinked(ctx, tx, repo, &refreshed)
		}
	case effectArrive:
		if warehouseID != nil && item.InventoryItemID == nil {
			refreshed := *item
			refreshed.WarehouseID = warehouseID
			refreshed.Quantity = qty
			s.materializeIfUnlinked(ctx, tx, repo, &refreshed)
		}
	}
	return nil
}

// skipMissingStock swallows a stock-row-not-found error from a ledger call.
// Linked rows can be deleted by hand at any time; the line item stays
// authoritative and the transition proceeds without the side effect.
func (s *service) skipMissingStock(ctx context.Context, item *models.OrderItem, err error) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		logCtx := s.logg.WithEntity(ctx, enums.EntityOrderItem.String(), item.ID.String())
		s.logg.Warn(logCtx, "linked stock row missing, transition effect skipped")
		return nil
	}
	return err
}

// materializeIfUnlinked mirrors the item into warehouse stock and stores
// the back-link. Failure is logged and swallowed: the line item record is
// authoritative, the stock mirror is best effort.
func (s *service) materializeIfUnlinked(ctx context.Context, tx *gorm.DB, repo Repository, item *models.OrderItem) {
	if item.InventoryItemID != nil || item.WarehouseID == nil {
		return
	}

	row, err := s.stock.Materialize(ctx, tx, inventory.MaterializeInput{
		WarehouseID:     *item.WarehouseID,
		Code:            item.Code,
		Name:            item.Name,
		Characteristics: item.Characteristics,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		Weight:          item.Weight,
		Volume:          item.Volume,
		Photos:          item.Photos,
	})
	if err != nil {
		logCtx := s.logg.WithEntity(ctx, enums.EntityOrderItem.String(), item.ID.String())
		s.logg.Error(logCtx, "materialize into warehouse stock failed", err)
		return
	}

	if err := repo.UpdateItem(ctx, item.ID, map[string]any{"inventory_item_id": row.ID}); err != nil {
		logCtx := s.logg.WithEntity(ctx, enums.EntityOrderItem.String(), item.ID.String())
		s.logg.Error(logCtx, "linking stock row to order item failed", err)
		return
	}
	item.InventoryItemID = &row.ID
}

// recomputeAggregates refreshes every cached rollup an item mutation can
// touch: the order totals, the assigned truck's load and the assigned
// warehouse's stock statistics.
func (s *service) recomputeAggregates(ctx context.Context, tx *gorm.DB, repo Repository, orderID uuid.UUID, truckID, warehouseID *uuid.UUID) error {
	if err := s.recomputeTotals(ctx, repo, orderID); err != nil {
		return err
	}
	if truckID != nil {
		if err := s.trucks.RecomputeLoad(ctx, tx, *truckID); err != nil {
			return err
		}
	}
	if warehouseID != nil {
		if err := s.stock.RecomputeRollup(ctx, tx, *warehouseID); err != nil {
			return err
		}
	}
	return nil
}

// recomputeTotals rebuilds the order's cached totals from the full item set.
func (s *service) recomputeTotals(ctx context.Context, repo Repository, orderID uuid.UUID) error {
	items, err := repo.FindItemsByOrder(ctx, orderID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order items")
	}

	totalAmount := decimal.Zero
	paidAmount := decimal.Zero
	totalQuantity := 0
	totalWeight := decimal.Zero
	totalVolume := decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(item.TotalTransportCost)
		paidAmount = paidAmount.Add(item.PaidAmount)
		totalQuantity += item.Quantity
		if item.VolumeType.IsKg() {
			totalWeight = totalWeight.Add(item.Weight)
		}
		if item.VolumeType.IsCubic() {
			totalVolume = totalVolume.Add(item.Volume)
		}
	}

	updates := map[string]any{
		"total_amount":   totalAmount,
		"paid_amount":    paidAmount,
		"unpaid_amount":  totalAmount.Sub(paidAmount),
		"total_quantity": totalQuantity,
		"total_weight":   totalWeight,
		"total_volume":   totalVolume,
	}
	if err := repo.UpdateOrder(ctx, orderID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order totals")
	}
	return nil
}

// deriveItemMoney computes the cached money columns. Transport cost is
// billed per measured unit, so it scales with the volume figure whichever
// measurement mode the item uses.
func deriveItemMoney(qty int, unitPrice, transportPrice, volume, paid decimal.Decimal) (totalPrice, totalTransportCost, unpaid decimal.Decimal, status enums.PaymentStatus) {
	totalPrice = unitPrice.Mul(decimal.NewFromInt(int64(qty)))
	totalTransportCost = transportPrice.Mul(volume)
	unpaid = totalTransportCost.Sub(paid)

	switch {
	case paid.IsZero():
		status = enums.PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(totalTransportCost):
		status = enums.PaymentStatusPaid
	default:
		status = enums.PaymentStatusPartial
	}
	return totalPrice, totalTransportCost, unpaid, status
}

func affectedAggregates(items []models.OrderItem) (map[uuid.UUID]struct{}, map[uuid.UUID]struct{}) {
	truckIDs := map[uuid.UUID]struct{}{}
	warehouseIDs := map[uuid.UUID]struct{}{}
	for _, item := range items {
		if item.TruckID != nil {
			truckIDs[*item.TruckID] = struct{}{}
		}
		if item.WarehouseID != nil {
			warehouseIDs[*item.WarehouseID] = struct{}{}
		}
	}
	return truckIDs, warehouseIDs
}

func pickDecimal(override *decimal.Decimal, current decimal.Decimal) decimal.Decimal {
	if override != nil {
		return *override
	}
	return current
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func equalUUIDPtr(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
