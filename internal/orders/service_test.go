package orders

import (
	"context"
	"io"
	"testing"

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
	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

type stubRepo struct {
	orders       map[uuid.UUID]*models.Order
	items        map[uuid.UUID]*models.OrderItem
	orderUpdates []map[string]any
	itemUpdates  []map[string]any
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		orders: map[uuid.UUID]*models.Order{},
		items:  map[uuid.UUID]*models.OrderItem{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubRepo) FindOrderByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubRepo) FindOrderWithItems(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items, _ = s.FindItemsByOrder(ctx, id)
	return order, nil
}

func (s *stubRepo) ListOrders(_ context.Context, _ pagination.Params, _ OrderFilters) ([]models.Order, string, error) {
	var out []models.Order
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, "", nil
}

func (s *stubRepo) UpdateOrder(_ context.Context, id uuid.UUID, updates map[string]any) error {
	s.orderUpdates = append(s.orderUpdates, updates)
	order, ok := s.orders[id]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		order.Name = v.(string)
	}
	if v, ok := updates["status"]; ok {
		order.Status = v.(enums.OrderStatus)
	}
	if v, ok := updates["total_amount"]; ok {
		order.TotalAmount = v.(decimal.Decimal)
	}
	if v, ok := updates["paid_amount"]; ok {
		order.PaidAmount = v.(decimal.Decimal)
	}
	if v, ok := updates["unpaid_amount"]; ok {
		order.UnpaidAmount = v.(decimal.Decimal)
	}
	if v, ok := updates["total_quantity"]; ok {
		order.TotalQuantity = v.(int)
	}
	if v, ok := updates["total_weight"]; ok {
		order.TotalWeight = v.(decimal.Decimal)
	}
	if v, ok := updates["total_volume"]; ok {
		order.TotalVolume = v.(decimal.Decimal)
	}
	return nil
}

func (s *stubRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	delete(s.orders, id)
	return nil
}

func (s *stubRepo) CreateItem(_ context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.items[item.ID] = item
	return item, nil
}

func (s *stubRepo) FindItemByID(_ context.Context, id uuid.UUID) (*models.OrderItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubRepo) FindItemsByOrder(_ context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	var out []models.OrderItem
	for _, item := range s.items {
		if item.OrderID == orderID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateItem(_ context.Context, id uuid.UUID, updates map[string]any) error {
	s.itemUpdates = append(s.itemUpdates, updates)
	item, ok := s.items[id]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		item.Name = v.(string)
	}
	if v, ok := updates["quantity"]; ok {
		item.Quantity = v.(int)
	}
	if v, ok := updates["status"]; ok {
		item.Status = v.(enums.OrderItemStatus)
	}
	if v, ok := updates["paid_amount"]; ok {
		item.PaidAmount = v.(decimal.Decimal)
	}
	if v, ok := updates["total_transport_cost"]; ok {
		item.TotalTransportCost = v.(decimal.Decimal)
	}
	if v, ok := updates["unpaid_amount"]; ok {
		item.UnpaidAmount = v.(decimal.Decimal)
	}
	if v, ok := updates["payment_status"]; ok {
		item.PaymentStatus = v.(enums.PaymentStatus)
	}
	if v, ok := updates["truck_id"]; ok {
		item.TruckID, _ = v.(*uuid.UUID)
	}
	if v, ok := updates["warehouse_id"]; ok {
		item.WarehouseID, _ = v.(*uuid.UUID)
	}
	if v, ok := updates["inventory_item_id"]; ok {
		linked := v.(uuid.UUID)
		item.InventoryItemID = &linked
	}
	return nil
}

func (s *stubRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubRepo) DeleteItemsByOrder(_ context.Context, orderID uuid.UUID) error {
	for id, item := range s.items {
		if item.OrderID == orderID {
			delete(s.items, id)
		}
	}
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type ledgerCall struct {
	itemID uuid.UUID
	qty    int
}

type stubLedger struct {
	materialized   []inventory.MaterializeInput
	materializeErr error
	reduced        []ledgerCall
	reduceErr      error
	replenished    []ledgerCall
	replenishErr   error
	rollups        []uuid.UUID
}

func (s *stubLedger) Materialize(_ context.Context, _ *gorm.DB, input inventory.MaterializeInput) (*models.WarehouseInventory, error) {
	if s.materializeErr != nil {
		return nil, s.materializeErr
	}
	s.materialized = append(s.materialized, input)
	return &models.WarehouseInventory{ID: uuid.New(), WarehouseID: input.WarehouseID}, nil
}

func (s *stubLedger) Reduce(_ context.Context, _ *gorm.DB, itemID uuid.UUID, qty int) error {
	if s.reduceErr != nil {
		return s.reduceErr
	}
	s.reduced = append(s.reduced, ledgerCall{itemID: itemID, qty: qty})
	return nil
}

func (s *stubLedger) Replenish(_ context.Context, _ *gorm.DB, itemID uuid.UUID, qty int) error {
	if s.replenishErr != nil {
		return s.replenishErr
	}
	s.replenished = append(s.replenished, ledgerCall{itemID: itemID, qty: qty})
	return nil
}

func (s *stubLedger) RecomputeRollup(_ context.Context, _ *gorm.DB, warehouseID uuid.UUID) error {
	s.rollups = append(s.rollups, warehouseID)
	return nil
}

type stubTrucks struct {
	recomputed []uuid.UUID
}

func (s *stubTrucks) RecomputeLoad(_ context.Context, _ *gorm.DB, truckID uuid.UUID) error {
	s.recomputed = append(s.recomputed, truckID)
	return nil
}

type stubAudit struct {
	created []uuid.UUID
	changes [][]audit.FieldChange
}

func (s *stubAudit) RecordCreated(_ context.Context, _ *gorm.DB, _ enums.EntityType, entityID uuid.UUID, _ string, _ uuid.UUID) error {
	s.created = append(s.created, entityID)
	return nil
}

func (s *stubAudit) RecordFieldChanges(_ context.Context, _ *gorm.DB, _ enums.EntityType, _ uuid.UUID, _ uuid.UUID, changes []audit.FieldChange) error {
	s.changes = append(s.changes, changes)
	return nil
}

type stubNotifier struct {
	messages []string
}

func (s *stubNotifier) Notify(_ context.Context, message string) {
	s.messages = append(s.messages, message)
}

type fixture struct {
	repo     *stubRepo
	ledger   *stubLedger
	trucks   *stubTrucks
	recorder *stubAudit
	notify   *stubNotifier
	service  Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newStubRepo(),
		ledger:   &stubLedger{},
		trucks:   &stubTrucks{},
		recorder: &stubAudit{},
		notify:   &stubNotifier{},
	}
	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
	svc, err := NewService(f.repo, stubTx{}, f.ledger, f.trucks, f.recorder, f.notify, logg)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	f.service = svc
	return f
}

func (f *fixture) seedOrder(t *testing.T) *models.Order {
	t.Helper()
	order := &models.Order{ID: uuid.New(), Name: "Доставка из Гуанчжоу", Status: enums.OrderStatusActive}
	f.repo.orders[order.ID] = order
	return order
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestCreateItemOnWarehouseMaterializes(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	warehouseID := uuid.New()

	item, err := f.service.CreateItem(context.Background(), CreateItemInput{
		OrderID:        order.ID,
		Code:           "GZ-100",
		Name:           "Кроссовки",
		Quantity:       10,
		VolumeType:     enums.VolumeTypeKg,
		Weight:         dec("50"),
		Volume:         dec("120"),
		UnitPrice:      dec("25"),
		TransportPrice: dec("2"),
		Status:         enums.OrderItemStatusOnWarehouse,
		WarehouseID:    &warehouseID,
		ActorUserID:    uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if len(f.ledger.materialized) != 1 {
		t.Fatalf("expected one materialize call, got %d", len(f.ledger.materialized))
	}
	got := f.ledger.materialized[0]
	if got.WarehouseID != warehouseID || got.Quantity != 10 || got.Code != "GZ-100" {
		t.Fatalf("unexpected materialize input: %+v", got)
	}
	stored := f.repo.items[item.ID]
	if stored.InventoryItemID == nil {
		t.Fatal("expected item linked to its stock row")
	}
	if len(f.recorder.created) != 1 {
		t.Fatalf("expected one created audit entry, got %d", len(f.recorder.created))
	}
	if !item.TotalTransportCost.Equal(dec("240")) {
		t.Fatalf("expected transport cost 240, got %s", item.TotalTransportCost)
	}
	if !item.TotalPrice.Equal(dec("250")) {
		t.Fatalf("expected total price 250, got %s", item.TotalPrice)
	}
	if item.PaymentStatus != enums.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid, got %s", item.PaymentStatus)
	}
}

func TestCreateItemMaterializeFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	warehouseID := uuid.New()
	f.ledger.materializeErr = pkgerrors.New(pkgerrors.CodeDependency, "stock write failed")

	item, err := f.service.CreateItem(context.Background(), CreateItemInput{
		OrderID:     order.ID,
		Code:        "GZ-101",
		Name:        "Куртки",
		Quantity:    4,
		VolumeType:  enums.VolumeTypeCubic,
		Status:      enums.OrderItemStatusOnWarehouse,
		WarehouseID: &warehouseID,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreateItem should survive a materialize failure: %v", err)
	}
	if f.repo.items[item.ID].InventoryItemID != nil {
		t.Fatal("failed materialize must not leave a link")
	}
}

func TestItemDepartureReducesStock(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	invID := uuid.New()
	warehouseID := uuid.New()
	item := &models.OrderItem{
		ID:              uuid.New(),
		OrderID:         order.ID,
		Name:            "Кроссовки",
		Quantity:        10,
		VolumeType:      enums.VolumeTypeKg,
		Status:          enums.OrderItemStatusOnWarehouse,
		WarehouseID:     &warehouseID,
		InventoryItemID: &invID,
	}
	f.repo.items[item.ID] = item

	status := enums.OrderItemStatusShipped
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Status:      &status,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if len(f.ledger.reduced) != 1 {
		t.Fatalf("expected one reduce call, got %d", len(f.ledger.reduced))
	}
	if f.ledger.reduced[0].itemID != invID || f.ledger.reduced[0].qty != 10 {
		t.Fatalf("unexpected reduce call: %+v", f.ledger.reduced[0])
	}
	if len(f.recorder.changes) != 1 || len(f.recorder.changes[0]) != 1 {
		t.Fatalf("expected exactly one audited change, got %+v", f.recorder.changes)
	}
	change := f.recorder.changes[0][0]
	if change.Field != "status" || change.OldValue != "На складе" || change.NewValue != "Отправлено" {
		t.Fatalf("unexpected audit change: %+v", change)
	}
}

func TestItemDepartureSkipsDeletedStockRow(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	invID := uuid.New()
	warehouseID := uuid.New()
	item := &models.OrderItem{
		ID:              uuid.New(),
		OrderID:         order.ID,
		Name:            "Кроссовки",
		Quantity:        10,
		VolumeType:      enums.VolumeTypeKg,
		Status:          enums.OrderItemStatusOnWarehouse,
		WarehouseID:     &warehouseID,
		InventoryItemID: &invID,
	}
	f.repo.items[item.ID] = item
	f.ledger.reduceErr = pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")

	status := enums.OrderItemStatusShipped
	updated, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Status:      &status,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("manually deleted stock row must not block the transition: %v", err)
	}
	if updated.Status != enums.OrderItemStatusShipped {
		t.Fatalf("status not applied, got %s", updated.Status)
	}

	f.ledger.replenishErr = pkgerrors.New(pkgerrors.CodeNotFound, "stock row not found")
	back := enums.OrderItemStatusOnWarehouse
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Status:      &back,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("return with missing stock row must succeed: %v", err)
	}
}

func TestShippedToDeliveredDoesNotReduceAgain(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	invID := uuid.New()
	item := &models.OrderItem{
		ID:              uuid.New(),
		OrderID:         order.ID,
		Name:            "Кроссовки",
		Quantity:        10,
		Status:          enums.OrderItemStatusShipped,
		InventoryItemID: &invID,
	}
	f.repo.items[item.ID] = item

	status := enums.OrderItemStatusDelivered
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Status:      &status,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if len(f.ledger.reduced) != 0 {
		t.Fatalf("delivered after shipped must not touch stock, got %+v", f.ledger.reduced)
	}
}

func TestItemReturnReplenishesLinkedStock(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	invID := uuid.New()
	warehouseID := uuid.New()
	item := &models.OrderItem{
		ID:              uuid.New(),
		OrderID:         order.ID,
		Name:            "Кроссовки",
		Quantity:        7,
		Status:          enums.OrderItemStatusShipped,
		WarehouseID:     &warehouseID,
		InventoryItemID: &invID,
	}
	f.repo.items[item.ID] = item

	status := enums.OrderItemStatusOnWarehouse
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Status:      &status,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if len(f.ledger.replenished) != 1 {
		t.Fatalf("expected one replenish call, got %d", len(f.ledger.replenished))
	}
	if f.ledger.replenished[0].itemID != invID || f.ledger.replenished[0].qty != 7 {
		t.Fatalf("unexpected replenish call: %+v", f.ledger.replenished[0])
	}
}

func TestItemReturnWithoutLinkMaterializes(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	warehouseID := uuid.New()
	item := &models.OrderItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		Name:        "Куртки",
		Quantity:    3,
		Status:      enums.OrderItemStatusDelivered,
		WarehouseID: &warehouseID,
	}
	f.repo.items[item.ID] = item

	status := enums.OrderItemStatusOnWarehouse
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Status:      &status,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if len(f.ledger.materialized) != 1 {
		t.Fatalf("expected returned unlinked item to materialize, got %d calls", len(f.ledger.materialized))
	}
	if f.repo.items[item.ID].InventoryItemID == nil {
		t.Fatal("expected back-link stored after materialize")
	}
}

func TestUpdateItemRecomputesOrderTotals(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	first := &models.OrderItem{
		ID:                 uuid.New(),
		OrderID:            order.ID,
		Name:               "Кроссовки",
		Quantity:           10,
		VolumeType:         enums.VolumeTypeKg,
		Weight:             dec("50"),
		Volume:             dec("120"),
		TransportPrice:     dec("2"),
		TotalTransportCost: dec("240"),
		PaidAmount:         dec("40"),
		Status:             enums.OrderItemStatusOnWarehouse,
	}
	second := &models.OrderItem{
		ID:                 uuid.New(),
		OrderID:            order.ID,
		Name:               "Мебель",
		Quantity:           2,
		VolumeType:         enums.VolumeTypeCubic,
		Weight:             dec("300"),
		Volume:             dec("8"),
		TransportPrice:     dec("30"),
		TotalTransportCost: dec("240"),
		Status:             enums.OrderItemStatusOnWarehouse,
	}
	f.repo.items[first.ID] = first
	f.repo.items[second.ID] = second

	paid := dec("100")
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      first.ID,
		PaidAmount:  &paid,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got := f.repo.orders[order.ID]
	if !got.TotalAmount.Equal(dec("480")) {
		t.Fatalf("expected total 480, got %s", got.TotalAmount)
	}
	if !got.PaidAmount.Equal(dec("100")) {
		t.Fatalf("expected paid 100, got %s", got.PaidAmount)
	}
	if !got.UnpaidAmount.Equal(dec("380")) {
		t.Fatalf("expected unpaid 380, got %s", got.UnpaidAmount)
	}
	if got.TotalQuantity != 12 {
		t.Fatalf("expected quantity 12, got %d", got.TotalQuantity)
	}
	if !got.TotalWeight.Equal(dec("50")) {
		t.Fatalf("weight must only sum weighed items, got %s", got.TotalWeight)
	}
	if !got.TotalVolume.Equal(dec("8")) {
		t.Fatalf("volume must only sum volumetric items, got %s", got.TotalVolume)
	}
}

func TestUpdateItemAuditsOnlyChangedFields(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	item := &models.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		Code:     "GZ-100",
		Name:     "Кроссовки",
		Quantity: 10,
		Status:   enums.OrderItemStatusOnWarehouse,
	}
	f.repo.items[item.ID] = item

	sameCode := "GZ-100"
	newName := "Кроссовки беговые"
	newQty := 12
	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		Code:        &sameCode,
		Name:        &newName,
		Quantity:    &newQty,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if len(f.recorder.changes) != 1 {
		t.Fatalf("expected one batch of changes, got %d", len(f.recorder.changes))
	}
	batch := f.recorder.changes[0]
	if len(batch) != 2 {
		t.Fatalf("expected 2 audited fields, got %d: %+v", len(batch), batch)
	}
	fields := map[string]bool{}
	for _, change := range batch {
		fields[change.Field] = true
	}
	if !fields["name"] || !fields["quantity"] || fields["code"] {
		t.Fatalf("unexpected audited fields: %+v", batch)
	}
}

func TestUpdateMissingItemIsNoOp(t *testing.T) {
	f := newFixture(t)

	name := "Призрак"
	item, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      uuid.New(),
		Name:        &name,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("update of a missing row must succeed vacuously, got %v", err)
	}
	if item != nil {
		t.Fatalf("expected no item, got %+v", item)
	}
	if len(f.recorder.changes) != 0 {
		t.Fatal("missing row must not produce audit entries")
	}
}

func TestTruckReassignmentRecomputesBothTrucks(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	oldTruck := uuid.New()
	newTruck := uuid.New()
	item := &models.OrderItem{
		ID:      uuid.New(),
		OrderID: order.ID,
		Name:    "Мебель",
		Status:  enums.OrderItemStatusShipped,
		TruckID: &oldTruck,
	}
	f.repo.items[item.ID] = item

	if _, err := f.service.UpdateItem(context.Background(), UpdateItemInput{
		ItemID:      item.ID,
		TruckID:     &types.NullableUUID{Valid: true, Value: &newTruck},
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	seen := map[uuid.UUID]bool{}
	for _, id := range f.trucks.recomputed {
		seen[id] = true
	}
	if !seen[oldTruck] || !seen[newTruck] {
		t.Fatalf("both trucks must be recomputed, got %+v", f.trucks.recomputed)
	}
}

func TestDeleteOrderRecomputesAffectedAggregates(t *testing.T) {
	f := newFixture(t)
	order := f.seedOrder(t)
	truckID := uuid.New()
	warehouseID := uuid.New()
	f.repo.items[uuid.New()] = &models.OrderItem{
		ID:          uuid.New(),
		OrderID:     order.ID,
		Name:        "Кроссовки",
		Status:      enums.OrderItemStatusShipped,
		TruckID:     &truckID,
		WarehouseID: &warehouseID,
	}

	if err := f.service.DeleteOrder(context.Background(), DeleteOrderInput{
		OrderID:     order.ID,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("DeleteOrder: %v", err)
	}

	if _, ok := f.repo.orders[order.ID]; ok {
		t.Fatal("order must be deleted")
	}
	if len(f.trucks.recomputed) != 1 || f.trucks.recomputed[0] != truckID {
		t.Fatalf("expected truck recompute for %s, got %+v", truckID, f.trucks.recomputed)
	}
	if len(f.ledger.rollups) != 1 || f.ledger.rollups[0] != warehouseID {
		t.Fatalf("expected warehouse rollup for %s, got %+v", warehouseID, f.ledger.rollups)
	}
	if len(f.notify.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notify.messages))
	}
}

func TestDeleteMissingOrderIsNoOp(t *testing.T) {
	f := newFixture(t)
	if err := f.service.DeleteOrder(context.Background(), DeleteOrderInput{
		OrderID:     uuid.New(),
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("delete of a missing order must succeed vacuously, got %v", err)
	}
	if len(f.notify.messages) != 0 {
		t.Fatal("missing order must not notify")
	}
}

func TestDeriveItemMoney(t *testing.T) {
	tests := []struct {
		name       string
		qty        int
		unit       string
		transport  string
		volume     string
		paid       string
		totalPrice string
		cost       string
		unpaid     string
		status     enums.PaymentStatus
	}{
		{"unpaid", 10, "25", "2", "120", "0", "250", "240", "240", enums.PaymentStatusUnpaid},
		{"partial", 10, "25", "2", "120", "100", "250", "240", "140", enums.PaymentStatusPartial},
		{"paid exactly", 10, "25", "2", "120", "240", "250", "240", "0", enums.PaymentStatusPaid},
		{"overpaid", 10, "25", "2", "120", "300", "250", "240", "-60", enums.PaymentStatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totalPrice, cost, unpaid, status := deriveItemMoney(tt.qty, dec(tt.unit), dec(tt.transport), dec(tt.volume), dec(tt.paid))
			if !totalPrice.Equal(dec(tt.totalPrice)) {
				t.Fatalf("total price: want %s got %s", tt.totalPrice, totalPrice)
			}
			if !cost.Equal(dec(tt.cost)) {
				t.Fatalf("transport cost: want %s got %s", tt.cost, cost)
			}
			if !unpaid.Equal(dec(tt.unpaid)) {
				t.Fatalf("unpaid: want %s got %s", tt.unpaid, unpaid)
			}
			if status != tt.status {
				t.Fatalf("payment status: want %s got %s", tt.status, status)
			}
		})
	}
}

func TestCreateOrderValidatesAndAudits(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.CreateOrder(context.Background(), CreateOrderInput{ActorUserID: uuid.New()}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	order, err := f.service.CreateOrder(context.Background(), CreateOrderInput{
		Name:        "Доставка из Иу",
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Status != enums.OrderStatusActive {
		t.Fatalf("new orders start active, got %s", order.Status)
	}
	if len(f.recorder.created) != 1 {
		t.Fatalf("expected one created audit entry, got %d", len(f.recorder.created))
	}
	if len(f.notify.messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notify.messages))
	}
}
