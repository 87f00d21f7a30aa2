package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  code TEXT,
  counterparty_id TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  total_amount NUMERIC NOT NULL DEFAULT 0,
  paid_amount NUMERIC NOT NULL DEFAULT 0,
  unpaid_amount NUMERIC NOT NULL DEFAULT 0,
  total_quantity INTEGER NOT NULL DEFAULT 0,
  total_weight NUMERIC NOT NULL DEFAULT 0,
  total_volume NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  code TEXT NOT NULL,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  characteristics TEXT,
  comment TEXT,
  volume_type TEXT NOT NULL DEFAULT 'kg',
  weight NUMERIC NOT NULL DEFAULT 0,
  volume NUMERIC NOT NULL DEFAULT 0,
  unit_price NUMERIC NOT NULL DEFAULT 0,
  transport_price NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0,
  total_transport_cost NUMERIC NOT NULL DEFAULT 0,
  paid_amount NUMERIC NOT NULL DEFAULT 0,
  unpaid_amount NUMERIC NOT NULL DEFAULT 0,
  payment_status TEXT NOT NULL DEFAULT 'unpaid',
  status TEXT NOT NULL,
  warehouse_id TEXT,
  truck_id TEXT,
  inventory_item_id TEXT,
  from_inventory INTEGER NOT NULL DEFAULT 0,
  photos TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, name string, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:        uuid.New(),
		Name:      name,
		Status:    enums.OrderStatusActive,
		CreatedAt: created,
		UpdatedAt: created,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func seedItem(t *testing.T, db *gorm.DB, order *models.Order, name string, qty int, created time.Time) *models.OrderItem {
	t.Helper()

	item := &models.OrderItem{
		ID:         uuid.New(),
		OrderID:    order.ID,
		Code:       "GZ-" + name,
		Name:       name,
		Quantity:   qty,
		VolumeType: enums.VolumeTypeKg,
		Weight:     decimal.NewFromInt(10),
		Volume:     decimal.NewFromInt(20),
		Status:     enums.OrderItemStatusOnWarehouse,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestRepositoryFindOrderWithItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	order := seedOrder(t, db, "Доставка из Гуанчжоу", now)
	seedItem(t, db, order, "Куртки", 4, now.Add(time.Minute))
	seedItem(t, db, order, "Кроссовки", 10, now)

	got, err := repo.FindOrderWithItems(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Кроссовки", got.Items[0].Name)
	assert.Equal(t, "Куртки", got.Items[1].Name)
}

func TestRepositoryListOrders_pagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	seedOrder(t, db, "Первый", now.Add(-time.Hour))
	seedOrder(t, db, "Второй", now)

	list, next, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1}, OrderFilters{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Второй", list[0].Name)
	require.NotEmpty(t, next)

	second, next, err := repo.ListOrders(context.Background(), pagination.Params{Limit: 1, Cursor: next}, OrderFilters{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Первый", second[0].Name)
	assert.Empty(t, next)
}

func TestRepositoryListOrders_filters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	active := seedOrder(t, db, "Гуанчжоу активный", now)
	closed := seedOrder(t, db, "Иу завершённый", now.Add(-time.Minute))
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", closed.ID).Update("status", enums.OrderStatusCompleted).Error)

	status := enums.OrderStatusActive
	list, _, err := repo.ListOrders(context.Background(), pagination.Params{}, OrderFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	list, _, err = repo.ListOrders(context.Background(), pagination.Params{}, OrderFilters{Query: "Иу"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, closed.ID, list[0].ID)
}

func TestRepositoryUpdateItemPartial(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	order := seedOrder(t, db, "Доставка", now)
	item := seedItem(t, db, order, "Кроссовки", 10, now)

	err := repo.UpdateItem(context.Background(), item.ID, map[string]any{
		"quantity": 12,
		"status":   enums.OrderItemStatusShipped,
	})
	require.NoError(t, err)

	got, err := repo.FindItemByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
	assert.Equal(t, enums.OrderItemStatusShipped, got.Status)
	assert.Equal(t, "Кроссовки", got.Name)
}

func TestRepositoryDeleteItemsByOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	order := seedOrder(t, db, "Доставка", now)
	other := seedOrder(t, db, "Другой заказ", now)
	seedItem(t, db, order, "Кроссовки", 10, now)
	seedItem(t, db, order, "Куртки", 4, now)
	kept := seedItem(t, db, other, "Мебель", 2, now)

	require.NoError(t, repo.DeleteItemsByOrder(context.Background(), order.ID))

	items, err := repo.FindItemsByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	still, err := repo.FindItemByID(context.Background(), kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Мебель", still.Name)
}
