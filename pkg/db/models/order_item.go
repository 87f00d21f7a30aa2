package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cargodesk/cargodesk-backend/pkg/enums"
)

// OrderItem is a single tradable unit within an order. InventoryItemID
// back-links the warehouse stock row created on this item's behalf; the link
// exists iff the item has been materialized into warehouse stock at some
// point while in the on-warehouse status.
type OrderItem struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID             `gorm:"column:order_id;type:uuid;not null;index"`
	Code               string                `gorm:"column:code;not null"`
	Name               string                `gorm:"column:name;not null"`
	Quantity           int                   `gorm:"column:quantity;not null;default:0"`
	Characteristics    string                `gorm:"column:characteristics"`
	Comment            string                `gorm:"column:comment"`
	VolumeType         enums.VolumeType      `gorm:"column:volume_type;type:text;not null;default:'kg'"`
	Weight             decimal.Decimal       `gorm:"column:weight;type:numeric;not null;default:0"`
	Volume             decimal.Decimal       `gorm:"column:volume;type:numeric;not null;default:0"`
	UnitPrice          decimal.Decimal       `gorm:"column:unit_price;type:numeric;not null;default:0"`
	TransportPrice     decimal.Decimal       `gorm:"column:transport_price;type:numeric;not null;default:0"`
	TotalPrice         decimal.Decimal       `gorm:"column:total_price;type:numeric;not null;default:0"`
	TotalTransportCost decimal.Decimal       `gorm:"column:total_transport_cost;type:numeric;not null;default:0"`
	PaidAmount         decimal.Decimal       `gorm:"column:paid_amount;type:numeric;not null;default:0"`
	UnpaidAmount       decimal.Decimal       `gorm:"column:unpaid_amount;type:numeric;not null;default:0"`
	PaymentStatus      enums.PaymentStatus   `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	Status             enums.OrderItemStatus `gorm:"column:status;type:text;not null"`
	WarehouseID        *uuid.UUID            `gorm:"column:warehouse_id;type:uuid;index"`
	TruckID            *uuid.UUID            `gorm:"column:truck_id;type:uuid;index"`
	InventoryItemID    *uuid.UUID            `gorm:"column:inventory_item_id;type:uuid"`
	FromInventory      bool                  `gorm:"column:from_inventory;not null;default:false"`
	Photos             []string              `gorm:"column:photos;type:jsonb;serializer:json"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
