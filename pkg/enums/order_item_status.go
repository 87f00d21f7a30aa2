package enums

import "fmt"

// OrderItemStatus tracks where a line item physically is. The stored values are
// the Russian labels the admin console displays; they are persisted as-is.
type OrderItemStatus string

const (
	OrderItemStatusOnWarehouse OrderItemStatus = "На складе"
	OrderItemStatusShipped     OrderItemStatus = "Отправлено"
	OrderItemStatusDelivered   OrderItemStatus = "Доставлено"
)

var validOrderItemStatuses = []OrderItemStatus{
	OrderItemStatusOnWarehouse,
	OrderItemStatusShipped,
	OrderItemStatusDelivered,
}

// String implements fmt.Stringer.
func (s OrderItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderItemStatus.
func (s OrderItemStatus) IsValid() bool {
	for _, candidate := range validOrderItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Departed reports whether the item has left the warehouse.
func (s OrderItemStatus) Departed() bool {
	return s == OrderItemStatusShipped || s == OrderItemStatusDelivered
}

// ParseOrderItemStatus converts raw input into an OrderItemStatus.
func ParseOrderItemStatus(value string) (OrderItemStatus, error) {
	for _, candidate := range validOrderItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order item status %q", value)
}
