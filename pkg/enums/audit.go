package enums

import "fmt"

// AuditAction distinguishes creation records from field-level updates.
type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
)

// String implements fmt.Stringer.
func (a AuditAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AuditAction.
func (a AuditAction) IsValid() bool {
	return a == AuditActionCreated || a == AuditActionUpdated
}

// EntityType names the kind of record an audit entry refers to.
type EntityType string

const (
	EntityOrder           EntityType = "order"
	EntityOrderItem       EntityType = "order_item"
	EntityInventoryItem   EntityType = "inventory_item"
	EntityCounterparty    EntityType = "counterparty"
	EntityWarehouse       EntityType = "warehouse"
	EntityTruck           EntityType = "truck"
	EntityArchiveFolder   EntityType = "archive_folder"
	EntityArchiveMaterial EntityType = "archive_material"
)

var validEntityTypes = []EntityType{
	EntityOrder,
	EntityOrderItem,
	EntityInventoryItem,
	EntityCounterparty,
	EntityWarehouse,
	EntityTruck,
	EntityArchiveFolder,
	EntityArchiveMaterial,
}

// String implements fmt.Stringer.
func (e EntityType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EntityType.
func (e EntityType) IsValid() bool {
	for _, candidate := range validEntityTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseEntityType converts raw input into an EntityType.
func ParseEntityType(value string) (EntityType, error) {
	for _, candidate := range validEntityTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity type %q", value)
}
