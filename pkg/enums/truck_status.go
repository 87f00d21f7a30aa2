package enums

import "fmt"

// TruckStatus tracks whether a truck is free or on the road. Values are the
// Russian labels persisted by the admin console.
type TruckStatus string

const (
	TruckStatusFree      TruckStatus = "Свободен"
	TruckStatusInTransit TruckStatus = "В пути"
)

var validTruckStatuses = []TruckStatus{
	TruckStatusFree,
	TruckStatusInTransit,
}

// String implements fmt.Stringer.
func (t TruckStatus) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TruckStatus.
func (t TruckStatus) IsValid() bool {
	for _, candidate := range validTruckStatuses {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTruckStatus converts raw input into a TruckStatus.
func ParseTruckStatus(value string) (TruckStatus, error) {
	for _, candidate := range validTruckStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid truck status %q", value)
}
