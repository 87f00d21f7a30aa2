package enums

import "fmt"

// CounterpartyType distinguishes clients from suppliers in the registry.
type CounterpartyType string

const (
	CounterpartyTypeClient   CounterpartyType = "client"
	CounterpartyTypeSupplier CounterpartyType = "supplier"
)

var validCounterpartyTypes = []CounterpartyType{
	CounterpartyTypeClient,
	CounterpartyTypeSupplier,
}

// String implements fmt.Stringer.
func (c CounterpartyType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CounterpartyType.
func (c CounterpartyType) IsValid() bool {
	for _, candidate := range validCounterpartyTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCounterpartyType converts raw input into a CounterpartyType.
func ParseCounterpartyType(value string) (CounterpartyType, error) {
	for _, candidate := range validCounterpartyTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid counterparty type %q", value)
}
