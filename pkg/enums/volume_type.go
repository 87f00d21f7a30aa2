package enums

import "fmt"

// VolumeType selects how a line item is measured: by weight (kg) or by
// volume (m³). Older rows carry the legacy value "cubic" instead of "m³";
// both are treated as cubic-meter measurement.
type VolumeType string

const (
	VolumeTypeKg    VolumeType = "kg"
	VolumeTypeCubic VolumeType = "m³"

	legacyCubic VolumeType = "cubic"
)

var validVolumeTypes = []VolumeType{
	VolumeTypeKg,
	VolumeTypeCubic,
	legacyCubic,
}

// String implements fmt.Stringer.
func (v VolumeType) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VolumeType.
func (v VolumeType) IsValid() bool {
	for _, candidate := range validVolumeTypes {
		if candidate == v {
			return true
		}
	}
	return false
}

// IsKg reports whether the item is measured by weight.
func (v VolumeType) IsKg() bool {
	return v == VolumeTypeKg
}

// IsCubic reports whether the item is measured by volume, accepting the
// legacy "cubic" spelling.
func (v VolumeType) IsCubic() bool {
	return v == VolumeTypeCubic || v == legacyCubic
}

// ParseVolumeType converts raw input into a VolumeType.
func ParseVolumeType(value string) (VolumeType, error) {
	for _, candidate := range validVolumeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid volume type %q", value)
}
