package types

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// NullableUUID distinguishes a JSON field that was explicitly null from one
// that was absent. Explicit null clears a reference (detaching an item from a
// truck, moving a folder to the archive root); an absent field leaves the
// stored value untouched.
type NullableUUID struct {
	Valid bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		return nil
	case bytes.Equal(data, []byte("null")):
		*n = NullableUUID{Valid: true}
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*n = NullableUUID{Valid: true, Value: &id}
	return nil
}
