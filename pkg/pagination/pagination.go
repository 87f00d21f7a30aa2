package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the page size applied when a caller did not ask for one.
	DefaultLimit = 25
	// MaxLimit is the hard ceiling on rows per page.
	MaxLimit = 100

	cursorSep = "|"
)

// Params carries the limit and opaque cursor a list endpoint received.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded position of the last row of the previous page.
// Listings order by (created_at, id), so both fields are needed to resume.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps the requested limit into [1, MaxLimit], substituting
// DefaultLimit for zero and negative values.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer is NormalizeLimit plus one extra row. Repositories fetch the
// extra row to learn whether another page exists without a count query.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor serializes a cursor into the opaque token handed to clients.
func EncodeCursor(cursor Cursor) string {
	raw := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + cursor.ID.String()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes a client-supplied token. A blank token means first page
// and yields (nil, nil).
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	tsPart, idPart, ok := strings.Cut(string(raw), cursorSep)
	if !ok {
		return nil, fmt.Errorf("malformed cursor")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, tsPart)
	if err != nil {
		return nil, fmt.Errorf("cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, fmt.Errorf("cursor id: %w", err)
	}

	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}
