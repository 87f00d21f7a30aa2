package archive

import (
	"time"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/types"
)

// CreateFolderInput creates a folder, optionally under a parent.
type CreateFolderInput struct {
	Name        string
	ParentID    *uuid.UUID
	ActorUserID uuid.UUID
}

// UpdateFolderInput renames or moves a folder. ParentID uses the nullable
// wrapper so an explicit null moves the folder to the root.
type UpdateFolderInput struct {
	FolderID    uuid.UUID
	Name        *string
	ParentID    *types.NullableUUID
	ActorUserID uuid.UUID
}

// DeleteFolderInput removes a folder, its subfolders and materials.
type DeleteFolderInput struct {
	FolderID    uuid.UUID
	ActorUserID uuid.UUID
}

// CreateMaterialInput stores a document reference in a folder.
type CreateMaterialInput struct {
	FolderID    uuid.UUID
	Name        string
	FileURL     string
	Comment     string
	ActorUserID uuid.UUID
}

// UpdateMaterialInput carries a partial material update.
type UpdateMaterialInput struct {
	MaterialID  uuid.UUID
	Name        *string
	FileURL     *string
	Comment     *string
	ActorUserID uuid.UUID
}

// DeleteMaterialInput removes a single material.
type DeleteMaterialInput struct {
	MaterialID  uuid.UUID
	ActorUserID uuid.UUID
}

// FolderNode is a folder plus its immediate children, used to render the
// archive tree one level at a time.
type FolderNode struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	ParentID   *uuid.UUID   `json:"parent_id,omitempty"`
	Subfolders []FolderNode `json:"subfolders,omitempty"`
	Materials  []Material   `json:"materials,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Material is the API shape of a stored document reference.
type Material struct {
	ID        uuid.UUID `json:"id"`
	FolderID  uuid.UUID `json:"folder_id"`
	Name      string    `json:"name"`
	FileURL   string    `json:"file_url,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
