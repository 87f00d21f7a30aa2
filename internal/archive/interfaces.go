package archive

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
)

// Repository defines persistence operations for the archive tree.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateFolder(ctx context.Context, folder *models.ArchiveFolder) (*models.ArchiveFolder, error)
	FindFolderByID(ctx context.Context, id uuid.UUID) (*models.ArchiveFolder, error)
	FindFoldersByParent(ctx context.Context, parentID *uuid.UUID) ([]models.ArchiveFolder, error)
	UpdateFolder(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteFolder(ctx context.Context, id uuid.UUID) error

	CreateMaterial(ctx context.Context, material *models.ArchiveMaterial) (*models.ArchiveMaterial, error)
	FindMaterialByID(ctx context.Context, id uuid.UUID) (*models.ArchiveMaterial, error)
	FindMaterialsByFolder(ctx context.Context, folderID uuid.UUID) ([]models.ArchiveMaterial, error)
	UpdateMaterial(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
}
