package archive

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an archive repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateFolder(ctx context.Context, folder *models.ArchiveFolder) (*models.ArchiveFolder, error) {
	if err := r.db.WithContext(ctx).Create(folder).Error; err != nil {
		return nil, err
	}
	return folder, nil
}

func (r *repository) FindFolderByID(ctx context.Context, id uuid.UUID) (*models.ArchiveFolder, error) {
	var folder models.ArchiveFolder
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *repository) FindFoldersByParent(ctx context.Context, parentID *uuid.UUID) ([]models.ArchiveFolder, error) {
	query := r.db.WithContext(ctx).Model(&models.ArchiveFolder{})
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var folders []models.ArchiveFolder
	if err := query.Order("name ASC").Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *repository) UpdateFolder(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ArchiveFolder{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteFolder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ArchiveFolder{}).Error
}

func (r *repository) CreateMaterial(ctx context.Context, material *models.ArchiveMaterial) (*models.ArchiveMaterial, error) {
	if err := r.db.WithContext(ctx).Create(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

func (r *repository) FindMaterialByID(ctx context.Context, id uuid.UUID) (*models.ArchiveMaterial, error) {
	var material models.ArchiveMaterial
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *repository) FindMaterialsByFolder(ctx context.Context, folderID uuid.UUID) ([]models.ArchiveMaterial, error) {
	var materials []models.ArchiveMaterial
	err := r.db.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Order("created_at ASC").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *repository) UpdateMaterial(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.ArchiveMaterial{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ArchiveMaterial{}).Error
}
