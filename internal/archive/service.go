package archive

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type auditRecorder interface {
	RecordCreated(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, description string, userID uuid.UUID) error
	RecordFieldChanges(ctx context.Context, tx *gorm.DB, entityType enums.EntityType, entityID uuid.UUID, userID uuid.UUID, changes []audit.FieldChange) error
}

// Service manages the document archive tree.
type Service interface {
	CreateFolder(ctx context.Context, input CreateFolderInput) (*models.ArchiveFolder, error)
	UpdateFolder(ctx context.Context, input UpdateFolderInput) (*models.ArchiveFolder, error)
	DeleteFolder(ctx context.Context, input DeleteFolderInput) error
	Browse(ctx context.Context, folderID *uuid.UUID) (*FolderNode, error)

	CreateMaterial(ctx context.Context, input CreateMaterialInput) (*models.ArchiveMaterial, error)
	UpdateMaterial(ctx context.Context, input UpdateMaterialInput) (*models.ArchiveMaterial, error)
	DeleteMaterial(ctx context.Context, input DeleteMaterialInput) error
}

type service struct {
	repo  Repository
	tx    txRunner
	audit auditRecorder
}

// NewService builds an archive service with the required dependencies.
func NewService(repo Repository, tx txRunner, recorder auditRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("archive repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, tx: tx, audit: recorder}, nil
}

func (s *service) CreateFolder(ctx context.Context, input CreateFolderInput) (*models.ArchiveFolder, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "folder name required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.ArchiveFolder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if input.ParentID != nil {
			if _, err := repo.FindFolderByID(ctx, *input.ParentID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "parent folder not found")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent folder")
			}
		}

		folder, err := repo.CreateFolder(ctx, &models.ArchiveFolder{
			Name:     input.Name,
			ParentID: input.ParentID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create folder")
		}
		created = folder
		description := fmt.Sprintf("Создана папка %q", folder.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityArchiveFolder, folder.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateFolder(ctx context.Context, input UpdateFolderInput) (*models.ArchiveFolder, error) {
	if input.FolderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "folder id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.ArchiveFolder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		folder, err := repo.FindFolderByID(ctx, input.FolderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "folder not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load folder")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}
		if input.Name != nil && *input.Name != folder.Name {
			changes = append(changes, audit.FieldChange{Field: "name", OldValue: folder.Name, NewValue: *input.Name})
			updates["name"] = *input.Name
		}
		if input.ParentID != nil && input.ParentID.Valid {
			newParent := input.ParentID.Value
			if !sameParent(folder.ParentID, newParent) {
				if newParent != nil {
					if err := s.ensureNotDescendant(ctx, repo, input.FolderID, *newParent); err != nil {
						return err
					}
				}
				changes = append(changes, audit.FieldChange{
					Field:    "parent_id",
					OldValue: uuidOrEmpty(folder.ParentID),
					NewValue: uuidOrEmpty(newParent),
				})
				updates["parent_id"] = newParent
			}
		}

		if len(updates) == 0 {
			updated = folder
			return nil
		}
		if err := repo.UpdateFolder(ctx, input.FolderID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update folder")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityArchiveFolder, input.FolderID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindFolderByID(ctx, input.FolderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload folder")
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ensureNotDescendant rejects moves that would place a folder under itself
// or one of its descendants.
func (s *service) ensureNotDescendant(ctx context.Context, repo Repository, folderID, newParentID uuid.UUID) error {
	if folderID == newParentID {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "folder cannot be its own parent")
	}
	current := newParentID
	for {
		parent, err := repo.FindFolderByID(ctx, current)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "parent folder not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent folder")
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == folderID {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "folder cannot be moved under its own subtree")
		}
		current = *parent.ParentID
	}
}

func (s *service) DeleteFolder(ctx context.Context, input DeleteFolderInput) error {
	if input.FolderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "folder id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteFolder(ctx, input.FolderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete folder")
		}
		return nil
	})
}

func (s *service) Browse(ctx context.Context, folderID *uuid.UUID) (*FolderNode, error) {
	node := &FolderNode{}
	if folderID != nil {
		folder, err := s.repo.FindFolderByID(ctx, *folderID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "folder not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load folder")
		}
		node.ID = folder.ID
		node.Name = folder.Name
		node.ParentID = folder.ParentID
		node.CreatedAt = folder.CreatedAt

		materials, err := s.repo.FindMaterialsByFolder(ctx, folder.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load materials")
		}
		for _, material := range materials {
			node.Materials = append(node.Materials, Material{
				ID:        material.ID,
				FolderID:  material.FolderID,
				Name:      material.Name,
				FileURL:   material.FileURL,
				Comment:   material.Comment,
				CreatedAt: material.CreatedAt,
			})
		}
	}

	subfolders, err := s.repo.FindFoldersByParent(ctx, folderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subfolders")
	}
	for _, folder := range subfolders {
		node.Subfolders = append(node.Subfolders, FolderNode{
			ID:        folder.ID,
			Name:      folder.Name,
			ParentID:  folder.ParentID,
			CreatedAt: folder.CreatedAt,
		})
	}
	return node, nil
}

func (s *service) CreateMaterial(ctx context.Context, input CreateMaterialInput) (*models.ArchiveMaterial, error) {
	if input.FolderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "folder id required")
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "material name required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var created *models.ArchiveMaterial
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindFolderByID(ctx, input.FolderID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "folder not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load folder")
		}

		material, err := repo.CreateMaterial(ctx, &models.ArchiveMaterial{
			FolderID: input.FolderID,
			Name:     input.Name,
			FileURL:  input.FileURL,
			Comment:  input.Comment,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create material")
		}
		created = material
		description := fmt.Sprintf("Добавлен материал %q", material.Name)
		return s.audit.RecordCreated(ctx, tx, enums.EntityArchiveMaterial, material.ID, description, input.ActorUserID)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) UpdateMaterial(ctx context.Context, input UpdateMaterialInput) (*models.ArchiveMaterial, error) {
	if input.MaterialID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "material id required")
	}
	if input.ActorUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var updated *models.ArchiveMaterial
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		material, err := repo.FindMaterialByID(ctx, input.MaterialID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load material")
		}

		updates := map[string]any{}
		changes := []audit.FieldChange{}
		if input.Name != nil && *input.Name != material.Name {
			changes = append(changes, audit.FieldChange{Field: "name", OldValue: material.Name, NewValue: *input.Name})
			updates["name"] = *input.Name
		}
		if input.FileURL != nil && *input.FileURL != material.FileURL {
			changes = append(changes, audit.FieldChange{Field: "file_url", OldValue: material.FileURL, NewValue: *input.FileURL})
			updates["file_url"] = *input.FileURL
		}
		if input.Comment != nil && *input.Comment != material.Comment {
			changes = append(changes, audit.FieldChange{Field: "comment", OldValue: material.Comment, NewValue: *input.Comment})
			updates["comment"] = *input.Comment
		}

		if len(updates) == 0 {
			updated = material
			return nil
		}
		if err := repo.UpdateMaterial(ctx, input.MaterialID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update material")
		}
		if err := s.audit.RecordFieldChanges(ctx, tx, enums.EntityArchiveMaterial, input.MaterialID, input.ActorUserID, changes); err != nil {
			return err
		}

		fresh, err := repo.FindMaterialByID(ctx, input.MaterialID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload material")
		}
		updated = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteMaterial(ctx context.Context, input DeleteMaterialInput) error {
	if input.MaterialID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "material id required")
	}
	if input.ActorUserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteMaterial(ctx, input.MaterialID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete material")
		}
		return nil
	})
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
