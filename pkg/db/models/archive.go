package models

import (
	"time"

	"github.com/google/uuid"
)

// ArchiveFolder is a node in the document tree. A nil ParentID means a root
// folder. Deleting a folder cascades to its materials and subfolders.
type ArchiveFolder struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string            `gorm:"column:name;not null"`
	ParentID  *uuid.UUID        `gorm:"column:parent_id;type:uuid;index"`
	Materials []ArchiveMaterial `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// ArchiveMaterial is a stored document reference inside a folder.
type ArchiveMaterial struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	FolderID  uuid.UUID `gorm:"column:folder_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	FileURL   string    `gorm:"column:file_url"`
	Comment   string    `gorm:"column:comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
