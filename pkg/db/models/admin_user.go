package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser is a back-office operator account.
type AdminUser struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Login        string     `gorm:"column:login;not null;uniqueIndex"`
	DisplayName  string     `gorm:"column:display_name;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
