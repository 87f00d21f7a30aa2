package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
)

// Repository exposes operator persistence operations.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *models.AdminUser) (*models.AdminUser, error)
	FindByLogin(ctx context.Context, login string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
	List(ctx context.Context) ([]models.AdminUser, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an operators repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, user *models.AdminUser) (*models.AdminUser, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *repository) FindByLogin(ctx context.Context, login string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AdminUser{}, "id = ?", id).Error
}
