package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
)

// CreateUserInput registers a back-office operator.
type CreateUserInput struct {
	Login       string
	DisplayName string
	Password    string
}

// UpdateUserInput carries a partial operator update. A non-nil Password
// rotates the stored hash.
type UpdateUserInput struct {
	UserID      uuid.UUID
	DisplayName *string
	Password    *string
}

// UserView is the operator shape returned to the admin console. The
// password hash never leaves the service layer.
type UserView struct {
	ID          uuid.UUID  `json:"id"`
	Login       string     `json:"login"`
	DisplayName string     `json:"displayName"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromModel converts a stored operator into its API view.
func FromModel(user *models.AdminUser) UserView {
	return UserView{
		ID:          user.ID,
		Login:       user.Login,
		DisplayName: user.DisplayName,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
