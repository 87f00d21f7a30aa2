package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/config"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/security"
)

const minPasswordLength = 8

// Service manages back-office operator accounts.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (UserView, error)
	Update(ctx context.Context, input UpdateUserInput) (UserView, error)
	Get(ctx context.Context, id uuid.UUID) (UserView, error)
	List(ctx context.Context) ([]UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds the operator account service.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (UserView, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))
	if login == "" {
		return UserView{}, pkgerrors.New(pkgerrors.CodeValidation, "login required")
	}
	if strings.TrimSpace(input.DisplayName) == "" {
		return UserView{}, pkgerrors.New(pkgerrors.CodeValidation, "display name required")
	}
	if len(input.Password) < minPasswordLength {
		return UserView{}, pkgerrors.New(pkgerrors.CodeValidation, "password too short")
	}

	if _, err := s.repo.FindByLogin(ctx, login); err == nil {
		return UserView{}, pkgerrors.New(pkgerrors.CodeConflict, "login already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup login")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return UserView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, &models.AdminUser{
		Login:        login,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
	})
	if err != nil {
		return UserView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create operator")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, input UpdateUserInput) (UserView, error) {
	if input.UserID == uuid.Nil {
		return UserView{}, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	user, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserView{}, pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
		}
		return UserView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator")
	}

	updates := map[string]any{}
	if input.DisplayName != nil && strings.TrimSpace(*input.DisplayName) != "" && *input.DisplayName != user.DisplayName {
		updates["display_name"] = strings.TrimSpace(*input.DisplayName)
	}
	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return UserView{}, pkgerrors.New(pkgerrors.CodeValidation, "password too short")
		}
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return UserView{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updates["password_hash"] = hash
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, input.UserID, updates); err != nil {
			return UserView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update operator")
		}
		user, err = s.repo.FindByID(ctx, input.UserID)
		if err != nil {
			return UserView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload operator")
		}
	}
	return FromModel(user), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserView{}, pkgerrors.New(pkgerrors.CodeNotFound, "operator not found")
		}
		return UserView{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load operator")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context) ([]UserView, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list operators")
	}
	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, FromModel(&users[i]))
	}
	return views, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete operator")
	}
	return nil
}
