package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/internal/users"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service authenticates back-office operators.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, jti string) error
}

type userRepository interface {
	FindByLogin(ctx context.Context, login string) (*models.AdminUser, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type tokenIssuer interface {
	Mint(userID uuid.UUID, displayName string) (token string, jti string, err error)
}

type sessionManager interface {
	Create(ctx context.Context, jti string, userID string) error
	Revoke(ctx context.Context, jti string) error
}

type service struct {
	users   userRepository
	tokens  tokenIssuer
	session sessionManager
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	TokenIssuer    tokenIssuer
	SessionManager sessionManager
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.TokenIssuer == nil {
		return nil, fmt.Errorf("token issuer is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:   params.UserRepo,
		tokens:  params.TokenIssuer,
		session: params.SessionManager,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	login := strings.ToLower(strings.TrimSpace(req.Login))
	if login == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup operator")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, jti, err := s.tokens.Mint(user.ID, user.DisplayName)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.session.Create(ctx, jti, user.ID.String()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store session")
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}

	return &LoginResponse{
		AccessToken: token,
		User:        users.FromModel(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, jti string) error {
	if strings.TrimSpace(jti) == "" {
		return nil
	}
	if err := s.session.Revoke(ctx, jti); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}
