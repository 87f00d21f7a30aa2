package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/config"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/security"
)

func testPasswordConfig() config.PasswordConfig {
	// deliberately cheap parameters so the test suite stays fast
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

type stubRepo struct {
	users map[uuid.UUID]*models.AdminUser
}

func newStubRepo() *stubRepo {
	return &stubRepo{users: map[uuid.UUID]*models.AdminUser{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, user *models.AdminUser) (*models.AdminUser, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubRepo) FindByLogin(_ context.Context, login string) (*models.AdminUser, error) {
	for _, user := range s.users {
		if user.Login == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *stubRepo) List(_ context.Context) ([]models.AdminUser, error) {
	var out []models.AdminUser
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	user, ok := s.users[id]
	if !ok {
		return nil
	}
	if v, ok := updates["display_name"]; ok {
		user.DisplayName = v.(string)
	}
	if v, ok := updates["password_hash"]; ok {
		user.PasswordHash = v.(string)
	}
	return nil
}

func (s *stubRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	if user, ok := s.users[id]; ok {
		user.LastLoginAt = &at
	}
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.users, id)
	return nil
}

func newTestService(t *testing.T, repo *stubRepo) Service {
	t.Helper()
	svc, err := NewService(repo, testPasswordConfig())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateNormalizesLoginAndHashesPassword(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	view, err := svc.Create(context.Background(), CreateUserInput{
		Login:       "  Olga  ",
		DisplayName: "Ольга",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Login != "olga" {
		t.Fatalf("expected lowercased login, got %q", view.Login)
	}

	stored, err := repo.FindByLogin(context.Background(), "olga")
	if err != nil {
		t.Fatalf("FindByLogin: %v", err)
	}
	if stored.PasswordHash == "correct horse" {
		t.Fatal("expected hashed password, got plaintext")
	}
	ok, err := security.VerifyPassword("correct horse", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestCreateRejectsDuplicateLogin(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	if _, err := svc.Create(context.Background(), CreateUserInput{
		Login:       "olga",
		DisplayName: "Ольга",
		Password:    "correct horse",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateUserInput{
		Login:       "OLGA",
		DisplayName: "Другая Ольга",
		Password:    "correct horse",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestCreateRejectsShortPassword(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateUserInput{
		Login:       "olga",
		DisplayName: "Ольга",
		Password:    "short",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRotatesPasswordHash(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	view, err := svc.Create(context.Background(), CreateUserInput{
		Login:       "olga",
		DisplayName: "Ольга",
		Password:    "correct horse",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := repo.users[view.ID].PasswordHash

	newPassword := "battery staple"
	if _, err := svc.Update(context.Background(), UpdateUserInput{
		UserID:   view.ID,
		Password: &newPassword,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	after := repo.users[view.ID].PasswordHash
	if after == before {
		t.Fatal("expected password hash rotated")
	}
	ok, err := security.VerifyPassword(newPassword, after)
	if err != nil || !ok {
		t.Fatalf("expected new hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestUpdateMissingOperator(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	name := "Ольга"
	_, err := svc.Update(context.Background(), UpdateUserInput{
		UserID:      uuid.New(),
		DisplayName: &name,
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
