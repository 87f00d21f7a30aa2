package warehouses

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/internal/audit"
	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

type stubRepo struct {
	warehouses map[uuid.UUID]*models.Warehouse
}

func newStubRepo() *stubRepo {
	return &stubRepo{warehouses: map[uuid.UUID]*models.Warehouse{}}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(_ context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	if warehouse.ID == uuid.Nil {
		warehouse.ID = uuid.New()
	}
	s.warehouses[warehouse.ID] = warehouse
	return warehouse, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, ok := s.warehouses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *warehouse
	return &copied, nil
}

func (s *stubRepo) List(_ context.Context, _ pagination.Params) ([]models.Warehouse, string, error) {
	var out []models.Warehouse
	for _, warehouse := range s.warehouses {
		out = append(out, *warehouse)
	}
	return out, "", nil
}

func (s *stubRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	warehouse, ok := s.warehouses[id]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		warehouse.Name = v.(string)
	}
	if v, ok := updates["address"]; ok {
		warehouse.Address = v.(string)
	}
	if v, ok := updates["comment"]; ok {
		warehouse.Comment = v.(string)
	}
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.warehouses, id)
	return nil
}

type stubTx struct{}

func (stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubAudit struct {
	created int
	changes [][]audit.FieldChange
}

func (s *stubAudit) RecordCreated(_ context.Context, _ *gorm.DB, _ enums.EntityType, _ uuid.UUID, _ string, _ uuid.UUID) error {
	s.created++
	return nil
}

func (s *stubAudit) RecordFieldChanges(_ context.Context, _ *gorm.DB, _ enums.EntityType, _ uuid.UUID, _ uuid.UUID, changes []audit.FieldChange) error {
	s.changes = append(s.changes, changes)
	return nil
}

func newTestService(t *testing.T, repo *stubRepo) (Service, *stubAudit) {
	t.Helper()
	recorder := &stubAudit{}
	svc, err := NewService(repo, stubTx{}, recorder)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, recorder
}

func TestCreateRecordsAudit(t *testing.T) {
	repo := newStubRepo()
	svc, recorder := newTestService(t, repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Name:        "Склад Восток",
		Address:     "Москва, Южнопортовая 5",
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected generated warehouse id")
	}
	if recorder.created != 1 {
		t.Fatalf("expected one created audit entry, got %d", recorder.created)
	}
}

func TestCreateRequiresName(t *testing.T) {
	repo := newStubRepo()
	svc, _ := newTestService(t, repo)

	_, err := svc.Create(context.Background(), CreateInput{ActorUserID: uuid.New()})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateAuditsChangedFieldsOnly(t *testing.T) {
	repo := newStubRepo()
	svc, recorder := newTestService(t, repo)
	warehouse := &models.Warehouse{ID: uuid.New(), Name: "Склад Восток", Address: "Старый адрес"}
	repo.warehouses[warehouse.ID] = warehouse

	newAddress := "Новый адрес"
	sameName := "Склад Восток"
	updated, err := svc.Update(context.Background(), UpdateInput{
		WarehouseID: warehouse.ID,
		Name:        &sameName,
		Address:     &newAddress,
		ActorUserID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Address != newAddress {
		t.Fatalf("expected updated address, got %q", updated.Address)
	}
	if len(recorder.changes) != 1 || len(recorder.changes[0]) != 1 {
		t.Fatalf("expected one change entry, got %v", recorder.changes)
	}
	if recorder.changes[0][0].Field != "address" {
		t.Fatalf("expected address change, got %s", recorder.changes[0][0].Field)
	}
}

func TestUpdateWithoutChangesSkipsAudit(t *testing.T) {
	repo := newStubRepo()
	svc, recorder := newTestService(t, repo)
	warehouse := &models.Warehouse{ID: uuid.New(), Name: "Склад Запад"}
	repo.warehouses[warehouse.ID] = warehouse

	sameName := "Склад Запад"
	if _, err := svc.Update(context.Background(), UpdateInput{
		WarehouseID: warehouse.ID,
		Name:        &sameName,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(recorder.changes) != 0 {
		t.Fatalf("expected no audit entries, got %v", recorder.changes)
	}
}

func TestUpdateMissingWarehouse(t *testing.T) {
	repo := newStubRepo()
	svc, _ := newTestService(t, repo)

	name := "x"
	_, err := svc.Update(context.Background(), UpdateInput{
		WarehouseID: uuid.New(),
		Name:        &name,
		ActorUserID: uuid.New(),
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeleteRemovesWarehouse(t *testing.T) {
	repo := newStubRepo()
	svc, _ := newTestService(t, repo)
	warehouse := &models.Warehouse{ID: uuid.New(), Name: "Склад Юг"}
	repo.warehouses[warehouse.ID] = warehouse

	if err := svc.Delete(context.Background(), DeleteInput{
		WarehouseID: warehouse.ID,
		ActorUserID: uuid.New(),
	}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := repo.warehouses[warehouse.ID]; ok {
		t.Fatal("expected warehouse removed")
	}
}
