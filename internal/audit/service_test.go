package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cargodesk/cargodesk-backend/pkg/db/models"
	"github.com/cargodesk/cargodesk-backend/pkg/enums"
	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/pagination"
)

type stubRepo struct {
	inserted [][]models.ChangeHistory
	list     *HistoryList
	listErr  error
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubRepo) Insert(_ context.Context, entries []models.ChangeHistory) error {
	s.inserted = append(s.inserted, entries)
	return nil
}

func (s *stubRepo) List(_ context.Context, _ pagination.Params, _ HistoryFilters) (*HistoryList, error) {
	return s.list, s.listErr
}

func TestRecordCreatedInsertsSingleEntry(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	entityID := uuid.New()
	userID := uuid.New()
	if err := svc.RecordCreated(context.Background(), nil, enums.EntityOrder, entityID, "Создан заказ", userID); err != nil {
		t.Fatalf("RecordCreated: %v", err)
	}

	if len(repo.inserted) != 1 || len(repo.inserted[0]) != 1 {
		t.Fatalf("expected exactly one inserted entry, got %v", repo.inserted)
	}
	entry := repo.inserted[0][0]
	if entry.Action != enums.AuditActionCreated {
		t.Fatalf("expected created action, got %s", entry.Action)
	}
	if entry.FieldChanged != nil {
		t.Fatal("created entry must not carry a field name")
	}
	if entry.EntityID != entityID || entry.UserID != userID {
		t.Fatal("entry ids do not match input")
	}
}

func TestRecordFieldChangesOneEntryPerField(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	changes := []FieldChange{
		{Field: "name", OldValue: "old", NewValue: "new"},
		{Field: "quantity", OldValue: "5", NewValue: "10"},
		{Field: "status", OldValue: "На складе", NewValue: "Отправлено"},
	}
	if err := svc.RecordFieldChanges(context.Background(), nil, enums.EntityOrderItem, uuid.New(), uuid.New(), changes); err != nil {
		t.Fatalf("RecordFieldChanges: %v", err)
	}

	if len(repo.inserted) != 1 {
		t.Fatalf("expected one insert batch, got %d", len(repo.inserted))
	}
	entries := repo.inserted[0]
	if len(entries) != len(changes) {
		t.Fatalf("expected %d entries, got %d", len(changes), len(entries))
	}
	for i, entry := range entries {
		if entry.Action != enums.AuditActionUpdated {
			t.Fatalf("entry %d: expected updated action, got %s", i, entry.Action)
		}
		if entry.FieldChanged == nil || *entry.FieldChanged != changes[i].Field {
			t.Fatalf("entry %d: unexpected field", i)
		}
		if entry.OldValue == nil || *entry.OldValue != changes[i].OldValue {
			t.Fatalf("entry %d: unexpected old value", i)
		}
		if entry.NewValue == nil || *entry.NewValue != changes[i].NewValue {
			t.Fatalf("entry %d: unexpected new value", i)
		}
	}
}

func TestRecordFieldChangesEmptyIsNoop(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if err := svc.RecordFieldChanges(context.Background(), nil, enums.EntityOrder, uuid.New(), uuid.New(), nil); err != nil {
		t.Fatalf("RecordFieldChanges: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatal("no insert expected for empty change set")
	}
}

func TestRecordCreatedValidation(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	err = svc.RecordCreated(ctx, nil, enums.EntityType("bogus"), uuid.New(), "", uuid.New())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = svc.RecordCreated(ctx, nil, enums.EntityOrder, uuid.Nil, "", uuid.New())
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = svc.RecordCreated(ctx, nil, enums.EntityOrder, uuid.New(), "", uuid.Nil)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestListRejectsUnknownEntityType(t *testing.T) {
	repo := &stubRepo{list: &HistoryList{}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	bad := enums.EntityType("bogus")
	_, err = svc.List(context.Background(), pagination.Params{}, HistoryFilters{EntityType: &bad})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
