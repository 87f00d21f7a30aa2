package session

import (
	"context"
	"testing"
	"time"
)

type memStore struct {
	values map[string]string
}

func newMemStore() *memStore {
	return &memStore{values: map[string]string{}}
}

func (s *memStore) Set(_ context.Context, key string, value string, _ time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memStore) Del(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func TestSessionLifecycle(t *testing.T) {
	mgr, err := New(newMemStore(), time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := mgr.Create(ctx, "jti-1", "user-1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok, err := mgr.HasSession(ctx, "jti-1")
	if err != nil {
		t.Fatalf("HasSession: %v", err)
	}
	if !ok {
		t.Fatal("expected session to exist")
	}

	if err := mgr.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	ok, err = mgr.HasSession(ctx, "jti-1")
	if err != nil {
		t.Fatalf("HasSession after revoke: %v", err)
	}
	if ok {
		t.Fatal("expected session to be revoked")
	}
}

func TestHasSessionEmptyJTI(t *testing.T) {
	mgr, err := New(newMemStore(), time.Hour)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ok, err := mgr.HasSession(context.Background(), "")
	if err != nil {
		t.Fatalf("HasSession: %v", err)
	}
	if ok {
		t.Fatal("empty jti must not resolve to a session")
	}
}

func TestNewValidatesArguments(t *testing.T) {
	if _, err := New(nil, time.Hour); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := New(newMemStore(), 0); err == nil {
		t.Fatal("expected error for zero ttl")
	}
}
