package migrate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestValidateDirRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "001_bad.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected filename validation error")
	}
}

func TestValidateDirRejectsMissingHeaders(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "20250601120000_missing_down.sql")
	if err := os.WriteFile(bad, []byte("-- +goose Up\nSELECT 1;\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := ValidateDir(dir); err == nil {
		t.Fatal("expected missing header error")
	}
}
