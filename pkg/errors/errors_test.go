package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := New(CodeValidation, "quantity must be positive")
	if err.Code() != CodeValidation {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Message() != "quantity must be positive" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	if err.Error() != "VALIDATION_ERROR: quantity must be positive" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeDependency, cause, "update warehouse rollup")
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause in chain")
	}
	typed := As(fmt.Errorf("outer: %w", err))
	if typed == nil || typed.Code() != CodeDependency {
		t.Fatalf("expected typed error through wrapping, got %v", typed)
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", meta.HTTPStatus)
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(CodeNotFound, cause, "load order")
	dump := Dump(err)
	if dump.Code != CodeNotFound {
		t.Fatalf("unexpected code %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(dump.Chain))
	}
}
