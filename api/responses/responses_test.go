package responses

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/cargodesk/cargodesk-backend/pkg/errors"
	"github.com/cargodesk/cargodesk-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "responses-test", Output: io.Discard})
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Заказ 1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Data["name"] != "Заказ 1" {
		t.Fatalf("expected payload under data, got %s", rec.Body.String())
	}
}

func TestWriteErrorExposesValidationMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), testLogger(), rec, pkgerrors.New(pkgerrors.CodeValidation, "name required"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %q", body.Error.Code)
	}
	if body.Error.Message != "name required" {
		t.Fatalf("expected the validation message passed through, got %q", body.Error.Message)
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := pkgerrors.Wrap(pkgerrors.CodeInternal, io.ErrUnexpectedEOF, "loading order failed")
	WriteError(context.Background(), testLogger(), rec, wrapped)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	got := rec.Body.String()
	if strings.Contains(got, "loading order failed") || strings.Contains(got, "unexpected EOF") {
		t.Fatalf("internal details leaked into response: %s", got)
	}
}
