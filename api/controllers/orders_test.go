package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cargodesk/cargodesk-backend/api/validators"
)

func TestCreateOrderItemRequestAcceptsConsoleMoneyFormats(t *testing.T) {
	body := `{
		"code": "GZ-100",
		"name": "Кроссовки",
		"quantity": 10,
		"volumeType": "куб",
		"weight": "",
		"volume": "1,5",
		"unitPrice": null,
		"transportPrice": "240",
		"paidAmount": 0,
		"status": "На складе"
	}`
	r := httptest.NewRequest("POST", "/api/v1/orders/x/items", strings.NewReader(body))

	var req createOrderItemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		t.Fatalf("console money formats must decode: %v", err)
	}
	if !req.Weight.Decimal.IsZero() {
		t.Fatalf("empty weight string should parse as zero, got %s", req.Weight.Decimal)
	}
	if req.Volume.Decimal.String() != "1.5" {
		t.Fatalf("comma separator should parse, got %s", req.Volume.Decimal)
	}
	if !req.UnitPrice.Decimal.IsZero() {
		t.Fatalf("null unit price should parse as zero, got %s", req.UnitPrice.Decimal)
	}
	if req.TransportPrice.Decimal.String() != "240" {
		t.Fatalf("unexpected transport price %s", req.TransportPrice.Decimal)
	}
}

func TestUpdateOrderItemRequestDistinguishesAbsentMoney(t *testing.T) {
	r := httptest.NewRequest("PATCH", "/api/v1/order-items/x", strings.NewReader(`{"paidAmount": "100,50"}`))

	var req updateOrderItemRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.PaidAmount == nil || req.PaidAmount.Decimal.String() != "100.5" {
		t.Fatalf("unexpected paid amount %+v", req.PaidAmount)
	}
	if got := amountPtr(req.PaidAmount); got == nil || got.String() != "100.5" {
		t.Fatalf("amountPtr should unwrap the value, got %v", got)
	}
	if req.Weight != nil || amountPtr(req.Weight) != nil {
		t.Fatal("absent fields must stay nil")
	}
}
