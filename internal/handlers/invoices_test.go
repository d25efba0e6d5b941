package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/models"
	"github.com/Harshverma1208/smartech/internal/operations"
)

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	c := models.Customer{Name: "Acme", Email: "a@t.dev", Status: models.CustomerActive}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return c
}

func TestInvoiceHandler_CreateDerivesFinancials(t *testing.T) {
	db := setupTestDB(t)
	cust := seedCustomer(t, db)
	h := NewInvoiceHandler(operations.NewInvoices(db))

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/invoices", map[string]any{
		"customer_id": cust.ID,
		"due_date":    time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
		"subtotal":    1000.0,
		"tax_rate":    8.5,
		// Caller-supplied totals are ignored; the service derives them.
		"tax_amount": 1.0,
		"amount":     2.0,
	}))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var inv models.Invoice
	decodeResponse(t, rr, &inv)
	if inv.TaxAmount != 85 || inv.Amount != 1085 {
		t.Errorf("expected derived tax=85 amount=1085, got %v/%v", inv.TaxAmount, inv.Amount)
	}
	if inv.InvoiceNumber == "" {
		t.Error("expected an assigned invoice number")
	}
	if inv.Customer.Name != "Acme" {
		t.Errorf("expected joined customer, got %+v", inv.Customer)
	}
}

func TestInvoiceHandler_CreateUnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	h := NewInvoiceHandler(operations.NewInvoices(db))

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(t, http.MethodPost, "/invoices", map[string]any{
		"customer_id": 99,
		"due_date":    time.Now().Format(time.RFC3339),
		"subtotal":    10.0,
	}))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestInvoiceHandler_ListByCustomer(t *testing.T) {
	db := setupTestDB(t)
	cust := seedCustomer(t, db)
	other := models.Customer{Name: "Beta", Email: "b@t.dev", Status: models.CustomerActive}
	db.Create(&other)
	db.Create(&models.Invoice{InvoiceNumber: "INV-1", CustomerID: cust.ID, Status: models.InvoicePending})
	db.Create(&models.Invoice{InvoiceNumber: "INV-2", CustomerID: other.ID, Status: models.InvoicePending})
	h := NewInvoiceHandler(operations.NewInvoices(db))

	rr := httptest.NewRecorder()
	h.List(rr, jsonRequest(t, http.MethodGet, "/invoices?customer_id=1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Items []models.Invoice `json:"items"`
		Total int              `json:"total"`
	}
	decodeResponse(t, rr, &body)
	if body.Total != 1 || body.Items[0].InvoiceNumber != "INV-1" {
		t.Fatalf("expected only INV-1, got %+v", body.Items)
	}

	rr = httptest.NewRecorder()
	h.List(rr, jsonRequest(t, http.MethodGet, "/invoices?customer_id=zero", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad customer_id, got %d", rr.Code)
	}
}

func TestInvoiceHandler_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	cust := seedCustomer(t, db)
	db.Create(&models.Invoice{InvoiceNumber: "INV-1", CustomerID: cust.ID, Status: models.InvoicePending})
	h := NewInvoiceHandler(operations.NewInvoices(db))

	req := jsonRequest(t, http.MethodPatch, "/invoices/1/status", map[string]any{"status": "paid"})
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.UpdateStatus(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var inv models.Invoice
	decodeResponse(t, rr, &inv)
	if inv.Status != models.InvoicePaid {
		t.Errorf("expected paid, got %q", inv.Status)
	}

	req = jsonRequest(t, http.MethodPatch, "/invoices/1/status", map[string]any{"status": "archived"})
	req.SetPathValue("id", "1")
	rr = httptest.NewRecorder()
	h.UpdateStatus(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rr.Code)
	}
}
