package operations

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/fault"
	"github.com/Harshverma1208/smartech/internal/models"
)

const invoiceNotFoundMsg = "invoice not found"

type Invoices struct {
	db *gorm.DB
}

func NewInvoices(db *gorm.DB) *Invoices { return &Invoices{db: db} }

type InvoiceInput struct {
	CustomerID uint      `json:"customer_id" validate:"required"`
	IssueDate  time.Time `json:"issue_date"`
	DueDate    time.Time `json:"due_date" validate:"required"`
	Subtotal   float64   `json:"subtotal" validate:"gte=0"`
	TaxRate    float64   `json:"tax_rate" validate:"gte=0"`
	Status     string    `json:"status" validate:"omitempty,oneof=pending paid overdue"`
}

type InvoiceUpdate struct {
	CustomerID *uint      `json:"customer_id"`
	IssueDate  *time.Time `json:"issue_date"`
	DueDate    *time.Time `json:"due_date"`
	Subtotal   *float64   `json:"subtotal" validate:"omitempty,gte=0"`
	TaxRate    *float64   `json:"tax_rate" validate:"omitempty,gte=0"`
	Status     *string    `json:"status" validate:"omitempty,oneof=pending paid overdue"`
}

// withCustomer limits the join expansion to the fields the views display.
func withCustomer(db *gorm.DB) *gorm.DB {
	return db.Preload("Customer", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

// ListAll returns every invoice with its customer, newest first. Never nil.
func (v *Invoices) ListAll(ctx context.Context) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0)
	if err := withCustomer(v.db.WithContext(ctx)).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, fault.FromStore(err, invoiceNotFoundMsg, "duplicate invoice")
	}
	return out, nil
}

// ListByCustomer returns the invoices of one customer, newest first.
func (v *Invoices) ListByCustomer(ctx context.Context, customerID uint) ([]models.Invoice, error) {
	out := make([]models.Invoice, 0)
	err := withCustomer(v.db.WithContext(ctx)).
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&out).Error
	if err != nil {
		return nil, fault.FromStore(err, invoiceNotFoundMsg, "duplicate invoice")
	}
	return out, nil
}

// GetByID is a joined fetch including the related customer's id/name/email.
func (v *Invoices) GetByID(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	if err := withCustomer(v.db.WithContext(ctx)).First(&inv, id).Error; err != nil {
		return nil, fault.FromStore(err, invoiceNotFoundMsg, "duplicate invoice")
	}
	return &inv, nil
}

// Create computes tax_amount and amount from subtotal and tax_rate, stamps the
// issue date and invoice number, and returns the stored record with its
// customer expansion.
func (v *Invoices) Create(ctx context.Context, in InvoiceInput) (*models.Invoice, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if err := v.ensureCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}
	taxAmount, amount := DeriveFinancials(in.Subtotal, in.TaxRate)
	issue := in.IssueDate
	if issue.IsZero() {
		issue = time.Now().Truncate(24 * time.Hour)
	}
	inv := models.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		CustomerID:    in.CustomerID,
		IssueDate:     issue,
		DueDate:       in.DueDate,
		Subtotal:      in.Subtotal,
		TaxRate:       in.TaxRate,
		TaxAmount:     taxAmount,
		Amount:        amount,
		Status:        choose(in.Status, models.InvoicePending),
	}
	if err := v.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return nil, fault.FromStore(err, invoiceNotFoundMsg, "duplicate invoice")
	}
	return v.GetByID(ctx, inv.ID)
}

// ensureCustomer verifies the referenced customer exists before an invoice
// points at it, so a bad reference surfaces as NotFound rather than a raw
// foreign-key violation.
func (v *Invoices) ensureCustomer(ctx context.Context, customerID uint) error {
	var count int64
	if err := v.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Count(&count).Error; err != nil {
		return fault.Transport("service request failed", err)
	}
	if count == 0 {
		return fault.NotFound("customer not found")
	}
	return nil
}

// Update merges the partial fields over the stored record. Whenever subtotal
// or tax_rate is present the financial fields are recomputed from the merged
// inputs through the same derivation as Create.
func (v *Invoices) Update(ctx context.Context, id uint, in InvoiceUpdate) (*models.Invoice, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	var inv models.Invoice
	if err := v.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, fault.FromStore(err, invoiceNotFoundMsg, "duplicate invoice")
	}
	if in.CustomerID != nil {
		if err := v.ensureCustomer(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
		inv.CustomerID = *in.CustomerID
	}
	if in.IssueDate != nil {
		inv.IssueDate = *in.IssueDate
	}
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	if in.Subtotal != nil || in.TaxRate != nil {
		if in.Subtotal != nil {
			inv.Subtotal = *in.Subtotal
		}
		if in.TaxRate != nil {
			inv.TaxRate = *in.TaxRate
		}
		inv.TaxAmount, inv.Amount = DeriveFinancials(inv.Subtotal, inv.TaxRate)
	}
	if in.Status != nil {
		inv.Status = *in.Status
	}
	if err := v.db.WithContext(ctx).Save(&inv).Error; err != nil {
		return nil, fault.FromStore(err, invoiceNotFoundMsg, "duplicate invoice")
	}
	return v.GetByID(ctx, inv.ID)
}

// UpdateStatus changes only the status, stamping updated_at.
func (v *Invoices) UpdateStatus(ctx context.Context, id uint, status string) (*models.Invoice, error) {
	switch status {
	case models.InvoicePending, models.InvoicePaid, models.InvoiceOverdue:
	default:
		return nil, fault.Validation("status must be one of: pending paid overdue")
	}
	res := v.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, fault.FromStore(res.Error, invoiceNotFoundMsg, "duplicate invoice")
	}
	if res.RowsAffected == 0 {
		return nil, fault.NotFound(invoiceNotFoundMsg)
	}
	return v.GetByID(ctx, id)
}

func (v *Invoices) Delete(ctx context.Context, id uint) error {
	res := v.db.WithContext(ctx).Delete(&models.Invoice{}, id)
	if res.Error != nil {
		return fault.FromStore(res.Error, invoiceNotFoundMsg, "duplicate invoice")
	}
	if res.RowsAffected == 0 {
		return fault.NotFound(invoiceNotFoundMsg)
	}
	return nil
}

func newInvoiceNumber() string {
	return fmt.Sprintf("INV-%d-%04d", time.Now().Year(), 1000+rand.Intn(9000))
}
