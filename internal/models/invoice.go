package models

import "time"

// Invoice statuses.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceOverdue = "overdue"
)

// Invoice references one customer. TaxAmount and Amount are derived from
// Subtotal and TaxRate at request time and never trusted from caller input.
type Invoice struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InvoiceNumber string    `gorm:"size:32;index" json:"invoice_number"`
	CustomerID    uint      `gorm:"not null;index" json:"customer_id"`
	Customer      Customer  `gorm:"foreignKey:CustomerID" json:"customer"`
	IssueDate     time.Time `json:"issue_date"`
	DueDate       time.Time `json:"due_date"`
	Subtotal      float64   `gorm:"not null;default:0" json:"subtotal"`
	TaxRate       float64   `gorm:"not null;default:0" json:"tax_rate"` // percent, e.g. 8.5
	TaxAmount     float64   `gorm:"not null;default:0" json:"tax_amount"`
	Amount        float64   `gorm:"not null;default:0" json:"amount"`
	Status        string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
