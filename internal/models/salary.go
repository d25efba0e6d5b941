package models

import "time"

// Salary record statuses. Capitalized historically; kept as stored.
const (
	SalaryPending    = "Pending"
	SalaryPaid       = "Paid"
	SalaryProcessing = "Processing"
)

// SalaryRecord holds one payroll entry. NetSalary is always recomputed from
// basic salary, bonus and deductions before persisting.
type SalaryRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeName string    `gorm:"not null;index" json:"employee_name"`
	Position     string    `gorm:"not null" json:"position"`
	BasicSalary  float64   `gorm:"not null;default:0" json:"basic_salary"`
	Bonus        float64   `gorm:"not null;default:0" json:"bonus"`
	Deductions   float64   `gorm:"not null;default:0" json:"deductions"`
	NetSalary    float64   `gorm:"not null;default:0" json:"net_salary"`
	PaymentDate  time.Time `json:"payment_date"`
	Status       string    `gorm:"not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SalaryRecord) TableName() string { return "salaries" }
