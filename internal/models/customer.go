package models

import "time"

// Customer statuses.
const (
	CustomerActive   = "active"
	CustomerInactive = "inactive"
)

type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Email       string    `gorm:"not null" json:"email"`
	Phone       string    `json:"phone"`
	CompanyName string    `json:"company_name"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	Status      string    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
