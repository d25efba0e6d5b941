// Package operations wraps the table store with one module per entity. Each
// operation issues a single statement, applies entity-specific derivation and
// translates raw store errors into the fault vocabulary.
package operations

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/fault"
	"github.com/Harshverma1208/smartech/internal/models"
)

type Customers struct {
	db *gorm.DB
}

func NewCustomers(db *gorm.DB) *Customers { return &Customers{db: db} }

type CustomerInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type CustomerUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ListAll returns every customer ordered by name. The result is never nil.
func (c *Customers) ListAll(ctx context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0)
	if err := c.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return nil, fault.FromStore(err, "customer not found", "duplicate customer")
	}
	return out, nil
}

func (c *Customers) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var cust models.Customer
	if err := c.db.WithContext(ctx).First(&cust, id).Error; err != nil {
		return nil, fault.FromStore(err, "customer not found", "duplicate customer")
	}
	return &cust, nil
}

func (c *Customers) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := checkInput(in); err != nil {
		return nil, err
	}
	cust := models.Customer{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		CompanyName: in.CompanyName,
		Address:     in.Address,
		Notes:       in.Notes,
		Status:      choose(in.Status, models.CustomerActive),
	}
	if err := c.db.WithContext(ctx).Create(&cust).Error; err != nil {
		return nil, fault.FromStore(err, "customer not found", "duplicate customer")
	}
	return &cust, nil
}

func (c *Customers) Update(ctx context.Context, id uint, in CustomerUpdate) (*models.Customer, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	var cust models.Customer
	if err := c.db.WithContext(ctx).First(&cust, id).Error; err != nil {
		return nil, fault.FromStore(err, "customer not found", "duplicate customer")
	}
	if in.Name != nil {
		cust.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		cust.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		cust.Phone = *in.Phone
	}
	if in.CompanyName != nil {
		cust.CompanyName = *in.CompanyName
	}
	if in.Address != nil {
		cust.Address = *in.Address
	}
	if in.Notes != nil {
		cust.Notes = *in.Notes
	}
	if in.Status != nil {
		cust.Status = *in.Status
	}
	if err := c.db.WithContext(ctx).Save(&cust).Error; err != nil {
		return nil, fault.FromStore(err, "customer not found", "duplicate customer")
	}
	return &cust, nil
}

// Delete removes a customer. Deleting an id that no longer exists reports
// NotFound so callers can reconcile local state instead of silently passing.
func (c *Customers) Delete(ctx context.Context, id uint) error {
	res := c.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return fault.FromStore(res.Error, "customer not found", "duplicate customer")
	}
	if res.RowsAffected == 0 {
		return fault.NotFound("customer not found")
	}
	return nil
}

func choose(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
