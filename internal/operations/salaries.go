package operations

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Harshverma1208/smartech/internal/fault"
	"github.com/Harshverma1208/smartech/internal/models"
)

const salaryNotFoundMsg = "salary record not found"

type Salaries struct {
	db *gorm.DB
}

func NewSalaries(db *gorm.DB) *Salaries { return &Salaries{db: db} }

type SalaryInput struct {
	EmployeeName string    `json:"employee_name" validate:"required"`
	Position     string    `json:"position" validate:"required"`
	BasicSalary  float64   `json:"basic_salary" validate:"gte=0"`
	Bonus        float64   `json:"bonus" validate:"gte=0"`
	Deductions   float64   `json:"deductions" validate:"gte=0"`
	PaymentDate  time.Time `json:"payment_date"`
	Status       string    `json:"status" validate:"omitempty,oneof=Pending Paid Processing"`
}

type SalaryUpdate struct {
	EmployeeName *string    `json:"employee_name" validate:"omitempty,min=1"`
	Position     *string    `json:"position" validate:"omitempty,min=1"`
	BasicSalary  *float64   `json:"basic_salary" validate:"omitempty,gte=0"`
	Bonus        *float64   `json:"bonus" validate:"omitempty,gte=0"`
	Deductions   *float64   `json:"deductions" validate:"omitempty,gte=0"`
	PaymentDate  *time.Time `json:"payment_date"`
	Status       *string    `json:"status" validate:"omitempty,oneof=Pending Paid Processing"`
}

// ListAll returns every salary record, newest first. Never nil.
func (s *Salaries) ListAll(ctx context.Context) ([]models.SalaryRecord, error) {
	out := make([]models.SalaryRecord, 0)
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, fault.FromStore(err, salaryNotFoundMsg, "duplicate salary record")
	}
	return out, nil
}

func (s *Salaries) GetByID(ctx context.Context, id uint) (*models.SalaryRecord, error) {
	var rec models.SalaryRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, fault.FromStore(err, salaryNotFoundMsg, "duplicate salary record")
	}
	return &rec, nil
}

// Create recomputes net salary from the three inputs before persisting.
func (s *Salaries) Create(ctx context.Context, in SalaryInput) (*models.SalaryRecord, error) {
	in.EmployeeName = strings.TrimSpace(in.EmployeeName)
	in.Position = strings.TrimSpace(in.Position)
	if err := checkInput(in); err != nil {
		return nil, err
	}
	rec := models.SalaryRecord{
		EmployeeName: in.EmployeeName,
		Position:     in.Position,
		BasicSalary:  in.BasicSalary,
		Bonus:        in.Bonus,
		Deductions:   in.Deductions,
		NetSalary:    NetSalary(in.BasicSalary, in.Bonus, in.Deductions),
		PaymentDate:  in.PaymentDate,
		Status:       choose(in.Status, models.SalaryPending),
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, fault.FromStore(err, salaryNotFoundMsg, "duplicate salary record")
	}
	return &rec, nil
}

// Update merges the partial fields and recomputes net salary from the merged
// financial inputs, identically to Create.
func (s *Salaries) Update(ctx context.Context, id uint, in SalaryUpdate) (*models.SalaryRecord, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}
	var rec models.SalaryRecord
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, fault.FromStore(err, salaryNotFoundMsg, "duplicate salary record")
	}
	if in.EmployeeName != nil {
		rec.EmployeeName = strings.TrimSpace(*in.EmployeeName)
	}
	if in.Position != nil {
		rec.Position = strings.TrimSpace(*in.Position)
	}
	if in.BasicSalary != nil {
		rec.BasicSalary = *in.BasicSalary
	}
	if in.Bonus != nil {
		rec.Bonus = *in.Bonus
	}
	if in.Deductions != nil {
		rec.Deductions = *in.Deductions
	}
	if in.PaymentDate != nil {
		rec.PaymentDate = *in.PaymentDate
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	rec.NetSalary = NetSalary(rec.BasicSalary, rec.Bonus, rec.Deductions)
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, fault.FromStore(err, salaryNotFoundMsg, "duplicate salary record")
	}
	return &rec, nil
}

func (s *Salaries) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.SalaryRecord{}, id)
	if res.Error != nil {
		return fault.FromStore(res.Error, salaryNotFoundMsg, "duplicate salary record")
	}
	if res.RowsAffected == 0 {
		return fault.NotFound(salaryNotFoundMsg)
	}
	return nil
}
