package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Position  string    `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Salaries []EmployeeSalary  `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
	Payments []EmployeePayment `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

// EmployeeResponse carries the payroll rollups, always recomputed from the
// loaded salaries and payments rather than cached.
type EmployeeResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Position              string    `json:"position"`
	TotalCalculatedSalary float64   `json:"total_calculated_salary"`
	TotalPaidAmount       float64   `json:"total_paid_amount"`
	RemainingAmount       float64   `json:"remaining_amount"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ToResponse expects Salaries and Payments to be preloaded.
func (e *Employee) ToResponse() EmployeeResponse {
	var totalSalary, totalPaid float64
	for _, s := range e.Salaries {
		totalSalary += s.CalculatedSalary
	}
	for _, p := range e.Payments {
		totalPaid += p.Amount
	}
	return EmployeeResponse{
		ID:                    e.ID,
		Name:                  e.Name,
		Position:              e.Position,
		TotalCalculatedSalary: totalSalary,
		TotalPaidAmount:       totalPaid,
		RemainingAmount:       totalSalary - totalPaid,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

type EmployeeSalary struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_month_year,priority:1" json:"employee_id"`
	Month            string    `gorm:"not null;uniqueIndex:idx_employee_month_year,priority:2" json:"month"`
	Year             int       `gorm:"not null;uniqueIndex:idx_employee_month_year,priority:3" json:"year"`
	MonthlySalary    float64   `gorm:"not null" json:"monthly_salary"`
	PresentDays      int       `gorm:"not null" json:"present_days"`
	TotalDays        int       `gorm:"not null" json:"total_days"`
	CalculatedSalary float64   `gorm:"not null" json:"calculated_salary"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (s *EmployeeSalary) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Recalculate derives the pro-rated salary from attendance.
func (s *EmployeeSalary) Recalculate() {
	if s.TotalDays > 0 {
		s.CalculatedSalary = s.MonthlySalary * float64(s.PresentDays) / float64(s.TotalDays)
	}
}

type EmployeePayment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;index;not null" json:"employee_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;not null" json:"-"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (p *EmployeePayment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

type EmployeePaymentResponse struct {
	ID           uuid.UUID `json:"id"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Amount       float64   `json:"amount"`
	PaymentDate  string    `json:"payment_date"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *EmployeePayment) ToResponse() EmployeePaymentResponse {
	resp := EmployeePaymentResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format("2006-01-02"),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.Name
	}
	return resp
}
