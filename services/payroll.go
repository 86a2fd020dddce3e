package services

import (
	"errors"
	"fmt"
	"time"

	"metalic-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PayrollService manages employees, their month-wise attendance salaries and
// payments. Every payment is mirrored into the expense ledger; deleting a
// payment writes a negative reversal expense so the expense history stays an
// append-only audit trail.
type PayrollService struct {
	db *gorm.DB
}

func NewPayrollService(db *gorm.DB) *PayrollService {
	return &PayrollService{db: db}
}

func (s *PayrollService) CreateEmployee(name, position string) (*models.Employee, error) {
	if name == "" {
		return nil, invalid("name is required")
	}

	var existing models.Employee
	err := s.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: employee %q already exists", ErrConflict, name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	employee := models.Employee{Name: name, Position: position}
	if err := s.db.Create(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *PayrollService) Employees() ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.Preload("Salaries").Preload("Payments").
		Order("name").Find(&employees).Error
	return employees, err
}

func (s *PayrollService) Employee(id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.Preload("Salaries").Preload("Payments").
		First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("employee")
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (s *PayrollService) UpdateEmployee(id uuid.UUID, name, position *string) (*models.Employee, error) {
	employee, err := s.Employee(id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if *name == "" {
			return nil, invalid("name must not be empty")
		}
		employee.Name = *name
	}
	if position != nil {
		employee.Position = *position
	}
	if err := s.db.Save(employee).Error; err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee removes the employee with all salary and payment history.
// Child rows are deleted explicitly inside the transaction.
func (s *PayrollService) DeleteEmployee(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("employee")
			}
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeePayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeSalary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
}

type SalaryInput struct {
	Month         string
	Year          int
	MonthlySalary float64
	PresentDays   int
	TotalDays     int
}

// RecordSalary creates the attendance salary for one employee-month. One row
// per employee/month/year; a duplicate is a conflict, not an upsert.
func (s *PayrollService) RecordSalary(employeeID uuid.UUID, in SalaryInput) (*models.EmployeeSalary, error) {
	if in.Month == "" || in.Year == 0 {
		return nil, invalid("month and year are required")
	}
	if in.TotalDays <= 0 {
		return nil, invalid("total_days must be positive")
	}
	if in.PresentDays < 0 || in.PresentDays > in.TotalDays {
		return nil, invalid("present_days must be between 0 and total_days")
	}

	if _, err := s.Employee(employeeID); err != nil {
		return nil, err
	}

	var existing models.EmployeeSalary
	err := s.db.Where("employee_id = ? AND month = ? AND year = ?",
		employeeID, in.Month, in.Year).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: salary for %s %d already recorded", ErrConflict, in.Month, in.Year)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	salary := models.EmployeeSalary{
		EmployeeID:    employeeID,
		Month:         in.Month,
		Year:          in.Year,
		MonthlySalary: in.MonthlySalary,
		PresentDays:   in.PresentDays,
		TotalDays:     in.TotalDays,
	}
	salary.Recalculate()
	if err := s.db.Create(&salary).Error; err != nil {
		return nil, err
	}
	return &salary, nil
}

// UpdateSalary patches attendance figures and re-derives the calculated
// salary with the same formula as create.
func (s *PayrollService) UpdateSalary(salaryID uuid.UUID, monthlySalary *float64, presentDays, totalDays *int) (*models.EmployeeSalary, error) {
	var salary models.EmployeeSalary
	if err := s.db.First(&salary, "id = ?", salaryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("salary")
		}
		return nil, err
	}

	if monthlySalary != nil {
		salary.MonthlySalary = *monthlySalary
	}
	if presentDays != nil {
		salary.PresentDays = *presentDays
	}
	if totalDays != nil {
		salary.TotalDays = *totalDays
	}
	if salary.TotalDays <= 0 {
		return nil, invalid("total_days must be positive")
	}
	if salary.PresentDays < 0 || salary.PresentDays > salary.TotalDays {
		return nil, invalid("present_days must be between 0 and total_days")
	}
	salary.Recalculate()

	if err := s.db.Save(&salary).Error; err != nil {
		return nil, err
	}
	return &salary, nil
}

func (s *PayrollService) DeleteSalary(salaryID uuid.UUID) error {
	result := s.db.Delete(&models.EmployeeSalary{}, "id = ?", salaryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("salary")
	}
	return nil
}

// RecordPayment writes the payment and the mirrored expense row in one
// transaction.
func (s *PayrollService) RecordPayment(employeeID uuid.UUID, amount float64, date time.Time, description string) (*models.EmployeePayment, error) {
	if amount <= 0 {
		return nil, invalid("amount must be positive")
	}
	if date.IsZero() {
		return nil, invalid("payment_date is required")
	}

	var payment *models.EmployeePayment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, "id = ?", employeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("employee")
			}
			return err
		}

		p := models.EmployeePayment{
			EmployeeID:  employeeID,
			Amount:      amount,
			PaymentDate: date,
			Description: description,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		expense := models.Expense{
			Description: fmt.Sprintf("Salary payment to %s", employee.Name),
			Amount:      amount,
			Category:    "salary",
			Status:      "paid",
			Date:        &date,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		p.Employee = &employee
		payment = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PayrollService) Payments(employeeID uuid.UUID) ([]models.EmployeePayment, error) {
	var payments []models.EmployeePayment
	err := s.db.Preload("Employee").Where("employee_id = ?", employeeID).
		Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

// DeletePayment removes the payment and reconciles the expense ledger with a
// negative reversal entry, so the original expense row is never touched.
func (s *PayrollService) DeletePayment(paymentID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.EmployeePayment
		if err := tx.Preload("Employee").First(&payment, "id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("payment")
			}
			return err
		}

		name := ""
		if payment.Employee != nil {
			name = payment.Employee.Name
		}
		now := time.Now()
		reversal := models.Expense{
			Description: fmt.Sprintf("Reversal of salary payment to %s", name),
			Amount:      -payment.Amount,
			Category:    "salary",
			Status:      "paid",
			Date:        &now,
		}
		if err := tx.Create(&reversal).Error; err != nil {
			return err
		}

		return tx.Delete(&payment).Error
	})
}
