package services

import (
	"testing"
	"time"

	"metalic-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEmployeeConflict(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	_, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)

	_, err = payroll.CreateEmployee("Mohan", "karigar")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRecordSalaryProRatesAttendance(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	employee, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)

	salary, err := payroll.RecordSalary(employee.ID, SalaryInput{
		Month:         "January",
		Year:          2024,
		MonthlySalary: 15000,
		PresentDays:   20,
		TotalDays:     30,
	})
	require.NoError(t, err)
	assert.InDelta(t, 10000, salary.CalculatedSalary, 1e-9)

	// One row per employee-month.
	_, err = payroll.RecordSalary(employee.ID, SalaryInput{
		Month: "January", Year: 2024, MonthlySalary: 15000,
		PresentDays: 30, TotalDays: 30,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateSalaryRecalculates(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	employee, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)
	salary, err := payroll.RecordSalary(employee.ID, SalaryInput{
		Month: "January", Year: 2024, MonthlySalary: 15000,
		PresentDays: 20, TotalDays: 30,
	})
	require.NoError(t, err)

	presentDays := 30
	updated, err := payroll.UpdateSalary(salary.ID, nil, &presentDays, nil)
	require.NoError(t, err)
	assert.InDelta(t, 15000, updated.CalculatedSalary, 1e-9)
}

func TestRecordPaymentCreatesExpense(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	employee, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)

	date := mustDate(t, "2024-02-01")
	payment, err := payroll.RecordPayment(employee.ID, 5000, date, "advance")
	require.NoError(t, err)
	assert.InDelta(t, 5000, payment.Amount, 1e-9)

	var expenses []models.Expense
	require.NoError(t, db.Where("category = ?", "salary").Find(&expenses).Error)
	require.Len(t, expenses, 1)
	assert.InDelta(t, 5000, expenses[0].Amount, 1e-9)
	assert.Contains(t, expenses[0].Description, "Mohan")
}

func TestDeletePaymentWritesReversalExpense(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	employee, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)
	payment, err := payroll.RecordPayment(employee.ID, 5000, mustDate(t, "2024-02-01"), "")
	require.NoError(t, err)

	require.NoError(t, payroll.DeletePayment(payment.ID))

	var expenses []models.Expense
	require.NoError(t, db.Where("category = ?", "salary").Order("created_at").Find(&expenses).Error)
	require.Len(t, expenses, 2)

	// Net expense effect is zero; history keeps both rows.
	var net float64
	for _, e := range expenses {
		net += e.Amount
	}
	assert.InDelta(t, 0, net, 1e-9)

	var count int64
	require.NoError(t, db.Model(&models.EmployeePayment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestEmployeeRollupsRecomputed(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	employee, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)
	_, err = payroll.RecordSalary(employee.ID, SalaryInput{
		Month: "January", Year: 2024, MonthlySalary: 15000,
		PresentDays: 30, TotalDays: 30,
	})
	require.NoError(t, err)
	_, err = payroll.RecordPayment(employee.ID, 5000, time.Now(), "")
	require.NoError(t, err)

	loaded, err := payroll.Employee(employee.ID)
	require.NoError(t, err)

	resp := loaded.ToResponse()
	assert.InDelta(t, 15000, resp.TotalCalculatedSalary, 1e-9)
	assert.InDelta(t, 5000, resp.TotalPaidAmount, 1e-9)
	assert.InDelta(t, 10000, resp.RemainingAmount, 1e-9)
}

func TestDeleteEmployeeRemovesChildren(t *testing.T) {
	db := setupTestDB(t)
	payroll := NewPayrollService(db)

	employee, err := payroll.CreateEmployee("Mohan", "karigar")
	require.NoError(t, err)
	_, err = payroll.RecordSalary(employee.ID, SalaryInput{
		Month: "January", Year: 2024, MonthlySalary: 15000,
		PresentDays: 30, TotalDays: 30,
	})
	require.NoError(t, err)
	_, err = payroll.RecordPayment(employee.ID, 5000, time.Now(), "")
	require.NoError(t, err)

	require.NoError(t, payroll.DeleteEmployee(employee.ID))

	var salaries, payments int64
	require.NoError(t, db.Model(&models.EmployeeSalary{}).Count(&salaries).Error)
	require.NoError(t, db.Model(&models.EmployeePayment{}).Count(&payments).Error)
	assert.EqualValues(t, 0, salaries)
	assert.EqualValues(t, 0, payments)
}
