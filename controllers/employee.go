package controllers

import (
	"net/http"

	"metalic-backend/config"
	"metalic-backend/models"
	"metalic-backend/services"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CreateEmployeeInput struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
}

type UpdateEmployeeInput struct {
	Name     *string `json:"name"`
	Position *string `json:"position"`
}

type SalaryRequest struct {
	Month         string  `json:"month" binding:"required"`
	Year          int     `json:"year" binding:"required"`
	MonthlySalary float64 `json:"monthly_salary" binding:"required"`
	PresentDays   int     `json:"present_days"`
	TotalDays     int     `json:"total_days" binding:"required"`
}

type UpdateSalaryRequest struct {
	MonthlySalary *float64 `json:"monthly_salary"`
	PresentDays   *int     `json:"present_days"`
	TotalDays     *int     `json:"total_days"`
}

type PaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	PaymentDate string  `json:"payment_date" binding:"required"`
	Description string  `json:"description"`
}

func CreateEmployee(c *gin.Context) {
	var input CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	employee, err := services.NewPayrollService(config.DB).CreateEmployee(input.Name, input.Position)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee.ToResponse())
}

func GetEmployees(c *gin.Context) {
	employees, err := services.NewPayrollService(config.DB).Employees()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employees")
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

// GetEmployee returns the employee with salary history and payments.
func GetEmployee(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	employee, err := services.NewPayrollService(config.DB).Employee(employeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	payments := make([]models.EmployeePaymentResponse, 0, len(employee.Payments))
	for _, p := range employee.Payments {
		payments = append(payments, p.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{
		"employee": employee.ToResponse(),
		"salaries": employee.Salaries,
		"payments": payments,
	})
}

func UpdateEmployee(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	employee, err := services.NewPayrollService(config.DB).UpdateEmployee(employeeID, input.Name, input.Position)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee.ToResponse())
}

func DeleteEmployee(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.NewPayrollService(config.DB).DeleteEmployee(employeeID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted successfully"})
}

func CreateEmployeeSalary(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req SalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salary, err := services.NewPayrollService(config.DB).RecordSalary(employeeID, services.SalaryInput{
		Month:         req.Month,
		Year:          req.Year,
		MonthlySalary: req.MonthlySalary,
		PresentDays:   req.PresentDays,
		TotalDays:     req.TotalDays,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, salary)
}

// UpdateEmployeeSalary patches attendance for a salary row identified by
// :salaryId.
func UpdateEmployeeSalary(c *gin.Context) {
	salaryID, err := uuid.Parse(c.Param("salaryId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salary ID format")
		return
	}

	var req UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	salary, err := services.NewPayrollService(config.DB).UpdateSalary(
		salaryID, req.MonthlySalary, req.PresentDays, req.TotalDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, salary)
}

func DeleteEmployeeSalary(c *gin.Context) {
	salaryID, err := uuid.Parse(c.Param("salaryId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salary ID format")
		return
	}

	if err := services.NewPayrollService(config.DB).DeleteSalary(salaryID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Salary deleted successfully"})
}

func CreateEmployeePayment(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(req.PaymentDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "payment_date must be in YYYY-MM-DD format")
		return
	}

	payment, err := services.NewPayrollService(config.DB).RecordPayment(
		employeeID, req.Amount, date, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, payment.ToResponse())
}

func GetEmployeePayments(c *gin.Context) {
	employeeID, ok := parseIDParam(c)
	if !ok {
		return
	}

	payments, err := services.NewPayrollService(config.DB).Payments(employeeID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	responses := make([]models.EmployeePaymentResponse, 0, len(payments))
	for _, p := range payments {
		responses = append(responses, p.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func DeleteEmployeePayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	if err := services.NewPayrollService(config.DB).DeletePayment(paymentID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
