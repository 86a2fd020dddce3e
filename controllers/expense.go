package controllers

import (
	"errors"
	"net/http"

	"metalic-backend/config"
	"metalic-backend/models"
	"metalic-backend/services"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateExpenseInput struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
}

type UpdateExpenseInput struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Status      *string  `json:"status"`
	Date        *string  `json:"date"`
}

func CreateExpense(c *gin.Context) {
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	expense := models.Expense{
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Status:      input.Status,
	}
	if input.Date != "" {
		date, err := utils.ParseDate(input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		expense.Date = &date
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense.ToResponse())
}

// GetExpenses lists expenses, optionally filtered by category or status.
func GetExpenses(c *gin.Context) {
	query := config.DB.Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, e.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func GetExpense(c *gin.Context) {
	expenseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense.ToResponse())
}

func UpdateExpense(c *gin.Context) {
	expenseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Status != nil {
		if *input.Status != "paid" && *input.Status != "pending" {
			utils.RespondWithError(c, http.StatusBadRequest, "Status must be paid or pending")
			return
		}
		expense.Status = *input.Status
	}
	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		expense.Date = &date
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense.ToResponse())
}

func DeleteExpense(c *gin.Context) {
	expenseID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result := config.DB.Delete(&models.Expense{}, "id = ?", expenseID)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// GetExpenseDashboard returns the firm-wide balance sheet fold.
func GetExpenseDashboard(c *gin.Context) {
	dashboard, err := services.NewBalanceService(config.DB).ExpenseDashboard()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute expense dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
