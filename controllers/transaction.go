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

type CreateTransactionInput struct {
	CustomerID      string  `json:"customer_id" binding:"required"`
	Amount          float64 `json:"amount"`
	TransactionType string  `json:"transaction_type" binding:"required"`
	Description     string  `json:"description"`
}

type UpdateTransactionInput struct {
	Amount      *float64 `json:"amount"`
	Description *string  `json:"description"`
}

// GetTransactions lists transactions, newest first. Supports filtering by
// customer_id, customer_name, transaction_type, and a start_date/end_date
// window over the creation time.
func GetTransactions(c *gin.Context) {
	query := config.DB.Preload("Bill").Preload("Customer").Order("created_at DESC")

	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", id)
	}
	if name := c.Query("customer_name"); name != "" {
		query = query.Joins("JOIN customers ON customers.id = transactions.customer_id").
			Where("customers.name LIKE ?", "%"+name+"%")
	}
	if txType := c.Query("transaction_type"); txType != "" {
		query = query.Where("transaction_type = ?", txType)
	}
	if startDate := c.Query("start_date"); startDate != "" {
		start, err := utils.ParseDate(startDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "start_date must be in YYYY-MM-DD format")
			return
		}
		query = query.Where("transactions.created_at >= ?", utils.BeginningOfDay(start))
	}
	if endDate := c.Query("end_date"); endDate != "" {
		end, err := utils.ParseDate(endDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "end_date must be in YYYY-MM-DD format")
			return
		}
		query = query.Where("transactions.created_at <= ?", utils.EndOfDay(end))
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}

	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, t.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func GetTransaction(c *gin.Context) {
	transactionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := config.DB.Preload("Bill").Preload("Customer").
		First(&transaction, "id = ?", transactionID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	c.JSON(http.StatusOK, transaction.ToResponse())
}

// CreateTransaction records a standalone money movement with no bill behind
// it. Bill-backed transactions are created only by the billing flow.
func CreateTransaction(c *gin.Context) {
	var input CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}
	if input.TransactionType != models.PaymentTypeCredit && input.TransactionType != models.PaymentTypeDebit {
		utils.RespondWithError(c, http.StatusBadRequest, "transaction_type must be credit or debit")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	transaction := models.Transaction{
		CustomerID:      customerID,
		Amount:          input.Amount,
		TransactionType: input.TransactionType,
		Description:     input.Description,
	}
	if err := config.DB.Create(&transaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	transaction.Customer = &customer
	c.JSON(http.StatusCreated, transaction.ToResponse())
}

// UpdateTransaction edits a standalone transaction. Bill-backed transactions
// are rejected; they only change through their bill.
func UpdateTransaction(c *gin.Context) {
	transactionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var transaction models.Transaction
	if err := config.DB.First(&transaction, "id = ?", transactionID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		return
	}
	if transaction.BillID != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Bill-backed transactions must be edited through their bill")
		return
	}

	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}

	if err := config.DB.Save(&transaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, transaction.ToResponse())
}

// DeleteTransaction removes a transaction. A bill-backed transaction routes
// through the billing service so the bill, stock and rollups go with it.
func DeleteTransaction(c *gin.Context) {
	transactionID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := config.DB.First(&transaction, "id = ?", transactionID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	if transaction.BillID != nil {
		if err := services.NewBillingService(config.DB).DeleteBill(*transaction.BillID); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction and its bill deleted successfully"})
		return
	}

	if err := config.DB.Delete(&transaction).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
