package controllers

import (
	"net/http"

	"metalic-backend/config"
	"metalic-backend/services"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
)

type StockMovementInput struct {
	ItemName        string  `json:"item_name" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	TransactionType string  `json:"transaction_type" binding:"required"`
	Description     string  `json:"description"`
}

// GetStock returns the entry ledger plus the live aggregate total.
func GetStock(c *gin.Context) {
	stock := services.NewStockService(config.DB)

	entries, err := stock.Entries()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock entries")
		return
	}
	total, err := stock.CurrentTotal()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute stock total")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":       entries,
		"current_stock": total,
	})
}

// GetStockItems lists the per-item cached weights.
func GetStockItems(c *gin.Context) {
	items, err := services.NewStockService(config.DB).Items()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve stock items")
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateStockMovement records a manual add or deduct outside the bill flow.
func CreateStockMovement(c *gin.Context) {
	var input StockMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	item, err := services.NewStockService(config.DB).RecordMovement(
		input.ItemName, input.Amount, input.TransactionType, input.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
