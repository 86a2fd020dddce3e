package controllers

import (
	"net/http"

	"metalic-backend/config"
	"metalic-backend/services"
	"metalic-backend/utils"

	"github.com/gin-gonic/gin"
)

type GSTItemRequest struct {
	Description string  `json:"description" binding:"required"`
	HSN         string  `json:"hsn"`
	Weight      float64 `json:"weight" binding:"required"`
	Rate        float64 `json:"rate" binding:"required"`
}

type CreateGSTBillRequest struct {
	Date            string           `json:"date"`
	CustomerName    string           `json:"customer_name" binding:"required"`
	CustomerAddress string           `json:"customer_address"`
	CustomerGSTIN   string           `json:"customer_gstin"`
	CGSTPercentage  float64          `json:"cgst_percentage"`
	SGSTPercentage  float64          `json:"sgst_percentage"`
	IGSTPercentage  float64          `json:"igst_percentage"`
	Items           []GSTItemRequest `json:"items" binding:"required"`
}

func CreateGSTBill(c *gin.Context) {
	var req CreateGSTBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input := services.GSTBillInput{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerGSTIN:   req.CustomerGSTIN,
		CGSTPercentage:  req.CGSTPercentage,
		SGSTPercentage:  req.SGSTPercentage,
		IGSTPercentage:  req.IGSTPercentage,
	}
	if req.Date != "" {
		date, err := utils.ParseDate(req.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		input.Date = date
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.GSTItemInput{
			Description: item.Description,
			HSN:         item.HSN,
			Weight:      item.Weight,
			Rate:        item.Rate,
		})
	}

	bill, err := services.NewGSTService(config.DB).CreateBill(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill)
}

func GetGSTBills(c *gin.Context) {
	bills, err := services.NewGSTService(config.DB).Bills()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve GST bills")
		return
	}
	c.JSON(http.StatusOK, bills)
}

func GetGSTBill(c *gin.Context) {
	billID, ok := parseIDParam(c)
	if !ok {
		return
	}

	bill, err := services.NewGSTService(config.DB).Bill(billID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

func DeleteGSTBill(c *gin.Context) {
	billID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.NewGSTService(config.DB).DeleteBill(billID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "GST bill deleted successfully"})
}

// GetGSTCustomers lists saved invoice parties for autocomplete.
func GetGSTCustomers(c *gin.Context) {
	customers, err := services.NewGSTService(config.DB).Customers()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve GST customers")
		return
	}
	c.JSON(http.StatusOK, customers)
}
