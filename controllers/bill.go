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

type CreateBillRequest struct {
	CustomerID      *string `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerMobile  string  `json:"customer_mobile"`
	CustomerAddress string  `json:"customer_address"`
	ItemName        string  `json:"item_name"`
	Item            string  `json:"item"`
	Weight          float64 `json:"weight" binding:"required"`
	Tunch           float64 `json:"tunch"`
	Wastage         float64 `json:"wastage"`
	Wages           float64 `json:"wages"`
	SilverAmount    float64 `json:"silver_amount"`
	PaymentType     string  `json:"payment_type" binding:"required"`
	IsReturn        bool    `json:"is_return"`
	SlipNo          string  `json:"slip_no"`
	Description     string  `json:"description"`
	Date            string  `json:"date" binding:"required"`
}

type UpdateBillRequest struct {
	ItemName     *string  `json:"item_name"`
	Item         *string  `json:"item"`
	Weight       *float64 `json:"weight"`
	Tunch        *float64 `json:"tunch"`
	Wastage      *float64 `json:"wastage"`
	Wages        *float64 `json:"wages"`
	SilverAmount *float64 `json:"silver_amount"`
	PaymentType  *string  `json:"payment_type"`
	IsReturn     *bool    `json:"is_return"`
	SlipNo       *string  `json:"slip_no"`
	Description  *string  `json:"description"`
	Date         *string  `json:"date"`
}

func CreateBill(c *gin.Context) {
	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	input := services.CreateBillInput{
		CustomerName:    req.CustomerName,
		CustomerMobile:  req.CustomerMobile,
		CustomerAddress: req.CustomerAddress,
		ItemName:        req.ItemName,
		Item:            req.Item,
		Weight:          req.Weight,
		Tunch:           req.Tunch,
		Wastage:         req.Wastage,
		Wages:           req.Wages,
		SilverAmount:    req.SilverAmount,
		PaymentType:     req.PaymentType,
		IsReturn:        req.IsReturn,
		SlipNo:          req.SlipNo,
		Description:     req.Description,
		Date:            date,
	}
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		input.CustomerID = &id
	}

	bill, err := services.NewBillingService(config.DB).CreateBill(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bill.ToResponse())
}

func GetBills(c *gin.Context) {
	var bills []models.Bill
	if err := config.DB.Preload("Customer").
		Order("created_at DESC").Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	responses := make([]models.BillResponse, 0, len(bills))
	for _, b := range bills {
		responses = append(responses, b.ToResponse())
	}
	c.JSON(http.StatusOK, responses)
}

func GetBill(c *gin.Context) {
	billID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var bill models.Bill
	if err := config.DB.Preload("Customer").First(&bill, "id = ?", billID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		return
	}

	c.JSON(http.StatusOK, bill.ToResponse())
}

func UpdateBill(c *gin.Context) {
	billID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	input := services.UpdateBillInput{
		ItemName:     req.ItemName,
		Item:         req.Item,
		Weight:       req.Weight,
		Tunch:        req.Tunch,
		Wastage:      req.Wastage,
		Wages:        req.Wages,
		SilverAmount: req.SilverAmount,
		PaymentType:  req.PaymentType,
		IsReturn:     req.IsReturn,
		SlipNo:       req.SlipNo,
		Description:  req.Description,
	}
	if req.Date != nil {
		date, err := utils.ParseDate(*req.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		input.Date = &date
	}

	bill, err := services.NewBillingService(config.DB).UpdateBill(billID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bill.ToResponse())
}

func DeleteBill(c *gin.Context) {
	billID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.NewBillingService(config.DB).DeleteBill(billID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}
