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

type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
}

func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Mobile != "" && !utils.ValidateMobile(input.Mobile) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number format")
		return
	}

	var existing models.Customer
	if err := config.DB.Where("name = ?", input.Name).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		Name:    input.Name,
		Mobile:  input.Mobile,
		Address: input.Address,
	}
	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers lists customers, optionally filtered by a name substring via
// the name (or q) query parameter.
func GetCustomers(c *gin.Context) {
	query := config.DB.Order("name")
	q := c.Query("name")
	if q == "" {
		q = c.Query("q")
	}
	if q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

func GetCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

func UpdateCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "Name must not be empty")
			return
		}
		if customer.Name != *input.Name {
			var existing models.Customer
			if err := config.DB.Where("name = ?", *input.Name).First(&existing).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this name already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Name = *input.Name
	}
	if input.Mobile != nil {
		if *input.Mobile != "" && !utils.ValidateMobile(*input.Mobile) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid mobile number format")
			return
		}
		customer.Mobile = *input.Mobile
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes the customer with all bills and transactions, and
// reverses each bill's stock effect through the billing service.
func DeleteCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bills []models.Bill
	if err := config.DB.Where("customer_id = ?", customerID).Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	billing := services.NewBillingService(config.DB)
	for _, bill := range bills {
		if err := billing.DeleteBill(bill.ID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	if err := config.DB.Delete(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// GetPendingCustomers lists every customer with a non-zero balance.
func GetPendingCustomers(c *gin.Context) {
	pending, err := services.NewBalanceService(config.DB).PendingCustomers()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute pending balances")
		return
	}
	c.JSON(http.StatusOK, pending)
}

// GetCustomerBalance returns one customer's fold with a per-item breakdown.
func GetCustomerBalance(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	balance, items, err := services.NewBalanceService(config.DB).CustomerBalance(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balance": balance,
		"items":   items,
	})
}

// GetCustomerBills lists a customer's bills, newest first.
func GetCustomerBills(c *gin.Context) {
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bills []models.Bill
	if err := config.DB.Preload("Customer").Where("customer_id = ?", customerID).
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
