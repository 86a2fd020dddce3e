package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"metalic-backend/config"
	"metalic-backend/models"
	"metalic-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the API routes against a fresh in-memory database,
// without the auth middleware.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Bill{},
		&models.Transaction{},
		&models.StockItem{},
		&models.StockEntry{},
		&models.Employee{},
		&models.EmployeeSalary{},
		&models.EmployeePayment{},
		&models.Expense{},
		&models.GSTBill{},
		&models.GSTBillItem{},
		&models.GSTCustomer{},
		&models.FirmSettings{},
		&models.BackupSettings{},
		&models.ReminderLog{},
	))
	config.DB = db
	RegisterBackupService(services.NewBackupService(db, t.TempDir()))

	r := gin.New()
	r.GET("/health", HealthCheck)

	r.POST("/api/customers", CreateCustomer)
	r.GET("/api/customers", GetCustomers)
	r.GET("/api/customers/pending", GetPendingCustomers)
	r.GET("/api/customers/:id", GetCustomer)
	r.GET("/api/customers/:id/balance", GetCustomerBalance)
	r.GET("/api/customers/:id/bills", GetCustomerBills)
	r.PUT("/api/customers/:id", UpdateCustomer)
	r.DELETE("/api/customers/:id", DeleteCustomer)

	r.POST("/api/bills", CreateBill)
	r.GET("/api/bills", GetBills)
	r.GET("/api/bills/:id", GetBill)
	r.PUT("/api/bills/:id", UpdateBill)
	r.DELETE("/api/bills/:id", DeleteBill)

	r.POST("/api/transactions", CreateTransaction)
	r.GET("/api/transactions", GetTransactions)
	r.DELETE("/api/transactions/:id", DeleteTransaction)

	r.GET("/api/stock", GetStock)
	r.GET("/api/stock/items", GetStockItems)
	r.POST("/api/stock/transaction", CreateStockMovement)

	r.POST("/api/expenses", CreateExpense)
	r.GET("/api/expenses", GetExpenses)
	r.GET("/api/expenses/dashboard", GetExpenseDashboard)

	r.GET("/api/dashboard", GetDashboard)
	r.GET("/api/stats/today", GetTodayStatistics)

	r.GET("/api/settings/firm", GetFirmSettings)
	r.PUT("/api/settings/firm", UpdateFirmSettings)
	r.GET("/api/settings/backup", GetBackupSettings)
	r.PUT("/api/settings/backup", UpdateBackupSettings)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createBillRequest(paymentType string) gin.H {
	return gin.H{
		"customer_name": "Ramesh",
		"item":          "Gold",
		"weight":        100,
		"tunch":         91.6,
		"wastage":       2,
		"wages":         500,
		"payment_type":  paymentType,
		"date":          "2024-01-15",
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
}
