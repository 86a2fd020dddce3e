package controllers

import (
	"net/http"
	"testing"

	"metalic-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockMovementEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/stock/transaction", gin.H{
		"item_name":        "Gold",
		"amount":           25,
		"transaction_type": "add",
		"description":      "opening stock",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.StockItem
	decode(t, w, &item)
	assert.InDelta(t, 25, item.CurrentWeight, 1e-9)

	w = doJSON(t, r, http.MethodGet, "/api/stock", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stock map[string]interface{}
	decode(t, w, &stock)
	assert.InDelta(t, 25, stock["current_stock"].(float64), 1e-9)

	w = doJSON(t, r, http.MethodGet, "/api/stock/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.StockItem
	decode(t, w, &items)
	require.Len(t, items, 1)
}

func TestStockMovementEndpointRejectsBadType(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/stock/transaction", gin.H{
		"item_name":        "Gold",
		"amount":           25,
		"transaction_type": "transfer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpenseEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/expenses", gin.H{
		"description": "Rent",
		"amount":      3000,
		"category":    "shop",
		"date":        "2024-01-31",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.ExpenseResponse
	decode(t, w, &created)
	assert.Equal(t, "pending", created.Status)
	require.NotNil(t, created.Date)
	assert.Equal(t, "2024-01-31", *created.Date)

	w = doJSON(t, r, http.MethodGet, "/api/expenses?category=shop", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.ExpenseResponse
	decode(t, w, &list)
	require.Len(t, list, 1)

	w = doJSON(t, r, http.MethodGet, "/api/expenses/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard map[string]interface{}
	decode(t, w, &dashboard)
	assert.InDelta(t, 3000, dashboard["total_expenses"].(float64), 1e-9)
}

func TestDashboardEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/bills", createBillRequest("credit"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dashboard map[string]interface{}
	decode(t, w, &dashboard)
	assert.InDelta(t, 93.6, dashboard["current_stock"].(float64), 1e-9)

	w = doJSON(t, r, http.MethodGet, "/api/stats/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings/firm", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/settings/firm", gin.H{
		"firm_name":  "Metalic Jewelers",
		"gst_number": "23ABCDE1234F1Z5",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var firm models.FirmSettings
	decode(t, w, &firm)
	assert.Equal(t, "23ABCDE1234F1Z5", firm.GSTNumber)

	w = doJSON(t, r, http.MethodPut, "/api/settings/backup", gin.H{
		"backup_time": "03:30",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var backup models.BackupSettings
	decode(t, w, &backup)
	assert.Equal(t, "03:30", backup.BackupTime)

	w = doJSON(t, r, http.MethodPut, "/api/settings/backup", gin.H{
		"backup_time": "99:99",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
