package services

import (
	"fmt"
	"testing"
	"time"

	"metalic-backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	date, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return date
}

func createCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer := models.Customer{Name: name, Mobile: "+911234567890"}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

// goldBill is the reference credit bill used across the billing tests.
func goldBill(paymentType string) CreateBillInput {
	in := CreateBillInput{
		CustomerName: "Ramesh",
		Item:         "Gold",
		Weight:       100,
		Tunch:        91.6,
		Wastage:      2,
		Wages:        500,
		SilverAmount: 0,
		PaymentType:  paymentType,
	}
	in.Date, _ = time.Parse("2006-01-02", "2024-01-15")
	return in
}

// stockTotal reads the signed sum of the entry ledger for one item.
func stockTotal(t *testing.T, db *gorm.DB, item string) float64 {
	t.Helper()
	var entries []models.StockEntry
	require.NoError(t, db.Where("item_name = ?", item).Find(&entries).Error)
	var total float64
	for _, e := range entries {
		if e.TransactionType == models.StockAdd {
			total += e.Amount
		} else {
			total -= e.Amount
		}
	}
	return total
}

// cachedWeight reads the StockItem cache for one item, zero if absent.
func cachedWeight(t *testing.T, db *gorm.DB, item string) float64 {
	t.Helper()
	var stockItem models.StockItem
	err := db.Where("item_name = ?", item).First(&stockItem).Error
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	require.NoError(t, err)
	return stockItem.CurrentWeight
}
