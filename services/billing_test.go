package services

import (
	"testing"

	"metalic-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateCreditBill(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	// weight * (tunch + wastage) / 100
	assert.InDelta(t, 93.6, bill.TotalFine, 1e-9)
	// Credit charges no wages.
	assert.InDelta(t, 0, bill.TotalAmount, 1e-9)

	assert.InDelta(t, 93.6, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, 93.6, cachedWeight(t, db, "Gold"), 1e-9)

	var transaction models.Transaction
	require.NoError(t, db.Where("bill_id = ?", bill.ID).First(&transaction).Error)
	assert.InDelta(t, 0, transaction.Amount, 1e-9)
	assert.Equal(t, models.PaymentTypeCredit, transaction.TransactionType)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "id = ?", bill.CustomerID).Error)
	assert.Equal(t, 1, customer.TotalBills)
}

func TestCreateDebitBill(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeDebit))
	require.NoError(t, err)

	// weight * (wages / 1000) + silver_amount
	assert.InDelta(t, 50, bill.TotalAmount, 1e-9)
	// Debit pulls fine without wastage: weight * tunch / 100.
	assert.InDelta(t, -91.6, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, -91.6, cachedWeight(t, db, "Gold"), 1e-9)

	var transaction models.Transaction
	require.NoError(t, db.Where("bill_id = ?", bill.ID).First(&transaction).Error)
	assert.InDelta(t, 50, transaction.Amount, 1e-9)
	assert.Equal(t, models.PaymentTypeDebit, transaction.TransactionType)
}

func TestCreateCreditReturnBill(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	in := goldBill(models.PaymentTypeCredit)
	in.IsReturn = true
	_, err := billing.CreateBill(in)
	require.NoError(t, err)

	// Returned goods add purity fine only, not the wastage-inflated fine.
	assert.InDelta(t, 91.6, stockTotal(t, db, "Gold"), 1e-9)
}

func TestCreateBillValidation(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	in := goldBill(models.PaymentTypeCredit)
	in.Weight = 0
	_, err := billing.CreateBill(in)
	assert.ErrorIs(t, err, ErrValidation)

	in = goldBill("refund")
	_, err = billing.CreateBill(in)
	assert.ErrorIs(t, err, ErrValidation)

	in = goldBill(models.PaymentTypeCredit)
	in.Item = ""
	in.ItemName = ""
	_, err = billing.CreateBill(in)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateBillResolvesCustomerByName(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	first, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	second, err := billing.CreateBill(goldBill(models.PaymentTypeDebit))
	require.NoError(t, err)

	// Same name resolves to the same customer, not a duplicate.
	assert.Equal(t, first.CustomerID, second.CustomerID)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "id = ?", first.CustomerID).Error)
	assert.Equal(t, 2, customer.TotalBills)
}

func TestBillNumberSequencing(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	first, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	second, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	assert.Equal(t, "202401150001", first.BillNumber)
	assert.Equal(t, "202401150002", second.BillNumber)

	other := goldBill(models.PaymentTypeCredit)
	other.Date = mustDate(t, "2024-01-16")
	third, err := billing.CreateBill(other)
	require.NoError(t, err)

	// A new day restarts the counter.
	assert.Equal(t, "202401160001", third.BillNumber)
}

func TestUpdateBillRecomputesTotals(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	weight := 50.0
	updated, err := billing.UpdateBill(bill.ID, UpdateBillInput{Weight: &weight})
	require.NoError(t, err)

	assert.InDelta(t, 46.8, updated.TotalFine, 1e-9)
	assert.InDelta(t, 46.8, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, 46.8, cachedWeight(t, db, "Gold"), 1e-9)

	var transaction models.Transaction
	require.NoError(t, db.Where("bill_id = ?", bill.ID).First(&transaction).Error)
	assert.InDelta(t, updated.TotalAmount, transaction.Amount, 1e-9)
}

func TestUpdateBillRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	originalFine := bill.TotalFine
	originalAmount := bill.TotalAmount

	changed := 50.0
	_, err = billing.UpdateBill(bill.ID, UpdateBillInput{Weight: &changed})
	require.NoError(t, err)

	restored := 100.0
	reverted, err := billing.UpdateBill(bill.ID, UpdateBillInput{Weight: &restored})
	require.NoError(t, err)

	assert.InDelta(t, originalFine, reverted.TotalFine, 1e-9)
	assert.InDelta(t, originalAmount, reverted.TotalAmount, 1e-9)
	// Retract and reapply cancel out across the round trip.
	assert.InDelta(t, originalFine, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, originalFine, cachedWeight(t, db, "Gold"), 1e-9)
}

func TestUpdateBillPaymentTypeFlip(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	debit := models.PaymentTypeDebit
	updated, err := billing.UpdateBill(bill.ID, UpdateBillInput{PaymentType: &debit})
	require.NoError(t, err)

	assert.InDelta(t, 50, updated.TotalAmount, 1e-9)
	assert.InDelta(t, -91.6, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, -91.6, cachedWeight(t, db, "Gold"), 1e-9)

	var transaction models.Transaction
	require.NoError(t, db.Where("bill_id = ?", bill.ID).First(&transaction).Error)
	assert.Equal(t, models.PaymentTypeDebit, transaction.TransactionType)
}

func TestUpdateBillMissingTransactionFailsLoudly(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	require.NoError(t, db.Where("bill_id = ?", bill.ID).Delete(&models.Transaction{}).Error)

	weight := 80.0
	_, err = billing.UpdateBill(bill.ID, UpdateBillInput{Weight: &weight})
	assert.ErrorIs(t, err, ErrTransactionMissing)

	// The failed update must not have moved stock.
	assert.InDelta(t, 93.6, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, 93.6, cachedWeight(t, db, "Gold"), 1e-9)
}

func TestDeleteBillRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	require.NoError(t, billing.DeleteBill(bill.ID))

	assert.InDelta(t, 0, stockTotal(t, db, "Gold"), 1e-9)
	assert.InDelta(t, 0, cachedWeight(t, db, "Gold"), 1e-9)

	var transactions int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("bill_id = ?", bill.ID).Count(&transactions).Error)
	assert.EqualValues(t, 0, transactions)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "id = ?", bill.CustomerID).Error)
	assert.Equal(t, 0, customer.TotalBills)
}

func TestCreateBillAtomicity(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	// Drop the stock ledger so the stock step fails mid-transaction.
	require.NoError(t, db.Migrator().DropTable(&models.StockEntry{}))

	_, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.Error(t, err)

	var bills, transactions int64
	require.NoError(t, db.Model(&models.Bill{}).Count(&bills).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Count(&transactions).Error)
	assert.EqualValues(t, 0, bills)
	assert.EqualValues(t, 0, transactions)
}

func TestStockCacheMatchesLedgerAcrossLifecycle(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	_, err = billing.CreateBill(goldBill(models.PaymentTypeDebit))
	require.NoError(t, err)

	weight := 75.0
	_, err = billing.UpdateBill(bill.ID, UpdateBillInput{Weight: &weight})
	require.NoError(t, err)
	require.NoError(t, billing.DeleteBill(bill.ID))

	assert.InDelta(t, stockTotal(t, db, "Gold"), cachedWeight(t, db, "Gold"), 1e-9)
}

func TestDeleteBillNotFound(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	bill, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	require.NoError(t, billing.DeleteBill(bill.ID))

	err = billing.DeleteBill(bill.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}
