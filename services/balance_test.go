package services

import (
	"testing"
	"time"

	"metalic-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingCustomers(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)
	balances := NewBalanceService(db)

	// Ramesh: credit fine 93.6, amount 0; debit fine 93.6, amount 50.
	_, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	_, err = billing.CreateBill(goldBill(models.PaymentTypeDebit))
	require.NoError(t, err)

	// Suresh has no bills and must not appear.
	createCustomer(t, db, "Suresh")

	pending, err := balances.PendingCustomers()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	got := pending[0]
	assert.Equal(t, "Ramesh", got.CustomerName)
	// F1 - F2 and A1 - A2.
	assert.InDelta(t, 0, got.RemainingFine, 1e-9)
	assert.InDelta(t, -50, got.RemainingAmount, 1e-9)
	assert.InDelta(t, 93.6, got.TotalCreditFine, 1e-9)
	assert.InDelta(t, 93.6, got.TotalDebitFine, 1e-9)
	assert.InDelta(t, 50, got.TotalDebitAmount, 1e-9)
}

func TestPendingCustomersExcludesSettled(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	// A credit and debit that cancel exactly in both fine and amount.
	in := goldBill(models.PaymentTypeCredit)
	in.Wastage = 0
	in.Wages = 0
	_, err := billing.CreateBill(in)
	require.NoError(t, err)

	in.PaymentType = models.PaymentTypeDebit
	_, err = billing.CreateBill(in)
	require.NoError(t, err)

	pending, err := NewBalanceService(db).PendingCustomers()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCustomerBalanceWithItemBreakdown(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	_, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	silver := goldBill(models.PaymentTypeDebit)
	silver.Item = "Silver"
	silver.ItemName = "Silver"
	bill, err := billing.CreateBill(silver)
	require.NoError(t, err)

	balance, items, err := NewBalanceService(db).CustomerBalance(bill.CustomerID)
	require.NoError(t, err)

	assert.InDelta(t, 93.6, balance.TotalCreditFine, 1e-9)
	assert.InDelta(t, 93.6, balance.TotalDebitFine, 1e-9)
	require.Len(t, items, 2)

	byItem := map[string]ItemBalance{}
	for _, item := range items {
		byItem[item.Item] = item
	}
	assert.InDelta(t, 93.6, byItem["Gold"].CreditFine, 1e-9)
	assert.InDelta(t, 0, byItem["Gold"].DebitFine, 1e-9)
	assert.InDelta(t, 93.6, byItem["Silver"].DebitFine, 1e-9)
	assert.Equal(t, 1, byItem["Silver"].BillCount)
}

func TestCustomerBalanceNotFound(t *testing.T) {
	db := setupTestDB(t)

	customer := createCustomer(t, db, "Gone")
	require.NoError(t, db.Delete(customer).Error)

	_, _, err := NewBalanceService(db).CustomerBalance(customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpenseDashboard(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	_, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)
	_, err = billing.CreateBill(goldBill(models.PaymentTypeDebit))
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Expense{
		Description: "Rent", Amount: 30, Category: "shop",
	}).Error)

	dashboard, err := NewBalanceService(db).ExpenseDashboard()
	require.NoError(t, err)

	assert.InDelta(t, 30, dashboard.TotalExpenses, 1e-9)
	assert.InDelta(t, 0, dashboard.NetFine, 1e-9)
	assert.InDelta(t, -50, dashboard.TotalBillAmount, 1e-9)
	// wages*weight summed over both bills.
	assert.InDelta(t, 100000, dashboard.TotalWagesWeight, 1e-9)
	assert.InDelta(t, 0, dashboard.BalanceSheet.SilverBalance, 1e-9)
	assert.InDelta(t, -80, dashboard.BalanceSheet.RupeeBalance, 1e-9)
}

func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	_, err := billing.CreateBill(goldBill(models.PaymentTypeCredit))
	require.NoError(t, err)

	dashboard, err := NewBalanceService(db).Dashboard()
	require.NoError(t, err)

	require.Len(t, dashboard.RecentBills, 1)
	require.Len(t, dashboard.RecentTransactions, 1)
	assert.Equal(t, "Ramesh", dashboard.RecentBills[0].CustomerName)
	assert.InDelta(t, 93.6, dashboard.CurrentStock, 1e-9)
	assert.EqualValues(t, 1, dashboard.Totals.Customers)
	assert.EqualValues(t, 1, dashboard.Totals.Bills)
	assert.EqualValues(t, 1, dashboard.Totals.Transactions)
}

func TestTodayStatistics(t *testing.T) {
	db := setupTestDB(t)
	billing := NewBillingService(db)

	today := time.Now()
	in := goldBill(models.PaymentTypeCredit)
	in.Date = today
	_, err := billing.CreateBill(in)
	require.NoError(t, err)

	// A bill from another day counts only in the all-time breakdown.
	old := goldBill(models.PaymentTypeDebit)
	_, err = billing.CreateBill(old)
	require.NoError(t, err)

	stats, err := NewBalanceService(db).TodayStatistics(today)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.BillCount)
	assert.InDelta(t, 93.6, stats.CreditFine, 1e-9)
	assert.InDelta(t, 0, stats.DebitFine, 1e-9)
	assert.InDelta(t, 93.6, stats.NetFine, 1e-9)

	require.Len(t, stats.ItemsToday, 1)
	require.Len(t, stats.ItemsAllTime, 1)
	assert.Equal(t, 1, stats.ItemsToday[0].BillCount)
	assert.Equal(t, 2, stats.ItemsAllTime[0].BillCount)
}
