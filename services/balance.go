package services

import (
	"errors"
	"time"

	"metalic-backend/models"
	"metalic-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BalanceService derives pending balances and dashboard aggregates by
// folding over bill history. Nothing here is persisted; every figure is
// recomputed from the ledger on each call.
type BalanceService struct {
	db *gorm.DB
}

func NewBalanceService(db *gorm.DB) *BalanceService {
	return &BalanceService{db: db}
}

// CustomerBalance is a customer's net unsettled position across all bills.
type CustomerBalance struct {
	CustomerID        uuid.UUID `json:"customer_id"`
	CustomerName      string    `json:"customer_name"`
	CustomerMobile    string    `json:"customer_mobile"`
	CustomerAddress   string    `json:"customer_address"`
	RemainingFine     float64   `json:"remaining_fine"`
	RemainingAmount   float64   `json:"remaining_amount"`
	TotalCreditFine   float64   `json:"total_credit_fine"`
	TotalCreditAmount float64   `json:"total_credit_amount"`
	TotalDebitFine    float64   `json:"total_debit_fine"`
	TotalDebitAmount  float64   `json:"total_debit_amount"`
}

// ItemBalance is the same fold restricted to a single item.
type ItemBalance struct {
	Item            string  `json:"item"`
	RemainingFine   float64 `json:"remaining_fine"`
	RemainingAmount float64 `json:"remaining_amount"`
	CreditFine      float64 `json:"credit_fine"`
	DebitFine       float64 `json:"debit_fine"`
	CreditAmount    float64 `json:"credit_amount"`
	DebitAmount     float64 `json:"debit_amount"`
	BillCount       int     `json:"bill_count"`
}

func foldBalance(balance *CustomerBalance, bill models.Bill) {
	if bill.PaymentType == models.PaymentTypeCredit {
		balance.TotalCreditFine += bill.TotalFine
		balance.TotalCreditAmount += bill.TotalAmount
	} else {
		balance.TotalDebitFine += bill.TotalFine
		balance.TotalDebitAmount += bill.TotalAmount
	}
	balance.RemainingFine = balance.TotalCreditFine - balance.TotalDebitFine
	balance.RemainingAmount = balance.TotalCreditAmount - balance.TotalDebitAmount
}

// PendingCustomers lists every customer whose net fine or net amount is
// non-zero, with the credit/debit sums behind the figure.
func (s *BalanceService) PendingCustomers() ([]CustomerBalance, error) {
	var customers []models.Customer
	if err := s.db.Find(&customers).Error; err != nil {
		return nil, err
	}
	var bills []models.Bill
	if err := s.db.Find(&bills).Error; err != nil {
		return nil, err
	}

	byCustomer := make(map[uuid.UUID]*CustomerBalance, len(customers))
	order := make([]uuid.UUID, 0, len(customers))
	for _, c := range customers {
		byCustomer[c.ID] = &CustomerBalance{
			CustomerID:      c.ID,
			CustomerName:    c.Name,
			CustomerMobile:  c.Mobile,
			CustomerAddress: c.Address,
		}
		order = append(order, c.ID)
	}
	for _, b := range bills {
		if balance, ok := byCustomer[b.CustomerID]; ok {
			foldBalance(balance, b)
		}
	}

	pending := make([]CustomerBalance, 0)
	for _, id := range order {
		balance := byCustomer[id]
		if balance.RemainingFine != 0 || balance.RemainingAmount != 0 {
			pending = append(pending, *balance)
		}
	}
	return pending, nil
}

// CustomerBalance folds a single customer's bills, with a per-item breakdown.
func (s *BalanceService) CustomerBalance(customerID uuid.UUID) (*CustomerBalance, []ItemBalance, error) {
	var customer models.Customer
	if err := s.db.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFound("customer")
		}
		return nil, nil, err
	}

	var bills []models.Bill
	if err := s.db.Where("customer_id = ?", customerID).Find(&bills).Error; err != nil {
		return nil, nil, err
	}

	balance := CustomerBalance{
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerMobile:  customer.Mobile,
		CustomerAddress: customer.Address,
	}
	for _, b := range bills {
		foldBalance(&balance, b)
	}
	return &balance, itemBreakdown(bills), nil
}

func itemBreakdown(bills []models.Bill) []ItemBalance {
	byItem := make(map[string]*ItemBalance)
	order := make([]string, 0)
	for _, b := range bills {
		entry, ok := byItem[b.Item]
		if !ok {
			entry = &ItemBalance{Item: b.Item}
			byItem[b.Item] = entry
			order = append(order, b.Item)
		}
		entry.BillCount++
		if b.PaymentType == models.PaymentTypeCredit {
			entry.CreditFine += b.TotalFine
			entry.CreditAmount += b.TotalAmount
		} else {
			entry.DebitFine += b.TotalFine
			entry.DebitAmount += b.TotalAmount
		}
		entry.RemainingFine = entry.CreditFine - entry.DebitFine
		entry.RemainingAmount = entry.CreditAmount - entry.DebitAmount
	}

	breakdown := make([]ItemBalance, 0, len(order))
	for _, item := range order {
		breakdown = append(breakdown, *byItem[item])
	}
	return breakdown
}

// ExpenseDashboard is the firm-wide balance sheet fold over bills and
// expenses.
type ExpenseDashboard struct {
	TotalExpenses     float64      `json:"total_expenses"`
	NetFine           float64      `json:"net_fine"`
	TotalBillAmount   float64      `json:"total_bill_amount"`
	TotalSilverAmount float64      `json:"total_silver_amount"`
	TotalWagesWeight  float64      `json:"total_wages_weight"`
	BalanceSheet      BalanceSheet `json:"balance_sheet"`
}

type BalanceSheet struct {
	SilverBalance float64 `json:"silver_balance"`
	RupeeBalance  float64 `json:"rupee_balance"`
}

func (s *BalanceService) ExpenseDashboard() (*ExpenseDashboard, error) {
	var totalExpenses float64
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalExpenses).Error; err != nil {
		return nil, err
	}

	var bills []models.Bill
	if err := s.db.Find(&bills).Error; err != nil {
		return nil, err
	}

	dashboard := ExpenseDashboard{TotalExpenses: totalExpenses}
	for _, b := range bills {
		dashboard.TotalWagesWeight += b.Weight * b.Wages
		if b.PaymentType == models.PaymentTypeCredit {
			dashboard.NetFine += b.TotalFine
			dashboard.TotalBillAmount += b.TotalAmount
			dashboard.TotalSilverAmount += b.SilverAmount
		} else {
			dashboard.NetFine -= b.TotalFine
			dashboard.TotalBillAmount -= b.TotalAmount
		}
	}
	dashboard.BalanceSheet = BalanceSheet{
		SilverBalance: dashboard.NetFine,
		RupeeBalance:  dashboard.TotalBillAmount - dashboard.TotalExpenses,
	}
	return &dashboard, nil
}

// Dashboard collects the landing-page view: recent activity, top pending
// customers, current aggregate stock and entity counts.
type Dashboard struct {
	RecentTransactions []models.TransactionResponse `json:"recent_transactions"`
	PendingCustomers   []CustomerBalance            `json:"pending_customers"`
	CurrentStock       float64                      `json:"current_stock"`
	RecentBills        []models.BillResponse        `json:"recent_bills"`
	Totals             DashboardTotals              `json:"totals"`
}

type DashboardTotals struct {
	Customers    int64   `json:"customers"`
	Bills        int64   `json:"bills"`
	Transactions int64   `json:"transactions"`
	Expenses     float64 `json:"expenses"`
}

func (s *BalanceService) Dashboard() (*Dashboard, error) {
	var transactions []models.Transaction
	if err := s.db.Preload("Bill").Preload("Customer").
		Order("created_at DESC").Limit(5).Find(&transactions).Error; err != nil {
		return nil, err
	}

	pending, err := s.PendingCustomers()
	if err != nil {
		return nil, err
	}
	if len(pending) > 5 {
		pending = pending[:5]
	}

	currentStock, err := NewStockService(s.db).CurrentTotal()
	if err != nil {
		return nil, err
	}

	var bills []models.Bill
	if err := s.db.Preload("Customer").
		Order("created_at DESC").Limit(5).Find(&bills).Error; err != nil {
		return nil, err
	}

	dashboard := Dashboard{
		PendingCustomers: pending,
		CurrentStock:     currentStock,
	}
	for _, t := range transactions {
		dashboard.RecentTransactions = append(dashboard.RecentTransactions, t.ToResponse())
	}
	for _, b := range bills {
		dashboard.RecentBills = append(dashboard.RecentBills, b.ToResponse())
	}

	if err := s.db.Model(&models.Customer{}).Count(&dashboard.Totals.Customers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Bill{}).Count(&dashboard.Totals.Bills).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Transaction{}).Count(&dashboard.Totals.Transactions).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&dashboard.Totals.Expenses).Error; err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// TodayStatistics runs the balance folds restricted to bills dated today,
// with per-item breakdowns for both today and all time.
type TodayStatistics struct {
	Date         string        `json:"date"`
	BillCount    int           `json:"bill_count"`
	CreditFine   float64       `json:"credit_fine"`
	DebitFine    float64       `json:"debit_fine"`
	NetFine      float64       `json:"net_fine"`
	CreditAmount float64       `json:"credit_amount"`
	DebitAmount  float64       `json:"debit_amount"`
	NetAmount    float64       `json:"net_amount"`
	ItemsToday   []ItemBalance `json:"items_today"`
	ItemsAllTime []ItemBalance `json:"items_all_time"`
}

func (s *BalanceService) TodayStatistics(now time.Time) (*TodayStatistics, error) {
	today := utils.BeginningOfDay(now)

	var allBills []models.Bill
	if err := s.db.Find(&allBills).Error; err != nil {
		return nil, err
	}

	todayStr := utils.FormatDate(today)
	todayBills := make([]models.Bill, 0)
	for _, b := range allBills {
		if utils.FormatDate(b.Date) == todayStr {
			todayBills = append(todayBills, b)
		}
	}

	stats := TodayStatistics{
		Date:      utils.FormatDate(today),
		BillCount: len(todayBills),
	}
	for _, b := range todayBills {
		if b.PaymentType == models.PaymentTypeCredit {
			stats.CreditFine += b.TotalFine
			stats.CreditAmount += b.TotalAmount
		} else {
			stats.DebitFine += b.TotalFine
			stats.DebitAmount += b.TotalAmount
		}
	}
	stats.NetFine = stats.CreditFine - stats.DebitFine
	stats.NetAmount = stats.CreditAmount - stats.DebitAmount
	stats.ItemsToday = itemBreakdown(todayBills)
	stats.ItemsAllTime = itemBreakdown(allBills)
	return &stats, nil
}
