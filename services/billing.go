package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"metalic-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BillingService is the single authority for creating, updating and deleting
// bills. Every mutation runs as one database transaction covering the bill
// row, its mirrored transaction, the stock ledger and the customer rollups;
// a failure at any step rolls back the whole operation.
type BillingService struct {
	db *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

type CreateBillInput struct {
	CustomerID      *uuid.UUID
	CustomerName    string
	CustomerMobile  string
	CustomerAddress string

	ItemName     string
	Item         string
	Weight       float64
	Tunch        float64
	Wastage      float64
	Wages        float64
	SilverAmount float64
	PaymentType  string
	IsReturn     bool
	SlipNo       string
	Description  string
	Date         time.Time
}

// UpdateBillInput is the explicit allowlist of editable bill fields. Nil
// means "leave unchanged"; protected columns (id, bill number, totals) are
// not reachable from here.
type UpdateBillInput struct {
	ItemName     *string
	Item         *string
	Weight       *float64
	Tunch        *float64
	Wastage      *float64
	Wages        *float64
	SilverAmount *float64
	PaymentType  *string
	IsReturn     *bool
	SlipNo       *string
	Description  *string
	Date         *time.Time
}

func validPaymentType(t string) bool {
	return t == models.PaymentTypeCredit || t == models.PaymentTypeDebit
}

// CreateBill computes the derived totals, persists the bill, creates the
// mirrored transaction, adjusts stock and recounts the customer's totals.
func (s *BillingService) CreateBill(in CreateBillInput) (*models.Bill, error) {
	if in.Item == "" {
		in.Item = in.ItemName
	}
	if in.ItemName == "" {
		in.ItemName = in.Item
	}
	if in.Item == "" {
		return nil, invalid("item is required")
	}
	if !validPaymentType(in.PaymentType) {
		return nil, invalid("payment_type must be credit or debit")
	}
	if in.Weight <= 0 {
		return nil, invalid("weight must be positive")
	}
	if in.Date.IsZero() {
		return nil, invalid("date is required")
	}

	var bill *models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := s.resolveCustomer(tx, in)
		if err != nil {
			return err
		}

		b := models.Bill{
			CustomerID:   customer.ID,
			ItemName:     in.ItemName,
			Item:         in.Item,
			Weight:       in.Weight,
			Tunch:        in.Tunch,
			Wastage:      in.Wastage,
			Wages:        in.Wages,
			SilverAmount: in.SilverAmount,
			PaymentType:  in.PaymentType,
			IsReturn:     in.IsReturn,
			SlipNo:       in.SlipNo,
			Description:  in.Description,
			Date:         in.Date,
		}
		b.ComputeTotals()

		number, err := nextBillNumber(tx, in.Date)
		if err != nil {
			return err
		}
		b.BillNumber = number

		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		transaction := models.Transaction{
			BillID:          &b.ID,
			CustomerID:      customer.ID,
			Amount:          b.TotalAmount,
			TransactionType: b.PaymentType,
			Description:     fmt.Sprintf("Bill #%s - %s", b.BillNumber, b.ItemName),
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		var reason string
		if b.PaymentType == models.PaymentTypeCredit {
			reason = fmt.Sprintf("Stock added from credit bill #%s", b.BillNumber)
		} else {
			reason = fmt.Sprintf("Stock deducted from debit bill #%s", b.BillNumber)
		}
		if err := applySignedStockEffect(tx, b.Item, b.StockEffect(), reason); err != nil {
			return err
		}

		if err := refreshCustomerTotals(tx, customer.ID); err != nil {
			return err
		}

		b.Customer = customer
		bill = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// UpdateBill applies the allowlisted field changes, re-derives the totals
// with the same formulas as create, patches the mirrored transaction, and
// retracts then reapplies the stock effect using the old and new values.
func (s *BillingService) UpdateBill(billID uuid.UUID, in UpdateBillInput) (*models.Bill, error) {
	if in.PaymentType != nil && !validPaymentType(*in.PaymentType) {
		return nil, invalid("payment_type must be credit or debit")
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return nil, invalid("weight must be positive")
	}

	var bill *models.Bill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var b models.Bill
		if err := tx.Preload("Customer").First(&b, "id = ?", billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("bill")
			}
			return err
		}

		// Capture the old stock effect before any field changes.
		oldEffect := b.StockEffect()
		oldItem := b.Item

		recompute := false
		if in.ItemName != nil {
			b.ItemName = *in.ItemName
		}
		if in.Item != nil {
			b.Item = *in.Item
		}
		if in.Weight != nil {
			b.Weight = *in.Weight
			recompute = true
		}
		if in.Tunch != nil {
			b.Tunch = *in.Tunch
			recompute = true
		}
		if in.Wastage != nil {
			b.Wastage = *in.Wastage
			recompute = true
		}
		if in.Wages != nil {
			b.Wages = *in.Wages
			recompute = true
		}
		if in.SilverAmount != nil {
			b.SilverAmount = *in.SilverAmount
			recompute = true
		}
		if in.PaymentType != nil {
			b.PaymentType = *in.PaymentType
			recompute = true
		}
		if in.IsReturn != nil {
			b.IsReturn = *in.IsReturn
		}
		if in.SlipNo != nil {
			b.SlipNo = *in.SlipNo
		}
		if in.Description != nil {
			b.Description = *in.Description
		}
		if in.Date != nil {
			b.Date = *in.Date
		}

		if recompute {
			b.ComputeTotals()
		}

		var transaction models.Transaction
		if err := tx.Where("bill_id = ?", b.ID).First(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: bill #%s", ErrTransactionMissing, b.BillNumber)
			}
			return err
		}
		transaction.Amount = b.TotalAmount
		transaction.TransactionType = b.PaymentType
		if in.Description != nil {
			transaction.Description = *in.Description
		}
		if err := tx.Save(&transaction).Error; err != nil {
			return err
		}

		// Retract the old effect, then apply the new one. Two extra ledger
		// rows per update, which doubles as an audit trail.
		adjustment := fmt.Sprintf("Stock adjustment for bill update #%s", b.BillNumber)
		if err := applySignedStockEffect(tx, oldItem, -oldEffect, adjustment); err != nil {
			return err
		}
		reapply := fmt.Sprintf("Stock updated for bill #%s", b.BillNumber)
		if err := applySignedStockEffect(tx, b.Item, b.StockEffect(), reapply); err != nil {
			return err
		}

		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		if err := refreshCustomerTotals(tx, b.CustomerID); err != nil {
			return err
		}

		bill = &b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// DeleteBill reverses the bill's stock effect, removes the bill and its
// mirrored transaction, and recounts the customer's totals.
func (s *BillingService) DeleteBill(billID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var b models.Bill
		if err := tx.First(&b, "id = ?", billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("bill")
			}
			return err
		}

		var reason string
		if b.PaymentType == models.PaymentTypeCredit {
			reason = fmt.Sprintf("Stock deducted due to bill deletion #%s", b.BillNumber)
		} else {
			reason = fmt.Sprintf("Stock added due to bill deletion #%s", b.BillNumber)
		}
		if err := applySignedStockEffect(tx, b.Item, -b.StockEffect(), reason); err != nil {
			return err
		}

		if err := tx.Where("bill_id = ?", b.ID).Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&b).Error; err != nil {
			return err
		}

		return refreshCustomerTotals(tx, b.CustomerID)
	})
}

// resolveCustomer finds the owning customer by id, or by exact name match
// when only a name is supplied, creating the customer if no match exists.
func (s *BillingService) resolveCustomer(tx *gorm.DB, in CreateBillInput) (*models.Customer, error) {
	if in.CustomerID != nil {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", *in.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("customer")
			}
			return nil, err
		}
		return &customer, nil
	}

	if in.CustomerName == "" {
		return nil, invalid("customer_id or customer_name is required")
	}

	var customer models.Customer
	err := tx.Where("name = ?", in.CustomerName).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Name:    in.CustomerName,
			Mobile:  in.CustomerMobile,
			Address: in.CustomerAddress,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// nextBillNumber generates a date-prefixed sequence number, unique per day:
// YYYYMMDD followed by a four digit counter.
func nextBillNumber(tx *gorm.DB, date time.Time) (string, error) {
	dateStr := date.Format("20060102")

	var last models.Bill
	err := tx.Where("bill_number LIKE ?", dateStr+"%").
		Order("bill_number DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Sprintf("%s%04d", dateStr, 1), nil
	}
	if err != nil {
		return "", err
	}

	seq, err := strconv.Atoi(last.BillNumber[len(last.BillNumber)-4:])
	if err != nil {
		return "", fmt.Errorf("malformed bill number %q: %w", last.BillNumber, err)
	}
	return fmt.Sprintf("%s%04d", dateStr, seq+1), nil
}

// refreshCustomerTotals recounts the customer's bill total inside the
// caller's transaction. Rollups are recomputed, never incremented, so they
// cannot drift from the bill table.
func refreshCustomerTotals(tx *gorm.DB, customerID uuid.UUID) error {
	var count int64
	if err := tx.Model(&models.Bill{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&models.Customer{}).Where("id = ?", customerID).
		Update("total_bills", count).Error
}
