package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"metalic-backend/models"
	"metalic-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GSTService issues tax invoices. GST bills are a separate book from the
// metal ledger and carry no stock or transaction side effects.
type GSTService struct {
	db *gorm.DB
}

func NewGSTService(db *gorm.DB) *GSTService {
	return &GSTService{db: db}
}

type GSTItemInput struct {
	Description string
	HSN         string
	Weight      float64
	Rate        float64
}

type GSTBillInput struct {
	Date            time.Time
	CustomerName    string
	CustomerAddress string
	CustomerGSTIN   string
	CGSTPercentage  float64
	SGSTPercentage  float64
	IGSTPercentage  float64
	Items           []GSTItemInput
}

// CreateBill derives per-item amounts, the tax split and the grand total,
// persists the invoice with its items and upserts the invoice party for
// autocomplete.
func (s *GSTService) CreateBill(in GSTBillInput) (*models.GSTBill, error) {
	if in.CustomerName == "" {
		return nil, invalid("customer_name is required")
	}
	if len(in.Items) == 0 {
		return nil, invalid("at least one item is required")
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	var bill *models.GSTBill
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number, err := nextGSTBillNumber(tx, in.Date)
		if err != nil {
			return err
		}

		b := models.GSTBill{
			BillNumber:      number,
			Date:            in.Date,
			CustomerName:    in.CustomerName,
			CustomerAddress: in.CustomerAddress,
			CustomerGSTIN:   in.CustomerGSTIN,
			CGSTPercentage:  in.CGSTPercentage,
			SGSTPercentage:  in.SGSTPercentage,
			IGSTPercentage:  in.IGSTPercentage,
		}
		for _, item := range in.Items {
			amount := item.Weight * item.Rate
			b.TotalAmountBeforeTax += amount
			b.Items = append(b.Items, models.GSTBillItem{
				Description: item.Description,
				HSN:         item.HSN,
				Weight:      item.Weight,
				Rate:        item.Rate,
				Amount:      amount,
			})
		}
		b.CGSTAmount = b.TotalAmountBeforeTax * b.CGSTPercentage / 100
		b.SGSTAmount = b.TotalAmountBeforeTax * b.SGSTPercentage / 100
		b.IGSTAmount = b.TotalAmountBeforeTax * b.IGSTPercentage / 100
		b.GrandTotal = b.TotalAmountBeforeTax + b.CGSTAmount + b.SGSTAmount + b.IGSTAmount
		b.AmountInWords = utils.AmountInWords(int64(math.Round(b.GrandTotal)))

		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		if err := upsertGSTCustomer(tx, in); err != nil {
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

func (s *GSTService) Bills() ([]models.GSTBill, error) {
	var bills []models.GSTBill
	err := s.db.Preload("Items").Order("created_at DESC").Find(&bills).Error
	return bills, err
}

func (s *GSTService) Bill(id uuid.UUID) (*models.GSTBill, error) {
	var bill models.GSTBill
	err := s.db.Preload("Items").First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("gst bill")
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeleteBill removes the invoice and its items.
func (s *GSTService) DeleteBill(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var bill models.GSTBill
		if err := tx.First(&bill, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("gst bill")
			}
			return err
		}
		if err := tx.Where("gst_bill_id = ?", id).Delete(&models.GSTBillItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bill).Error
	})
}

func (s *GSTService) Customers() ([]models.GSTCustomer, error) {
	var customers []models.GSTCustomer
	err := s.db.Order("customer_name").Find(&customers).Error
	return customers, err
}

// nextGSTBillNumber mirrors the ledger scheme with a GST prefix:
// GSTYYYYMMDD plus a four digit per-day counter.
func nextGSTBillNumber(tx *gorm.DB, date time.Time) (string, error) {
	prefix := "GST" + date.Format("20060102")

	var last models.GSTBill
	err := tx.Where("bill_number LIKE ?", prefix+"%").
		Order("bill_number DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Sprintf("%s%04d", prefix, 1), nil
	}
	if err != nil {
		return "", err
	}

	seq, err := strconv.Atoi(last.BillNumber[len(last.BillNumber)-4:])
	if err != nil {
		return "", fmt.Errorf("malformed gst bill number %q: %w", last.BillNumber, err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

func upsertGSTCustomer(tx *gorm.DB, in GSTBillInput) error {
	var customer models.GSTCustomer
	err := tx.Where("customer_name = ?", in.CustomerName).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.GSTCustomer{
			CustomerName:    in.CustomerName,
			CustomerAddress: in.CustomerAddress,
			CustomerGSTIN:   in.CustomerGSTIN,
		}
		return tx.Create(&customer).Error
	}
	if err != nil {
		return err
	}
	customer.CustomerAddress = in.CustomerAddress
	customer.CustomerGSTIN = in.CustomerGSTIN
	return tx.Save(&customer).Error
}
