package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bill is the central ledger record. TotalFine and TotalAmount are derived
// from the other fields by ComputeTotals and persisted; the stock effect of a
// bill is derived by StockEffect and never stored.
type Bill struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber   string    `gorm:"uniqueIndex;not null" json:"bill_number"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`
	ItemName     string    `gorm:"not null" json:"item_name"`
	Item         string    `gorm:"not null;index" json:"item"`
	Weight       float64   `gorm:"not null" json:"weight"`
	Tunch        float64   `gorm:"not null" json:"tunch"`
	Wages        float64   `gorm:"not null" json:"wages"`
	Wastage      float64   `gorm:"not null" json:"wastage"`
	SilverAmount float64   `gorm:"default:0" json:"silver_amount"`
	TotalFine    float64   `gorm:"not null" json:"total_fine"`
	TotalAmount  float64   `gorm:"not null" json:"total_amount"`
	PaymentType  string    `gorm:"type:varchar(10);not null" json:"payment_type"` // credit/debit
	IsReturn     bool      `gorm:"default:false" json:"is_return"`
	SlipNo       string    `json:"slip_no"`
	Description  string    `gorm:"type:text" json:"description"`
	Date         time.Time `gorm:"type:date;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Customer     *Customer     `gorm:"foreignKey:CustomerID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"-"`
}

const (
	PaymentTypeCredit = "credit"
	PaymentTypeDebit  = "debit"
)

func (b *Bill) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// ComputeTotals derives TotalFine and TotalAmount from the bill's fields.
// Fine counts wastage on top of tunch; wages are charged only on debit
// (receiving) bills, credit bills carry the flat silver amount alone.
func (b *Bill) ComputeTotals() {
	b.TotalFine = b.Weight * (b.Tunch + b.Wastage) / 100
	if b.PaymentType == PaymentTypeDebit {
		b.TotalAmount = b.Weight*(b.Wages/1000) + b.SilverAmount
	} else {
		b.TotalAmount = b.SilverAmount
	}
}

// PureFine is the fine at purity only, without the wastage allowance. Debit
// bills pull this from stock, and returned goods add it back on credit.
func (b *Bill) PureFine() float64 {
	return b.Weight * b.Tunch / 100
}

// StockEffect returns the signed quantity this bill applies to the stock of
// its item: positive for an addition, negative for a deduction.
func (b *Bill) StockEffect() float64 {
	if b.PaymentType == PaymentTypeCredit {
		if b.IsReturn {
			return b.PureFine()
		}
		return b.TotalFine
	}
	return -b.PureFine()
}

// TotalWages is the full making charge on the bill's weight, reported on the
// serialization view but never persisted.
func (b *Bill) TotalWages() float64 {
	return b.Wages * b.Weight
}

// BillResponse is the serialization view of a bill, including the derived
// read-time fields.
type BillResponse struct {
	ID           uuid.UUID `json:"id"`
	BillNumber   string    `json:"bill_number"`
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	ItemName     string    `json:"item_name"`
	Item         string    `json:"item"`
	Weight       float64   `json:"weight"`
	Tunch        float64   `json:"tunch"`
	Wages        float64   `json:"wages"`
	Wastage      float64   `json:"wastage"`
	SilverAmount float64   `json:"silver_amount"`
	TotalFine    float64   `json:"total_fine"`
	TotalAmount  float64   `json:"total_amount"`
	TotalWages   float64   `json:"total_wages"`
	PaymentType  string    `json:"payment_type"`
	IsReturn     bool      `json:"is_return"`
	SlipNo       string    `json:"slip_no"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Bill) ToResponse() BillResponse {
	resp := BillResponse{
		ID:           b.ID,
		BillNumber:   b.BillNumber,
		CustomerID:   b.CustomerID,
		ItemName:     b.ItemName,
		Item:         b.Item,
		Weight:       b.Weight,
		Tunch:        b.Tunch,
		Wages:        b.Wages,
		Wastage:      b.Wastage,
		SilverAmount: b.SilverAmount,
		TotalFine:    b.TotalFine,
		TotalAmount:  b.TotalAmount,
		TotalWages:   b.TotalWages(),
		PaymentType:  b.PaymentType,
		IsReturn:     b.IsReturn,
		SlipNo:       b.SlipNo,
		Description:  b.Description,
		Date:         b.Date.Format("2006-01-02"),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Customer != nil {
		resp.CustomerName = b.Customer.Name
	}
	return resp
}
