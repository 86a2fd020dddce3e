package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is the audit record of money movement. Bill-backed transactions
// mirror their bill's amount and payment type at all times; BillID is nil for
// standalone entries.
type Transaction struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BillID          *uuid.UUID `gorm:"type:uuid;index" json:"bill_id"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"customer_id"`
	Amount          float64    `gorm:"not null" json:"amount"`
	TransactionType string     `gorm:"type:varchar(10);not null" json:"transaction_type"` // credit/debit
	Description     string     `gorm:"type:text" json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Bill     *Bill     `gorm:"foreignKey:BillID" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// TransactionResponse embeds the linked bill's details when present.
type TransactionResponse struct {
	ID              uuid.UUID  `json:"id"`
	BillID          *uuid.UUID `json:"bill_id"`
	BillNumber      string     `json:"bill_number,omitempty"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	CustomerName    string     `json:"customer_name,omitempty"`
	Amount          float64    `json:"amount"`
	TransactionType string     `json:"transaction_type"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Weight       *float64 `json:"weight,omitempty"`
	Tunch        *float64 `json:"tunch,omitempty"`
	Wages        *float64 `json:"wages,omitempty"`
	Wastage      *float64 `json:"wastage,omitempty"`
	SilverAmount *float64 `json:"silver_amount,omitempty"`
	TotalWages   *float64 `json:"total_wages,omitempty"`
	Item         string   `json:"item,omitempty"`
	ItemName     string   `json:"item_name,omitempty"`
}

func (t *Transaction) ToResponse() TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID,
		BillID:          t.BillID,
		CustomerID:      t.CustomerID,
		Amount:          t.Amount,
		TransactionType: t.TransactionType,
		Description:     t.Description,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.Customer != nil {
		resp.CustomerName = t.Customer.Name
	}
	if t.Bill != nil {
		b := t.Bill
		silver := b.SilverAmount
		if b.PaymentType != PaymentTypeCredit {
			silver = 0
		}
		totalWages := b.TotalWages()
		resp.BillNumber = b.BillNumber
		resp.Weight = &b.Weight
		resp.Tunch = &b.Tunch
		resp.Wages = &b.Wages
		resp.Wastage = &b.Wastage
		resp.SilverAmount = &silver
		resp.TotalWages = &totalWages
		resp.Item = b.Item
		resp.ItemName = b.ItemName
	}
	return resp
}
