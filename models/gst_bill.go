package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GSTBill is a tax invoice, kept apart from the metal ledger: GST bills carry
// no stock or transaction side effects.
type GSTBill struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber           string    `gorm:"uniqueIndex;not null" json:"bill_number"`
	Date                 time.Time `gorm:"type:date;not null" json:"-"`
	CustomerName         string    `gorm:"not null" json:"customer_name"`
	CustomerAddress      string    `gorm:"type:text;not null" json:"customer_address"`
	CustomerGSTIN        string    `gorm:"type:varchar(15)" json:"customer_gstin"`
	TotalAmountBeforeTax float64   `gorm:"not null;default:0" json:"total_amount_before_tax"`
	CGSTPercentage       float64   `gorm:"not null;default:0" json:"cgst_percentage"`
	SGSTPercentage       float64   `gorm:"not null;default:0" json:"sgst_percentage"`
	IGSTPercentage       float64   `gorm:"not null;default:0" json:"igst_percentage"`
	CGSTAmount           float64   `gorm:"not null;default:0" json:"cgst_amount"`
	SGSTAmount           float64   `gorm:"not null;default:0" json:"sgst_amount"`
	IGSTAmount           float64   `gorm:"not null;default:0" json:"igst_amount"`
	GrandTotal           float64   `gorm:"not null;default:0" json:"grand_total"`
	AmountInWords        string    `gorm:"type:text;not null" json:"amount_in_words"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`

	Items []GSTBillItem `gorm:"foreignKey:GSTBillID;constraint:OnDelete:CASCADE" json:"items"`
}

func (b *GSTBill) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

type GSTBillItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	GSTBillID   uuid.UUID `gorm:"type:uuid;index;not null" json:"gst_bill_id"`
	Description string    `gorm:"not null" json:"description"`
	HSN         string    `gorm:"not null" json:"hsn"`
	Weight      float64   `gorm:"not null" json:"weight"`
	Rate        float64   `gorm:"not null" json:"rate"`
	Amount      float64   `gorm:"not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *GSTBillItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

// GSTCustomer stores invoice parties for autocomplete, deduped by name.
type GSTCustomer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName    string    `gorm:"uniqueIndex;not null" json:"customer_name"`
	CustomerAddress string    `gorm:"type:text" json:"customer_address"`
	CustomerGSTIN   string    `gorm:"type:varchar(15)" json:"customer_gstin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (c *GSTCustomer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
