package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsCredit(t *testing.T) {
	b := Bill{
		Weight:       100,
		Tunch:        91.6,
		Wastage:      2,
		Wages:        500,
		SilverAmount: 120,
		PaymentType:  PaymentTypeCredit,
	}
	b.ComputeTotals()

	assert.InDelta(t, 93.6, b.TotalFine, 1e-9)
	// Credit charges no wages, silver only.
	assert.InDelta(t, 120, b.TotalAmount, 1e-9)
}

func TestComputeTotalsDebit(t *testing.T) {
	b := Bill{
		Weight:       100,
		Tunch:        91.6,
		Wastage:      2,
		Wages:        500,
		SilverAmount: 120,
		PaymentType:  PaymentTypeDebit,
	}
	b.ComputeTotals()

	assert.InDelta(t, 93.6, b.TotalFine, 1e-9)
	assert.InDelta(t, 170, b.TotalAmount, 1e-9)
}

func TestStockEffect(t *testing.T) {
	b := Bill{Weight: 100, Tunch: 91.6, Wastage: 2, PaymentType: PaymentTypeCredit}
	b.ComputeTotals()
	assert.InDelta(t, 93.6, b.StockEffect(), 1e-9)

	b.IsReturn = true
	assert.InDelta(t, 91.6, b.StockEffect(), 1e-9)

	b.IsReturn = false
	b.PaymentType = PaymentTypeDebit
	assert.InDelta(t, -91.6, b.StockEffect(), 1e-9)
}

func TestTotalWages(t *testing.T) {
	b := Bill{Weight: 100, Wages: 500}
	assert.InDelta(t, 50000, b.TotalWages(), 1e-9)
}
