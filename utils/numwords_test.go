package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{7, "Seven Rupees Only"},
		{18, "Eighteen Rupees Only"},
		{45, "Forty Five Rupees Only"},
		{100, "One Hundred Rupees Only"},
		{512, "Five Hundred Twelve Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{82400, "Eighty Two Thousand Four Hundred Rupees Only"},
		{125000, "One Lakh Twenty Five Thousand Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight Rupees Only"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, AmountInWords(tc.amount), "amount %d", tc.amount)
	}
}
