// utils/numwords.go
package utils

import "strings"

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven",
		"Eight", "Nine", "Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
		"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty",
		"Seventy", "Eighty", "Ninety"}
)

func convertHundreds(num int64) string {
	var sb strings.Builder
	if num >= 100 {
		sb.WriteString(onesWords[num/100])
		sb.WriteString(" Hundred ")
		num %= 100
	}
	if num >= 20 {
		sb.WriteString(tensWords[num/10])
		sb.WriteString(" ")
		num %= 10
	}
	if num > 0 {
		sb.WriteString(onesWords[num])
		sb.WriteString(" ")
	}
	return sb.String()
}

// AmountInWords converts a rupee amount to words in the Indian format
// (crore/lakh/thousand), e.g. 125000 -> "One Lakh Twenty Five Thousand Rupees Only".
func AmountInWords(n int64) string {
	if n == 0 {
		return "Zero Rupees Only"
	}

	crores := n / 10000000
	n %= 10000000
	lakhs := n / 100000
	n %= 100000
	thousands := n / 1000
	hundreds := n % 1000

	var sb strings.Builder
	if crores > 0 {
		sb.WriteString(convertHundreds(crores))
		sb.WriteString("Crore ")
	}
	if lakhs > 0 {
		sb.WriteString(convertHundreds(lakhs))
		sb.WriteString("Lakh ")
	}
	if thousands > 0 {
		sb.WriteString(convertHundreds(thousands))
		sb.WriteString("Thousand ")
	}
	if hundreds > 0 {
		sb.WriteString(convertHundreds(hundreds))
	}

	return strings.TrimSpace(sb.String()) + " Rupees Only"
}
