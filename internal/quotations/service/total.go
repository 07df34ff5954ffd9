package service

import "fmt"

// CalculateTotalCents computes a line total from quantity and unit
// price. Nil inputs count as zero. All arithmetic is integer cents, so
// 3 x 33.33 is exactly 99.99 with no floating-point drift.
func CalculateTotalCents(quantity, unitPriceCents *int64) int64 {
	var qty, price int64
	if quantity != nil {
		qty = *quantity
	}
	if unitPriceCents != nil {
		price = *unitPriceCents
	}
	return qty * price
}

// FormatCents renders a cent amount as exact decimal text with two
// fractional digits, e.g. 9999 -> "99.99".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
