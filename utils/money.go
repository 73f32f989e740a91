package utils

import "math"

// RoundMoney rounds an amount to two decimal places. Totals keep full
// precision internally; rounding happens only at the response boundary.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
