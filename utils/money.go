package utils

import "fmt"

// FormatPrice formats a price in dollars as a string like "$1.50".
// Always two decimal places.
func FormatPrice(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
