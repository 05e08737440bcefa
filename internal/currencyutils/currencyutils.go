// Package currencyutils parses amounts typed by users and formats totals.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = regexp.MustCompile(`[€$£¥₣CHF\s]`)

// ParseAmount parses a string representation of an amount into a decimal value
// It handles various formats like "1,234.56", "1.234,56", "1234.56", "1234,56", "1'234.56"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if standardized == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString
func StandardizeAmount(amountStr string) string {
	amountStr = currencySymbols.ReplaceAllString(amountStr, "")
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	switch {
	case strings.Contains(amountStr, ",") && strings.Contains(amountStr, "."):
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Contains(amountStr, ","):
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.Replace(amountStr, ",", ".", 1)
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// FormatAmount formats a decimal amount with two decimal places and an
// optional currency code or symbol.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formattedAmount := amount.StringFixed(2)

	switch strings.ToUpper(currency) {
	case "":
		return formattedAmount
	case "EUR":
		return formattedAmount + " €"
	case "CHF":
		return "CHF " + formattedAmount
	case "USD":
		return "$" + formattedAmount
	default:
		return currency + " " + formattedAmount
	}
}
