package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ShortFloat formats a number with the fewest digits that represent it,
// always keeping one decimal: 3 -> "3.0", 3.25 -> "3.25".
func ShortFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(v, 0) && !math.IsNaN(v) {
		s += ".0"
	}
	return s
}

// FormatMoney formats an amount with thousands separators and two decimals
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("%.2f", v)
}

// CurrencySymbol returns the display symbol for a currency code
func CurrencySymbol(currency string) string {
	switch currency {
	case "COP":
		return "COL$"
	default:
		return "$"
	}
}
