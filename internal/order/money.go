package order

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var inr = message.NewPrinter(language.English)

// ParsePaise converts an upstream price field into paise. Upstream documents
// carry amounts as numbers or strings ("₹1,234.50", "500", 500, 500.0)
// depending on which producer wrote them. Anything unparseable, including
// nil, yields 0 rather than an error.
func ParsePaise(raw any) int64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case int:
		return int64(v) * 100
	case int64:
		return v * 100
	case float64:
		return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	case string:
		return parsePaiseString(v)
	default:
		return 0
	}
}

func parsePaiseString(s string) int64 {
	var b strings.Builder

	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}

	clean := b.String()
	if clean == "" {
		return 0
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Due returns the outstanding balance, clamped at zero. Overpaid orders owe
// nothing; they never produce a negative due.
func Due(adminPrice, paidAmount int64) int64 {
	due := adminPrice - paidAmount
	if due < 0 {
		return 0
	}

	return due
}

// FormatINR renders paise as a display string with the rupee symbol and
// thousands separators. Whole-rupee amounts drop the decimals, so zero
// renders as "₹0" rather than "₹0.00" or an empty string.
func FormatINR(paise int64) string {
	if paise%100 == 0 {
		return inr.Sprintf("₹%d", paise/100)
	}

	return inr.Sprintf("₹%.2f", float64(paise)/100.0)
}
