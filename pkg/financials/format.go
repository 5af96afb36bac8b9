package financials

import (
	"math"

	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is shown for missing values and undefined changes.
const Placeholder = "—"

// FormatNumber renders a value with thousands separators and two decimals.
func FormatNumber(v float64, ok bool) string {
	if !ok {
		return Placeholder
	}
	return message.NewPrinter(language.English).Sprintf("%.2f", v)
}

// FormatPercent renders a YoY change. Non-negative changes carry a leading plus sign.
func FormatPercent(v float64, ok bool) string {
	if !ok {
		return Placeholder
	}
	p := message.NewPrinter(language.English)
	if v >= 0 {
		return p.Sprintf("+%.2f%%", v)
	}
	return p.Sprintf("%.2f%%", v)
}

// FormatMoney renders a KPI amount in the given currency. Unknown currency codes and amounts
// too large for int64 minor units fall back to a plain number followed by the code.
func FormatMoney(v float64, ok bool, currency string) string {
	if !ok {
		return Placeholder
	}
	cur := money.GetCurrency(currency)
	if cur == nil || math.Abs(v)*math.Pow10(cur.Fraction) >= math.MaxInt64 {
		s := FormatNumber(v, true)
		if currency != "" {
			s += " " + currency
		}
		return s
	}
	return money.NewFromFloat(v, currency).Display()
}
