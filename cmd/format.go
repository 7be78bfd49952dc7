package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func usd(value float64) *money.Money {
	cents := decimal.NewFromFloat(value).Shift(2).Round(0).IntPart()
	return money.New(cents, money.USD)
}

// FormatCurrency renders a USD value with thousands separators and cents,
// e.g. "$1,234.56" or "-$500.00".
func FormatCurrency(value float64) string {
	return usd(value).Display()
}

// FormatNetValue is FormatCurrency with an explicit sign; zero renders as
// "$0.00".
func FormatNetValue(value float64) string {
	m := usd(value)
	if m.IsPositive() {
		return "+" + m.Display()
	}
	return m.Display()
}

// FormatPrice keeps more precision for sub-dollar prices.
func FormatPrice(price float64) string {
	if price == 0 || math.Abs(price) >= 1 {
		return FormatCurrency(price)
	}
	return "$" + decimal.NewFromFloat(price).Round(8).String()
}

func FormatPercentage(percentage float64) string {
	return decimal.NewFromFloat(percentage).StringFixed(2) + "%"
}

func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).Round(8).String()
}

// MaskSecret keeps the last four characters of a credential.
func MaskSecret(secret string) string {
	if secret == "" {
		return "-"
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return fmt.Sprintf("%s%s", strings.Repeat("*", 4), secret[len(secret)-4:])
}
