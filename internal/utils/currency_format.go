package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ALTAN is not an ISO currency, so go-money needs it registered before use.
func init() {
	money.AddCurrency("ALTAN", "₳", "1 $", ".", ",", 2)
}

// FormatAmount renders amount as a currency-tagged display string.
// Example: 4900 ALTAN returns "4,900.00 ₳"
// Example: 12.3456 USD returns "$12.35"
// Unknown currency codes fall back to "<amount> <code>" with two decimals.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		return amount.StringFixed(2) + " " + currencyCode
	}
	minor := amount.Shift(int32(currency.Fraction)).Round(0).IntPart()
	return money.New(minor, currency.Code).Display()
}
