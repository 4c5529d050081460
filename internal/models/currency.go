package models

// Currency is an ISO 4217 currency code.
type Currency string

const (
	CurrencyCNY Currency = "CNY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// DefaultCurrency is used when no currency is specified.
const DefaultCurrency = CurrencyCNY
