package domain

import "strings"

// BaseCurrency is the currency every RateTable is expressed relative to.
const BaseCurrency = "USD"

type CurrencyCode = string

// RateTable maps a currency code to the amount of that currency one unit of BaseCurrency buys.
// A missing key means the rate is unknown.
type RateTable map[CurrencyCode]float64

func (t RateTable) Clone() RateTable {
	if t == nil {
		return RateTable{}
	}
	out := make(RateTable, len(t))
	for code, v := range t {
		out[code] = v
	}
	return out
}

// NormalizeCode trims and upper-cases user input.
func NormalizeCode(code string) CurrencyCode {
	return strings.ToUpper(strings.TrimSpace(code))
}
