package conversion

import "fxconvert/internal/domain"

// Convert converts amount from one currency to another through the base currency.
// It never fails: an unknown rate yields 0. No rounding is applied.
//
// Same-code conversions are not special-cased, so USD->USD is 0 unless the table carries "USD".
func Convert(rates domain.RateTable, amount float64, from, to string) float64 {
	toRate, ok := rates[to]
	if !ok {
		return 0
	}
	if from == domain.BaseCurrency {
		return amount * toRate
	}
	if fromRate, ok := rates[from]; ok {
		return (amount / fromRate) * toRate
	}
	return 0
}
