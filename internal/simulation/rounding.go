package simulation

import "github.com/shopspring/decimal"

const (
	currencyPlaces   = 2
	monthsPlaces     = 1
	percentagePlaces = 1
)

// round rounds half away from zero. v must be finite.
func round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

func roundPtr(v float64, places int32) *float64 {
	r := round(v, places)
	return &r
}
