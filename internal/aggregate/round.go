package aggregate

import "github.com/shopspring/decimal"

// round1 rounds half away from zero to one decimal place.
func round1(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(1).Float64()
	return v
}

// roundInt rounds half away from zero to a whole number.
func roundInt(x float64) int {
	return int(decimal.NewFromFloat(x).Round(0).IntPart())
}
