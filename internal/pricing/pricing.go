// Package pricing implements the storewide day-of-week discount rule.
package pricing

import (
	"math"
	"time"
)

const (
	// DiscountDay is the weekday the storewide sale runs on.
	DiscountDay = time.Friday

	// DiscountFactor is the multiplier applied on the discount day
	// (a 35% discount).
	DiscountFactor = 0.65
)

// EffectivePrice returns the price in effect at the given moment.
// On the discount day the base price is multiplied by DiscountFactor and
// rounded to the nearest integer, half away from zero (math.Round), since
// displayed prices are whole rubles. Any other day returns the base price
// unchanged. Pure and deterministic given now.
func EffectivePrice(basePrice int64, now time.Time) int64 {
	if now.Weekday() != DiscountDay {
		return basePrice
	}
	return int64(math.Round(float64(basePrice) * DiscountFactor))
}

// IsDiscountDay reports whether the storewide sale is active at the
// given moment.
func IsDiscountDay(now time.Time) bool {
	return now.Weekday() == DiscountDay
}
