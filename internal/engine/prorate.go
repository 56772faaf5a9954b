package engine

import (
	"fmt"
	"math"
	"time"
)

// Prorate computes the amount due for a tenant's first, possibly
// partial, month.  A check-in on day 1 owes the full monthly rate.
// Otherwise the rate is split over the actual number of days in the
// check-in month and the tenant is billed for the remaining days,
// check-in day included.  The result is rounded to 2 decimals.
//
// The day count comes from the calendar, so leap-year February and
// 28/29/30/31-day months all work out without special cases.
func Prorate(checkIn time.Time, monthlyRate float64) (float64, error) {
	if monthlyRate < 0 {
		return 0, fmt.Errorf("%w: monthly rate must not be negative", ErrInvalidInput)
	}
	if checkIn.Day() == 1 {
		return monthlyRate, nil
	}
	daysInMonth := time.Date(checkIn.Year(), checkIn.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	remaining := daysInMonth - checkIn.Day() + 1
	daily := monthlyRate / float64(daysInMonth)
	return round2(daily * float64(remaining)), nil
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
