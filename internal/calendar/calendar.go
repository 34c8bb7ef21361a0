// Package calendar provides the month arithmetic used by the planner.
package calendar

import (
	"math"
	"time"
)

// AverageMonthDays is the average month length used to express elapsed
// calendar time in months.
const AverageMonthDays = 30.44

// fractionalOffsetDays is added for any non-integer month count.
const fractionalOffsetDays = 15

// restrictedMonths are months during which on-site construction does not
// progress unless the work is subcontracted.
var restrictedMonths = map[time.Month]bool{
	time.January: true,
	time.April:   true,
	time.August:  true,
}

// AddMonths adds floor(months) whole months with calendar normalization,
// then a fixed 15 days when months has a fractional part.
func AddMonths(t time.Time, months float64) time.Time {
	whole := math.Floor(months)
	out := t.AddDate(0, int(whole), 0)
	if months != whole {
		out = out.AddDate(0, 0, fractionalOffsetDays)
	}
	return out
}

// DiffMonths returns the number of month boundaries between from and to,
// ignoring the day of month.
func DiffMonths(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}

// ElapsedMonths returns (to - from) in average-length months.
func ElapsedMonths(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24 / AverageMonthDays
}

// StartOfMonth floors t to the first day of its month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MaxTime returns the later of the given times.
func MaxTime(first time.Time, rest ...time.Time) time.Time {
	out := first
	for _, t := range rest {
		if t.After(out) {
			out = t
		}
	}
	return out
}

// IsRestricted reports whether m is a construction-restricted month.
func IsRestricted(m time.Month) bool {
	return restrictedMonths[m]
}

// RestrictedMonths returns the restricted months in calendar order.
func RestrictedMonths() []time.Month {
	out := make([]time.Month, 0, len(restrictedMonths))
	for m := time.January; m <= time.December; m++ {
		if restrictedMonths[m] {
			out = append(out, m)
		}
	}
	return out
}
