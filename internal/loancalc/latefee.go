package loancalc

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// LateFee charges dailyRatePercent of the overdue amount per day overdue,
// rounded to the cent. 0.05 means 0.05% per day.
func LateFee(overdueAmount decimal.Decimal, daysOverdue int, dailyRatePercent decimal.Decimal) decimal.Decimal {
	if daysOverdue <= 0 || !overdueAmount.IsPositive() {
		return decimal.Zero
	}
	days := decimal.NewFromInt(int64(daysOverdue))
	return overdueAmount.Mul(dailyRatePercent).Div(hundred).Mul(days).Round(2)
}

// DaysOverdue counts whole days elapsed since the grace period ended,
// rounding partial days up. Zero if still within grace.
func DaysOverdue(scheduled time.Time, graceDays int, now time.Time) int {
	graceEnd := scheduled.AddDate(0, 0, graceDays)
	if !now.After(graceEnd) {
		return 0
	}
	return int(math.Ceil(now.Sub(graceEnd).Hours() / 24))
}

// IsOverdue reports whether a payment scheduled at the given date has passed
// its grace period.
func IsOverdue(scheduled time.Time, graceDays int, now time.Time) bool {
	return now.After(scheduled.AddDate(0, 0, graceDays))
}
