package utils

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Today returns the current date truncated to midnight local time.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SameDay reports whether two times fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// MonthRange returns the half-open interval [first of month, first of next
// month) for date filtering.
func MonthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// MonthsRemaining counts whole calendar months from today until the target
// date, never negative.
func MonthsRemaining(targetDate time.Time) int {
	today := Today()
	months := (targetDate.Year()-today.Year())*12 + int(targetDate.Month()) - int(today.Month())
	if months < 0 {
		return 0
	}
	return months
}

// MonthlyAmountNeeded is the per-month contribution required to reach the
// target by its date. When the target date is this month or past, the whole
// remainder is due; when the goal is already met, nothing is.
func MonthlyAmountNeeded(target, saved float64, targetDate time.Time) float64 {
	remaining := target - saved
	if remaining <= 0 {
		return 0
	}
	months := MonthsRemaining(targetDate)
	if months <= 0 {
		return remaining
	}
	return math.Ceil(remaining / float64(months))
}

// DaysRemainingInMonth is the inclusive countdown from today to the first of
// next month.
func DaysRemainingInMonth() int {
	today := Today()
	firstOfNext := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()).AddDate(0, 1, 0)
	return int(firstOfNext.Sub(today).Hours() / 24)
}

// GoalProgressPercent is saved/target as a whole percentage clamped to
// [0, 100]. A non-positive target always reads 0.
func GoalProgressPercent(saved, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := int(saved / target * 100)
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// FormatINR formats an amount as a rounded rupee figure with thousands
// separators, e.g. ₹12,500.
func FormatINR(amount float64) string {
	if amount < 0 {
		return "-" + FormatINR(-amount)
	}
	s := fmt.Sprintf("%d", int64(math.Round(amount)))
	var b []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, c)
	}
	return "₹" + string(b)
}

// FormatINR2 is like FormatINR but keeps two decimal places, e.g. ₹1,234.50.
func FormatINR2(amount float64) string {
	if amount < 0 {
		return "-" + FormatINR2(-amount)
	}
	s := fmt.Sprintf("%.2f", amount)
	intPart, fracPart := s[:len(s)-3], s[len(s)-2:]
	var b []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, c)
	}
	return "₹" + string(b) + "." + fracPart
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
