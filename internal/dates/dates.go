// Package dates holds the calendar arithmetic shared by installment dating,
// billing-cycle shifts, and report windows. time.AddDate is unsuitable here:
// it normalizes Jan 31 + 1 month to Mar 2 instead of clamping to Feb 28.
package dates

import "time"

// AddMonthsClamped advances t by the given number of calendar months,
// preserving the day-of-month where possible and clamping it to the target
// month's length otherwise.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	targetFirst := time.Date(year, month, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	targetYear, targetMonth, _ := targetFirst.Date()

	if last := DaysInMonth(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthWindow returns the half-open window [first of t's month, first of the
// next month).
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}
