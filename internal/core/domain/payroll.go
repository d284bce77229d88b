package domain

import (
	"errors"
	"time"
)

// Period selects the reporting window for payroll aggregation.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// Nominal full-time targets used for progress display.
const (
	TargetHoursWeek  = 40.0
	TargetHoursMonth = 160.0
)

var ErrInvalidPeriod = errors.New("invalid period")

// ParsePeriod converts a query-string value into a Period.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth:
		return Period(s), nil
	}
	return "", ErrInvalidPeriod
}

// PeriodWindow resolves the inclusive [start, end] window containing now.
// Weeks run Sunday 00:00:00 through the last nanosecond of Saturday, in
// now's location. Months are calendar months.
func PeriodWindow(now time.Time, period Period) (start, end time.Time) {
	switch period {
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	default: // week
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = midnight.AddDate(0, 0, -int(now.Weekday()))
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	}
	return start, end
}

// PayrollTotals is the aggregate for one reporting period.
type PayrollTotals struct {
	Hours    float64
	Earnings float64
	Count    int
}

// Aggregate computes worked hours and earnings for the period containing
// now. A shift counts only when it is closed and its start time falls inside
// the window (inclusive at both bounds); open shifts contribute nothing.
// Durations are summed in whole minutes, then converted, so 90 minutes is
// 1.5 hours. Pure: the shift slice is never modified.
func Aggregate(shifts []Shift, now time.Time, period Period, hourlyRate float64) PayrollTotals {
	start, end := PeriodWindow(now, period)

	var totalMinutes int64
	count := 0
	for i := range shifts {
		s := &shifts[i]
		if s.IsOpen() {
			continue
		}
		if s.StartTime.Before(start) || s.StartTime.After(end) {
			continue
		}
		totalMinutes += int64(s.EndTime.Sub(s.StartTime) / time.Minute)
		count++
	}

	hours := float64(totalMinutes) / 60
	return PayrollTotals{
		Hours:    hours,
		Earnings: hours * hourlyRate,
		Count:    count,
	}
}

// RemainingToTarget returns how many hours are left against the period's
// nominal target, clamped at zero so overtime never renders negative.
func RemainingToTarget(hours float64, period Period) float64 {
	target := TargetHoursWeek
	if period == PeriodMonth {
		target = TargetHoursMonth
	}
	if remaining := target - hours; remaining > 0 {
		return remaining
	}
	return 0
}
