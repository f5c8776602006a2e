package timedataset

import (
	"time"

	"github.com/rickar/cal/v2"
)

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// IsMonthly reports whether every point falls one calendar month after the previous point.
// A step matches when it lands on the same clamped day as the previous point, on the day of
// the first point, or on the month end when the previous point was a month end. Slices
// shorter than 2 are trivially monthly.
func (t TimeSlice) IsMonthly() bool {
	for i := 1; i < len(t); i++ {
		if t[i].Equal(AddMonths(t[0], i)) || isNextMonth(t[i-1], t[i]) {
			continue
		}
		return false
	}
	return true
}

func isNextMonth(prev, curr time.Time) bool {
	next := AddMonths(prev, 1)
	if curr.Equal(next) {
		return true
	}
	if !isMonthEnd(prev) {
		return false
	}
	end := time.Date(next.Year(), next.Month(), cal.MonthEnd(next).Day(),
		prev.Hour(), prev.Minute(), prev.Second(), prev.Nanosecond(), prev.Location())
	return curr.Equal(end)
}

func isMonthEnd(t time.Time) bool {
	return t.Day() == cal.MonthEnd(t).Day()
}

// AddMonths shifts t by n calendar months keeping the time of day. If the day of month does
// not exist in the target month it is clamped to the last day of that month, so the 31st of
// January plus one month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	first := time.Date(year, month+time.Month(n), 1, hour, minute, sec, t.Nanosecond(), t.Location())

	lastDay := cal.MonthEnd(first).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
