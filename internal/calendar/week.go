package calendar

import (
	"fmt"
	"time"

	"campervan/internal/entities"
)

// WeekStart returns midnight UTC of the Monday of t's week. Sunday
// belongs to the week that started six days earlier.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := 1 - int(day.Weekday())
	if day.Weekday() == time.Sunday {
		offset = -6
	}
	return day.AddDate(0, 0, offset)
}

// WeekDays returns the seven days starting at start.
func WeekDays(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// WeekEnd returns the last day of the week beginning at start.
func WeekEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, 6)
}

// WeekLabel renders the week range, e.g. "Aug 18-24, 2025" or
// "Jul 28 - Aug 3, 2025". The year is the one of the first day.
func WeekLabel(start time.Time) string {
	end := WeekEnd(start)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s %d-%d, %d", start.Format("Jan"), start.Day(), end.Day(), start.Year())
	}
	return fmt.Sprintf("%s %d - %s %d, %d", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day(), start.Year())
}

func IsToday(day, now time.Time) bool {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateKey formats a day the way booking dates are stored.
func DateKey(day time.Time) string {
	return day.Format(entities.DateLayout)
}
