package models

import "time"

// CalendarDay truncates t to its calendar date in UTC. Availability and
// discount comparisons work on calendar dates, never on time components.
func CalendarDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func SameCalendarDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}
