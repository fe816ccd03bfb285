package domain

import "time"

// FirstBusinessDay returns day itself when it is a weekday, otherwise the following Monday.
func FirstBusinessDay(day time.Time) time.Time {
	switch day.Weekday() {
	case time.Saturday:
		return day.AddDate(0, 0, 2)
	case time.Sunday:
		return day.AddDate(0, 0, 1)
	default:
		return day
	}
}
