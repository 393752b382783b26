package utils

import (
	"time"
)

// Today returns now's calendar date in the backend date layout.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DateLabel renders "Today", "Tomorrow" or a short weekday label like "Mon, Jan 2".
// Unparseable dates come back unchanged; an empty date renders "N/A".
func DateLabel(date string, now time.Time) string {
	if date == "" {
		return "N/A"
	}
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return date
	}
	switch date {
	case Today(now):
		return "Today"
	case Today(now.AddDate(0, 0, 1)):
		return "Tomorrow"
	}
	return d.Format("Mon, Jan 2")
}

// SecondsSinceMidnight returns the wall-clock time-of-day of now in seconds.
func SecondsSinceMidnight(now time.Time) int {
	return now.Hour()*3600 + now.Minute()*60 + now.Second()
}
