package core

import "time"

const (
	seriesWindowHours = 24
	dailyWindowDays   = 30
)

// SeriesWindow returns the trailing 24-hour window ending at the anchor.
// The anchor is captured once per fetch cycle so all of a cycle's
// parameters agree on "now".
func SeriesWindow(anchor time.Time) (from, to time.Time) {
	return anchor.Add(-seriesWindowHours * time.Hour), anchor
}

// DailyWindow returns the inclusive 30-day calendar window ending on the
// anchor's day, as YYYY-MM-DD strings. The result depends only on the
// anchor's date, never its time of day.
func DailyWindow(anchor time.Time) (from, to string) {
	to = anchor.Format(time.DateOnly)
	from = anchor.AddDate(0, 0, -(dailyWindowDays - 1)).Format(time.DateOnly)
	return from, to
}
