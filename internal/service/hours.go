package service

import (
	"time"

	"eventplanner/internal/model"
)

// IsOpen reports whether any opening period covers the requested weekday
// and "HHMM" time.
//
// A period is a half-open interval [open, close). Same-day periods cover
// [open_time, close_time) on open_day. Overnight periods (close day
// differs from open day) split into [open_time, 2400) on open_day and
// [0000, close_time) on close_day. A period with no close time means the
// venue never closes.
//
// Times are fixed-width "HHMM" strings, so lexicographic comparison is
// chronological comparison.
func IsOpen(periods []model.OpeningPeriod, day time.Weekday, hhmm string) bool {
	for _, p := range periods {
		if p.Close.Time == "" {
			return true
		}
		if p.Open.Day == p.Close.Day {
			if day == p.Open.Day && hhmm >= p.Open.Time && hhmm < p.Close.Time {
				return true
			}
			continue
		}
		if day == p.Open.Day && hhmm >= p.Open.Time {
			return true
		}
		if day == p.Close.Day && hhmm < p.Close.Time {
			return true
		}
	}
	return false
}
