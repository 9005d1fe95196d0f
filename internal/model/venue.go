package model

import "time"

// TimeResolution is a resolved event time: a weekday plus a 24h clock
// time as a fixed-width "HHMM" string.
//
// Weekday numbering follows time.Weekday (0=Sunday), which is also the
// day numbering of Places opening periods, so resolver output and period
// encoding agree end-to-end.
type TimeResolution struct {
	Weekday time.Weekday `json:"weekday"`
	Time    string       `json:"time"`
}

// DayTime is one endpoint of an opening period.
type DayTime struct {
	Day  time.Weekday `json:"day"`
	Time string       `json:"time"` // "HHMM"
}

// OpeningPeriod is one open/close interval of a venue. When Close.Time is
// empty the venue is treated as always open (the Places encoding for
// 24/7 venues).
type OpeningPeriod struct {
	Open  DayTime `json:"open"`
	Close DayTime `json:"close,omitempty"`
}

// Venue is a candidate venue returned by the places provider and
// enriched in place by the filter pipeline for the duration of one
// search. Venues are never persisted.
type Venue struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Latitude       float64         `json:"latitude"`
	Longitude      float64         `json:"longitude"`
	Address        string          `json:"address,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	PriceTier      *int            `json:"price_tier,omitempty"`
	OpeningPeriods []OpeningPeriod `json:"opening_periods,omitempty"`
	Reviews        []string        `json:"-"`

	// Pipeline enrichment.
	DietaryTags    map[string]int `json:"dietary_tags,omitempty"`
	RequestMatches int            `json:"request_matches,omitempty"`
	RelevanceScore int            `json:"relevance_score,omitempty"`
}
