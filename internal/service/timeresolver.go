package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"eventplanner/internal/model"
)

// UnparsableTimeError is returned when an event-time expression matches
// neither the natural-language rules nor any explicit format. The caller
// re-prompts the user with formatting guidance.
type UnparsableTimeError struct {
	Expression string
}

func (e *UnparsableTimeError) Error() string {
	return fmt.Sprintf("could not parse time expression %q", e.Expression)
}

// explicitFormats are tried in order after the fuzzy parse fails.
// Date-only formats default the time to start of day.
var explicitFormats = []string{
	"02-01-2006 15:04",
	"02-01-2006 1504",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02-01-2006",
	"2006-01-02",
}

// timeOfDay normalizes qualitative terms to a clock time. Ordered so
// that longer terms win over their substrings ("midnight" before
// "night", "afternoon" before "noon").
var timeOfDay = []struct {
	term string
	hhmm string
}{
	{"midnight", "0000"},
	{"afternoon", "1600"},
	{"morning", "0900"},
	{"evening", "1800"},
	{"night", "2000"},
	{"noon", "1200"},
}

// TimeResolver parses free-form date/time expressions into a weekday
// plus "HHMM" pair, resolving relative phrases against a reference now.
type TimeResolver struct {
	parser *when.Parser
}

// NewTimeResolver creates a resolver with the English and common
// natural-language rules.
func NewTimeResolver() *TimeResolver {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &TimeResolver{parser: w}
}

// Resolve parses expr against now.
//
// Precedence: a natural-language match that consumes the whole
// expression wins; otherwise the explicit formats are tried in order;
// a partial natural-language match is the last resort. Anything else
// fails with *UnparsableTimeError carrying the original expression.
func (r *TimeResolver) Resolve(expr string, now time.Time) (model.TimeResolution, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return model.TimeResolution{}, &UnparsableTimeError{Expression: expr}
	}

	fuzzy, err := r.parser.Parse(trimmed, now)
	if err != nil {
		fuzzy = nil
	}

	if fuzzy != nil && len(fuzzy.Text) == len(trimmed) {
		return r.resolution(trimmed, fuzzy.Time), nil
	}

	for _, layout := range explicitFormats {
		if t, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return r.resolution(trimmed, t), nil
		}
	}

	if fuzzy != nil {
		return r.resolution(trimmed, fuzzy.Time), nil
	}

	return model.TimeResolution{}, &UnparsableTimeError{Expression: expr}
}

// resolution builds the final pair, applying the qualitative
// time-of-day table when the expression names one and gives no explicit
// clock time.
func (r *TimeResolver) resolution(expr string, t time.Time) model.TimeResolution {
	res := model.TimeResolution{
		Weekday: t.Weekday(),
		Time:    t.Format("1504"),
	}
	if hasClockTime(expr) {
		return res
	}
	lower := strings.ToLower(expr)
	for _, entry := range timeOfDay {
		if strings.Contains(lower, entry.term) {
			res.Time = entry.hhmm
			break
		}
	}
	return res
}

// hasClockTime reports whether the expression contains an explicit
// HH:MM clock time.
func hasClockTime(expr string) bool {
	for i := 1; i+1 < len(expr); i++ {
		if expr[i] == ':' && isDigit(expr[i-1]) && isDigit(expr[i+1]) {
			return true
		}
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
