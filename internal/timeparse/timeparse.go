// Package timeparse converts user-entered time constraints into timestamps.
//
// Users can give either an absolute time ("2020-03-04", "10:13") or a
// relative one ("3" for three hours, "2 weeks ago", "30 min"). Every parse
// also yields the display form echoed back to the user, and a pair of
// constraints folds into a single timeframe label such as
// "from 2 weeks ago until now".
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// unit is one supported relative-time unit.
type unit struct {
	name     string
	duration time.Duration
}

var units = map[string]unit{
	"s":       {"second", time.Second},
	"sec":     {"second", time.Second},
	"secs":    {"second", time.Second},
	"second":  {"second", time.Second},
	"seconds": {"second", time.Second},
	"min":     {"minute", time.Minute},
	"mins":    {"minute", time.Minute},
	"minute":  {"minute", time.Minute},
	"minutes": {"minute", time.Minute},
	"h":       {"hour", time.Hour},
	"hour":    {"hour", time.Hour},
	"hours":   {"hour", time.Hour},
	"d":       {"day", 24 * time.Hour},
	"day":     {"day", 24 * time.Hour},
	"days":    {"day", 24 * time.Hour},
	"w":       {"week", 7 * 24 * time.Hour},
	"week":    {"week", 7 * 24 * time.Hour},
	"weeks":   {"week", 7 * 24 * time.Hour},
	"month":   {"month", 30 * 24 * time.Hour},
	"months":  {"month", 30 * 24 * time.Hour},
	"y":       {"year", 365 * 24 * time.Hour},
	"year":    {"year", 365 * 24 * time.Hour},
	"years":   {"year", 365 * 24 * time.Hour},
}

// absoluteLayouts are tried in order. Layouts with a date component parse
// as-is; time-only layouts resolve against today's date.
var absoluteLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

// TryParseTime parses an absolute or relative time string. It returns the
// parsed time (UTC) and the display form shown back to the user.
func TryParseTime(input string, now time.Time) (time.Time, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return time.Time{}, "", fmt.Errorf("empty time string")
	}

	for _, layout := range absoluteLayouts {
		parsed, err := time.ParseInLocation(layout, trimmed, time.UTC)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			parsed = time.Date(now.Year(), now.Month(), now.Day(),
				parsed.Hour(), parsed.Minute(), parsed.Second(), 0, time.UTC)
		}
		return parsed, formatAbsolute(parsed, now), nil
	}

	amount, u, err := parseRelative(trimmed)
	if err != nil {
		return time.Time{}, "", err
	}
	delta := time.Duration(amount * float64(u.duration))
	return now.Add(-delta), formatRelative(amount, u), nil
}

// ParseConstraints parses the optional after/before bounds of a search and
// builds the timeframe label, e.g. "from 2020-01-08 until now". The inputs
// "", "none", "start" and "end" leave a bound open.
func ParseConstraints(afterStr, beforeStr string, now time.Time) (after, before *time.Time, label string, err error) {
	afterLabel := "the start"
	if !isOpenBound(afterStr) {
		parsed, display, err := TryParseTime(afterStr, now)
		if err != nil {
			return nil, nil, "", fmt.Errorf("invalid 'after' time %q: %w", afterStr, err)
		}
		after = &parsed
		afterLabel = display
	}

	beforeLabel := "now"
	if !isOpenBound(beforeStr) {
		parsed, display, err := TryParseTime(beforeStr, now)
		if err != nil {
			return nil, nil, "", fmt.Errorf("invalid 'before' time %q: %w", beforeStr, err)
		}
		before = &parsed
		beforeLabel = display
	}

	return after, before, fmt.Sprintf("from %s until %s", afterLabel, beforeLabel), nil
}

func isOpenBound(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "start", "end":
		return true
	}
	return false
}

// parseRelative parses strings like "3", "3.2 hours" or "2 weeks ago".
// A bare number means hours.
func parseRelative(s string) (float64, unit, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) > 0 && fields[len(fields)-1] == "ago" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) == 0 || len(fields) > 2 {
		return 0, unit{}, fmt.Errorf("unrecognized time %q", s)
	}

	amount, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, unit{}, fmt.Errorf("unrecognized time %q", s)
	}

	u := units["hours"]
	if len(fields) == 2 {
		var ok bool
		u, ok = units[fields[1]]
		if !ok {
			return 0, unit{}, fmt.Errorf("unrecognized time unit %q", fields[1])
		}
	}
	return amount, u, nil
}

// formatRelative renders "3.2 hours ago", using the singular unit for an
// amount of exactly one and trimming trailing zeros.
func formatRelative(amount float64, u unit) string {
	name := u.name
	if amount != 1 {
		name += "s"
	}
	return fmt.Sprintf("%s %s ago", strconv.FormatFloat(amount, 'f', -1, 64), name)
}

// formatAbsolute renders a timestamp as compactly as possible: seconds and
// minutes are dropped when zero and the date is dropped when it is today.
func formatAbsolute(t, now time.Time) string {
	var timePart string
	switch {
	case t.Second() != 0:
		timePart = t.Format("15:04:05")
	case t.Hour() != 0 || t.Minute() != 0:
		timePart = t.Format("15:04")
	}

	sameDay := t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day()
	if sameDay && timePart != "" {
		return timePart
	}
	if timePart == "" {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02") + " " + timePart
}
