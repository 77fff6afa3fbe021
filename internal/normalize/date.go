package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var bareDateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Time layouts tried in order for textual values. Zone-less layouts are
// interpreted as UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Time coerces a front-matter date value into a UTC timestamp. It accepts a
// time.Time, or text in ISO-8601 form (a trailing "Z" or "+0000" zone marker
// is normalized first); a bare YYYY-MM-DD is combined with noon UTC to keep
// the date stable across timezone rounding. Anything unparseable yields now.
// The result always carries the UTC location; Time never fails.
func Time(value any, now func() time.Time) time.Time {
	switch v := value.(type) {
	case time.Time:
		return v.UTC()
	case nil:
		return now().UTC()
	}

	s := strings.TrimSpace(fmt.Sprint(value))
	s = strings.Replace(s, "+0000", "+00:00", 1)

	if m := bareDateRe.FindStringSubmatch(s); m != nil {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return NoonUTC(t)
		}
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}

	return now().UTC()
}

// NoonUTC returns the given day at 12:00:00 UTC.
func NoonUTC(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
}
