package normalize

import (
	"strings"
	"time"
)

// dateLayouts is tried in order. Statement parsers that know their true
// format pre-resolve day/month/year into one of these before calling.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999Z",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
}

// ParseDate converts a date string into a UTC instant. Unrecognized input
// falls back to the current time rather than failing; use ParseDateOK when
// the substitution needs to be observed.
func ParseDate(raw string) time.Time {
	t, _ := ParseDateOK(raw)
	return t
}

// ParseDateOK is ParseDate plus a flag reporting whether the input actually
// parsed.
func ParseDateOK(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Now().UTC(), false
}
