// Package timestamp formats and parses the ISO-8601 strings stored on
// directory records.
//
// Records keep timestamps as opaque strings. Values written by the server
// always use Layout in UTC so that they sort lexicographically in
// chronological order. Values supplied by clients are stored verbatim and
// may not parse at all; callers must treat a parse failure as "skip".
package timestamp

import (
	"errors"
	"strings"
	"time"
)

// Layout always writes six fraction digits. Older records omit the
// fraction when it is zero, so stored values differ in length; a value
// without a fraction still compares correctly against a Layout cutoff.
const Layout = "2006-01-02T15:04:05.000000"

// ErrUnparsable is returned by Parse for values in no accepted form.
var ErrUnparsable = errors.New("timestamp: unparsable value")

// Format renders t in UTC using Layout.
func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Now returns the current time formatted with Format.
func Now() string {
	return Format(time.Now())
}

// accepted lists the layouts Parse tries, most specific first. Offsets are
// kept on the parsed value; a value without an offset parses as UTC.
var accepted = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"2006-01-02",
}

// Parse reads an ISO-8601 timestamp. It accepts a trailing "Z" or a
// numeric offset, an optional fractional second, and either "T" or a
// single space between date and time.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return time.Time{}, ErrUnparsable
	}
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range accepted {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparsable
}

// SameMonth reports whether t falls in the same calendar month and year as
// ref. Each value is read in its own location, so a stored offset is not
// converted before comparison.
func SameMonth(t, ref time.Time) bool {
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}
