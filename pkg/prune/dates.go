package prune

import (
	"fmt"
	"strings"
	"time"
)

// indexDateLayout matches the dot-delimited date suffix convention used by
// daily log indices, e.g. "filebeat-2023.11.01".
const indexDateLayout = "2006.01.02"

// DateParseError indicates that an index name's trailing segment is not a
// valid calendar date. Such indices are skipped, never deleted.
type DateParseError struct {
	// Index is the full index name.
	Index string

	// Segment is the extracted trailing segment that failed to parse.
	Segment string

	// Err is the underlying parse error, if any.
	Err error
}

// Error implements the error interface.
func (e *DateParseError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("index %q has no date segment", e.Index)
	}
	return fmt.Sprintf("index %q: segment %q is not a valid date", e.Index, e.Segment)
}

// Unwrap returns the underlying error for error chain support.
func (e *DateParseError) Unwrap() error {
	return e.Err
}

// ParseIndexDate extracts the segment after the last "-" in an index name
// and parses it as a YYYY.MM.DD calendar date. The returned time is midnight
// UTC of that date. A name without a separator or with a non-date trailing
// segment yields a *DateParseError.
func ParseIndexDate(name string) (time.Time, error) {
	sep := strings.LastIndex(name, "-")
	if sep < 0 || sep == len(name)-1 {
		return time.Time{}, &DateParseError{Index: name}
	}

	segment := name[sep+1:]
	date, err := time.Parse(indexDateLayout, segment)
	if err != nil {
		return time.Time{}, &DateParseError{Index: name, Segment: segment, Err: err}
	}

	return date, nil
}

// CutoffDate returns the retention cutoff for a run started at now: the
// calendar date keepDays days before now's date, as midnight UTC so it
// compares directly against ParseIndexDate results. Indices dated strictly
// before the cutoff are deletion candidates; indices dated on or after it
// are retained.
func CutoffDate(now time.Time, keepDays int) time.Time {
	year, month, day := now.Date()
	today := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -keepDays)
}
