package ingest

import (
	"errors"
	"time"
)

// TimestampFormat is the canonical format used when serializing timestamps
// back to CSV. It is also one of the accepted input layouts, so exported
// files reload cleanly.
const TimestampFormat = "2006-01-02 15:04:05"

// Layouts tried in order when parsing Created/Resolved cells. Source exports
// vary between space-separated and ISO-8601 styles, with and without
// seconds.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	TimestampFormat,
	"2006-01-02 15:04",
	"2006-01-02",
}

var errUnparseableTimestamp = errors.New("unparseable timestamp")

// ParseTimestamp parses a timestamp cell using the tolerant layout list.
// Layouts without an explicit offset are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errUnparseableTimestamp
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, errUnparseableTimestamp
}
