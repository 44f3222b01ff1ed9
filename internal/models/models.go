// Package models defines the core data types for the notes system.
package models

import "time"

// TimestampLayout is the fixed local date-time format used for note
// timestamps and for date-range filter bounds.
const TimestampLayout = "2006-01-02 15:04:05"

// Note is a single persisted record. The JSON field names are the on-disk
// format of the backing file.
type Note struct {
	ID        int    `json:"note_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// FormatTimestamp renders t in TimestampLayout, in t's own location.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses s in TimestampLayout. No fallback layouts are tried.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// InRange reports whether the note's timestamp falls within [start, end],
// inclusive on both ends.
func (n Note) InRange(start, end time.Time) (bool, error) {
	ts, err := ParseTimestamp(n.Timestamp)
	if err != nil {
		return false, err
	}
	return !ts.Before(start) && !ts.After(end), nil
}
