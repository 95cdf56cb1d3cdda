// Package apitime handles the timestamp formats produced by the portal API.
// The API emits naive ISO-8601 values (no zone offset) which encoding/json
// rejects for time.Time; they are interpreted as UTC.
package apitime

import (
	"bytes"
	"errors"
	"strings"
	"time"
)

var ErrInvalidTime = errors.New("invalid timestamp")

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type Time struct {
	time.Time
}

func New(t time.Time) Time {
	return Time{Time: t}
}

func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Time{}, ErrInvalidTime
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return Time{Time: t.UTC()}, nil
		}
	}
	return Time{}, ErrInvalidTime
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Time{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		*t = Time{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339) + `"`), nil
}

// Display formats the time for cards and tables; zero values render empty.
func (t Time) Display() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02 Jan 2006")
}

// DateValue is the value an <input type="date"> expects.
func (t Time) DateValue() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
