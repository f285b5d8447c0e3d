package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the storage format of every timestamp. It is fixed
// width and always UTC, so comparing two stored values as strings orders
// them chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

const dateLayout = "2006-01-02"

// Timestamp is a point in time stored with millisecond precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp converts t to UTC and truncates it to milliseconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// NewTimestampPtr is NewTimestamp for optional fields.
func NewTimestampPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts TimestampLayout, any RFC 3339 value or a bare date.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewTimestamp(t), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return NewTimestamp(t), nil
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) String() string {
	return FormatTimestamp(t.Time)
}

// MarshalJSON writes the zero Timestamp as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// Forms submit empty dates as "".
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
