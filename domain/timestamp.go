package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are tried in order. The backend emits naive UTC datetimes
// ("2026-02-11T12:00:00.123456") as well as RFC3339 values.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses a backend timestamp. Values without a zone are UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Timestamp is a time.Time that accepts the backend's naive datetime format.
// Values it cannot parse leave the zero time and are kept verbatim for re-encoding.
type Timestamp struct {
	time.Time
	raw string
}

// UnmarshalJSON implements json.Unmarshaler. null leaves the zero value; it never fails.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	*t = Timestamp{}
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.raw = string(b)
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		t.raw = string(b)
		return nil
	}
	t.Time = parsed
	return nil
}

// Raw returns the undecodable JSON value, "" when the timestamp parsed or was null.
func (t Timestamp) Raw() string {
	return t.raw
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		if t.raw != "" {
			return []byte(t.raw), nil
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
