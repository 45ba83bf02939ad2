package halx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are the date formats the API emits, most specific first.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("halx: unrecognised timestamp %q", s)
}

// Time is a timestamp field on an API entity. It decodes from the API's date
// strings, normalises to UTC, and treats null as the zero value. A present
// value that is not a timestamp string is a hard decode error.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time, normalised to UTC.
func NewTime(t time.Time) Time {
	return Time{Time: t.UTC()}
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("halx: timestamp is expected to be a string: %w", err)
	}

	parsed, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}
