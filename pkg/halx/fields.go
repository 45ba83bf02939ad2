package halx

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FieldError reports a field whose value was present but of the wrong type.
// Wrong types are hard errors rather than silent defaults.
type FieldError struct {
	Key  string
	Want string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("halx: field %q is expected to be %s", e.Key, e.Want)
}

// Fields coerces raw envelope values (a decoded JSON object) into typed
// fields. All accessors return nil when the key is absent or null; timestamp
// and date accessors normalise to UTC.
type Fields map[string]any

// String returns the field as a string. Numbers are rendered into their
// string form; anything else non-string is an error.
func (f Fields) String(key string) (*string, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}

	switch t := v.(type) {
	case string:
		return &t, nil
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		return &s, nil
	default:
		return nil, &FieldError{Key: key, Want: "a string"}
	}
}

// Int returns the field as an integer. Present non-numeric or fractional
// values are errors.
func (f Fields) Int(key string) (*int64, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}

	n, ok := v.(float64)
	if !ok || n != math.Trunc(n) {
		return nil, &FieldError{Key: key, Want: "an integer"}
	}
	i := int64(n)
	return &i, nil
}

// Float returns the field as a number. Present non-numeric values are errors.
func (f Fields) Float(key string) (*float64, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}

	n, ok := v.(float64)
	if !ok {
		return nil, &FieldError{Key: key, Want: "a number"}
	}
	return &n, nil
}

// Bool returns the field as a boolean. Present non-boolean values are errors.
func (f Fields) Bool(key string) (*bool, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}

	b, ok := v.(bool)
	if !ok {
		return nil, &FieldError{Key: key, Want: "a boolean"}
	}
	return &b, nil
}

// Time returns the field parsed as a UTC timestamp. An already-parsed
// time.Time passes through (normalised to UTC); strings are parsed with the
// API's accepted layouts; anything else present is an error.
func (f Fields) Time(key string) (*time.Time, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}

	switch t := v.(type) {
	case time.Time:
		u := t.UTC()
		return &u, nil
	case string:
		parsed, err := parseTimestamp(t)
		if err != nil {
			return nil, &FieldError{Key: key, Want: "a timestamp string"}
		}
		return &parsed, nil
	default:
		return nil, &FieldError{Key: key, Want: "a timestamp string"}
	}
}
