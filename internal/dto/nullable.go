package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var jsonNull = []byte("null")

// NullableString keeps track of whether a JSON field was sent at all and,
// when sent, whether it carried null or a string.
type NullableString struct {
	Set   bool
	Valid bool
	Value string
}

// NewNullableString returns a present, non-null value.
func NewNullableString(value string) NullableString {
	return NullableString{Set: true, Valid: true, Value: value}
}

// NullString returns a present, explicit null.
func NullString() NullableString {
	return NullableString{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.Valid = false
		n.Value = ""
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Valid = true
	n.Value = value
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// Ptr converts the value into the nullable column representation.
func (n NullableString) Ptr() *string {
	if !n.Valid {
		return nil
	}
	value := n.Value
	return &value
}

// dateLayouts lists the accepted textual forms for a coercible date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexibleTime accepts RFC3339 timestamps, zone-less timestamps, plain dates
// and epoch milliseconds.
type FlexibleTime struct {
	time.Time
}

// NewFlexibleTime wraps a time value.
func NewFlexibleTime(t time.Time) FlexibleTime {
	return FlexibleTime{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexibleTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, jsonNull) {
		f.Time = time.Time{}
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] != '"' {
		millis, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return fmt.Errorf("invalid date value %s", string(trimmed))
		}
		f.Time = time.UnixMilli(int64(millis)).UTC()
		return nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	f.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexibleTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Time)
}

// ParseDate coerces a textual date into a UTC time value.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("date value is empty")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date value %q", raw)
}
