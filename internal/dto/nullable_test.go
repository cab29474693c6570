package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNullableStringDistinguishesAbsentFromNull(t *testing.T) {
	var payload struct {
		ImageURL NullableString `json:"image_url"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	require.False(t, payload.ImageURL.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"image_url": null}`), &payload))
	require.True(t, payload.ImageURL.Set)
	require.False(t, payload.ImageURL.Valid)
	require.Nil(t, payload.ImageURL.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`{"image_url": "https://example.com/a.jpg"}`), &payload))
	require.True(t, payload.ImageURL.Valid)
	require.Equal(t, "https://example.com/a.jpg", *payload.ImageURL.Ptr())
}

func TestFlexibleTimeCoercion(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-01-15"`:                time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		`"2024-01-15T10:30:00Z"`:      time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
		`"2024-01-15T12:30:00+02:00"`: time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
		`"2024-01-15T10:30:00"`:       time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
		`1705314600000`:               time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC),
	}

	for raw, expected := range cases {
		var value FlexibleTime
		require.NoError(t, json.Unmarshal([]byte(raw), &value), raw)
		require.True(t, expected.Equal(value.Time), raw)
	}

	var invalid FlexibleTime
	require.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &invalid))
}
