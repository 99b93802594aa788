package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2025, 10, 6, 0, 0, 0, 0, time.UTC)

func TestNewMenuRecordNormalizesFields(t *testing.T) {
	rec, err := NewMenuRecord("menu.jpg", monday, "LUNDI", 6, "Betterave", "", "", "Yaourt")
	require.NoError(t, err)

	assert.Equal(t, "Lundi", rec.DayOfWeek, "weekday is canonicalized")
	assert.Equal(t, "Betterave", rec.Entree)
	assert.Equal(t, "-", rec.Plats, "empty content becomes the placeholder")
	assert.Equal(t, "-", rec.Accompagnement)
	assert.Equal(t, "2025-10-06", rec.DateISO())
}

func TestNewMenuRecordRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		date     time.Time
		weekday  string
		dayNum   int
	}{
		{"missing filename", "", monday, "Lundi", 6},
		{"zero date", "menu.jpg", time.Time{}, "Lundi", 6},
		{"weekend day", "menu.jpg", monday, "Samedi", 6},
		{"unknown weekday", "menu.jpg", monday, "Funday", 6},
		{"day number zero", "menu.jpg", monday, "Lundi", 0},
		{"day number 32", "menu.jpg", monday, "Lundi", 32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMenuRecord(tc.filename, tc.date, tc.weekday, tc.dayNum, "a", "b", "c", "d")
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalRevalidates(t *testing.T) {
	rec, err := NewMenuRecord("menu.jpg", monday, "Lundi", 6, "Betterave", "Steak", "Riz", "Yaourt")
	require.NoError(t, err)

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2025-10-06"`)

	var back MenuRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec, back)

	// Records that never could have been constructed are rejected on read.
	bad := []byte(`{"filename":"menu.jpg","date":"2025-10-06","day_of_week":"Samedi","day_number":6,"entree":"a","plats":"b","accompagnement":"c","dessert":"d"}`)
	assert.Error(t, json.Unmarshal(bad, &back))

	malformed := []byte(`{"filename":"menu.jpg","date":"06/10/2025","day_of_week":"Lundi","day_number":6,"entree":"a","plats":"b","accompagnement":"c","dessert":"d"}`)
	assert.Error(t, json.Unmarshal(malformed, &back), "only ISO dates are accepted")
}
