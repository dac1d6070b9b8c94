package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateJSONRoundTrip(t *testing.T) {
	date, err := ParseDate("2026-09-01")
	assert.NoError(t, err)

	raw, err := json.Marshal(date)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-09-01"`, string(raw))

	var parsed Date
	assert.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Equal(t, date, parsed)
}

func TestDateZeroMarshalsAsNull(t *testing.T) {
	raw, err := json.Marshal(Date{})
	assert.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("01/09/2026")
	assert.Error(t, err)

	_, err = ParseDate("2026-13-40")
	assert.Error(t, err)
}

func TestDateScanTruncatesTime(t *testing.T) {
	var date Date
	assert.NoError(t, date.Scan(time.Date(2026, 9, 1, 17, 45, 3, 0, time.UTC)))
	assert.Equal(t, "2026-09-01", date.String())
}
