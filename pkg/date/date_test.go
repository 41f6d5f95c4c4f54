package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/pkg/date"
)

func TestDate_Of(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*3600)
	instant := time.Date(2026, time.March, 1, 23, 59, 0, 0, zone)

	assert.Equal(t, "2026-03-01", date.Of(instant).String())
}

func TestDate_Arithmetic(t *testing.T) {
	today := date.New(2026, time.February, 20)

	assert.Equal(t, "2026-03-20", today.AddDays(28).String())
	assert.True(t, today.Before(today.AddDays(1)))
	assert.True(t, today.After(today.AddDays(-1)))
	assert.True(t, today.Equal(date.New(2026, time.February, 20)))
	assert.False(t, today.Before(today))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Due *date.Date `json:"due"`
	}

	due := date.New(2026, time.October, 17)
	encoded, err := json.Marshal(payload{Due: &due})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2026-10-17"}`, string(encoded))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2027-01-02"}`), &decoded))
	require.NotNil(t, decoded.Due)
	assert.Equal(t, "2027-01-02", decoded.Due.String())

	var invalid payload
	assert.Error(t, json.Unmarshal([]byte(`{"due":"02/01/2027"}`), &invalid))
}

func TestDate_Scan(t *testing.T) {
	var d date.Date
	require.NoError(t, d.Scan(time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-05-04", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}
