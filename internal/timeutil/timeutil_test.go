package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	assert.Equal(t, 0, ToMinutes(0, 0))
	assert.Equal(t, 600, ToMinutes(10, 0))
	assert.Equal(t, 635, ToMinutes(10, 35))
	assert.Equal(t, 1439, ToMinutes(23, 59))
}

func TestFromMinutes(t *testing.T) {
	cases := []struct {
		total  int
		hour   int
		minute int
	}{
		{0, 0, 0},
		{59, 0, 59},
		{60, 1, 0},
		{635, 10, 35},
		{1439, 23, 59},
	}

	for _, tc := range cases {
		h, m := FromMinutes(tc.total)
		assert.Equal(t, tc.hour, h, "hour of %d", tc.total)
		assert.Equal(t, tc.minute, m, "minute of %d", tc.total)
	}
}

func TestToFromMinutesRoundTrip(t *testing.T) {
	for total := 0; total < MinutesPerDay; total++ {
		h, m := FromMinutes(total)
		assert.Equal(t, total, ToMinutes(h, m))
	}
}

func TestClampEndOfDay(t *testing.T) {
	assert.Equal(t, 0, ClampEndOfDay(0))
	assert.Equal(t, 1439, ClampEndOfDay(1439))
	assert.Equal(t, 1439, ClampEndOfDay(1440))
	assert.Equal(t, 1439, ClampEndOfDay(1500))
}

func TestNormalizeDate(t *testing.T) {
	d, err := NormalizeDate("2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, time.UTC, d.Location())
}

func TestNormalizeDateInvalid(t *testing.T) {
	_, err := NormalizeDate("10/03/2025")
	assert.Error(t, err)

	_, err = NormalizeDate("")
	assert.Error(t, err)
}

func TestDayOf(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	instant := time.Date(2025, 3, 10, 22, 45, 12, 0, loc) // 2025-03-11 01:45 UTC

	day := DayOf(instant)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), day)
}
