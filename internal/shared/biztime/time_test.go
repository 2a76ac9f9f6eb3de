package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodOf(t *testing.T) {
	MustInit("UTC")

	instant := time.Date(2025, 11, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-11", PeriodOf(instant))

	firstSecond := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-11", PeriodOf(firstSecond))

	lastSecond := time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2025-11", PeriodOf(lastSecond))
}

func TestParsePeriod(t *testing.T) {
	MustInit("UTC")

	year, month, err := ParsePeriod("2025-11")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, time.November, month)

	_, _, err = ParsePeriod("2025/11")
	assert.Error(t, err)

	_, _, err = ParsePeriod("november")
	assert.Error(t, err)
}

func TestPeriodBoundsUTC(t *testing.T) {
	MustInit("UTC")

	start, end, err := PeriodBoundsUTC("2025-11")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls into January of the next year.
	start, end, err = PeriodBoundsUTC("2025-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)

	_, _, err = PeriodBoundsUTC("bad")
	assert.Error(t, err)
}
