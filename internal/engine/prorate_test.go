package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProrate(t *testing.T) {
	cases := []struct {
		name    string
		checkIn time.Time
		rate    float64
		want    float64
	}{
		{"first day is the full rate", date(2024, time.January, 1), 3100, 3100},
		{"mid January", date(2024, time.January, 15), 3100, 1700.00},
		{"leap February", date(2024, time.February, 15), 2900, 1500.00},
		{"non-leap February", date(2023, time.February, 15), 2800, 1400.00},
		{"30-day month", date(2024, time.April, 16), 3000, 1500.00},
		{"last day of month", date(2024, time.January, 31), 3100, 100.00},
		{"zero rate", date(2024, time.January, 15), 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Prorate(tc.checkIn, tc.rate)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProrateRoundsToTwoDecimals(t *testing.T) {
	// 22 of 31 days at 5000: 5000/31*22 = 3548.387...
	got, err := Prorate(date(2024, time.January, 10), 5000)
	require.NoError(t, err)
	assert.InDelta(t, 3548.39, got, 0.001)
}

func TestProrateNegativeRate(t *testing.T) {
	_, err := Prorate(date(2024, time.January, 15), -100)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
