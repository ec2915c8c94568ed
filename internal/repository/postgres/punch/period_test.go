package punch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodRange(t *testing.T) {
	tests := []struct {
		name      string
		day       time.Time
		period    string
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "single day",
			day:       day(2026, time.March, 4),
			period:    PeriodDay,
			wantStart: day(2026, time.March, 4),
			wantEnd:   day(2026, time.March, 4),
		},
		{
			name:      "week from a wednesday",
			day:       day(2026, time.March, 4),
			period:    PeriodWeek,
			wantStart: day(2026, time.March, 2),
			wantEnd:   day(2026, time.March, 8),
		},
		{
			name:      "week from a monday",
			day:       day(2026, time.March, 2),
			period:    PeriodWeek,
			wantStart: day(2026, time.March, 2),
			wantEnd:   day(2026, time.March, 8),
		},
		{
			name:      "sunday belongs to the closing week",
			day:       day(2026, time.March, 8),
			period:    PeriodWeek,
			wantStart: day(2026, time.March, 2),
			wantEnd:   day(2026, time.March, 8),
		},
		{
			name:      "month",
			day:       day(2026, time.February, 15),
			period:    PeriodMonth,
			wantStart: day(2026, time.February, 1),
			wantEnd:   day(2026, time.February, 28),
		},
		{
			name:      "leap month",
			day:       day(2028, time.February, 10),
			period:    PeriodMonth,
			wantStart: day(2028, time.February, 1),
			wantEnd:   day(2028, time.February, 29),
		},
		{
			name:    "unknown period",
			day:     day(2026, time.March, 4),
			period:  "quarter",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := PeriodRange(tt.day, tt.period)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestPeriodRangeNormalizesTime(t *testing.T) {
	noon := time.Date(2026, time.March, 4, 12, 30, 45, 0, time.UTC)

	start, end, err := PeriodRange(noon, PeriodDay)

	require.NoError(t, err)
	assert.Equal(t, day(2026, time.March, 4), start)
	assert.Equal(t, day(2026, time.March, 4), end)
}
