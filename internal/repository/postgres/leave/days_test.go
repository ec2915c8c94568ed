package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkdays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []time.Time
	}{
		{
			name:  "full week keeps monday to friday",
			start: day(2026, time.March, 2),
			end:   day(2026, time.March, 8),
			want: []time.Time{
				day(2026, time.March, 2),
				day(2026, time.March, 3),
				day(2026, time.March, 4),
				day(2026, time.March, 5),
				day(2026, time.March, 6),
			},
		},
		{
			name:  "single weekday",
			start: day(2026, time.March, 4),
			end:   day(2026, time.March, 4),
			want:  []time.Time{day(2026, time.March, 4)},
		},
		{
			name:  "weekend only yields nothing",
			start: day(2026, time.March, 7),
			end:   day(2026, time.March, 8),
			want:  nil,
		},
		{
			name:  "interval spanning two weeks skips the weekend",
			start: day(2026, time.March, 6),
			end:   day(2026, time.March, 10),
			want: []time.Time{
				day(2026, time.March, 6),
				day(2026, time.March, 9),
				day(2026, time.March, 10),
			},
		},
		{
			name:  "end before start yields nothing",
			start: day(2026, time.March, 10),
			end:   day(2026, time.March, 9),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Workdays(tt.start, tt.end)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWorkdaysNormalizesTime(t *testing.T) {
	start := time.Date(2026, time.March, 2, 23, 59, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 3, 0, 1, 0, 0, time.UTC)

	got := Workdays(start, end)

	require.Len(t, got, 2)
	assert.Equal(t, day(2026, time.March, 2), got[0])
	assert.Equal(t, day(2026, time.March, 3), got[1])
}
