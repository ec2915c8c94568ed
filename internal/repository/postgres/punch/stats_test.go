package punch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStatistics(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		presents int
		absents  int
		lates    int
		want     *float64
	}{
		{
			name:  "zero users yields no percentage",
			total: 0,
			want:  nil,
		},
		{
			name:     "full presence",
			total:    10,
			presents: 10,
			want:     ptr(100.0),
		},
		{
			name:     "rounding to two decimals",
			total:    3,
			presents: 1,
			absents:  2,
			want:     ptr(33.33),
		},
		{
			name:    "all absent",
			total:   4,
			absents: 4,
			want:    ptr(0.0),
		},
		{
			name:     "two thirds",
			total:    3,
			presents: 2,
			absents:  1,
			lates:    1,
			want:     ptr(66.67),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := BuildStatistics(tt.total, tt.presents, tt.absents, tt.lates)

			assert.Equal(t, tt.total, stats.TotalUsers)
			assert.Equal(t, tt.presents, stats.Presents)
			assert.Equal(t, tt.absents, stats.Absents)
			assert.Equal(t, tt.lates, stats.Lates)

			if tt.want == nil {
				assert.Nil(t, stats.PresencePercentage)
				return
			}
			require.NotNil(t, stats.PresencePercentage)
			assert.InDelta(t, *tt.want, *stats.PresencePercentage, 0.001)
		})
	}
}

func ptr(f float64) *float64 { return &f }
