package punch

import "math"

// Statistics summarizes a set of punch rows. PresencePercentage is nil when
// there is nothing to divide by; an empty range is an answer, not an error.
type Statistics struct {
	TotalUsers         int      `json:"total_users"`
	Presents           int      `json:"presents"`
	Absents            int      `json:"absents"`
	Lates              int      `json:"lates"`
	PresencePercentage *float64 `json:"presence_percentage"`
}

// BuildStatistics derives the summary from the counters. Late is counted
// independently of presence: a user can be both present and late.
func BuildStatistics(total, presents, absents, lates int) Statistics {
	stats := Statistics{
		TotalUsers: total,
		Presents:   presents,
		Absents:    absents,
		Lates:      lates,
	}

	if total > 0 {
		percentage := math.Round(float64(presents)/float64(total)*100*100) / 100
		stats.PresencePercentage = &percentage
	}

	return stats
}
