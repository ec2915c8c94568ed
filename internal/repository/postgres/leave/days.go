package leave

import "time"

// Synthetic punch hours for leave days.
const (
	syntheticArrivalHour   = 8
	syntheticDepartureHour = 17
)

// Workdays returns every weekday (Monday to Friday) in [start, end],
// inclusive on both ends. Weekends are never synthesized.
func Workdays(start, end time.Time) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	var days []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		switch day.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		}
		days = append(days, day)
	}

	return days
}
