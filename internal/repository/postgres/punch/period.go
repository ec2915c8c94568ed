package punch

import (
	"net/http"
	"time"

	"pointage/backend/foundation/web"

	"github.com/pkg/errors"
)

const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// PeriodRange expands a reference day into an inclusive [start, end] range:
// the day itself, its ISO week (Monday to Sunday) or its calendar month.
func PeriodRange(day time.Time, period string) (time.Time, time.Time, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	switch period {
	case PeriodDay:
		return day, day, nil
	case PeriodWeek:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday closes the ISO week
		}
		start := day.AddDate(0, 0, 1-weekday)
		return start, start.AddDate(0, 0, 6), nil
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, -1), nil
	}

	return time.Time{}, time.Time{}, web.NewRequestError(errors.Errorf("period must be %s, %s or %s", PeriodDay, PeriodWeek, PeriodMonth), http.StatusBadRequest)
}
