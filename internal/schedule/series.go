package schedule

import (
	"time"

	"github.com/google/uuid"

	"psi-agenda-api/internal/model"
)

// SeriesLength is the total number of sessions generated for a new
// recurring appointment, including the first one.
const SeriesLength = 12

// ExpandSeries generates count future occurrences of base, one per
// recurrence step. Each occurrence is a copy of base with a fresh id and an
// advanced date; everything else, including the SeriesID, is shared. The
// caller guards against base.Recurrence == none.
func ExpandSeries(base model.Appointment, count int) []model.Appointment {
	out := make([]model.Appointment, 0, count)
	for i := 1; i <= count; i++ {
		next := base
		next.ID = uuid.New().String()
		switch base.Recurrence {
		case model.RecurrenceWeekly:
			next.Date = base.Date.AddDate(0, 0, 7*i)
		case model.RecurrenceBiweekly:
			next.Date = base.Date.AddDate(0, 0, 14*i)
		case model.RecurrenceMonthly:
			next.Date = addMonths(base.Date, i)
		}
		out = append(out, next)
	}
	return out
}

// addMonths advances t by n calendar months, clamping the day of month to
// the last day of the target month (Jan 31 + 1 month = Feb 28/29). Plain
// AddDate would roll the overflow into the next month instead.
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
