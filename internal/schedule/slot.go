package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"psi-agenda-api/internal/model"
)

// Displayed hour range of the calendar grid, inclusive. The resolver itself
// answers for any hour; these only drive HourLabels.
const (
	HoursStart = 8
	HoursEnd   = 19
)

// WorkWeekDays is the number of columns in the calendar grid (Mon–Sat).
const WorkWeekDays = 6

// SlotOccupants returns, in collection order, every appointment that falls
// on the given calendar day and whose start hour matches hourLabel
// ("HH:00"). Minutes are ignored: a 10:30 appointment lands in the 10:00
// slot.
func SlotOccupants(day time.Time, hourLabel string, appointments []model.Appointment) []model.Appointment {
	slotHour, err := hourOf(hourLabel)
	if err != nil {
		return nil
	}
	var out []model.Appointment
	for _, a := range appointments {
		if !model.SameDay(a.Date, day) {
			continue
		}
		h, err := hourOf(a.StartTime)
		if err != nil || h != slotHour {
			continue
		}
		out = append(out, a)
	}
	return out
}

// StartOfWeek returns the Monday of the week containing ref, at midnight.
func StartOfWeek(ref time.Time) time.Time {
	d := model.DayOf(ref)
	// time.Weekday is Sunday-based; shift so Monday is the anchor.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekDays returns the six working days (Monday through Saturday) of the
// week containing ref.
func WeekDays(ref time.Time) []time.Time {
	start := StartOfWeek(ref)
	days := make([]time.Time, WorkWeekDays)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// HourLabels returns the displayed slot labels, "08:00" through "19:00".
func HourLabels() []string {
	labels := make([]string, 0, HoursEnd-HoursStart+1)
	for h := HoursStart; h <= HoursEnd; h++ {
		labels = append(labels, fmt.Sprintf("%02d:00", h))
	}
	return labels
}

func hourOf(hhmm string) (int, error) {
	h, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0, fmt.Errorf("bad time %q", hhmm)
	}
	n, err := strconv.Atoi(h)
	if err != nil || n < 0 || n > 23 {
		return 0, fmt.Errorf("bad time %q", hhmm)
	}
	return n, nil
}
