// Package ics renders the agenda as an iCalendar feed so the practitioner
// can subscribe from a phone or desktop calendar.
package ics

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"psi-agenda-api/internal/model"
)

// Appointments is the read side the feed needs; *schedule.Service
// satisfies it.
type Appointments interface {
	Appointments(ctx context.Context) ([]model.Appointment, error)
}

// Handler serves the feed as text/calendar.
func Handler(src Appointments) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		appts, err := src.Appointments(r.Context())
		if err != nil {
			log.Printf("ics: listing appointments: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
		fmt.Fprint(w, Feed(appts))
	})
}

// Feed builds the calendar. A series whose members still follow their
// generating rule collapses into one VEVENT with an RRULE; anything the
// rule cannot reproduce (edited occurrences, partial deletes, clamped
// month-end dates) is emitted as individual events.
func Feed(appts []model.Appointment) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetXWRCalName("PsiAgenda")

	singles, series := groupBySeries(appts)

	for _, a := range singles {
		addEvent(cal, a, "")
	}
	for _, members := range series {
		if r := seriesRule(members); r != "" {
			addEvent(cal, members[0], r)
			continue
		}
		for _, a := range members {
			addEvent(cal, a, "")
		}
	}
	return cal.Serialize()
}

func groupBySeries(appts []model.Appointment) ([]model.Appointment, [][]model.Appointment) {
	var singles []model.Appointment
	index := map[string]int{}
	var series [][]model.Appointment
	for _, a := range appts {
		if a.SeriesID == "" {
			singles = append(singles, a)
			continue
		}
		i, ok := index[a.SeriesID]
		if !ok {
			i = len(series)
			index[a.SeriesID] = i
			series = append(series, nil)
		}
		series[i] = append(series[i], a)
	}
	for _, members := range series {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Date.Before(members[j].Date)
		})
	}
	return singles, series
}

// seriesRule returns the RRULE value for an intact series, or "" when the
// members no longer match their rule.
func seriesRule(members []model.Appointment) string {
	if len(members) < 2 {
		return ""
	}
	first := members[0]

	var freq rrule.Frequency
	interval := 1
	switch first.Recurrence {
	case model.RecurrenceWeekly:
		freq = rrule.WEEKLY
	case model.RecurrenceBiweekly:
		freq = rrule.WEEKLY
		interval = 2
	case model.RecurrenceMonthly:
		freq = rrule.MONTHLY
	default:
		return ""
	}

	for _, a := range members {
		if a.StartTime != first.StartTime ||
			a.DurationMinutes != first.DurationMinutes ||
			a.Recurrence != first.Recurrence {
			return ""
		}
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:     freq,
		Interval: interval,
		Count:    len(members),
		Dtstart:  model.DayOf(first.Date),
	})
	if err != nil {
		return ""
	}
	want := r.All()
	if len(want) != len(members) {
		return ""
	}
	for i, a := range members {
		if !model.SameDay(a.Date, want[i]) {
			return ""
		}
	}

	rule := fmt.Sprintf("FREQ=%s;COUNT=%d", freqName(freq), len(members))
	if interval > 1 {
		rule += fmt.Sprintf(";INTERVAL=%d", interval)
	}
	return rule
}

func freqName(f rrule.Frequency) string {
	if f == rrule.MONTHLY {
		return "MONTHLY"
	}
	return "WEEKLY"
}

func addEvent(cal *ical.Calendar, a model.Appointment, rule string) {
	uid := a.ID
	if rule != "" {
		uid = a.SeriesID
	}
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(time.Now())

	start := eventStart(a)
	ev.SetStartAt(start)
	ev.SetEndAt(start.Add(time.Duration(a.DurationMinutes) * time.Minute))
	ev.SetSummary(a.PatientName)
	if a.Notes != "" {
		ev.SetDescription(a.Notes)
	}
	if a.Status == model.StatusCancelled {
		ev.SetStatus(ical.ObjectStatusCancelled)
	}
	if rule != "" {
		ev.AddRrule(rule)
	}
}

func eventStart(a model.Appointment) time.Time {
	t, err := time.Parse("15:04", a.StartTime)
	if err != nil {
		return model.DayOf(a.Date)
	}
	d := a.Date
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
}
