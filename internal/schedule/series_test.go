package schedule_test

import (
	"testing"
	"time"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/schedule"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func base(recurrence model.Recurrence, date time.Time) model.Appointment {
	return model.Appointment{
		ID:              "base-id",
		SeriesID:        "series-1",
		PatientID:       "patient-1",
		PatientName:     "Ana",
		Date:            date,
		StartTime:       "10:00",
		DurationMinutes: 50,
		Recurrence:      recurrence,
		Status:          model.StatusScheduled,
		PatientType:     model.PatientPrivate,
	}
}

func TestExpandSeriesWeekly(t *testing.T) {
	got := schedule.ExpandSeries(base(model.RecurrenceWeekly, day(2024, time.January, 1)), 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	want := []time.Time{
		day(2024, time.January, 8),
		day(2024, time.January, 15),
		day(2024, time.January, 22),
	}
	for i, a := range got {
		if !model.SameDay(a.Date, want[i]) {
			t.Errorf("occurrence %d: got %s, want %s", i, a.Date.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestExpandSeriesBiweekly(t *testing.T) {
	got := schedule.ExpandSeries(base(model.RecurrenceBiweekly, day(2024, time.March, 4)), 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(got))
	}
	if !model.SameDay(got[0].Date, day(2024, time.March, 18)) {
		t.Errorf("first: got %s", got[0].Date.Format("2006-01-02"))
	}
	if !model.SameDay(got[1].Date, day(2024, time.April, 1)) {
		t.Errorf("second: got %s", got[1].Date.Format("2006-01-02"))
	}
}

func TestExpandSeriesMonthlyClamps(t *testing.T) {
	// Jan 31 has no counterpart in Feb or Apr; the day clamps to month end
	// instead of rolling over.
	got := schedule.ExpandSeries(base(model.RecurrenceMonthly, day(2024, time.January, 31)), 3)
	want := []time.Time{
		day(2024, time.February, 29), // leap year
		day(2024, time.March, 31),
		day(2024, time.April, 30),
	}
	for i, a := range got {
		if !model.SameDay(a.Date, want[i]) {
			t.Errorf("occurrence %d: got %s, want %s", i, a.Date.Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestExpandSeriesSharesEverythingButID(t *testing.T) {
	b := base(model.RecurrenceWeekly, day(2024, time.June, 3))
	got := schedule.ExpandSeries(b, 5)

	seen := map[string]bool{b.ID: true}
	for i, a := range got {
		if seen[a.ID] {
			t.Errorf("occurrence %d: duplicate id %s", i, a.ID)
		}
		seen[a.ID] = true
		if a.SeriesID != b.SeriesID {
			t.Errorf("occurrence %d: series id %s, want %s", i, a.SeriesID, b.SeriesID)
		}
		if a.StartTime != b.StartTime || a.DurationMinutes != b.DurationMinutes {
			t.Errorf("occurrence %d: time fields not carried over", i)
		}
		if a.PatientID != b.PatientID || a.PatientName != b.PatientName {
			t.Errorf("occurrence %d: patient fields not carried over", i)
		}
	}
}
