package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/schedule"
	"psi-agenda-api/internal/store"
)

func newService() (*schedule.Service, *store.Memory) {
	m := store.NewMemory()
	return schedule.New(m), m
}

func draft(date time.Time) model.Appointment {
	return model.Appointment{
		PatientName: "Ana",
		Date:        date,
		StartTime:   "10:00",
	}
}

func TestSaveAppointmentSingle(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	saved, err := svc.SaveAppointment(ctx, draft(day(2024, time.May, 6)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("expected 1 record, got %d", len(saved))
	}
	a := saved[0]
	if a.ID == "" {
		t.Error("empty id")
	}
	if a.SeriesID != "" {
		t.Errorf("non-recurring draft got series id %s", a.SeriesID)
	}
	if a.DurationMinutes != 50 {
		t.Errorf("duration not defaulted: %d", a.DurationMinutes)
	}
	if a.Status != model.StatusScheduled {
		t.Errorf("status: %s", a.Status)
	}
	if a.PatientType != model.PatientPrivate {
		t.Errorf("patient type: %s", a.PatientType)
	}
}

func TestSaveAppointmentMaterializesPatient(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	saved, err := svc.SaveAppointment(ctx, draft(day(2024, time.May, 6)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	patients, _ := svc.Patients(ctx)
	if len(patients) != 1 {
		t.Fatalf("expected the patient to be created, got %d patients", len(patients))
	}
	p := patients[0]
	if p.ID != saved[0].PatientID {
		t.Errorf("patient id %s does not match appointment ref %s", p.ID, saved[0].PatientID)
	}
	if p.Name != "Ana" {
		t.Errorf("patient name: %s", p.Name)
	}
	if p.Type != model.PatientPrivate {
		t.Errorf("patient type: %s", p.Type)
	}
	if p.CreatedAt.IsZero() {
		t.Error("created at not set")
	}
}

func TestSaveAppointmentKnownPatient(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, err := svc.SavePatient(ctx, model.Patient{Name: "Bruno", Type: model.PatientInsurance})
	if err != nil {
		t.Fatalf("save patient: %v", err)
	}

	saved, err := svc.SaveAppointment(ctx, model.Appointment{
		PatientID: p.ID,
		Date:      day(2024, time.May, 6),
		StartTime: "09:00",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	a := saved[0]
	if a.PatientName != "Bruno" {
		t.Errorf("patient name not resolved: %q", a.PatientName)
	}
	if a.PatientType != model.PatientInsurance {
		t.Errorf("patient type not resolved: %s", a.PatientType)
	}

	// No duplicate patient was created.
	patients, _ := svc.Patients(ctx)
	if len(patients) != 1 {
		t.Errorf("expected 1 patient, got %d", len(patients))
	}
}

func TestSaveAppointmentSeries(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	d := draft(day(2024, time.January, 1))
	d.Recurrence = model.RecurrenceWeekly
	saved, err := svc.SaveAppointment(ctx, d)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(saved) != schedule.SeriesLength {
		t.Fatalf("expected %d occurrences, got %d", schedule.SeriesLength, len(saved))
	}

	series := saved[0].SeriesID
	if series == "" {
		t.Fatal("series id not generated")
	}
	ids := map[string]bool{}
	for i, a := range saved {
		if a.SeriesID != series {
			t.Errorf("occurrence %d: series id %s", i, a.SeriesID)
		}
		if ids[a.ID] {
			t.Errorf("occurrence %d: duplicate id", i)
		}
		ids[a.ID] = true
		want := day(2024, time.January, 1).AddDate(0, 0, 7*i)
		if !model.SameDay(a.Date, want) {
			t.Errorf("occurrence %d: date %s, want %s", i, a.Date.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	}
}

func TestSaveAppointmentEditDoesNotRegenerate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	d := draft(day(2024, time.January, 1))
	d.Recurrence = model.RecurrenceWeekly
	saved, err := svc.SaveAppointment(ctx, d)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// Move the third occurrence and annotate it; still flagged weekly.
	edit := saved[2]
	edit.Date = edit.Date.AddDate(0, 0, 1)
	edit.Notes = "rescheduled"
	out, err := svc.SaveAppointment(ctx, edit)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("edit returned %d records, want 1", len(out))
	}

	all, _ := svc.Appointments(ctx)
	if len(all) != schedule.SeriesLength {
		t.Fatalf("edit changed the collection size: %d", len(all))
	}
	for _, a := range all {
		if a.ID == edit.ID {
			if a.Notes != "rescheduled" || !model.SameDay(a.Date, edit.Date) {
				t.Error("edit not applied")
			}
		} else if a.Notes != "" {
			t.Errorf("sibling %s was touched", a.ID)
		}
	}
}

func TestSaveAppointmentValidation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	d := day(2024, time.May, 6)
	tests := []struct {
		name  string
		draft model.Appointment
		want  error
	}{
		{"no patient", model.Appointment{Date: d, StartTime: "10:00"}, schedule.ErrMissingPatient},
		{"no date", model.Appointment{PatientName: "Ana", StartTime: "10:00"}, schedule.ErrMissingDate},
		{"no start time", model.Appointment{PatientName: "Ana", Date: d}, schedule.ErrMissingStartTime},
		{"negative duration", model.Appointment{PatientName: "Ana", Date: d, StartTime: "10:00", DurationMinutes: -5}, schedule.ErrBadDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SaveAppointment(ctx, tt.draft)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	// A rejected draft writes nothing.
	if all, _ := svc.Appointments(ctx); len(all) != 0 {
		t.Errorf("validation failure left %d records behind", len(all))
	}
}

func TestDeleteAppointmentSingle(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	d := draft(day(2024, time.January, 1))
	d.Recurrence = model.RecurrenceWeekly
	saved, _ := svc.SaveAppointment(ctx, d)

	if err := svc.DeleteAppointment(ctx, saved[3].ID, schedule.DeleteSingle); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, _ := svc.Appointments(ctx)
	if len(all) != schedule.SeriesLength-1 {
		t.Fatalf("expected %d left, got %d", schedule.SeriesLength-1, len(all))
	}
	for _, a := range all {
		if a.ID == saved[3].ID {
			t.Error("deleted appointment still present")
		}
	}
}

func TestDeleteAppointmentSeriesKeepsPast(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	d := draft(day(2024, time.January, 1))
	d.Recurrence = model.RecurrenceWeekly
	saved, _ := svc.SaveAppointment(ctx, d)

	// Delete from the third occurrence on; the two earlier sessions stay.
	if err := svc.DeleteAppointment(ctx, saved[2].ID, schedule.DeleteSeries); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, _ := svc.Appointments(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 kept, got %d", len(all))
	}
	if all[0].ID != saved[0].ID || all[1].ID != saved[1].ID {
		t.Error("wrong occurrences kept")
	}
}

func TestDeleteAppointmentSeriesModeOnLoner(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	saved, _ := svc.SaveAppointment(ctx, draft(day(2024, time.May, 6)))
	other, _ := svc.SaveAppointment(ctx, draft(day(2024, time.May, 7)))

	// Series mode on a non-series appointment degrades to single.
	if err := svc.DeleteAppointment(ctx, saved[0].ID, schedule.DeleteSeries); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, _ := svc.Appointments(ctx)
	if len(all) != 1 || all[0].ID != other[0].ID {
		t.Errorf("expected only the other appointment to remain, got %v", all)
	}
}

func TestDeleteAppointmentUnknownID(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if err := svc.DeleteAppointment(ctx, "nope", schedule.DeleteSeries); err != nil {
		t.Errorf("deleting an unknown id must be a no-op, got %v", err)
	}
	if err := svc.DeleteAppointment(ctx, "x", "everything"); !errors.Is(err, schedule.ErrBadDeleteMode) {
		t.Errorf("expected ErrBadDeleteMode, got %v", err)
	}
}

func TestSavePatientPropagates(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, _ := svc.SavePatient(ctx, model.Patient{Name: "Carla", Type: model.PatientPrivate})
	other, _ := svc.SavePatient(ctx, model.Patient{Name: "Diego", Type: model.PatientPrivate})

	svc.SaveAppointment(ctx, model.Appointment{PatientID: p.ID, Date: day(2024, time.May, 6), StartTime: "10:00"})
	svc.SaveAppointment(ctx, model.Appointment{PatientID: p.ID, Date: day(2024, time.May, 13), StartTime: "10:00"})
	svc.SaveAppointment(ctx, model.Appointment{PatientID: other.ID, Date: day(2024, time.May, 6), StartTime: "11:00"})

	p.Name = "Carla Souza"
	p.Type = model.PatientInsurance
	if _, err := svc.SavePatient(ctx, p); err != nil {
		t.Fatalf("edit patient: %v", err)
	}

	all, _ := svc.Appointments(ctx)
	for _, a := range all {
		switch a.PatientID {
		case p.ID:
			if a.PatientName != "Carla Souza" || a.PatientType != model.PatientInsurance {
				t.Errorf("appointment %s not re-synced: %s/%s", a.ID, a.PatientName, a.PatientType)
			}
		case other.ID:
			if a.PatientName != "Diego" || a.PatientType != model.PatientPrivate {
				t.Errorf("unrelated appointment %s was touched", a.ID)
			}
		}
	}
}

func TestSavePatientPreservesCreatedAt(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	p, _ := svc.SavePatient(ctx, model.Patient{Name: "Elisa"})
	created := p.CreatedAt
	if created.IsZero() {
		t.Fatal("created at not set on insert")
	}

	p.Notes = "updated"
	p.CreatedAt = time.Time{}
	out, err := svc.SavePatient(ctx, p)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !out.CreatedAt.Equal(created) {
		t.Errorf("created at changed: %s vs %s", out.CreatedAt, created)
	}
}

func TestSavePatientValidation(t *testing.T) {
	svc, _ := newService()
	if _, err := svc.SavePatient(context.Background(), model.Patient{}); !errors.Is(err, schedule.ErrMissingName) {
		t.Errorf("expected ErrMissingName, got %v", err)
	}
}

func TestDeletePatientCascade(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, _ := svc.SavePatient(ctx, model.Patient{Name: "Fabio"})
	b, _ := svc.SavePatient(ctx, model.Patient{Name: "Gina"})

	svc.SaveAppointment(ctx, model.Appointment{PatientID: a.ID, Date: day(2024, time.May, 6), StartTime: "08:00"})
	svc.SaveAppointment(ctx, model.Appointment{PatientID: a.ID, Date: day(2024, time.May, 7), StartTime: "08:00"})
	svc.SaveAppointment(ctx, model.Appointment{PatientID: a.ID, Date: day(2024, time.May, 8), StartTime: "08:00"})
	svc.SaveAppointment(ctx, model.Appointment{PatientID: b.ID, Date: day(2024, time.May, 6), StartTime: "09:00"})
	svc.SaveAppointment(ctx, model.Appointment{PatientID: b.ID, Date: day(2024, time.May, 7), StartTime: "09:00"})

	if err := svc.DeletePatient(ctx, a.ID); err != nil {
		t.Fatalf("delete patient: %v", err)
	}

	patients, _ := svc.Patients(ctx)
	if len(patients) != 1 || patients[0].ID != b.ID {
		t.Errorf("expected only the other patient to remain, got %v", patients)
	}
	all, _ := svc.Appointments(ctx)
	if len(all) != 2 {
		t.Fatalf("expected 2 appointments left, got %d", len(all))
	}
	for _, ap := range all {
		if ap.PatientID != b.ID {
			t.Errorf("cascade missed appointment %s", ap.ID)
		}
	}
}
