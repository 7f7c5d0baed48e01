package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/schedule"
	"psi-agenda-api/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMemoryDeleteSeriesFrom(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	ref := day(2024, time.January, 15)
	m.InsertAppointments(ctx, []model.Appointment{
		{ID: "past-1", SeriesID: "s", Date: day(2024, time.January, 1)},
		{ID: "past-2", SeriesID: "s", Date: day(2024, time.January, 8)},
		{ID: "ref", SeriesID: "s", Date: ref},
		{ID: "same-day", SeriesID: "s", Date: ref},
		{ID: "future", SeriesID: "s", Date: day(2024, time.January, 22)},
		{ID: "other-series", SeriesID: "t", Date: day(2024, time.January, 22)},
		{ID: "loner", Date: day(2024, time.January, 15)},
	})

	if err := m.DeleteSeriesFrom(ctx, "s", ref, "ref"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, _ := m.Appointments(ctx)
	want := map[string]bool{"past-1": true, "past-2": true, "other-series": true, "loner": true}
	if len(all) != len(want) {
		t.Fatalf("expected %d kept, got %d", len(want), len(all))
	}
	for _, a := range all {
		if !want[a.ID] {
			t.Errorf("unexpected survivor %s", a.ID)
		}
	}
}

func TestMemoryReplaceAppointmentNotFound(t *testing.T) {
	m := store.NewMemory()
	err := m.ReplaceAppointment(context.Background(), model.Appointment{ID: "nope"})
	if !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryAppointmentByID(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	m.InsertAppointments(ctx, []model.Appointment{{ID: "a", Notes: "hi"}})

	got, err := m.AppointmentByID(ctx, "a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// The returned value is a copy; mutating it must not leak back.
	got.Notes = "changed"
	again, _ := m.AppointmentByID(ctx, "a")
	if again.Notes != "hi" {
		t.Error("store handed out an aliased record")
	}

	if _, err := m.AppointmentByID(ctx, "missing"); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUpsertPatientResync(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	m.UpsertPatient(ctx, model.Patient{ID: "p", Name: "Ana", Type: model.PatientPrivate})
	m.InsertAppointments(ctx, []model.Appointment{
		{ID: "a", PatientID: "p", PatientName: "Ana", PatientType: model.PatientPrivate},
		{ID: "b", PatientID: "q", PatientName: "Bea", PatientType: model.PatientPrivate},
	})

	m.UpsertPatient(ctx, model.Patient{ID: "p", Name: "Ana Lima", Type: model.PatientInsurance})

	all, _ := m.Appointments(ctx)
	for _, a := range all {
		if a.ID == "a" && (a.PatientName != "Ana Lima" || a.PatientType != model.PatientInsurance) {
			t.Errorf("appointment a not re-synced: %s/%s", a.PatientName, a.PatientType)
		}
		if a.ID == "b" && a.PatientName != "Bea" {
			t.Error("unrelated appointment touched")
		}
	}
}

func TestMemoryRefreshTokenLifecycle(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	id, err := m.CreateRefreshToken(ctx, "uid", "hash-1", expiry)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rt, err := m.GetRefreshTokenByHash(ctx, "hash-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rt.ID != id || rt.UserID != "uid" || rt.Revoked {
		t.Errorf("unexpected token state: %+v", rt)
	}

	if err := m.RotateRefreshToken(ctx, id, "new-id", "uid", "hash-2", expiry); err != nil {
		t.Fatalf("rotate: %v", err)
	}
	old, _ := m.GetRefreshTokenByHash(ctx, "hash-1")
	if !old.Revoked || old.ReplacedBy == nil || *old.ReplacedBy != "new-id" {
		t.Errorf("old token not revoked/linked: %+v", old)
	}
	fresh, err := m.GetRefreshTokenByHash(ctx, "hash-2")
	if err != nil || fresh.Revoked {
		t.Errorf("rotated token unusable: %+v err=%v", fresh, err)
	}

	m.RevokeAllRefreshTokens(ctx, "uid")
	after, _ := m.GetRefreshTokenByHash(ctx, "hash-2")
	if !after.Revoked {
		t.Error("revoke-all missed the active token")
	}

	if _, err := m.GetRefreshTokenByHash(ctx, "missing"); !errors.Is(err, schedule.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
