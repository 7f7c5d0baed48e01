package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/schedule"
)

// Memory is the default backend: two owned in-memory collections guarded by
// one mutex, so every operation — including the multi-row cascades — is
// atomic with respect to concurrent callers. Insertion order is the read
// order.
type Memory struct {
	mu            sync.Mutex
	appointments  []model.Appointment
	patients      []model.Patient
	refreshTokens map[string]*RefreshToken
}

func NewMemory() *Memory {
	return &Memory{refreshTokens: make(map[string]*RefreshToken)}
}

func (m *Memory) Appointments(ctx context.Context) ([]model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *Memory) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == id {
			a := m.appointments[i]
			return &a, nil
		}
	}
	return nil, schedule.ErrNotFound
}

func (m *Memory) InsertAppointments(ctx context.Context, appts []model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = append(m.appointments, appts...)
	return nil
}

func (m *Memory) ReplaceAppointment(ctx context.Context, a model.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.appointments {
		if m.appointments[i].ID == a.ID {
			m.appointments[i] = a
			return nil
		}
	}
	return schedule.ErrNotFound
}

func (m *Memory) DeleteAppointment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = filterAppointments(m.appointments, func(a model.Appointment) bool {
		return a.ID != id
	})
	return nil
}

func (m *Memory) DeleteSeriesFrom(ctx context.Context, series string, from time.Time, refID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments = filterAppointments(m.appointments, func(a model.Appointment) bool {
		if a.SeriesID != series {
			return true
		}
		// Keep only strictly earlier occurrences; the reference itself and
		// same-dated siblings go.
		return model.BeforeDay(a.Date, from) && a.ID != refID
	})
	return nil
}

func (m *Memory) Patients(ctx context.Context) ([]model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Patient, len(m.patients))
	copy(out, m.patients)
	return out, nil
}

func (m *Memory) PatientByID(ctx context.Context, id string) (*model.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.patients {
		if m.patients[i].ID == id {
			p := m.patients[i]
			return &p, nil
		}
	}
	return nil, schedule.ErrNotFound
}

func (m *Memory) UpsertPatient(ctx context.Context, p model.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	found := false
	for i := range m.patients {
		if m.patients[i].ID == p.ID {
			m.patients[i] = p
			found = true
			break
		}
	}
	if !found {
		m.patients = append(m.patients, p)
	}
	// Re-sync the denormalized copies in the same critical section.
	for i := range m.appointments {
		if m.appointments[i].PatientID == p.ID {
			m.appointments[i].PatientType = p.Type
			m.appointments[i].PatientName = p.Name
		}
	}
	return nil
}

func (m *Memory) DeletePatientCascade(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.patients[:0]
	for _, p := range m.patients {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.patients = kept
	m.appointments = filterAppointments(m.appointments, func(a model.Appointment) bool {
		return a.PatientID != id
	})
	return nil
}

func filterAppointments(in []model.Appointment, keep func(model.Appointment) bool) []model.Appointment {
	out := in[:0]
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// ----- refresh tokens (memory) -----

func (m *Memory) CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.refreshTokens[tokenHash] = &RefreshToken{
		ID:        id,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return id, nil
}

func (m *Memory) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.refreshTokens[tokenHash]
	if !ok {
		return nil, schedule.ErrNotFound
	}
	cp := *rt
	return &cp, nil
}

func (m *Memory) RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.refreshTokens {
		if rt.ID == oldID {
			rt.Revoked = true
			rt.ReplacedBy = &newID
		}
	}
	m.refreshTokens[newHash] = &RefreshToken{
		ID:        newID,
		UserID:    userID,
		TokenHash: newHash,
		ExpiresAt: newExpiry,
		CreatedAt: time.Now(),
	}
	return nil
}

func (m *Memory) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range m.refreshTokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}
