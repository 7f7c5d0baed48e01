package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"psi-agenda-api/internal/model"
)

// DeleteMode selects how much of a series DeleteAppointment removes.
type DeleteMode string

const (
	DeleteSingle DeleteMode = "single"
	DeleteSeries DeleteMode = "series"
)

var (
	ErrMissingPatient   = errors.New("appointment needs a patient id or name")
	ErrMissingDate      = errors.New("appointment needs a date")
	ErrMissingStartTime = errors.New("appointment needs a start time")
	ErrMissingName      = errors.New("patient needs a name")
	ErrBadDuration      = errors.New("duration must be positive")
	ErrBadDeleteMode    = errors.New("unknown delete mode")
)

// defaultSessionMinutes is applied when a draft carries no duration.
const defaultSessionMinutes = 50

// Service applies all mutations to the appointment and patient collections,
// enforcing series identity, cascade rules and the denormalized-field
// invariants. One Service per deployment; the repository serializes writes.
type Service struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Appointments(ctx context.Context) ([]model.Appointment, error) {
	return s.repo.Appointments(ctx)
}

func (s *Service) Patients(ctx context.Context) ([]model.Patient, error) {
	return s.repo.Patients(ctx)
}

// SaveAppointment validates draft, resolves the denormalized patient fields
// (materializing a PRIVATE patient when the referenced id is unknown),
// expands a brand-new recurring draft into its series, and writes the
// result. An edit (non-empty draft.ID) replaces exactly that record and
// never regenerates or touches other series members. The inserted or
// updated records are returned.
func (s *Service) SaveAppointment(ctx context.Context, draft model.Appointment) ([]model.Appointment, error) {
	if draft.PatientID == "" && draft.PatientName == "" {
		return nil, ErrMissingPatient
	}
	if draft.Date.IsZero() {
		return nil, ErrMissingDate
	}
	if draft.StartTime == "" {
		return nil, ErrMissingStartTime
	}
	if draft.DurationMinutes < 0 {
		return nil, ErrBadDuration
	}
	if draft.DurationMinutes == 0 {
		draft.DurationMinutes = defaultSessionMinutes
	}
	if draft.Recurrence == "" {
		draft.Recurrence = model.RecurrenceNone
	}
	if draft.Status == "" {
		draft.Status = model.StatusScheduled
	}

	// An empty PatientID is the explicit "new patient typed by name" case.
	if draft.PatientID == "" {
		draft.PatientID = uuid.New().String()
	}

	draft.PatientType = model.PatientPrivate
	patient, err := s.repo.PatientByID(ctx, draft.PatientID)
	switch {
	case err == nil:
		draft.PatientType = patient.Type
		if draft.PatientName == "" {
			draft.PatientName = patient.Name
		}
	case errors.Is(err, ErrNotFound):
		// Unknown reference auto-heals: materialize the patient.
		if err := s.repo.UpsertPatient(ctx, model.Patient{
			ID:        draft.PatientID,
			Name:      draft.PatientName,
			Type:      model.PatientPrivate,
			CreatedAt: s.now(),
		}); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	isNew := draft.ID == ""
	if isNew {
		draft.ID = uuid.New().String()
	}
	if draft.SeriesID == "" && draft.Recurrence != model.RecurrenceNone {
		draft.SeriesID = uuid.New().String()
	}

	if !isNew {
		if err := s.repo.ReplaceAppointment(ctx, draft); err != nil {
			return nil, err
		}
		return []model.Appointment{draft}, nil
	}

	appts := []model.Appointment{draft}
	if draft.Recurrence != model.RecurrenceNone {
		appts = append(appts, ExpandSeries(draft, SeriesLength-1)...)
	}
	if err := s.repo.InsertAppointments(ctx, appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// DeleteAppointment removes one appointment, or — in series mode — the
// referenced occurrence together with every same-or-later dated member of
// its series. Strictly earlier occurrences (past sessions) are preserved.
// A missing id or a reference without series membership degrades to the
// single behavior.
func (s *Service) DeleteAppointment(ctx context.Context, id string, mode DeleteMode) error {
	switch mode {
	case DeleteSingle, DeleteSeries:
	case "":
		mode = DeleteSingle
	default:
		return ErrBadDeleteMode
	}

	if mode == DeleteSingle {
		return s.repo.DeleteAppointment(ctx, id)
	}

	ref, err := s.repo.AppointmentByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return s.repo.DeleteAppointment(ctx, id)
	}
	if err != nil {
		return err
	}
	if ref.SeriesID == "" {
		return s.repo.DeleteAppointment(ctx, id)
	}
	return s.repo.DeleteSeriesFrom(ctx, ref.SeriesID, ref.Date, ref.ID)
}

// SavePatient upserts a patient. Editing an existing record re-syncs the
// denormalized PatientType and PatientName on every appointment referencing
// it; CreatedAt is preserved from the original record.
func (s *Service) SavePatient(ctx context.Context, draft model.Patient) (model.Patient, error) {
	if draft.Name == "" {
		return model.Patient{}, ErrMissingName
	}
	if draft.Type == "" {
		draft.Type = model.PatientPrivate
	}
	if draft.ID == "" {
		draft.ID = uuid.New().String()
		draft.CreatedAt = s.now()
	} else if existing, err := s.repo.PatientByID(ctx, draft.ID); err == nil {
		draft.CreatedAt = existing.CreatedAt
	} else if errors.Is(err, ErrNotFound) {
		draft.CreatedAt = s.now()
	} else {
		return model.Patient{}, err
	}
	if err := s.repo.UpsertPatient(ctx, draft); err != nil {
		return model.Patient{}, err
	}
	return draft, nil
}

// DeletePatient removes the patient and cascades to every appointment
// referencing it. Irreversible; confirmation is the caller's concern.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	return s.repo.DeletePatientCascade(ctx, id)
}
