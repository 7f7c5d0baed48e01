package schedule

import (
	"context"
	"errors"
	"time"

	"psi-agenda-api/internal/model"
)

// ErrNotFound is returned by repositories for lookups that match nothing.
var ErrNotFound = errors.New("not found")

// Repository is the storage contract for the two owned collections. Reads
// return records in insertion order. Implementations must make each method
// atomic: a series insert, a series delete, a patient cascade or a type
// propagation either fully applies or leaves the collections untouched.
type Repository interface {
	Appointments(ctx context.Context) ([]model.Appointment, error)
	AppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	InsertAppointments(ctx context.Context, appts []model.Appointment) error
	ReplaceAppointment(ctx context.Context, a model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	// DeleteSeriesFrom removes the appointment with refID plus every member
	// of series whose date is not strictly before from.
	DeleteSeriesFrom(ctx context.Context, series string, from time.Time, refID string) error

	Patients(ctx context.Context) ([]model.Patient, error)
	PatientByID(ctx context.Context, id string) (*model.Patient, error)
	// UpsertPatient saves p and propagates its Type and Name onto every
	// appointment referencing p.ID, in one atomic step.
	UpsertPatient(ctx context.Context, p model.Patient) error
	// DeletePatientCascade removes the patient and all of its appointments.
	DeletePatientCascade(ctx context.Context, id string) error
}
