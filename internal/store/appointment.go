package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/schedule"
)

const appointmentColumns = `id, series_id, patient_id, patient_name, date,
	start_time, duration_minutes, notes, recurrence, status, patient_type`

func (s *Store) Appointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	a, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) InsertAppointments(ctx context.Context, appts []model.Appointment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, a := range appts {
		_, err = tx.Exec(ctx,
			`INSERT INTO appointments
			   (id, series_id, patient_id, patient_name, date, start_time,
			    duration_minutes, notes, recurrence, status, patient_type)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			a.ID, nullable(a.SeriesID), a.PatientID, a.PatientName, a.Date,
			a.StartTime, a.DurationMinutes, a.Notes, string(a.Recurrence),
			string(a.Status), string(a.PatientType),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ReplaceAppointment(ctx context.Context, a model.Appointment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET series_id=$2, patient_id=$3, patient_name=$4, date=$5,
		     start_time=$6, duration_minutes=$7, notes=$8, recurrence=$9,
		     status=$10, patient_type=$11
		 WHERE id=$1`,
		a.ID, nullable(a.SeriesID), a.PatientID, a.PatientName, a.Date,
		a.StartTime, a.DurationMinutes, a.Notes, string(a.Recurrence),
		string(a.Status), string(a.PatientType),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteSeriesFrom(ctx context.Context, series string, from time.Time, refID string) error {
	// Keep rule is strictly-earlier date; same-dated siblings go with the
	// reference.
	_, err := s.pool.Exec(ctx,
		`DELETE FROM appointments
		 WHERE series_id = $1 AND (date >= $2::date OR id = $3)`,
		series, model.DayOf(from), refID,
	)
	return err
}

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var (
		a        model.Appointment
		seriesID *string
	)
	err := row.Scan(&a.ID, &seriesID, &a.PatientID, &a.PatientName, &a.Date,
		&a.StartTime, &a.DurationMinutes, &a.Notes,
		(*string)(&a.Recurrence), (*string)(&a.Status), (*string)(&a.PatientType))
	if err != nil {
		return model.Appointment{}, err
	}
	if seriesID != nil {
		a.SeriesID = *seriesID
	}
	return a, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
