package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"psi-agenda-api/internal/model"
	"psi-agenda-api/internal/schedule"
)

func (s *Store) Patients(ctx context.Context) ([]model.Patient, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, cpf, address, notes, type, created_at
		 FROM patients ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Patient
	for rows.Next() {
		var p model.Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CPF,
			&p.Address, &p.Notes, (*string)(&p.Type), &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) PatientByID(ctx context.Context, id string) (*model.Patient, error) {
	p := &model.Patient{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, cpf, address, notes, type, created_at
		 FROM patients WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.CPF,
		&p.Address, &p.Notes, (*string)(&p.Type), &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpsertPatient writes the patient row and re-syncs the denormalized
// patient_type and patient_name on its appointments in the same
// transaction.
func (s *Store) UpsertPatient(ctx context.Context, p model.Patient) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO patients (id, name, email, phone, cpf, address, notes, type, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 ON CONFLICT (id) DO UPDATE
		 SET name=$2, email=$3, phone=$4, cpf=$5, address=$6, notes=$7, type=$8`,
		p.ID, p.Name, p.Email, p.Phone, p.CPF, p.Address, p.Notes,
		string(p.Type), p.CreatedAt,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE appointments SET patient_type=$1, patient_name=$2 WHERE patient_id=$3`,
		string(p.Type), p.Name, p.ID,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeletePatientCascade removes the patient and every appointment
// referencing it as one transaction; an orphaned half-cascade never
// commits.
func (s *Store) DeletePatientCascade(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM appointments WHERE patient_id = $1`, id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
