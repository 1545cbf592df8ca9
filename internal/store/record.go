package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/schedule"
)

// CommittedSlots returns the doctor's booked visit timestamps in [from, to).
func (s *Store) CommittedSlots(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT visit_date FROM records
		 WHERE doctor_id = $1 AND visit_date >= $2 AND visit_date < $3
		 ORDER BY visit_date`, doctorID, from, to,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertRecordIfAbsent is the atomic commit primitive: the UNIQUE constraint
// on (doctor_id, visit_date) decides concurrent races, and a no-op insert is
// surfaced as schedule.ErrSlotConflict.
func (s *Store) InsertRecordIfAbsent(ctx context.Context, rec *model.Record) error {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO records (id, patient_id, doctor_id, clinic_id, visit_date, treatment)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (doctor_id, visit_date) DO NOTHING`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.ClinicID, rec.VisitDate, rec.Treatment,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrSlotConflict
	}
	return nil
}

func (s *Store) RecordsByPatient(ctx context.Context, patientID string) ([]model.Record, error) {
	return s.records(ctx, `patient_id`, patientID)
}

func (s *Store) RecordsByDoctor(ctx context.Context, doctorID string) ([]model.Record, error) {
	return s.records(ctx, `doctor_id`, doctorID)
}

func (s *Store) records(ctx context.Context, col, id string) ([]model.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, patient_id, doctor_id, clinic_id, visit_date, treatment, created_at, updated_at
		 FROM records WHERE `+col+` = $1 ORDER BY visit_date`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.PatientID, &r.DoctorID, &r.ClinicID,
			&r.VisitDate, &r.Treatment, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpdateTreatment amends the treatment text of a record owned by doctorID.
// The rest of a record is immutable after the commit.
func (s *Store) UpdateTreatment(ctx context.Context, recordID, doctorID, treatment string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE records SET treatment = $1, updated_at = NOW()
		 WHERE id = $2 AND doctor_id = $3`, treatment, recordID, doctorID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
