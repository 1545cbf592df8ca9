package store

import (
	"context"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO doctors (id, firstname, lastname, date_of_birth, phone, email,
		                      password_hash, specialization, licence_number, years_of_experience)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		d.ID, d.FirstName, d.LastName, d.DateOfBirth, d.Phone, d.Email,
		d.PasswordHash, d.Specialization, d.LicenceNumber, d.YearsOfExperience,
	)
	return err
}

// FindDoctors lists doctors in registration order. A non-empty specialization
// filters by case-insensitive exact match; no match yields an empty list, not
// an error.
func (s *Store) FindDoctors(ctx context.Context, specialization string) ([]model.Doctor, error) {
	q := `SELECT id, firstname, lastname, date_of_birth, phone, email,
	             specialization, licence_number, years_of_experience, created_at, updated_at
	      FROM doctors`
	args := []any{}
	if specialization != "" {
		q += ` WHERE LOWER(specialization) = LOWER($1)`
		args = append(args, specialization)
	}
	q += ` ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(
			&d.ID, &d.FirstName, &d.LastName, &d.DateOfBirth, &d.Phone, &d.Email,
			&d.Specialization, &d.LicenceNumber, &d.YearsOfExperience, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) DoctorByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, firstname, lastname, date_of_birth, phone, email, password_hash,
		        specialization, licence_number, years_of_experience, created_at, updated_at
		 FROM doctors WHERE email = $1`, email,
	).Scan(&d.ID, &d.FirstName, &d.LastName, &d.DateOfBirth, &d.Phone, &d.Email, &d.PasswordHash,
		&d.Specialization, &d.LicenceNumber, &d.YearsOfExperience, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) DoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, firstname, lastname, date_of_birth, phone, email,
		        specialization, licence_number, years_of_experience, created_at, updated_at
		 FROM doctors WHERE id = $1`, id,
	).Scan(&d.ID, &d.FirstName, &d.LastName, &d.DateOfBirth, &d.Phone, &d.Email,
		&d.Specialization, &d.LicenceNumber, &d.YearsOfExperience, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
