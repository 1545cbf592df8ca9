package store

import (
	"context"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreateClinic(ctx context.Context, c *model.Clinic) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO clinics (id, name, address, city, province, zipcode, phone, email, opening_hours)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		c.ID, c.Name, c.Address, c.City, c.Province, c.Zipcode, c.Phone, c.Email, c.OpeningHours,
	)
	return err
}

func (s *Store) ClinicByID(ctx context.Context, id string) (*model.Clinic, error) {
	c := &model.Clinic{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, address, city, province, zipcode, phone, email, opening_hours, created_at, updated_at
		 FROM clinics WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.Province, &c.Zipcode,
		&c.Phone, &c.Email, &c.OpeningHours, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) ListClinics(ctx context.Context) ([]model.Clinic, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, address, city, province, zipcode, phone, email, opening_hours, created_at, updated_at
		 FROM clinics ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Clinic
	for rows.Next() {
		var c model.Clinic
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.City, &c.Province, &c.Zipcode,
			&c.Phone, &c.Email, &c.OpeningHours, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
