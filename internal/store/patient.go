package store

import (
	"context"

	"clinic-booking-api/internal/model"
)

func (s *Store) CreatePatient(ctx context.Context, p *model.Patient) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO patients (id, firstname, lastname, date_of_birth, phone, email,
		                       password_hash, symptoms, emergency_contact_name,
		                       emergency_contact_phone, blood_type, allergies)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.FirstName, p.LastName, p.DateOfBirth, p.Phone, p.Email,
		p.PasswordHash, p.Symptoms, p.EmergencyContactName,
		p.EmergencyContactPhone, p.BloodType, p.Allergies,
	)
	return err
}

func (s *Store) PatientByEmail(ctx context.Context, email string) (*model.Patient, error) {
	p := &model.Patient{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, firstname, lastname, date_of_birth, phone, email, password_hash,
		        symptoms, emergency_contact_name, emergency_contact_phone,
		        blood_type, allergies, created_at, updated_at
		 FROM patients WHERE email = $1`, email,
	).Scan(&p.ID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Phone, &p.Email, &p.PasswordHash,
		&p.Symptoms, &p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.BloodType, &p.Allergies, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
