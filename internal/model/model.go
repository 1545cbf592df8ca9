package model

import "time"

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

// Person carries the identity fields every role shares. Email uniqueness is a
// storage concern, not enforced at this layer.
type Person struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"firstname"`
	LastName    string    `json:"lastname"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
}

type Patient struct {
	Person
	Symptoms              string    `json:"symptoms"`
	EmergencyContactName  string    `json:"emergency_contact_name"`
	EmergencyContactPhone string    `json:"emergency_contact_phone"`
	BloodType             string    `json:"blood_type"`
	Allergies             string    `json:"allergies"`
	PasswordHash          string    `json:"-"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (Patient) Role() string { return RolePatient }

type Doctor struct {
	Person
	Specialization    string    `json:"specialization"`
	LicenceNumber     string    `json:"licence_number"`
	YearsOfExperience int       `json:"years_of_experience"`
	PasswordHash      string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (Doctor) Role() string { return RoleDoctor }

type Clinic struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Province string `json:"province"`
	Zipcode  string `json:"zipcode"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	// e.g. "8AM-5PM"; must parse to open < close
	OpeningHours string    `json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Record is a committed appointment. Immutable once created, except for the
// treatment text which the owning doctor may amend.
type Record struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	ClinicID  string    `json:"clinic_id"`
	VisitDate time.Time `json:"visit_date"`
	Treatment string    `json:"treatment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
