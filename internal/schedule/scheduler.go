package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinic-booking-api/internal/model"
)

// DoctorDirectory is the doctor lookup side of the persistence collaborator.
type DoctorDirectory interface {
	// FindDoctors returns doctors in registration order, filtered by
	// specialization (case-insensitive exact match) when one is given.
	FindDoctors(ctx context.Context, specialization string) ([]model.Doctor, error)
}

// RecordRepository is the booking side of the persistence collaborator.
type RecordRepository interface {
	// CommittedSlots returns the doctor's booked visit timestamps in
	// [from, to).
	CommittedSlots(ctx context.Context, doctorID string, from, to time.Time) ([]time.Time, error)

	// InsertRecordIfAbsent atomically inserts rec unless a record already
	// exists for (rec.DoctorID, rec.VisitDate), in which case it returns
	// ErrSlotConflict and writes nothing.
	InsertRecordIfAbsent(ctx context.Context, rec *model.Record) error
}

// Scheduler is the booking engine: slot enumeration, availability filtering
// and the atomic commit. It holds no state of its own; all mutation happens
// through the injected repositories.
type Scheduler struct {
	doctors DoctorDirectory
	records RecordRepository
}

func New(doctors DoctorDirectory, records RecordRepository) *Scheduler {
	return &Scheduler{doctors: doctors, records: records}
}

// ListDoctors returns registered doctors, optionally filtered by
// specialization. An empty result is not an error.
func (s *Scheduler) ListDoctors(ctx context.Context, specialization string) ([]model.Doctor, error) {
	return s.doctors.FindDoctors(ctx, specialization)
}

// ListAvailableSlots returns the still-open slot starts for the doctor at the
// clinic on the given day, in increasing order. The result is advisory: a
// slot listed here can still be lost to a concurrent booking, and only
// BookAppointment decides the race.
func (s *Scheduler) ListAvailableSlots(ctx context.Context, clinic *model.Clinic, doctorID string, day time.Time) ([]time.Time, error) {
	open, close, err := ParseOpeningHours(clinic.OpeningHours)
	if err != nil {
		return nil, err
	}

	candidates := Slots(day, open, close)
	if len(candidates) == 0 {
		return nil, nil
	}

	booked, err := s.records.CommittedSlots(ctx, doctorID, candidates[0], candidates[len(candidates)-1].Add(SlotLength))
	if err != nil {
		return nil, err
	}
	taken := make(map[time.Time]struct{}, len(booked))
	for _, t := range booked {
		taken[slotKey(t)] = struct{}{}
	}

	free := make([]time.Time, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := taken[slotKey(c)]; !ok {
			free = append(free, c)
		}
	}
	return free, nil
}

// BookAppointment commits one slot for the doctor at the clinic. It validates
// the slot against the clinic's opening window and the 30-minute grid, then
// performs an atomic check-and-insert keyed by (doctor, slot). Exactly one of
// concurrent attempts for the same key succeeds; the rest get
// ErrSlotConflict.
func (s *Scheduler) BookAppointment(ctx context.Context, patientID, doctorID string, clinic *model.Clinic, slot time.Time, treatment string) (*model.Record, error) {
	open, close, err := ParseOpeningHours(clinic.OpeningHours)
	if err != nil {
		return nil, err
	}
	// validate in the same frame the commit is keyed by, so an offset
	// representation of an out-of-window instant cannot slip past the check
	slot = slotKey(slot)
	if err := ValidateSlot(slot, open, close); err != nil {
		return nil, err
	}

	rec := &model.Record{
		ID:        uuid.New().String(),
		PatientID: patientID,
		DoctorID:  doctorID,
		ClinicID:  clinic.ID,
		VisitDate: slot,
		Treatment: treatment,
	}
	if err := s.records.InsertRecordIfAbsent(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
