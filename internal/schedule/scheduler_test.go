package schedule

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-booking-api/internal/model"
)

// -- in-memory repositories --

type memDirectory struct {
	docs []model.Doctor
}

func (m *memDirectory) FindDoctors(_ context.Context, specialization string) ([]model.Doctor, error) {
	if specialization == "" {
		return m.docs, nil
	}
	var out []model.Doctor
	for _, d := range m.docs {
		if strings.EqualFold(d.Specialization, specialization) {
			out = append(out, d)
		}
	}
	return out, nil
}

// memRecords guards the per-doctor slot sets with a single mutex so the
// check-and-insert is atomic, mirroring what the unique constraint does in
// Postgres.
type memRecords struct {
	mu       sync.Mutex
	byDoctor map[string]map[time.Time]*model.Record
}

func newMemRecords() *memRecords {
	return &memRecords{byDoctor: make(map[string]map[time.Time]*model.Record)}
}

func (m *memRecords) CommittedSlots(_ context.Context, doctorID string, from, to time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Time
	for t := range m.byDoctor[doctorID] {
		if !t.Before(from) && t.Before(to) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (m *memRecords) InsertRecordIfAbsent(_ context.Context, rec *model.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	slots, ok := m.byDoctor[rec.DoctorID]
	if !ok {
		slots = make(map[time.Time]*model.Record)
		m.byDoctor[rec.DoctorID] = slots
	}
	if _, taken := slots[rec.VisitDate]; taken {
		return ErrSlotConflict
	}
	slots[rec.VisitDate] = rec
	return nil
}

func (m *memRecords) record(doctorID string, slot time.Time) *model.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byDoctor[doctorID][slot]
}

func (m *memRecords) count(doctorID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byDoctor[doctorID])
}

// -- fixtures --

func testClinic() *model.Clinic {
	return &model.Clinic{
		ID:           uuid.New().String(),
		Name:         "Healthy Life Clinic",
		City:         "Metropolis",
		OpeningHours: "8AM-5PM",
	}
}

func testDoctor(first, last, specialization string) model.Doctor {
	return model.Doctor{
		Person: model.Person{
			ID:        uuid.New().String(),
			FirstName: first,
			LastName:  last,
			Email:     strings.ToLower(first) + "@clinic.test",
		},
		Specialization: specialization,
	}
}

func testScheduler(docs ...model.Doctor) (*Scheduler, *memRecords) {
	recs := newMemRecords()
	return New(&memDirectory{docs: docs}, recs), recs
}

// -- directory --

func TestListDoctorsFilter(t *testing.T) {
	alice := testDoctor("Alice", "Smith", "Cardiology")
	bob := testDoctor("Bob", "Jones", "Dermatology")
	carol := testDoctor("Carol", "White", "cardiology")
	s, _ := testScheduler(alice, bob, carol)

	all, err := s.ListDoctors(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"},
		[]string{all[0].FirstName, all[1].FirstName, all[2].FirstName}, "registration order")

	cardio, err := s.ListDoctors(context.Background(), "CARDIOLOGY")
	require.NoError(t, err)
	require.Len(t, cardio, 2)
	assert.Equal(t, alice.ID, cardio[0].ID)
	assert.Equal(t, carol.ID, cardio[1].ID)

	none, err := s.ListDoctors(context.Background(), "Neurology")
	require.NoError(t, err)
	assert.Empty(t, none, "no match is an empty list, not an error")
}

// -- availability --

func TestListAvailableSlotsFull(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, _ := testScheduler(doc)
	day := time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)

	slots, err := s.ListAvailableSlots(context.Background(), testClinic(), doc.ID, day)
	require.NoError(t, err)
	require.Len(t, slots, 18)
	assert.Equal(t, time.Date(2025, 11, 18, 8, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2025, 11, 18, 16, 30, 0, 0, time.UTC), slots[17])
}

func TestListAvailableSlotsExcludesBooked(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, recs := testScheduler(doc)
	clinic := testClinic()
	day := time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC)

	booked := []time.Time{
		time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 18, 14, 30, 0, 0, time.UTC),
	}
	for _, b := range booked {
		require.NoError(t, recs.InsertRecordIfAbsent(context.Background(), &model.Record{
			ID: uuid.New().String(), DoctorID: doc.ID, VisitDate: b,
		}))
	}

	slots, err := s.ListAvailableSlots(context.Background(), clinic, doc.ID, day)
	require.NoError(t, err)
	require.Len(t, slots, 16)
	for _, b := range booked {
		assert.NotContains(t, slots, b)
	}
	// order preserved, strictly increasing
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]))
	}
}

func TestListAvailableSlotsBadHours(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, _ := testScheduler(doc)
	clinic := testClinic()
	clinic.OpeningHours = "whenever"

	_, err := s.ListAvailableSlots(context.Background(), clinic, doc.ID, time.Now())
	assert.ErrorIs(t, err, ErrInvalidHoursFormat)
}

// -- booking --

func TestBookAppointment(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, recs := testScheduler(doc)
	clinic := testClinic()
	patientID := uuid.New().String()
	slot := time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)

	rec, err := s.BookAppointment(context.Background(), patientID, doc.ID, clinic, slot, "General Checkup")
	require.NoError(t, err)
	assert.Equal(t, patientID, rec.PatientID)
	assert.Equal(t, doc.ID, rec.DoctorID)
	assert.Equal(t, clinic.ID, rec.ClinicID)
	assert.Equal(t, slot, rec.VisitDate)
	assert.Equal(t, "General Checkup", rec.Treatment)

	// the booked slot disappears from availability
	slots, err := s.ListAvailableSlots(context.Background(), clinic, doc.ID, slot.Truncate(24*time.Hour))
	require.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slots, slot)

	// second attempt at the same slot conflicts and leaves the record alone
	_, err = s.BookAppointment(context.Background(), uuid.New().String(), doc.ID, clinic, slot, "Follow-up")
	assert.ErrorIs(t, err, ErrSlotConflict)
	kept := recs.record(doc.ID, slot)
	require.NotNil(t, kept)
	assert.Equal(t, rec.ID, kept.ID)
	assert.Equal(t, "General Checkup", kept.Treatment)
}

func TestBookAppointmentInvalidSlot(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, recs := testScheduler(doc)
	clinic := testClinic()

	cases := []time.Time{
		time.Date(2025, 11, 18, 7, 30, 0, 0, time.UTC),  // before open
		time.Date(2025, 11, 18, 17, 0, 0, 0, time.UTC),  // at close
		time.Date(2025, 11, 18, 9, 15, 0, 0, time.UTC),  // off grid
		time.Date(2025, 11, 18, 9, 0, 30, 0, time.UTC),  // off grid by seconds
		time.Date(2025, 11, 18, 23, 30, 0, 0, time.UTC), // after close
	}
	for _, slot := range cases {
		_, err := s.BookAppointment(context.Background(), uuid.New().String(), doc.ID, clinic, slot, "")
		assert.ErrorIs(t, err, ErrInvalidSlot, "slot %s", slot)
	}
	assert.Zero(t, recs.count(doc.ID), "validation failures must not write")
}

func TestBookAppointmentNormalizesOffsets(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, recs := testScheduler(doc)
	clinic := testClinic()
	ctx := context.Background()

	// 12:00-08:00 is 20:00 UTC, outside 8AM-5PM even though the local
	// representation reads as midday
	offWindow := time.Date(2025, 11, 18, 12, 0, 0, 0, time.FixedZone("PST", -8*3600))
	_, err := s.BookAppointment(ctx, uuid.New().String(), doc.ID, clinic, offWindow, "")
	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.Zero(t, recs.count(doc.ID), "out-of-window instant must not be committed")

	// 14:00+05:00 and 09:00Z are the same instant; the second booking must
	// conflict, not duplicate
	nine := time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)
	_, err = s.BookAppointment(ctx, uuid.New().String(), doc.ID, clinic, nine, "")
	require.NoError(t, err)

	sameInstant := time.Date(2025, 11, 18, 14, 0, 0, 0, time.FixedZone("PKT", 5*3600))
	_, err = s.BookAppointment(ctx, uuid.New().String(), doc.ID, clinic, sameInstant, "")
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, recs.count(doc.ID))

	// and availability reflects the one committed record
	day, err := ParseDay("2025-11-18")
	require.NoError(t, err)
	slots, err := s.ListAvailableSlots(ctx, clinic, doc.ID, day)
	require.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slots, nine)
}

func TestBookAppointmentIndependentKeys(t *testing.T) {
	alice := testDoctor("Alice", "Smith", "Cardiology")
	bob := testDoctor("Bob", "Jones", "Dermatology")
	s, _ := testScheduler(alice, bob)
	clinic := testClinic()
	slot := time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)

	// same slot, different doctors
	_, err := s.BookAppointment(context.Background(), uuid.New().String(), alice.ID, clinic, slot, "")
	require.NoError(t, err)
	_, err = s.BookAppointment(context.Background(), uuid.New().String(), bob.ID, clinic, slot, "")
	require.NoError(t, err)

	// same doctor, adjacent slot
	_, err = s.BookAppointment(context.Background(), uuid.New().String(), alice.ID, clinic, slot.Add(SlotLength), "")
	require.NoError(t, err)
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, recs := testScheduler(doc)
	clinic := testClinic()
	slot := time.Date(2025, 11, 18, 10, 30, 0, 0, time.UTC)

	const n = 32
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.BookAppointment(context.Background(), uuid.New().String(), doc.ID, clinic, slot, "rush")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one booking may win")
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, recs.count(doc.ID), "exactly one record created")
}

// End-to-end walk through the booking flow of a clinic open 8AM-5PM.
func TestBookingFlow(t *testing.T) {
	doc := testDoctor("Alice", "Smith", "Cardiology")
	s, _ := testScheduler(doc)
	clinic := testClinic()
	ctx := context.Background()

	day, err := ParseDay("2025-11-18")
	require.NoError(t, err)

	slots, err := s.ListAvailableSlots(ctx, clinic, doc.ID, day)
	require.NoError(t, err)
	require.Len(t, slots, 18)
	assert.Equal(t, 8, slots[0].Hour())

	nine := time.Date(2025, 11, 18, 9, 0, 0, 0, time.UTC)
	_, err = s.BookAppointment(ctx, uuid.New().String(), doc.ID, clinic, nine, "General Checkup")
	require.NoError(t, err)

	_, err = s.BookAppointment(ctx, uuid.New().String(), doc.ID, clinic, nine, "General Checkup")
	assert.ErrorIs(t, err, ErrSlotConflict)

	slots, err = s.ListAvailableSlots(ctx, clinic, doc.ID, day)
	require.NoError(t, err)
	assert.Len(t, slots, 17)
	assert.NotContains(t, slots, nine)
}
