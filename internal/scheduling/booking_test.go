package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"healthcare-portal-server/internal/models"
)

// fakeStore is an in-memory Store for exercising the booking service
// without a database.
type fakeStore struct {
	windows      []models.Schedule
	appointments []models.Appointment
	nextID       int
}

func (f *fakeStore) WindowsFor(_ context.Context, doctorID, dayOfWeek string) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, w := range f.windows {
		if w.DoctorID == doctorID && w.DayOfWeek == dayOfWeek && w.IsAvailable {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeStore) PatientAppointments(_ context.Context, patientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PatientID == patientID && !a.IsDeleted {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == id && !f.appointments[i].IsDeleted {
			a := f.appointments[i]
			return &a, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (f *fakeStore) CreateAppointment(_ context.Context, a *models.Appointment) error {
	if a.ID == "" {
		f.nextID++
		a.ID = fmt.Sprintf("apt-%d", f.nextID)
	}
	f.appointments = append(f.appointments, *a)
	return nil
}

func (f *fakeStore) SaveAppointment(_ context.Context, a *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == a.ID {
			f.appointments[i] = *a
			return nil
		}
	}
	return ErrAppointmentNotFound
}

// mondayDate is a Monday; all tests book against it unless stated otherwise.
const mondayDate = "2025-05-05"

func newTestService(store *fakeStore) *Service {
	return NewService(store, nil, nil)
}

func officeHours(doctorID string) models.Schedule {
	return models.Schedule{
		DoctorID:    doctorID,
		DayOfWeek:   "Monday",
		StartTime:   "09:00",
		EndTime:     "17:00",
		IsAvailable: true,
	}
}

func bookingReq(doctorID, date, clock string) BookingRequest {
	return BookingRequest{
		ClinicID:  "clinic1",
		DoctorID:  doctorID,
		PatientID: "pat-1",
		Date:      date,
		Time:      clock,
	}
}

func expectRejection(t *testing.T, err error, code string) *ValidationError {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Code != code {
		t.Fatalf("rejection code = %q, want %q (message: %s)", verr.Code, code, verr.Message)
	}
	return verr
}

func TestBook_Success(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{officeHours("doc-1")}}
	svc := newTestService(store)

	appt, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "09:30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("new appointment status = %s, want pending", appt.Status)
	}
	if appt.IsDeleted {
		t.Error("new appointment must not be archived")
	}
	if len(store.appointments) != 1 {
		t.Fatalf("expected 1 stored appointment, got %d", len(store.appointments))
	}
}

func TestBook_RequiredFieldsFirst(t *testing.T) {
	// Required-field failures must fire before any availability lookup;
	// the store is empty so a lookup would also reject, but with a
	// different message.
	svc := newTestService(&fakeStore{})

	req := bookingReq("doc-1", mondayDate, "09:30")
	req.ClinicID = ""
	_, err := svc.Book(context.Background(), req)
	verr := expectRejection(t, err, CodeMissingField)
	if verr.Message != "Please select a clinic" {
		t.Errorf("message = %q", verr.Message)
	}

	req = bookingReq("", mondayDate, "09:30")
	_, err = svc.Book(context.Background(), req)
	expectRejection(t, err, CodeMissingField)

	req = bookingReq("doc-1", "", "09:30")
	_, err = svc.Book(context.Background(), req)
	expectRejection(t, err, CodeMissingField)

	req = bookingReq("doc-1", mondayDate, "")
	_, err = svc.Book(context.Background(), req)
	expectRejection(t, err, CodeMissingField)
}

func TestBook_NoAvailabilityThatWeekday(t *testing.T) {
	// Doctor only works Mondays; 2025-05-06 is a Tuesday.
	store := &fakeStore{windows: []models.Schedule{officeHours("doc-1")}}
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), bookingReq("doc-1", "2025-05-06", "09:30"))
	verr := expectRejection(t, err, CodeNoAvailability)
	if !strings.Contains(verr.Message, "Tuesday") {
		t.Errorf("message should name the weekday: %q", verr.Message)
	}
}

func TestBook_OutsideWindow(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{officeHours("doc-1")}}
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "18:00"))
	expectRejection(t, err, CodeOutsideHours)

	// Exactly at closing time is accepted (inclusive bound).
	if _, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "17:00")); err != nil {
		t.Errorf("booking at closing time rejected: %v", err)
	}
}

func TestBook_OvernightWindow(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{{
		DoctorID: "doc-1", DayOfWeek: "Monday",
		StartTime: "17:00", EndTime: "01:00", IsAvailable: true,
	}}}
	svc := newTestService(store)

	if _, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "23:30")); err != nil {
		t.Errorf("23:30 inside overnight window rejected: %v", err)
	}

	_, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "02:00"))
	expectRejection(t, err, CodeOutsideHours)
}

func TestBook_SameDoctorSameDay(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{officeHours("doc-1")}}
	svc := newTestService(store)

	if _, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "09:00")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// Second booking with the same doctor on the same date is rejected
	// regardless of time.
	_, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "15:00"))
	expectRejection(t, err, CodeSameDoctorSameDay)
}

func TestBook_TimeConflictAcrossDoctors(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{
		officeHours("doc-1"),
		officeHours("doc-2"),
	}}
	svc := newTestService(store)

	if _, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "09:00")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	// A patient cannot be in two places at once.
	_, err := svc.Book(context.Background(), bookingReq("doc-2", mondayDate, "09:00"))
	expectRejection(t, err, CodeTimeConflict)

	// Same day, different time with another doctor is fine.
	if _, err := svc.Book(context.Background(), bookingReq("doc-2", mondayDate, "09:30")); err != nil {
		t.Errorf("booking another doctor at a free time rejected: %v", err)
	}
}

func TestBook_SameSlotDifferentPatients(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{officeHours("doc-1")}}
	svc := newTestService(store)

	if _, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "09:00")); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	req := bookingReq("doc-1", mondayDate, "09:00")
	req.PatientID = "pat-2"
	if _, err := svc.Book(context.Background(), req); err != nil {
		t.Errorf("second patient booking the same slot rejected: %v", err)
	}
}

func TestBook_CancelledDoesNotBlock(t *testing.T) {
	store := &fakeStore{
		windows: []models.Schedule{officeHours("doc-1")},
		appointments: []models.Appointment{{
			BaseModel: models.BaseModel{ID: "apt-old"},
			PatientID: "pat-1", DoctorID: "doc-1",
			Date: mondayDate, Time: "09:00",
			Status: models.StatusCancelled,
		}},
	}
	svc := newTestService(store)

	if _, err := svc.Book(context.Background(), bookingReq("doc-1", mondayDate, "09:00")); err != nil {
		t.Errorf("cancelled appointment blocked a new booking: %v", err)
	}
}

func TestReschedule_SelfExclusion(t *testing.T) {
	store := &fakeStore{
		windows: []models.Schedule{officeHours("doc-1")},
		appointments: []models.Appointment{{
			BaseModel: models.BaseModel{ID: "apt-1"},
			PatientID: "pat-1", DoctorID: "doc-1", ClinicID: "clinic1",
			Date: mondayDate, Time: "09:00",
			Status: models.StatusAccepted,
		}},
	}
	svc := newTestService(store)

	// Moving the appointment within the same day would trip both conflict
	// checks if the target were not excluded from its own conflict set.
	appt, err := svc.Reschedule(context.Background(), "apt-1", bookingReq("doc-1", mondayDate, "10:00"))
	if err != nil {
		t.Fatalf("reschedule rejected: %v", err)
	}
	if appt.ID != "apt-1" {
		t.Errorf("reschedule created a new id %q", appt.ID)
	}
	if appt.Time != "10:00" {
		t.Errorf("time = %q, want 10:00", appt.Time)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("status after reschedule = %s, want pending", appt.Status)
	}
	if len(store.appointments) != 1 {
		t.Errorf("reschedule must update in place, store has %d rows", len(store.appointments))
	}
}

func TestReschedule_StillConflictsWithOthers(t *testing.T) {
	store := &fakeStore{
		windows: []models.Schedule{officeHours("doc-1"), officeHours("doc-2")},
		appointments: []models.Appointment{
			{
				BaseModel: models.BaseModel{ID: "apt-1"},
				PatientID: "pat-1", DoctorID: "doc-1",
				Date: mondayDate, Time: "09:00",
				Status: models.StatusAccepted,
			},
			{
				BaseModel: models.BaseModel{ID: "apt-2"},
				PatientID: "pat-1", DoctorID: "doc-2",
				Date: mondayDate, Time: "11:00",
				Status: models.StatusAccepted,
			},
		},
	}
	svc := newTestService(store)

	// Rescheduling apt-1 onto apt-2's slot must still be rejected.
	_, err := svc.Reschedule(context.Background(), "apt-1", bookingReq("doc-1", mondayDate, "11:00"))
	expectRejection(t, err, CodeTimeConflict)
}

func TestReschedule_NotFound(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Reschedule(context.Background(), "missing", bookingReq("doc-1", mondayDate, "09:00"))
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestValidateBooking_Result(t *testing.T) {
	store := &fakeStore{windows: []models.Schedule{officeHours("doc-1")}}
	svc := newTestService(store)

	res, err := svc.ValidateBooking(context.Background(), bookingReq("doc-1", mondayDate, "09:30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OK || res.Reason != "" {
		t.Errorf("expected clean pass, got %+v", res)
	}

	res, err = svc.ValidateBooking(context.Background(), bookingReq("doc-1", mondayDate, "18:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK || res.Reason == "" {
		t.Errorf("expected rejection with reason, got %+v", res)
	}
}
