package scheduling

import (
	"testing"

	"healthcare-portal-server/internal/models"
)

func appointment(id, doctorID, date, clock string, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		BaseModel: models.BaseModel{ID: id},
		PatientID: "pat-1",
		DoctorID:  doctorID,
		Date:      date,
		Time:      clock,
		Status:    status,
	}
}

func TestHasSameDoctorSameDay(t *testing.T) {
	existing := []models.Appointment{
		appointment("apt-1", "doc-1", "2025-05-01", "09:00", models.StatusAccepted),
	}

	// Same doctor, same date is blocked regardless of time.
	if !HasSameDoctorSameDay(existing, "doc-1", "2025-05-01", "") {
		t.Error("same doctor same day should conflict")
	}
	if !HasSameDoctorSameDay(existing, "doc-1", "2025-05-01", "other-id") {
		t.Error("exclusion of an unrelated id should not clear the conflict")
	}

	if HasSameDoctorSameDay(existing, "doc-2", "2025-05-01", "") {
		t.Error("different doctor should not conflict")
	}
	if HasSameDoctorSameDay(existing, "doc-1", "2025-05-02", "") {
		t.Error("different date should not conflict")
	}

	// The appointment being rescheduled never conflicts with itself.
	if HasSameDoctorSameDay(existing, "doc-1", "2025-05-01", "apt-1") {
		t.Error("reschedule target should be excluded")
	}
}

func TestHasSameDoctorSameDay_InactiveStatuses(t *testing.T) {
	for _, status := range []models.AppointmentStatus{models.StatusCancelled, models.StatusRejected} {
		existing := []models.Appointment{
			appointment("apt-1", "doc-1", "2025-05-01", "09:00", status),
		}
		if HasSameDoctorSameDay(existing, "doc-1", "2025-05-01", "") {
			t.Errorf("%s appointment should not block a new booking", status)
		}
	}

	// Pending, accepted and completed all block.
	for _, status := range []models.AppointmentStatus{models.StatusPending, models.StatusAccepted, models.StatusCompleted} {
		existing := []models.Appointment{
			appointment("apt-1", "doc-1", "2025-05-01", "09:00", status),
		}
		if !HasSameDoctorSameDay(existing, "doc-1", "2025-05-01", "") {
			t.Errorf("%s appointment should block a new booking", status)
		}
	}
}

func TestHasTimeConflict(t *testing.T) {
	existing := []models.Appointment{
		appointment("apt-1", "doc-1", "2025-05-01", "09:00", models.StatusAccepted),
	}

	// Identical date and time conflicts with any doctor.
	if !HasTimeConflict(existing, "2025-05-01", "09:00", "") {
		t.Error("identical date+time should conflict")
	}

	if HasTimeConflict(existing, "2025-05-01", "09:30", "") {
		t.Error("different time should not conflict")
	}
	if HasTimeConflict(existing, "2025-05-02", "09:00", "") {
		t.Error("different date should not conflict")
	}
	if HasTimeConflict(existing, "2025-05-01", "09:00", "apt-1") {
		t.Error("reschedule target should be excluded")
	}

	cancelled := []models.Appointment{
		appointment("apt-2", "doc-2", "2025-05-01", "09:00", models.StatusCancelled),
	}
	if HasTimeConflict(cancelled, "2025-05-01", "09:00", "") {
		t.Error("cancelled appointment should not block a new booking")
	}
}
