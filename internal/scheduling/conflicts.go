package scheduling

import (
	"healthcare-portal-server/internal/models"
)

// blocksNewBookings reports whether an existing appointment counts toward
// conflict checks. Cancelled and legacy rejected appointments never block a
// new booking; excludeID exempts the appointment being rescheduled so a
// reschedule cannot conflict with itself.
func blocksNewBookings(a models.Appointment, excludeID string) bool {
	if excludeID != "" && a.ID == excludeID {
		return false
	}
	return a.IsActive()
}

// HasSameDoctorSameDay reports whether the patient already holds an active
// appointment with the given doctor on the given date, at any time.
func HasSameDoctorSameDay(appointments []models.Appointment, doctorID, date, excludeID string) bool {
	for _, a := range appointments {
		if a.DoctorID == doctorID && a.Date == date && blocksNewBookings(a, excludeID) {
			return true
		}
	}
	return false
}

// HasTimeConflict reports whether the patient already holds an active
// appointment at the identical date and time with any doctor.
func HasTimeConflict(appointments []models.Appointment, date, clock, excludeID string) bool {
	for _, a := range appointments {
		if a.Date == date && a.Time == clock && blocksNewBookings(a, excludeID) {
			return true
		}
	}
	return false
}
