package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusAccepted  AppointmentStatus = "accepted"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"

	// StatusRejected is a legacy value some stored rows may still carry.
	// It is treated as a synonym of cancelled and never written by this server.
	StatusRejected AppointmentStatus = "rejected"
)

// Appointment represents a scheduled medical appointment.
// Date and Time are kept as the calendar date ("2006-01-02") and wall-clock
// time ("15:04") the patient booked, independent of server time zone.
type Appointment struct {
	BaseModel
	PatientID string            `gorm:"size:36;index" json:"patientId"`
	DoctorID  string            `gorm:"size:36;index" json:"doctorId"`
	ClinicID  string            `gorm:"size:36" json:"clinicId"`
	Date      string            `gorm:"size:10;index" json:"date"`
	Time      string            `gorm:"size:5" json:"time"`
	Status    AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes"`
	IsDeleted bool              `gorm:"default:false;index" json:"isDeleted"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}

// IsActive reports whether the appointment blocks new bookings.
// Cancelled and legacy rejected appointments never do.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusRejected
}

// EffectiveStatus derives the status shown to users. An accepted appointment
// whose date and time have passed reads as completed without being rewritten;
// an admin may still store completed explicitly.
func (a *Appointment) EffectiveStatus(now time.Time) AppointmentStatus {
	if a.Status != StatusAccepted {
		return a.Status
	}
	at, err := time.ParseInLocation("2006-01-02 15:04", a.Date+" "+a.Time, now.Location())
	if err != nil {
		return a.Status
	}
	if at.Before(now) {
		return StatusCompleted
	}
	return a.Status
}
