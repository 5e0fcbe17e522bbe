package scheduling

import (
	"context"
	"errors"
	"fmt"

	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/pkg/logger"
	"healthcare-portal-server/pkg/metrics"
)

// ErrAppointmentNotFound is returned when a reschedule targets an unknown or
// archived appointment.
var ErrAppointmentNotFound = errors.New("appointment not found")

// Rejection codes, used as metric labels and for programmatic checks.
const (
	CodeMissingField      = "missing_field"
	CodeBadDate           = "bad_date"
	CodeBadTime           = "bad_time"
	CodeNoAvailability    = "no_availability"
	CodeOutsideHours      = "outside_hours"
	CodeSameDoctorSameDay = "same_doctor_same_day"
	CodeTimeConflict      = "time_conflict"
)

// ValidationError is a recoverable booking rejection. Message is the exact
// text shown to the user on the booking form.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func rejected(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// Store is the persistence surface the booking service depends on.
// WindowsFor returns only windows with isAvailable = true;
// PatientAppointments returns only non-archived (isDeleted = false) rows.
type Store interface {
	WindowsFor(ctx context.Context, doctorID, dayOfWeek string) ([]models.Schedule, error)
	PatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	SaveAppointment(ctx context.Context, a *models.Appointment) error
}

// BookingRequest carries the booking form fields through validation.
// ExcludeAppointmentID names the appointment being rescheduled, if any, so
// conflict checks skip it.
type BookingRequest struct {
	ClinicID             string
	DoctorID             string
	PatientID            string
	Date                 string
	Time                 string
	Notes                string
	ExcludeAppointmentID string
}

// Result is the outcome of a standalone booking validation. Reason is set
// only when OK is false.
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Service validates and persists bookings. Validation runs each check in a
// fixed order and stops at the first failure; nothing is written before every
// check passes.
type Service struct {
	store Store
	log   logger.Logger
	mts   *metrics.Metrics
}

// NewService creates a booking service. Logger and metrics may be nil.
func NewService(store Store, log logger.Logger, mts *metrics.Metrics) *Service {
	return &Service{store: store, log: log, mts: mts}
}

// ValidateBooking runs the validation pipeline without persisting anything.
// A rejection comes back as Result{OK: false}; an error means a check could
// not be performed at all.
func (s *Service) ValidateBooking(ctx context.Context, req BookingRequest) (Result, error) {
	err := s.validate(ctx, req)
	if err == nil {
		return Result{OK: true}, nil
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return Result{OK: false, Reason: verr.Message}, nil
	}
	return Result{}, err
}

// Book validates the request and persists a new pending appointment.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	req.ExcludeAppointmentID = ""
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		ClinicID:  req.ClinicID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
		Status:    models.StatusPending,
		IsDeleted: false,
	}
	if err := s.store.CreateAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.Info("appointment booked",
			"appointmentId", appointment.ID,
			"patientId", appointment.PatientID,
			"doctorId", appointment.DoctorID,
			"date", appointment.Date,
			"time", appointment.Time,
		)
	}
	if s.mts != nil {
		s.mts.BookingsCreated.Inc()
	}
	return appointment, nil
}

// Reschedule validates the request with the target appointment excluded from
// conflict checks, then updates the existing record in place. The appointment
// returns to pending for the doctor to re-confirm.
func (s *Service) Reschedule(ctx context.Context, appointmentID string, req BookingRequest) (*models.Appointment, error) {
	appointment, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	req.ExcludeAppointmentID = appointmentID
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	appointment.Date = req.Date
	appointment.Time = req.Time
	appointment.Notes = req.Notes
	appointment.Status = models.StatusPending
	if req.ClinicID != "" {
		appointment.ClinicID = req.ClinicID
	}
	if err := s.store.SaveAppointment(ctx, appointment); err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.Info("appointment rescheduled",
			"appointmentId", appointment.ID,
			"date", appointment.Date,
			"time", appointment.Time,
		)
	}
	if s.mts != nil {
		s.mts.BookingsRescheduled.Inc()
	}
	return appointment, nil
}

// validate runs the pipeline: required fields, doctor availability,
// same-doctor-same-day, then cross-doctor time conflict.
func (s *Service) validate(ctx context.Context, req BookingRequest) error {
	if err := s.check(ctx, req); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) && s.mts != nil {
			s.mts.BookingsRejected.WithLabelValues(verr.Code).Inc()
		}
		return err
	}
	return nil
}

func (s *Service) check(ctx context.Context, req BookingRequest) error {
	switch {
	case req.ClinicID == "":
		return rejected(CodeMissingField, "Please select a clinic")
	case req.DoctorID == "":
		return rejected(CodeMissingField, "Please select a doctor")
	case req.Date == "":
		return rejected(CodeMissingField, "Please select an appointment date")
	case req.Time == "":
		return rejected(CodeMissingField, "Please select an appointment time")
	case req.PatientID == "":
		return rejected(CodeMissingField, "Patient is required")
	}

	weekday, err := WeekdayOf(req.Date)
	if err != nil {
		return rejected(CodeBadDate, "Invalid appointment date. Please use YYYY-MM-DD.")
	}
	if _, _, err := ParseClock(req.Time); err != nil {
		return rejected(CodeBadTime, "Invalid appointment time. Please use HH:MM.")
	}

	windows, err := s.store.WindowsFor(ctx, req.DoctorID, weekday)
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		return rejected(CodeNoAvailability,
			fmt.Sprintf("Doctor is not available on %ss. Please select another date.", weekday))
	}
	if !WindowsContain(windows, req.Time) {
		return rejected(CodeOutsideHours,
			"The selected time is not within the doctor's available hours. Please choose another time.")
	}

	appointments, err := s.store.PatientAppointments(ctx, req.PatientID)
	if err != nil {
		return err
	}
	if HasSameDoctorSameDay(appointments, req.DoctorID, req.Date, req.ExcludeAppointmentID) {
		return rejected(CodeSameDoctorSameDay,
			"You already have an appointment with this doctor on this date. Please choose a different date.")
	}
	if HasTimeConflict(appointments, req.Date, req.Time, req.ExcludeAppointmentID) {
		return rejected(CodeTimeConflict,
			"You already have an appointment at this time with another doctor. Please choose a different time.")
	}
	return nil
}
