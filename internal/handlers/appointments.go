package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/middleware"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/scheduling"
	"healthcare-portal-server/internal/utils"
	"healthcare-portal-server/pkg/logger"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB      *gorm.DB
	Booking *scheduling.Service
	Log     logger.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, booking *scheduling.Service, log logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Booking: booking, Log: log}
}

// AppointmentView is an appointment as shown to users. Status carries the
// derived view-state: an accepted appointment in the past reads as completed
// without the stored row changing.
type AppointmentView struct {
	models.Appointment
	Status models.AppointmentStatus `json:"status"`
}

func viewOf(a models.Appointment, now time.Time) AppointmentView {
	return AppointmentView{Appointment: a, Status: a.EffectiveStatus(now)}
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	ClinicID string `json:"clinicId" binding:"required"`
	DoctorID string `json:"doctorId" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes"`
}

// CreateAppointment books a new appointment for the authenticated patient.
// The full validation pipeline runs before anything is written.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	// Verify doctor exists and is an approved doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}
	if !doctor.IsBookableDoctor() {
		utils.BadRequest(c, "This doctor is not accepting appointments yet.")
		return
	}

	appointment, err := h.Booking.Book(c.Request.Context(), scheduling.BookingRequest{
		ClinicID:  req.ClinicID,
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		var verr *scheduling.ValidationError
		if errors.As(err, &verr) {
			utils.BadRequest(c, verr.Message)
			return
		}
		h.Log.Error("booking failed", "patientId", patientID, "doctorId", req.DoctorID, "error", err)
		utils.InternalServerError(c, "Failed to book appointment. Please try again.")
		return
	}

	utils.Created(c, "Appointment booked successfully", viewOf(*appointment, time.Now()))
}

// ValidateBookingRequest represents the request body for a dry-run validation.
type ValidateBookingRequest struct {
	ClinicID             string `json:"clinicId"`
	DoctorID             string `json:"doctorId"`
	Date                 string `json:"date"`
	Time                 string `json:"time"`
	ExcludeAppointmentID string `json:"excludeAppointmentId"`
}

// ValidateBooking runs the booking checks without persisting anything, so the
// booking form can reject a slot as soon as it is picked.
func (h *AppointmentHandler) ValidateBooking(c *gin.Context) {
	var req ValidateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	result, err := h.Booking.ValidateBooking(c.Request.Context(), scheduling.BookingRequest{
		ClinicID:             req.ClinicID,
		DoctorID:             req.DoctorID,
		PatientID:            patientID,
		Date:                 req.Date,
		Time:                 req.Time,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to validate booking. Please try again.")
		return
	}

	utils.Success(c, "Validation complete", result)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user.
// Patients and doctors see their own non-archived appointments; admins see
// everything, archived rows included.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	var err error

	query := h.DB.Order("date asc, time asc")

	switch userRole {
	case models.RolePatient:
		err = query.Where("patient_id = ? AND is_deleted = ?", userID, false).Find(&appointments).Error
	case models.RoleDoctor:
		err = query.Where("doctor_id = ? AND is_deleted = ?", userID, false).Find(&appointments).Error
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments. Role: "+string(userRole))
		return
	}

	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	now := time.Now()
	views := make([]AppointmentView, len(appointments))
	for i, a := range appointments {
		views[i] = viewOf(a, now)
	}

	utils.Success(c, "Appointments fetched successfully", views)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by involved patient, doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isInvolved := userID == appointment.PatientID || userID == appointment.DoctorID
	if userRole != models.RoleAdmin && !isInvolved {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}
	// Archived appointments are admin-only
	if appointment.IsDeleted && userRole != models.RoleAdmin {
		utils.NotFound(c, "Appointment not found")
		return
	}

	utils.Success(c, "Appointment fetched successfully", viewOf(appointment, time.Now()))
}

// UpdateAppointmentStatusRequest represents the request body for a status change.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=accepted cancelled completed"`
	Notes  string                   `json:"notes"`
}

// UpdateAppointmentStatus handles status transitions. Doctors accept or cancel
// their pending appointments and cancel accepted ones; patients may only
// cancel their own; admins may set any status, including completed.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND is_deleted = ?", appointmentID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch {
	case userRole == models.RoleAdmin:
		canUpdate = true
	case userRole == models.RoleDoctor && userID == appointment.DoctorID:
		// Doctors move pending to accepted/cancelled and accepted to cancelled.
		if appointment.Status == models.StatusPending &&
			(req.Status == models.StatusAccepted || req.Status == models.StatusCancelled) {
			canUpdate = true
		} else if appointment.Status == models.StatusAccepted && req.Status == models.StatusCancelled {
			canUpdate = true
		}
	case userRole == models.RolePatient && userID == appointment.PatientID:
		if req.Status != models.StatusCancelled {
			utils.Forbidden(c, "Patients can only cancel appointments.")
			return
		}
		if appointment.Status == models.StatusPending || appointment.Status == models.StatusAccepted {
			canUpdate = true
		}
	}

	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to perform this status transition.")
		return
	}

	appointment.Status = req.Status
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	h.Log.Info("appointment status updated",
		"appointmentId", appointment.ID, "status", appointment.Status, "by", userID)
	utils.Success(c, "Appointment status updated successfully", viewOf(appointment, time.Now()))
}

// RescheduleAppointmentRequest represents the request body for rescheduling.
type RescheduleAppointmentRequest struct {
	ClinicID string `json:"clinicId"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	Notes    string `json:"notes"`
}

// RescheduleAppointment moves an existing appointment to a new date/time. The
// same validation pipeline runs, with the target appointment excluded from
// conflict checks so it cannot conflict with itself.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ? AND is_deleted = ?", appointmentID, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canReschedule := false
	switch {
	case userRole == models.RoleAdmin:
		canReschedule = true
	case userRole == models.RoleDoctor && userID == appointment.DoctorID:
		canReschedule = true
	case userRole == models.RolePatient && userID == appointment.PatientID:
		canReschedule = appointment.Status == models.StatusPending || appointment.Status == models.StatusAccepted
	}
	if !canReschedule {
		utils.Forbidden(c, "You are not authorized to reschedule this appointment.")
		return
	}

	clinicID := req.ClinicID
	if clinicID == "" {
		clinicID = appointment.ClinicID
	}
	updated, err := h.Booking.Reschedule(c.Request.Context(), appointmentID, scheduling.BookingRequest{
		ClinicID:  clinicID,
		DoctorID:  appointment.DoctorID,
		PatientID: appointment.PatientID,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
	})
	if err != nil {
		var verr *scheduling.ValidationError
		if errors.As(err, &verr) {
			utils.BadRequest(c, verr.Message)
			return
		}
		if errors.Is(err, scheduling.ErrAppointmentNotFound) {
			utils.NotFound(c, "Appointment not found")
			return
		}
		h.Log.Error("reschedule failed", "appointmentId", appointmentID, "error", err)
		utils.InternalServerError(c, "Failed to reschedule appointment. Please try again.")
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", viewOf(*updated, time.Now()))
}

// RestoreAppointment clears the archive flag on a soft-deleted appointment.
// Admin only; there is no end-user path to this.
func (h *AppointmentHandler) RestoreAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !appointment.IsDeleted {
		utils.BadRequest(c, "Appointment is not archived")
		return
	}

	appointment.IsDeleted = false
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to restore appointment: "+err.Error())
		return
	}

	h.Log.Info("appointment restored", "appointmentId", appointment.ID)
	utils.Success(c, "Appointment restored successfully", viewOf(appointment, time.Now()))
}
