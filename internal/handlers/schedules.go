package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/middleware"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/scheduling"
	"healthcare-portal-server/internal/utils"
)

// ScheduleHandler handles doctor availability window requests.
type ScheduleHandler struct {
	DB *gorm.DB
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

// ScheduleRequest represents the request body for creating or updating an
// availability window.
type ScheduleRequest struct {
	DayOfWeek string `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// CreateSchedule adds an availability window for the authenticated doctor.
// Overnight windows (start > end) are legal; start == end is rejected.
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in token")
		return
	}

	window := models.Schedule{
		DoctorID:    doctorID,
		DayOfWeek:   req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: true,
	}
	if err := scheduling.ValidateWindow(window); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Create(&window).Error; err != nil {
		utils.InternalServerError(c, "Failed to create schedule: "+err.Error())
		return
	}

	utils.Created(c, "Availability added successfully", window)
}

// GetSchedules lists availability windows. Patients pass doctorId (and
// optionally dayOfWeek) when booking; a doctor with no doctorId param gets
// their own windows, including ones toggled unavailable.
func (h *ScheduleHandler) GetSchedules(c *gin.Context) {
	doctorID := c.Query("doctorId")
	dayOfWeek := c.Query("dayOfWeek")

	query := h.DB.Order("day_of_week asc, start_time asc")

	if doctorID == "" {
		userID, _ := middleware.GetUserIDFromContext(c)
		userRole, _ := middleware.GetUserRoleFromContext(c)
		if userRole != models.RoleDoctor {
			utils.BadRequest(c, "doctorId query parameter is required")
			return
		}
		doctorID = userID
	} else {
		// Someone else's schedule only shows available windows
		userID, _ := middleware.GetUserIDFromContext(c)
		if userID != doctorID {
			query = query.Where("is_available = ?", true)
		}
	}

	query = query.Where("doctor_id = ?", doctorID)
	if dayOfWeek != "" {
		query = query.Where("day_of_week = ?", dayOfWeek)
	}

	var windows []models.Schedule
	if err := query.Find(&windows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch schedules: "+err.Error())
		return
	}

	utils.Success(c, "Schedules fetched successfully", windows)
}

// GetScheduleSlots expands one availability window into displayable
// 30-minute time slots.
func (h *ScheduleHandler) GetScheduleSlots(c *gin.Context) {
	scheduleID := c.Param("id")

	var window models.Schedule
	if err := h.DB.First(&window, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Slots generated successfully", scheduling.GenerateSlots(window))
}

// UpdateScheduleRequest represents the request body for a partial window update.
type UpdateScheduleRequest struct {
	DayOfWeek   string `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable *bool  `json:"isAvailable"`
}

// UpdateSchedule edits one of the authenticated doctor's windows.
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	scheduleID := c.Param("id")

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	window, ok := h.ownedWindow(c, scheduleID)
	if !ok {
		return
	}

	if req.DayOfWeek != "" {
		window.DayOfWeek = req.DayOfWeek
	}
	if req.StartTime != "" {
		window.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		window.EndTime = req.EndTime
	}
	if req.IsAvailable != nil {
		window.IsAvailable = *req.IsAvailable
	}

	if err := scheduling.ValidateWindow(*window); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Save(window).Error; err != nil {
		utils.InternalServerError(c, "Failed to update schedule: "+err.Error())
		return
	}

	utils.Success(c, "Availability updated successfully", window)
}

// DeleteSchedule removes one of the authenticated doctor's windows.
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	scheduleID := c.Param("id")

	window, ok := h.ownedWindow(c, scheduleID)
	if !ok {
		return
	}

	if err := h.DB.Delete(window).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete schedule: "+err.Error())
		return
	}

	utils.Success(c, "Availability removed successfully", nil)
}

// ownedWindow loads a window and checks it belongs to the authenticated
// doctor (admins may edit any). Responds and returns false on failure.
func (h *ScheduleHandler) ownedWindow(c *gin.Context, scheduleID string) (*models.Schedule, bool) {
	var window models.Schedule
	if err := h.DB.First(&window, "id = ?", scheduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Schedule not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && window.DoctorID != userID {
		utils.Forbidden(c, "You can only manage your own availability.")
		return nil, false
	}
	return &window, true
}
