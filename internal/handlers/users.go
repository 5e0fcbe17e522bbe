package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/middleware"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/utils"
	"healthcare-portal-server/pkg/logger"
	"healthcare-portal-server/pkg/metrics"
)

// UserHandler handles user-related requests (typically admin operations).
type UserHandler struct {
	DB  *gorm.DB
	Log logger.Logger
	Mts *metrics.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB, log logger.Logger, mts *metrics.Metrics) *UserHandler {
	return &UserHandler{DB: db, Log: log, Mts: mts}
}

// CreateUserRequest represents the request body for creating a user by an admin.
type CreateUserRequest struct {
	FirstName      string `json:"firstName" binding:"required"`
	LastName       string `json:"lastName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"required,oneof=patient doctor admin"`
	Specialization string `json:"specialization"`
	ClinicID       string `json:"clinicId"`
}

// CreateUser handles creating a new user (admin). Admin-created doctors are
// approved immediately.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Role:           models.Role(req.Role),
		Approved:       models.ApprovalApproved,
		Specialization: req.Specialization,
		ClinicID:       req.ClinicID,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.DB.Create(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", user.Sanitize())
}

// GetUsers handles fetching all users (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitized)
}

// GetUserByID handles fetching a single user by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents the request body for updating a user by an admin.
type UpdateUserRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty" binding:"omitempty,oneof=patient doctor admin"`
	Specialization string `json:"specialization"`
	ClinicID       string `json:"clinicId"`
}

// UpdateUser handles updating a user by ID (admin).
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Email != "" && req.Email != user.Email {
		// Check if new email is already taken
		var existingUser models.User
		if err := h.DB.Where("email = ? AND id != ?", req.Email, user.ID).First(&existingUser).Error; err == nil {
			utils.BadRequest(c, "New email is already in use")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.InternalServerError(c, "Database error checking email: "+err.Error())
			return
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		user.Role = models.Role(req.Role)
	}
	if req.Specialization != "" {
		user.Specialization = req.Specialization
	}
	if req.ClinicID != "" {
		user.ClinicID = req.ClinicID
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, "User updated successfully", user.Sanitize())
}

// UpdateApprovalRequest represents the request body for a doctor approval decision.
type UpdateApprovalRequest struct {
	Approved models.ApprovalStatus `json:"approved" binding:"required,oneof=approved rejected"`
}

// UpdateUserApproval approves or rejects a pending doctor account (admin).
func (h *UserHandler) UpdateUserApproval(c *gin.Context) {
	userID := c.Param("id")

	var req UpdateApprovalRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if user.Role != models.RoleDoctor {
		utils.BadRequest(c, "Only doctor accounts require approval")
		return
	}

	user.Approved = req.Approved
	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update approval status: "+err.Error())
		return
	}

	h.Log.Info("doctor approval updated", "doctorId", user.ID, "approved", user.Approved)
	utils.Success(c, "Approval status updated successfully", user.Sanitize())
}

// DeleteUser handles deleting a user by ID (admin), archiving dependent
// records first. The user's appointments are soft-deleted (kept for audit,
// hidden from end-user views); schedules and refresh tokens are removed.
// Archive failures are logged and reported but never rolled back.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	// Cascade: archive appointments where the user is either party
	result := h.DB.Model(&models.Appointment{}).
		Where("patient_id = ? OR doctor_id = ?", userID, userID).
		Update("is_deleted", true)
	if result.Error != nil {
		h.Log.Error("cascade archive failed", "userId", userID, "error", result.Error)
	} else if result.RowsAffected > 0 {
		h.Mts.AppointmentsArchived.Add(float64(result.RowsAffected))
		h.Log.Info("appointments archived", "userId", userID, "count", result.RowsAffected)
	}

	if err := h.DB.Where("doctor_id = ?", userID).Delete(&models.Schedule{}).Error; err != nil {
		h.Log.Error("cascade schedule delete failed", "userId", userID, "error", err)
	}
	if err := h.DB.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
		h.Log.Error("cascade token delete failed", "userId", userID, "error", err)
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete user: "+err.Error())
		return
	}

	h.Log.Info("user deleted", "userId", userID, "role", user.Role)
	utils.Success(c, "User deleted successfully", nil)
}

// GetDoctors handles fetching all approved doctors.
// This endpoint is used by patients when booking appointments.
func (h *UserHandler) GetDoctors(c *gin.Context) {
	var doctors []models.User
	if err := h.DB.Where("role = ? AND approved = ?", models.RoleDoctor, models.ApprovalApproved).
		Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(doctors))
	for i, d := range doctors {
		sanitized[i] = d.Sanitize()
	}

	utils.Success(c, "Doctors fetched successfully", sanitized)
}

// GetDoctorPatients handles fetching all patients.
// This endpoint is accessible to doctors and admins.
func (h *UserHandler) GetDoctorPatients(c *gin.Context) {
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleDoctor && userRole != models.RoleAdmin {
		utils.Forbidden(c, "Only doctors and admins can view patient lists")
		return
	}

	var patients []models.User
	if err := h.DB.Where("role = ?", models.RolePatient).Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(patients))
	for i, p := range patients {
		sanitized[i] = p.Sanitize()
	}

	utils.Success(c, "Patients fetched successfully", sanitized)
}
