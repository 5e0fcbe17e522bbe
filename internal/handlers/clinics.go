package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/utils"
)

// ClinicHandler handles clinic directory requests.
type ClinicHandler struct {
	DB *gorm.DB
}

// NewClinicHandler creates a new ClinicHandler.
func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{DB: db}
}

// GetClinics lists all clinic locations. Public endpoint used by the booking
// form and doctor registration.
func (h *ClinicHandler) GetClinics(c *gin.Context) {
	var clinics []models.Clinic
	if err := h.DB.Order("name asc").Find(&clinics).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch clinics: "+err.Error())
		return
	}

	utils.Success(c, "Clinics fetched successfully", clinics)
}

// GetClinicDoctors lists the approved doctors attached to one clinic.
func (h *ClinicHandler) GetClinicDoctors(c *gin.Context) {
	clinicID := c.Param("id")

	var clinic models.Clinic
	if err := h.DB.First(&clinic, "id = ?", clinicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Clinic not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var doctors []models.User
	if err := h.DB.Where("clinic_id = ? AND role = ? AND approved = ?",
		clinicID, models.RoleDoctor, models.ApprovalApproved).Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch clinic doctors: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(doctors))
	for i, d := range doctors {
		sanitized[i] = d.Sanitize()
	}

	utils.Success(c, "Clinic doctors fetched successfully", sanitized)
}
