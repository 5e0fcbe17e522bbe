package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/middleware"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/utils"
)

// MedicalRecordHandler handles medical record related requests.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// CreateMedicalRecordRequest represents the request body for creating a medical record.
type CreateMedicalRecordRequest struct {
	PatientID   string                   `json:"patientId" binding:"required"`
	RecordType  models.MedicalRecordType `json:"type" binding:"required,oneof=diagnosis prescription lab-result vaccination note"`
	RecordDate  string                   `json:"date"`
	Title       string                   `json:"title" binding:"required"`
	Description string                   `json:"description"`
}

// CreateMedicalRecord handles creating a new medical record.
// Only accessible by doctors.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in token")
		return
	}

	// Verify patient exists
	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", req.PatientID, models.RolePatient).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	recordDate := req.RecordDate
	if recordDate == "" {
		recordDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", recordDate); err != nil {
		utils.BadRequest(c, "Invalid date format. Please use YYYY-MM-DD")
		return
	}

	record := models.MedicalRecord{
		PatientID:   req.PatientID,
		DoctorID:    doctorID,
		RecordType:  req.RecordType,
		RecordDate:  recordDate,
		Title:       req.Title,
		Description: req.Description,
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecordsForPatient handles fetching medical records for a specific patient.
// Accessible by the patient themselves, doctors, and admins.
func (h *MedicalRecordHandler) GetMedicalRecordsForPatient(c *gin.Context) {
	patientID := c.Param("patientId")

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	if userRole == models.RolePatient && userID != patientID {
		utils.Forbidden(c, "You are not authorized to view these medical records")
		return
	}

	var records []models.MedicalRecord
	if err := h.DB.Preload("Attachments").Where("patient_id = ?", patientID).
		Order("record_date desc, created_at desc").Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// GetMedicalRecordByID handles fetching a single medical record by its ID.
// Accessible by the patient (if it's theirs), doctors, and admins.
func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	recordID := c.Param("id")

	var record models.MedicalRecord
	if err := h.DB.Preload("Attachments").First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && userID != record.PatientID {
		utils.Forbidden(c, "You are not authorized to view this medical record")
		return
	}

	utils.Success(c, "Medical record fetched successfully", record)
}

// UpdateMedicalRecordRequest represents the request body for updating a medical record.
type UpdateMedicalRecordRequest struct {
	RecordType  models.MedicalRecordType `json:"type" binding:"omitempty,oneof=diagnosis prescription lab-result vaccination note"`
	RecordDate  string                   `json:"date"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
}

// UpdateMedicalRecord handles updating an existing medical record.
// Only accessible by the doctor who created it or an admin.
func (h *MedicalRecordHandler) UpdateMedicalRecord(c *gin.Context) {
	recordID := c.Param("id")

	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	record, ok := h.ownedRecord(c, recordID)
	if !ok {
		return
	}

	if req.RecordType != "" {
		record.RecordType = req.RecordType
	}
	if req.RecordDate != "" {
		if _, err := time.Parse("2006-01-02", req.RecordDate); err != nil {
			utils.BadRequest(c, "Invalid date format. Please use YYYY-MM-DD")
			return
		}
		record.RecordDate = req.RecordDate
	}
	if req.Title != "" {
		record.Title = req.Title
	}
	if req.Description != "" {
		record.Description = req.Description
	}

	if err := h.DB.Save(record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update medical record: "+err.Error())
		return
	}

	utils.Success(c, "Medical record updated successfully", record)
}

// DeleteMedicalRecord handles deleting a medical record and its attachments.
// Only accessible by the doctor who created it or an admin.
func (h *MedicalRecordHandler) DeleteMedicalRecord(c *gin.Context) {
	recordID := c.Param("id")

	record, ok := h.ownedRecord(c, recordID)
	if !ok {
		return
	}

	if err := h.DB.Where("medical_record_id = ?", record.ID).
		Delete(&models.MedicalRecordAttachment{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete record attachments: "+err.Error())
		return
	}
	if err := h.DB.Delete(record).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete medical record: "+err.Error())
		return
	}

	utils.Success(c, "Medical record deleted successfully", nil)
}

// UploadMedicalRecordAttachment handles uploading attachment files for a specific
// medical record. The file is stored as binary data in the database.
// Only accessible by doctors.
func (h *MedicalRecordHandler) UploadMedicalRecordAttachment(c *gin.Context) {
	recordID := c.Param("id")

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error verifying medical record: "+err.Error())
		}
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "Error retrieving file from form: "+err.Error())
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Error reading file content: "+err.Error())
		return
	}

	attachment := models.MedicalRecordAttachment{
		MedicalRecordID: record.ID,
		FileName:        header.Filename,
		FileType:        header.Header.Get("Content-Type"),
		FileData:        fileData,
	}

	if err := h.DB.Create(&attachment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record attachment entry: "+err.Error())
		return
	}

	// Respond without the raw file bytes
	responseAttachment := struct {
		ID              string    `json:"id"`
		MedicalRecordID string    `json:"medicalRecordId"`
		FileName        string    `json:"fileName"`
		FileType        string    `json:"fileType"`
		CreatedAt       time.Time `json:"createdAt"`
	}{
		ID:              attachment.ID,
		MedicalRecordID: attachment.MedicalRecordID,
		FileName:        attachment.FileName,
		FileType:        attachment.FileType,
		CreatedAt:       attachment.CreatedAt,
	}

	utils.Success(c, "File uploaded and linked to medical record successfully", responseAttachment)
}

// GetMedicalRecordAttachment serves the file data for one attachment.
// The patient who owns the parent record, doctors, and admins may download.
func (h *MedicalRecordHandler) GetMedicalRecordAttachment(c *gin.Context) {
	attachmentID := c.Param("attachmentId")

	var attachment models.MedicalRecordAttachment
	if err := h.DB.First(&attachment, "id = ?", attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Attachment not found")
		} else {
			utils.InternalServerError(c, "Database error fetching attachment: "+err.Error())
		}
		return
	}

	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", attachment.MedicalRecordID).Error; err != nil {
		utils.InternalServerError(c, "Could not fetch parent medical record for authorization check.")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && userID != record.PatientID {
		utils.Forbidden(c, "You are not authorized to view this attachment.")
		return
	}

	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	c.Data(http.StatusOK, attachment.FileType, attachment.FileData)
}

// ownedRecord loads a record and checks the requester is the authoring doctor
// or an admin. Responds and returns false on failure.
func (h *MedicalRecordHandler) ownedRecord(c *gin.Context, recordID string) (*models.MedicalRecord, bool) {
	var record models.MedicalRecord
	if err := h.DB.First(&record, "id = ?", recordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole != models.RoleAdmin && record.DoctorID != userID {
		utils.Forbidden(c, "You are not authorized to modify this medical record")
		return nil, false
	}
	return &record, true
}
