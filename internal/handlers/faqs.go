package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/middleware"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/utils"
)

// FAQHandler handles FAQ page requests.
type FAQHandler struct {
	DB *gorm.DB
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(db *gorm.DB) *FAQHandler {
	return &FAQHandler{DB: db}
}

// GetAnsweredFAQs lists published questions and answers. Public endpoint.
func (h *FAQHandler) GetAnsweredFAQs(c *gin.Context) {
	query := h.DB.Where("status = ?", models.FAQStatusAnswered).Order("category asc, created_at asc")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var faqs []models.FAQ
	if err := query.Find(&faqs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch FAQs: "+err.Error())
		return
	}

	utils.Success(c, "FAQs fetched successfully", faqs)
}

// SubmitFAQRequest represents the request body for submitting a question.
type SubmitFAQRequest struct {
	Category string `json:"category"`
	Question string `json:"question" binding:"required"`
}

// SubmitFAQ accepts a question from a visitor. Authentication is optional;
// logged-in submitters are linked to the question.
func (h *FAQHandler) SubmitFAQ(c *gin.Context) {
	var req SubmitFAQRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	faq := models.FAQ{
		Question: req.Question,
		Status:   models.FAQStatusPending,
	}
	if req.Category != "" {
		faq.Category = req.Category
	}
	if userID, exists := middleware.GetUserIDFromContext(c); exists {
		faq.UserID = userID
	}

	if err := h.DB.Create(&faq).Error; err != nil {
		utils.InternalServerError(c, "Failed to submit question: "+err.Error())
		return
	}

	utils.Created(c, "Question submitted successfully", faq)
}

// GetAllFAQs lists every submission, pending included (admin).
func (h *FAQHandler) GetAllFAQs(c *gin.Context) {
	var faqs []models.FAQ
	if err := h.DB.Order("created_at desc").Find(&faqs).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch FAQs: "+err.Error())
		return
	}

	utils.Success(c, "FAQs fetched successfully", faqs)
}

// AnswerFAQRequest represents the request body for answering a question.
type AnswerFAQRequest struct {
	Answer   string `json:"answer" binding:"required"`
	Category string `json:"category"`
}

// AnswerFAQ records an answer and publishes the question (admin).
func (h *FAQHandler) AnswerFAQ(c *gin.Context) {
	faqID := c.Param("id")

	var req AnswerFAQRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var faq models.FAQ
	if err := h.DB.First(&faq, "id = ?", faqID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Question not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	faq.Answer = req.Answer
	faq.Status = models.FAQStatusAnswered
	if req.Category != "" {
		faq.Category = req.Category
	}

	if err := h.DB.Save(&faq).Error; err != nil {
		utils.InternalServerError(c, "Failed to save answer: "+err.Error())
		return
	}

	utils.Success(c, "Question answered successfully", faq)
}

// DeleteFAQ removes a submission (admin).
func (h *FAQHandler) DeleteFAQ(c *gin.Context) {
	faqID := c.Param("id")

	result := h.DB.Delete(&models.FAQ{}, "id = ?", faqID)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to delete question: "+result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Question not found")
		return
	}

	utils.Success(c, "Question deleted successfully", nil)
}
