package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"healthcare-portal-server/internal/config"
	"healthcare-portal-server/internal/handlers"
	"healthcare-portal-server/internal/middleware"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/scheduling"
	"healthcare-portal-server/internal/utils"
	"healthcare-portal-server/pkg/logger"
	"healthcare-portal-server/pkg/metrics"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config,
	booking *scheduling.Service, log logger.Logger, mts *metrics.Metrics) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, log, mts)
	appointmentHandler := handlers.NewAppointmentHandler(db, booking, log)
	scheduleHandler := handlers.NewScheduleHandler(db)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	faqHandler := handlers.NewFAQHandler(db)
	clinicHandler := handlers.NewClinicHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Clinic directory feeds the registration and booking forms
		public.GET("/clinics", clinicHandler.GetClinics)
		public.GET("/clinics/:id/doctors", clinicHandler.GetClinicDoctors)

		// Published FAQ entries; submissions link the user when a token is sent
		public.GET("/faqs", faqHandler.GetAnsweredFAQs)
		public.POST("/faqs", middleware.OptionalAuthMiddleware(cfg), faqHandler.SubmitFAQ)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// User management routes
		userRoutes := private.Group("/users")
		{
			// Approved doctors only; used by the booking form
			userRoutes.GET("/doctors", userHandler.GetDoctors)

			// Patient roster for doctors and admins
			userRoutes.GET("/doctor-patients", userHandler.GetDoctorPatients)

			// Admin-only routes
			adminRoutes := userRoutes.Group("")
			adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
			{
				adminRoutes.POST("", userHandler.CreateUser)
				adminRoutes.GET("", userHandler.GetUsers)
				adminRoutes.GET("/:id", userHandler.GetUserByID)
				adminRoutes.PUT("/:id", userHandler.UpdateUser)
				adminRoutes.PATCH("/:id/approval", userHandler.UpdateUserApproval)
				adminRoutes.DELETE("/:id", userHandler.DeleteUser)
			}
		}

		// Availability windows
		scheduleRoutes := private.Group("/schedules")
		{
			scheduleRoutes.GET("", scheduleHandler.GetSchedules)
			scheduleRoutes.GET("/:id/slots", scheduleHandler.GetScheduleSlots)

			doctorOnly := scheduleRoutes.Group("")
			doctorOnly.Use(middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin))
			{
				doctorOnly.POST("", scheduleHandler.CreateSchedule)
				doctorOnly.PUT("/:id", scheduleHandler.UpdateSchedule)
				doctorOnly.DELETE("/:id", scheduleHandler.DeleteSchedule)
			}
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RolePatient, models.RoleAdmin), appointmentHandler.CreateAppointment)

			// Dry-run booking validation for the booking form
			appointmentRoutes.POST("/validate", appointmentHandler.ValidateBooking)

			// Role-aware listing; logic inside the handler differentiates
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser)

			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/reschedule", appointmentHandler.RescheduleAppointment)
			appointmentRoutes.PATCH("/:id/restore", middleware.RoleAuthMiddleware(models.RoleAdmin), appointmentHandler.RestoreAppointment)
		}

		// Medical Record routes
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor), medicalRecordHandler.CreateMedicalRecord)
			medicalRecordRoutes.GET("/patient/:patientId", medicalRecordHandler.GetMedicalRecordsForPatient)
			medicalRecordRoutes.GET("/:id", medicalRecordHandler.GetMedicalRecordByID)
			medicalRecordRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.UpdateMedicalRecord)
			medicalRecordRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), medicalRecordHandler.DeleteMedicalRecord)

			attachmentRoutes := medicalRecordRoutes.Group("/:id/attachments")
			attachmentRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
			{
				attachmentRoutes.POST("", medicalRecordHandler.UploadMedicalRecordAttachment)
			}

			// Attachment IDs are globally unique, so downloads sit outside the
			// per-record group
			private.GET("/medical-records/attachments/:attachmentId", medicalRecordHandler.GetMedicalRecordAttachment)
		}

		// FAQ moderation (admin)
		faqAdminRoutes := private.Group("/faqs")
		faqAdminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			faqAdminRoutes.GET("/all", faqHandler.GetAllFAQs)
			faqAdminRoutes.PATCH("/:id/answer", faqHandler.AnswerFAQ)
			faqAdminRoutes.DELETE("/:id", faqHandler.DeleteFAQ)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		utils.Success(c, "UP", nil)
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
