package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"healthcare-portal-server/internal/config"
	"healthcare-portal-server/internal/models"
	"healthcare-portal-server/internal/routes"
	"healthcare-portal-server/internal/scheduling"
	"healthcare-portal-server/pkg/logger"
	"healthcare-portal-server/pkg/metrics"
)

func main() {
	// .env is optional outside development
	_ = godotenv.Load()

	log := logger.NewLogger()
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}

	mts := metrics.NewMetrics(cfg.MetricsNamespace)
	booking := scheduling.NewService(scheduling.NewGormStore(db), log, mts)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, db, cfg, booking, log, mts)

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
	if err := router.Run(serverAddr); err != nil {
		log.Fatal("server exited", "error", err)
	}
}
