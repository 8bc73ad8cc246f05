package main

import (
	"context"
	"net/http"
	"os"

	"github.com/WorkoutWise/WorkoutWise-backend/internal/api"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/config"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/database"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/handler"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/logger"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/middleware"
	"github.com/WorkoutWise/WorkoutWise-backend/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Apply schema
	if err := database.Migrate(context.Background()); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}

	// Cloudinary (optionnel: uploads désactivés si non configuré)
	cld, err := services.NewCloudinaryService(cfg)
	if err != nil {
		logger.Warning("Cloudinary disabled: %v", err)
	} else {
		handler.SetCloudinaryService(cld)
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
