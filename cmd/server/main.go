package main

import (
	"github.com/Vivek-the-creator/AuroraVoices/internal/router"
	"github.com/Vivek-the-creator/AuroraVoices/pkg/config"
	"github.com/Vivek-the-creator/AuroraVoices/pkg/logger"
	"github.com/Vivek-the-creator/AuroraVoices/validators"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.Env)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, cfg.MongoDBName)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
