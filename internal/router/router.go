package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Vivek-the-creator/AuroraVoices/internal/handlers"
	"github.com/Vivek-the-creator/AuroraVoices/internal/models"
	"github.com/Vivek-the-creator/AuroraVoices/internal/repositories"
	"github.com/Vivek-the-creator/AuroraVoices/pkg/monitoring"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware and the error shape.
// Every error response is `{"error": "..."}`; unexpected failures keep a
// generic body and go to the log instead.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(monitoring.Middleware())

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := "Internal server error"

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
		} else {
			logrus.WithError(err).WithField("path", c.Path()).Error("Unhandled error")
		}

		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				_ = c.NoContent(code)
			} else {
				_ = c.JSON(code, echo.Map{"error": message})
			}
		}
	}
}

// SetupRoutes wires repositories and handlers and registers all routes.
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, mongoDBName string) {
	// AutoMigrate the PostgreSQL preference models
	if err := pgdb.AutoMigrate(
		&models.SeenPost{},
		&models.UserSetting{},
	); err != nil {
		logrus.Fatalf("Failed to auto migrate models: %v", err)
	}
	logrus.Info("PostgreSQL auto-migrations completed.")

	mongoDB := mgClient.Database(mongoDBName)

	// --- Initialize repositories ---
	userRepo := repositories.NewMongoUserRepository(mgClient, mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)
	preferenceRepo := repositories.NewPostgresPreferenceRepository(pgdb)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		logrus.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		logrus.Fatalf("Failed to create post indexes: %v", err)
	}
	if err := notificationRepo.EnsureIndexes(ctx); err != nil {
		logrus.Fatalf("Failed to create notification indexes: %v", err)
	}
	logrus.Info("MongoDB indexes ensured.")

	// The TTL index handles expiry from here on; sweep anything the index
	// missed while the server was down.
	if err := notificationRepo.DeleteExpired(ctx); err != nil {
		logrus.WithError(err).Warn("Failed to sweep expired notifications at startup")
	}

	notifier := handlers.NewNotifier(notificationRepo)

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(api.Group("/auth"))
	logrus.Info("Auth routes configured.")

	postHandler := handlers.NewPostHandler(postRepo, userRepo, notifier)
	postHandler.RegisterPostRoutes(api)
	logrus.Info("Post routes configured.")

	userHandler := handlers.NewUserHandler(userRepo, notifier)
	userHandler.RegisterUserRoutes(api)
	logrus.Info("User routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	logrus.Info("Notification routes configured.")

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, preferenceRepo)
	feedHandler.RegisterFeedRoutes(api)
	logrus.Info("Feed routes configured.")

	preferenceHandler := handlers.NewPreferenceHandler(preferenceRepo, userRepo)
	preferenceHandler.RegisterPreferenceRoutes(api)
	logrus.Info("Preference routes configured.")

	logrus.Info("All routes configured.")
}
