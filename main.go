package main

import (
	"log"

	"instamailer/internal/config"
	"instamailer/internal/generator"
	"instamailer/internal/handler"
	"instamailer/internal/logger"
	"instamailer/internal/mailer"
	"instamailer/internal/repository"
	"instamailer/internal/repository/memory"
	"instamailer/internal/repository/sqlite"
	"instamailer/internal/router"
	"instamailer/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize logger
	appLogger := logger.New()
	appLogger.Info("Email API loaded:", maskedKey(cfg.EmailAPIKey))

	// Initialize repository (sqlite file, or in-memory when no path is set)
	var draftRepo repository.DraftRepository
	if cfg.SQLitePath != "" {
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer db.Close()

		draftRepo = sqlite.NewSQLiteDraftRepository(db)
		appLogger.Info("Using sqlite repository at", cfg.SQLitePath)
	} else {
		draftRepo = memory.NewInMemoryDraftRepository()
		appLogger.Info("Using in-memory repository")
	}

	// Initialize outbound clients
	contentGenerator := generator.NewClient(cfg, appLogger)
	smtpMailer := mailer.NewSMTPMailer(cfg, appLogger)

	// Initialize service
	draftService := service.NewDraftService(draftRepo, contentGenerator, smtpMailer, appLogger)

	// Initialize handlers
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
	}))

	draftHandler := handler.NewDraftHandler(draftService, e.Logger)

	// Setup routes
	router.SetupRoutes(e, draftHandler)

	// Start server
	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
	}
}

// maskedKey keeps logs useful without leaking the credential.
func maskedKey(key string) string {
	if key == "" {
		return "MISSING"
	}
	if len(key) > 10 {
		key = key[:10]
	}
	return key + "..."
}
