package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/venturescope/venturescope-backend/docs"
	"github.com/venturescope/venturescope-backend/internal/config"
	"github.com/venturescope/venturescope-backend/internal/database"
	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/mailer"
	"github.com/venturescope/venturescope-backend/internal/router"
	"github.com/venturescope/venturescope-backend/internal/services"
	"github.com/venturescope/venturescope-backend/internal/services/auth"
	"github.com/venturescope/venturescope-backend/internal/utils"
	"github.com/venturescope/venturescope-backend/internal/whatsapp"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title VentureScope Backend API
// @version 1.0
// @description Startup funding discovery platform: funding entity catalogs, email and WhatsApp campaigns

// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by your JWT token (e.g. "Bearer <token>")

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	docs.SwaggerInfo.BasePath = cfg.Server.BasePath

	configureLogging(cfg.Server.LogLevel)

	utils.InitSentry()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Campaigns left in sending by a previous process have no live dispatch
	// loop, so they are failed before the API starts accepting triggers.
	if err := services.SweepStuckCampaigns(
		repository.NewNewsletterRepository(db),
		repository.NewBroadcastRepository(db),
	); err != nil {
		logrus.Fatalf("Failed to sweep stuck campaigns: %v", err)
	}

	// Provider adapters
	mailClient := mailer.New(mailer.Config{
		BaseURL:     cfg.Mailer.BaseURL,
		APIKey:      cfg.Mailer.APIKey,
		FromAddress: cfg.Mailer.FromAddress,
		FromName:    cfg.Mailer.FromName,
	})
	whatsappClient := whatsapp.New(whatsapp.Config{
		BaseURL:       cfg.WhatsApp.BaseURL,
		AccessToken:   cfg.WhatsApp.AccessToken,
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		CountryCode:   cfg.WhatsApp.CountryCode,
	})

	tokenCleanupService := auth.NewTokenCleanupService(db)
	tokenCleanupService.Start()
	defer tokenCleanupService.Stop()

	r := router.SetupRouter(db, cfg, mailClient, whatsappClient)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Server.Port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", cfg.Server.Port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
