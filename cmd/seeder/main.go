package main

import (
	"errors"
	"log"

	"github.com/venturescope/venturescope-backend/internal/config"
	"github.com/venturescope/venturescope-backend/internal/database"
	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Seeder bootstraps a fresh environment: the admin account named by
// ADMIN_EMAIL plus a handful of catalog rows. Re-running it is a no-op for
// anything that already exists.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	if err := seedAdmin(db, cfg.Admin.Email); err != nil {
		logrus.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedCatalogs(db); err != nil {
		logrus.Fatalf("Failed to seed catalogs: %v", err)
	}

	logrus.Info("Seeding completed")
}

func seedAdmin(db *gorm.DB, email string) error {
	if email == "" {
		logrus.Warn("ADMIN_EMAIL not set, skipping admin user")
		return nil
	}

	userRepo := repository.NewUserRepository(db)
	user, err := userRepo.GetByEmail(email)
	if err == nil {
		if user.IsAdmin {
			logrus.Infof("Admin user %s already exists", email)
			return nil
		}
		user.IsAdmin = true
		if err := userRepo.Update(user); err != nil {
			return err
		}
		logrus.Infof("Promoted existing user %s to admin", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &models.User{
		Email:            email,
		FullName:         "Administrator",
		IsVerified:       true,
		IsActive:         true,
		IsAdmin:          true,
		UnsubscribeToken: uuid.NewString(),
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	logrus.Infof("Created admin user %s", email)
	return nil
}

func seedCatalogs(db *gorm.DB) error {
	accelerators := []models.Accelerator{
		{
			Name:            "Y Combinator",
			Description:     "Seed accelerator running two batches a year.",
			Website:         "https://www.ycombinator.com",
			Sectors:         "generalist",
			Country:         "United States",
			City:            "San Francisco",
			ProgramDuration: "3 months",
			EquityPercent:   7,
			FundingAmount:   "$500,000",
		},
		{
			Name:            "Techstars",
			Description:     "Mentorship-driven accelerator with city programs worldwide.",
			Website:         "https://www.techstars.com",
			Sectors:         "generalist",
			Country:         "United States",
			City:            "Boulder",
			ProgramDuration: "13 weeks",
			EquityPercent:   6,
			FundingAmount:   "$120,000",
		},
	}
	for i := range accelerators {
		if err := db.Where("name = ?", accelerators[i].Name).
			FirstOrCreate(&accelerators[i]).Error; err != nil {
			return err
		}
	}

	grants := []models.Grant{
		{
			Name:        "Startup India Seed Fund Scheme",
			Description: "Seed funding for DPIIT-recognized startups.",
			Agency:      "DPIIT",
			Country:     "India",
			AmountUSD:   60000,
			Eligibility: "DPIIT-recognized startups incorporated less than 2 years ago",
			ApplyURL:    "https://seedfund.startupindia.gov.in",
		},
	}
	for i := range grants {
		if err := db.Where("name = ?", grants[i].Name).
			FirstOrCreate(&grants[i]).Error; err != nil {
			return err
		}
	}

	vcs := []models.VentureCapital{
		{
			Name:        "Sequoia Capital",
			Description: "Multi-stage venture firm.",
			Website:     "https://www.sequoiacap.com",
			Sectors:     "generalist",
			Stages:      "seed,series_a,growth",
			Country:     "United States",
			City:        "Menlo Park",
		},
	}
	for i := range vcs {
		if err := db.Where("name = ?", vcs[i].Name).
			FirstOrCreate(&vcs[i]).Error; err != nil {
			return err
		}
	}

	logrus.Info("Catalog seed rows ensured")
	return nil
}
