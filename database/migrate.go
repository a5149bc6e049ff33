package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"masseurmatch_backend/internal/config"
	"masseurmatch_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm opens GORM with the DSN from the configuration.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model and seeds the plan table.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to enable uuid-ossp: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.MediaAsset{},
		&models.ProfileRate{},
		&models.PlanDefinition{},
		&models.Subscription{},
		&models.PaymentEvent{},
	); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return seedPlans(db)
}

// seedPlans inserts the tier table on first boot. Existing rows are left
// alone so price changes stay a deliberate operation.
func seedPlans(db *gorm.DB) error {
	limits := models.DefaultPlanLimits()

	plans := []models.PlanDefinition{
		{Plan: models.PlanFree, Name: "Free", PriceCents: 0, Interval: "monthly"},
		{Plan: models.PlanStandard, Name: "Standard", PriceCents: 2900, Interval: "monthly"},
		{Plan: models.PlanPro, Name: "Pro", PriceCents: 5900, Interval: "monthly"},
		{Plan: models.PlanElite, Name: "Elite", PriceCents: 9900, Interval: "monthly"},
	}

	for i := range plans {
		raw, err := json.Marshal(map[string]int{
			"photos": limits.PhotoLimit(plans[i].Plan),
			"videos": limits.VideoLimit(plans[i].Plan),
		})
		if err != nil {
			return err
		}
		plans[i].Limits = datatypes.JSON(raw)
		plans[i].Currency = "USD"
		plans[i].IsActive = true

		var existing models.PlanDefinition
		err = db.Where("plan = ?", plans[i].Plan).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&plans[i]).Error; err != nil {
			return fmt.Errorf("failed to seed plan %s: %w", plans[i].Plan, err)
		}
	}
	return nil
}
