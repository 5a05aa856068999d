// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/winston-coffee/ordering-backend/internal/config"
	"github.com/winston-coffee/ordering-backend/internal/domain/menu"
	"github.com/winston-coffee/ordering-backend/internal/domain/order"
	"github.com/winston-coffee/ordering-backend/internal/domain/staff"
	"github.com/winston-coffee/ordering-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	models := []interface{}{
		&menu.MenuItem{},
		&order.Order{},
		&order.Item{},
		&staff.Staff{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// SeedInitialData seeds the development database with a sample menu and a
// default cashier account. Idempotent: existing rows are left alone.
func (m *Migration) SeedInitialData(cfg *config.Config) error {
	var menuCount int64
	m.db.Model(&menu.MenuItem{}).Count(&menuCount)

	if menuCount == 0 {
		log.Println("🌱 Seeding sample menu...")
		items := []menu.MenuItem{
			{
				Name: "Americano", Category: "Coffee", Price: 18000,
				HasHot: true, PriceHot: 18000,
				HasIceLarge: true, PriceIceLarge: 23000,
				HasIceRegular: true, PriceIceRegular: 20000,
				IsActive: true,
			},
			{
				Name: "Caffe Latte", Category: "Coffee", Price: 25000,
				HasHot: true, PriceHot: 25000,
				HasIceLarge: true, PriceIceLarge: 30000,
				HasIceRegular: true, PriceIceRegular: 27000,
				IsActive: true,
			},
			{
				Name: "Matcha Latte", Category: "Non-Coffee", Price: 28000,
				HasIceLarge: true, PriceIceLarge: 32000,
				HasIceRegular: true, PriceIceRegular: 28000,
				IsActive: true,
			},
			{
				Name: "Butter Croissant", Category: "Pastry", Price: 22000,
				IsActive: true,
			},
		}
		if err := m.db.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to seed menu: %w", err)
		}
	}

	var staffCount int64
	m.db.Model(&staff.Staff{}).Count(&staffCount)

	if staffCount == 0 {
		log.Println("🌱 Seeding default cashier account...")
		passwords := auth.NewPasswordManager(cfg)
		hash, err := passwords.HashPassword("ChangeMe123!")
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		account := staff.Staff{
			Username:     "cashier",
			PasswordHash: hash,
			Role:         staff.RoleCashier,
			IsActive:     true,
		}
		if err := m.db.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to seed staff account: %w", err)
		}
	}

	return nil
}
