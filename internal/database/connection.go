// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/souqhub/souq-backend/internal/config"
	"github.com/souqhub/souq-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config
	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	} else {
		gormConfig = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Info),
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations")

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Listing{},
		&models.ListingImage{},
		&models.Favorite{},
		&models.PromotionOrder{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",
		"CREATE INDEX IF NOT EXISTS idx_users_type_status ON users(user_type, status)",

		// Listing indexes
		"CREATE INDEX IF NOT EXISTS idx_listings_owner ON listings(owner_id)",
		"CREATE INDEX IF NOT EXISTS idx_listings_category_status ON listings(category_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_listings_region_city ON listings(region, city)",
		"CREATE INDEX IF NOT EXISTS idx_listings_price ON listings(price)",
		"CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_listings_flags ON listings(is_featured, is_urgent)",

		// Favorite indexes
		"CREATE INDEX IF NOT EXISTS idx_favorites_listing ON favorites(listing_id)",

		// Promotion indexes
		"CREATE INDEX IF NOT EXISTS idx_promotion_orders_buyer ON promotion_orders(buyer_id, status)",

		// Audit indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_user_action ON audit_logs(user_id, action)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs(created_at DESC)",

		// Full-text search over title and description
		"CREATE INDEX IF NOT EXISTS idx_listings_search ON listings USING GIN(to_tsvector('simple', title || ' ' || description))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", index)
		}
	}

	return nil
}

// SeedInitialData provisions the admin account and the default category
// tree on an empty database. Running it twice is a no-op.
func SeedInitialData(db *gorm.DB) error {
	logrus.Info("Seeding initial data")

	var adminCount int64
	db.Model(&models.User{}).Where("user_type = ?", models.UserTypeAdmin).Count(&adminCount)

	if adminCount == 0 {
		admin := &models.User{
			Username: "admin",
			Email:    "admin@souqhub.ps",
			UserType: models.UserTypeAdmin,
			Status:   models.UserStatusActive,
			City:     "Ramallah",
			Region:   models.RegionRamallah,
		}
		if err := admin.SetPassword("Souq123!Admin"); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logrus.Info("Default admin user created")
	}

	var categoryCount int64
	db.Model(&models.Category{}).Count(&categoryCount)

	if categoryCount == 0 {
		categories := []models.Category{
			{Slug: "electronics", NameAr: "إلكترونيات", NameEn: "Electronics", Icon: "laptop", Color: "#2563eb", SortOrder: 1, IsActive: true},
			{Slug: "vehicles", NameAr: "مركبات", NameEn: "Vehicles", Icon: "car", Color: "#dc2626", SortOrder: 2, IsActive: true},
			{Slug: "real-estate", NameAr: "عقارات", NameEn: "Real Estate", Icon: "home", Color: "#16a34a", SortOrder: 3, IsActive: true},
			{Slug: "furniture", NameAr: "أثاث", NameEn: "Furniture", Icon: "armchair", Color: "#d97706", SortOrder: 4, IsActive: true},
			{Slug: "fashion", NameAr: "أزياء", NameEn: "Fashion", Icon: "shirt", Color: "#db2777", SortOrder: 5, IsActive: true},
			{Slug: "jobs", NameAr: "وظائف", NameEn: "Jobs", Icon: "briefcase", Color: "#7c3aed", SortOrder: 6, IsActive: true},
			{Slug: "services", NameAr: "خدمات", NameEn: "Services", Icon: "wrench", Color: "#0891b2", SortOrder: 7, IsActive: true},
			{Slug: "other", NameAr: "أخرى", NameEn: "Other", Icon: "box", Color: "#64748b", SortOrder: 99, IsActive: true},
		}
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		logrus.Info("Default categories created")
	}

	return nil
}
