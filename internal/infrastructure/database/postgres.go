package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/config"
	"github.com/ShahreerIrfan/vhojonbilash-POS/internal/domain/entity"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/logger"
	"github.com/ShahreerIrfan/vhojonbilash-POS/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Default().Info("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log := logger.Default().WithComponent("migrate")
	log.Info("Running database migrations...")

	err := db.AutoMigrate(
		// Staff
		&entity.User{},

		// Catalog and customers
		&entity.Product{},
		&entity.Customer{},
		&entity.CustomerAddress{},

		// Orders
		&entity.Order{},
		&entity.OrderItem{},
		&entity.Payment{},
		&entity.OrderSequence{},

		// Back office
		&entity.Expense{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// AdminSeed describes the bootstrap admin account.
type AdminSeed struct {
	Username string
	Password string
	Name     string
}

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
func SeedAdmin(ctx context.Context, db *gorm.DB, seed AdminSeed) error {
	if seed.Username == "" || seed.Password == "" {
		return nil
	}

	var existing entity.User
	err := db.WithContext(ctx).Where("username = ?", seed.Username).First(&existing).Error
	if err == nil {
		logger.Info(ctx, "admin user already exists", "username", seed.Username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = "Administrator"
	}
	admin := entity.User{
		Name:     name,
		Username: seed.Username,
		Password: hashed,
		Role:     entity.RoleAdmin,
		IsStaff:  true,
		IsActive: true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info(ctx, "admin user created", "username", seed.Username)
	return nil
}
