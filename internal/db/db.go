package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pipecrm/internal/config"
	"pipecrm/internal/models"
	console "pipecrm/internal/utils/logger"
)

var (
	DB  *gorm.DB
	log = console.New("db")
)

// Connect opens the Postgres connection, tunes the pool and migrates the CRM
// schema. It retries a few times so the service can come up before the
// database finishes booting.
func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	const maxRetries = 5
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger:                                   logger.Default.LogMode(logger.Warn),
			DisableForeignKeyConstraintWhenMigrating: true,
			PrepareStmt:                              true,
		})
		if err == nil {
			break
		}
		log.Warn("failed to connect to database (attempt %d/%d): %v", attempt, maxRetries, err)
		time.Sleep(5 * time.Second)
	}
	if err != nil {
		return log.Error("could not connect to database after %d attempts", err, maxRetries)
	}
	log.Success("connected to database %s", cfg.Database.Name)

	sqlDB, err := DB.DB()
	if err != nil {
		return log.Error("failed to get underlying *sql.DB", err)
	}
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := migrate(); err != nil {
		return log.Error("failed to run migrations", err)
	}
	log.Success("migrations completed")
	return nil
}

func migrate() error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.AutoMigrate(
		// Tables without foreign keys first.
		&models.Role{},
		&models.Profile{},
		&models.Company{},

		// Then everything referencing them.
		&models.Lead{},
		&models.Contact{},
		&models.Deal{},
		&models.Task{},
		&models.Campaign{},
		&models.Attachment{},
	); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return DB
}
