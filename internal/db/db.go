package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-ops-backend/config"
	"hotel-ops-backend/internal/model"
)

// Init opens the configured database and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if cfg.SeedRoomTypes {
		if err := SeedRoomTypes(db); err != nil {
			log.Printf("Warning: failed to seed room types: %v", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// newLogger reports slow queries and real errors. Lookups that find nothing
// are normal control flow here and stay silent.
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "mysql":
		return mysql.Open(cfg.DSN), nil
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Migrate creates or updates every table, parents first.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.RoomType{},
		&model.Room{},
		&model.Guest{},
		&model.Booking{},
		&model.MaintenanceTask{},
		&model.RoomServiceOrder{},
		&model.DNDEntry{},
		&model.Notification{},
		&model.ActionLog{},
		&model.WaitlistEntry{},
		&model.PushSubscription{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// SeedRoomTypes inserts the default room types into an empty table.
func SeedRoomTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.RoomType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roomTypes := []model.RoomType{
		{Name: "Single", Description: "Single room", Capacity: 1},
		{Name: "Double", Description: "Double room", Capacity: 2},
		{Name: "Family", Description: "Family room", Capacity: 4},
		{Name: "Suite", Description: "Suite", Capacity: 3},
	}
	if err := db.Create(&roomTypes).Error; err != nil {
		return err
	}
	log.Println("Room types seeded")
	return nil
}
