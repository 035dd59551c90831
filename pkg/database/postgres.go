package database

import (
	"log"
	"time"

	"github.com/hoteldesk/frontdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Customer{},
		&models.Booking{},
		&models.Service{},
		&models.ServiceOption{},
		&models.Promotion{},
		&models.Order{},
		&models.OrderLine{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Exclusion constraint: the database-level backstop against two active
	// bookings holding overlapping [checkin, checkout) ranges on one room,
	// no matter which process wrote them.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT bookings_no_overlap
		EXCLUDE USING gist (
			room_id WITH =,
			daterange(checkin::date, checkout::date) WITH &&
		)
		WHERE (status IN ('reserved', 'checked_in'))
	`)

	return db
}
