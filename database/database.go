package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sharath018/event-management-backend/config"
)

var DB *gorm.DB

// Connect opens the Postgres connection and stores the handle in DB
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to database: %v", err))
	}

	DB = db
	log.Println("✅ Database connected")
	return db
}

// MigrateOverlapConstraint installs the exclusion constraint that backs the
// application-level conflict check. AutoMigrate cannot express EXCLUDE
// constraints, so this runs raw SQL after the tables exist.
//
// Two overlapping bookings at the same location and date can only both commit
// if the application check races; this constraint makes the second insert fail
// regardless of how the race goes.
func MigrateOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist;`).Error; err != nil {
		return fmt.Errorf("failed to create btree_gist extension: %v", err)
	}

	var count int64
	err := db.Raw(`
		SELECT COUNT(*)
		FROM pg_constraint
		WHERE conname = 'events_no_overlap'
	`).Scan(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check for events_no_overlap constraint: %v", err)
	}

	if count > 0 {
		log.Println("✅ events_no_overlap constraint already exists")
		return nil
	}

	log.Println("🔄 Adding events_no_overlap exclusion constraint...")
	sql := `
		ALTER TABLE events ADD CONSTRAINT events_no_overlap
		EXCLUDE USING gist (
			location WITH =,
			date WITH =,
			int4range(start_minute, end_minute) WITH &&
		) WHERE (NOT is_deleted);`

	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to add events_no_overlap constraint: %v", err)
	}

	log.Println("✅ events_no_overlap constraint added")
	return nil
}
