// database.go - Handles database connection and setup

package database // Declares the package name

import ( // Import required packages
	"fmt" // Error wrapping

	"go-task-backend/models" // KV and account models

	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM
	"gorm.io/gorm/logger"   // Silences GORM's own SQL logging
)

var DB *gorm.DB // Global variable to hold the database connection (pointer to gorm.DB)

func Connect(dbPath string) error { // Connect opens the database and runs migrations
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open returns a migrated connection without touching the global, used by tests.
func Open(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{ // Open SQLite DB
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil { // If error, return it
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	// Auto-migrate the key-value namespace and the credential table (create tables if needed)
	if err := db.AutoMigrate(&models.KVEntry{}, &models.Account{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
