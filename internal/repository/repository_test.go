package repository

import (
	"testing"

	"shareit/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ItemRequest{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestItem(t *testing.T, db *gorm.DB, ownerID uint, name string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: name + " description", Available: available, OwnerID: ownerID}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}
