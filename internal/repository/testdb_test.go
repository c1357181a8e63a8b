package repository

import (
	"testing"

	"jobsy/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a fresh in-memory database per test. A single connection
// keeps every query on the same sqlite instance.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Employer{},
		&models.Listing{},
		&models.Application{},
		&models.SavedJob{},
		&models.CVAccessLog{},
		&models.EmployerNotification{},
		&models.CandidateNotification{},
		&models.PricingPackage{},
	))
	return db
}
