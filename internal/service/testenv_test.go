package service

import (
	"testing"

	"jobsy/internal/mailer"
	"jobsy/internal/models"
	"jobsy/internal/repository"
	"jobsy/internal/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// env wires the full service stack over a fresh in-memory database.
type env struct {
	db            *gorm.DB
	listings      *repository.ListingRepository
	employers     *repository.EmployerRepository
	users         *repository.UserRepository
	notifications *repository.NotificationRepository
	applications  *repository.ApplicationRepository

	notifier     *NotificationService
	entitlements *EntitlementService
	lifecycle    *LifecycleService
	appSvc       *ApplicationService
	sweep        *SweepService
}

func newEnv(t *testing.T) *env {
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
	))

	e := &env{
		db:            db,
		listings:      repository.NewListingRepository(db),
		employers:     repository.NewEmployerRepository(db),
		users:         repository.NewUserRepository(db),
		notifications: repository.NewNotificationRepository(db),
		applications:  repository.NewApplicationRepository(db),
	}
	e.notifier = NewNotificationService(e.notifications, e.employers, e.users, ws.NewHub(), mailer.Noop{})
	e.entitlements = NewEntitlementService(e.employers, e.listings)
	e.lifecycle = NewLifecycleService(e.listings, e.employers, e.notifier, e.entitlements)
	e.appSvc = NewApplicationService(e.listings, e.applications, e.employers, e.notifier)
	e.sweep = NewSweepService(e.listings, e.lifecycle, e.entitlements, 2)
	return e
}

func (e *env) seedEmployer(t *testing.T, username string) *models.Employer {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: "EMPLOYER"}
	require.NoError(t, e.db.Create(u).Error)
	emp := &models.Employer{UserID: u.ID, CompanyName: "Acme"}
	require.NoError(t, e.db.Create(emp).Error)
	return emp
}

func (e *env) seedCandidate(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: "CANDIDATE"}
	require.NoError(t, e.db.Create(u).Error)
	return u
}

func (e *env) newListing(t *testing.T, emp *models.Employer, premiumLevel string) *models.Listing {
	t.Helper()
	l := &models.Listing{Title: "Backend Engineer", PremiumLevel: premiumLevel}
	require.NoError(t, e.lifecycle.CreateListing(emp.ID, l))
	return l
}

func (e *env) reload(t *testing.T, id uint) *models.Listing {
	t.Helper()
	l, err := e.listings.GetIncludingDeleted(id)
	require.NoError(t, err)
	return l
}
