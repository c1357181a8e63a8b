package repository

import (
	"testing"
	"time"

	"jobsy/internal/domain"
	"jobsy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedListing(t *testing.T, db *gorm.DB, l *models.Listing) *models.Listing {
	t.Helper()
	if l.Status == "" {
		l.Status = domain.StatusApproved
	}
	if l.PremiumLevel == "" {
		l.PremiumLevel = domain.PremiumStandard
	}
	if l.Title == "" {
		l.Title = "Backend Engineer"
	}
	if l.Company == "" {
		l.Company = "Acme"
	}
	if l.EmployerID == 0 {
		l.EmployerID = 1
	}
	require.NoError(t, db.Create(l).Error)
	return l
}

func TestPublicFeedVisibility(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)
	now := time.Now()
	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	visible := seedListing(t, db, &models.Listing{Title: "visible", ExpiresAt: &future})
	noExpiry := seedListing(t, db, &models.Listing{Title: "no expiry"})
	extReview := seedListing(t, db, &models.Listing{Title: "ext review", Status: domain.StatusExtendedReview, ExpiresAt: &future})

	// All of these must stay out of the feed.
	seedListing(t, db, &models.Listing{Title: "pending", Status: domain.StatusPendingReview})
	seedListing(t, db, &models.Listing{Title: "rejected", Status: domain.StatusRejected})
	seedListing(t, db, &models.Listing{Title: "status expired", Status: domain.StatusExpired, ExpiresAt: &future})
	seedListing(t, db, &models.Listing{Title: "date expired", ExpiresAt: &past})
	seedListing(t, db, &models.Listing{Title: "ext review expired", Status: domain.StatusExtendedReview, ExpiresAt: &past})
	deleted := seedListing(t, db, &models.Listing{Title: "deleted", ExpiresAt: &future})
	require.NoError(t, db.Delete(deleted).Error)

	list, err := repo.PublicFeed(FeedFilters{}, now)
	require.NoError(t, err)

	ids := make(map[uint]bool)
	for _, l := range list {
		ids[l.ID] = true
	}
	assert.Len(t, list, 3)
	assert.True(t, ids[visible.ID])
	assert.True(t, ids[noExpiry.ID])
	assert.True(t, ids[extReview.ID])
}

func TestPublicFeedOrdering(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)
	now := time.Now()
	future := now.Add(10 * 24 * time.Hour)
	recent := now.Add(-time.Hour)
	older := now.Add(-48 * time.Hour)

	// A freshly bumped standard listing must still rank below an old
	// premium_plus one: tier always beats recency.
	standard := seedListing(t, db, &models.Listing{Title: "standard bumped", ExpiresAt: &future, LastExtendedAt: &recent})
	premium := seedListing(t, db, &models.Listing{Title: "premium", PremiumLevel: domain.PremiumLevel, ExpiresAt: &future, LastExtendedAt: &older})
	plusOld := seedListing(t, db, &models.Listing{Title: "plus old", PremiumLevel: domain.PremiumPlus, ExpiresAt: &future, LastExtendedAt: &older})
	plusBumped := seedListing(t, db, &models.Listing{Title: "plus bumped", PremiumLevel: domain.PremiumPlus, ExpiresAt: &future, LastExtendedAt: &recent})

	list, err := repo.PublicFeed(FeedFilters{}, now)
	require.NoError(t, err)
	require.Len(t, list, 4)

	assert.Equal(t, plusBumped.ID, list[0].ID)
	assert.Equal(t, plusOld.ID, list[1].ID)
	assert.Equal(t, premium.ID, list[2].ID)
	assert.Equal(t, standard.ID, list[3].ID)
}

func TestPublicFeedFilters(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)
	now := time.Now()
	future := now.Add(10 * 24 * time.Hour)

	it := seedListing(t, db, &models.Listing{Title: "go dev", Category: "it", Location: "tbilisi", ExpiresAt: &future})
	seedListing(t, db, &models.Listing{Title: "nurse", Category: "medicine", Location: "batumi", ExpiresAt: &future})

	list, err := repo.PublicFeed(FeedFilters{Category: "it"}, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, it.ID, list[0].ID)

	list, err = repo.PublicFeed(FeedFilters{Search: "go"}, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, it.ID, list[0].ID)
}

func TestUpdateWhereStatus(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)

	l := seedListing(t, db, &models.Listing{Status: domain.StatusPendingReview})

	ok, err := repo.UpdateWhereStatus(l.ID, domain.StatusPendingReview, map[string]interface{}{
		"status": domain.StatusApproved,
	})
	require.NoError(t, err)
	assert.True(t, ok)

	// Same precondition again: the row has moved on.
	ok, err = repo.UpdateWhereStatus(l.ID, domain.StatusPendingReview, map[string]interface{}{
		"status": domain.StatusRejected,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetActiveByID(l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
}

func TestUpdateWhereStatusSkipsDeletedRows(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)

	l := seedListing(t, db, &models.Listing{Status: domain.StatusApproved})
	require.NoError(t, db.Delete(l).Error)

	ok, err := repo.UpdateWhereStatus(l.ID, domain.StatusApproved, map[string]interface{}{
		"status": domain.StatusExpired,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreResetsLifecycleFields(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)
	future := time.Now().Add(10 * 24 * time.Hour)
	bumped := time.Now()

	l := seedListing(t, db, &models.Listing{Status: domain.StatusApproved, ExpiresAt: &future, LastExtendedAt: &bumped})
	require.NoError(t, db.Delete(l).Error)

	_, err := repo.GetActiveByID(l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := repo.Restore(l.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := repo.GetActiveByID(l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingReview, got.Status)
	assert.Nil(t, got.ExpiresAt)
	assert.Nil(t, got.LastExtendedAt)
	assert.False(t, got.DeletedAt.Valid)

	// Restoring a live row is a no-op.
	ok, err = repo.Restore(l.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpiredApprovedBatching(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	a := seedListing(t, db, &models.Listing{Title: "a", ExpiresAt: &past})
	b := seedListing(t, db, &models.Listing{Title: "b", ExpiresAt: &past})
	seedListing(t, db, &models.Listing{Title: "live", ExpiresAt: &future})
	seedListing(t, db, &models.Listing{Title: "pending", Status: domain.StatusPendingReview, ExpiresAt: &past})

	batch, err := repo.ExpiredApproved(now, 10, nil)
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	batch, err = repo.ExpiredApproved(now, 10, []uint{a.ID})
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, b.ID, batch[0].ID)
}

func TestCountActivePremiumPlus(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	seedListing(t, db, &models.Listing{EmployerID: 7, PremiumLevel: domain.PremiumPlus, ExpiresAt: &future})
	seedListing(t, db, &models.Listing{EmployerID: 7, PremiumLevel: domain.PremiumPlus, ExpiresAt: &past})
	seedListing(t, db, &models.Listing{EmployerID: 7, PremiumLevel: domain.PremiumLevel, ExpiresAt: &future})
	deleted := seedListing(t, db, &models.Listing{EmployerID: 7, PremiumLevel: domain.PremiumPlus, ExpiresAt: &future})
	require.NoError(t, db.Delete(deleted).Error)

	n, err := repo.CountActivePremiumPlus(7, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListByEmployerTriageOrder(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db)

	rejected := seedListing(t, db, &models.Listing{EmployerID: 3, Status: domain.StatusRejected})
	approved := seedListing(t, db, &models.Listing{EmployerID: 3, Status: domain.StatusApproved})
	pending := seedListing(t, db, &models.Listing{EmployerID: 3, Status: domain.StatusPendingReview})
	seedListing(t, db, &models.Listing{EmployerID: 4, Status: domain.StatusApproved})

	list, err := repo.ListByEmployer(3, false, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, approved.ID, list[0].ID)
	assert.Equal(t, pending.ID, list[1].ID)
	assert.Equal(t, rejected.ID, list[2].ID)
}
