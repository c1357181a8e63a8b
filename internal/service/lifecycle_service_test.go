package service

import (
	"testing"
	"time"

	"jobsy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListingStartsPending(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")

	l := e.newListing(t, emp, domain.PremiumStandard)

	got := e.reload(t, l.ID)
	assert.Equal(t, domain.StatusPendingReview, got.Status)
	assert.Nil(t, got.ExpiresAt)
	assert.Nil(t, got.LastExtendedAt)
	assert.Equal(t, "Acme", got.Company)
}

func TestDecideApprove(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	got, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, got.ExpiresAt)

	// Default window: 30 days from the decision.
	expected := time.Now().AddDate(0, 0, domain.DefaultListingDays)
	assert.WithinDuration(t, expected, *got.ExpiresAt, time.Minute)

	n, err := e.notifications.CountForListing(l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDecideReject(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	got, err := e.lifecycle.Decide(l.ID, domain.DecisionReject, "salary range missing")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Equal(t, "salary range missing", got.AdminFeedback)
	assert.Nil(t, got.ExpiresAt)
}

func TestDecideTwiceEmitsOneNotification(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	_, err = e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	n, err := e.notifications.CountForListing(l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDecideRejectsUnknownOutcome(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	_, err := e.lifecycle.Decide(l.ID, "maybe", "")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestRequestExtensionKeepsExpiry(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	approved, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	originalExpiry := *approved.ExpiresAt

	got, err := e.lifecycle.RequestExtension(emp.ID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExtendedReview, got.Status)
	// Queuing for review grants no time.
	require.NotNil(t, got.ExpiresAt)
	assert.True(t, got.ExpiresAt.Equal(originalExpiry))
}

func TestRequestExtensionOwnership(t *testing.T) {
	e := newEnv(t)
	owner := e.seedEmployer(t, "owner")
	other := e.seedEmployer(t, "other")
	l := e.newListing(t, owner, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	_, err = e.lifecycle.RequestExtension(other.ID, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestExtensionInvalidFromPending(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	_, err := e.lifecycle.RequestExtension(emp.ID, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAdminExtendAdditiveWhileLive(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	approved, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	originalExpiry := *approved.ExpiresAt

	got, err := e.lifecycle.AdminExtend(l.ID, 10, false)
	require.NoError(t, err)
	require.NotNil(t, got.ExpiresAt)
	assert.WithinDuration(t, originalExpiry.AddDate(0, 0, 10), *got.ExpiresAt, time.Second)
	assert.Nil(t, got.LastExtendedAt)
}

func TestAdminExtendResetsFromExpired(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	// Push the expiry into the past, then sweep it over.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, e.db.Model(e.reload(t, l.ID)).Update("expires_at", past).Error)
	changed, err := e.lifecycle.MarkExpired(l.ID)
	require.NoError(t, err)
	require.True(t, changed)

	got, err := e.lifecycle.AdminExtend(l.ID, 10, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, got.ExpiresAt)
	// An expired listing restarts from now, not from the stale date.
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 10), *got.ExpiresAt, time.Minute)
	assert.NotNil(t, got.LastExtendedAt)
}

func TestAdminExtendApprovesExtensionRequest(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	before, err := e.notifications.CountForListing(l.ID)
	require.NoError(t, err)

	_, err = e.lifecycle.RequestExtension(emp.ID, l.ID)
	require.NoError(t, err)

	got, err := e.lifecycle.AdminExtend(l.ID, 0, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)

	after, err := e.notifications.CountForListing(l.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestAdminExtendInvalidFromPending(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	_, err := e.lifecycle.AdminExtend(l.ID, 10, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReactivateOnlyFromExpired(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	_, err = e.lifecycle.Reactivate(l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	require.NoError(t, e.db.Model(e.reload(t, l.ID)).Update("status", domain.StatusExpired).Error)
	got, err := e.lifecycle.Reactivate(l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.NotNil(t, got.LastExtendedAt)
}

func TestMarkExpiredIdempotent(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	changed, err := e.lifecycle.MarkExpired(l.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = e.lifecycle.MarkExpired(l.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSoftDeleteBlocksTransitions(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	require.NoError(t, e.lifecycle.SoftDelete(emp.ID, l.ID))

	_, err = e.lifecycle.AdminExtend(l.ID, 10, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = e.lifecycle.RequestExtension(emp.ID, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = e.lifecycle.MarkExpired(l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSoftDeleteOwnership(t *testing.T) {
	e := newEnv(t)
	owner := e.seedEmployer(t, "owner")
	other := e.seedEmployer(t, "other")
	l := e.newListing(t, owner, domain.PremiumStandard)

	err := e.lifecycle.SoftDelete(other.ID, l.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestoreReturnsToPending(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	require.NoError(t, e.lifecycle.SoftDelete(emp.ID, l.ID))

	got, err := e.lifecycle.Restore(emp.ID, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingReview, got.Status)
	assert.Nil(t, got.ExpiresAt)
	assert.Nil(t, got.LastExtendedAt)
	assert.False(t, got.DeletedAt.Valid)

	// A live listing cannot be restored.
	_, err = e.lifecycle.Restore(emp.ID, l.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
