package service

import (
	"testing"

	"jobsy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRequiresApprovedListing(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)

	_, err := e.appSvc.Apply(l.ID, ApplyInput{GuestName: "Nino", GuestEmail: "nino@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApplyDuplicateGuards(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	cand := e.seedCandidate(t, "giorgi")
	_, err = e.appSvc.Apply(l.ID, ApplyInput{UserID: &cand.ID})
	require.NoError(t, err)
	_, err = e.appSvc.Apply(l.ID, ApplyInput{UserID: &cand.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = e.appSvc.Apply(l.ID, ApplyInput{GuestName: "Nino", GuestEmail: "nino@example.com"})
	require.NoError(t, err)
	_, err = e.appSvc.Apply(l.ID, ApplyInput{GuestName: "Nino", GuestEmail: "nino@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApplicationSnapshotSurvivesListingDeletion(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	app, err := e.appSvc.Apply(l.ID, ApplyInput{GuestName: "Nino", GuestEmail: "nino@example.com"})
	require.NoError(t, err)
	require.NoError(t, e.lifecycle.SoftDelete(emp.ID, l.ID))

	got, err := e.applications.GetByID(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, "Acme", got.JobCompany)
}

func TestUpdateStatusNotifiesCandidate(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)

	cand := e.seedCandidate(t, "giorgi")
	app, err := e.appSvc.Apply(l.ID, ApplyInput{UserID: &cand.ID})
	require.NoError(t, err)

	_, err = e.appSvc.UpdateStatus(emp.ID, app.ID, domain.ApplicationInterview, "")
	require.NoError(t, err)

	notifs, err := e.notifications.ListByCandidate(cand.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, domain.NotifApplicationStatus, notifs[0].Type)

	// Re-applying the same status emits nothing new.
	_, err = e.appSvc.UpdateStatus(emp.ID, app.ID, domain.ApplicationInterview, "")
	require.NoError(t, err)
	notifs, err = e.notifications.ListByCandidate(cand.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, notifs, 1)
}

func TestUpdateStatusOwnership(t *testing.T) {
	e := newEnv(t)
	owner := e.seedEmployer(t, "owner")
	other := e.seedEmployer(t, "other")
	l := e.newListing(t, owner, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	app, err := e.appSvc.Apply(l.ID, ApplyInput{GuestName: "Nino", GuestEmail: "nino@example.com"})
	require.NoError(t, err)

	_, err = e.appSvc.UpdateStatus(other.ID, app.ID, domain.ApplicationInterview, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToggleSaved(t *testing.T) {
	e := newEnv(t)
	emp := e.seedEmployer(t, "acme")
	l := e.newListing(t, emp, domain.PremiumStandard)
	_, err := e.lifecycle.Decide(l.ID, domain.DecisionApprove, "")
	require.NoError(t, err)
	cand := e.seedCandidate(t, "giorgi")

	saved, err := e.appSvc.ToggleSaved(cand.ID, l.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	list, err := e.applications.ListSavedByUser(cand.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Backend Engineer", list[0].JobTitle)

	saved, err = e.appSvc.ToggleSaved(cand.ID, l.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	list, err = e.applications.ListSavedByUser(cand.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 0)
}
