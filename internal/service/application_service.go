package service

import (
	"errors"

	"jobsy/internal/domain"
	"jobsy/internal/models"
	"jobsy/internal/repository"
)

// ApplicationService handles candidate and guest applications plus saved
// jobs. Applications snapshot the listing's title and company at creation,
// so they stay readable after the listing expires or is deleted.
type ApplicationService struct {
	listings     *repository.ListingRepository
	applications *repository.ApplicationRepository
	employers    *repository.EmployerRepository
	notifier     *NotificationService
}

func NewApplicationService(listings *repository.ListingRepository, applications *repository.ApplicationRepository,
	employers *repository.EmployerRepository, notifier *NotificationService) *ApplicationService {
	return &ApplicationService{
		listings:     listings,
		applications: applications,
		employers:    employers,
		notifier:     notifier,
	}
}

type ApplyInput struct {
	UserID      *uint
	GuestName   string
	GuestEmail  string
	CoverLetter string
	ResumeURL   string
}

// Apply submits an application against an approved listing. A user or guest
// email can apply to a given listing once.
func (s *ApplicationService) Apply(listingID uint, in ApplyInput) (*models.Application, error) {
	l, err := s.listings.GetActiveByID(listingID)
	if err != nil {
		return nil, err
	}
	if l.Status != domain.StatusApproved {
		return nil, domain.InvalidTransitionf("listing %d is not open for applications", listingID)
	}

	if in.UserID != nil {
		applied, err := s.applications.HasUserApplied(listingID, *in.UserID)
		if err != nil {
			return nil, err
		}
		if applied {
			return nil, domain.InvalidTransitionf("already applied to listing %d", listingID)
		}
	} else {
		applied, err := s.applications.HasGuestApplied(listingID, in.GuestEmail)
		if err != nil {
			return nil, err
		}
		if applied {
			return nil, domain.InvalidTransitionf("already applied to listing %d", listingID)
		}
	}

	id := l.ID
	app := &models.Application{
		ListingID:   &id,
		JobTitle:    l.Title,
		JobCompany:  l.Company,
		UserID:      in.UserID,
		GuestName:   in.GuestName,
		GuestEmail:  in.GuestEmail,
		CoverLetter: in.CoverLetter,
		ResumeURL:   in.ResumeURL,
		Status:      domain.ApplicationInReview,
	}
	if err := s.applications.Create(app); err != nil {
		return nil, err
	}

	name := in.GuestName
	if name == "" {
		name = "A candidate"
	}
	s.notifier.NotifyNewApplication(l, name)
	return app, nil
}

// UpdateStatus lets the owning employer move an application between stages.
// Candidates are notified when they reach the interview or reserve stage.
func (s *ApplicationService) UpdateStatus(employerID, applicationID uint, status, feedback string) (*models.Application, error) {
	switch status {
	case domain.ApplicationInReview, domain.ApplicationInterview, domain.ApplicationReserve:
	default:
		return nil, domain.InvalidTransitionf("unknown application status %q", status)
	}

	app, err := s.applications.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(employerID, app); err != nil {
		return nil, err
	}

	changed := app.Status != status
	app.Status = status
	if feedback != "" {
		app.Feedback = feedback
	}
	if err := s.applications.Update(app); err != nil {
		return nil, err
	}
	if changed {
		s.notifier.NotifyApplicationStatus(app, status)
	}
	return app, nil
}

// MarkRead flags an application as seen by its listing's owner.
func (s *ApplicationService) MarkRead(employerID, applicationID uint) error {
	app, err := s.applications.GetByID(applicationID)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(employerID, app); err != nil {
		return err
	}
	return s.applications.MarkRead(applicationID)
}

// ListForListing returns a listing's applications to its owner.
func (s *ApplicationService) ListForListing(employerID, listingID uint, limit, offset int) ([]models.Application, error) {
	l, err := s.listings.GetIncludingDeleted(listingID)
	if err != nil {
		return nil, err
	}
	if l.EmployerID != employerID {
		return nil, domain.ErrNotFound
	}
	return s.applications.ListByListing(listingID, limit, offset)
}

// ToggleSaved saves a listing for a candidate, or unsaves it if already
// saved. Returns true when the listing ends up saved.
func (s *ApplicationService) ToggleSaved(userID, listingID uint) (bool, error) {
	existing, err := s.applications.GetSavedJob(userID, listingID)
	if err == nil {
		return false, s.applications.DeleteSavedJob(existing.ID)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	l, err := s.listings.GetActiveByID(listingID)
	if err != nil {
		return false, err
	}
	id := l.ID
	saved := &models.SavedJob{
		UserID:     userID,
		ListingID:  &id,
		JobTitle:   l.Title,
		JobCompany: l.Company,
	}
	if err := s.applications.CreateSavedJob(saved); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ApplicationService) checkOwnership(employerID uint, app *models.Application) error {
	if app.ListingID == nil {
		return domain.ErrNotFound
	}
	l, err := s.listings.GetIncludingDeleted(*app.ListingID)
	if err != nil {
		return err
	}
	if l.EmployerID != employerID {
		return domain.ErrNotFound
	}
	return nil
}
