package service

import (
	"fmt"
	"time"

	"jobsy/internal/domain"
	"jobsy/internal/models"
	"jobsy/internal/repository"
)

// LifecycleService owns every listing status transition. Each operation
// reads the row fresh, validates its precondition against that read, and
// writes conditionally on the status it saw; a lost race is retried once
// before surfacing ErrConcurrentModification.
type LifecycleService struct {
	listings     *repository.ListingRepository
	employers    *repository.EmployerRepository
	notifier     *NotificationService
	entitlements *EntitlementService
}

func NewLifecycleService(listings *repository.ListingRepository, employers *repository.EmployerRepository,
	notifier *NotificationService, entitlements *EntitlementService) *LifecycleService {
	return &LifecycleService{
		listings:     listings,
		employers:    employers,
		notifier:     notifier,
		entitlements: entitlements,
	}
}

// CreateListing submits a new listing for review. Every new listing starts
// in pending_review with no expiry and no bump timestamp; approval sets the
// expiry window.
func (s *LifecycleService) CreateListing(employerID uint, l *models.Listing) error {
	emp, err := s.employers.GetByID(employerID)
	if err != nil {
		return err
	}
	l.EmployerID = emp.ID
	if l.Company == "" {
		l.Company = emp.CompanyName
	}
	l.Status = domain.StatusPendingReview
	l.ExpiresAt = nil
	l.LastExtendedAt = nil
	if l.PremiumLevel == "" {
		l.PremiumLevel = domain.PremiumStandard
	}
	return s.listings.Create(l)
}

// Decide applies an admin approve/reject to a listing under review. On
// approval a listing with no expiry gets the default window. Exactly one
// employer notification is emitted per state change; a repeated decide hits
// the precondition and emits nothing.
func (s *LifecycleService) Decide(listingID uint, outcome, feedback string) (*models.Listing, error) {
	if outcome != domain.DecisionApprove && outcome != domain.DecisionReject {
		return nil, domain.InvalidTransitionf("unknown outcome %q", outcome)
	}
	for attempt := 0; attempt < 2; attempt++ {
		l, err := s.listings.GetIncludingDeleted(listingID)
		if err != nil {
			return nil, err
		}
		if l.DeletedAt.Valid {
			return nil, domain.InvalidTransitionf("listing %d is deleted", listingID)
		}
		if l.Status != domain.StatusPendingReview && l.Status != domain.StatusExtendedReview {
			return nil, domain.InvalidTransitionf("cannot decide a listing in status %q", l.Status)
		}

		now := time.Now()
		updates := map[string]interface{}{"admin_feedback": feedback}
		var message string
		if outcome == domain.DecisionApprove {
			updates["status"] = domain.StatusApproved
			if l.ExpiresAt == nil {
				updates["expires_at"] = now.AddDate(0, 0, domain.DefaultListingDays)
			}
			message = fmt.Sprintf("Your job listing %q was approved and is now live.", l.Title)
		} else {
			updates["status"] = domain.StatusRejected
			message = fmt.Sprintf("Your job listing %q was rejected.", l.Title)
			if feedback != "" {
				message += " Feedback: " + feedback
			}
		}

		ok, err := s.listings.UpdateWhereStatus(l.ID, l.Status, updates)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue // row moved on; re-read and re-validate
		}

		s.notifier.NotifyJobStatus(l, message)
		if outcome == domain.DecisionApprove && l.PremiumLevel == domain.PremiumPlus {
			s.entitlements.Refresh(l.EmployerID)
		}
		return s.listings.GetActiveByID(l.ID)
	}
	return nil, domain.ErrConcurrentModification
}

// RequestExtension is the employer's self-service renewal. It deliberately
// does not touch expires_at: the listing only queues for admin re-approval,
// staying publicly visible until its current expiry. The asymmetry with
// AdminExtend is intentional (employers cannot grant themselves time).
func (s *LifecycleService) RequestExtension(employerID, listingID uint) (*models.Listing, error) {
	for attempt := 0; attempt < 2; attempt++ {
		l, err := s.listings.GetIncludingDeleted(listingID)
		if err != nil {
			return nil, err
		}
		if l.DeletedAt.Valid {
			return nil, domain.InvalidTransitionf("listing %d is deleted", listingID)
		}
		if employerID != 0 && l.EmployerID != employerID {
			return nil, domain.ErrNotFound
		}
		if l.Status != domain.StatusApproved && l.Status != domain.StatusExpired {
			return nil, domain.InvalidTransitionf("cannot request extension from status %q", l.Status)
		}

		ok, err := s.listings.UpdateWhereStatus(l.ID, l.Status, map[string]interface{}{
			"status": domain.StatusExtendedReview,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		return s.listings.GetActiveByID(l.ID)
	}
	return nil, domain.ErrConcurrentModification
}

// AdminExtend advances the expiry by days and forces the listing back to
// approved. An expired listing restarts from now (extending a past date
// would grant dead time); a live one extends additively so early renewals
// are not wasted. bumpToTop refreshes last_extended_at, resorting the
// listing to the top of its tier in the public feed.
func (s *LifecycleService) AdminExtend(listingID uint, days int, bumpToTop bool) (*models.Listing, error) {
	if days <= 0 {
		days = domain.DefaultListingDays
	}
	for attempt := 0; attempt < 2; attempt++ {
		l, err := s.listings.GetIncludingDeleted(listingID)
		if err != nil {
			return nil, err
		}
		if l.DeletedAt.Valid {
			return nil, domain.InvalidTransitionf("listing %d is deleted", listingID)
		}
		switch l.Status {
		case domain.StatusApproved, domain.StatusExpired, domain.StatusExtendedReview:
		default:
			return nil, domain.InvalidTransitionf("cannot extend a listing in status %q", l.Status)
		}

		now := time.Now()
		var newExpiry time.Time
		if l.ExpiresAt == nil || l.IsExpired(now) {
			newExpiry = now.AddDate(0, 0, days)
		} else {
			newExpiry = l.ExpiresAt.AddDate(0, 0, days)
		}
		updates := map[string]interface{}{
			"status":     domain.StatusApproved,
			"expires_at": newExpiry,
		}
		if bumpToTop {
			updates["last_extended_at"] = now
		}

		ok, err := s.listings.UpdateWhereStatus(l.ID, l.Status, updates)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if l.Status == domain.StatusExtendedReview {
			// The extension request was effectively approved.
			s.notifier.NotifyJobStatus(l, fmt.Sprintf("Your extension request for %q was approved; the listing now runs until %s.",
				l.Title, newExpiry.Format("2 Jan 2006")))
		}
		if l.PremiumLevel == domain.PremiumPlus {
			s.entitlements.Refresh(l.EmployerID)
		}
		return s.listings.GetActiveByID(l.ID)
	}
	return nil, domain.ErrConcurrentModification
}

// Reactivate is AdminExtend with a bump, restricted to listings that are no
// longer live.
func (s *LifecycleService) Reactivate(listingID uint) (*models.Listing, error) {
	l, err := s.listings.GetActiveByID(listingID)
	if err != nil {
		return nil, err
	}
	if l.Status != domain.StatusExpired && l.Status != domain.StatusExtendedReview {
		return nil, domain.InvalidTransitionf("cannot reactivate a listing in status %q", l.Status)
	}
	return s.AdminExtend(listingID, domain.DefaultListingDays, true)
}

// MarkExpired forces the expired status regardless of the expiry date.
// Used by admins and by the sweep. Returns false when the listing was
// already expired, so re-running the sweep transitions nothing.
func (s *LifecycleService) MarkExpired(listingID uint) (bool, error) {
	for attempt := 0; attempt < 2; attempt++ {
		l, err := s.listings.GetIncludingDeleted(listingID)
		if err != nil {
			return false, err
		}
		if l.DeletedAt.Valid {
			return false, domain.InvalidTransitionf("listing %d is deleted", listingID)
		}
		if l.Status == domain.StatusExpired {
			return false, nil
		}
		ok, err := s.listings.UpdateWhereStatus(l.ID, l.Status, map[string]interface{}{
			"status": domain.StatusExpired,
		})
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, domain.ErrConcurrentModification
}

// SoftDelete hides the listing from every default query without touching its
// status. Applications and saved jobs keep their snapshots and are never
// cascaded. employerID 0 skips the ownership check (admin path).
func (s *LifecycleService) SoftDelete(employerID, listingID uint) error {
	l, err := s.listings.GetActiveByID(listingID)
	if err != nil {
		return err
	}
	if employerID != 0 && l.EmployerID != employerID {
		return domain.ErrNotFound
	}
	ok, err := s.listings.SoftDelete(l.ID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	if l.PremiumLevel == domain.PremiumPlus {
		s.entitlements.Refresh(l.EmployerID)
	}
	return nil
}

// Restore clears the soft-delete marker and sends the listing back through
// review; a restored listing never returns straight to public visibility.
func (s *LifecycleService) Restore(employerID, listingID uint) (*models.Listing, error) {
	l, err := s.listings.GetIncludingDeleted(listingID)
	if err != nil {
		return nil, err
	}
	if employerID != 0 && l.EmployerID != employerID {
		return nil, domain.ErrNotFound
	}
	if !l.DeletedAt.Valid {
		return nil, domain.InvalidTransitionf("listing %d is not deleted", listingID)
	}
	ok, err := s.listings.Restore(l.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrConcurrentModification
	}
	return s.listings.GetActiveByID(l.ID)
}
