package service

import (
	"time"

	"jobsy/internal/repository"
)

// EntitlementService derives the CV-database entitlement from listing state.
// Two sources exist by design: the automatic derivation (at least one
// approved, non-deleted, non-expired premium_plus listing, cached on the
// employer row) and the sticky manual grant an admin can set. The manual
// grant always survives expiration; only the cached automatic flag is
// cleared when the last qualifying listing dies.
type EntitlementService struct {
	employers *repository.EmployerRepository
	listings  *repository.ListingRepository
}

func NewEntitlementService(employers *repository.EmployerRepository, listings *repository.ListingRepository) *EntitlementService {
	return &EntitlementService{employers: employers, listings: listings}
}

// HasPremiumPlusAccess answers the entitlement question: manual grant, then
// cached flag, then a live recompute (which also repairs a stale cache).
func (s *EntitlementService) HasPremiumPlusAccess(employerID uint) (bool, error) {
	emp, err := s.employers.GetByID(employerID)
	if err != nil {
		return false, err
	}
	if emp.CVAccessManual || emp.CVAccess {
		return true, nil
	}
	n, err := s.listings.CountActivePremiumPlus(employerID, time.Now())
	if err != nil {
		return false, err
	}
	if n > 0 {
		if err := s.employers.SetCVAccess(employerID, true); err != nil {
			return true, err
		}
		return true, nil
	}
	return false, nil
}

// Refresh recomputes the cached flag after a premium_plus listing changed
// state. Returns true when the employer actually lost access (had the
// automatic flag, no qualifying listing remains, no manual grant covers it).
func (s *EntitlementService) Refresh(employerID uint) (lost bool, err error) {
	emp, err := s.employers.GetByID(employerID)
	if err != nil {
		return false, err
	}
	n, err := s.listings.CountActivePremiumPlus(employerID, time.Now())
	if err != nil {
		return false, err
	}
	hasActive := n > 0
	switch {
	case hasActive && !emp.CVAccess:
		return false, s.employers.SetCVAccess(employerID, true)
	case !hasActive && emp.CVAccess:
		if err := s.employers.SetCVAccess(employerID, false); err != nil {
			return false, err
		}
		return !emp.CVAccessManual, nil
	}
	return false, nil
}

// GrantManual sets the sticky admin grant.
func (s *EntitlementService) GrantManual(employerID uint) error {
	if _, err := s.employers.GetByID(employerID); err != nil {
		return err
	}
	return s.employers.SetCVAccessManual(employerID, true)
}

// RevokeManual clears the sticky grant and re-derives the automatic flag,
// so an employer with a live premium_plus listing keeps access.
func (s *EntitlementService) RevokeManual(employerID uint) error {
	if err := s.employers.SetCVAccessManual(employerID, false); err != nil {
		return err
	}
	_, err := s.Refresh(employerID)
	return err
}
