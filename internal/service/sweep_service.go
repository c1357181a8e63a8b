package service

import (
	"context"
	"log"
	"time"

	"jobsy/internal/domain"
	"jobsy/internal/repository"
)

// SweepResult summarizes one sweep pass.
type SweepResult struct {
	Scanned          int `json:"scanned"`
	Expired          int `json:"expired"`
	Failed           int `json:"failed"`
	EntitlementsLost int `json:"entitlements_lost"`
}

// SweepService walks approved listings whose expiry has passed and marks
// them expired in bounded batches. Each row goes through the same
// conditional transition as the interactive path, so a sweep racing an
// admin action loses cleanly and moves on. Re-running a sweep over already
// expired rows is a no-op.
type SweepService struct {
	listings     *repository.ListingRepository
	lifecycle    *LifecycleService
	entitlements *EntitlementService
	batchSize    int
}

func NewSweepService(listings *repository.ListingRepository, lifecycle *LifecycleService,
	entitlements *EntitlementService, batchSize int) *SweepService {
	if batchSize <= 0 {
		batchSize = 200
	}
	return &SweepService{
		listings:     listings,
		lifecycle:    lifecycle,
		entitlements: entitlements,
		batchSize:    batchSize,
	}
}

// Run performs one full sweep as of now. Rows that fail to transition are
// added to a skip list so a bad row cannot stall the pass, and employers
// who had a premium plus listing expire get their entitlement recomputed
// afterwards.
func (s *SweepService) Run(ctx context.Context) (*SweepResult, error) {
	now := time.Now()
	result := &SweepResult{}
	touched := make(map[uint]bool)
	var skip []uint

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		batch, err := s.listings.ExpiredApproved(now, s.batchSize, skip)
		if err != nil {
			return result, err
		}
		if len(batch) == 0 {
			break
		}

		for _, l := range batch {
			result.Scanned++
			changed, err := s.lifecycle.MarkExpired(l.ID)
			if err != nil {
				log.Printf("[sweep] listing %d: %v", l.ID, err)
				skip = append(skip, l.ID)
				result.Failed++
				continue
			}
			if !changed {
				continue
			}
			result.Expired++
			if l.PremiumLevel == domain.PremiumPlus {
				touched[l.EmployerID] = true
			}
		}
	}

	for employerID := range touched {
		lost, err := s.entitlements.Refresh(employerID)
		if err != nil {
			log.Printf("[sweep] entitlement refresh for employer %d: %v", employerID, err)
			continue
		}
		if lost {
			result.EntitlementsLost++
			log.Printf("[sweep] employer %d lost CV database access", employerID)
		}
	}

	log.Printf("[sweep] done: scanned=%d expired=%d failed=%d entitlements_lost=%d",
		result.Scanned, result.Expired, result.Failed, result.EntitlementsLost)
	return result, nil
}
