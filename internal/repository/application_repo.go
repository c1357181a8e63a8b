package repository

import (
	"errors"

	"jobsy/internal/domain"
	"jobsy/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(a *models.Application) error {
	return r.db.Create(a).Error
}

func (r *ApplicationRepository) GetByID(id uint) (*models.Application, error) {
	var a models.Application
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) Update(a *models.Application) error {
	return r.db.Save(a).Error
}

// HasUserApplied guards against duplicate applications by a logged-in user.
func (r *ApplicationRepository) HasUserApplied(listingID, userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&models.Application{}).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		Count(&n).Error
	return n > 0, err
}

// HasGuestApplied guards against duplicate guest applications by email.
func (r *ApplicationRepository) HasGuestApplied(listingID uint, guestEmail string) (bool, error) {
	var n int64
	err := r.db.Model(&models.Application{}).
		Where("listing_id = ? AND guest_email = ?", listingID, guestEmail).
		Count(&n).Error
	return n > 0, err
}

func (r *ApplicationRepository) ListByListing(listingID uint, limit, offset int) ([]models.Application, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []models.Application
	err := r.db.Where("listing_id = ?", listingID).
		Order("applied_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *ApplicationRepository) ListByUser(userID uint, limit, offset int) ([]models.Application, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.Application
	err := r.db.Where("user_id = ?", userID).
		Order("applied_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *ApplicationRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Application{}).Where("id = ?", id).
		Update("is_read", true).Error
}

// EmployerStats aggregates the dashboard counters for one employer.
type EmployerStats struct {
	TotalJobs        int64 `json:"total_jobs"`
	ActiveJobs       int64 `json:"active_jobs"`
	TotalApplicants  int64 `json:"total_applicants"`
	UnreadApplicants int64 `json:"unread_applicants"`
}

func (r *ApplicationRepository) GetEmployerStats(employerID uint) (*EmployerStats, error) {
	var s EmployerStats
	if err := r.db.Model(&models.Listing{}).
		Where("employer_id = ?", employerID).
		Count(&s.TotalJobs).Error; err != nil {
		return nil, err
	}
	r.db.Model(&models.Listing{}).
		Where("employer_id = ? AND status = ?", employerID, domain.StatusApproved).
		Count(&s.ActiveJobs)
	r.db.Model(&models.Application{}).
		Joins("INNER JOIN listings l ON l.id = applications.listing_id").
		Where("l.employer_id = ?", employerID).
		Count(&s.TotalApplicants)
	r.db.Model(&models.Application{}).
		Joins("INNER JOIN listings l ON l.id = applications.listing_id").
		Where("l.employer_id = ? AND applications.is_read = ?", employerID, false).
		Count(&s.UnreadApplicants)
	return &s, nil
}

// SavedJob operations share the repo: same table family, same snapshot rule.

func (r *ApplicationRepository) CreateSavedJob(s *models.SavedJob) error {
	return r.db.Create(s).Error
}

func (r *ApplicationRepository) GetSavedJob(userID, listingID uint) (*models.SavedJob, error) {
	var s models.SavedJob
	if err := r.db.Where("user_id = ? AND listing_id = ?", userID, listingID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *ApplicationRepository) DeleteSavedJob(id uint) error {
	return r.db.Delete(&models.SavedJob{}, id).Error
}

func (r *ApplicationRepository) ListSavedByUser(userID uint, limit, offset int) ([]models.SavedJob, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.SavedJob
	err := r.db.Where("user_id = ?", userID).
		Order("saved_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}
