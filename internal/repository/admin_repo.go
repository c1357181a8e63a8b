package repository

import (
	"time"

	"jobsy/internal/domain"
	"jobsy/internal/models"

	"gorm.io/gorm"
)

// SiteStats is the admin dashboard aggregate.
type SiteStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalCandidates   int64 `json:"total_candidates"`
	TotalEmployers    int64 `json:"total_employers"`
	TotalListings     int64 `json:"total_listings"`
	ActiveListings    int64 `json:"active_listings"`
	PendingListings   int64 `json:"pending_listings"`
	ExpiredListings   int64 `json:"expired_listings"`
	DeletedListings   int64 `json:"deleted_listings"`
	TotalApplications int64 `json:"total_applications"`
	OrphanedApps      int64 `json:"orphaned_applications"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetSiteStats() (*SiteStats, error) {
	var s SiteStats
	r.db.Model(&models.User{}).Count(&s.TotalUsers)
	r.db.Model(&models.User{}).Where("role = ?", domain.RoleCandidate).Count(&s.TotalCandidates)
	r.db.Model(&models.User{}).Where("role = ?", domain.RoleEmployer).Count(&s.TotalEmployers)
	r.db.Model(&models.Listing{}).Unscoped().Count(&s.TotalListings)
	r.db.Model(&models.Listing{}).Where("status = ?", domain.StatusApproved).Count(&s.ActiveListings)
	r.db.Model(&models.Listing{}).Where("status IN ?", []string{domain.StatusPendingReview, domain.StatusExtendedReview}).Count(&s.PendingListings)
	r.db.Model(&models.Listing{}).Where("status = ?", domain.StatusExpired).Count(&s.ExpiredListings)
	r.db.Model(&models.Listing{}).Unscoped().Where("deleted_at IS NOT NULL").Count(&s.DeletedListings)
	r.db.Model(&models.Application{}).Count(&s.TotalApplications)
	// Applications whose listing was hard-deleted survive on their snapshots.
	r.db.Model(&models.Application{}).Where("listing_id IS NULL").Count(&s.OrphanedApps)
	return &s, nil
}

// ListListings returns listings for the review queue with optional status
// filter; deleted rows are included only on request.
func (r *AdminRepository) ListListings(status string, includeDeleted bool, page, limit int) ([]models.Listing, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	q := r.db.Model(&models.Listing{})
	if includeDeleted {
		q = q.Unscoped()
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Listing
	err := q.Order("posted_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *AdminRepository) ListUsers(search, role string, page, limit int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	q := r.db.Model(&models.User{})
	if search != "" {
		q = q.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	q.Count(&total)
	var users []models.User
	err := q.Preload("Employer").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

// ListingsByDay returns daily listing creation counts for the last N days.
func (r *AdminRepository) ListingsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Listing{}).
		Select("DATE(posted_at) as date, COUNT(*) as count").
		Where("posted_at >= ?", since).
		Group("DATE(posted_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

func (r *AdminRepository) ApplicationsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Application{}).
		Select("DATE(applied_at) as date, COUNT(*) as count").
		Where("applied_at >= ?", since).
		Group("DATE(applied_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

func (r *AdminRepository) ListPricingPackages() ([]models.PricingPackage, error) {
	var list []models.PricingPackage
	err := r.db.Where("is_active = ?", true).
		Order("display_order ASC").
		Find(&list).Error
	return list, err
}
