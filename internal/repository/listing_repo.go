package repository

import (
	"errors"
	"time"

	"jobsy/internal/domain"
	"jobsy/internal/models"

	"gorm.io/gorm"
)

// tierRankExpr ranks premium levels for the public feed. Tier is always the
// primary sort key: a standard listing can never outrank a premium one.
const tierRankExpr = "CASE premium_level WHEN 'premium_plus' THEN 3 WHEN 'premium' THEN 2 ELSE 1 END"

// statusOrderExpr is the employer-dashboard triage precedence. It is a
// deliberately separate comparator from the public feed's monetization order.
const statusOrderExpr = "CASE status WHEN 'approved' THEN 1 WHEN 'pending_review' THEN 2 WHEN 'rejected' THEN 3 ELSE 4 END"

// FeedFilters for the public job feed.
type FeedFilters struct {
	Category          string
	Location          string
	Experience        string
	JobPreferences    string
	ConsidersStudents *bool
	PremiumLevel      string
	Search            string
	Limit             int
	Offset            int
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(l *models.Listing) error {
	return r.db.Create(l).Error
}

// GetActiveByID excludes soft-deleted rows (the default for every employer-
// and public-facing read path).
func (r *ListingRepository) GetActiveByID(id uint) (*models.Listing, error) {
	var l models.Listing
	if err := r.db.First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// GetIncludingDeleted is the explicit deleted-inclusive entry point, used by
// restore and by admin/employer historical views.
func (r *ListingRepository) GetIncludingDeleted(id uint) (*models.Listing, error) {
	var l models.Listing
	if err := r.db.Unscoped().First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// PublicFeed returns publicly visible listings: approved and not yet expired,
// plus extended_review listings still inside their current expiry window.
// Rows with an expired status are excluded outright, whatever their dates say.
func (r *ListingRepository) PublicFeed(f FeedFilters, now time.Time) ([]models.Listing, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	q := r.db.Model(&models.Listing{}).
		Where("status <> ?", domain.StatusExpired).
		Where("(status = ? AND (expires_at IS NULL OR expires_at > ?)) OR (status = ? AND expires_at > ?)",
			domain.StatusApproved, now, domain.StatusExtendedReview, now)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.Experience != "" {
		q = q.Where("experience = ?", f.Experience)
	}
	if f.JobPreferences != "" {
		q = q.Where("job_preferences = ?", f.JobPreferences)
	}
	if f.ConsidersStudents != nil {
		q = q.Where("considers_students = ?", *f.ConsidersStudents)
	}
	if f.PremiumLevel != "" {
		q = q.Where("premium_level = ?", f.PremiumLevel)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ? OR company LIKE ?", "%"+f.Search+"%", "%"+f.Search+"%")
	}

	var list []models.Listing
	err := q.Order(tierRankExpr + " DESC").
		Order("last_extended_at DESC").
		Order("posted_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Find(&list).Error
	return list, err
}

// ListByEmployer returns an employer's listings sorted by triage precedence
// (approved first, then pending, then rejected) and recency. Soft-deleted
// rows are included only when asked for explicitly.
func (r *ListingRepository) ListByEmployer(employerID uint, includeDeleted bool, search string) ([]models.Listing, error) {
	q := r.db.Model(&models.Listing{})
	if includeDeleted {
		q = q.Unscoped()
	}
	q = q.Where("employer_id = ?", employerID)
	if search != "" {
		q = q.Where("title LIKE ? OR company LIKE ? OR category LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	var list []models.Listing
	err := q.Order(statusOrderExpr).Order("posted_at DESC").Find(&list).Error
	return list, err
}

// ListDeletedByEmployer returns only the employer's soft-deleted listings.
func (r *ListingRepository) ListDeletedByEmployer(employerID uint) ([]models.Listing, error) {
	var list []models.Listing
	err := r.db.Unscoped().
		Where("employer_id = ? AND deleted_at IS NOT NULL", employerID).
		Order("deleted_at DESC").
		Find(&list).Error
	return list, err
}

// UpdateWhereStatus conditionally writes updates only if the row still holds
// the given status. GORM's default scope keeps soft-deleted rows out, so a
// transition can never land on a deleted listing. Returns false when the row
// moved on (or vanished) between read and write.
func (r *ListingRepository) UpdateWhereStatus(id uint, status string, updates map[string]interface{}) (bool, error) {
	res := r.db.Model(&models.Listing{}).
		Where("id = ? AND status = ?", id, status).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SoftDelete marks the listing deleted without touching its status.
func (r *ListingRepository) SoftDelete(id uint) (bool, error) {
	res := r.db.Delete(&models.Listing{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Restore clears the soft-delete marker and forces the listing back through
// review: pending status, no expiry, no bump timestamp.
func (r *ListingRepository) Restore(id uint) (bool, error) {
	res := r.db.Unscoped().Model(&models.Listing{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Updates(map[string]interface{}{
			"deleted_at":       nil,
			"status":           domain.StatusPendingReview,
			"expires_at":       nil,
			"last_extended_at": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ExpiredApproved selects approved listings whose expiry date has passed,
// in bounded batches. The sweep re-queries between batches, so a partial
// failure resumes naturally; ids in skip are ones this run already gave up on.
func (r *ListingRepository) ExpiredApproved(now time.Time, limit int, skip []uint) ([]models.Listing, error) {
	q := r.db.Where("status = ? AND expires_at IS NOT NULL AND expires_at <= ?", domain.StatusApproved, now)
	if len(skip) > 0 {
		q = q.Where("id NOT IN ?", skip)
	}
	var list []models.Listing
	err := q.Order("expires_at ASC").Limit(limit).Find(&list).Error
	return list, err
}

// CountActivePremiumPlus counts the employer's approved, non-deleted,
// non-expired premium_plus listings, the authoritative entitlement fact.
func (r *ListingRepository) CountActivePremiumPlus(employerID uint, now time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.Listing{}).
		Where("employer_id = ? AND premium_level = ? AND status = ?", employerID, domain.PremiumPlus, domain.StatusApproved).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Count(&n).Error
	return n, err
}

func (r *ListingRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ListingRepository) Update(l *models.Listing) error {
	return r.db.Save(l).Error
}
