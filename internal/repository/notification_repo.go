package repository

import (
	"jobsy/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateForEmployer(n *models.EmployerNotification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) CreateForCandidate(n *models.CandidateNotification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) ListByEmployer(employerID uint, unreadOnly bool, limit, offset int) ([]models.EmployerNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.Where("employer_id = ?", employerID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var list []models.EmployerNotification
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) CountUnreadByEmployer(employerID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.EmployerNotification{}).
		Where("employer_id = ? AND is_read = ?", employerID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepository) MarkRead(id, employerID uint) error {
	return r.db.Model(&models.EmployerNotification{}).
		Where("id = ? AND employer_id = ?", id, employerID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(employerID uint) (int64, error) {
	res := r.db.Model(&models.EmployerNotification{}).
		Where("employer_id = ? AND is_read = ?", employerID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) ListByCandidate(userID uint, limit, offset int) ([]models.CandidateNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	var list []models.CandidateNotification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *NotificationRepository) MarkCandidateRead(id, userID uint) error {
	return r.db.Model(&models.CandidateNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

// CountForListing reports how many employer notifications reference a
// listing; used by lifecycle tests to assert exactly-once emission.
func (r *NotificationRepository) CountForListing(listingID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.EmployerNotification{}).
		Where("listing_id = ?", listingID).
		Count(&n).Error
	return n, err
}
