package models

import (
	"time"

	"jobsy/internal/domain"

	"gorm.io/gorm"
)

type Listing struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Title            string         `gorm:"size:100;not null;index" json:"title"`
	Company          string         `gorm:"size:100;not null;index" json:"company"`
	Description      string         `gorm:"type:text" json:"description"`
	SalaryMin        *float64       `json:"salary_min"`
	SalaryMax        *float64       `json:"salary_max"`
	SalaryType       string         `gorm:"size:50;default:'monthly'" json:"salary_type"`
	Category         string         `gorm:"size:100;index" json:"category"`
	Location         string         `gorm:"size:100;index" json:"location"`
	Experience       string         `gorm:"size:100;index" json:"experience"`
	JobPreferences   string         `gorm:"size:255" json:"job_preferences"`
	ConsidersStudents bool          `gorm:"default:false" json:"considers_students"`
	ExternalLink     string         `gorm:"size:512" json:"external_link"`
	ViewCount        uint           `gorm:"default:0" json:"view_count"`

	PremiumLevel  string `gorm:"size:20;not null;default:'standard';index" json:"premium_level"`
	Status        string `gorm:"size:20;not null;default:'pending_review';index:idx_listings_status_expires" json:"status"`
	AdminFeedback string `gorm:"type:text" json:"admin_feedback"`

	EmployerID uint `gorm:"not null;index" json:"employer_id"`

	// PostedAt is set once at creation and never changes; renewals touch
	// LastExtendedAt instead so the feed can bump without rewriting history.
	PostedAt       time.Time      `gorm:"autoCreateTime;index" json:"posted_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	ExpiresAt      *time.Time     `gorm:"index:idx_listings_status_expires" json:"expires_at"`
	LastExtendedAt *time.Time     `gorm:"index" json:"last_extended_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Employer Employer `gorm:"foreignKey:EmployerID" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

// IsExpired is the single definition of listing expiration. Every caller
// (feed, entitlements, sweep, handlers) must go through it: an explicit
// expired status wins, otherwise the expiration date decides.
func (l *Listing) IsExpired(now time.Time) bool {
	if l.Status == domain.StatusExpired {
		return true
	}
	if l.ExpiresAt == nil {
		return false
	}
	return !now.Before(*l.ExpiresAt)
}

// DaysUntilExpiration returns nil when the listing has no expiration date,
// 0 once expired, otherwise whole days remaining (floored, never negative).
func (l *Listing) DaysUntilExpiration(now time.Time) *int {
	if l.ExpiresAt == nil {
		return nil
	}
	days := 0
	if !l.IsExpired(now) {
		days = int(l.ExpiresAt.Sub(now).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}
	return &days
}
