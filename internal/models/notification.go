package models

import "time"

// EmployerNotification is the persisted employer-facing notification.
// ListingID is nullable and ListingTitle is snapshotted at creation so the
// notification stays readable after the listing is soft-deleted.
type EmployerNotification struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployerID   uint      `gorm:"not null;index:idx_emp_notif_read" json:"employer_id"`
	ListingID    *uint     `gorm:"index" json:"listing_id"`
	ListingTitle string    `gorm:"size:255" json:"listing_title"`
	Type         string    `gorm:"size:50;not null;index" json:"type"`
	Message      string    `gorm:"type:text" json:"message"`
	IsRead       bool      `gorm:"default:false;index:idx_emp_notif_read" json:"is_read"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	Employer Employer `gorm:"foreignKey:EmployerID" json:"-"`
}

func (EmployerNotification) TableName() string {
	return "employer_notifications"
}

// CandidateNotification mirrors EmployerNotification for applicants; the
// job title and company are snapshotted from the application's listing.
type CandidateNotification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index:idx_cand_notif_read" json:"user_id"`
	ApplicationID *uint     `gorm:"index" json:"application_id"`
	JobTitle      string    `gorm:"size:255" json:"job_title"`
	CompanyName   string    `gorm:"size:255" json:"company_name"`
	Type          string    `gorm:"size:50;not null" json:"type"`
	Message       string    `gorm:"type:text" json:"message"`
	IsRead        bool      `gorm:"default:false;index:idx_cand_notif_read" json:"is_read"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CandidateNotification) TableName() string {
	return "candidate_notifications"
}
