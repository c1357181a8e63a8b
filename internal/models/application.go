package models

import "time"

// Application references its listing through a nullable foreign key plus a
// title/company snapshot captured at creation, so hard- or soft-deleting the
// listing never breaks the historical record. The snapshot is written once
// and intentionally never refreshed.
type Application struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ListingID  *uint  `gorm:"index:idx_app_listing_status" json:"listing_id"`
	JobTitle   string `gorm:"size:255" json:"job_title"`
	JobCompany string `gorm:"size:255" json:"job_company"`

	UserID     *uint  `gorm:"index:idx_app_user_status" json:"user_id"`
	GuestName  string `gorm:"size:255" json:"guest_name"`
	GuestEmail string `gorm:"size:255;index" json:"guest_email"`

	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	ResumeURL   string `gorm:"size:512" json:"resume_url"`

	Status   string `gorm:"size:30;not null;default:'in_review';index:idx_app_listing_status,priority:2;index:idx_app_user_status,priority:2" json:"status"`
	Feedback string `gorm:"type:text" json:"feedback"`
	IsRead   bool   `gorm:"default:false;index" json:"is_read"`

	AppliedAt time.Time `gorm:"autoCreateTime;index" json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Listing *Listing `gorm:"foreignKey:ListingID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

// SavedJob carries the same capture-on-create snapshot as Application.
type SavedJob struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_saved_user_listing,unique" json:"user_id"`
	ListingID  *uint     `gorm:"index:idx_saved_user_listing,unique" json:"listing_id"`
	JobTitle   string    `gorm:"size:255" json:"job_title"`
	JobCompany string    `gorm:"size:255" json:"job_company"`
	SavedAt    time.Time `gorm:"autoCreateTime" json:"saved_at"`

	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Listing *Listing `gorm:"foreignKey:ListingID" json:"-"`
}

func (SavedJob) TableName() string {
	return "saved_jobs"
}

// CVAccessLog records which employer viewed which candidate in the CV
// database. One row per employer/candidate pair.
type CVAccessLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployerID  uint      `gorm:"not null;index:idx_cv_access_pair,unique" json:"employer_id"`
	CandidateID uint      `gorm:"not null;index:idx_cv_access_pair,unique" json:"candidate_id"`
	AccessedAt  time.Time `gorm:"autoCreateTime" json:"accessed_at"`

	Employer  Employer `gorm:"foreignKey:EmployerID" json:"-"`
	Candidate User     `gorm:"foreignKey:CandidateID" json:"-"`
}

func (CVAccessLog) TableName() string {
	return "cv_access_logs"
}
