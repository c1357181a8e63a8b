package models

import (
	"time"

	"gorm.io/gorm"
)

type Employer struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	UserID             uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	CompanyName        string `gorm:"size:100;index" json:"company_name"`
	CompanyIdentifier  string `gorm:"size:50" json:"company_identifier"`
	PhoneNumber        string `gorm:"size:50" json:"phone_number"`
	ShowPhoneNumber    bool   `gorm:"default:false" json:"show_phone_number"`
	CompanyWebsite     string `gorm:"size:512" json:"company_website"`
	CompanyDescription string `gorm:"type:text" json:"company_description"`
	CompanyLogoURL     string `gorm:"size:512" json:"company_logo_url"`
	CompanySize        string `gorm:"size:50" json:"company_size"`
	Industry           string `gorm:"size:100;index" json:"industry"`
	Location           string `gorm:"size:100;index" json:"location"`

	// CVAccess is the cached, automatically derived CV-database flag. It is
	// not authoritative: the authoritative fact is owning at least one
	// approved, non-deleted, non-expired premium_plus listing. The sweep
	// clears it when the last qualifying listing expires.
	CVAccess bool `gorm:"default:false" json:"cv_access"`
	// CVAccessManual is the sticky admin grant. It survives expiration and
	// is only ever toggled by an admin.
	CVAccessManual bool `gorm:"default:false" json:"cv_access_manual"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Employer) TableName() string {
	return "employers"
}
