package models

import (
	"time"

	"jobsy/internal/domain"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;index" json:"role"` // CANDIDATE | EMPLOYER | ADMIN

	// Candidate CV-database fields. VisibleToEmployers opts the candidate
	// into the searchable CV database.
	CVURL              string `gorm:"size:512" json:"cv_url"`
	DesiredField       string `gorm:"size:100;index" json:"desired_field"`
	FieldExperience    string `gorm:"size:100" json:"field_experience"`
	VisibleToEmployers bool   `gorm:"default:false;index" json:"visible_to_employers"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Employer *Employer `gorm:"foreignKey:UserID" json:"employer,omitempty"`
}

func (u *User) IsEmployer() bool  { return u.Role == domain.RoleEmployer }
func (u *User) IsCandidate() bool { return u.Role == domain.RoleCandidate }
func (u *User) IsAdmin() bool     { return u.Role == domain.RoleAdmin }
