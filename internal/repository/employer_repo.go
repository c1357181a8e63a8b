package repository

import (
	"errors"

	"jobsy/internal/domain"
	"jobsy/internal/models"

	"gorm.io/gorm"
)

type EmployerRepository struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) *EmployerRepository {
	return &EmployerRepository{db: db}
}

func (r *EmployerRepository) Create(e *models.Employer) error {
	return r.db.Create(e).Error
}

func (r *EmployerRepository) GetByID(id uint) (*models.Employer, error) {
	var e models.Employer
	if err := r.db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployerRepository) GetByUserID(userID uint) (*models.Employer, error) {
	var e models.Employer
	if err := r.db.Where("user_id = ?", userID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployerRepository) Update(e *models.Employer) error {
	return r.db.Save(e).Error
}

// SetCVAccess writes the cached entitlement flag.
func (r *EmployerRepository) SetCVAccess(employerID uint, granted bool) error {
	return r.db.Model(&models.Employer{}).Where("id = ?", employerID).
		Update("cv_access", granted).Error
}

// SetCVAccessManual writes the sticky admin-grant flag.
func (r *EmployerRepository) SetCVAccessManual(employerID uint, granted bool) error {
	return r.db.Model(&models.Employer{}).Where("id = ?", employerID).
		Update("cv_access_manual", granted).Error
}

// ListCVDatabaseCandidates returns candidates who opted into the CV database,
// optionally filtered by desired field.
func (r *EmployerRepository) ListCVDatabaseCandidates(desiredField string, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 20
	}
	q := r.db.Model(&models.User{}).
		Where("role = ? AND visible_to_employers = ? AND cv_url <> ''", domain.RoleCandidate, true)
	if desiredField != "" {
		q = q.Where("desired_field = ?", desiredField)
	}
	var list []models.User
	err := q.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// LogCVAccess records the employer/candidate pair once; repeat views hit the
// unique index and are ignored.
func (r *EmployerRepository) LogCVAccess(employerID, candidateID uint) error {
	var existing models.CVAccessLog
	err := r.db.Where("employer_id = ? AND candidate_id = ?", employerID, candidateID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.CVAccessLog{EmployerID: employerID, CandidateID: candidateID}).Error
}
