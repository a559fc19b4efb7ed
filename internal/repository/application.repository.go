package repository

import (
	"campusconnect/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	Exists(jobID, applicantID uint) (bool, error)
	CountByJob(jobID uint) (int64, error)
	CountByApplicant(applicantID uint) (int64, error)
	ListByJob(jobID uint) ([]models.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create inserts the application. A concurrent duplicate surfaces as
// gorm.ErrDuplicatedKey through the unique (job_id, applicant_id) index.
func (ar *applicationRepository) Create(app *models.Application) error {
	return ar.db.Create(app).Error
}

func (ar *applicationRepository) Exists(jobID, applicantID uint) (bool, error) {
	var count int64
	err := ar.db.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		Count(&count).Error
	return count > 0, err
}

func (ar *applicationRepository) CountByJob(jobID uint) (int64, error) {
	var count int64
	err := ar.db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}

func (ar *applicationRepository) CountByApplicant(applicantID uint) (int64, error) {
	var count int64
	err := ar.db.Model(&models.Application{}).Where("applicant_id = ?", applicantID).Count(&count).Error
	return count, err
}

func (ar *applicationRepository) ListByJob(jobID uint) ([]models.Application, error) {
	var apps []models.Application
	err := ar.db.Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}
