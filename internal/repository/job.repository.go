package repository

import (
	"campusconnect/internal/models"

	"gorm.io/gorm"
)

// JobFilter captures the public listing query. MinPay/MaxPay are inclusive
// bounds; Search matches case-insensitively across the main text fields.
type JobFilter struct {
	Category string
	Location string
	Duration string
	Time     string
	Search   string
	MinPay   *float64
	MaxPay   *float64
	Page     int
	Limit    int
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uint) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id uint) error
	List(filter JobFilter) ([]models.Job, int64, error)
	ListByPoster(userID uint) ([]models.Job, error)
	CountByPoster(userID uint) (int64, error)
	CountByPosterAndStatus(userID uint, status string) (int64, error)
	CountByStatus(status string) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (jr *jobRepository) Create(job *models.Job) error {
	return jr.db.Create(job).Error
}

func (jr *jobRepository) FindByID(id uint) (*models.Job, error) {
	var job models.Job
	err := jr.db.Preload("PostedBy").First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (jr *jobRepository) Update(job *models.Job) error {
	return jr.db.Save(job).Error
}

func (jr *jobRepository) Delete(id uint) error {
	return jr.db.Delete(&models.Job{}, id).Error
}

// List returns one page of active jobs plus the total match count.
func (jr *jobRepository) List(filter JobFilter) ([]models.Job, int64, error) {
	query := jr.db.Model(&models.Job{}).Where("status = ?", models.JobStatusActive)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.Duration != "" {
		query = query.Where("duration = ?", filter.Duration)
	}
	if filter.Time != "" {
		query = query.Where("time = ?", filter.Time)
	}
	if filter.MinPay != nil {
		query = query.Where("pay_rate >= ?", *filter.MinPay)
	}
	if filter.MaxPay != nil {
		query = query.Where("pay_rate <= ?", *filter.MaxPay)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR department ILIKE ? OR category ILIKE ? OR type ILIKE ? OR address ILIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var jobs []models.Job
	err := query.
		Preload("PostedBy").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (jr *jobRepository) ListByPoster(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := jr.db.Where("posted_by_id = ?", userID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (jr *jobRepository) CountByPoster(userID uint) (int64, error) {
	var count int64
	err := jr.db.Model(&models.Job{}).Where("posted_by_id = ?", userID).Count(&count).Error
	return count, err
}

func (jr *jobRepository) CountByPosterAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := jr.db.Model(&models.Job{}).
		Where("posted_by_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (jr *jobRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := jr.db.Model(&models.Job{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
