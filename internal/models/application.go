package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusReviewed = "reviewed"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application links a student to a job they applied to. The unique index on
// (job_id, applicant_id) makes duplicate applications fail at the database
// even when two requests race past the pre-check.
type Application struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`

	JobID       uint `gorm:"uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	ApplicantID uint `gorm:"uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	Job         Job  `gorm:"foreignKey:JobID" json:"-"`
	Applicant   User `gorm:"foreignKey:ApplicantID" json:"applicant"`

	CoverLetter string `json:"cover_letter,omitempty"`
	Resume      string `json:"resume,omitempty"`
	Status      string `gorm:"default:pending" json:"status" example:"pending"`
}
