package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`

	Title       string  `json:"title" example:"Research Assistant"`
	Description string  `json:"description"`
	Category    string  `json:"category" example:"Research"`
	Department  string  `json:"department" example:"Computer Science"`
	Location    string  `json:"location" example:"main-campus"`
	Address     string  `json:"address,omitempty"`
	PayRate     float64 `json:"pay_rate" example:"15"`
	Duration    string  `json:"duration" example:"2-4 hours"`
	Time        string  `gorm:"default:any time" json:"time" example:"afternoon"`
	Type        string  `json:"type" example:"part-time"`
	Image       string  `json:"image,omitempty"`
	Status      string  `gorm:"default:active" json:"status" example:"active"`

	PostedByID uint `gorm:"index" json:"posted_by_id"`
	PostedBy   User `gorm:"foreignKey:PostedByID" json:"posted_by"`
}
