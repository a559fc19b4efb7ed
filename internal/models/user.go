package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleStudent  = "student"
	RoleEmployer = "employer"
	RoleAdmin    = "admin"
)

// @description User account. Password hash and token fields never leave the API.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`

	Name       string         `json:"name" example:"John Doe"`
	Email      string         `gorm:"uniqueIndex" json:"email" example:"john.doe@campus.edu"`
	Password   string         `json:"-"`
	Role       string         `gorm:"default:student" json:"role" example:"student"`
	IsVerified bool           `gorm:"default:false" json:"is_verified"`
	Avatar     string         `json:"avatar"`
	Bio        string         `json:"bio,omitempty"`
	Phone      string         `json:"phone,omitempty"`
	Department string         `json:"department,omitempty"`
	StudentID  string         `json:"student_id,omitempty"`
	Skills     pq.StringArray `gorm:"type:text[]" json:"skills,omitempty" swaggertype:"array,string"`
	Linkedin   string         `json:"linkedin,omitempty"`
	Website    string         `json:"website,omitempty"`

	// Reset tokens are stored as sha256 digests, never raw. The token/expire
	// pair is always set and cleared together.
	VerificationToken   string     `json:"-"`
	ResetPasswordToken  string     `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
}

func (u *User) IsEmployerOrAdmin() bool {
	return u.Role == RoleEmployer || u.Role == RoleAdmin
}
