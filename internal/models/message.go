package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`

	ConversationID uint   `gorm:"index" json:"conversation_id"`
	SenderID       uint   `json:"sender_id"`
	Sender         User   `gorm:"foreignKey:SenderID" json:"sender"`
	Text           string `json:"text"`
	Read           bool   `gorm:"default:false" json:"read"`
}
