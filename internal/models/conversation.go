package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is a thread between exactly two users. Participant ids are
// stored ordered (low, high) with a unique index, so (A,B) and (B,A) always
// resolve to the same row and find-or-create cannot produce duplicates.
type Conversation struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`

	ParticipantLowID  uint `gorm:"uniqueIndex:idx_conversations_pair" json:"-"`
	ParticipantHighID uint `gorm:"uniqueIndex:idx_conversations_pair" json:"-"`
	ParticipantLow    User `gorm:"foreignKey:ParticipantLowID" json:"-"`
	ParticipantHigh   User `gorm:"foreignKey:ParticipantHighID" json:"-"`

	// Filled from the joined participant rows for API responses.
	Participants []User `gorm:"-" json:"participants"`

	LastMessage     string     `json:"last_message,omitempty"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty"`
}

// OrderedPair normalizes two user ids into (low, high) storage order.
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
