package repository

import (
	"errors"
	"time"

	"campusconnect/internal/models"

	"gorm.io/gorm"
)

type ConversationRepository interface {
	FindOrCreate(userA, userB uint) (*models.Conversation, error)
	FindByID(id uint) (*models.Conversation, error)
	ListByUser(userID uint) ([]models.Conversation, error)
	TouchLastMessage(id uint, text string, at time.Time) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// FindOrCreate resolves the single conversation for a pair of users,
// creating it on first contact. A concurrent create loses against the unique
// pair index and falls back to the winner's row.
func (cr *conversationRepository) FindOrCreate(userA, userB uint) (*models.Conversation, error) {
	low, high := models.OrderedPair(userA, userB)

	var conv models.Conversation
	err := cr.db.
		Where("participant_low_id = ? AND participant_high_id = ?", low, high).
		First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{ParticipantLowID: low, ParticipantHighID: high}
	if err := cr.db.Create(&conv).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = cr.db.
				Where("participant_low_id = ? AND participant_high_id = ?", low, high).
				First(&conv).Error
			if err != nil {
				return nil, err
			}
			return &conv, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (cr *conversationRepository) FindByID(id uint) (*models.Conversation, error) {
	var conv models.Conversation
	err := cr.db.Preload("ParticipantLow").Preload("ParticipantHigh").First(&conv, id).Error
	if err != nil {
		return nil, err
	}
	conv.Participants = []models.User{conv.ParticipantLow, conv.ParticipantHigh}
	return &conv, nil
}

func (cr *conversationRepository) ListByUser(userID uint) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := cr.db.
		Preload("ParticipantLow").
		Preload("ParticipantHigh").
		Where("participant_low_id = ? OR participant_high_id = ?", userID, userID).
		Order("last_message_time DESC NULLS LAST").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}
	for i := range convs {
		convs[i].Participants = []models.User{convs[i].ParticipantLow, convs[i].ParticipantHigh}
	}
	return convs, nil
}

func (cr *conversationRepository) TouchLastMessage(id uint, text string, at time.Time) error {
	return cr.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message":      text,
			"last_message_time": at,
		}).Error
}
