package repository

import (
	"campusconnect/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) error
	FindByID(id uint) (*models.Message, error)
	ListByConversation(conversationID uint) ([]models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (mr *messageRepository) Create(message *models.Message) error {
	return mr.db.Create(message).Error
}

func (mr *messageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := mr.db.Preload("Sender").First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (mr *messageRepository) ListByConversation(conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	err := mr.db.Preload("Sender").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
