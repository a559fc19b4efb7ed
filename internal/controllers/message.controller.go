package controllers

import (
	"net/http"
	"strconv"
	"time"

	"campusconnect/internal/middleware"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Text        string `json:"text" binding:"required"`
}

type MessageController struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
}

func NewMessageController(conversationRepo repository.ConversationRepository, messageRepo repository.MessageRepository) *MessageController {
	return &MessageController{conversationRepo: conversationRepo, messageRepo: messageRepo}
}

// GetConversations lists the principal's threads, most recent activity first.
func (mc *MessageController) GetConversations(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	conversations, err := mc.conversationRepo.ListByUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch conversations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    conversations,
	})
}

func (mc *MessageController) GetMessages(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid conversation ID",
		})
		return
	}

	messages, err := mc.messageRepo.ListByConversation(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch messages",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// SendMessage finds or creates the single conversation for the sender and
// recipient, appends the message, and refreshes the conversation's
// denormalized last-message fields.
func (mc *MessageController) SendMessage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	conversation, err := mc.conversationRepo.FindOrCreate(user.ID, req.RecipientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send message",
		})
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       user.ID,
		Text:           req.Text,
	}
	if err := mc.messageRepo.Create(&message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send message",
		})
		return
	}

	if err := mc.conversationRepo.TouchLastMessage(conversation.ID, req.Text, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send message",
		})
		return
	}

	populated, err := mc.messageRepo.FindByID(message.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send message",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    populated,
	})
}
