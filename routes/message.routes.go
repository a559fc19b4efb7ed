package routes

import (
	"campusconnect/internal/controllers"
	"campusconnect/internal/middleware"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

func RegisterMessageRoutes(router *gin.Engine, messageController *controllers.MessageController, userRepo repository.UserRepository) {
	messages := router.Group("/api/messages")
	messages.Use(middleware.AuthMiddleware(userRepo))
	{
		messages.GET("/conversations", messageController.GetConversations)
		messages.GET("/conversation/:id", messageController.GetMessages)
		messages.POST("", messageController.SendMessage)
	}
}
