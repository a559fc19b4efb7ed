package routes

import (
	"campusconnect/internal/controllers"
	"campusconnect/internal/middleware"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

func RegisterUploadRoutes(router *gin.Engine, uploadController *controllers.UploadController, userRepo repository.UserRepository) {
	upload := router.Group("/api/upload")
	upload.Use(middleware.AuthMiddleware(userRepo))
	{
		upload.POST("", uploadController.UploadFile)
	}
}
