package routes

import (
	"campusconnect/internal/controllers"
	"campusconnect/internal/middleware"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine, authController *controllers.AuthController, userRepo repository.UserRepository) {
	authPublic := router.Group("/api/auth")
	{
		authPublic.POST("/register", authController.Register)
		authPublic.POST("/login", authController.Login)
		authPublic.GET("/verify-email/:token", authController.VerifyEmail)
		authPublic.POST("/forgot-password", authController.ForgotPassword)
		authPublic.PUT("/reset-password/:token", authController.ResetPassword)
	}

	authPrivate := router.Group("/api/auth")
	authPrivate.Use(middleware.AuthMiddleware(userRepo))
	{
		authPrivate.GET("/me", authController.GetMe)
		authPrivate.POST("/logout", authController.Logout)
	}
}
