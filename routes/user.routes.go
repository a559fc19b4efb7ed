package routes

import (
	"campusconnect/internal/controllers"
	"campusconnect/internal/middleware"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.Engine, userController *controllers.UserController, userRepo repository.UserRepository) {
	usersPrivate := router.Group("/api/users")
	usersPrivate.Use(middleware.AuthMiddleware(userRepo))
	{
		usersPrivate.GET("/profile", userController.GetMyProfile)
		usersPrivate.PUT("/profile", userController.UpdateProfile)
		usersPrivate.PUT("/avatar", userController.UpdateAvatar)
	}

	// Public profile lookup, registered after /profile so the static route wins.
	router.GET("/api/users/:id", userController.GetUserProfile)
}
