package routes

import (
	"campusconnect/internal/controllers"
	"campusconnect/internal/middleware"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"

	"github.com/gin-gonic/gin"
)

func RegisterJobRoutes(router *gin.Engine, jobController *controllers.JobController, userRepo repository.UserRepository) {
	jobs := router.Group("/api/jobs")
	{
		jobs.GET("", jobController.GetJobs)
		jobs.GET("/:id", jobController.GetJob)
	}

	jobsPrivate := router.Group("/api/jobs")
	jobsPrivate.Use(middleware.AuthMiddleware(userRepo))
	{
		jobsPrivate.POST("", middleware.RequireRoles(models.RoleEmployer, models.RoleAdmin), jobController.CreateJob)
		jobsPrivate.GET("/my-jobs", jobController.GetMyJobs)
		jobsPrivate.GET("/stats", jobController.GetDashboardStats)
		jobsPrivate.POST("/apply/:id", middleware.RequireRoles(models.RoleStudent), jobController.ApplyToJob)
		jobsPrivate.PUT("/:id", jobController.UpdateJob)
		jobsPrivate.DELETE("/:id", jobController.DeleteJob)
	}
}
