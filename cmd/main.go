package main

import (
	"campusconnect/database"
	"campusconnect/docs"
	"campusconnect/internal/cache"
	"campusconnect/internal/controllers"
	"campusconnect/internal/events"
	"campusconnect/internal/mailer"
	"campusconnect/internal/middleware"
	"campusconnect/internal/repository"
	"campusconnect/internal/services"
	"campusconnect/internal/storage"
	"campusconnect/routes"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	if os.Getenv("JWT_SECRET_KEY") == "" {
		log.Fatal("JWT_SECRET_KEY must be set")
	}

	// Swagger Documentation
	docs.SwaggerInfo.Title = "Campus Connect API"
	docs.SwaggerInfo.Description = "Campus job board backend: auth, jobs, applications, messaging, uploads."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Connect to database and run migrations
	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	jobRepo := repository.NewJobRepository(database.DB)
	applicationRepo := repository.NewApplicationRepository(database.DB)
	conversationRepo := repository.NewConversationRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	// Mail transport for verification and password reset flows
	mail := mailer.New(mailer.LoadConfig())

	// File storage backend (local disk or S3)
	storageConfig := storage.LoadConfig()
	store, err := storage.NewStorage(storageConfig)
	if err != nil {
		log.Fatalf("Failed to initialize storage backend: %v", err)
	}

	// Redis-backed rate limiting (fails open when Redis is unavailable)
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		log.Printf("Warning: Redis connection failed: %v", err)
	}
	limiter := middleware.NewRedisLimiter(redisClient)

	// RabbitMQ publisher and notification worker for application events
	var publisher events.Publisher
	rabbitMQURL := os.Getenv("RABBITMQ_URL")
	if rabbitMQURL != "" {
		publisher, err = events.NewPublisher(rabbitMQURL)
		if err != nil {
			log.Printf("Warning: RabbitMQ connection failed, application notifications disabled: %v", err)
		} else {
			worker, err := services.NewNotificationWorker(rabbitMQURL, mail)
			if err != nil {
				log.Printf("Warning: failed to create notification worker: %v", err)
			} else if err := worker.Start(); err != nil {
				log.Printf("Warning: failed to start notification worker: %v", err)
			} else {
				log.Println("Notification worker started")
				defer worker.Stop()
			}
		}
	} else {
		log.Println("RABBITMQ_URL not set, application notifications disabled")
	}

	// Initialize controllers
	authController := controllers.NewAuthController(userRepo, mail)
	userController := controllers.NewUserController(userRepo)
	jobController := controllers.NewJobController(jobRepo, applicationRepo, publisher)
	messageController := controllers.NewMessageController(conversationRepo, messageRepo)
	uploadController := controllers.NewUploadController(store)

	gin.SetMode(gin.ReleaseMode)
	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.RateLimitMiddleware(limiter, 500, 10*time.Minute))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Campus Connect API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterAuthRoutes(router, authController, userRepo)
	routes.RegisterUserRoutes(router, userController, userRepo)
	routes.RegisterJobRoutes(router, jobController, userRepo)
	routes.RegisterMessageRoutes(router, messageController, userRepo)
	routes.RegisterUploadRoutes(router, uploadController, userRepo)
	routes.RegisterSwaggerRoutes(router)

	// Serve locally stored uploads when using the local backend
	if storageConfig.Type == "local" {
		router.Static("/uploads", storageConfig.BasePath)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
