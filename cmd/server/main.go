package main

import (
	"strings"

	"github.com/citygarden/community-task-api/internal/config"
	"github.com/citygarden/community-task-api/internal/constants"
	"github.com/citygarden/community-task-api/internal/database"
	"github.com/citygarden/community-task-api/internal/handlers"
	"github.com/citygarden/community-task-api/internal/logging"
	"github.com/citygarden/community-task-api/internal/middleware"
	"github.com/citygarden/community-task-api/internal/repository"
	"github.com/citygarden/community-task-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(cfg)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORSOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	participationRepo := repository.NewParticipationRepository(db)
	userRepo := repository.NewUserRepository(db)

	taskService := services.NewTaskService(taskRepo)
	participationService := services.NewParticipationService(participationRepo, taskRepo)
	authService := services.NewAuthService(userRepo)

	// Initialize handlers
	taskHandler := handlers.NewTaskHandler(taskService)
	participationHandler := handlers.NewParticipationHandler(participationService)
	authHandler := handlers.NewAuthHandler(authService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Community Task API is running",
		})
	})

	// Auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
	}

	// Task routes
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", middleware.OptionalAuth(), taskHandler.CreateTask)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)

		// Participation workflow. Any caller may claim and submit.
		tasks.POST("/:id/claim", participationHandler.Claim)
		tasks.POST("/:id/submit", participationHandler.Submit)
	}

	participations := r.Group("/participations")
	{
		participations.GET("", participationHandler.ListAll)
		participations.GET("/pending", participationHandler.ListPending)
		participations.POST("/:id/review", participationHandler.Review)
	}

	// Start server
	log.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
