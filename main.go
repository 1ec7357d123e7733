package main

import (
	"log"
	"time"

	"healthqueue-be/internal/cache"
	"healthqueue-be/internal/config"
	"healthqueue-be/internal/controllers"
	"healthqueue-be/internal/database"
	"healthqueue-be/internal/mail"
	"healthqueue-be/internal/middleware"
	"healthqueue-be/internal/repository"
	"healthqueue-be/internal/service"
	"healthqueue-be/internal/storage"
	"healthqueue-be/internal/token"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize mail transport (optional - log-only when no SMTP configured)
	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	} else {
		log.Println("Warning: No SMTP host configured. Reset emails will only be logged.")
		mailer = mail.NewLogMailer()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	queueRepo := repository.NewQueueRepository(db)

	// Initialize token service (session tokens + password reset tokens)
	tokens := token.NewService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
		time.Duration(cfg.JWTRememberTTL)*time.Hour,
		time.Duration(cfg.ResetTokenTTL)*time.Second,
	)

	// Initialize profile image storage
	images := storage.NewLocalProvider(cfg.UploadDir)

	// Revoked session tokens: Redis-backed when the cache is up, otherwise
	// an in-process fallback so logout still works on a single instance.
	var denylist token.Denylist
	if cacheClient != nil {
		denylist = token.NewRedisDenylist(cacheClient)
	} else {
		denylist = token.NewMemoryDenylist()
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens, mailer, denylist, cfg.BaseURL)
	accountService := service.NewAccountService(userRepo, images)
	queueService := service.NewQueueService(queueRepo, userRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService)
	accountController := controllers.NewAccountController(accountService)
	queueController := controllers.NewQueueController(queueService)
	qrcodeController := controllers.NewQRCodeController(queueService, cfg.BaseURL)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Stored profile images
	router.Static("/uploads", cfg.UploadDir)

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
			auth.POST("/reset-password", authController.RequestPasswordReset)
			auth.POST("/reset-password/:token", authController.CompletePasswordReset)
		}

		// Public queue reads
		api.GET("/queues", queueController.ListQueues)
		api.GET("/queues/:id", queueController.GetQueue)
		api.GET("/queues/:id/qrcode", qrcodeController.GenerateQRCode)
		api.GET("/users/:username/queues", queueController.ListUserQueues)

		// Protected routes - require a valid session token
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(tokens, denylist))
		{
			protected.POST("/auth/logout", authController.Logout)

			protected.POST("/queues", queueController.CreateQueue)
			protected.PATCH("/queues/:id", queueController.UpdateQueue)
			protected.DELETE("/queues/:id", queueController.DeleteQueue)

			protected.GET("/account", accountController.GetAccount)
			protected.PATCH("/account", accountController.UpdateAccount)
		}
	}

	// Start the server on port 8080
	log.Println("Server starting on http://localhost:8080")
	router.Run(":8080")
}
