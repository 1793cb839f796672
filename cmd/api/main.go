package main

import (
	"log"
	"os"

	"homework-tracker-api/config"
	"homework-tracker-api/controllers"
	"homework-tracker-api/middleware"
	"homework-tracker-api/models"
	"homework-tracker-api/routes"
	"homework-tracker-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	if err := config.DB.AutoMigrate(&models.StorageRecord{}); err != nil {
		log.Fatal("Failed to migrate storage_records table:", err)
	}

	// Wire the owning services: one store, one notifier, one service per
	// persisted collection.
	store := services.NewGormStore(config.DB)
	notifier := services.NewNotifier()
	deadlines := services.NewDeadlineService(store, notifier)
	checked := services.NewCheckedSubmissionService(store, notifier)
	reminder := services.NewReminderService(deadlines)
	controllers.Setup(deadlines, checked, reminder)

	notifier.Subscribe(services.EventDeadlinesUpdated, func() {
		log.Println("Deadline collection updated")
	})
	notifier.Subscribe(services.EventCheckedUpdated, func() {
		log.Println("Checked-submission ledger updated")
	})

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Add logging middleware
	router.Use(gin.Logger())

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📊 Database connected successfully")
	log.Printf("🔒 Security middlewares enabled")
	log.Printf("🌐 CORS configured for allowed origins")

	if ginMode == "release" {
		log.Printf("🏭 Running in production mode")
	} else {
		log.Printf("🔧 Running in development mode")
		log.Printf("📝 Health check available at http://localhost:%s/api/v1/health", port)
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
