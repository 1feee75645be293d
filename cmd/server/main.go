package main

import (
	"log"

	"github.com/arkya-dev/feedline/backend/internal/router"
	"github.com/arkya-dev/feedline/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	config.LoadEnv()
	cfg := config.Load()

	// Initialize database connections
	mgClient, err := config.InitMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer config.CloseMongo(mgClient)

	// Redis is optional: without it the feed is computed live on every read
	redisClient := config.InitRedis(cfg.RedisAddr)
	defer config.CloseRedis(redisClient)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, mgClient, redisClient, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
