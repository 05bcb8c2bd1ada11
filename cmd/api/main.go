package main

import (
	"log"

	"github.com/adflow-io/adflow-go/internal/api/middleware"
	"github.com/adflow-io/adflow-go/internal/api/routes"
	"github.com/adflow-io/adflow-go/internal/config"
	"github.com/adflow-io/adflow-go/internal/config/db"
	"github.com/adflow-io/adflow-go/internal/storage"
	"github.com/gin-gonic/gin"
)

// @title AdFlow API
// @version 1.0
// @description Role-based advertising operations request portal API.
// @BasePath /
func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	// Initialize database connection and migrate schemas
	db.Init()

	store, err := storage.NewMinioStore()
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, db.DB, store)

	port := ":" + config.ServerPort
	log.Printf("Starting API server on %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
}
