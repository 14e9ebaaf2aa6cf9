package main

import (
	"encoding/gob"
	"log"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/controllers"
	"github.com/hodgins-insurance/quoteserver/middleware"
	"github.com/hodgins-insurance/quoteserver/models"
	"github.com/hodgins-insurance/quoteserver/routes"
	"github.com/hodgins-insurance/quoteserver/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Register types stored in the cookie session
	gob.Register(models.AddressRecord{})
	gob.Register(models.PropertyRecord{})
	gob.Register(models.ContactRecord{})
	gob.Register(models.PremiumEstimates{})
	gob.Register(models.PendingSubmission{})

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize flat-file quote storage
	config.InitStore()

	// Select the address resolver (Maps-backed when a key is configured)
	controllers.InitFormResolver(cfg)

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(middleware.CORS())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	utils.LogInfo("Server starting on port %s (env: %s)", cfg.Port, cfg.Env)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
