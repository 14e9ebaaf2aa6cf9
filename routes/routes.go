package routes

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/controllers"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Session middleware backs the multi-step form state.
	store := cookie.NewStore([]byte(config.App.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   config.App.IsProduction(),
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("hodgins_quote", store))

	router.GET("/health", controllers.HealthCheck)

	initQuoteRoutes(router)

	// Form endpoints are versioned like the rest of the site API.
	api := router.Group("/v1")
	{
		initFormRoutes(api)
	}

	return router
}
