package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/controllers"
)

// initQuoteRoutes wires the quote ingest API. Both the plural form and the
// singular /api/quote alias accept submissions; widgets embedded on older
// pages still post to the singular route.
func initQuoteRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/quote", controllers.SubmitQuote)
		api.POST("/quotes", controllers.SubmitQuote)
		api.GET("/quotes", controllers.GetQuotes)
		api.GET("/quotes/export", controllers.ExportQuotes)
		api.GET("/quotes/:id", controllers.GetQuoteByID)
	}
}
