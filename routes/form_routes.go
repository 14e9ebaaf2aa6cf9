package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/controllers"
)

// initFormRoutes wires the session-backed quote form step machine.
func initFormRoutes(router *gin.RouterGroup) {
	form := router.Group("/form")
	{
		form.GET("", controllers.GetFormState)
		form.GET("/schedule", controllers.GetSchedule)
		form.POST("/address", controllers.SubmitAddress)
		form.POST("/property", controllers.SubmitProperty)
		form.POST("/contact", controllers.SubmitContact)
		form.POST("/back", controllers.GoBack)
		form.POST("/restart", controllers.RestartForm)

		if config.App != nil && config.App.MapStep {
			form.POST("/confirm", controllers.ConfirmAddress)
		}
	}
}
