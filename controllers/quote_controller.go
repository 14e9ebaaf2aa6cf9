package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
	"github.com/hodgins-insurance/quoteserver/utils"
)

// ServiceName identifies this backend in the health endpoint.
const ServiceName = "Hodgins Insurance Backend"

// SubmitQuote ingests a quote submission: schema validation, durable
// persistence, then best-effort notification fanout. Once the record is
// persisted the response is 201 regardless of notification outcomes.
func SubmitQuote(c *gin.Context) {
	var quote models.QuoteSubmission
	if err := c.ShouldBindJSON(&quote); err != nil {
		utils.LogError("Quote submission rejected, malformed body: %v", err)
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if errs := utils.ValidateQuoteSubmission(quote); len(errs) > 0 {
		utils.LogInfo("Quote submission failed validation: %v", errs)
		utils.BadRequest(c, "Validation failed", gin.H{"fields": errs})
		return
	}

	// The store owns id and server timestamp.
	quote.ID = ""
	saved, err := config.Store.Append(quote)
	if err != nil {
		utils.LogError("Failed to persist quote: %v", err)
		utils.InternalServerError(c, "Failed to submit quote", err)
		return
	}
	utils.LogInfo("Quote saved: %s", saved.ID)

	// Both channels are independent and non-fatal; failures are logged and
	// swallowed so the submitter always sees success after persistence.
	utils.LogNotification("email", saved.ID, utils.SendQuoteNotification(saved))
	if config.App.WebhookEnabled() {
		utils.LogNotification("webhook", saved.ID, utils.SendWebhook(c.Request.Context(), config.App.WebhookURL, saved))
	}

	utils.Created(c, "Quote submitted successfully. An agent will contact you shortly.", gin.H{
		"quoteId": saved.ID,
	})
}

// GetQuotes returns every stored submission, newest last.
func GetQuotes(c *gin.Context) {
	quotes, err := config.Store.Load()
	if err != nil {
		utils.LogError("Failed to load quotes: %v", err)
		utils.InternalServerError(c, "Failed to fetch quotes", err)
		return
	}
	utils.Success(c, "", gin.H{
		"count":  len(quotes),
		"quotes": quotes,
	})
}

// GetQuoteByID returns one stored submission by its generated id.
func GetQuoteByID(c *gin.Context) {
	id := c.Param("id")
	quote, found, err := config.Store.GetByID(id)
	if err != nil {
		utils.LogError("Failed to load quote %s: %v", id, err)
		utils.InternalServerError(c, "Failed to fetch quote", err)
		return
	}
	if !found {
		utils.NotFound(c, "Quote not found")
		return
	}
	utils.Success(c, "", gin.H{"quote": quote})
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}
