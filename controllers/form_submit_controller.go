package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
	"github.com/hodgins-insurance/quoteserver/utils"
)

// submitErrorFallback is shown when the backend rejects a submission without
// a usable message.
const submitErrorFallback = "Failed to submit quote. Please try again or call 772.244.4350."

// SubmitContact runs the final form step: validate the contact record, then
// hand the aggregated payload to the first backend that takes it. Aggregator
// first when configured, then the ingest endpoint. A network-class failure
// still reaches the success step with the payload queued in the session; the
// form never strands a visitor on backend unavailability.
func SubmitContact(c *gin.Context) {
	var contact models.ContactRecord
	if err := c.ShouldBindJSON(&contact); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if errs := utils.ValidateContact(contact); len(errs) > 0 {
		utils.BadRequest(c, "Validation failed", gin.H{
			"fields": errs,
			"step":   models.StepContact,
		})
		return
	}

	session := sessions.Default(c)
	addr, ok := sessionAddress(session)
	if !ok || addr.ZipCode == "" {
		utils.BadRequest(c, "Address information is incomplete. Please go back and enter a complete address.", gin.H{"step": models.StepContact})
		return
	}
	prop, _ := sessionProperty(session)

	session.Set(sessionKeyContact, contact)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save contact details to session: %v", err)
		utils.InternalServerError(c, "Failed to save contact details", err)
		return
	}

	cfg := config.App
	payload := BuildSubmission(addr, prop, contact)

	// Aggregator path: any premium figure is a terminal success. A
	// well-formed response without premiums falls through to the local
	// path; the body is logged so aggregator-side rejects stay visible.
	if cfg.AggregatorEnabled() {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.SubmitTimeout)
		estimates, err := utils.GetEstimates(ctx, utils.NewQuoteRushRequest(cfg, addr, prop, contact))
		cancel()
		switch {
		case err != nil:
			utils.LogError("Aggregator submission failed, falling back: %v", err)
		case estimates.HasPremiums():
			session.Set(sessionKeyPremiums, estimates)
			clearFormRecords(session)
			if err := session.Save(); err != nil {
				utils.LogError("Failed to save premiums to session: %v", err)
			}
			utils.Success(c, "Quotes ready", gin.H{
				"step":     models.StepSuccess,
				"premiums": estimates,
			})
			return
		default:
			utils.LogDebug("Aggregator returned no premium estimates, falling back to local submission")
		}
	}

	result := postSubmission(c.Request.Context(), cfg, payload)
	switch {
	case result.networkErr != nil:
		// Backend unreachable: queue locally and still succeed.
		utils.LogError("Submit endpoint unavailable, queueing submission locally: %v", result.networkErr)
		session.Set(sessionKeyPending, models.PendingSubmission{
			QuoteSubmission: payload,
			SubmittedAt:     time.Now().UTC().Format(time.RFC3339),
			Status:          "pending",
		})
		clearFormRecords(session)
		if err := session.Save(); err != nil {
			utils.LogError("Failed to queue submission in session: %v", err)
			utils.InternalServerError(c, "Failed to submit quote", err)
			return
		}
		utils.Success(c, "Quote request received", gin.H{
			"step":   models.StepSuccess,
			"queued": true,
		})
	case result.rejection != "":
		// The backend explicitly said no; surface it and stay on the
		// contact step.
		utils.BadRequest(c, result.rejection, gin.H{"step": models.StepContact})
	default:
		clearFormRecords(session)
		if err := session.Save(); err != nil {
			utils.LogError("Failed to clear form session: %v", err)
		}
		utils.Success(c, "Quote request received", gin.H{
			"step":    models.StepSuccess,
			"quoteId": result.quoteID,
		})
	}
}

// BuildSubmission assembles the wire payload from the three form records,
// deriving the split and concatenated fields the backends expect.
func BuildSubmission(addr models.AddressRecord, prop models.PropertyRecord, ct models.ContactRecord) models.QuoteSubmission {
	city := addr.City
	if city == "" {
		city = addr.County
	}
	state := addr.State
	if state == "" {
		state = "FL"
	}

	zip5 := addr.ZipCode
	zip4 := ""
	if i := strings.Index(addr.ZipCode, "-"); i >= 0 {
		zip5 = addr.ZipCode[:i]
		zip4 = addr.ZipCode[i+1:]
	}

	first, last := utils.SplitFullName(ct.FullName)

	return models.QuoteSubmission{
		Address:       addr.FormattedAddress,
		StreetNumber:  addr.StreetNumber,
		Route:         addr.Route,
		StreetAddress: strings.TrimSpace(addr.StreetNumber + " " + addr.Route),
		City:          city,
		State:         state,
		ZipCode:       addr.ZipCode,
		ZipCode5:      zip5,
		ZipCode4:      zip4,
		County:        addr.County,
		Latitude:      addr.Latitude,
		Longitude:     addr.Longitude,
		PlaceID:       addr.PlaceID,

		SquareFeet: prop.SquareFeet,
		YearBuilt:  prop.YearBuilt,

		FullName:  strings.TrimSpace(ct.FullName),
		FirstName: first,
		LastName:  last,
		Phone:     utils.StripNonDigits(ct.Phone),
		Email:     strings.ToLower(strings.TrimSpace(ct.Email)),
		Ownership: ct.Ownership,

		ReviewDate: ct.ReviewDate,
		ReviewTime: ct.ReviewTime,

		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		Source:          "Hodgins Insurance Group",
		AddressVerified: addr.Verified(),
	}
}

// submitResult separates the three outcomes of the local submission path:
// delivered (quoteID), rejected by the application (rejection message), or
// never delivered (networkErr).
type submitResult struct {
	quoteID    string
	rejection  string
	networkErr error
}

type ingestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	QuoteID string `json:"quoteId"`
}

// postSubmission delivers the payload to the configured ingest endpoint with
// a bounded timeout. Transport errors (timeout, refused connection) are
// network-class; a decoded response that is not a success is an
// application-level rejection.
func postSubmission(ctx context.Context, cfg *config.Config, payload models.QuoteSubmission) submitResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return submitResult{rejection: submitErrorFallback}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.SubmitTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.SubmitAPIURL, bytes.NewReader(body))
	if err != nil {
		return submitResult{rejection: submitErrorFallback}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return submitResult{networkErr: err}
	}
	defer resp.Body.Close()

	var decoded ingestResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return submitResult{rejection: submitErrorFallback}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && decoded.Success {
		return submitResult{quoteID: decoded.QuoteID}
	}

	msg := decoded.Error
	if msg == "" {
		msg = submitErrorFallback
	}
	return submitResult{rejection: msg}
}
