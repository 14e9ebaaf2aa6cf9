package controllers

import (
	"fmt"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
	"github.com/hodgins-insurance/quoteserver/utils"
)

// formResolver turns the address step's free text into validated records.
// Selected once at startup; tests swap it out.
var formResolver utils.AddressResolver = utils.ManualResolver{}

// InitFormResolver selects the address resolver from configuration.
func InitFormResolver(cfg *config.Config) {
	formResolver = utils.NewAddressResolver(cfg.GoogleMapsAPIKey)
}

// GetFormState reports where a returning visitor resumes, per the
// rehydration rule, along with whatever they already entered.
func GetFormState(c *gin.Context) {
	session := sessions.Default(c)

	body := gin.H{"step": currentStep(session)}
	if addr, ok := sessionAddress(session); ok {
		body["address"] = addr
	}
	if prop, ok := sessionProperty(session); ok {
		body["property"] = prop
	}
	if ct, ok := sessionContact(session); ok {
		body["contact"] = ct
	}
	if premiums, ok := sessionPremiums(session); ok {
		body["premiums"] = premiums
	}
	if pending, ok := sessionPending(session); ok {
		body["pendingSubmission"] = pending
	}
	utils.Success(c, "", body)
}

// SubmitAddressRequest carries the address step input.
type SubmitAddressRequest struct {
	Address string `json:"address"`
}

// SubmitAddress resolves the entered address and, when accepted, stores the
// record and advances the form. Validation failures are field errors, never
// fatal: the visitor stays on the address step.
func SubmitAddress(c *gin.Context) {
	var req SubmitAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	record, msg := formResolver.Resolve(c.Request.Context(), req.Address)
	if msg != "" {
		utils.BadRequest(c, "Validation failed", gin.H{
			"fields": utils.FieldValidationErrors{{Field: "address", Message: msg}},
			"step":   models.StepAddress,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyAddress, record)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save address to session: %v", err)
		utils.InternalServerError(c, "Failed to save address", err)
		return
	}

	// The map confirmation view only exists behind its feature flag;
	// otherwise acceptance goes straight to property details.
	step := models.StepProperty
	if config.App != nil && config.App.MapStep {
		step = models.StepMap
	}
	utils.LogInfo("Address accepted for form session: %s", record.FormattedAddress)
	utils.Success(c, "Address accepted", gin.H{"step": step, "address": record})
}

// ConfirmAddress acknowledges the map confirmation step and moves on to
// property details. Only routed when the map step flag is enabled.
func ConfirmAddress(c *gin.Context) {
	session := sessions.Default(c)
	if _, ok := sessionAddress(session); !ok {
		utils.BadRequest(c, "No address to confirm", gin.H{"step": models.StepAddress})
		return
	}
	utils.Success(c, "Address confirmed", gin.H{"step": models.StepProperty})
}

// SubmitProperty validates the property details step and advances to
// contact details.
func SubmitProperty(c *gin.Context) {
	var prop models.PropertyRecord
	if err := c.ShouldBindJSON(&prop); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	session := sessions.Default(c)
	if _, ok := sessionAddress(session); !ok {
		utils.BadRequest(c, "Address information is incomplete. Please go back and enter a complete address.", gin.H{"step": models.StepAddress})
		return
	}

	if errs := utils.ValidateProperty(prop); len(errs) > 0 {
		utils.BadRequest(c, "Validation failed", gin.H{
			"fields": errs,
			"step":   models.StepProperty,
		})
		return
	}

	session.Set(sessionKeyProperty, prop)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save property details to session: %v", err)
		utils.InternalServerError(c, "Failed to save property details", err)
		return
	}
	utils.Success(c, "Property details saved", gin.H{"step": models.StepContact})
}

// BackRequest names the step the visitor navigates back from.
type BackRequest struct {
	From int `json:"from"`
}

// GoBack handles explicit back navigation: contact returns to property,
// property returns to address entry. Saved records are kept; a reload still
// resumes forward per the rehydration rule.
func GoBack(c *gin.Context) {
	var req BackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	session := sessions.Default(c)
	from := req.From
	if from == 0 {
		from = currentStep(session)
	}

	step := from
	switch from {
	case models.StepContact:
		step = models.StepProperty
	case models.StepProperty:
		step = models.StepAddress
	}
	utils.Success(c, "", gin.H{"step": step})
}

// RestartForm clears every persisted sub-record and premium estimate and
// returns the visitor to the address step. Queued pending submissions are
// kept for operator follow-up.
func RestartForm(c *gin.Context) {
	session := sessions.Default(c)
	clearFormRecords(session)
	session.Delete(sessionKeyPremiums)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to clear form session: %v", err)
		utils.InternalServerError(c, "Failed to restart", err)
		return
	}
	utils.Success(c, "Form restarted", gin.H{"step": models.StepAddress})
}

// scheduleOption is one selectable date or time in the contact step.
type scheduleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// GetSchedule returns the selectable review dates (the next 30 days) and
// half-hour time slots between 9:00 and 17:30.
func GetSchedule(c *gin.Context) {
	today := time.Now()
	dates := make([]scheduleOption, 0, 30)
	for i := 1; i <= 30; i++ {
		d := today.AddDate(0, 0, i)
		dates = append(dates, scheduleOption{
			Value: d.Format("2006-01-02"),
			Label: fmt.Sprintf("%s, %s %d%s", d.Weekday(), d.Month(), d.Day(), ordinalSuffix(d.Day())),
		})
	}

	times := make([]scheduleOption, 0, 18)
	for hour := 9; hour < 18; hour++ {
		for _, minute := range []int{0, 30} {
			hour12 := hour
			if hour > 12 {
				hour12 = hour - 12
			}
			ampm := "AM"
			if hour >= 12 {
				ampm = "PM"
			}
			times = append(times, scheduleOption{
				Value: fmt.Sprintf("%02d:%02d", hour, minute),
				Label: fmt.Sprintf("%d:%02d %s", hour12, minute, ampm),
			})
		}
	}

	utils.Success(c, "", gin.H{"dates": dates, "times": times})
}

func ordinalSuffix(day int) string {
	switch day {
	case 1, 21, 31:
		return "st"
	case 2, 22:
		return "nd"
	case 3, 23:
		return "rd"
	default:
		return "th"
	}
}
