package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/controllers"
	"github.com/hodgins-insurance/quoteserver/models"
	"github.com/hodgins-insurance/quoteserver/routes"
	"github.com/hodgins-insurance/quoteserver/utils"
)

func validContact() models.ContactRecord {
	return models.ContactRecord{
		FullName:   "Jane Doe",
		Phone:      "(772) 555-0123",
		Email:      "Jane@Example.com",
		Ownership:  "own",
		ReviewDate: "2026-09-15",
		ReviewTime: "10:30",
	}
}

// advanceToContact walks the form through the address and property steps.
func advanceToContact(t *testing.T, client *apiClient) {
	t.Helper()
	w := client.post("/v1/form/address", gin.H{"address": "123 Main St, Miami, FL 33101"})
	require.Equal(t, http.StatusOK, w.Code)
	w = client.post("/v1/form/property", models.PropertyRecord{SquareFeet: 1500, YearBuilt: 1995})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestFormStateFresh(t *testing.T) {
	client, _ := newClient(t)

	w := client.get("/v1/form")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 1, step(t, body))
	assert.NotContains(t, body, "address")
	assert.NotContains(t, body, "pendingSubmission")
}

func TestSubmitAddress(t *testing.T) {
	client, _ := newClient(t)

	w := client.post("/v1/form/address", gin.H{"address": "123 Main St, Miami, FL 33101"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 3, step(t, body), "accepted address skips the map step")
	address := body["address"].(map[string]interface{})
	assert.Equal(t, "Miami", address["city"])
	assert.Equal(t, "33101", address["zipCode"])

	// A reload resumes at the property step with the record intact.
	state := decode(t, client.get("/v1/form"))
	assert.Equal(t, 3, step(t, state))
	assert.Contains(t, state, "address")
}

func TestSubmitAddressRejected(t *testing.T) {
	client, _ := newClient(t)

	w := client.post("/v1/form/address", gin.H{"address": "hello"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, 1, step(t, body))

	fields := body["details"].(map[string]interface{})["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "address", fields[0].(map[string]interface{})["field"])

	// The visitor stays on the address step.
	assert.Equal(t, 1, step(t, decode(t, client.get("/v1/form"))))
}

func TestSubmitPropertyRequiresAddress(t *testing.T) {
	client, _ := newClient(t)

	w := client.post("/v1/form/property", models.PropertyRecord{SquareFeet: 1500, YearBuilt: 1995})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Address information is incomplete. Please go back and enter a complete address.", body["error"])
	assert.Equal(t, 1, step(t, body))
}

func TestSubmitPropertyValidation(t *testing.T) {
	client, _ := newClient(t)
	require.Equal(t, http.StatusOK, client.post("/v1/form/address", gin.H{"address": "123 Main St, Miami, FL 33101"}).Code)

	w := client.post("/v1/form/property", models.PropertyRecord{SquareFeet: 499, YearBuilt: 1995})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, 3, step(t, body))
	fields := body["details"].(map[string]interface{})["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "squareFeet", fields[0].(map[string]interface{})["field"])

	w = client.post("/v1/form/property", models.PropertyRecord{SquareFeet: 1500, YearBuilt: 1995})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, step(t, decode(t, w)))
}

func TestMapStepFlow(t *testing.T) {
	cfg := newTestEnv(t)
	cfg.MapStep = true
	client := &apiClient{t: t, router: routes.SetupRouter()}

	w := client.post("/v1/form/address", gin.H{"address": "123 Main St, Miami, FL 33101"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, step(t, decode(t, w)), "flag routes acceptance to the map step")

	w = client.post("/v1/form/confirm", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, step(t, decode(t, w)))
}

func TestGoBack(t *testing.T) {
	client, _ := newClient(t)

	w := client.post("/v1/form/back", gin.H{"from": 4})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, step(t, decode(t, w)))

	w = client.post("/v1/form/back", gin.H{"from": 3})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, step(t, decode(t, w)))
}

func TestGoBackDefaultsToCurrentStep(t *testing.T) {
	client, _ := newClient(t)
	require.Equal(t, http.StatusOK, client.post("/v1/form/address", gin.H{"address": "123 Main St, Miami, FL 33101"}).Code)

	w := client.post("/v1/form/back", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, step(t, decode(t, w)), "resumed property step goes back to address entry")
}

func TestRestartForm(t *testing.T) {
	client, _ := newClient(t)
	advanceToContact(t, client)

	w := client.post("/v1/form/restart", gin.H{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, step(t, decode(t, w)))

	state := decode(t, client.get("/v1/form"))
	assert.Equal(t, 1, step(t, state))
	assert.NotContains(t, state, "address")
	assert.NotContains(t, state, "property")
}

func TestGetSchedule(t *testing.T) {
	client, _ := newClient(t)

	w := client.get("/v1/form/schedule")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	dates := body["dates"].([]interface{})
	times := body["times"].([]interface{})
	require.Len(t, dates, 30)
	require.Len(t, times, 18)

	first := dates[0].(map[string]interface{})
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, first["value"])
	assert.Regexp(t, `, \w+ \d{1,2}(st|nd|rd|th)$`, first["label"])

	firstTime := times[0].(map[string]interface{})
	assert.Equal(t, "09:00", firstTime["value"])
	assert.Equal(t, "9:00 AM", firstTime["label"])

	lastTime := times[17].(map[string]interface{})
	assert.Equal(t, "17:30", lastTime["value"])
	assert.Equal(t, "5:30 PM", lastTime["label"])

	noon := times[6].(map[string]interface{})
	assert.Equal(t, "12:00", noon["value"])
	assert.Equal(t, "12:00 PM", noon["label"])
}

func TestSubmitContactValidation(t *testing.T) {
	client, _ := newClient(t)
	advanceToContact(t, client)

	ct := validContact()
	ct.Email = "nope"
	w := client.post("/v1/form/contact", ct)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, 4, step(t, body))
	fields := body["details"].(map[string]interface{})["fields"].([]interface{})
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].(map[string]interface{})["field"])
}

func TestSubmitContactRequiresAddress(t *testing.T) {
	client, _ := newClient(t)

	w := client.post("/v1/form/contact", validContact())
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Address information is incomplete. Please go back and enter a complete address.", body["error"])
	assert.Equal(t, 4, step(t, body))
}

func TestSubmitContactDeliversToIngest(t *testing.T) {
	client, cfg := newClient(t)

	// The form posts to this service's own ingest endpoint.
	server := httptest.NewServer(client.router)
	defer server.Close()
	cfg.SubmitAPIURL = server.URL + "/api/quotes"

	advanceToContact(t, client)
	w := client.post("/v1/form/contact", validContact())
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 5, step(t, body))
	quoteID := body["quoteId"].(string)
	assert.Regexp(t, `^quote-\d+-[0-9a-z]{9}$`, quoteID)

	stored, found, err := config.Store.GetByID(quoteID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Jane Doe", stored.FullName)
	assert.Equal(t, "jane@example.com", stored.Email)
	assert.Equal(t, "7725550123", stored.Phone)
	assert.Equal(t, "Miami", stored.City)

	// The step records are gone; a new form starts clean.
	assert.Equal(t, 1, step(t, decode(t, client.get("/v1/form"))))
}

func TestSubmitContactRejectionStaysOnContactStep(t *testing.T) {
	client, cfg := newClient(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Out of service area"}`))
	}))
	defer server.Close()
	cfg.SubmitAPIURL = server.URL

	advanceToContact(t, client)
	w := client.post("/v1/form/contact", validContact())
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Out of service area", body["error"])
	assert.Equal(t, 4, step(t, body))

	// Saved records survive a rejection; the visitor resumes on contact.
	assert.Equal(t, 4, step(t, decode(t, client.get("/v1/form"))))
}

func TestSubmitContactQueuesOnNetworkFailure(t *testing.T) {
	client, cfg := newClient(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	cfg.SubmitAPIURL = server.URL

	advanceToContact(t, client)
	w := client.post("/v1/form/contact", validContact())
	require.Equal(t, http.StatusOK, w.Code, "unreachable backend still reaches the success step")

	body := decode(t, w)
	assert.Equal(t, 5, step(t, body))
	assert.Equal(t, true, body["queued"])

	state := decode(t, client.get("/v1/form"))
	assert.Equal(t, 1, step(t, state))
	pending := state["pendingSubmission"].(map[string]interface{})
	assert.Equal(t, "pending", pending["status"])
	assert.Equal(t, "Jane Doe", pending["fullName"])
	assert.NotEmpty(t, pending["submittedAt"])
}

func TestSubmitContactAggregatorSuccess(t *testing.T) {
	client, cfg := newClient(t)
	cfg.UseQuoteRush = true
	cfg.QuoteRushWidgetID = "widget-1"
	cfg.QuoteRushAgency = "hodgins"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"LowestPremium":1200.5,"AveragePremium":1500,"HighestPremium":1875.25}`))
	}))
	defer server.Close()
	previous := utils.QuoteRushEndpoint
	utils.QuoteRushEndpoint = server.URL
	t.Cleanup(func() { utils.QuoteRushEndpoint = previous })

	advanceToContact(t, client)
	w := client.post("/v1/form/contact", validContact())
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 5, step(t, body))
	premiums := body["premiums"].(map[string]interface{})
	assert.Equal(t, 1200.5, premiums["LowestPremium"])

	// The success step can re-render the figures after a reload.
	state := decode(t, client.get("/v1/form"))
	assert.Contains(t, state, "premiums")
}

func TestSubmitContactAggregatorFallsThrough(t *testing.T) {
	client, cfg := newClient(t)
	cfg.UseQuoteRush = true
	cfg.QuoteRushWidgetID = "widget-1"
	cfg.QuoteRushAgency = "hodgins"

	aggregator := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer aggregator.Close()
	previous := utils.QuoteRushEndpoint
	utils.QuoteRushEndpoint = aggregator.URL
	t.Cleanup(func() { utils.QuoteRushEndpoint = previous })

	ingest := httptest.NewServer(client.router)
	defer ingest.Close()
	cfg.SubmitAPIURL = ingest.URL + "/api/quotes"

	advanceToContact(t, client)
	w := client.post("/v1/form/contact", validContact())
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, 5, step(t, body))
	assert.Contains(t, body, "quoteId", "no premiums means the local path handled it")
}

func TestBuildSubmission(t *testing.T) {
	addr := models.AddressRecord{
		FormattedAddress: "123 Main St, Miami, FL 33101-4567",
		StreetNumber:     "123",
		Route:            "Main St",
		County:           "Miami-Dade County",
		ZipCode:          "33101-4567",
	}
	prop := models.PropertyRecord{SquareFeet: 1500, YearBuilt: 1995}
	ct := validContact()

	q := controllers.BuildSubmission(addr, prop, ct)

	assert.Equal(t, "123 Main St", q.StreetAddress)
	assert.Equal(t, "Miami-Dade County", q.City, "county fills a missing city")
	assert.Equal(t, "FL", q.State, "state defaults to Florida")
	assert.Equal(t, "33101", q.ZipCode5)
	assert.Equal(t, "4567", q.ZipCode4)
	assert.Equal(t, "Jane", q.FirstName)
	assert.Equal(t, "Doe", q.LastName)
	assert.Equal(t, "7725550123", q.Phone)
	assert.Equal(t, "jane@example.com", q.Email)
	assert.Equal(t, "Hodgins Insurance Group", q.Source)
	assert.False(t, q.AddressVerified)
	assert.NotEmpty(t, q.Timestamp)
}
