package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
)

// QuoteRushEndpoint is the aggregator's estimates API. Overridable in tests.
var QuoteRushEndpoint = "https://api.quoterush.com/GetEstimates"

// QuoteRushRequest is the aggregator's field mapping of a completed form.
// The JSON names are the aggregator's, not ours.
type QuoteRushRequest struct {
	WidgetID     string `json:"WidgetId"`
	Agency       string `json:"Agency"`
	AddressLine1 string `json:"AddressLine1"`
	AddressLine2 string `json:"AddressLine2"`
	City         string `json:"City"`
	State        string `json:"State"`
	Zip          string `json:"Zip"`
	HomeStatus   string `json:"HomeStatus"`
	SquareFeet   int    `json:"SquareFeet"`
	YearBuilt    int    `json:"YearBuilt"`
	FirstName    string `json:"FirstName"`
	LastName     string `json:"LastName"`
	Phone        string `json:"Phone"`
	Email        string `json:"Email"`
}

// NewQuoteRushRequest maps the three form records onto the aggregator
// payload.
func NewQuoteRushRequest(cfg *config.Config, addr models.AddressRecord, prop models.PropertyRecord, ct models.ContactRecord) QuoteRushRequest {
	line1 := strings.TrimSpace(addr.StreetNumber + " " + addr.Route)
	if line1 == "" {
		line1 = addr.FormattedAddress
	}
	homeStatus := "Rent"
	if ct.Ownership == "own" {
		homeStatus = "Own"
	}
	first, last := SplitFullName(ct.FullName)
	return QuoteRushRequest{
		WidgetID:     cfg.QuoteRushWidgetID,
		Agency:       cfg.QuoteRushAgency,
		AddressLine1: line1,
		City:         addr.City,
		State:        addr.State,
		Zip:          addr.ZipCode,
		HomeStatus:   homeStatus,
		SquareFeet:   prop.SquareFeet,
		YearBuilt:    prop.YearBuilt,
		FirstName:    first,
		LastName:     last,
		Phone:        StripNonDigits(ct.Phone),
		Email:        strings.ToLower(strings.TrimSpace(ct.Email)),
	}
}

// SplitFullName splits a full name into first and last parts. A single-word
// name fills both, matching what the aggregator expects.
func SplitFullName(fullName string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], parts[0]
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// GetEstimates submits the mapped form to the aggregator and returns its
// premium figures. A well-formed response without premiums is not an error
// here; the caller decides whether to fall through to the local path.
func GetEstimates(ctx context.Context, reqBody QuoteRushRequest) (models.PremiumEstimates, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return models.PremiumEstimates{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, QuoteRushEndpoint, bytes.NewReader(body))
	if err != nil {
		return models.PremiumEstimates{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.PremiumEstimates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.PremiumEstimates{}, fmt.Errorf("aggregator returned %s", resp.Status)
	}

	var estimates models.PremiumEstimates
	if err := json.NewDecoder(resp.Body).Decode(&estimates); err != nil {
		return models.PremiumEstimates{}, fmt.Errorf("failed to decode aggregator response: %w", err)
	}
	return estimates, nil
}
