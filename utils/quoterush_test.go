package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"two parts", "Jane Doe", "Jane", "Doe"},
		{"middle name joins last", "Jane Q Doe", "Jane", "Q Doe"},
		{"single word fills both", "Cher", "Cher", "Cher"},
		{"surrounding whitespace", "  Jane Doe  ", "Jane", "Doe"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitFullName(tt.input)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestNewQuoteRushRequest(t *testing.T) {
	cfg := &config.Config{QuoteRushWidgetID: "widget-1", QuoteRushAgency: "hodgins"}
	addr := models.AddressRecord{
		FormattedAddress: "123 Main St, Miami, FL 33101",
		StreetNumber:     "123",
		Route:            "Main St",
		City:             "Miami",
		State:            "FL",
		ZipCode:          "33101",
	}
	prop := models.PropertyRecord{SquareFeet: 1500, YearBuilt: 1995}
	ct := models.ContactRecord{
		FullName:  "Jane Doe",
		Phone:     "(772) 555-0123",
		Email:     " Jane@Example.com ",
		Ownership: "own",
	}

	req := NewQuoteRushRequest(cfg, addr, prop, ct)

	assert.Equal(t, "widget-1", req.WidgetID)
	assert.Equal(t, "hodgins", req.Agency)
	assert.Equal(t, "123 Main St", req.AddressLine1)
	assert.Equal(t, "Miami", req.City)
	assert.Equal(t, "FL", req.State)
	assert.Equal(t, "33101", req.Zip)
	assert.Equal(t, "Own", req.HomeStatus)
	assert.Equal(t, 1500, req.SquareFeet)
	assert.Equal(t, 1995, req.YearBuilt)
	assert.Equal(t, "Jane", req.FirstName)
	assert.Equal(t, "Doe", req.LastName)
	assert.Equal(t, "7725550123", req.Phone)
	assert.Equal(t, "jane@example.com", req.Email)

	t.Run("renter maps to Rent", func(t *testing.T) {
		ct.Ownership = "rent"
		assert.Equal(t, "Rent", NewQuoteRushRequest(cfg, addr, prop, ct).HomeStatus)
	})

	t.Run("formatted address when street parts missing", func(t *testing.T) {
		bare := models.AddressRecord{FormattedAddress: "123 Main St, Miami, FL 33101"}
		assert.Equal(t, "123 Main St, Miami, FL 33101", NewQuoteRushRequest(cfg, bare, prop, ct).AddressLine1)
	})
}

func overrideEndpoint(t *testing.T, url string) {
	t.Helper()
	previous := QuoteRushEndpoint
	QuoteRushEndpoint = url
	t.Cleanup(func() { QuoteRushEndpoint = previous })
}

func TestGetEstimates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req QuoteRushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "widget-1", req.WidgetID)

		json.NewEncoder(w).Encode(models.PremiumEstimates{
			LowestPremium:  1200.50,
			AveragePremium: 1500,
			HighestPremium: 1875.25,
		})
	}))
	defer server.Close()
	overrideEndpoint(t, server.URL)

	estimates, err := GetEstimates(context.Background(), QuoteRushRequest{WidgetID: "widget-1"})
	require.NoError(t, err)
	assert.True(t, estimates.HasPremiums())
	assert.InDelta(t, 1200.50, estimates.LowestPremium, 0.001)
	assert.InDelta(t, 1875.25, estimates.HighestPremium, 0.001)
}

func TestGetEstimatesWithoutPremiums(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()
	overrideEndpoint(t, server.URL)

	estimates, err := GetEstimates(context.Background(), QuoteRushRequest{})
	require.NoError(t, err)
	assert.False(t, estimates.HasPremiums())
}

func TestGetEstimatesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()
	overrideEndpoint(t, server.URL)

	_, err := GetEstimates(context.Background(), QuoteRushRequest{})
	assert.Error(t, err)
}

func TestGetEstimatesUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	overrideEndpoint(t, server.URL)

	_, err := GetEstimates(context.Background(), QuoteRushRequest{})
	assert.Error(t, err)
}
