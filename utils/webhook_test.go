package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hodgins-insurance/quoteserver/models"
)

func TestSendWebhook(t *testing.T) {
	var received models.QuoteSubmission
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	err := SendWebhook(context.Background(), server.URL, sampleSubmission())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", received.FullName)
	assert.Equal(t, "quote-1700000000000-abc123def", received.ID)
}

func TestSendWebhookNon2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rejected", http.StatusBadGateway)
	}))
	defer server.Close()

	err := SendWebhook(context.Background(), server.URL, sampleSubmission())
	assert.ErrorContains(t, err, "webhook failed")
}

func TestSendWebhookUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	assert.Error(t, SendWebhook(context.Background(), server.URL, sampleSubmission()))
}
