package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds the loaded configuration for the running service.
var App *Config

// Config holds all configuration for the application. Every field is
// optional except the ones needed to enable a given channel: email needs the
// SMTP settings, the webhook needs its URL, the aggregator needs both ids.
type Config struct {
	Port string
	Env  string

	// Comma-separated list of allowed CORS origins.
	FrontendURLs []string

	// Agent notification email.
	AgentEmail   string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// Optional webhook target (Zapier, Make.com, etc.).
	WebhookURL string

	// QuoteRush aggregator integration.
	UseQuoteRush      bool
	QuoteRushWidgetID string
	QuoteRushAgency   string

	// Google Maps Geocoding, used by the address resolver.
	GoogleMapsAPIKey string

	// Flat-file quote storage.
	QuotesFile string

	// Where the form submits completed quotes. Defaults to this service's
	// own ingest endpoint.
	SubmitAPIURL  string
	SubmitTimeout time.Duration

	SessionSecret string

	// Re-enables the map confirmation step between address entry and
	// property details.
	MapStep bool
}

// LoadConfig loads configuration from the environment. A missing .env file
// is not an error; deployments set real environment variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		AgentEmail:        getEnv("AGENT_EMAIL", "agent@example.com"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:          getEnv("SMTP_FROM", "quotes@hodginsinsurance.com"),
		WebhookURL:        os.Getenv("WEBHOOK_URL"),
		QuoteRushWidgetID: os.Getenv("QUOTERUSH_WIDGET_ID"),
		QuoteRushAgency:   os.Getenv("QUOTERUSH_AGENCY"),
		GoogleMapsAPIKey:  os.Getenv("GOOGLE_MAPS_API_KEY"),
		QuotesFile:        getEnv("QUOTES_DATA_FILE", "data/quotes.json"),
		SubmitAPIURL:      os.Getenv("SUBMIT_API_URL"),
		SessionSecret:     getEnv("SESSION_SECRET", "quote-form-secret"),
	}

	cfg.SMTPPort = 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTPPort = p
		}
	}

	cfg.UseQuoteRush = os.Getenv("USE_QUOTERUSH") == "true"
	cfg.MapStep = os.Getenv("FORM_MAP_STEP") == "true"

	if urls := os.Getenv("FRONTEND_URL"); urls != "" {
		for _, u := range strings.Split(urls, ",") {
			if u = strings.TrimSpace(u); u != "" {
				cfg.FrontendURLs = append(cfg.FrontendURLs, u)
			}
		}
	} else {
		cfg.FrontendURLs = []string{"http://localhost:3000"}
	}

	cfg.SubmitTimeout = 10 * time.Second
	if v := os.Getenv("SUBMIT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SubmitTimeout = d
		}
	}
	if cfg.SubmitAPIURL == "" {
		cfg.SubmitAPIURL = "http://localhost:" + cfg.Port + "/api/quotes"
	}

	App = cfg
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// IsProduction reports whether the service runs in production mode. Error
// detail is hidden from API responses in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// EmailEnabled reports whether the email notification channel is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.AgentEmail != ""
}

// WebhookEnabled reports whether the webhook notification channel is configured.
func (c *Config) WebhookEnabled() bool {
	return c.WebhookURL != ""
}

// AggregatorEnabled reports whether the QuoteRush integration is usable:
// the toggle plus both identifiers must be present.
func (c *Config) AggregatorEnabled() bool {
	return c.UseQuoteRush && c.QuoteRushWidgetID != "" && c.QuoteRushAgency != ""
}
