package utils

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/hodgins-insurance/quoteserver/config"
	"github.com/hodgins-insurance/quoteserver/models"
)

// SendQuoteNotification emails the agent about a new quote request. When the
// email channel is not configured the call is a logged no-op, never an
// error: notification delivery must not affect the submission.
func SendQuoteNotification(q models.QuoteSubmission) error {
	cfg := config.App
	if cfg == nil || !cfg.EmailEnabled() {
		LogInfo("Email channel not configured - skipping notification for %s", q.ID)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", cfg.SMTPFrom)
	m.SetHeader("To", cfg.AgentEmail)
	m.SetHeader("Subject", fmt.Sprintf("New Home Insurance Quote Request - %s", q.FullName))
	m.SetBody("text/html", BuildQuoteEmailHTML(q))

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// BuildQuoteEmailHTML renders the fixed notification template: header,
// contact block, address block (with a map link when coordinates are
// present), property block, scheduling block and a metadata footer.
func BuildQuoteEmailHTML(q models.QuoteSubmission) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background: #f97316; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
  .content { background: #f9fafb; padding: 20px; border-radius: 0 0 8px 8px; }
  .field { margin-bottom: 15px; }
  .label { font-weight: bold; color: #666; }
  .value { color: #333; margin-top: 5px; }
  .section { background: white; padding: 15px; margin-bottom: 15px; border-radius: 5px; border-left: 4px solid #f97316; }
</style>
</head>
<body>
<div class="container">
<div class="header"><h1>New Home Insurance Quote Request</h1></div>
<div class="content">
`)

	// Contact block
	b.WriteString(`<div class="section"><h2>Contact Information</h2>`)
	writeField(&b, "Name", q.FullName)
	writeFieldHTML(&b, "Phone", fmt.Sprintf(`<a href="tel:%s">%s</a>`, html.EscapeString(q.Phone), html.EscapeString(q.Phone)))
	writeFieldHTML(&b, "Email", fmt.Sprintf(`<a href="mailto:%s">%s</a>`, html.EscapeString(q.Email), html.EscapeString(q.Email)))
	if q.Ownership == "own" {
		writeField(&b, "Ownership", "Own")
	} else if q.Ownership == "rent" {
		writeField(&b, "Ownership", "Rent")
	}
	b.WriteString(`</div>`)

	// Address block
	b.WriteString(`<div class="section"><h2>Property Address</h2>`)
	writeField(&b, "Full Address", q.Address)
	if q.StreetAddress != "" {
		writeField(&b, "Street", q.StreetAddress)
	}
	if q.City != "" {
		writeField(&b, "City", q.City)
	}
	if q.State != "" {
		writeField(&b, "State", q.State)
	}
	if q.ZipCode != "" {
		writeField(&b, "Zip Code", q.ZipCode)
	}
	if q.County != "" {
		writeField(&b, "County", q.County)
	}
	if q.Latitude != 0 && q.Longitude != 0 {
		link := fmt.Sprintf(`<a href="https://www.google.com/maps?q=%v,%v" target="_blank">View on Google Maps</a>`, q.Latitude, q.Longitude)
		writeFieldHTML(&b, "Location", link)
	}
	b.WriteString(`</div>`)

	// Property block
	b.WriteString(`<div class="section"><h2>Property Details</h2>`)
	if q.SquareFeet > 0 {
		writeField(&b, "Square Feet", fmt.Sprintf("%d", q.SquareFeet))
	}
	if q.YearBuilt > 0 {
		writeField(&b, "Year Built", fmt.Sprintf("%d", q.YearBuilt))
	}
	b.WriteString(`</div>`)

	// Scheduling block
	if q.ReviewDate != "" || q.ReviewTime != "" {
		b.WriteString(`<div class="section"><h2>Preferred Contact</h2>`)
		if q.ReviewDate != "" {
			writeField(&b, "Review Date", q.ReviewDate)
		}
		if q.ReviewTime != "" {
			writeField(&b, "Review Time", q.ReviewTime)
		}
		b.WriteString(`</div>`)
	}

	// Metadata footer
	b.WriteString(`<div class="section">`)
	b.WriteString(fmt.Sprintf("<p><strong>Submitted:</strong> %s</p>", html.EscapeString(q.Timestamp)))
	source := q.Source
	if source == "" {
		source = "Hodgins Insurance Group"
	}
	b.WriteString(fmt.Sprintf("<p><strong>Source:</strong> %s</p>", html.EscapeString(source)))
	if q.AddressVerified {
		b.WriteString("<p><strong>&#10003; Address Verified via Google Maps</strong></p>")
	}
	b.WriteString(`</div>
</div>
</div>
</body>
</html>`)

	return b.String()
}

// writeField renders a labelled value, escaping it: every value here is
// user-submitted.
func writeField(b *strings.Builder, label, value string) {
	writeFieldHTML(b, label, html.EscapeString(value))
}

// writeFieldHTML renders a labelled value that is already safe markup; any
// user data inside must be escaped by the caller.
func writeFieldHTML(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<div class="field"><div class="label">%s:</div><div class="value">%s</div></div>`, label, value)
	b.WriteString("\n")
}
