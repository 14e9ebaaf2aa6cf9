package utils

import (
	"regexp"
	"strings"

	"github.com/hodgins-insurance/quoteserver/models"
)

var (
	zipRegex       = regexp.MustCompile(`\b(\d{5}(?:-\d{4})?)\b`)
	cityStateRegex = regexp.MustCompile(`[A-Za-z\s]+,\s*[A-Za-z]{2}`)
	cityFLRegex    = regexp.MustCompile(`(?i)([^,]+),\s*FL`)
	cityLooseRegex = regexp.MustCompile(`(?i)([A-Za-z\s]+?),\s*FL|([A-Za-z\s]+?)\s+FL\s+\d{5}`)
)

// ParseManualAddress builds an AddressRecord from free-text input without any
// external service. The input has to either mention FL/Florida or at least
// look like a complete address (zip code, "City, ST" pattern, or two comma
// segments); ", FL" is synthesized into the working string when absent. The
// returned message is empty on success and user-facing otherwise.
//
// Coordinates stay zero; the resolver may enrich the record by geocoding.
func ParseManualAddress(input string) (models.AddressRecord, string) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return models.AddressRecord{}, "Please enter an address"
	}

	upper := strings.ToUpper(trimmed)
	hasFL := strings.Contains(upper, "FL") || strings.Contains(upper, "FLORIDA")

	hasZip := zipRegex.MatchString(trimmed)
	hasCityPattern := cityStateRegex.MatchString(trimmed)
	looksLikeAddress := hasZip || hasCityPattern || len(strings.Split(trimmed, ",")) >= 2

	if !hasFL && !looksLikeAddress {
		return models.AddressRecord{}, "Please enter a complete Florida address (e.g., 123 Main St, Miami, FL 33101)"
	}

	// Work on a copy with FL synthesized in, so the city/zip extraction
	// below always has a state anchor to match against.
	addressString := trimmed
	if !hasFL {
		if zipRegex.MatchString(addressString) {
			addressString = zipRegex.ReplaceAllString(addressString, "FL $1")
		} else if strings.Contains(addressString, ",") {
			addressString = addressString + ", FL"
		} else {
			addressString = addressString + ", FL"
		}
	}

	zipCode := ""
	if m := zipRegex.FindStringSubmatch(addressString); m != nil {
		zipCode = m[1]
	}

	city := ""
	if m := cityFLRegex.FindStringSubmatch(addressString); m != nil {
		city = strings.TrimSpace(m[1])
	} else if m := cityLooseRegex.FindStringSubmatch(addressString); m != nil {
		if m[1] != "" {
			city = strings.TrimSpace(m[1])
		} else {
			city = strings.TrimSpace(m[2])
		}
	}

	// Everything before the detected city (or zip) is the street fragment.
	streetAddress := addressString
	if city != "" {
		streetAddress = strings.SplitN(addressString, city, 2)[0]
	} else if zipCode != "" {
		streetAddress = strings.SplitN(addressString, zipCode, 2)[0]
	}
	streetAddress = strings.Trim(streetAddress, " ,")

	return models.AddressRecord{
		FormattedAddress: trimmed,
		Route:            streetAddress,
		City:             city,
		State:            "FL",
		ZipCode:          zipCode,
	}, ""
}
