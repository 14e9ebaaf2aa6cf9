package utils

import (
	"context"
	"strings"
	"time"

	"googlemaps.github.io/maps"

	"github.com/hodgins-insurance/quoteserver/models"
)

// GeocodeTimeout bounds a single geocoding call. On expiry the manually
// parsed address is used as-is; the user is never blocked on the service.
const GeocodeTimeout = 8 * time.Second

// Geocoder is the slice of the Maps client the resolver needs.
type Geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ServiceResolver resolves addresses through the Google Geocoding API,
// keeping the manual parse as a safety net for every failure mode.
type ServiceResolver struct {
	client  Geocoder
	timeout time.Duration
}

// NewServiceResolver builds a resolver backed by the Maps API.
func NewServiceResolver(apiKey string) (*ServiceResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &ServiceResolver{client: client, timeout: GeocodeTimeout}, nil
}

// Resolve parses the input manually first, then geocodes the synthesized
// string to attach verified components and coordinates. Timeouts, service
// errors, zero results and out-of-policy geocode results all fall back to
// the manual record.
func (r *ServiceResolver) Resolve(ctx context.Context, input string) (models.AddressRecord, string) {
	manual, msg := ParseManualAddress(input)
	if msg != "" {
		return models.AddressRecord{}, msg
	}
	if msg := ValidateAddressRecord(manual); msg != "" {
		return models.AddressRecord{}, msg
	}

	searchAddress := strings.TrimSpace(input)
	upper := strings.ToUpper(searchAddress)
	if !strings.Contains(upper, "FL") && !strings.Contains(upper, "FLORIDA") {
		searchAddress = searchAddress + ", FL, USA"
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: searchAddress,
		Region:  "us",
		Components: map[maps.Component]string{
			maps.ComponentCountry: "us",
		},
	})
	if err != nil {
		LogDebug("Geocoding failed for %q, keeping manual parse: %v", searchAddress, err)
		return manual, ""
	}
	if len(results) == 0 {
		return manual, ""
	}

	best := bestGeocodeResult(results)
	resolved := ParseAddressComponents(best.AddressComponents)
	resolved.FormattedAddress = best.FormattedAddress
	if resolved.FormattedAddress == "" {
		resolved.FormattedAddress = searchAddress
	}
	resolved.PlaceID = best.PlaceID
	resolved.Latitude = best.Geometry.Location.Lat
	resolved.Longitude = best.Geometry.Location.Lng

	if msg := ValidateAddressRecord(resolved); msg != "" {
		// The service disagreed with the user; trust the manual parse.
		return manual, ""
	}
	if resolved.City == "" && resolved.County != "" {
		resolved.City = resolved.County
	}
	return resolved, ""
}

// bestGeocodeResult prefers precise street-level matches over broader ones
// when the service returns multiple candidates.
func bestGeocodeResult(results []maps.GeocodingResult) maps.GeocodingResult {
	for _, result := range results {
		for _, t := range result.Types {
			if t == "street_address" || t == "premise" {
				return result
			}
		}
	}
	return results[0]
}

// ParseAddressComponents extracts the structured address from a component
// list, using the fixed priority order the quoting flow depends on:
// locality wins over sublocality for the city, the state uses its short
// form, and a postal_code_suffix is appended to the zip with a hyphen.
func ParseAddressComponents(components []maps.AddressComponent) models.AddressRecord {
	var record models.AddressRecord

	for _, component := range components {
		switch {
		case hasType(component, "street_number"):
			record.StreetNumber = component.LongName
		case hasType(component, "route"):
			record.Route = component.LongName
		case hasType(component, "locality"):
			record.City = component.LongName
		case hasType(component, "sublocality") || hasType(component, "sublocality_level_1"):
			if record.City == "" {
				record.City = component.LongName
			}
		case hasType(component, "administrative_area_level_1"):
			record.State = component.ShortName
		case hasType(component, "postal_code"):
			record.ZipCode = component.LongName
		case hasType(component, "postal_code_suffix"):
			if record.ZipCode != "" {
				record.ZipCode = record.ZipCode + "-" + component.LongName
			}
		case hasType(component, "administrative_area_level_2"):
			record.County = component.LongName
		}
	}

	return record
}

func hasType(component maps.AddressComponent, t string) bool {
	for _, ct := range component.Types {
		if ct == t {
			return true
		}
	}
	return false
}
