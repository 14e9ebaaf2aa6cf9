package utils

import (
	"context"

	"github.com/hodgins-insurance/quoteserver/models"
)

// AddressResolver turns free-text address input into a validated
// AddressRecord. The returned message is empty on success and a user-facing,
// address-field error otherwise. Resolution never fails hard: service
// problems degrade to the manual parser, not to an error.
type AddressResolver interface {
	Resolve(ctx context.Context, input string) (models.AddressRecord, string)
}

// ManualResolver parses addresses with regular expressions only. It is the
// fallback when no geocoding service is configured or reachable.
type ManualResolver struct{}

// Resolve parses the input and applies the Florida acceptance policy.
func (ManualResolver) Resolve(_ context.Context, input string) (models.AddressRecord, string) {
	record, msg := ParseManualAddress(input)
	if msg != "" {
		return models.AddressRecord{}, msg
	}
	if msg := ValidateAddressRecord(record); msg != "" {
		return models.AddressRecord{}, msg
	}
	return record, ""
}

// NewAddressResolver selects the resolver by availability: service-backed
// when a Maps API key is configured and the client can be built, manual
// otherwise.
func NewAddressResolver(apiKey string) AddressResolver {
	if apiKey != "" {
		if r, err := NewServiceResolver(apiKey); err == nil {
			return r
		} else {
			LogError("Geocoding client unavailable, using manual address entry: %v", err)
		}
	}
	return ManualResolver{}
}
