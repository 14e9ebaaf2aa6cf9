package models

// AddressRecord is the structured, validated representation of a property
// address. It is built either from a Google place selection/geocode result or
// from the manual parser fallback, in which case PlaceID is empty and the
// coordinates are zero.
type AddressRecord struct {
	FormattedAddress string  `json:"formattedAddress"`
	PlaceID          string  `json:"placeId"`
	StreetNumber     string  `json:"streetNumber"`
	Route            string  `json:"route"`
	City             string  `json:"city"`
	State            string  `json:"state"`
	ZipCode          string  `json:"zipCode"`
	County           string  `json:"county"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// Verified reports whether the address was confirmed by the geocoding
// service rather than assembled from manual input.
func (a AddressRecord) Verified() bool {
	return a.Latitude != 0 && a.Longitude != 0 && a.PlaceID != ""
}

// PropertyRecord holds the property details step of the quote form.
type PropertyRecord struct {
	SquareFeet int `json:"squareFeet"`
	YearBuilt  int `json:"yearBuilt"`
}

// ContactRecord holds the contact details step of the quote form.
type ContactRecord struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Ownership  string `json:"ownership"`
	ReviewDate string `json:"reviewDate"`
	ReviewTime string `json:"reviewTime"`
}

// QuoteSubmission is the wire and storage entity: the union of the three
// form records plus derived fields. It is created once at submission time and
// never mutated afterwards; ID and Timestamp are set by the store.
type QuoteSubmission struct {
	ID string `json:"id,omitempty"`

	// Address
	Address       string  `json:"address"`
	StreetNumber  string  `json:"streetNumber,omitempty"`
	Route         string  `json:"route,omitempty"`
	StreetAddress string  `json:"streetAddress,omitempty"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	ZipCode       string  `json:"zipCode,omitempty"`
	ZipCode5      string  `json:"zipCode5,omitempty"`
	ZipCode4      string  `json:"zipCode4,omitempty"`
	County        string  `json:"county,omitempty"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	PlaceID       string  `json:"placeId,omitempty"`

	// Property
	SquareFeet int `json:"squareFeet,omitempty"`
	YearBuilt  int `json:"yearBuilt,omitempty"`

	// Contact
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Ownership string `json:"ownership,omitempty"`

	// Review scheduling
	ReviewDate string `json:"reviewDate,omitempty"`
	ReviewTime string `json:"reviewTime,omitempty"`

	// Metadata
	Timestamp       string `json:"timestamp,omitempty"`
	Source          string `json:"source,omitempty"`
	AddressVerified bool   `json:"addressVerified,omitempty"`
}

// PendingSubmission is a submission the form accepted but could not deliver
// to any backend. It is queued in the visitor's session for manual follow-up.
type PendingSubmission struct {
	QuoteSubmission
	SubmittedAt string `json:"submittedAt"`
	Status      string `json:"status"`
}

// PremiumEstimates carries the premium figures returned by the quoting
// aggregator, kept in the session so the success step can display them.
type PremiumEstimates struct {
	LowestPremium  float64 `json:"LowestPremium,omitempty"`
	AveragePremium float64 `json:"AveragePremium,omitempty"`
	HighestPremium float64 `json:"HighestPremium,omitempty"`
}

// HasPremiums reports whether the aggregator returned at least one figure.
func (p PremiumEstimates) HasPremiums() bool {
	return p.LowestPremium > 0 || p.AveragePremium > 0 || p.HighestPremium > 0
}

// Form step identifiers. Step 2 (map confirmation) only appears when the
// map-step feature flag is enabled; otherwise an accepted address jumps
// straight to the property step.
const (
	StepAddress  = 1
	StepMap      = 2
	StepProperty = 3
	StepContact  = 4
	StepSuccess  = 5
)
