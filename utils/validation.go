package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hodgins-insurance/quoteserver/models"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
)

// MinSquareFeet is the smallest insurable square footage the form accepts.
const MinSquareFeet = 500

// MinYearBuilt is the oldest construction year the form accepts.
const MinYearBuilt = 1800

// StripNonDigits removes everything but digits from a phone number.
func StripNonDigits(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}

// ValidateAddressRecord applies the acceptance policy for resolved
// addresses. It returns an empty string when the record is acceptable, or a
// user-facing message for the address field. Only Florida properties are
// quotable.
func ValidateAddressRecord(a models.AddressRecord) string {
	if a.State != "FL" {
		return "Please enter a Florida address"
	}
	if a.ZipCode == "" {
		return "Address must include a zip code for accurate quotes"
	}
	if a.City == "" && a.County == "" {
		return "Address must include city or county information"
	}
	if a.FormattedAddress == "" {
		return "Invalid address format"
	}
	return ""
}

// ValidateProperty validates the property details step.
func ValidateProperty(p models.PropertyRecord) FieldValidationErrors {
	errs := FieldValidationErrors{}
	if p.SquareFeet < MinSquareFeet {
		errs = append(errs, FieldValidationError{"squareFeet", fmt.Sprintf("Please enter a valid square footage (minimum %d sq ft)", MinSquareFeet)})
	}
	maxYear := time.Now().Year() + 1
	if p.YearBuilt < MinYearBuilt || p.YearBuilt > maxYear {
		errs = append(errs, FieldValidationError{"yearBuilt", "Please enter a valid year built"})
	}
	return errs
}

// ValidateContact validates the contact details step. All fields are
// required before submission.
func ValidateContact(ct models.ContactRecord) FieldValidationErrors {
	errs := FieldValidationErrors{}
	if len(strings.TrimSpace(ct.FullName)) < 2 {
		errs = append(errs, FieldValidationError{"fullName", "Please enter your full name"})
	}
	if len(StripNonDigits(ct.Phone)) < 10 {
		errs = append(errs, FieldValidationError{"phone", "Please enter a valid 10-digit phone number"})
	}
	if !emailRegex.MatchString(ct.Email) {
		errs = append(errs, FieldValidationError{"email", "Please enter a valid email address"})
	}
	if ct.Ownership != "own" && ct.Ownership != "rent" {
		errs = append(errs, FieldValidationError{"ownership", "Please select whether you rent or own"})
	}
	if ct.ReviewDate == "" {
		errs = append(errs, FieldValidationError{"reviewDate", "Please select a review date"})
	}
	if ct.ReviewTime == "" {
		errs = append(errs, FieldValidationError{"reviewTime", "Please select a review time"})
	}
	return errs
}

// ValidateQuoteSubmission applies the ingest schema: four required fields
// with minimum lengths, everything else optional but typed, ownership
// constrained to its two values.
func ValidateQuoteSubmission(q models.QuoteSubmission) FieldValidationErrors {
	errs := FieldValidationErrors{}
	if len(strings.TrimSpace(q.FullName)) < 2 {
		errs = append(errs, FieldValidationError{"fullName", "Full name must be at least 2 characters"})
	}
	if len(q.Phone) < 10 {
		errs = append(errs, FieldValidationError{"phone", "Phone number must be at least 10 digits"})
	}
	if !emailRegex.MatchString(q.Email) {
		errs = append(errs, FieldValidationError{"email", "Invalid email address"})
	}
	if len(strings.TrimSpace(q.Address)) < 5 {
		errs = append(errs, FieldValidationError{"address", "Address must be at least 5 characters"})
	}
	if q.Ownership != "" && q.Ownership != "own" && q.Ownership != "rent" {
		errs = append(errs, FieldValidationError{"ownership", "Ownership must be 'own' or 'rent'"})
	}
	return errs
}
