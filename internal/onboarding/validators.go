// Package onboarding holds the pure business rules behind the therapist
// signup-to-live pipeline: field validation, rate pricing consistency, the
// stage transition table and the publication gate. Nothing in this package
// performs I/O; callers load the data, invoke the rules and persist results.
package onboarding

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 50

	MinBioLength      = 50
	MaxBioShortLength = 500
	MaxBioLongLength  = 5000

	MinOutcallRadiusMiles = 5
	MaxOutcallRadiusMiles = 100

	MinPriceCents = 5000   // $50.00
	MaxPriceCents = 100000 // $1000.00
)

// AllowedDurations are the bookable session lengths in minutes.
var AllowedDurations = []int{30, 60, 90, 120, 180, 240}

type BioClass string

const (
	BioShort BioClass = "short"
	BioLong  BioClass = "long"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors"`
}

func result(errs []FieldError) FieldResult {
	return FieldResult{Valid: len(errs) == 0, Errors: errs}
}

var (
	e164Pattern      = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	blockedNameWords = regexp.MustCompile(`(?i)\b(fuck|shit|bitch|damn|sex|xxx)\b`)
)

// ValidateDisplayName checks the public display name: required, trimmed
// length within bounds, and free of blocklisted words.
func ValidateDisplayName(name string) FieldResult {
	var errs []FieldError

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		errs = append(errs, FieldError{Field: "display_name", Message: "Display name is required"})
		return result(errs)
	}

	if len([]rune(trimmed)) < MinDisplayNameLength {
		errs = append(errs, FieldError{
			Field:   "display_name",
			Message: fmt.Sprintf("Display name must be at least %d characters", MinDisplayNameLength),
		})
	}
	if len([]rune(trimmed)) > MaxDisplayNameLength {
		errs = append(errs, FieldError{
			Field:   "display_name",
			Message: fmt.Sprintf("Display name must be at most %d characters", MaxDisplayNameLength),
		})
	}
	if blockedNameWords.MatchString(trimmed) {
		errs = append(errs, FieldError{
			Field:   "display_name",
			Message: "Display name contains inappropriate content",
		})
	}

	return result(errs)
}

// ValidateBio checks an optional bio. An empty bio is valid; a provided one
// must fit the length band for its class.
func ValidateBio(bio string, class BioClass) FieldResult {
	field := "bio_short"
	maxLength := MaxBioShortLength
	if class == BioLong {
		field = "bio_long"
		maxLength = MaxBioLongLength
	}

	trimmed := strings.TrimSpace(bio)
	if trimmed == "" {
		return result(nil)
	}

	var errs []FieldError
	if len([]rune(trimmed)) < MinBioLength {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("Bio must be at least %d characters", MinBioLength),
		})
	}
	if len([]rune(trimmed)) > maxLength {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("Bio must be at most %d characters", maxLength),
		})
	}

	return result(errs)
}

// ValidatePhoneE164 checks the public contact number. The number is required
// and must be in E.164 form: leading +, country code, digits only.
func ValidatePhoneE164(phone string) FieldResult {
	var errs []FieldError

	if strings.TrimSpace(phone) == "" {
		errs = append(errs, FieldError{Field: "phone_public_e164", Message: "Phone number is required"})
		return result(errs)
	}

	if !e164Pattern.MatchString(phone) {
		errs = append(errs, FieldError{
			Field:   "phone_public_e164",
			Message: "Phone number must be in E.164 format (e.g., +1234567890)",
		})
	}

	return result(errs)
}

// ValidateOutcallRadius checks the optional outcall service radius. A nil
// radius is valid (outcall radius not set).
func ValidateOutcallRadius(miles *int) FieldResult {
	if miles == nil {
		return result(nil)
	}

	var errs []FieldError
	if *miles < MinOutcallRadiusMiles {
		errs = append(errs, FieldError{
			Field:   "outcall_radius_miles",
			Message: fmt.Sprintf("Radius must be at least %d miles", MinOutcallRadiusMiles),
		})
	}
	if *miles > MaxOutcallRadiusMiles {
		errs = append(errs, FieldError{
			Field:   "outcall_radius_miles",
			Message: fmt.Sprintf("Radius must be at most %d miles", MaxOutcallRadiusMiles),
		})
	}

	return result(errs)
}

// ValidateDuration checks that a session duration is one of the bookable
// lengths.
func ValidateDuration(minutes int) FieldResult {
	for _, d := range AllowedDurations {
		if minutes == d {
			return result(nil)
		}
	}

	parts := make([]string, len(AllowedDurations))
	for i, d := range AllowedDurations {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return result([]FieldError{{
		Field:   "duration_minutes",
		Message: fmt.Sprintf("Duration must be one of: %s minutes", strings.Join(parts, ", ")),
	}})
}

// ValidatePrice checks a rate price in cents against the absolute band.
func ValidatePrice(priceCents int64) FieldResult {
	var errs []FieldError

	if priceCents <= 0 {
		errs = append(errs, FieldError{Field: "price_cents", Message: "Price must be greater than 0"})
	}
	if priceCents < MinPriceCents {
		errs = append(errs, FieldError{Field: "price_cents", Message: "Price must be at least $50.00"})
	}
	if priceCents > MaxPriceCents {
		errs = append(errs, FieldError{Field: "price_cents", Message: "Price must be at most $1000.00"})
	}

	return result(errs)
}

// ProfileFields is the self-service subset of a profile that field validators
// cover as a batch.
type ProfileFields struct {
	DisplayName        string
	BioShort           string
	BioLong            string
	PhonePublicE164    string
	OutcallRadiusMiles *int
}

// ValidateProfileFields runs all field validators and accumulates every error
// so the caller can surface them at once.
func ValidateProfileFields(p ProfileFields) FieldResult {
	var errs []FieldError

	errs = append(errs, ValidateDisplayName(p.DisplayName).Errors...)
	errs = append(errs, ValidatePhoneE164(p.PhonePublicE164).Errors...)
	errs = append(errs, ValidateBio(p.BioShort, BioShort).Errors...)
	errs = append(errs, ValidateBio(p.BioLong, BioLong).Errors...)
	errs = append(errs, ValidateOutcallRadius(p.OutcallRadiusMiles).Errors...)

	return result(errs)
}

// GroupErrors folds a flat error list into field -> messages, the shape the
// HTTP layer returns to forms.
func GroupErrors(errs []FieldError) map[string][]string {
	grouped := make(map[string][]string, len(errs))
	for _, e := range errs {
		grouped[e.Field] = append(grouped[e.Field], e.Message)
	}
	return grouped
}
